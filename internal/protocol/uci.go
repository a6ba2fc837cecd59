package protocol

import (
	"fmt"
	"io"

	"github.com/nullmove-dev/chesscore/internal/board"
)

// UCIProtocol writes every Protocol call as a Universal Chess Interface
// output line to w (ordinarily os.Stdout). It holds no engine state of its
// own; parsing incoming UCI commands is the front end's job.
type UCIProtocol struct {
	w io.Writer
}

// NewUCIProtocol wraps w as a UCI-formatted Protocol.
func NewUCIProtocol(w io.Writer) *UCIProtocol {
	return &UCIProtocol{w: w}
}

func (p *UCIProtocol) FinishSearch(best board.Move) {
	if best == board.NullMove {
		fmt.Fprintln(p.w, "bestmove 0000")
		return
	}
	fmt.Fprintf(p.w, "bestmove %s\n", best)
}

func (p *UCIProtocol) SendResult(res SearchResult) {
	pv := ""
	for i, m := range res.PV {
		if i > 0 {
			pv += " "
		}
		pv += m.String()
	}
	if moves, ok := mateIn(res.Score); ok {
		fmt.Fprintf(p.w, "info depth %d score mate %d nodes %d pv %s\n", res.Depth, moves, res.Nodes, pv)
		return
	}
	fmt.Fprintf(p.w, "info depth %d score cp %d nodes %d pv %s\n", res.Depth, res.Score, res.Nodes, pv)
}

func (p *UCIProtocol) SendNodeCount(n uint64) {
	fmt.Fprintf(p.w, "info nodes %d\n", n)
}

func (p *UCIProtocol) SendHashHits(n uint64) {
	fmt.Fprintf(p.w, "info string hashhits %d\n", n)
}

func (p *UCIProtocol) SendString(s string) {
	fmt.Fprintf(p.w, "info string %s\n", s)
}

func (p *UCIProtocol) SendCurrMove(m board.Move, moveNumber int) {
	fmt.Fprintf(p.w, "info currmove %s currmovenumber %d\n", m, moveNumber)
}

func (p *UCIProtocol) ReportError(err error) {
	fmt.Fprintf(p.w, "info string error: %v\n", err)
}
