package protocol

import (
	"errors"
	"testing"

	"github.com/nullmove-dev/chesscore/internal/board"
)

// LoggingProtocol's only branch is SendResult's mate-vs-centipawn choice;
// these are smoke tests confirming every Protocol method is wired to the
// logger without panicking.
func TestLoggingProtocolImplementsProtocol(t *testing.T) {
	var p Protocol = NewLoggingProtocol()

	p.FinishSearch(board.NewMove(board.E2, board.E4))
	p.SendResult(SearchResult{Depth: 1, Score: 0, Nodes: 1, PV: nil})
	p.SendNodeCount(1000)
	p.SendHashHits(10)
	p.SendString("test")
	p.SendCurrMove(board.NewMove(board.D2, board.D4), 1)
	p.ReportError(errors.New("test error"))
}

func TestUCIProtocolImplementsProtocol(t *testing.T) {
	var _ Protocol = (*UCIProtocol)(nil)
}
