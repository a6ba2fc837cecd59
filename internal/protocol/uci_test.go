package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullmove-dev/chesscore/internal/board"
)

func TestUCIProtocolFinishSearchWritesBestmove(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.FinishSearch(board.NewMove(board.E2, board.E4))
	assert.Equal(t, "bestmove e2e4\n", buf.String())
}

func TestUCIProtocolFinishSearchOnNullMoveWritesZeros(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.FinishSearch(board.NullMove)
	assert.Equal(t, "bestmove 0000\n", buf.String())
}

func TestUCIProtocolSendResultFormatsPV(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.SendResult(SearchResult{
		Depth: 5,
		Score: 37,
		Nodes: 12345,
		PV:    []board.Move{board.NewMove(board.E2, board.E4), board.NewMove(board.E7, board.E5)},
	})
	assert.Equal(t, "info depth 5 score cp 37 nodes 12345 pv e2e4 e7e5\n", buf.String())
}

func TestUCIProtocolSendResultWithEmptyPV(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.SendResult(SearchResult{Depth: 1, Score: 0, Nodes: 1})
	assert.Equal(t, "info depth 1 score cp 0 nodes 1 pv \n", buf.String())
}

func TestUCIProtocolReportErrorWritesInfoString(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.ReportError(errors.New("boom"))
	assert.Equal(t, "info string error: boom\n", buf.String())
}

func TestUCIProtocolSendCurrMove(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.SendCurrMove(board.NewMove(board.D2, board.D4), 3)
	assert.Equal(t, "info currmove d2d4 currmovenumber 3\n", buf.String())
}

func TestUCIProtocolSendResultReportsMateInOne(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.SendResult(SearchResult{Depth: 1, Score: mateScore - 1, Nodes: 3})
	assert.Equal(t, "info depth 1 score mate 1 nodes 3 pv \n", buf.String())
}

func TestUCIProtocolSendResultReportsBeingMatedAsNegative(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.SendResult(SearchResult{Depth: 2, Score: -mateScore + 1, Nodes: 3})
	assert.Equal(t, "info depth 2 score mate -1 nodes 3 pv \n", buf.String())
}

func TestUCIProtocolSendResultReportsMateInTwo(t *testing.T) {
	var buf bytes.Buffer
	p := NewUCIProtocol(&buf)
	p.SendResult(SearchResult{Depth: 4, Score: mateScore - 3, Nodes: 3})
	assert.Equal(t, "info depth 4 score mate 2 nodes 3 pv \n", buf.String())
}

func TestMateInIsFalseForOrdinaryScores(t *testing.T) {
	if _, ok := mateIn(37); ok {
		t.Error("an ordinary centipawn score should not be reported as mate")
	}
	if _, ok := mateIn(0); ok {
		t.Error("a zero score should not be reported as mate")
	}
}
