// Package protocol declares the server-side collaborator the search engine
// reports to. The text engine protocol itself, the command-line front end,
// and persistent logging transport are external collaborators; this package
// only defines the interface and a logging-backed adapter thin enough to
// exercise end to end.
package protocol

import (
	"github.com/op/go-logging"

	"github.com/nullmove-dev/chesscore/internal/board"
)

var log = logging.MustGetLogger("protocol")

// mateScore and mateMaxPly mirror search.MateScore/search.MaxPly. They can't
// be imported directly (search imports protocol for its Protocol
// collaborator), so the sentinel and its window are duplicated here; the two
// must be kept in lockstep.
const (
	mateScore  = 32000
	mateMaxPly = 128
)

// SearchResult is one completed iteration of one search job, reported after
// every depth for the worker designated to talk to the protocol.
type SearchResult struct {
	Move  board.Move
	Score int
	PV    []board.Move
	Depth int
	Nodes uint64
}

// mateIn reports the UCI "score mate N" distance for a score within
// mateMaxPly of the mate sentinel, in full moves, signed the way a mate for
// the side to move is positive and a mate against it is negative.
func mateIn(score int) (moves int, isMate bool) {
	switch {
	case score > mateScore-mateMaxPly:
		return (mateScore - score + 1) / 2, true
	case score < -(mateScore - mateMaxPly):
		return -(mateScore + score + 1) / 2, true
	default:
		return 0, false
	}
}

// Protocol is everything a JobRunner calls on its server collaborator.
// FinishSearch is called exactly once per start, as the last outgoing call;
// the rest are best-effort progress reporting.
type Protocol interface {
	FinishSearch(best board.Move)
	SendResult(res SearchResult)
	SendNodeCount(n uint64)
	SendHashHits(n uint64)
	SendString(s string)
	SendCurrMove(m board.Move, moveNumber int)
	ReportError(err error)
}

// LoggingProtocol is a minimal Protocol that writes every call to a
// module-scoped logger. It is the default adapter when no richer transport
// (the actual UCI/XBoard front end) is wired in.
type LoggingProtocol struct{}

// NewLoggingProtocol returns a Protocol that logs results, strings and the
// best move at info level, node counts, hash hits and the current move at
// debug level, and reported errors at error level.
func NewLoggingProtocol() *LoggingProtocol {
	return &LoggingProtocol{}
}

func (p *LoggingProtocol) FinishSearch(best board.Move) {
	log.Infof("bestmove %s", best)
}

func (p *LoggingProtocol) SendResult(res SearchResult) {
	if moves, ok := mateIn(res.Score); ok {
		log.Infof("info depth %d score mate %d nodes %d pv %v", res.Depth, moves, res.Nodes, res.PV)
		return
	}
	log.Infof("info depth %d score cp %d nodes %d pv %v", res.Depth, res.Score, res.Nodes, res.PV)
}

func (p *LoggingProtocol) SendNodeCount(n uint64) {
	log.Debugf("info nodes %d", n)
}

func (p *LoggingProtocol) SendHashHits(n uint64) {
	log.Debugf("info hashhits %d", n)
}

func (p *LoggingProtocol) SendString(s string) {
	log.Info(s)
}

func (p *LoggingProtocol) SendCurrMove(m board.Move, moveNumber int) {
	log.Debugf("info currmove %s currmovenumber %d", m, moveNumber)
}

func (p *LoggingProtocol) ReportError(err error) {
	log.Errorf("error: %v", err)
}
