// Package uci is a thin Universal Chess Interface front end over the
// search engine: reading "position"/"go"/"stop" commands from stdin and
// driving a search.JobRunner is the whole job here; the protocol's option
// syntax and name escaping are a front-end concern this package keeps
// deliberately minimal.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nullmove-dev/chesscore/internal/board"
	"github.com/nullmove-dev/chesscore/internal/protocol"
	"github.com/nullmove-dev/chesscore/internal/search"
)

// UCI drives a search.JobRunner from the Universal Chess Interface text
// protocol read on stdin.
type UCI struct {
	tt     *search.TranspositionTable
	runner *search.JobRunner

	position       *board.Position
	positionHashes []uint64

	threads int
}

// New creates a UCI handler with a freshly allocated table of ttSizeMB.
func New(ttSizeMB int) *UCI {
	tt := search.NewTranspositionTable(ttSizeMB)
	return &UCI{
		tt:       tt,
		runner:   search.NewJobRunner(tt, protocol.NewUCIProtocol(os.Stdout)),
		position: board.NewPosition(),
		threads:  1,
	}
}

// SetThreads overrides the worker count a subsequent "go" uses, ahead of
// any "setoption name Threads" command.
func (u *UCI) SetThreads(n int) {
	if n > 0 {
		u.threads = n
	}
}

// Run reads commands from stdin until "quit".
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.runner.Stop()
			u.runner.Join()
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			u.runner.Stop()
			u.runner.Join()
			return
		case "d":
			fmt.Println(u.position.String())
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name chesscore")
	fmt.Println("id author nullmove")
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("option name Threads type spin default 1 min 1 max 256")
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.runner.Stop()
	u.runner.Join()
	u.runner.RequestHashClear()
	u.position = board.NewPosition()
	u.positionHashes = []uint64{u.position.Hash}
}

// handlePosition accepts "position startpos [moves ...]" and
// "position fen <fen> [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
		moveStart = findMoves(args, 1)
	case "fen":
		fenEnd := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				fenEnd = i
				break
			}
		}
		pos, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Printf("info string invalid fen: %v\n", err)
			return
		}
		u.position = pos
		moveStart = findMoves(args, fenEnd)
	default:
		return
	}

	u.positionHashes = []uint64{u.position.Hash}
	for _, mstr := range args[moveStart:] {
		move := parseUCIMove(u.position, mstr)
		if move == board.NoMove {
			fmt.Printf("info string invalid move: %s\n", mstr)
			return
		}
		u.position.MakeMove(move)
		u.position.UpdateCheckers()
		u.positionHashes = append(u.positionHashes, u.position.Hash)
	}
}

func findMoves(args []string, from int) int {
	for i := from; i < len(args); i++ {
		if args[i] == "moves" {
			return i + 1
		}
	}
	return len(args)
}

func parseUCIMove(pos *board.Position, s string) board.Move {
	if len(s) < 4 {
		return board.NoMove
	}
	from := board.NewSquare(int(s[0]-'a'), int(s[1]-'1'))
	to := board.NewSquare(int(s[2]-'a'), int(s[3]-'1'))

	var promo board.PieceType
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		}
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if promo != 0 && m.Promotion() == promo {
				return m
			}
			continue
		}
		if promo == 0 {
			return m
		}
	}
	return board.NoMove
}

func (u *UCI) handleGo(args []string) {
	limits := parseGoLimits(u.position.SideToMove, args)
	history := u.positionHashes
	if n := len(history); n > 0 && history[n-1] == u.position.Hash {
		history = history[:n-1] // NewJob appends the root's own hash
	}
	u.runner.Go(u.position.Copy(), history, limits, u.threads)
}

// parseGoLimits converts "go" arguments into search.Limits, deriving Time
// from a clock-based TimeControl when wtime/btime are given instead of an
// explicit movetime.
func parseGoLimits(us board.Color, args []string) search.Limits {
	var limits search.Limits
	var wtime, btime, winc, binc time.Duration
	var movesToGo int

	for i := 0; i < len(args); i++ {
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return "0"
		}
		switch args[i] {
		case "depth":
			limits.Depth, _ = strconv.Atoi(next())
		case "nodes":
			n, _ := strconv.ParseUint(next(), 10, 64)
			limits.Nodes = n
		case "movetime":
			ms, _ := strconv.Atoi(next())
			limits.Time = time.Duration(ms) * time.Millisecond
		case "infinite":
			limits.Infinite = true
		case "wtime":
			ms, _ := strconv.Atoi(next())
			wtime = time.Duration(ms) * time.Millisecond
		case "btime":
			ms, _ := strconv.Atoi(next())
			btime = time.Duration(ms) * time.Millisecond
		case "winc":
			ms, _ := strconv.Atoi(next())
			winc = time.Duration(ms) * time.Millisecond
		case "binc":
			ms, _ := strconv.Atoi(next())
			binc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			movesToGo, _ = strconv.Atoi(next())
		}
	}

	if limits.Time == 0 && !limits.Infinite && (wtime > 0 || btime > 0) {
		remaining, inc := wtime, winc
		if us == board.Black {
			remaining, inc = btime, binc
		}
		moveNumber := 1
		if movesToGo > 0 {
			moveNumber = 41 - movesToGo // approximate how deep into the game we are
			if moveNumber < 1 {
				moveNumber = 1
			}
		}
		derived := search.NewSearchLimitsFromTimeControl(search.TimeControl{
			Remaining:  remaining,
			Increment:  inc,
			MoveNumber: moveNumber,
		}, limits.Depth, limits.Nodes)
		limits.Time = derived.Time
	}

	return limits
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	inValue := false
	for _, a := range args {
		switch {
		case a == "name":
			inValue = false
		case a == "value":
			inValue = true
		case inValue:
			if value != "" {
				value += " "
			}
			value += a
		default:
			if name != "" {
				name += " "
			}
			name += a
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil {
			u.runner.RequestHashResize(mb)
		}
	case "threads":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			u.threads = n
		}
	}
}
