package search

import (
	"sync/atomic"

	"github.com/nullmove-dev/chesscore/internal/board"
)

const (
	// Infinity bounds the fail-soft alpha-beta window.
	Infinity = 30000

	maxQuiescencePly = 32
)

// JobResults is the atomic snapshot a Job publishes after each completed
// iteration. Readers (the JobRunner's control loop) may observe any
// consistent-per-field value; fields are not mutually consistent as a group.
type JobResults struct {
	nodes   atomic.Uint64
	ttHits  atomic.Uint64
	depth   atomic.Int32
	move    atomic.Uint32
	score   atomic.Int32
}

func (r *JobResults) snapshotDepth() int     { return int(r.depth.Load()) }
func (r *JobResults) snapshotMove() board.Move { return board.Move(r.move.Load()) }
func (r *JobResults) snapshotScore() int     { return int(r.score.Load()) }
func (r *JobResults) snapshotNodes() uint64  { return r.nodes.Load() }
func (r *JobResults) snapshotTTHits() uint64 { return r.ttHits.Load() }

func (r *JobResults) publish(depth int, move board.Move, score int) {
	r.depth.Store(int32(depth))
	r.move.Store(uint32(move))
	r.score.Store(int32(score))
}

// pvTable tracks the principal variation during one negamax search.
type pvTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Job is one Lazy-SMP search worker: a private board, its own repetition
// stack and move-ordering tables, and an iterative-deepening alpha-beta
// driver that shares the table and communicator with every other Job.
type Job struct {
	id   int
	pos  *board.Position
	tt   *TranspositionTable
	comm *JobCommunicator

	orderer    *MoveOrderer
	repetition []uint64 // Zobrist hashes of positions played en route to and during this search

	undoStack [MaxPly]board.UndoInfo
	pv        pvTable

	Results JobResults
}

// NewJob creates a worker seeded from root. history holds the hashes of the
// positions played before root (oldest first, root's own hash excluded);
// NewJob appends root's hash to start the repetition stack.
func NewJob(id int, root *board.Position, history []uint64, tt *TranspositionTable, comm *JobCommunicator) *Job {
	j := &Job{
		id:         id,
		pos:        root.Copy(),
		tt:         tt,
		comm:       comm,
		orderer:    NewMoveOrderer(),
		repetition: append(append([]uint64{}, history...), root.Hash),
	}
	return j
}

// Run drives iterative deepening from depth 1 up to maxDepth (0 = unbounded,
// bounded instead by the communicator's stop signal), publishing JobResults
// and calling onIteration (when non-nil) after every completed iteration; the
// runner's callback forwards only job 0's results to the protocol.
func (j *Job) Run(maxDepth int, onIteration func(depth, score int, move board.Move, pv []board.Move)) {
	if maxDepth <= 0 || maxDepth > MaxPly-1 {
		maxDepth = MaxPly - 1
	}

	for depth := 1; depth <= maxDepth; depth++ {
		if j.comm.IsStopped() {
			return
		}

		score := j.negamax(depth, 0, -Infinity, Infinity)
		if j.comm.IsStopped() {
			return
		}

		var best board.Move
		if j.pv.length[0] > 0 {
			best = j.pv.moves[0][0]
		}
		j.Results.publish(depth, best, score)

		if onIteration != nil {
			onIteration(depth, score, best, j.currentPV())
		}

		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			return // forced mate found, no point searching deeper
		}
	}
}

func (j *Job) currentPV() []board.Move {
	pv := make([]board.Move, j.pv.length[0])
	copy(pv, j.pv.moves[0][:j.pv.length[0]])
	return pv
}

func (j *Job) negamax(depth, ply int, alpha, beta int) int {
	if j.Results.nodes.Load()&1023 == 0 && j.comm.IsStopped() {
		return 0
	}
	j.Results.nodes.Add(1)
	j.pv.length[ply] = ply

	if ply > 0 && j.isDraw() {
		return 0
	}
	if ply >= MaxPly-1 {
		return Evaluate(j.pos)
	}

	var ttMove board.Move
	if entry, found := j.tt.Probe(j.pos.Hash); found {
		j.Results.ttHits.Add(1)
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case BoundExact:
				return score
			case BoundLower:
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if depth <= 0 {
		return j.quiescence(ply, alpha, beta)
	}

	inCheck := j.pos.InCheck()
	moves := j.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	scores := j.orderer.ScoreMoves(j.pos, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	bound := BoundUpper

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		j.undoStack[ply] = j.pos.MakeMove(move)
		if !j.undoStack[ply].Valid {
			continue
		}
		j.repetition = append(j.repetition, j.pos.Hash)

		score := -j.negamax(depth-1, ply+1, -beta, -alpha)

		j.repetition = j.repetition[:len(j.repetition)-1]
		j.pos.UnmakeMove(move, j.undoStack[ply])

		if j.comm.IsStopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				bound = BoundExact
				j.pv.moves[ply][ply] = move
				for k := ply + 1; k < j.pv.length[ply+1]; k++ {
					j.pv.moves[ply][k] = j.pv.moves[ply+1][k]
				}
				j.pv.length[ply] = j.pv.length[ply+1]
			}
		}

		if score >= beta {
			j.tt.Store(j.pos.Hash, bestMove, depth, AdjustScoreToTT(score, ply), BoundLower)
			if !move.IsCapture(j.pos) {
				j.orderer.UpdateKillers(move, ply)
				j.orderer.UpdateHistory(move, depth, true)
			}
			return score
		}
	}

	j.tt.Store(j.pos.Hash, bestMove, depth, AdjustScoreToTT(bestScore, ply), bound)
	return bestScore
}

// quiescence searches only captures and, out of check, every evasion, to
// settle tactical sequences before handing back a static evaluation.
func (j *Job) quiescence(ply, alpha, beta int) int {
	if j.comm.IsStopped() {
		return 0
	}
	j.Results.nodes.Add(1)

	inCheck := j.pos.InCheck()
	if ply >= MaxPly-1 || ply > maxQuiescencePly {
		return Evaluate(j.pos)
	}

	var standPat int
	if !inCheck {
		standPat = Evaluate(j.pos)
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
		bigDelta := QueenValue
		if standPat+bigDelta < alpha {
			return alpha
		}
	} else {
		standPat = -Infinity
	}

	var moves *board.MoveList
	if inCheck {
		moves = j.pos.GenerateLegalMoves()
	} else {
		moves = j.pos.GenerateCaptures()
	}
	if inCheck && moves.Len() == 0 {
		return -MateScore + ply
	}

	scores := j.orderer.ScoreMoves(j.pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		if !inCheck {
			captureValue := 0
			if move.IsEnPassant() {
				captureValue = PawnValue
			} else if captured := j.pos.PieceAt(move.To()); captured != board.NoPiece {
				captureValue = pieceValues[captured.Type()]
			}
			if move.IsPromotion() {
				captureValue += QueenValue - PawnValue
			}
			if standPat+captureValue+200 < alpha {
				continue
			}
		}

		undo := j.pos.MakeMove(move)
		if !undo.Valid {
			continue
		}
		j.repetition = append(j.repetition, j.pos.Hash)

		score := -j.quiescence(ply+1, -beta, -alpha)

		j.repetition = j.repetition[:len(j.repetition)-1]
		j.pos.UnmakeMove(move, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// isDraw reports the 50-move rule, insufficient material, or the current hash
// appearing at least twice earlier on the path within the half-move-clock
// window (a threefold repetition).
func (j *Job) isDraw() bool {
	if j.pos.HalfMoveClock >= 100 {
		return true
	}
	if j.pos.IsInsufficientMaterial() {
		return true
	}

	count := 0
	hash := j.pos.Hash
	limit := len(j.repetition) - j.pos.HalfMoveClock - 1
	if limit < 0 {
		limit = 0
	}
	for i := len(j.repetition) - 2; i >= limit; i-- {
		if j.repetition[i] == hash {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}
