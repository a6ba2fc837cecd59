package search

import (
	"github.com/nullmove-dev/chesscore/internal/board"
)

// Material values, centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0, 0}

const tempoBonus = 10

var passedPawnBonus = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

const (
	isolatedPawnPenaltyMg = 12
	isolatedPawnPenaltyEg = 18
	backwardPawnPenaltyMg = 8
	backwardPawnPenaltyEg = 12
	rookHalfOpenFileMg    = 10
	rookHalfOpenFileEg    = 15
	rookOpenFileMg        = 20
	rookOpenFileEg        = 25
)

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var psts = [...][64]int{pawnPST, knightPST, bishopPST, rookPST, queenPST}

const maxPhase = 24

// Evaluate returns the static evaluation of pos in centipawns from the
// perspective of the side to move: positive favors the mover. It is a pure
// function of the board, invoked by a search job once per leaf/quiescence
// node, never mutating pos.
func Evaluate(pos *board.Position) int {
	var mgScore, egScore, phase int

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()

				mgScore += sign * pieceValues[pt]
				egScore += sign * pieceValues[pt]

				pstSq := sq
				if c == board.Black {
					pstSq = sq.Mirror()
				}
				if pt == board.King {
					mgScore += sign * kingMidgamePST[pstSq]
					egScore += sign * kingEndgamePST[pstSq]
				} else {
					v := psts[pt][pstSq]
					mgScore += sign * v
					egScore += sign * v
				}

				switch pt {
				case board.Knight, board.Bishop:
					phase++
				case board.Rook:
					phase += 2
				case board.Queen:
					phase += 4
				}
			}
		}
	}

	ppMg, ppEg := evaluatePassedPawns(pos)
	mgScore += ppMg
	egScore += ppEg

	psMg, psEg := evaluatePawnStructure(pos)
	mgScore += psMg
	egScore += psEg

	rfMg, rfEg := evaluateRooksOnFiles(pos)
	mgScore += rfMg
	egScore += rfEg

	if phase > maxPhase {
		phase = maxPhase
	}
	score := (mgScore*phase + egScore*(maxPhase-phase)) / maxPhase

	if pos.SideToMove == board.Black {
		score = -score
	}
	return score + tempoBonus
}

// evaluatePassedPawns scores pawns with no enemy pawn in their
// PassedPawnFront mask, bonus scaled by how far advanced they are.
func evaluatePassedPawns(pos *board.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		enemy := c.Other()
		bb := pos.Pieces[c][board.Pawn]
		for bb != 0 {
			sq := bb.PopLSB()
			if pos.Pieces[enemy][board.Pawn]&board.PassedPawnFront[c][sq] != 0 {
				continue
			}
			rank := sq.RelativeRank(c)
			bonus := passedPawnBonus[rank]
			mg += sign * bonus
			eg += sign * bonus * 3 / 2
		}
	}
	return mg, eg
}

// evaluatePawnStructure penalizes isolated pawns (no friendly pawns on
// either adjacent file) and backward pawns (no friendly pawn support behind
// and an enemy pawn controlling the stop square).
func evaluatePawnStructure(pos *board.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		enemy := c.Other()
		bb := pos.Pieces[c][board.Pawn]
		for bb != 0 {
			sq := bb.PopLSB()

			if pos.Pieces[c][board.Pawn]&board.IsolatedFile[sq] == 0 {
				mg -= sign * isolatedPawnPenaltyMg
				eg -= sign * isolatedPawnPenaltyEg
				continue
			}

			if pos.Pieces[enemy][board.Pawn]&board.BackwardPawnSentry[c][sq] != 0 {
				mg -= sign * backwardPawnPenaltyMg
				eg -= sign * backwardPawnPenaltyEg
			}
		}
	}
	return mg, eg
}

// evaluateRooksOnFiles bonuses a rook on an open file (no pawns of either
// color ahead of it on that file) or half-open file (no pawns of its own
// color ahead of it, per HalfOpenFront).
func evaluateRooksOnFiles(pos *board.Position) (mg, eg int) {
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		enemy := c.Other()
		bb := pos.Pieces[c][board.Rook]
		for bb != 0 {
			sq := bb.PopLSB()
			front := board.HalfOpenFront[c][sq]
			ownAhead := pos.Pieces[c][board.Pawn] & front
			enemyAhead := pos.Pieces[enemy][board.Pawn] & front
			switch {
			case ownAhead == 0 && enemyAhead == 0:
				mg += sign * rookOpenFileMg
				eg += sign * rookOpenFileEg
			case ownAhead == 0:
				mg += sign * rookHalfOpenFileMg
				eg += sign * rookHalfOpenFileEg
			}
		}
	}
	return mg, eg
}
