package search

import (
	"testing"

	"github.com/nullmove-dev/chesscore/internal/board"
)

func TestScoreMovesRanksTTMoveHighest(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	ttMove := moves.Get(0)

	mo := NewMoveOrderer()
	scores := mo.ScoreMoves(pos, moves, 0, ttMove)

	for i := 1; i < moves.Len(); i++ {
		if scores[0] <= scores[i] {
			t.Fatalf("TT move score %d not strictly highest (scores[%d]=%d)", scores[0], i, scores[i])
		}
	}
}

func TestMVVLVARanksQueenCaptureOverPawnCapture(t *testing.T) {
	// White rook on d1 can take either a pawn on d5 or a queen on a1.
	pos, err := board.ParseFEN("8/8/8/3p4/8/8/4K3/q2R4 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := pos.GenerateLegalMoves()

	mo := NewMoveOrderer()
	scores := mo.ScoreMoves(pos, moves, 0, board.NoMove)

	var takePawnScore, takeQueenScore int
	found := 0
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != board.D1 {
			continue
		}
		switch m.To() {
		case board.D5:
			takePawnScore = scores[i]
			found++
		case board.A1:
			takeQueenScore = scores[i]
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected both rook captures to be legal moves, found %d", found)
	}
	if takeQueenScore <= takePawnScore {
		t.Errorf("Rxa1 (takes queen) scored %d, Rxd5 (takes pawn) scored %d; queen capture should rank higher", takeQueenScore, takePawnScore)
	}
}

func TestPickMoveSelectsHighestRemainingScore(t *testing.T) {
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	scores := make([]int, moves.Len())
	for i := range scores {
		scores[i] = i // strictly increasing, so the last move is "best"
	}

	PickMove(moves, scores, 0)
	if scores[0] != moves.Len()-1 {
		t.Errorf("PickMove did not bring the highest score to index 0: got %d, want %d", scores[0], moves.Len()-1)
	}
}

func TestUpdateKillersTracksTwoMostRecentDistinctMoves(t *testing.T) {
	mo := NewMoveOrderer()
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)
	m3 := board.NewMove(board.G1, board.F3)

	mo.UpdateKillers(m1, 3)
	mo.UpdateKillers(m2, 3)
	if mo.killers[3][0] != m2 || mo.killers[3][1] != m1 {
		t.Fatalf("killers after m1,m2 = %v,%v want %v,%v", mo.killers[3][0], mo.killers[3][1], m2, m1)
	}

	mo.UpdateKillers(m2, 3) // repeating the current top killer must not duplicate it
	if mo.killers[3][0] != m2 || mo.killers[3][1] != m1 {
		t.Errorf("repeating the top killer changed killer slots: got %v,%v", mo.killers[3][0], mo.killers[3][1])
	}

	mo.UpdateKillers(m3, 3)
	if mo.killers[3][0] != m3 || mo.killers[3][1] != m2 {
		t.Errorf("killers after m3 = %v,%v want %v,%v", mo.killers[3][0], mo.killers[3][1], m3, m2)
	}
}

func TestUpdateHistoryRewardsAndAgesScores(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateHistory(m, 4, true)
	if mo.history[board.E2][board.E4] != 16 {
		t.Fatalf("history after one depth-4 bonus = %d, want 16", mo.history[board.E2][board.E4])
	}

	mo.Clear()
	if mo.history[board.E2][board.E4] != 8 {
		t.Errorf("Clear should halve history scores: got %d, want 8", mo.history[board.E2][board.E4])
	}
	if mo.killers[3][0] != board.NoMove {
		t.Errorf("Clear should reset killers to NoMove")
	}
}

func TestUpdateHistoryPenalizesAndClampsNegative(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4)
	for i := 0; i < 2000; i++ {
		mo.UpdateHistory(m, 32, false)
	}
	if mo.history[board.E2][board.E4] != -400_000 {
		t.Errorf("history should clamp at -400000, got %d", mo.history[board.E2][board.E4])
	}
}
