package search

import (
	"sync"
	"testing"

	"github.com/nullmove-dev/chesscore/internal/board"
)

func TestTranspositionTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0x1234567890abcdef)
	move := board.NewMove(board.E2, board.E4)

	tt.Store(key, move, 6, 123, BoundExact)

	entry, ok := tt.Probe(key)
	if !ok {
		t.Fatal("Probe reported a miss for a key just stored")
	}
	if entry.BestMove != move || entry.Depth != 6 || entry.Score != 123 || entry.Bound != BoundExact {
		t.Errorf("Probe returned %+v, want move=%v depth=6 score=123 bound=Exact", entry, move)
	}
}

func TestTranspositionTableProbeMissOnUnknownKey(t *testing.T) {
	tt := NewTranspositionTable(1)
	if _, ok := tt.Probe(0xdeadbeef); ok {
		t.Error("Probe hit on a key never stored")
	}
}

func TestTranspositionTableDepthPreferredResistsShallowOverwrite(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(42)
	deep := board.NewMove(board.D2, board.D4)
	shallow := board.NewMove(board.G1, board.F3)

	tt.Store(key, deep, 10, 50, BoundExact)
	tt.Store(key, shallow, 2, -10, BoundExact)

	entry, ok := tt.Probe(key)
	if !ok {
		t.Fatal("Probe missed after two stores")
	}
	if entry.BestMove != deep {
		t.Errorf("depth-preferred slot was overwritten by a shallower store: got %v, want %v", entry.BestMove, deep)
	}
}

func TestTranspositionTableNextEpochAllowsShallowerReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(42)
	deep := board.NewMove(board.D2, board.D4)
	shallow := board.NewMove(board.G1, board.F3)

	tt.Store(key, deep, 10, 50, BoundExact)
	tt.NextEpoch()
	tt.Store(key, shallow, 2, -10, BoundExact)

	entry, ok := tt.Probe(key)
	if !ok {
		t.Fatal("Probe missed after epoch bump and shallow store")
	}
	if entry.BestMove != shallow {
		t.Errorf("depth-preferred slot should accept a shallower store from a new epoch: got %v, want %v", entry.BestMove, shallow)
	}
}

func TestTranspositionTableClearRemovesEntries(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(7)
	tt.Store(key, board.NewMove(board.E2, board.E4), 4, 0, BoundExact)
	tt.Clear()
	if _, ok := tt.Probe(key); ok {
		t.Error("Probe hit an entry that survived Clear")
	}
}

func TestTranspositionTableResizeDiscardsOldEntries(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(7)
	tt.Store(key, board.NewMove(board.E2, board.E4), 4, 0, BoundExact)
	tt.Resize(2)
	if _, ok := tt.Probe(key); ok {
		t.Error("Probe hit an entry that survived Resize")
	}
}

func TestMateScoreAdjustRoundTrip(t *testing.T) {
	for _, ply := range []int{0, 1, 5, 40} {
		for _, score := range []int{MateScore - 1, -MateScore + 1, MateScore - MaxPly - 5, -(MateScore - MaxPly - 5)} {
			stored := AdjustScoreToTT(score, ply)
			back := AdjustScoreFromTT(stored, ply)
			if back != score {
				t.Errorf("ply=%d score=%d: round trip through TT gave %d", ply, score, back)
			}
		}
	}
}

func TestMateScoreAdjustLeavesNonMateScoresUnchanged(t *testing.T) {
	if AdjustScoreToTT(17, 5) != 17 {
		t.Error("AdjustScoreToTT changed a non-mate score")
	}
	if AdjustScoreFromTT(17, 5) != 17 {
		t.Error("AdjustScoreFromTT changed a non-mate score")
	}
}

// TestTranspositionTableConcurrentAccess exercises the lock-free slot's XOR
// check word under a data race: many goroutines probing and storing the
// same small set of keys should never observe an entry whose Key field
// doesn't match the key used to compute the bucket index.
func TestTranspositionTableConcurrentAccess(t *testing.T) {
	tt := NewTranspositionTable(1)
	keys := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	moves := []board.Move{
		board.NewMove(board.A2, board.A4),
		board.NewMove(board.B2, board.B4),
		board.NewMove(board.C2, board.C4),
		board.NewMove(board.D2, board.D4),
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				k := keys[(g+i)%len(keys)]
				m := moves[i%len(moves)]
				tt.Store(k, m, i%64, i%200-100, Bound(i%3))
				if e, ok := tt.Probe(k); ok && e.Key != k {
					t.Errorf("Probe(%d) returned an entry keyed %d", k, e.Key)
				}
			}
		}(g)
	}
	wg.Wait()
}
