package board

import "testing"

// sortedStrings renders a move slice as "from-to-promo" strings for
// order-independent comparison.
func sortedStrings(ml *MoveList) []string {
	out := make([]string, 0, ml.Len())
	for _, m := range ml.Sorted() {
		out = append(out, m.String())
	}
	return out
}

func TestGenAllMovesIsUnionOfSimpleAndCaptures(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		all := sortedStrings(pos.GenAllMoves())

		union := NewMoveList()
		simple := pos.GenSimpleMoves()
		for i := 0; i < simple.Len(); i++ {
			union.Add(simple.Get(i))
		}
		captures := pos.GenCaptures()
		for i := 0; i < captures.Len(); i++ {
			union.Add(captures.Get(i))
		}

		got := sortedStrings(union)
		if len(got) != len(all) {
			t.Fatalf("%q: union has %d moves, GenAllMoves has %d", fen, len(got), len(all))
		}
		for i := range all {
			if got[i] != all[i] {
				t.Errorf("%q: union[%d] = %s, GenAllMoves[%d] = %s", fen, i, got[i], i, all[i])
			}
		}
	}
}

func TestGenSimpleAndCapturesAreDisjoint(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	captures := pos.GenCaptures()
	simple := pos.GenSimpleMoves()
	for i := 0; i < captures.Len(); i++ {
		if simple.Contains(captures.Get(i)) {
			t.Errorf("capture %s also appears in GenSimpleMoves", captures.Get(i))
		}
	}
}

func TestIsMoveValidOracle(t *testing.T) {
	pos := NewPosition()
	legal := pos.GenerateLegalMoves()
	if legal.Len() == 0 {
		t.Fatal("starting position has no legal moves")
	}
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if !pos.IsMoveValid(m) {
			t.Errorf("IsMoveValid rejected legal move %s", m)
		}
	}

	bogus := NewMove(E2, E5) // not a legal pawn move from the start position
	if pos.IsMoveValid(bogus) {
		t.Errorf("IsMoveValid accepted illegal move %s", bogus)
	}
}

func TestMoveIsWellFormed(t *testing.T) {
	cases := []struct {
		name string
		m    Move
		side Color
		want bool
	}{
		{"null move", NullMove, White, true},
		{"simple e2e4", NewMove(E2, E4), White, true},
		{"from == to", NewMove(E2, E2), White, false},
		{"white double push correct ranks", NewDoublePawnMove(E2, E4), White, true},
		{"white double push wrong ranks", NewDoublePawnMove(E3, E5), White, false},
		{"black double push correct ranks", NewDoublePawnMove(E7, E5), Black, true},
		{"white O-O home rank", NewCastlingKingside(E1, G1), White, true},
		{"white O-O wrong rank", NewCastlingKingside(E2, G2), White, false},
		{"promotion to queen", NewPromotion(E7, E8, Queen), White, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.IsWellFormed(tc.side); got != tc.want {
				t.Errorf("IsWellFormed(%v) = %v, want %v", tc.side, got, tc.want)
			}
		})
	}
}

func TestMakeUnmakeRestoresPositionExactly(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		before := *pos

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := pos.MakeMove(m)
			if !undo.Valid {
				t.Errorf("%q: legal move %s rejected by MakeMove", fen, m)
				continue
			}
			pos.UnmakeMove(m, undo)
			if *pos != before {
				t.Errorf("%q: make/unmake of %s did not restore position exactly", fen, m)
			}
		}
	}
}
