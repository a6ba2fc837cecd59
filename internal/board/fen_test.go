package board

import "testing"

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(StartFEN) returned error: %v", err)
	}
	if pos.SideToMove != White {
		t.Errorf("SideToMove = %v, want White", pos.SideToMove)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("CastlingRights = %v, want AllCastling", pos.CastlingRights)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("EnPassant = %v, want NoSquare", pos.EnPassant)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", pos.HalfMoveClock, pos.FullMoveNumber)
	}
}

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) returned error: %v", fen, err)
		}
		again, err := ParseFEN(pos.ToFEN())
		if err != nil {
			t.Fatalf("ParseFEN(ToFEN(%q)) returned error: %v", fen, err)
		}
		if pos.Hash != again.Hash {
			t.Errorf("round trip through %q changed hash: %#x != %#x", fen, pos.Hash, again.Hash)
		}
		if pos.ToFEN() != again.ToFEN() {
			t.Errorf("round trip through %q not stable: %q != %q", fen, pos.ToFEN(), again.ToFEN())
		}
	}
}

func TestParseFENErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want FENErrorKind
	}{
		{"empty", "", FENEmptyData},
		{"whitespace only", "   ", FENEmptyData},
		{"missing fields", "8/8/8/8/8/8/8/8 w", FENExpectedSpace},
		{"bad side to move", "8/8/8/8/8/8/8/8 x KQkq - 0 1", FENUnexpectedCharacter},
		{"bad piece char", "8/8/8/8/8/8/8/7x w KQkq - 0 1", FENUnexpectedCharacter},
		{"row too short", "7/8/8/8/8/8/8/8 w KQkq - 0 1", FENBoardRowOverflow},
		{"too few ranks", "8/8/8/8/8/8/8 w KQkq - 0 1", FENBoardNotEnoughRows},
		{"bad castling", "8/8/8/8/8/8/8/8 w KQkqx - 0 1", FENCastlingInvalid},
		{"bad en passant", "8/8/8/8/8/8/8/8 w KQkq z9 0 1", FENEnpassantInvalid},
		{"bad half-move clock", "8/8/8/8/8/8/8/8 w KQkq - -1 1", FENNumberOverflow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded, want %v", tc.fen, tc.want)
			}
			fe, ok := err.(*FENError)
			if !ok {
				t.Fatalf("ParseFEN(%q) returned %T, want *FENError", tc.fen, err)
			}
			if fe.Kind != tc.want {
				t.Errorf("ParseFEN(%q) kind = %v, want %v", tc.fen, fe.Kind, tc.want)
			}
		})
	}
}

func TestParseFENOverflowRow(t *testing.T) {
	_, err := ParseFEN("pppppppp1/8/8/8/8/8/8/8 w KQkq - 0 1")
	if err == nil {
		t.Fatal("ParseFEN with a 9-square rank succeeded, want error")
	}
	fe, ok := err.(*FENError)
	if !ok || fe.Kind != FENBoardRowOverflow {
		t.Errorf("error = %v, want FENBoardRowOverflow", err)
	}
}
