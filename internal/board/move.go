package board

import "fmt"

// Move encodes a chess move in 32 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-16: kind
type Move uint32

// MoveKind distinguishes the move shapes that need special make/unmake handling.
type MoveKind uint32

const (
	KindNull MoveKind = iota
	KindSimple
	KindPawnDoubleMove
	KindEnpassant
	KindPromote
	KindCastlingKingside
	KindCastlingQueenside
)

const (
	kindShift  = 14
	kindMask   = Move(0x7) << kindShift
	promoShift = 12
	promoMask  = Move(0x3) << promoShift
	fromMask   = Move(0x3F)
	toShift    = 6
	toMask     = Move(0x3F) << toShift
)

// NullMove is the move reported when a search finds no best move.
const NullMove Move = 0

// NoMove is an alias kept for callers expecting a "no move" sentinel.
const NoMove Move = NullMove

// NewMove creates a non-special move (kind inferred to be Simple by the caller's
// use site; callers that know the move is a double pawn push, en passant capture,
// promotion or castling should use the dedicated constructors below).
func NewMove(from, to Square) Move {
	return newKindedMove(from, to, KindSimple)
}

// NewDoublePawnMove creates a double pawn push, which sets the en-passant square.
func NewDoublePawnMove(from, to Square) Move {
	return newKindedMove(from, to, KindPawnDoubleMove)
}

// NewPromotion creates a promotion move (capturing or not).
func NewPromotion(from, to Square, promo PieceType) Move {
	promoIdx := Move(promo - Knight)
	return newKindedMove(from, to, KindPromote) | (promoIdx << promoShift)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return newKindedMove(from, to, KindEnpassant)
}

// NewCastlingKingside creates a kingside (O-O) castling move, encoded as the king's
// own movement from e1/e8 to g1/g8.
func NewCastlingKingside(from, to Square) Move {
	return newKindedMove(from, to, KindCastlingKingside)
}

// NewCastlingQueenside creates a queenside (O-O-O) castling move, encoded as the
// king's own movement from e1/e8 to c1/c8.
func NewCastlingQueenside(from, to Square) Move {
	return newKindedMove(from, to, KindCastlingQueenside)
}

func newKindedMove(from, to Square, kind MoveKind) Move {
	return Move(from) | Move(to)<<toShift | Move(kind)<<kindShift
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Kind returns the move's kind.
func (m Move) Kind() MoveKind {
	return MoveKind((m & kindMask) >> kindShift)
}

// Promotion returns the promotion piece type (only valid if IsPromotion() is true).
func (m Move) Promotion() PieceType {
	return PieceType((m&promoMask)>>promoShift) + Knight
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind() == KindPromote
}

// IsCastling returns true if this is either castling move.
func (m Move) IsCastling() bool {
	k := m.Kind()
	return k == KindCastlingKingside || k == KindCastlingQueenside
}

// IsCastlingKingside returns true if this is a kingside castle.
func (m Move) IsCastlingKingside() bool {
	return m.Kind() == KindCastlingKingside
}

// IsCastlingQueenside returns true if this is a queenside castle.
func (m Move) IsCastlingQueenside() bool {
	return m.Kind() == KindCastlingQueenside
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Kind() == KindEnpassant
}

// IsDoublePawnMove returns true if this is a two-square pawn push.
func (m Move) IsDoublePawnMove() bool {
	return m.Kind() == KindPawnDoubleMove
}

// IsNull returns true if this is the null move.
func (m Move) IsNull() bool {
	return m.Kind() == KindNull
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To())
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// IsWellFormed reports whether m is well-formed for side S: squares in range,
// distinct source/destination, a promotion piece present iff the kind demands
// it, and castling/double-push destinations on the ranks appropriate to side.
func (m Move) IsWellFormed(side Color) bool {
	if m.IsNull() {
		return true
	}
	from, to := m.From(), m.To()
	if from > H8 || to > H8 || from == to {
		return false
	}
	if m.IsPromotion() {
		promo := m.Promotion()
		if promo < Knight || promo > Queen {
			return false
		}
	} else if m&promoMask != 0 {
		return false
	}
	switch m.Kind() {
	case KindPawnDoubleMove:
		if side == White {
			return from.Rank() == 1 && to.Rank() == 3
		}
		return from.Rank() == 6 && to.Rank() == 4
	case KindCastlingKingside, KindCastlingQueenside:
		homeRank := 0
		if side == Black {
			homeRank = 7
		}
		return from.Rank() == homeRank && to.Rank() == homeRank
	}
	return true
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}

	return s
}

// ParseMove parses a UCI format move string, reconstructing the move kind from
// board context (the piece on the source square and the board's en passant state).
func ParseMove(s string, pos *Position) (Move, error) {
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) < 4 {
		return NullMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NullMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NullMove, fmt.Errorf("no piece at %s", from)
	}

	pt := piece.Type()

	if pt == King && abs(int(to)-int(from)) == 2 {
		if to.File() == 6 {
			return NewCastlingKingside(from, to), nil
		}
		return NewCastlingQueenside(from, to), nil
	}

	if pt == Pawn && to == pos.EnPassant && pos.EnPassant != NoSquare {
		return NewEnPassant(from, to), nil
	}

	if pt == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		return NewDoublePawnMove(from, to), nil
	}

	return NewMove(from, to), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Sorted returns a copy of the moves sorted by packed bit pattern, used by the
// generator-decomposition property to compare multisets irrespective of
// generation order.
func (ml *MoveList) Sorted() []Move {
	out := make([]Move, ml.count)
	copy(out, ml.moves[:ml.count])
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// UndoInfo stores what MakeMove saves to reverse a move: the captured piece
// plus the incidental state (castling, en passant, half-move clock, hash,
// checkers) that MakeMove mutates in place. UnmakeMove moves the pieces back
// incrementally; MakeMove does not fill PawnKey, KingSquare, Pieces,
// Occupied or AllOccupied.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	KingSquare     [2]Square      // King positions before move
	Pieces         [2][6]Bitboard // Piece bitboards before move
	Occupied       [2]Bitboard    // Occupancy bitboards
	AllOccupied    Bitboard       // All pieces
	Valid          bool           // True if move was actually applied
}
