package board

// GenSimpleMoves returns the non-capturing pseudo-legal moves: pushes, double
// pushes and castling, excluding en passant and promotions (those come from
// GenCaptures).
func (p *Position) GenSimpleMoves() *MoveList {
	ml := NewMoveList()
	all := NewMoveList()
	p.generateAllMoves(all)
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if !m.IsCapture(p) && !m.IsEnPassant() && !m.IsPromotion() {
			ml.Add(m)
		}
	}
	return ml
}

// GenCaptures returns capturing pseudo-legal moves, en passant, and every
// promotion (capturing or not), one entry per promotion piece, before the
// legality filter is applied.
func (p *Position) GenCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return ml
}

// GenAllMoves returns the pseudo-legal multiset union of GenSimpleMoves and
// GenCaptures, equal to GeneratePseudoLegalMoves.
func (p *Position) GenAllMoves() *MoveList {
	return p.GeneratePseudoLegalMoves()
}

// IsMoveValid is the self-test oracle: true iff m is well-formed for the side
// to move and appears in GenAllMoves(p).
func (p *Position) IsMoveValid(m Move) bool {
	if !m.IsWellFormed(p.SideToMove) {
		return false
	}
	return p.GenAllMoves().Contains(m)
}

// IsCellAttacked reports whether color c attacks the given square, under the
// name callers expecting a generic "cell" vocabulary would use.
func (p *Position) IsCellAttacked(sq Square, c Color) bool {
	return p.IsSquareAttacked(sq, c)
}
