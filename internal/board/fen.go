package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENErrorKind discriminates the ways a FEN string can fail to parse.
type FENErrorKind int

const (
	FENOk FENErrorKind = iota
	FENEmptyData
	FENExpectedSpace
	FENUnexpectedCharacter
	FENBoardRowOverflow
	FENBoardNotEnoughRows
	FENCastlingInvalid
	FENEnpassantInvalid
	FENNumberOverflow
)

func (k FENErrorKind) String() string {
	switch k {
	case FENOk:
		return "Ok"
	case FENEmptyData:
		return "EmptyData"
	case FENExpectedSpace:
		return "ExpectedSpace"
	case FENUnexpectedCharacter:
		return "UnexpectedCharacter"
	case FENBoardRowOverflow:
		return "BoardRowOverflow"
	case FENBoardNotEnoughRows:
		return "BoardNotEnoughRows"
	case FENCastlingInvalid:
		return "CastlingInvalid"
	case FENEnpassantInvalid:
		return "EnpassantInvalid"
	case FENNumberOverflow:
		return "NumberOverflow"
	default:
		return "Unknown"
	}
}

// FENError is the discriminated result returned by ParseFEN on failure. It
// satisfies the error interface so it composes with errors.Is/As, while
// callers that want the discriminant switch on Kind directly.
type FENError struct {
	Kind    FENErrorKind
	Context string
}

func (e *FENError) Error() string {
	if e.Context == "" {
		return "fen: " + e.Kind.String()
	}
	return "fen: " + e.Kind.String() + ": " + e.Context
}

func fenErr(kind FENErrorKind, context string) error {
	return &FENError{Kind: kind, Context: context}
}

// ParseFEN parses a FEN string and returns a Position. On failure the
// returned error is always a *FENError carrying one of the nine discriminant
// kinds documented in FENErrorKind.
func ParseFEN(fen string) (*Position, error) {
	if strings.TrimSpace(fen) == "" {
		return nil, fenErr(FENEmptyData, "empty fen string")
	}

	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fenErr(FENExpectedSpace, "need at least 4 space-separated fields")
	}

	pos := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fenErr(FENUnexpectedCharacter, "side to move must be 'w' or 'b'")
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fenErr(FENEnpassantInvalid, parts[3])
		}
		pos.EnPassant = sq
	}

	// Half-move clock and full-move number default to 0 and 1 if absent.
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fenErr(FENNumberOverflow, "half-move clock: "+parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 0 {
			return nil, fenErr(FENNumberOverflow, "full-move number: "+parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	pos.updateOccupied()
	pos.findKings()
	pos.Hash = pos.ComputeHash()
	pos.PawnKey = pos.ComputePawnKey()

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenErr(FENBoardNotEnoughRows, placement)
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fenErr(FENBoardRowOverflow, rankStr)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
			} else {
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fenErr(FENUnexpectedCharacter, string(c))
				}
				sq := NewSquare(file, rank)
				pos.setPiece(piece, sq)
				file++
			}
		}

		if file != 8 {
			return fenErr(FENBoardRowOverflow, rankStr)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			pos.CastlingRights |= WhiteKingSideCastle
		case 'Q':
			pos.CastlingRights |= WhiteQueenSideCastle
		case 'k':
			pos.CastlingRights |= BlackKingSideCastle
		case 'q':
			pos.CastlingRights |= BlackQueenSideCastle
		default:
			return fenErr(FENCastlingInvalid, string(c))
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][pt][sq]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= zobristCastling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}

// ComputePawnKey computes the pawn hash key from scratch.
func (p *Position) ComputePawnKey() uint64 {
	var key uint64

	for c := White; c <= Black; c++ {
		bb := p.Pieces[c][Pawn]
		for bb != 0 {
			sq := bb.PopLSB()
			key ^= zobristPiece[c][Pawn][sq]
		}
	}

	return key
}
