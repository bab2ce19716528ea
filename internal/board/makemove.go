package board

import (
	"fmt"
	"unicode"
)

// MoveFilter restricts which moves MakeMove accepts.
type MoveFilter int

const (
	AllMoves MoveFilter = iota
	OnlyCaptures
)

// MakeMove applies m to the board. It returns false and leaves the board untouched when
// the move would leave the mover's king in check, or when filter is OnlyCaptures and m
// is quiet.
func (b *Board) MakeMove(m Move, filter MoveFilter) bool {
	if filter == OnlyCaptures && !m.IsCapture() {
		return false
	}

	saved := *b

	source, target := m.Source(), m.Target()
	piece := m.Piece()
	mover := b.side

	b.bitboards[piece] &^= source.Bitboard()
	b.bitboards[piece] |= target.Bitboard()

	if m.IsCapture() && !m.IsEnPassant() {
		first, last := piecesOf(mover.Other())
		for p := first; p <= last; p++ {
			if b.hasPiece(p, target) {
				b.bitboards[p] &^= target.Bitboard()
				break
			}
		}
	}

	if promo := m.Promoted(); promo != NoPiece {
		b.bitboards[piece] &^= target.Bitboard()
		b.bitboards[promo] |= target.Bitboard()
	}

	if m.IsEnPassant() {
		if mover == White {
			b.bitboards[BlackPawn] &^= Square(target + 8).Bitboard()
		} else {
			b.bitboards[WhitePawn] &^= Square(target - 8).Bitboard()
		}
	}

	b.enPassant = NoSquare
	if m.IsDoublePush() {
		if mover == White {
			b.enPassant = target + 8
		} else {
			b.enPassant = target - 8
		}
	}

	if m.IsCastling() {
		for _, opt := range castleOptions {
			if opt.to == target && opt.from == source {
				rook := WhiteRook
				if opt.mover == Black {
					rook = BlackRook
				}
				b.bitboards[rook] &^= opt.rookAt[0].Bitboard()
				b.bitboards[rook] |= opt.rookAt[1].Bitboard()
				break
			}
		}
	}

	b.castle &= castlingMasks[source]
	b.castle &= castlingMasks[target]

	b.updateOccupancies()

	if piece == WhitePawn || piece == BlackPawn || m.IsCapture() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if mover == Black {
		b.fullmove++
	}

	b.side = mover.Other()

	if b.IsSquareAttacked(b.kingSquare(mover), b.side) {
		*b = saved
		return false
	}
	return true
}

// LegalMoves returns the fully legal moves of the side to move.
func (b *Board) LegalMoves() []Move {
	var list MoveList
	b.GenerateMoves(&list)

	out := make([]Move, 0, list.Len())
	for _, m := range list.Slice() {
		probe := *b
		if probe.MakeMove(m, AllMoves) {
			out = append(out, m)
		}
	}
	return out
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (b *Board) HasLegalMoves() bool {
	var list MoveList
	b.GenerateMoves(&list)
	for _, m := range list.Slice() {
		probe := *b
		if probe.MakeMove(m, AllMoves) {
			return true
		}
	}
	return false
}

// ParseMove resolves a UCI move string such as "e2e4" or "e7e8q" against the
// pseudo-legal moves of the position. Legality is checked by MakeMove.
func (b *Board) ParseMove(uci string) (Move, error) {
	if len(uci) != 4 && len(uci) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrIllegalMove, uci)
	}
	source, err := ParseSquare(uci[0:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrIllegalMove, uci, err)
	}
	target, err := ParseSquare(uci[2:4])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrIllegalMove, uci, err)
	}

	var list MoveList
	b.GenerateMoves(&list)
	for _, m := range list.Slice() {
		if m.Source() != source || m.Target() != target {
			continue
		}
		promo := m.Promoted()
		if promo == NoPiece {
			if len(uci) == 4 {
				return m, nil
			}
			continue
		}
		if len(uci) == 5 && unicode.ToLower(promo.Rune()) == rune(uci[4]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrIllegalMove, uci)
}
