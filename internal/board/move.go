package board

import "strings"

/*
Move packs a move into 24 bits:

	0000 0000 0000 0000 0011 1111    source square       0x3f
	0000 0000 0000 1111 1100 0000    target square       0xfc0
	0000 0000 1111 0000 0000 0000    piece               0xf000
	0000 1111 0000 0000 0000 0000    promoted piece      0xf0000
	0001 0000 0000 0000 0000 0000    capture flag        0x100000
	0010 0000 0000 0000 0000 0000    double push flag    0x200000
	0100 0000 0000 0000 0000 0000    en passant flag     0x400000
	1000 0000 0000 0000 0000 0000    castling flag       0x800000

A promoted value of 0 means no promotion; a pawn is never a promotion target.
*/
type Move uint32

const (
	moveCapture   Move = 0x100000
	moveDouble    Move = 0x200000
	moveEnPassant Move = 0x400000
	moveCastling  Move = 0x800000
)

// MoveFlags are the boolean bits of an encoded move.
type MoveFlags struct {
	Capture    bool
	DoublePush bool
	EnPassant  bool
	Castling   bool
}

// EncodeMove packs a move. promoted is ignored unless it is a non-pawn piece.
func EncodeMove(source, target Square, piece, promoted Piece, flags MoveFlags) Move {
	m := Move(source) | Move(target)<<6 | Move(piece)<<12
	if promoted.Valid() {
		m |= Move(promoted) << 16
	}
	if flags.Capture {
		m |= moveCapture
	}
	if flags.DoublePush {
		m |= moveDouble
	}
	if flags.EnPassant {
		m |= moveEnPassant
	}
	if flags.Castling {
		m |= moveCastling
	}
	return m
}

func (m Move) Source() Square { return Square(m & 0x3f) }
func (m Move) Target() Square { return Square((m & 0xfc0) >> 6) }
func (m Move) Piece() Piece   { return Piece((m & 0xf000) >> 12) }

// Promoted returns NoPiece when the move is not a promotion.
func (m Move) Promoted() Piece {
	p := Piece((m & 0xf0000) >> 16)
	if p == WhitePawn {
		return NoPiece
	}
	return p
}

func (m Move) IsCapture() bool    { return m&moveCapture != 0 }
func (m Move) IsDoublePush() bool { return m&moveDouble != 0 }
func (m Move) IsEnPassant() bool  { return m&moveEnPassant != 0 }
func (m Move) IsCastling() bool   { return m&moveCastling != 0 }

func (m Move) Flags() MoveFlags {
	return MoveFlags{
		Capture:    m.IsCapture(),
		DoublePush: m.IsDoublePush(),
		EnPassant:  m.IsEnPassant(),
		Castling:   m.IsCastling(),
	}
}

// WithPromotion returns the same move promoting to p instead.
func (m Move) WithPromotion(p Piece) Move {
	return EncodeMove(m.Source(), m.Target(), m.Piece(), p, m.Flags())
}

// UCI renders long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.Source().String() + m.Target().String()
	if p := m.Promoted(); p != NoPiece {
		s += strings.ToLower(p.String())
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// MoveList is a fixed-capacity list filled by GenerateMoves.
type MoveList struct {
	moves [256]Move
	count int
}

func (l *MoveList) Add(m Move) {
	l.moves[l.count] = m
	l.count++
}

func (l *MoveList) Reset()        { l.count = 0 }
func (l *MoveList) Len() int      { return l.count }
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Slice returns the filled portion; it aliases the list.
func (l *MoveList) Slice() []Move { return l.moves[:l.count] }
