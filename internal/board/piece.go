package board

// Color is the side to move. Both is only meaningful as an occupancy index.
type Color uint8

const (
	White Color = iota
	Black
	Both
)

func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "both"
	}
}

// Piece indexes the twelve piece bitboards.
type Piece int8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece Piece = -1
)

const pieceLetters = "PNBRQKpnbrqk"

// PieceFromRune maps a FEN letter to its piece.
func PieceFromRune(r rune) Piece {
	for i, l := range pieceLetters {
		if l == r {
			return Piece(i)
		}
	}
	return NoPiece
}

func (p Piece) Valid() bool { return p >= WhitePawn && p <= BlackKing }

func (p Piece) Color() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// Rune is the FEN letter, uppercase for white.
func (p Piece) Rune() rune {
	if !p.Valid() {
		return '.'
	}
	return rune(pieceLetters[p])
}

func (p Piece) String() string { return string(p.Rune()) }

// piecesOf returns the first and last piece index belonging to c.
func piecesOf(c Color) (Piece, Piece) {
	if c == White {
		return WhitePawn, WhiteKing
	}
	return BlackPawn, BlackKing
}

// CastlingRights is a bitmask of the four castling options.
type CastlingRights uint8

const (
	CastleWK CastlingRights = 1 << iota
	CastleWQ
	CastleBK
	CastleBQ
)

func (c CastlingRights) String() string {
	if c == 0 {
		return "-"
	}
	out := make([]byte, 0, 4)
	if c&CastleWK != 0 {
		out = append(out, 'K')
	}
	if c&CastleWQ != 0 {
		out = append(out, 'Q')
	}
	if c&CastleBK != 0 {
		out = append(out, 'k')
	}
	if c&CastleBQ != 0 {
		out = append(out, 'q')
	}
	return string(out)
}
