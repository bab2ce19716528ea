package board

import "fmt"

// Square indexes the board from a8 (0) to h1 (63), rank by rank from the top.
type Square uint8

const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare
)

// SquareAt returns the square for a 0-based file (a=0) and row counted from the top (rank 8 = 0).
func SquareAt(file, row int) Square {
	if file < 0 || file > 7 || row < 0 || row > 7 {
		return NoSquare
	}
	return Square(row*8 + file)
}

func (s Square) File() int { return int(s) % 8 }

// Row is the 0-based row from the top of the board; rank 8 is row 0.
func (s Square) Row() int { return int(s) / 8 }

func (s Square) Rank() int { return 8 - s.Row() }

func (s Square) Bitboard() uint64 {
	if s >= NoSquare {
		return 0
	}
	return 1 << uint(s)
}

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('0' + s.Rank())})
}

// ParseSquare reads lowercase algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '0'
	if file < 0 || file > 7 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return Square((8-rank)*8 + file), nil
}
