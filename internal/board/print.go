package board

import (
	"fmt"
	"strings"
)

// String draws the board from white's point of view followed by the game state.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "  %d ", 8-row)
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteRune(b.PieceAt(SquareAt(file, row)).Rune())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("     a b c d e f g h\n\n")

	enPassant := "no"
	if b.enPassant != NoSquare {
		enPassant = b.enPassant.String()
	}
	fmt.Fprintf(&sb, "     Side:      %s\n", b.side)
	fmt.Fprintf(&sb, "     Enpassant: %s\n", enPassant)
	fmt.Fprintf(&sb, "     Castling:  %s\n", b.castle)
	return sb.String()
}

// BitboardString draws a bitboard as a grid of 0/1.
func BitboardString(bb uint64) string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "  %d ", 8-row)
		for file := 0; file < 8; file++ {
			bit := 0
			if bb&SquareAt(file, row).Bitboard() != 0 {
				bit = 1
			}
			fmt.Fprintf(&sb, " %d", bit)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("     a b c d e f g h\n")
	return sb.String()
}
