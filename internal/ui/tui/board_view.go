package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/Irokanade/iro-chess-gui/internal/board"
)

// filled glyphs for both colors; the foreground tells the sides apart
var pieceGlyphs = [6]string{"♟", "♞", "♝", "♜", "♛", "♚"}

type highlights struct {
	cursor   board.Square
	selected board.Square
	targets  uint64
	lastFrom board.Square
	lastTo   board.Square
}

func noHighlights() highlights {
	return highlights{
		cursor:   board.NoSquare,
		selected: board.NoSquare,
		lastFrom: board.NoSquare,
		lastTo:   board.NoSquare,
	}
}

func squareStyle(t Theme, sq board.Square, hl highlights) lipgloss.Style {
	switch {
	case sq == hl.cursor:
		return t.CursorSquare
	case sq == hl.selected:
		return t.Selected
	case hl.targets&sq.Bitboard() != 0:
		return t.Target
	case sq == hl.lastFrom || sq == hl.lastTo:
		return t.LastMove
	case (sq.File()+sq.Row())%2 == 0:
		return t.LightSquare
	default:
		return t.DarkSquare
	}
}

// renderBoard draws b with rank 8 on top, or rank 1 on top when flipped.
func renderBoard(t Theme, b board.Board, flipped bool, hl highlights) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		row := i
		if flipped {
			row = 7 - i
		}
		sb.WriteString(string(rune('8'-row)) + " ")
		for j := 0; j < 8; j++ {
			file := j
			if flipped {
				file = 7 - j
			}
			sq := board.SquareAt(file, row)
			style := squareStyle(t, sq, hl)

			cell := "   "
			if p := b.PieceAt(sq); p != board.NoPiece {
				fg := t.WhitePiece
				if p.Color() == board.Black {
					fg = t.BlackPiece
				}
				style = style.Foreground(fg).Bold(true)
				cell = " " + pieceGlyphs[int(p)%6] + " "
			}
			sb.WriteString(style.Render(cell))
		}
		sb.WriteByte('\n')
	}

	files := "abcdefgh"
	sb.WriteString("  ")
	for j := 0; j < 8; j++ {
		f := j
		if flipped {
			f = 7 - j
		}
		sb.WriteString(" " + files[f:f+1] + " ")
	}
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}
