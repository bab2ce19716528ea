// Package board implements a magic-bitboard chess position with pseudo-legal move
// generation, copy-make move application, FEN I/O and perft.
//
// Squares are numbered from a8 (0) to h1 (63). A Board is a plain value: assigning it
// snapshots the whole position, which is how moves are taken back.
package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrIllegalMove = errors.New("illegal move")
)

type Board struct {
	bitboards   [12]uint64
	occupancies [3]uint64

	side      Color
	enPassant Square
	castle    CastlingRights

	halfmove int
	fullmove int
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// MustParseFEN is ParseFEN for known-good positions.
func MustParseFEN(fen string) Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseFEN reads a position. The halfmove and fullmove fields are optional.
func ParseFEN(fen string) (Board, error) {
	b := Board{enPassant: NoSquare, fullmove: 1}

	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Board{}, fenError(fen, "expected at least 4 fields, got %d", len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Board{}, fenError(fen, "expected 8 ranks, got %d", len(ranks))
	}
	for row, rank := range ranks {
		file := 0
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				file += int(r - '0')
			default:
				p := PieceFromRune(r)
				if p == NoPiece {
					return Board{}, fenError(fen, "unknown piece %q", r)
				}
				if file > 7 {
					return Board{}, fenError(fen, "rank %d overflows", 8-row)
				}
				b.bitboards[p] |= SquareAt(file, row).Bitboard()
				file++
			}
		}
		if file != 8 {
			return Board{}, fenError(fen, "rank %d has %d files", 8-row, file)
		}
	}

	switch fields[1] {
	case "w":
		b.side = White
	case "b":
		b.side = Black
	default:
		return Board{}, fenError(fen, "bad side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, r := range fields[2] {
			switch r {
			case 'K':
				b.castle |= CastleWK
			case 'Q':
				b.castle |= CastleWQ
			case 'k':
				b.castle |= CastleBK
			case 'q':
				b.castle |= CastleBQ
			default:
				return Board{}, fenError(fen, "bad castling rights %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Board{}, fenError(fen, "bad en passant square %q", fields[3])
		}
		b.enPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Board{}, fenError(fen, "bad halfmove clock %q", fields[4])
		}
		b.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Board{}, fenError(fen, "bad fullmove number %q", fields[5])
		}
		b.fullmove = n
	}

	if bits.OnesCount64(b.bitboards[WhiteKing]) != 1 || bits.OnesCount64(b.bitboards[BlackKing]) != 1 {
		return Board{}, fenError(fen, "each side needs exactly one king")
	}

	b.updateOccupancies()
	if !b.castlingConsistent() {
		return Board{}, fenError(fen, "castling rights %q need king and rook on their home squares", fields[2])
	}
	if !b.enPassantConsistent() {
		return Board{}, fenError(fen, "no pawn can be captured en passant on %s", fields[3])
	}
	return b, nil
}

// castlingConsistent reports whether every castling right has its king and rook at home.
func (b *Board) castlingConsistent() bool {
	for _, opt := range castleOptions {
		if b.castle&opt.right == 0 {
			continue
		}
		king, rook := WhiteKing, WhiteRook
		if opt.mover == Black {
			king, rook = BlackKing, BlackRook
		}
		if !b.hasPiece(king, opt.from) || !b.hasPiece(rook, opt.rookAt[0]) {
			return false
		}
	}
	return true
}

// enPassantConsistent reports whether the en passant square is empty and sits directly
// behind an enemy pawn that could have just made a double push.
func (b *Board) enPassantConsistent() bool {
	ep := b.enPassant
	if ep == NoSquare {
		return true
	}
	if b.PieceAt(ep) != NoPiece {
		return false
	}
	if b.side == White {
		return ep.Rank() == 6 && b.hasPiece(BlackPawn, ep+8)
	}
	return ep.Rank() == 3 && b.hasPiece(WhitePawn, ep-8)
}

func fenError(fen, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidFEN, fen, fmt.Sprintf(format, args...))
}

// FEN serializes the position.
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(SquareAt(file, row))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(p.Rune())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if b.side == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d", side, b.castle, b.enPassant, b.halfmove, b.fullmove)
	return sb.String()
}

func (b *Board) updateOccupancies() {
	b.occupancies = [3]uint64{}
	for p := WhitePawn; p <= WhiteKing; p++ {
		b.occupancies[White] |= b.bitboards[p]
	}
	for p := BlackPawn; p <= BlackKing; p++ {
		b.occupancies[Black] |= b.bitboards[p]
	}
	b.occupancies[Both] = b.occupancies[White] | b.occupancies[Black]
}

func (b *Board) SideToMove() Color { return b.side }
func (b *Board) EnPassant() Square { return b.enPassant }
func (b *Board) Castling() CastlingRights { return b.castle }
func (b *Board) HalfmoveClock() int { return b.halfmove }
func (b *Board) FullmoveNumber() int { return b.fullmove }
func (b *Board) Bitboard(p Piece) uint64 { return b.bitboards[p] }
func (b *Board) Occupancy(c Color) uint64 { return b.occupancies[c] }
func (b *Board) kingSquare(c Color) Square { return Square(bits.TrailingZeros64(b.bitboards[kingOf(c)])) }
func (b *Board) hasPiece(p Piece, sq Square) bool { return b.bitboards[p]&sq.Bitboard() != 0 }

func kingOf(c Color) Piece {
	if c == White {
		return WhiteKing
	}
	return BlackKing
}

// PieceAt returns the piece on sq or NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	if b.occupancies[Both]&sq.Bitboard() == 0 {
		return NoPiece
	}
	for p := WhitePawn; p <= BlackKing; p++ {
		if b.hasPiece(p, sq) {
			return p
		}
	}
	return NoPiece
}

// IsSquareAttacked reports whether any piece of side attacks sq.
func (b *Board) IsSquareAttacked(sq Square, side Color) bool {
	if side == White && pawnAttacks[Black][sq]&b.bitboards[WhitePawn] != 0 {
		return true
	}
	if side == Black && pawnAttacks[White][sq]&b.bitboards[BlackPawn] != 0 {
		return true
	}

	knight, bishop, rook, queen, king := WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing
	if side == Black {
		knight, bishop, rook, queen, king = BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing
	}

	occ := b.occupancies[Both]
	switch {
	case knightAttacks[sq]&b.bitboards[knight] != 0:
		return true
	case BishopAttacks(sq, occ)&(b.bitboards[bishop]|b.bitboards[queen]) != 0:
		return true
	case RookAttacks(sq, occ)&(b.bitboards[rook]|b.bitboards[queen]) != 0:
		return true
	case kingAttacks[sq]&b.bitboards[king] != 0:
		return true
	}
	return false
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsSquareAttacked(b.kingSquare(b.side), b.side.Other())
}
