package board

var (
	whitePromotions = [4]Piece{WhiteQueen, WhiteRook, WhiteBishop, WhiteKnight}
	blackPromotions = [4]Piece{BlackQueen, BlackRook, BlackBishop, BlackKnight}
)

// GenerateMoves fills list with every pseudo-legal move for the side to move.
// Moves that leave the king in check are filtered out by MakeMove.
func (b *Board) GenerateMoves(list *MoveList) {
	list.Reset()

	first, last := piecesOf(b.side)
	for p := first; p <= last; p++ {
		switch p {
		case WhitePawn, BlackPawn:
			b.generatePawnMoves(list, p)
		case WhiteKing, BlackKing:
			b.generateCastling(list, p)
			b.generatePieceMoves(list, p, func(sq Square) uint64 { return kingAttacks[sq] })
		case WhiteKnight, BlackKnight:
			b.generatePieceMoves(list, p, func(sq Square) uint64 { return knightAttacks[sq] })
		case WhiteBishop, BlackBishop:
			b.generatePieceMoves(list, p, func(sq Square) uint64 { return BishopAttacks(sq, b.occupancies[Both]) })
		case WhiteRook, BlackRook:
			b.generatePieceMoves(list, p, func(sq Square) uint64 { return RookAttacks(sq, b.occupancies[Both]) })
		case WhiteQueen, BlackQueen:
			b.generatePieceMoves(list, p, func(sq Square) uint64 { return QueenAttacks(sq, b.occupancies[Both]) })
		}
	}
}

func (b *Board) generatePawnMoves(list *MoveList, pawn Piece) {
	side := b.side
	enemy := b.occupancies[side.Other()]

	// white pawns move towards lower square numbers
	push := -8
	promoFrom, startFrom := A7, A2
	promos := whitePromotions
	if side == Black {
		push = 8
		promoFrom, startFrom = A2, A7
		promos = blackPromotions
	}
	onRow := func(sq, rowStart Square) bool { return sq >= rowStart && sq <= rowStart+7 }

	bb := b.bitboards[pawn]
	for bb != 0 {
		source := popLSB(&bb)
		promoting := onRow(source, promoFrom)

		target := Square(int(source) + push)
		if target < NoSquare && b.occupancies[Both]&target.Bitboard() == 0 {
			if promoting {
				for _, promo := range promos {
					list.Add(EncodeMove(source, target, pawn, promo, MoveFlags{}))
				}
			} else {
				list.Add(EncodeMove(source, target, pawn, NoPiece, MoveFlags{}))

				double := Square(int(target) + push)
				if onRow(source, startFrom) && b.occupancies[Both]&double.Bitboard() == 0 {
					list.Add(EncodeMove(source, double, pawn, NoPiece, MoveFlags{DoublePush: true}))
				}
			}
		}

		attacks := pawnAttacks[side][source] & enemy
		for attacks != 0 {
			target := popLSB(&attacks)
			if promoting {
				for _, promo := range promos {
					list.Add(EncodeMove(source, target, pawn, promo, MoveFlags{Capture: true}))
				}
			} else {
				list.Add(EncodeMove(source, target, pawn, NoPiece, MoveFlags{Capture: true}))
			}
		}

		if b.enPassant != NoSquare && pawnAttacks[side][source]&b.enPassant.Bitboard() != 0 {
			list.Add(EncodeMove(source, b.enPassant, pawn, NoPiece, MoveFlags{Capture: true, EnPassant: true}))
		}
	}
}

// castleOption describes one castling move: the rights bit, king path, the squares that
// must be empty and the squares that must not be attacked before the move is made.
type castleOption struct {
	right  CastlingRights
	from   Square
	to     Square
	empty  []Square
	safe   []Square
	mover  Color
	rookAt [2]Square
}

var castleOptions = [...]castleOption{
	{right: CastleWK, from: E1, to: G1, empty: []Square{F1, G1}, safe: []Square{E1, F1}, mover: White, rookAt: [2]Square{H1, F1}},
	{right: CastleWQ, from: E1, to: C1, empty: []Square{D1, C1, B1}, safe: []Square{E1, D1}, mover: White, rookAt: [2]Square{A1, D1}},
	{right: CastleBK, from: E8, to: G8, empty: []Square{F8, G8}, safe: []Square{E8, F8}, mover: Black, rookAt: [2]Square{H8, F8}},
	{right: CastleBQ, from: E8, to: C8, empty: []Square{D8, C8, B8}, safe: []Square{E8, D8}, mover: Black, rookAt: [2]Square{A8, D8}},
}

func (b *Board) generateCastling(list *MoveList, king Piece) {
	for _, opt := range castleOptions {
		if opt.mover != b.side || b.castle&opt.right == 0 {
			continue
		}
		if !b.allEmpty(opt.empty) || b.anyAttacked(opt.safe, b.side.Other()) {
			continue
		}
		list.Add(EncodeMove(opt.from, opt.to, king, NoPiece, MoveFlags{Castling: true}))
	}
}

func (b *Board) allEmpty(squares []Square) bool {
	for _, sq := range squares {
		if b.occupancies[Both]&sq.Bitboard() != 0 {
			return false
		}
	}
	return true
}

func (b *Board) anyAttacked(squares []Square, by Color) bool {
	for _, sq := range squares {
		if b.IsSquareAttacked(sq, by) {
			return true
		}
	}
	return false
}

func (b *Board) generatePieceMoves(list *MoveList, p Piece, attacksFrom func(Square) uint64) {
	own := b.occupancies[b.side]
	enemy := b.occupancies[b.side.Other()]

	bb := b.bitboards[p]
	for bb != 0 {
		source := popLSB(&bb)
		attacks := attacksFrom(source) &^ own
		for attacks != 0 {
			target := popLSB(&attacks)
			capture := enemy&target.Bitboard() != 0
			list.Add(EncodeMove(source, target, p, NoPiece, MoveFlags{Capture: capture}))
		}
	}
}
