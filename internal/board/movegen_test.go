package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMoveRoundTrip(t *testing.T) {
	m := EncodeMove(E7, E8, WhitePawn, WhiteQueen, MoveFlags{Capture: true})

	assert.Equal(t, E7, m.Source())
	assert.Equal(t, E8, m.Target())
	assert.Equal(t, WhitePawn, m.Piece())
	assert.Equal(t, WhiteQueen, m.Promoted())
	assert.True(t, m.IsCapture())
	assert.False(t, m.IsDoublePush())
	assert.False(t, m.IsEnPassant())
	assert.False(t, m.IsCastling())
	assert.Equal(t, "e7e8q", m.UCI())

	quiet := EncodeMove(G1, F3, WhiteKnight, NoPiece, MoveFlags{})
	assert.Equal(t, NoPiece, quiet.Promoted())
	assert.Equal(t, "g1f3", quiet.UCI())

	under := m.WithPromotion(WhiteKnight)
	assert.Equal(t, "e7e8n", under.UCI())
	assert.True(t, under.IsCapture())
}

func TestMoveEncodingMasks(t *testing.T) {
	m := EncodeMove(H1, A8, BlackKing, BlackKnight, MoveFlags{Capture: true, DoublePush: true, EnPassant: true, Castling: true})

	assert.Equal(t, Move(0x3f), m&0x3f)
	assert.Equal(t, Move(0), m&0xfc0)
	assert.Equal(t, Move(BlackKing)<<12, m&0xf000)
	assert.Equal(t, Move(BlackKnight)<<16, m&0xf0000)
	assert.Equal(t, Move(0xf00000), m&0xf00000)
}

func TestStartPositionMoves(t *testing.T) {
	b := NewBoard()
	legal := b.LegalMoves()
	assert.Len(t, legal, 20)

	var doubles int
	for _, m := range legal {
		if m.IsDoublePush() {
			doubles++
		}
	}
	assert.Equal(t, 8, doubles)
}

func TestMakeMoveSetsEnPassantAndClocks(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseMove("e2e4")
	require.NoError(t, err)
	require.True(t, b.MakeMove(m, AllMoves))

	assert.Equal(t, E3, b.EnPassant())
	assert.Equal(t, Black, b.SideToMove())
	assert.Equal(t, 0, b.HalfmoveClock())
	assert.Equal(t, 1, b.FullmoveNumber())

	m, err = b.ParseMove("g8f6")
	require.NoError(t, err)
	require.True(t, b.MakeMove(m, AllMoves))

	assert.Equal(t, NoSquare, b.EnPassant())
	assert.Equal(t, 1, b.HalfmoveClock())
	assert.Equal(t, 2, b.FullmoveNumber())
	assert.Equal(t, "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2", b.FEN())
}

func TestEnPassantCapture(t *testing.T) {
	b := MustParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")

	m, err := b.ParseMove("e5f6")
	require.NoError(t, err)
	assert.True(t, m.IsEnPassant())
	require.True(t, b.MakeMove(m, AllMoves))

	assert.Equal(t, WhitePawn, b.PieceAt(F6))
	assert.Equal(t, NoPiece, b.PieceAt(F5))
	assert.Equal(t, BlackPawn, b.PieceAt(D5))
}

func TestCastlingMovesRookAndClearsRights(t *testing.T) {
	b := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m, err := b.ParseMove("e1g1")
	require.NoError(t, err)
	assert.True(t, m.IsCastling())
	require.True(t, b.MakeMove(m, AllMoves))

	assert.Equal(t, WhiteKing, b.PieceAt(G1))
	assert.Equal(t, WhiteRook, b.PieceAt(F1))
	assert.Equal(t, NoPiece, b.PieceAt(H1))
	assert.Equal(t, CastleBK|CastleBQ, b.Castling())

	m, err = b.ParseMove("e8c8")
	require.NoError(t, err)
	require.True(t, b.MakeMove(m, AllMoves))
	assert.Equal(t, BlackRook, b.PieceAt(D8))
	assert.Equal(t, CastlingRights(0), b.Castling())
}

func TestCastlingBlockedThroughCheck(t *testing.T) {
	// black rook on f8 covers f1
	b := MustParseFEN("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")

	_, err := b.ParseMove("e1g1")
	assert.ErrorIs(t, err, ErrIllegalMove)

	_, err = b.ParseMove("e1c1")
	assert.NoError(t, err)
}

func TestRookCaptureClearsOpponentRights(t *testing.T) {
	b := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := b.ParseMove("a1a8")
	require.NoError(t, err)
	require.True(t, b.MakeMove(m, AllMoves))

	assert.Equal(t, CastleWK|CastleBK, b.Castling())
}

func TestPromotionParsing(t *testing.T) {
	b := MustParseFEN("8/4P3/8/8/8/8/k7/4K3 w - - 0 1")

	_, err := b.ParseMove("e7e8")
	assert.ErrorIs(t, err, ErrIllegalMove, "promotion piece is required")

	m, err := b.ParseMove("e7e8n")
	require.NoError(t, err)
	assert.Equal(t, WhiteKnight, m.Promoted())
	require.True(t, b.MakeMove(m, AllMoves))
	assert.Equal(t, WhiteKnight, b.PieceAt(E8))
	assert.Zero(t, b.Bitboard(WhitePawn))
}

func TestIllegalMoveLeavesBoardUnchanged(t *testing.T) {
	// the e2 knight is pinned against the king by the e8 rook
	b := MustParseFEN("4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	before := b

	m, err := b.ParseMove("e2c3")
	require.NoError(t, err, "pseudo-legal moves parse")
	assert.False(t, b.MakeMove(m, AllMoves))
	assert.Equal(t, before, b)
}

func TestMakeMoveOnlyCaptures(t *testing.T) {
	b := MustParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")

	quiet, err := b.ParseMove("e4e5")
	require.NoError(t, err)
	assert.False(t, b.MakeMove(quiet, OnlyCaptures))

	capture, err := b.ParseMove("e4d5")
	require.NoError(t, err)
	assert.True(t, b.MakeMove(capture, OnlyCaptures))
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	b := NewBoard()
	for _, s := range []string{"", "e2", "e2e5", "z2e4", "e2e4qq", "e1e2"} {
		_, err := b.ParseMove(s)
		assert.True(t, errors.Is(err, ErrIllegalMove), s)
	}
}

func TestCheckmateAndStalemateDetection(t *testing.T) {
	b := NewBoard()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := b.ParseMove(uci)
		require.NoError(t, err)
		require.True(t, b.MakeMove(m, AllMoves), uci)
	}
	assert.True(t, b.InCheck())
	assert.False(t, b.HasLegalMoves())

	stale := MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.False(t, stale.InCheck())
	assert.False(t, stale.HasLegalMoves())
	assert.Empty(t, stale.LegalMoves())
}
