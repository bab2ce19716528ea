package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

func TestPerftKnownPositions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		nodes []uint64
	}{
		{"start", StartFEN, []uint64{20, 400, 8902, 197281}},
		{"kiwipete", kiwipeteFEN, []uint64{48, 2039, 97862}},
		{"position3", position3FEN, []uint64{14, 191, 2812, 43238}},
		{"position4", position4FEN, []uint64{6, 264, 9467}},
		{"position5", position5FEN, []uint64{44, 1486, 62379}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := MustParseFEN(tc.fen)
			for i, want := range tc.nodes {
				depth := i + 1
				if testing.Short() && want > 10000 {
					continue
				}
				assert.Equal(t, want, b.Perft(depth), "depth %d", depth)
			}
			assert.Equal(t, tc.fen, b.FEN(), "perft must not mutate the board")
		})
	}
}

func TestPerftDepthZero(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, uint64(1), b.Perft(0))
	assert.Nil(t, b.Divide(0))
}

func TestDivideMatchesPerft(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)

	entries := b.Divide(2)
	assert.Len(t, entries, 48)
	assert.Equal(t, uint64(2039), TotalNodes(entries))
}

func TestDivideParallelMatchesSerial(t *testing.T) {
	b := NewBoard()

	serial := b.Divide(3)
	parallel, err := b.DivideParallel(context.Background(), 3, 4)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, uint64(8902), TotalNodes(parallel))
}

func TestDivideParallelCancelled(t *testing.T) {
	b := NewBoard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.DivideParallel(ctx, 3, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateMagics(t *testing.T) {
	assert.NoError(t, ValidateMagics(Bishop))
	assert.NoError(t, ValidateMagics(Rook))
}
