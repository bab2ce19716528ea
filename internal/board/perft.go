package board

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Perft counts the leaf nodes of the legal move tree to depth.
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	var list MoveList
	b.GenerateMoves(&list)

	var nodes uint64
	for _, m := range list.Slice() {
		child := *b
		if !child.MakeMove(m, AllMoves) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		nodes += child.Perft(depth - 1)
	}
	return nodes
}

// Divide returns the perft count under each legal root move, in generation order.
func (b *Board) Divide(depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}

	var list MoveList
	b.GenerateMoves(&list)

	out := make([]DivideEntry, 0, list.Len())
	for _, m := range list.Slice() {
		child := *b
		if !child.MakeMove(m, AllMoves) {
			continue
		}
		out = append(out, DivideEntry{Move: m, Nodes: child.Perft(depth - 1)})
	}
	return out
}

// DivideParallel is Divide with root moves spread over up to workers goroutines.
// workers <= 0 uses GOMAXPROCS. The result order matches Divide.
func (b *Board) DivideParallel(ctx context.Context, depth, workers int) ([]DivideEntry, error) {
	if depth <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var list MoveList
	b.GenerateMoves(&list)

	type slot struct {
		entry DivideEntry
		legal bool
	}
	slots := make([]slot, list.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	root := *b
	for i, m := range list.Slice() {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child := root
			if !child.MakeMove(m, AllMoves) {
				return nil
			}
			slots[i] = slot{legal: true, entry: DivideEntry{Move: m, Nodes: child.Perft(depth - 1)}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]DivideEntry, 0, len(slots))
	for _, s := range slots {
		if s.legal {
			out = append(out, s.entry)
		}
	}
	return out, nil
}

// TotalNodes sums a divide result.
func TotalNodes(entries []DivideEntry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Nodes
	}
	return n
}
