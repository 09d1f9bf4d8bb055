package rng

import "github.com/relaxmesh/stencil/pkg/grid"

// Seed is the fixed seed the reproducibility contract is built around:
// a seeded grid is byte-identical across implementations for a given
// size and skip.
const Seed uint32 = 31413241

// InitEmpty returns a zero-filled grid of the given dimensions.
func InitEmpty(w, h int) (*grid.Grid, error) {
	return grid.New(w, h)
}

// InitSeeded zero-fills a grid, seeds the LCG with Seed, and populates
// the edge cells in edge-cursor order with successive draws in [0, 1).
// The interior remains zero.
func InitSeeded(w, h int) (*grid.Grid, error) {
	return InitSeededSkip(w, h, 0)
}

// InitSeededSkip is InitSeeded with the generator advanced by skip*w
// draws before the edge is populated, so that a rank owning a later
// row-slab of a logically larger grid seeds consistently with the whole.
func InitSeededSkip(w, h, skip int) (*grid.Grid, error) {
	g, err := grid.New(w, h)
	if err != nil {
		return nil, err
	}

	gen := NewLCG(Seed)
	gen.Skip(skip * w)

	cursor := grid.NewEdgeCursor(w, h)
	for {
		cell, ok := cursor.Next()
		if !ok {
			break
		}
		g.Set(cell.X, cell.Y, gen.Next())
	}
	return g, nil
}
