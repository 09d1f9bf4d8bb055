// Package grid implements the bordered 2D double-precision grid that the
// stencil relaxation engine operates on: contiguous row-major storage,
// edge/interior partitioning, and the region and edge cursors used by the
// sweep kernel and drivers.
package grid

import (
	"math"
	"unsafe"

	apperrors "github.com/relaxmesh/stencil/pkg/errors"
)

// alignment is the byte alignment of the first cell of every new grid.
// New over-allocates by alignment/8 cells and starts the grid at the first
// cell whose address is a multiple of alignment.
const alignment = 64

// Grid is a rectangular array of float64 cells, W >= 3 and H >= 3, stored
// contiguously in row-major order. Dimensions are fixed at creation.
type Grid struct {
	w, h  int
	cells []float64
}

// New allocates a zero-filled grid of the given dimensions. It returns
// AllocationFailed if the dimensions are too small to hold a border and
// at least one interior cell.
func New(w, h int) (*Grid, error) {
	if w < 3 || h < 3 {
		return nil, apperrors.Wrap(apperrors.CodeAllocationFailed,
			"grid dimensions must be at least 3x3", nil)
	}
	buf := make([]float64, w*h+alignment/8)
	off := 0
	for uintptr(unsafe.Pointer(&buf[off]))%alignment != 0 {
		off++
	}
	return &Grid{w: w, h: h, cells: buf[off : off+w*h : off+w*h]}, nil
}

// Width returns the grid's width.
func (g *Grid) Width() int { return g.w }

// Height returns the grid's height.
func (g *Grid) Height() int { return g.h }

// index computes the row-major offset of (x, y), panicking on an
// out-of-bounds access per the contract in spec §4.1 (element_ptr).
func (g *Grid) index(x, y int) int {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		panic(apperrors.Wrap(apperrors.CodeOutOfBounds,
			"cell out of grid bounds", nil))
	}
	return x + g.w*y
}

// At returns the value of cell (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.cells[g.index(x, y)]
}

// Set writes the value of cell (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.cells[g.index(x, y)] = v
}

// IsEdge reports whether (x, y) belongs to the fixed outer border.
func (g *Grid) IsEdge(x, y int) bool {
	return x == 0 || x == g.w-1 || y == 0 || y == g.h-1
}

// sameDims reports whether two grids have identical dimensions.
func sameDims(a, b *Grid) bool {
	return a.w == b.w && a.h == b.h
}

// CopyEdge writes every edge cell of dst from the corresponding cell of
// src. Requires equal dimensions; returns DimensionMismatch otherwise.
func CopyEdge(src, dst *Grid) error {
	if !sameDims(src, dst) {
		return apperrors.Wrap(apperrors.CodeDimensionMismatch,
			"copy_edge requires equal dimensions", nil)
	}
	w, h := src.w, src.h
	for x := 0; x < w; x++ {
		dst.Set(x, 0, src.At(x, 0))
		dst.Set(x, h-1, src.At(x, h-1))
	}
	for y := 1; y < h-1; y++ {
		dst.Set(0, y, src.At(0, y))
		dst.Set(w-1, y, src.At(w-1, y))
	}
	return nil
}

// CloneWithEdge returns a zeroed grid of src's dimensions whose edge has
// been copied from src.
func CloneWithEdge(src *Grid) (*Grid, error) {
	dst, err := New(src.w, src.h)
	if err != nil {
		return nil, err
	}
	if err := CopyEdge(src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// Equals reports whether a and b have matching dimensions and all cells
// are bitwise equal.
func Equals(a, b *Grid) bool {
	if !sameDims(a, b) {
		return false
	}
	for i, v := range a.cells {
		if math.Float64bits(v) != math.Float64bits(b.cells[i]) {
			return false
		}
	}
	return true
}

// ChecksumXOR folds every cell's IEEE-754 bit pattern with XOR. It is
// used only for external result validation, never by the core engine.
func ChecksumXOR(g *Grid) uint64 {
	var acc uint64
	for _, v := range g.cells {
		acc ^= math.Float64bits(v)
	}
	return acc
}

// ChecksumSum folds every cell's IEEE-754 bit pattern with unsigned
// wrapping addition. Used only for external result validation.
func ChecksumSum(g *Grid) uint64 {
	var acc uint64
	for _, v := range g.cells {
		acc += math.Float64bits(v)
	}
	return acc
}
