package grid

import apperrors "github.com/relaxmesh/stencil/pkg/errors"

// Region is a rectangular sub-window of a grid: (OriginX, OriginY, Width,
// Height), wholly contained within [0, W)x[0, H).
type Region struct {
	OriginX, OriginY int
	Width, Height    int
}

// Interior returns the region covering every interior cell of g (the grid
// minus its outer border).
func Interior(g *Grid) Region {
	return Region{OriginX: 1, OriginY: 1, Width: g.w - 2, Height: g.h - 2}
}

// Validate reports OutOfBounds if the region is not wholly contained in
// a grid of the given dimensions.
func (r Region) Validate(w, h int) error {
	if r.Width <= 0 || r.Height <= 0 {
		return apperrors.Wrap(apperrors.CodeOutOfBounds, "region has non-positive extent", nil)
	}
	if r.OriginX < 0 || r.OriginY < 0 ||
		r.OriginX+r.Width > w || r.OriginY+r.Height > h {
		return apperrors.Wrap(apperrors.CodeOutOfBounds, "region exceeds grid bounds", nil)
	}
	return nil
}

// Band is a Region spanning the full interior width with a slice of
// interior rows. Band(g, startRow, rowCount) returns the band of rowCount
// rows starting at startRow.
func Band(g *Grid, startRow, rowCount int) Region {
	return Region{OriginX: 1, OriginY: startRow, Width: g.w - 2, Height: rowCount}
}

// Partition splits the interior row range [1, H-2] into bands of chunk
// rows each (the last band may be shorter), tiling it without overlap.
func Partition(g *Grid, chunk int) []Region {
	if chunk < 1 {
		chunk = 1
	}
	interior := Interior(g)
	bands := make([]Region, 0, (interior.Height+chunk-1)/chunk)
	for row := interior.OriginY; row < interior.OriginY+interior.Height; row += chunk {
		h := chunk
		if row+h > interior.OriginY+interior.Height {
			h = interior.OriginY + interior.Height - row
		}
		bands = append(bands, Band(g, row, h))
	}
	return bands
}

// Cell is a handle to a single grid coordinate, as yielded by a cursor.
type Cell struct {
	X, Y int
}

// RegionCursor yields the element handles of a Region in row-major order:
// for j in [0, h), i in [0, w), the cell (x+i, y+j). Not restartable.
type RegionCursor struct {
	region   Region
	i, j     int
	done     bool
}

// NewRegionCursor creates a cursor over r. It does not validate r against
// any particular grid; callers validate before constructing, per the
// kernel's precondition.
func NewRegionCursor(r Region) *RegionCursor {
	return &RegionCursor{region: r}
}

// Next advances the cursor, returning the next cell and true, or the zero
// Cell and false once exhausted.
func (c *RegionCursor) Next() (Cell, bool) {
	if c.done || c.region.Height <= 0 || c.region.Width <= 0 {
		return Cell{}, false
	}
	x := c.region.OriginX + c.i
	y := c.region.OriginY + c.j
	c.i++
	if c.i >= c.region.Width {
		c.i = 0
		c.j++
		if c.j >= c.region.Height {
			c.done = true
		}
	}
	return Cell{X: x, Y: y}, true
}

// EdgeCursor yields the W*2 + (H-2)*2 edge handles of a grid of the given
// dimensions in a fixed, reproducible order: the top row left-to-right,
// the bottom row left-to-right, then the left and right columns
// (excluding corners) top-to-bottom. Not restartable.
type EdgeCursor struct {
	w, h  int
	phase int
	i     int
}

// NewEdgeCursor creates an edge cursor for a grid of dimensions w x h.
func NewEdgeCursor(w, h int) *EdgeCursor {
	return &EdgeCursor{w: w, h: h}
}

// Next advances the cursor, returning the next edge cell and true, or the
// zero Cell and false once all edge cells have been yielded.
func (c *EdgeCursor) Next() (Cell, bool) {
	for {
		switch c.phase {
		case 0: // top row
			if c.i >= c.w {
				c.phase, c.i = 1, 0
				continue
			}
			cell := Cell{X: c.i, Y: 0}
			c.i++
			return cell, true
		case 1: // bottom row
			if c.i >= c.w {
				c.phase, c.i = 2, 0
				continue
			}
			cell := Cell{X: c.i, Y: c.h - 1}
			c.i++
			return cell, true
		case 2: // left column, excluding corners
			if c.i >= c.h-2 {
				c.phase, c.i = 3, 0
				continue
			}
			cell := Cell{X: 0, Y: c.i + 1}
			c.i++
			return cell, true
		case 3: // right column, excluding corners
			if c.i >= c.h-2 {
				c.phase = 4
				continue
			}
			cell := Cell{X: c.w - 1, Y: c.i + 1}
			c.i++
			return cell, true
		default:
			return Cell{}, false
		}
	}
}

// EdgeCount returns the total number of edge cells for a w x h grid:
// W*2 + (H-2)*2.
func EdgeCount(w, h int) int {
	return w*2 + (h-2)*2
}
