// Package kernel implements the stencil sweep kernel: the 4-neighbor
// Jacobi averaging step applied to a region of a source/target grid pair.
package kernel

import (
	"math"

	apperrors "github.com/relaxmesh/stencil/pkg/errors"
	"github.com/relaxmesh/stencil/pkg/grid"
)

// Sweep writes the 4-neighbor average of every cell in region into
// target, reading from source. It sets flag if any written cell changed
// by more than epsilon from its prior value. region must be fully inside
// source's interior and source/target must share dimensions; target's
// edge must already equal source's edge before calling Sweep.
func Sweep(source, target *grid.Grid, region grid.Region, epsilon float64, flag *Flag) error {
	if source.Width() != target.Width() || source.Height() != target.Height() {
		return apperrors.Wrap(apperrors.CodeDimensionMismatch,
			"sweep requires source and target of equal dimensions", nil)
	}
	if err := region.Validate(source.Width(), source.Height()); err != nil {
		return err
	}
	if region.OriginX < 1 || region.OriginY < 1 ||
		region.OriginX+region.Width > source.Width()-1 ||
		region.OriginY+region.Height > source.Height()-1 {
		return apperrors.Wrap(apperrors.CodeOutOfBounds,
			"sweep region must lie fully inside the interior", nil)
	}

	cursor := grid.NewRegionCursor(region)
	for {
		cell, ok := cursor.Next()
		if !ok {
			break
		}
		x, y := cell.X, cell.Y
		old := source.At(x, y)
		sum := source.At(x-1, y) + source.At(x+1, y) + source.At(x, y-1) + source.At(x, y+1)
		newVal := sum / 4
		target.Set(x, y, newVal)
		if math.Abs(newVal-old) > epsilon {
			flag.Raise()
		}
	}
	return nil
}
