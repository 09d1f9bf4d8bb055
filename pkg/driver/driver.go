// Package driver implements the serial, thread-pool, and distributed
// execution strategies that iterate the stencil sweep kernel to
// convergence.
package driver

import "github.com/relaxmesh/stencil/pkg/grid"

// State is a driver's position in its {init, sweeping, converged} state
// machine.
type State int

const (
	StateInit State = iota
	StateSweeping
	StateConverged
)

// Result holds a completed run's output grid and sweep count. The loop
// counter mirrors the source harness's convention: it is incremented once
// per sweep, including the final sweep that detects no change.
type Result struct {
	Grid   *grid.Grid
	Sweeps int
}
