package driver

import (
	"github.com/relaxmesh/stencil/pkg/grid"
	"github.com/relaxmesh/stencil/pkg/kernel"
	"github.com/relaxmesh/stencil/pkg/utils"
)

// SerialDriver runs sweeps over the entire interior on a single
// goroutine until convergence, swapping source and target between
// sweeps.
type SerialDriver struct {
	epsilon float64
	logger  utils.Logger
	state   State
}

// NewSerialDriver creates a serial driver for the given convergence
// threshold. A nil logger disables logging.
func NewSerialDriver(epsilon float64, logger utils.Logger) *SerialDriver {
	return &SerialDriver{epsilon: epsilon, logger: logger, state: StateInit}
}

// Run sweeps source/target to convergence and returns the grid holding
// the latest output together with the total sweep count.
func (d *SerialDriver) Run(source, target *grid.Grid) (Result, error) {
	d.state = StateSweeping
	interior := grid.Interior(source)

	sweeps := 0
	var flag kernel.Flag
	for {
		sweeps++
		flag.Clear()
		if err := kernel.Sweep(source, target, interior, d.epsilon, &flag); err != nil {
			return Result{}, err
		}
		source, target = target, source
		if d.logger != nil {
			d.logger.Debug("serial sweep complete: sweep=%d changed=%t", sweeps, flag.IsSet())
		}
		if !flag.IsSet() {
			break
		}
	}

	d.state = StateConverged
	return Result{Grid: source, Sweeps: sweeps}, nil
}

// State returns the driver's current state.
func (d *SerialDriver) State() State {
	return d.state
}
