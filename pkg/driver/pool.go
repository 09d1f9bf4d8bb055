package driver

import (
	"context"

	"github.com/relaxmesh/stencil/pkg/grid"
	"github.com/relaxmesh/stencil/pkg/kernel"
	"github.com/relaxmesh/stencil/pkg/parallel"
	"github.com/relaxmesh/stencil/pkg/utils"
)

// PoolDriver partitions the interior into horizontal bands and dispatches
// one sweep task per band to a fixed-size worker pool each sweep,
// barrier-joining before swapping buffers.
type PoolDriver struct {
	epsilon float64
	threads int
	chunk   int
	logger  utils.Logger
	state   State
	pool    *parallel.WorkerPool[grid.Region, struct{}]
}

// NewPoolDriver creates a thread-pool driver with thread count T >= 1 and
// chunk size C >= 1 (interior rows per band).
func NewPoolDriver(epsilon float64, threads, chunk int, logger utils.Logger) *PoolDriver {
	if threads < 1 {
		threads = 1
	}
	if chunk < 1 {
		chunk = 1
	}
	cfg := parallel.DefaultPoolConfig().WithWorkers(threads)
	return &PoolDriver{
		epsilon: epsilon,
		threads: threads,
		chunk:   chunk,
		logger:  logger,
		state:   StateInit,
		pool:    parallel.NewWorkerPool[grid.Region, struct{}](cfg),
	}
}

// sweepBand runs the kernel over one band, recording any error on the
// result so the barrier-joining caller can surface it.
func (d *PoolDriver) sweepBand(source, target *grid.Grid, flag *kernel.Flag) func(ctx context.Context, region grid.Region) (struct{}, error) {
	return func(_ context.Context, region grid.Region) (struct{}, error) {
		return struct{}{}, kernel.Sweep(source, target, region, d.epsilon, flag)
	}
}

// Run sweeps source/target to convergence using the configured thread
// count and chunk size, and returns the grid holding the latest output.
func (d *PoolDriver) Run(source, target *grid.Grid) (Result, error) {
	d.state = StateSweeping
	ctx := context.Background()

	sweeps := 0
	var flag kernel.Flag
	for {
		sweeps++
		flag.Clear()
		bands := grid.Partition(source, d.chunk)

		results := d.pool.ExecuteFunc(ctx, bands, d.sweepBand(source, target, &flag))
		for _, r := range results {
			if r.Error != nil {
				return Result{}, r.Error
			}
		}

		source, target = target, source
		if d.logger != nil {
			d.logger.Debug("pool sweep complete: sweep=%d bands=%d changed=%t", sweeps, len(bands), flag.IsSet())
		}
		if !flag.IsSet() {
			break
		}
	}

	d.state = StateConverged
	return Result{Grid: source, Sweeps: sweeps}, nil
}

// State returns the driver's current state.
func (d *PoolDriver) State() State {
	return d.state
}
