package driver

import (
	"context"
	"sync"

	"github.com/relaxmesh/stencil/pkg/collections"
	"github.com/relaxmesh/stencil/pkg/comm"
	apperrors "github.com/relaxmesh/stencil/pkg/errors"
	"github.com/relaxmesh/stencil/pkg/grid"
	"github.com/relaxmesh/stencil/pkg/kernel"
	"github.com/relaxmesh/stencil/pkg/parallel"
	"github.com/relaxmesh/stencil/pkg/utils"
)

// DistributedDriver splits the logical grid into row-bands across
// simulated ranks (pkg/comm), sweeps each local band, exchanges ghost
// rows with neighbors every sweep, and globally reduces the over-limit
// flag until all ranks agree the run has converged.
type DistributedDriver struct {
	ranks       int
	epsilon     float64
	localThreads int // >1 delegates each rank's single sweep to a pool
	localChunk  int
	logger      utils.Logger
}

// NewDistributedDriver creates a distributed driver over the given
// number of ranks. localThreads <= 1 sweeps each rank's band serially;
// localThreads > 1 partitions the local band further and sweeps it with
// a per-rank worker pool (spec.md §4.6, §9: legitimate because sweep and
// ghost-exchange are strictly serialized per rank).
func NewDistributedDriver(ranks int, epsilon float64, localThreads, localChunk int, logger utils.Logger) *DistributedDriver {
	if ranks < 1 {
		ranks = 1
	}
	return &DistributedDriver{
		ranks:        ranks,
		epsilon:      epsilon,
		localThreads: localThreads,
		localChunk:   localChunk,
		logger:       logger,
	}
}

// slab is one rank's local materialization: rows [1, H-2] own interior
// rows, row 0 and row H-1 are either the true global boundary row (first
// and last rank) or a ghost row mirrored from a neighbor.
type slab struct {
	source, target *grid.Grid
	globalRowStart int // global row index this slab's local row 1 corresponds to
	ownedRows      int
	hasUpGhost     bool
	hasDownGhost   bool
}

// splitInteriorRows divides the H-2 interior rows into n contiguous,
// roughly equal, non-overlapping bands (the first remainder bands get
// one extra row), mirroring spec.md §4.6's row-slab decomposition.
func splitInteriorRows(interiorHeight, n int) []int {
	base := interiorHeight / n
	rem := interiorHeight % n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}

// buildSlabs partitions global into one slab per rank.
func buildSlabs(global *grid.Grid, n int) ([]*slab, error) {
	w, h := global.Width(), global.Height()
	sizes := splitInteriorRows(h-2, n)

	slabs := make([]*slab, n)
	rowStart := 1 // first interior row
	for r := 0; r < n; r++ {
		owned := sizes[r]
		localHeight := owned + 2
		local, err := grid.New(w, localHeight)
		if err != nil {
			return nil, err
		}
		// local row i <-> global row (rowStart - 1 + i), for i in [0, localHeight).
		for i := 0; i < localHeight; i++ {
			globalRow := rowStart - 1 + i
			for x := 0; x < w; x++ {
				local.Set(x, i, global.At(x, globalRow))
			}
		}
		target, err := grid.CloneWithEdge(local)
		if err != nil {
			return nil, err
		}
		slabs[r] = &slab{
			source:         local,
			target:         target,
			globalRowStart: rowStart,
			ownedRows:      owned,
			hasUpGhost:     r > 0,
			hasDownGhost:   r < n-1,
		}
		rowStart += owned
	}
	return slabs, nil
}

// sweepLocal runs one sweep over the slab's owned interior, optionally
// via a worker pool when localThreads > 1.
func (d *DistributedDriver) sweepLocal(s *slab, flag *kernel.Flag) error {
	interior := grid.Interior(s.source)
	if d.localThreads <= 1 {
		return kernel.Sweep(s.source, s.target, interior, d.epsilon, flag)
	}

	chunk := d.localChunk
	if chunk < 1 {
		chunk = 1
	}
	bands := grid.Partition(s.source, chunk)
	cfg := parallel.DefaultPoolConfig().WithWorkers(d.localThreads)
	pool := parallel.NewWorkerPool[grid.Region, struct{}](cfg)
	results := pool.ExecuteFunc(context.Background(), bands, func(_ context.Context, region grid.Region) (struct{}, error) {
		return struct{}{}, kernel.Sweep(s.source, s.target, region, d.epsilon, flag)
	})
	for _, r := range results {
		if r.Error != nil {
			return r.Error
		}
	}
	return nil
}

// Run scatters global across the configured number of ranks, sweeps
// each rank to convergence with ghost-row exchange each sweep, and
// gathers the owned rows back into a fresh grid of global's dimensions.
func (d *DistributedDriver) Run(global *grid.Grid) (Result, error) {
	slabs, err := buildSlabs(global, d.ranks)
	if err != nil {
		return Result{}, err
	}

	world := comm.NewWorld(d.ranks)
	sweepCounts := make([]int, d.ranks)
	runErrs := make([]error, d.ranks)

	var wg sync.WaitGroup
	wg.Add(d.ranks)
	for r := 0; r < d.ranks; r++ {
		go func(rank int) {
			defer wg.Done()
			runErrs[rank] = d.runRank(world.Comm(rank), slabs[rank], &sweepCounts[rank])
		}(r)
	}
	wg.Wait()

	for _, err := range runErrs {
		if err != nil {
			return Result{}, err
		}
	}

	result, err := gather(global, slabs)
	if err != nil {
		return Result{}, err
	}
	return Result{Grid: result, Sweeps: sweepCounts[0]}, nil
}

// runRank drives one rank's sweep/ghost-exchange/reduce loop to
// convergence.
func (d *DistributedDriver) runRank(c *comm.Comm, s *slab, sweeps *int) error {
	for {
		*sweeps++
		var flag kernel.Flag
		flag.Clear()
		if err := d.sweepLocal(s, &flag); err != nil {
			return err
		}
		s.source, s.target = s.target, s.source

		if err := exchangeGhosts(c, s); err != nil {
			return err
		}

		globalFlag := c.ReduceOr(flag.IsSet())
		if d.logger != nil {
			d.logger.Debug("distributed sweep complete: rank=%d sweep=%d global_changed=%t", c.Rank(), *sweeps, globalFlag)
		}
		if !globalFlag {
			return nil
		}
	}
}

// exchangeGhosts posts up to four non-blocking operations per rank: a
// send and receive to/from the upstream neighbor, and a send and receive
// to/from the downstream neighbor. Ranks at either end of the world skip
// the nonexistent side, per spec.md §4.6.
func exchangeGhosts(c *comm.Comm, s *slab) error {
	w := s.source.Width()
	h := s.source.Height()
	var reqs []*comm.Request

	var fromUp, fromDown []float64
	if s.hasUpGhost {
		topOwned := rowOf(s.source, 1, w)
		reqs = append(reqs, c.Send(c.Rank()-1, 0, *topOwned))
		reqs = append(reqs, c.Recv(c.Rank()-1, 0, &fromUp))
		// Send copies the payload synchronously before returning, so the
		// pooled buffer is free to reuse immediately.
		collections.Float64SlicePool.Put(topOwned)
	}
	if s.hasDownGhost {
		bottomOwned := rowOf(s.source, h-2, w)
		reqs = append(reqs, c.Send(c.Rank()+1, 0, *bottomOwned))
		reqs = append(reqs, c.Recv(c.Rank()+1, 0, &fromDown))
		collections.Float64SlicePool.Put(bottomOwned)
	}
	if err := comm.WaitAll(reqs...); err != nil {
		return apperrors.Wrap(apperrors.CodeCommunicationFailed, "ghost exchange failed", err)
	}
	if s.hasUpGhost {
		setRow(s.source, 0, fromUp)
	}
	if s.hasDownGhost {
		setRow(s.source, h-1, fromDown)
	}
	return nil
}

// rowOf extracts row y into a pooled buffer; the caller returns it via
// collections.Float64SlicePool.Put once the data has been consumed.
func rowOf(g *grid.Grid, y, w int) *[]float64 {
	row := collections.Float64SlicePool.Get()
	*row = (*row)[:0]
	for x := 0; x < w; x++ {
		*row = append(*row, g.At(x, y))
	}
	return row
}

func setRow(g *grid.Grid, y int, row []float64) {
	for x, v := range row {
		g.Set(x, y, v)
	}
}

// gather collects every rank's owned rows back into a fresh grid with
// global's edges, reproducing spec.md §4.6's post-convergence gather.
func gather(global *grid.Grid, slabs []*slab) (*grid.Grid, error) {
	result, err := grid.CloneWithEdge(global)
	if err != nil {
		return nil, err
	}
	w := global.Width()
	for _, s := range slabs {
		for i := 0; i < s.ownedRows; i++ {
			localRow := 1 + i
			globalRow := s.globalRowStart + i
			for x := 0; x < w; x++ {
				result.Set(x, globalRow, s.source.At(x, localRow))
			}
		}
	}
	return result, nil
}
