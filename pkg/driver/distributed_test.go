package driver

import (
	"sync"
	"testing"

	"github.com/relaxmesh/stencil/pkg/comm"
	"github.com/relaxmesh/stencil/pkg/grid"
	"github.com/relaxmesh/stencil/pkg/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributedDriverMatchesSerialS4(t *testing.T) {
	// S4: W=H=256, seed=31413241, epsilon=0.0001, N=2 ranks.
	serialSource, err := rng.InitSeeded(256, 256)
	require.NoError(t, err)
	serialTarget, err := grid.CloneWithEdge(serialSource)
	require.NoError(t, err)
	serialResult, err := NewSerialDriver(0.0001, nil).Run(serialSource, serialTarget)
	require.NoError(t, err)

	distSource, err := rng.InitSeeded(256, 256)
	require.NoError(t, err)
	distResult, err := NewDistributedDriver(2, 0.0001, 1, 0, nil).Run(distSource)
	require.NoError(t, err)

	assert.Equal(t, grid.ChecksumXOR(serialResult.Grid), grid.ChecksumXOR(distResult.Grid))
}

func TestDistributedDriverSingleRankMatchesSerial(t *testing.T) {
	// Round-trip law: a single-rank distributed run equals a serial run.
	serialSource, err := rng.InitSeeded(16, 16)
	require.NoError(t, err)
	serialTarget, err := grid.CloneWithEdge(serialSource)
	require.NoError(t, err)
	serialResult, err := NewSerialDriver(0.0001, nil).Run(serialSource, serialTarget)
	require.NoError(t, err)

	distSource, err := rng.InitSeeded(16, 16)
	require.NoError(t, err)
	distResult, err := NewDistributedDriver(1, 0.0001, 1, 0, nil).Run(distSource)
	require.NoError(t, err)

	assert.Equal(t, grid.ChecksumXOR(serialResult.Grid), grid.ChecksumXOR(distResult.Grid))
}

func TestDistributedDriverGhostExchangeSanityS5(t *testing.T) {
	// S5: N=4 ranks, seeded grid; scatter + one ghost exchange (no sweep)
	// leaves each rank's ghost rows equal to its neighbors' first/last
	// owned rows, bit-identically.
	source, err := rng.InitSeeded(20, 40)
	require.NoError(t, err)

	slabs, err := buildSlabs(source, 4)
	require.NoError(t, err)

	world := comm.NewWorld(4)
	errs := make([]error, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	for r := 0; r < 4; r++ {
		go func(rank int) {
			defer wg.Done()
			errs[rank] = exchangeGhosts(world.Comm(rank), slabs[rank])
		}(r)
	}
	wg.Wait()
	for _, e := range errs {
		require.NoError(t, e)
	}

	for r := 0; r < 3; r++ {
		upper := slabs[r]
		lower := slabs[r+1]
		upperLastOwnedRow := *rowOf(upper.source, upper.source.Height()-2, upper.source.Width())
		lowerGhostAbove := *rowOf(lower.source, 0, lower.source.Width())
		assert.Equal(t, upperLastOwnedRow, lowerGhostAbove)

		lowerFirstOwnedRow := *rowOf(lower.source, 1, lower.source.Width())
		upperGhostBelow := *rowOf(upper.source, upper.source.Height()-1, upper.source.Width())
		assert.Equal(t, lowerFirstOwnedRow, upperGhostBelow)
	}
}

func TestScatterGatherNoSweepReproducesInput(t *testing.T) {
	source, err := rng.InitSeeded(12, 24)
	require.NoError(t, err)

	slabs, err := buildSlabs(source, 3)
	require.NoError(t, err)

	reconstructed, err := gather(source, slabs)
	require.NoError(t, err)
	assert.True(t, grid.Equals(source, reconstructed))
}
