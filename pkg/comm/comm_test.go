package comm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankSize(t *testing.T) {
	world := NewWorld(4)
	for r := 0; r < 4; r++ {
		c := world.Comm(r)
		assert.Equal(t, r, c.Rank())
		assert.Equal(t, 4, c.Size())
	}
}

func TestSendRecvRoundTrip(t *testing.T) {
	world := NewWorld(2)
	c0 := world.Comm(0)
	c1 := world.Comm(1)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		req := c0.Send(1, 0, []float64{1, 2, 3})
		require.NoError(t, req.Wait())
	}()

	var received []float64
	go func() {
		defer wg.Done()
		req := c1.Recv(0, 0, &received)
		require.NoError(t, req.Wait())
	}()

	wg.Wait()
	assert.Equal(t, []float64{1, 2, 3}, received)
}

func TestWaitAllFourOperations(t *testing.T) {
	// Mirrors a ghost exchange: two sends, two receives, posted together.
	world := NewWorld(3)
	c1 := world.Comm(1)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		c0 := world.Comm(0)
		send := c0.Send(1, 0, []float64{1})
		req := c0.Recv(1, 0, new([]float64))
		require.NoError(t, WaitAll(send, req))
	}()
	go func() {
		defer wg.Done()
		c2 := world.Comm(2)
		send := c2.Send(1, 0, []float64{2})
		req := c2.Recv(1, 0, new([]float64))
		require.NoError(t, WaitAll(send, req))
	}()

	var fromUp, fromDown []float64
	go func() {
		defer wg.Done()
		upReq := c1.Send(0, 0, []float64{10})
		downReq := c1.Send(2, 0, []float64{20})
		recvUp := c1.Recv(0, 0, &fromUp)
		recvDown := c1.Recv(2, 0, &fromDown)
		require.NoError(t, WaitAll(upReq, downReq, recvUp, recvDown))
	}()

	wg.Wait()
}

func TestBarrierReleasesAllRanks(t *testing.T) {
	world := NewWorld(4)
	var wg sync.WaitGroup
	var counter int
	var mu sync.Mutex

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			c := world.Comm(rank)
			mu.Lock()
			counter++
			mu.Unlock()
			c.Barrier()
		}(r)
	}
	wg.Wait()
	assert.Equal(t, 4, counter)
}

func TestReduceOrGlobalFlag(t *testing.T) {
	world := NewWorld(3)
	flags := []bool{false, true, false}
	results := make([]bool, 3)
	var wg sync.WaitGroup
	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank] = world.Comm(rank).ReduceOr(flags[rank])
		}(r)
	}
	wg.Wait()
	for _, got := range results {
		assert.True(t, got)
	}
}

func TestReduceSumAndXorUint64(t *testing.T) {
	world := NewWorld(4)
	values := []uint64{1, 2, 4, 8}
	sums := make([]uint64, 4)
	xors := make([]uint64, 4)
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			c := world.Comm(rank)
			sums[rank] = c.ReduceSumUint64(values[rank])
		}(r)
	}
	wg.Wait()

	wg.Add(4)
	for r := 0; r < 4; r++ {
		go func(rank int) {
			defer wg.Done()
			c := world.Comm(rank)
			xors[rank] = c.ReduceXorUint64(values[rank])
		}(r)
	}
	wg.Wait()

	for _, s := range sums {
		assert.Equal(t, uint64(15), s)
	}
	for _, x := range xors {
		assert.Equal(t, uint64(1^2^4^8), x)
	}
}

func TestReduceMaxFloat64(t *testing.T) {
	world := NewWorld(3)
	values := []float64{1.5, 9.25, 3.0}
	results := make([]float64, 3)
	var wg sync.WaitGroup
	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank] = world.Comm(rank).ReduceMaxFloat64(values[rank])
		}(r)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, 9.25, got)
	}
}

func TestScatterGatherRoundTrip(t *testing.T) {
	world := NewWorld(2)
	chunks := [][]float64{{1, 2}, {3, 4}}

	local := make([][]float64, 2)
	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			c := world.Comm(rank)
			local[rank] = c.ScatterFloat64s(0, chunks)
		}(r)
	}
	wg.Wait()
	assert.Equal(t, []float64{1, 2}, local[0])
	assert.Equal(t, []float64{3, 4}, local[1])

	gathered := make([][][]float64, 2)
	wg.Add(2)
	for r := 0; r < 2; r++ {
		go func(rank int) {
			defer wg.Done()
			c := world.Comm(rank)
			gathered[rank] = c.GatherFloat64s(local[rank])
		}(r)
	}
	wg.Wait()
	assert.Equal(t, chunks, gathered[0])
	assert.Equal(t, chunks, gathered[1])
}
