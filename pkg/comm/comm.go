package comm

import (
	apperrors "github.com/relaxmesh/stencil/pkg/errors"
)

// Comm is one rank's handle onto a World: rank/size query plus
// point-to-point and collective operations.
type Comm struct {
	world *World
	rank  int
}

// Rank returns this communicator's rank, 0 <= Rank() < Size().
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the world.
func (c *Comm) Size() int { return c.world.size }

// Request is a handle to a pending non-blocking point-to-point
// operation; Wait blocks until it completes.
type Request struct {
	done chan error
	recv *[]float64
}

// Wait blocks until the operation completes, returning any error
// (CommunicationFailed if the channel was closed without delivering).
func (r *Request) Wait() error {
	return <-r.done
}

// Send posts a non-blocking send of data to dest. The tag is accepted
// for interface compatibility with a real message-passing layer but is
// not used for matching: a receiver accepts any tag from the expected
// neighbor, per spec.md §4.6.
func (c *Comm) Send(dest int, tag int, data []float64) *Request {
	req := &Request{done: make(chan error, 1)}
	if dest < 0 || dest >= c.world.size {
		req.done <- apperrors.Wrap(apperrors.CodeCommunicationFailed, "send to invalid rank", nil)
		return req
	}
	payload := make([]float64, len(data))
	copy(payload, data)
	go func() {
		c.world.ptChans[c.rank][dest] <- payload
		req.done <- nil
	}()
	return req
}

// Recv posts a non-blocking receive from source. The result lands in out
// once the Request completes.
func (c *Comm) Recv(source int, tag int, out *[]float64) *Request {
	req := &Request{done: make(chan error, 1), recv: out}
	if source < 0 || source >= c.world.size {
		req.done <- apperrors.Wrap(apperrors.CodeCommunicationFailed, "recv from invalid rank", nil)
		return req
	}
	go func() {
		data, ok := <-c.world.ptChans[source][c.rank]
		if !ok {
			req.done <- apperrors.Wrap(apperrors.CodeCommunicationFailed, "channel closed before receive", nil)
			return
		}
		*out = data
		req.done <- nil
	}()
	return req
}

// WaitAll blocks until every request completes, returning the first
// error encountered, if any. Per spec.md §4.6, a ghost exchange posts at
// most four operations per rank, so reqs is always small.
func WaitAll(reqs ...*Request) error {
	var first error
	for _, r := range reqs {
		if err := r.Wait(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Barrier blocks until every rank has called Barrier.
func (c *Comm) Barrier() {
	c.world.collect(c.rank, nil)
}

// BroadcastFloat64s sends root's slice to every rank.
func (c *Comm) BroadcastFloat64s(root int, value []float64) []float64 {
	var contribution []float64
	if c.rank == root {
		contribution = value
	}
	results := c.world.collect(c.rank, contribution)
	out, _ := results[root].([]float64)
	return out
}

// ScatterFloat64s hands out root's per-rank chunks (value[i] goes to
// rank i) and returns this rank's chunk, or nil if root supplied fewer
// chunks than there are ranks. Only root needs to pass a non-nil value.
func (c *Comm) ScatterFloat64s(root int, value [][]float64) []float64 {
	var contribution [][]float64
	if c.rank == root {
		contribution = value
	}
	results := c.world.collect(c.rank, contribution)
	chunks, _ := results[root].([][]float64)
	if c.rank >= len(chunks) {
		return nil
	}
	return chunks[c.rank]
}

// GatherFloat64s collects every rank's slice into a root-ordered result,
// observable (in this in-process simulation) by every rank.
func (c *Comm) GatherFloat64s(value []float64) [][]float64 {
	results := c.world.collect(c.rank, value)
	out := make([][]float64, len(results))
	for i, r := range results {
		out[i], _ = r.([]float64)
	}
	return out
}

// ReduceSumUint64 all-reduces value across every rank with unsigned
// wrapping addition.
func (c *Comm) ReduceSumUint64(value uint64) uint64 {
	results := c.world.collect(c.rank, value)
	var acc uint64
	for _, r := range results {
		acc += r.(uint64)
	}
	return acc
}

// ReduceXorUint64 all-reduces value across every rank with bitwise XOR.
func (c *Comm) ReduceXorUint64(value uint64) uint64 {
	results := c.world.collect(c.rank, value)
	var acc uint64
	for _, r := range results {
		acc ^= r.(uint64)
	}
	return acc
}

// ReduceMaxFloat64 all-reduces value across every rank with max.
func (c *Comm) ReduceMaxFloat64(value float64) float64 {
	results := c.world.collect(c.rank, value)
	acc := results[0].(float64)
	for _, r := range results[1:] {
		if v := r.(float64); v > acc {
			acc = v
		}
	}
	return acc
}

// ReduceOr all-reduces a flag across every rank with logical OR. This is
// the global over-limit flag reduction of spec.md §4.6 step 5.
func (c *Comm) ReduceOr(value bool) bool {
	results := c.world.collect(c.rank, value)
	for _, r := range results {
		if r.(bool) {
			return true
		}
	}
	return false
}
