// Package comm implements the standard message-passing layer spec.md §6
// calls for: rank/size query, non-blocking point-to-point send/receive
// with wait-all, and the broadcast/scatter/gather/barrier/reduce
// collectives. No cgo MPI binding exists anywhere in the retrieved
// corpus, so ranks are simulated in-process: each rank is a goroutine,
// channels stand in for the wire, and a condition-variable rendezvous
// stands in for a collective operation, mirroring the way the teacher's
// own worker pool models concurrency with goroutines and channels rather
// than OS threads.
package comm

import "sync"

// World is the fixed set of ranks participating in one distributed run.
// All ranks must call the same sequence of collective operations
// (Barrier, Reduce, Broadcast, Scatter, Gather) in the same order, as in
// real SPMD message passing.
type World struct {
	size int

	// ptChans[from][to] carries point-to-point payloads from rank "from"
	// to rank "to".
	ptChans [][]chan []float64

	collMu      sync.Mutex
	collCond    *sync.Cond
	collValues  []any
	collArrived int
	collResults []any
	collGen     int
}

// NewWorld creates a World of the given size, 1 <= size.
func NewWorld(size int) *World {
	if size < 1 {
		size = 1
	}
	w := &World{
		size:       size,
		ptChans:    make([][]chan []float64, size),
		collValues: make([]any, size),
	}
	w.collCond = sync.NewCond(&w.collMu)
	for i := range w.ptChans {
		w.ptChans[i] = make([]chan []float64, size)
		for j := range w.ptChans[i] {
			// Buffered by one: a ghost-row exchange posts at most one
			// send per direction per sweep, and sends/receives are
			// always paired within the same sweep.
			w.ptChans[i][j] = make(chan []float64, 1)
		}
	}
	return w
}

// Size returns the number of ranks in the world.
func (w *World) Size() int { return w.size }

// Comm returns the communicator handle for the given rank, 0 <= rank <
// Size().
func (w *World) Comm(rank int) *Comm {
	return &Comm{world: w, rank: rank}
}

// collect is the rendezvous underlying every collective: the calling
// rank contributes value and blocks until all ranks have contributed for
// the current generation, then every rank observes the same full slice
// of contributions, indexed by rank.
func (w *World) collect(rank int, value any) []any {
	w.collMu.Lock()
	defer w.collMu.Unlock()

	gen := w.collGen
	w.collValues[rank] = value
	w.collArrived++

	if w.collArrived == w.size {
		results := make([]any, w.size)
		copy(results, w.collValues)
		w.collResults = results
		w.collArrived = 0
		w.collGen++
		w.collCond.Broadcast()
		return results
	}

	for w.collGen == gen {
		w.collCond.Wait()
	}
	return w.collResults
}
