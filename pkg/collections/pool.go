// Package collections provides generic data structures shared by the
// sweep orchestrator and the distributed driver.
package collections

import "sync"

// SlicePool is a generic pool for slices of any type, used to reuse
// row-sized buffers across repeated ghost-row exchanges instead of
// allocating one per sweep.
type SlicePool[T any] struct {
	initialCap int
	pool       sync.Pool
}

// NewSlicePool creates a new slice pool with the given initial capacity.
func NewSlicePool[T any](initialCap int) *SlicePool[T] {
	if initialCap <= 0 {
		initialCap = 256
	}
	return &SlicePool[T]{
		initialCap: initialCap,
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]T, 0, initialCap)
				return &s
			},
		},
	}
}

// Get gets a slice from the pool.
func (p *SlicePool[T]) Get() *[]T {
	return p.pool.Get().(*[]T)
}

// Put returns a slice to the pool after clearing it.
func (p *SlicePool[T]) Put(s *[]T) {
	*s = (*s)[:0]
	p.pool.Put(s)
}

// Float64SlicePool is a shared pool for []float64 row buffers, sized
// for the ghost-row payloads pkg/comm exchanges every sweep.
var Float64SlicePool = NewSlicePool[float64](256)

// Queue is a generic FIFO queue with efficient dequeue using a head
// pointer, backing the sweep job dispatcher.
type Queue[T any] struct {
	data []T
	head int
}

// NewQueue creates a new queue with the given capacity.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{data: make([]T, 0, capacity)}
}

// Enqueue adds a value to the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.data = append(q.data, v)
}

// Dequeue removes and returns the first value from the queue.
func (q *Queue[T]) Dequeue() (T, bool) {
	if q.head >= len(q.data) {
		var zero T
		return zero, false
	}
	v := q.data[q.head]
	q.head++
	if q.head > len(q.data)/2 && q.head > 1024 {
		q.compact()
	}
	return v, true
}

// IsEmpty returns true if the queue is empty.
func (q *Queue[T]) IsEmpty() bool {
	return q.head >= len(q.data)
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	return len(q.data) - q.head
}

// compact moves remaining elements to the front of the slice.
func (q *Queue[T]) compact() {
	remaining := q.data[q.head:]
	copy(q.data, remaining)
	q.data = q.data[:len(remaining)]
	q.head = 0
}
