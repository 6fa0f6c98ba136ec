package state

import (
	"sync/atomic"

	"github.com/cwbudde/algo-dynamics/dsp/core"
)

// DefaultQueueCapacity is the capacity used when NewQueue is given a
// non-positive size.
const DefaultQueueCapacity = 64

// Queue is a fixed-capacity single-producer/single-consumer ring of events.
// One control goroutine may Push while one audio goroutine Drains; neither
// side blocks or allocates.
type Queue[F core.Float] struct {
	buf  []Event[F]
	mask uint64

	head atomic.Uint64 // next slot to read, owned by the consumer
	tail atomic.Uint64 // next slot to write, owned by the producer
}

// NewQueue returns a queue holding at least capacity events. The capacity is
// rounded up to a power of two.
func NewQueue[F core.Float](capacity int) *Queue[F] {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}

	size := 2
	for size < capacity {
		size <<= 1
	}

	return &Queue[F]{
		buf:  make([]Event[F], size),
		mask: uint64(size - 1),
	}
}

// Cap returns the number of slots.
func (q *Queue[F]) Cap() int { return len(q.buf) }

// Len returns the number of pending events.
func (q *Queue[F]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Push enqueues e. It reports false, dropping e, when the queue is full.
func (q *Queue[F]) Push(e Event[F]) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return false
	}

	q.buf[tail&q.mask] = e
	q.tail.Store(tail + 1)

	return true
}

// Pop dequeues one event.
func (q *Queue[F]) Pop() (Event[F], bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Event[F]{}, false
	}

	e := q.buf[head&q.mask]
	q.head.Store(head + 1)

	return e, true
}

// Drain applies every pending event to st in push order and returns how many
// were applied.
func (q *Queue[F]) Drain(st *State[F]) int {
	head := q.head.Load()
	tail := q.tail.Load()

	n := 0
	for ; head != tail; head++ {
		st.Apply(q.buf[head&q.mask])
		q.head.Store(head + 1)
		n++
	}

	return n
}
