// Package events buffers pointer input between frames.
package events

// PointerMove is a pointer position in viewport pixels.
type PointerMove struct {
	X, Y float64
}

// Queue is a bounded FIFO ring of pointer moves.
// Push is called from input handlers, Drain once per frame by the frame driver;
// both run on the same goroutine.
//
// Overflow: oldest moves are overwritten when full.
type Queue struct {
	buf     []PointerMove
	head    int // index of the oldest move
	size    int
	dropped uint64
}

// NewQueue creates a queue holding at most capacity moves (minimum 1).
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{buf: make([]PointerMove, capacity)}
}

// Push appends a move, dropping the oldest if the queue is full.
func (q *Queue) Push(m PointerMove) {
	if q.size == len(q.buf) {
		q.buf[q.head] = m
		q.head = (q.head + 1) % len(q.buf)
		q.dropped++
		return
	}
	q.buf[(q.head+q.size)%len(q.buf)] = m
	q.size++
}

// Drain appends all pending moves to dst in FIFO order and empties the queue.
func (q *Queue) Drain(dst []PointerMove) []PointerMove {
	for i := 0; i < q.size; i++ {
		dst = append(dst, q.buf[(q.head+i)%len(q.buf)])
	}
	q.head = 0
	q.size = 0
	return dst
}

// Len returns the pending move count.
func (q *Queue) Len() int {
	return q.size
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return len(q.buf)
}

// Dropped returns how many moves were overwritten since creation.
func (q *Queue) Dropped() uint64 {
	return q.dropped
}
