package lsp

import "sync"

// Queue is the bounded, mutex-guarded FIFO between the reader goroutine and
// the single-threaded editor loop. The loop drains at most one item per
// tick and never blocks; when the queue is full the oldest item is dropped,
// since a stale jump target is worthless anyway.
type Queue struct {
	mu    sync.Mutex
	items []Result
	cap   int
}

// NewQueue creates a queue holding at most capacity items.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 8
	}
	return &Queue{cap: capacity}
}

// Push appends an item, evicting the oldest when full.
func (q *Queue) Push(r Result) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.cap {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, r)
}

// TryPop removes and returns the oldest item without blocking.
func (q *Queue) TryPop() (Result, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Result{}, false
	}
	r := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return r, true
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
