// Package crawl — FIFO queue with deduplication.
// Maintains a seen set keyed by a caller-supplied function so the same
// file or URL is never processed twice.
package crawl

// Queue is a FIFO queue that drops items whose key it has seen before.
type Queue[T any] struct {
	items []T
	seen  map[string]bool
	key   func(T) string
	idx   int // current read position
}

// NewQueue creates an empty Queue keyed by key.
func NewQueue[T any](key func(T) string) *Queue[T] {
	return &Queue[T]{
		seen: make(map[string]bool),
		key:  key,
	}
}

// Add enqueues item unless an item with the same key was added before.
// It reports whether item was enqueued.
func (q *Queue[T]) Add(item T) bool {
	k := q.key(item)
	if q.seen[k] {
		return false
	}
	q.seen[k] = true
	q.items = append(q.items, item)
	return true
}

// HasNext returns true if there are unprocessed items.
func (q *Queue[T]) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed item and advances the pointer.
func (q *Queue[T]) Next() T {
	item := q.items[q.idx]
	q.idx++
	return item
}

// Seen returns the total number of unique items added.
func (q *Queue[T]) Seen() int {
	return len(q.seen)
}

// All returns every item in insertion order.
func (q *Queue[T]) All() []T {
	return q.items
}
