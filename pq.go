package gridpath

import "container/heap"

// Entry is a handle to a value held by a Frontier.
type Entry[T any] struct {
	Value        T
	IndexInQueue int
}

// queue is the container/heap backing store of a Frontier.
type queue[T any] struct {
	entries []*Entry[T]
	less    func(a, b T) bool
}

func (q *queue[T]) Len() int           { return len(q.entries) }
func (q *queue[T]) Less(i, j int) bool { return q.less(q.entries[i].Value, q.entries[j].Value) }
func (q *queue[T]) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.entries[i].IndexInQueue = i
	q.entries[j].IndexInQueue = j
}

func (q *queue[T]) Push(x any) {
	entry := x.(*Entry[T])
	entry.IndexInQueue = len(q.entries)
	q.entries = append(q.entries, entry)
}

func (q *queue[T]) Pop() any {
	old := q.entries
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.IndexInQueue = -1
	q.entries = old[:n-1]
	return entry
}

// Frontier is a min-priority collection ordered by a caller-supplied less
// function. Duplicates are permitted; callers that need set semantics track
// presence themselves.
type Frontier[T any] struct {
	q queue[T]
}

// NewFrontier creates an empty frontier. less(a, b) reports whether a must
// be popped before b.
func NewFrontier[T any](less func(a, b T) bool) *Frontier[T] {
	return &Frontier[T]{q: queue[T]{less: less}}
}

// Push inserts v and returns its handle.
func (f *Frontier[T]) Push(v T) *Entry[T] {
	entry := &Entry[T]{Value: v}
	heap.Push(&f.q, entry)
	return entry
}

// PopBest removes and returns the minimum element.
func (f *Frontier[T]) PopBest() (T, error) {
	if f.q.Len() == 0 {
		var zero T
		return zero, ErrEmptyFrontier
	}
	return heap.Pop(&f.q).(*Entry[T]).Value, nil
}

// PeekBest returns the minimum element without removing it.
func (f *Frontier[T]) PeekBest() (T, error) {
	if f.q.Len() == 0 {
		var zero T
		return zero, ErrEmptyFrontier
	}
	return f.q.entries[0].Value, nil
}

// Update replaces the value held by entry and restores the ordering.
// It reports false if entry has already been popped.
func (f *Frontier[T]) Update(entry *Entry[T], v T) bool {
	if entry.IndexInQueue < 0 || entry.IndexInQueue >= f.q.Len() || f.q.entries[entry.IndexInQueue] != entry {
		return false
	}
	entry.Value = v
	heap.Fix(&f.q, entry.IndexInQueue)
	return true
}

// IsEmpty reports whether no elements remain.
func (f *Frontier[T]) IsEmpty() bool { return f.q.Len() == 0 }

// Len returns the number of queued elements.
func (f *Frontier[T]) Len() int { return f.q.Len() }

// Values returns the queued values in heap order.
func (f *Frontier[T]) Values() []T {
	out := make([]T, len(f.q.entries))
	for i, e := range f.q.entries {
		out[i] = e.Value
	}
	return out
}
