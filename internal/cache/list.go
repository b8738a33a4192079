// Package cache holds client-side mirrors of remote collections. A list
// only changes by applying server-confirmed results: there is no
// speculative mutation ahead of the round trip.
package cache

import "sync"

// Entity is any remote resource with an identifier unique within a list.
type Entity interface {
	Key() int64
}

// List is an ordered sequence of entities keyed by identifier.
type List[T Entity] struct {
	mu    sync.RWMutex
	items []T
}

func NewList[T Entity]() *List[T] {
	return &List[T]{}
}

// Replace swaps in the server's returned list. Last call wins.
func (l *List[T]) Replace(items []T) {
	copied := make([]T, len(items))
	copy(copied, items)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = copied
}

// ApplyCreate appends a server-confirmed entity to the end of the list.
func (l *List[T]) ApplyCreate(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
}

// ApplyUpdate replaces the entity with the matching identifier in place,
// preserving its position. It reports whether a match was found.
func (l *List[T]) ApplyUpdate(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Key() == item.Key() {
			l.items[i] = item
			return true
		}
	}
	return false
}

// ApplyDelete removes the entity with the matching identifier. It
// reports whether a match was found.
func (l *List[T]) ApplyDelete(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Key() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entity with the matching identifier.
func (l *List[T]) Get(id int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.items {
		if l.items[i].Key() == id {
			return l.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the entities matching the predicate, in list order,
// without mutating the underlying sequence.
func (l *List[T]) Filter(pred func(T) bool) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []T
	for i := range l.items {
		if pred(l.items[i]) {
			out = append(out, l.items[i])
		}
	}
	return out
}

// Snapshot returns a copy of the current sequence.
func (l *List[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the current list length.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
