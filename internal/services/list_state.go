package service

import (
	"slices"
	"sync"
)

// ListState is a keyed list that admin panels update in place after a
// successful write, so the view stays current without a re-fetch.
type ListState[T any] struct {
	key func(T) int64

	mu    sync.RWMutex
	items []T
}

func NewListState[T any](key func(T) int64) *ListState[T] {
	return &ListState[T]{key: key}
}

func (l *ListState[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = slices.Clone(items)
}

func (l *ListState[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.items)
}

func (l *ListState[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.items)
}

func (l *ListState[T]) Get(key int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, item := range l.items {
		if l.key(item) == key {
			return item, true
		}
	}

	var zero T
	return zero, false
}

func (l *ListState[T]) Filter(keep func(T) bool) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

// Sorted returns a sorted copy; the stored order is untouched.
func (l *ListState[T]) Sorted(cmp func(a, b T) int) []T {
	items := l.Items()
	slices.SortStableFunc(items, cmp)

	return items
}

// Upsert replaces the item with the same key or appends it.
func (l *ListState[T]) Upsert(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.index(l.key(item)); i >= 0 {
		l.items[i] = item
		return
	}

	l.items = append(l.items, item)
}

// Merge applies fn to the item with key. It reports whether the item exists.
func (l *ListState[T]) Merge(key int64, fn func(T) T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(key)
	if i < 0 {
		return false
	}

	l.items[i] = fn(l.items[i])

	return true
}

func (l *ListState[T]) Remove(key int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = slices.DeleteFunc(l.items, func(item T) bool { return l.key(item) == key })
}

func (l *ListState[T]) index(key int64) int {
	return slices.IndexFunc(l.items, func(item T) bool { return l.key(item) == key })
}
