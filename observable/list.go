package observable

import "slices"

type listener[T any] struct {
	id int
	fn func(Change[T])
}

// List is a slice-backed [Sequence]. Index arguments out of range panic, as
// they would for a slice.
//
// A List is not safe for concurrent use. Mutate it from the goroutine which
// owns the widgets observing it.
type List[T any] struct {
	items []T

	listeners []listener[T]
	nextID    int

	// Open Batch calls and the sub-changes collected meanwhile.
	batchDepth int
	pending    []SubChange[T]
}

// NewList returns a list holding a copy of items.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Items returns a copy of all items.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// Subscribe registers listener for change notifications.
func (l *List[T]) Subscribe(fn func(Change[T])) *Subscription {
	id := l.nextID
	l.nextID++
	l.listeners = append(l.listeners, listener[T]{id: id, fn: fn})
	return NewSubscription(func() {
		l.listeners = slices.DeleteFunc(l.listeners, func(entry listener[T]) bool {
			return entry.id == id
		})
	})
}

// Append adds items at the end.
func (l *List[T]) Append(items ...T) {
	l.Insert(len(l.items), items...)
}

// Insert adds items before index i.
func (l *List[T]) Insert(i int, items ...T) {
	if len(items) == 0 {
		return
	}
	l.items = slices.Insert(l.items, i, items...)
	l.emit(SubChange[T]{From: i, To: i + len(items), Added: slices.Clone(items)})
}

// Remove removes and returns the item at index i.
func (l *List[T]) Remove(i int) T {
	item := l.items[i]
	l.RemoveRange(i, i+1)
	return item
}

// RemoveRange removes the items in [from, to).
func (l *List[T]) RemoveRange(from, to int) {
	if from == to {
		return
	}
	removed := slices.Clone(l.items[from:to])
	l.items = slices.Delete(l.items, from, to)
	l.emit(SubChange[T]{From: from, To: from, Removed: removed})
}

// Set replaces the item at index i.
func (l *List[T]) Set(i int, item T) {
	old := l.items[i]
	l.items[i] = item
	l.emit(SubChange[T]{From: i, To: i + 1, Removed: []T{old}, Added: []T{item}})
}

// Swap exchanges the items at indexes i and j.
func (l *List[T]) Swap(i, j int) {
	if i == j {
		return
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
	from, to := min(i, j), max(i, j)
	permutation := make([]int, to-from+1)
	for k := range permutation {
		permutation[k] = from + k
	}
	permutation[0], permutation[len(permutation)-1] = to, from
	l.emit(SubChange[T]{From: from, To: to + 1, Permutation: permutation})
}

// Update reports that the item at index i changed in place, for items
// holding pointers which were mutated.
func (l *List[T]) Update(i int) {
	_ = l.items[i]
	l.emit(SubChange[T]{From: i, To: i + 1, Updated: true})
}

// SetAll replaces the whole content with items.
func (l *List[T]) SetAll(items ...T) {
	if len(l.items) == 0 && len(items) == 0 {
		return
	}
	removed := l.items
	l.items = slices.Clone(items)
	l.emit(SubChange[T]{From: 0, To: len(items), Removed: removed, Added: slices.Clone(items)})
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.RemoveRange(0, len(l.items))
}

// Batch runs edit and delivers all mutations it makes in a single
// notification.
func (l *List[T]) Batch(edit func(list *List[T])) {
	l.batchDepth++
	defer func() {
		l.batchDepth--
		if l.batchDepth == 0 && len(l.pending) > 0 {
			changes := l.pending
			l.pending = nil
			l.notify(changes)
		}
	}()
	edit(l)
}

func (l *List[T]) emit(change SubChange[T]) {
	if l.batchDepth > 0 {
		l.pending = append(l.pending, change)
		return
	}
	l.notify([]SubChange[T]{change})
}

func (l *List[T]) notify(changes []SubChange[T]) {
	// Listeners may unsubscribe while being notified.
	listeners := slices.Clone(l.listeners)
	for _, entry := range listeners {
		entry.fn(Change[T]{Sequence: l, Changes: changes})
	}
}

var _ Sequence[int] = &List[int]{}
