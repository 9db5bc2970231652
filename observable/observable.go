// Package observable provides ordered sequences which report their mutations
// to subscribers.
package observable

import "sync"

// Sequence is an ordered collection whose mutations can be observed.
type Sequence[T any] interface {
	// Len returns the number of items.
	Len() int
	// At returns the item at index i.
	At(i int) T
	// Subscribe registers listener for change notifications. Listeners are
	// called synchronously, in registration order, after each mutation.
	Subscribe(listener func(Change[T])) *Subscription
}

// SubChange describes one contiguous mutation. Items in [From, To) of the
// sequence after the change were added; Removed holds the items which were
// at From before the change.
//
// Changes which keep the length describe [From, To) differently: for a
// permutation, Permutation[k] is the new index of the item which was at
// From+k, and an update marks items which changed in place.
type SubChange[T any] struct {
	From    int
	To      int
	Removed []T
	Added   []T

	Permutation []int
	Updated     bool
}

// WasAdded reports whether items were added.
func (c SubChange[T]) WasAdded() bool {
	return len(c.Added) > 0
}

// WasRemoved reports whether items were removed.
func (c SubChange[T]) WasRemoved() bool {
	return len(c.Removed) > 0
}

// WasReplaced reports whether items were removed and others added at the
// same position.
func (c SubChange[T]) WasReplaced() bool {
	return c.WasAdded() && c.WasRemoved()
}

// WasPermutated reports whether items in [From, To) were reordered.
func (c SubChange[T]) WasPermutated() bool {
	return len(c.Permutation) > 0
}

// WasUpdated reports whether items in [From, To) changed in place.
func (c SubChange[T]) WasUpdated() bool {
	return c.Updated
}

// RemovedSize returns the number of removed items.
func (c SubChange[T]) RemovedSize() int {
	return len(c.Removed)
}

// AddedSize returns the number of added items.
func (c SubChange[T]) AddedSize() int {
	return len(c.Added)
}

// Change is the batch of sub-changes delivered in one notification.
type Change[T any] struct {
	Sequence Sequence[T]
	Changes  []SubChange[T]
}

// Subscription is the handle returned by Subscribe. Closing it stops further
// notifications.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription returns a subscription which calls cancel once when closed.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Close cancels the subscription. It is safe to call more than once and on a
// nil subscription.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
