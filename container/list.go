// Package container provides the small owning collections the compositor is
// built from: a growable list with both swap-remove and shift-remove policies,
// and two linear-scan maps keyed by string and by int.
//
// All operations are safe on a nil or empty receiver where that makes sense;
// "not found" is reported with -1 or false, never with a panic.
package container

import (
	"errors"
	"slices"
)

// ErrNotEmpty is returned by CopyFrom when the destination already holds
// elements.
var ErrNotEmpty = errors.New("container: destination list is not empty")

// List is an owning, growable sequence. The zero value is an empty list with
// no backing storage. Zero-valued elements (nil pointers, empty interfaces)
// are never stored.
type List[T comparable] struct {
	items []T
}

// NewList returns a list holding a copy of items, skipping zero values.
func NewList[T comparable](items ...T) *List[T] {
	l := &List[T]{}
	l.AppendRange(items)
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns the backing slice. It is nil when the list is empty. The
// returned slice MUST NOT be retained across mutations.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	return l.items
}

// At returns the element at index i, or the zero value when i is out of range.
func (l *List[T]) At(i int) T {
	var zero T
	if l == nil || i < 0 || i >= len(l.items) {
		return zero
	}
	return l.items[i]
}

// IndexOf returns the index of the first element equal to v, or -1.
func (l *List[T]) IndexOf(v T) int {
	if l == nil {
		return -1
	}
	for i, it := range l.items {
		if it == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is in the list.
func (l *List[T]) Contains(v T) bool {
	return l.IndexOf(v) >= 0
}

// Append adds v at the end. Zero values are ignored.
func (l *List[T]) Append(v T) {
	var zero T
	if l == nil || v == zero {
		return
	}
	l.items = append(l.items, v)
}

// AppendRange appends every non-zero element of src.
func (l *List[T]) AppendRange(src []T) {
	for _, v := range src {
		l.Append(v)
	}
}

// AppendList appends the contents of other. other is left untouched.
func (l *List[T]) AppendList(other *List[T]) {
	if other == nil {
		return
	}
	l.AppendRange(slices.Clone(other.items))
}

// InsertAt inserts v before index i. The index is clamped to [0, Len()].
func (l *List[T]) InsertAt(i int, v T) {
	var zero T
	if l == nil || v == zero {
		return
	}
	i = max(0, min(i, len(l.items)))
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
}

// Remove removes the first element equal to v by moving the last element into
// its slot. Order is not preserved. destroy, if non-nil, is called with the
// removed element first.
func (l *List[T]) Remove(v T, destroy func(T)) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.swapRemove(i, destroy)
	return true
}

// RemoveStable removes the first element equal to v, shifting the tail left
// so the relative order of the remaining elements is preserved.
func (l *List[T]) RemoveStable(v T, destroy func(T)) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.shiftRemove(i, destroy)
	return true
}

// RemoveAt removes the element at index i with the reorder policy.
func (l *List[T]) RemoveAt(i int, destroy func(T)) bool {
	if l == nil || i < 0 || i >= len(l.items) {
		return false
	}
	l.swapRemove(i, destroy)
	return true
}

// RemoveAtStable removes the element at index i with the stable policy.
func (l *List[T]) RemoveAtStable(i int, destroy func(T)) bool {
	if l == nil || i < 0 || i >= len(l.items) {
		return false
	}
	l.shiftRemove(i, destroy)
	return true
}

// RemoveFunc stable-removes every element for which match returns true and
// returns how many were removed.
func (l *List[T]) RemoveFunc(match func(T) bool, destroy func(T)) int {
	if l == nil {
		return 0
	}
	var zero T
	n := 0
	kept := l.items[:0]
	for _, v := range l.items {
		if match(v) {
			if destroy != nil {
				destroy(v)
			}
			n++
			continue
		}
		kept = append(kept, v)
	}
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = kept
	l.releaseIfEmpty()
	return n
}

// Clear removes every element, calling destroy on each in order, and drops
// the backing storage.
func (l *List[T]) Clear(destroy func(T)) {
	if l == nil {
		return
	}
	if destroy != nil {
		for _, v := range l.items {
			destroy(v)
		}
	}
	l.items = nil
}

// CopyFrom copies the contents of src into l. It refuses to overwrite a
// non-empty list.
func (l *List[T]) CopyFrom(src *List[T]) error {
	if l.Len() != 0 {
		return ErrNotEmpty
	}
	if src.Len() == 0 || l == nil {
		return nil
	}
	l.items = append([]T(nil), src.items...)
	return nil
}

// MoveFrom transfers the contents of src into l, leaving src empty. Any
// elements already in l are replaced; destroy is called on them first.
func (l *List[T]) MoveFrom(src *List[T], destroy func(T)) {
	if l == nil || src == l {
		return
	}
	l.Clear(destroy)
	if src == nil {
		return
	}
	l.items = src.items
	src.items = nil
}

// Swap exchanges the contents of l and other.
func (l *List[T]) Swap(other *List[T]) {
	if l == nil || other == nil {
		return
	}
	l.items, other.items = other.items, l.items
}

func (l *List[T]) swapRemove(i int, destroy func(T)) {
	var zero T
	if destroy != nil {
		destroy(l.items[i])
	}
	last := len(l.items) - 1
	l.items[i] = l.items[last]
	l.items[last] = zero
	l.items = l.items[:last]
	l.releaseIfEmpty()
}

func (l *List[T]) shiftRemove(i int, destroy func(T)) {
	var zero T
	if destroy != nil {
		destroy(l.items[i])
	}
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	l.releaseIfEmpty()
}

// releaseIfEmpty returns an emptied list to the "no storage" state.
func (l *List[T]) releaseIfEmpty() {
	if len(l.items) == 0 {
		l.items = nil
	}
}
