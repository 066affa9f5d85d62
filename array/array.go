package array

import (
	"fmt"
	"slices"

	"github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/kind"
)

// Array is a resizable container of one primitive kind. Its logical size is
// never greater than its allocated capacity; growing past the capacity
// reallocates and copies the live elements.
//
// An Array is not safe for concurrent mutation. The zero value is an empty
// container ready to use.
type Array[T kind.Primitive] struct {
	data []T
}

// NewArray returns an empty container with the given capacity.
func NewArray[T kind.Primitive](capacity int) *Array[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Array[T]{data: make([]T, 0, capacity)}
}

// ArrayOf returns a container holding a copy of values.
func ArrayOf[T kind.Primitive](values ...T) *Array[T] {
	return Wrap(values)
}

// Kind returns the element kind.
func (a *Array[T]) Kind() kind.Kind {
	return kind.For[T]()
}

// Len returns the logical size. A nil container has size 0.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.data)
}

// Cap returns the allocated capacity.
func (a *Array[T]) Cap() int {
	if a == nil {
		return 0
	}
	return cap(a.data)
}

// At returns the boxed element at i. It panics when i is outside [0, Len()),
// like a slice index.
func (a *Array[T]) At(i int) any {
	return a.data[i]
}

// Get returns the element at i, or an out of bounds error.
func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || i >= a.Len() {
		var zero T
		return zero, errors.OutOfBounds(errors.PhaseAccess, i, a.Len())
	}
	return a.data[i], nil
}

// Set replaces the element at i, or returns an out of bounds error.
func (a *Array[T]) Set(i int, v T) error {
	if i < 0 || i >= a.Len() {
		return errors.OutOfBounds(errors.PhaseAccess, i, a.Len())
	}
	a.data[i] = v
	return nil
}

// Add appends v, growing the capacity if needed.
func (a *Array[T]) Add(v T) {
	a.EnsureCapacity(len(a.data) + 1)
	a.data = append(a.data, v)
}

// Insert places v at index i, shifting later elements up. i may equal Len().
func (a *Array[T]) Insert(i int, v T) error {
	if i < 0 || i > a.Len() {
		return errors.OutOfBounds(errors.PhaseAccess, i, a.Len())
	}
	a.EnsureCapacity(len(a.data) + 1)
	a.data = slices.Insert(a.data, i, v)
	return nil
}

// Remove deletes the element at i and returns it.
func (a *Array[T]) Remove(i int) (T, error) {
	if i < 0 || i >= a.Len() {
		var zero T
		return zero, errors.OutOfBounds(errors.PhaseAccess, i, a.Len())
	}
	v := a.data[i]
	a.data = slices.Delete(a.data, i, i+1)
	return v, nil
}

// SetLen changes the logical size. Growing exposes zero values; shrinking
// keeps the capacity.
func (a *Array[T]) SetLen(n int) error {
	if n < 0 {
		return errors.New(errors.PhaseAccess, errors.KindInvalidArgument).
			Value(n).
			Detail("negative length %d", n).
			Build()
	}
	old := len(a.data)
	a.EnsureCapacity(n)
	a.data = a.data[:n]
	if n > old {
		clear(a.data[old:])
	}
	return nil
}

// EnsureCapacity grows the allocation to hold at least n elements. Growth
// at least doubles the capacity.
func (a *Array[T]) EnsureCapacity(n int) {
	if n <= cap(a.data) {
		return
	}
	grown := max(n, cap(a.data)*2)
	data := make([]T, len(a.data), grown)
	copy(data, a.data)
	a.data = data
}

// Slice returns the live prefix [0, Len()). The result aliases the
// container's storage.
func (a *Array[T]) Slice() []T {
	if a == nil {
		return nil
	}
	return a.data
}

// Copy returns an independent container with the same elements and a
// capacity equal to the size.
func (a *Array[T]) Copy() *Array[T] {
	return Wrap(a.Slice())
}

// IndexOf returns the first index holding v, or -1.
func (a *Array[T]) IndexOf(v T) int {
	return slices.Index(a.Slice(), v)
}

// Contains reports whether v is present.
func (a *Array[T]) Contains(v T) bool {
	return a.IndexOf(v) >= 0
}

// Clear sets the size to zero and keeps the capacity.
func (a *Array[T]) Clear() {
	a.data = a.data[:0]
}

func (a *Array[T]) String() string {
	return fmt.Sprintf("%s%v", kind.For[T]().ContainerName(), a.Slice())
}
