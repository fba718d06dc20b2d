// Package vec provides the growable, capacity-tracked container every
// composite chemistry record is built from. A Vector tracks its logical
// size separately from its allocated capacity; capacity grows in powers
// of two and never shrinks, so repeated resizing of a record between
// steps settles into a fixed allocation.
package vec

// Vector is a growable array with an explicit size/capacity split. The
// zero value is an empty, released vector ready for Allocate.
type Vector[T any] struct {
	data []T
	size int
}

// nextPow2 returns the smallest power of two >= n, with nextPow2(0) == 0.
func nextPow2(n int) int {
	if n <= 0 {
		return 0
	}
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

// New returns a vector allocated to the given size.
func New[T any](size int) Vector[T] {
	var v Vector[T]
	v.Allocate(size)
	return v
}

// Allocate discards any existing storage and sizes the vector to n
// zero-valued elements. Capacity becomes the smallest power of two >= n;
// n == 0 leaves the vector empty with no allocation.
func (v *Vector[T]) Allocate(n int) {
	if n < 0 {
		panic("vec: negative size")
	}
	if n == 0 {
		v.data = nil
		v.size = 0
		return
	}
	v.data = make([]T, nextPow2(n))
	v.size = n
}

// Resize sets the logical size to n. Growing past the current capacity
// reallocates to the next power of two and preserves existing elements.
// Newly exposed slots are zero-valued (empty strings for text vectors)
// and must be written before they are meaningfully read. Shrinking only
// reduces size; capacity is monotonic.
func (v *Vector[T]) Resize(n int) {
	if n < 0 {
		panic("vec: negative size")
	}
	if v.size == 0 {
		v.Allocate(n)
		return
	}
	if n > len(v.data) {
		grown := make([]T, nextPow2(n))
		copy(grown, v.data[:v.size])
		v.data = grown
	}
	v.size = n
}

// Release frees the backing storage and resets the vector to the empty
// state. Releasing an already-released vector is a no-op.
func (v *Vector[T]) Release() {
	v.data = nil
	v.size = 0
}

// Len returns the logical size.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the allocated capacity.
func (v *Vector[T]) Cap() int { return len(v.data) }

// At returns the element at index i. Indexing outside [0, Len) panics.
func (v *Vector[T]) At(i int) T {
	if i < 0 || i >= v.size {
		panic("vec: index out of range")
	}
	return v.data[i]
}

// Set stores val at index i. Indexing outside [0, Len) panics.
func (v *Vector[T]) Set(i int, val T) {
	if i < 0 || i >= v.size {
		panic("vec: index out of range")
	}
	v.data[i] = val
}

// Data returns the sized prefix of the backing storage as a live view.
// Callers must not grow the returned slice.
func (v *Vector[T]) Data() []T {
	if v.size == 0 {
		return nil
	}
	return v.data[:v.size]
}

// Fill sets every element in [0, Len) to val.
func (v *Vector[T]) Fill(val T) {
	for i := 0; i < v.size; i++ {
		v.data[i] = val
	}
}

// Copy returns an independently owned deep copy, allocated fresh at the
// source's size. The copy's capacity derives from its own size, not from
// whatever the source had grown to.
func (v *Vector[T]) Copy() Vector[T] {
	out := New[T](v.size)
	copy(out.data, v.data[:v.size])
	return out
}

// CopyFrom replaces the destination's contents with a deep copy of src.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	*v = src.Copy()
}
