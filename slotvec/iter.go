package slotvec

import "iter"

// All returns an iterator over the index and value of every occupied slot in
// ascending index order. Each call starts a fresh traversal. The collection
// must not be mutated while the iterator is in use; queue changes on a
// Commands buffer instead.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < c.watermark; i++ {
			blockIdx := i / blockSize
			slotIdx := i % blockSize

			if c.filled[blockIdx][slotIdx] {
				if !yield(i, c.blocks[blockIdx][slotIdx]) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over the values of every occupied slot in
// ascending index order.
func (c *Collection[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range c.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// Indices returns an iterator over the occupied indices in ascending order.
func (c *Collection[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range c.All() {
			if !yield(i) {
				return
			}
		}
	}
}

// Refs returns an iterator over pointers to every occupied slot in ascending
// index order. The cursor only moves forward, so each slot is yielded at most
// once per traversal and no two yielded pointers alias. Values may be
// modified through the pointers; inserting or removing while iterating is not
// allowed.
func (c *Collection[T]) Refs() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < c.watermark; i++ {
			blockIdx := i / blockSize
			slotIdx := i % blockSize

			if c.filled[blockIdx][slotIdx] {
				if !yield(i, &c.blocks[blockIdx][slotIdx]) {
					return
				}
			}
		}
	}
}

// IntoIter is a one-shot iterator that owns the storage of a consumed
// collection.
type IntoIter[T any] struct {
	blocks    []*[blockSize]T
	filled    [][blockSize]bool
	watermark int
	pos       int
}

// IntoIter moves the storage out of c into a one-shot iterator. Afterwards c
// is a fresh empty collection.
func (c *Collection[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{
		blocks:    c.blocks,
		filled:    c.filled,
		watermark: c.watermark,
	}
	*c = Collection[T]{}
	return it
}

// Next returns the next occupied value. The second result is false once the
// watermark is reached, and stays false on every later call.
func (it *IntoIter[T]) Next() (T, bool) {
	var zero T
	for it.pos < it.watermark {
		blockIdx := it.pos / blockSize
		slotIdx := it.pos % blockSize
		it.pos++

		if it.filled[blockIdx][slotIdx] {
			value := it.blocks[blockIdx][slotIdx]
			it.blocks[blockIdx][slotIdx] = zero
			return value, true
		}
	}

	it.blocks = nil
	it.filled = nil
	return zero, false
}

// Seq drains the remaining values as a range-over-func sequence. Values
// consumed by an earlier Next or Seq call are not produced again.
func (it *IntoIter[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, ok := it.Next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}
