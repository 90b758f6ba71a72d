package slotvec

import "errors"

// Commands buffers mutations so they can be queued while a collection is
// being iterated and applied once the traversal has finished.
type Commands[T any] struct {
	inserts []T
	removes []int
	defers  []func()
}

// NewCommands creates an empty command buffer.
func NewCommands[T any]() *Commands[T] {
	return &Commands[T]{}
}

// Insert queues an insert of value.
func (c *Commands[T]) Insert(value T) {
	c.inserts = append(c.inserts, value)
}

// Remove queues the removal of index.
func (c *Commands[T]) Remove(index int) {
	c.removes = append(c.removes, index)
}

// Defer queues a function execution operation.
func (c *Commands[T]) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands[T]) Len() int {
	return len(c.inserts) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to coll and resets the buffer.
// Removes run first in queue order, then inserts, then deferred functions, so
// inserts may reuse slots vacated by the same flush. The returned indices
// belong to the queued inserts, in queue order. Failed removes are joined
// into the returned error; every other operation is still applied.
func (c *Commands[T]) Flush(coll *Collection[T]) ([]int, error) {
	var errs []error
	for _, index := range c.removes {
		if _, err := coll.Remove(index); err != nil {
			errs = append(errs, err)
		}
	}

	indices := make([]int, 0, len(c.inserts))
	for _, value := range c.inserts {
		indices = append(indices, coll.Insert(value))
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.inserts)
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]

	return indices, errors.Join(errs...)
}
