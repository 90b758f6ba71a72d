package slotvec

import (
	"fmt"
	"strings"
)

const (
	blockSize = 64
)

// Collection is a growable, densely indexed container of slots.
// Insert returns a stable index, Remove vacates a slot without shifting any
// other element, and later inserts refill the lowest vacant slot before the
// storage grows. Slots are stored in fixed-size blocks so the address of a
// slot never changes once allocated.
//
// A Collection is not safe for concurrent use.
type Collection[T any] struct {
	blocks    []*[blockSize]T
	filled    [][blockSize]bool
	watermark int

	state StateKind
	count int
	free  int

	// every index below lowFree is occupied
	lowFree int
}

// New creates an empty collection.
func New[T any]() *Collection[T] {
	return &Collection[T]{}
}

// NewWithCapacity creates an empty collection with room for at least n slots
// before any further block allocation happens.
func NewWithCapacity[T any](n int) *Collection[T] {
	c := &Collection[T]{}
	if n > 0 {
		numBlocks := (n + blockSize - 1) / blockSize
		c.blocks = make([]*[blockSize]T, 0, numBlocks)
		c.filled = make([][blockSize]bool, 0, numBlocks)
	}
	return c
}

// Insert stores value in the lowest vacant slot, or appends it when there
// are no vacancies, and returns the slot index.
func (c *Collection[T]) Insert(value T) int {
	switch c.state {
	case StateEmpty:
		index := c.push(value)
		c.state = StateFull
		c.count = 1
		return index

	case StateFull:
		index := c.push(value)
		c.count++
		return index

	case StatePartiallyFull:
		for i := c.lowFree; i < c.watermark; i++ {
			blockIdx := i / blockSize
			slotIdx := i % blockSize

			if c.filled[blockIdx][slotIdx] {
				continue
			}

			c.blocks[blockIdx][slotIdx] = value
			c.filled[blockIdx][slotIdx] = true
			c.lowFree = i + 1

			c.count++
			c.free--
			if c.free == 0 {
				c.state = StateFull
			}
			return i
		}

		panic(fmt.Sprintf("slotvec: collection is %s but no vacant slot below watermark %d", c.Occupancy(), c.watermark))
	}

	panic(fmt.Sprintf("slotvec: unknown occupancy state %d", c.state))
}

// push appends value at the watermark, allocating a new block when needed.
func (c *Collection[T]) push(value T) int {
	index := c.watermark
	c.watermark++

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	if blockIdx >= len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
		c.filled = append(c.filled, [blockSize]bool{})
	}

	c.blocks[blockIdx][slotIdx] = value
	c.filled[blockIdx][slotIdx] = true
	if c.lowFree == index {
		c.lowFree = c.watermark
	}
	return index
}

// Remove vacates the slot at index and returns the value it held.
// It fails with ErrOutOfBounds when index is outside the storage and with
// ErrVacantSlot when the slot holds nothing. A failed call changes nothing.
func (c *Collection[T]) Remove(index int) (T, error) {
	var zero T

	if index < 0 || index >= c.watermark {
		return zero, &IndexError{Op: "remove", Index: index, Watermark: c.watermark, Err: ErrOutOfBounds}
	}

	blockIdx := index / blockSize
	slotIdx := index % blockSize

	if !c.filled[blockIdx][slotIdx] {
		return zero, &IndexError{Op: "remove", Index: index, Watermark: c.watermark, Err: ErrVacantSlot}
	}

	value := c.blocks[blockIdx][slotIdx]
	c.blocks[blockIdx][slotIdx] = zero
	c.filled[blockIdx][slotIdx] = false

	// Removal never returns the collection to Empty, even at zero elements.
	c.state = StatePartiallyFull
	c.count--
	c.free++
	if index < c.lowFree {
		c.lowFree = index
	}

	return value, nil
}

// Len returns the number of occupied slots.
func (c *Collection[T]) Len() int {
	return c.count
}

// IsEmpty reports whether no slot is occupied.
func (c *Collection[T]) IsEmpty() bool {
	return c.count == 0
}

// Watermark returns the number of slots ever allocated. It only grows.
func (c *Collection[T]) Watermark() int {
	return c.watermark
}

// Has checks if the slot at index is occupied.
func (c *Collection[T]) Has(index int) bool {
	if index < 0 || index >= c.watermark {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

// Get returns the value at index. The second result is false when the slot
// is vacant or index is out of range.
func (c *Collection[T]) Get(index int) (T, bool) {
	if ref := c.Ref(index); ref != nil {
		return *ref, true
	}
	var zero T
	return zero, false
}

// Ref returns a pointer to the value at index, or nil when the slot is
// vacant or index is out of range. The pointer stays valid until the slot is
// removed.
func (c *Collection[T]) Ref(index int) *T {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

// At is the unchecked accessor. Like slice indexing it panics when index is
// outside the watermark. A vacant slot yields the zero value and false.
func (c *Collection[T]) At(index int) (T, bool) {
	if index < 0 || index >= c.watermark {
		panic(fmt.Sprintf("slotvec: index out of range [%d] with watermark %d", index, c.watermark))
	}
	blockIdx := index / blockSize
	slotIdx := index % blockSize
	return c.blocks[blockIdx][slotIdx], c.filled[blockIdx][slotIdx]
}

// String formats the occupancy followed by every slot below the watermark,
// with vacant slots shown as "_".
func (c *Collection[T]) String() string {
	var sb strings.Builder
	sb.WriteString(c.Occupancy().String())
	sb.WriteString(" [")
	for i := 0; i < c.watermark; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		value, ok := c.At(i)
		if !ok {
			sb.WriteByte('_')
			continue
		}
		fmt.Fprint(&sb, value)
	}
	sb.WriteByte(']')
	return sb.String()
}
