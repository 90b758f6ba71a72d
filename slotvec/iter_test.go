package slotvec_test

import (
	"testing"

	"github.com/plus3/slotvec/slotvec"
	"github.com/stretchr/testify/assert"
)

// newSparse inserts 1..5 and removes the values 2 and 4.
func newSparse() *slotvec.Collection[uint8] {
	c := newFilled(1, 2, 3, 4, 5)
	_, _ = c.Remove(1)
	_, _ = c.Remove(3)
	return c
}

func TestAllSkipsVacantSlots(t *testing.T) {
	c := newSparse()

	var indices []int
	var values []uint8
	for i, v := range c.All() {
		indices = append(indices, i)
		values = append(values, v)
	}

	assert.Equal(t, []int{0, 2, 4}, indices)
	assert.Equal(t, []uint8{1, 3, 5}, values)
}

func TestValuesRestartable(t *testing.T) {
	c := newSparse()
	seq := c.Values()

	var first, second []uint8
	for v := range seq {
		first = append(first, v)
	}
	for v := range seq {
		second = append(second, v)
	}

	assert.Equal(t, []uint8{1, 3, 5}, first)
	assert.Equal(t, first, second)
}

func TestSharedTraversalsNest(t *testing.T) {
	c := newSparse()

	pairs := 0
	for range c.Values() {
		for range c.Values() {
			pairs++
		}
	}
	assert.Equal(t, 9, pairs)
}

func TestIterationEarlyStop(t *testing.T) {
	c := newFilled(1, 2, 3, 4)

	var seen []uint8
	for v := range c.Values() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []uint8{1, 2}, seen)

	count := 0
	for range c.Refs() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestIndices(t *testing.T) {
	c := newSparse()

	var indices []int
	for i := range c.Indices() {
		indices = append(indices, i)
	}
	assert.Equal(t, []int{0, 2, 4}, indices)
}

func TestIndicesWithAccessor(t *testing.T) {
	c := newSparse()

	for i := range c.Indices() {
		*c.Ref(i) *= 10
	}
	assert.Equal(t, []uint8{10, 30, 50}, collect(c))
}

func TestRefsMutateEachSlotOnce(t *testing.T) {
	c := newSparse()

	visits := map[int]int{}
	for i, ref := range c.Refs() {
		assert.True(t, c.Has(i))
		visits[i]++
		*ref++
	}

	assert.Equal(t, map[int]int{0: 1, 2: 1, 4: 1}, visits)
	assert.Equal(t, []uint8{2, 4, 6}, collect(c))
	assert.False(t, c.Has(1))
	assert.False(t, c.Has(3))
}

func TestRefsDoNotAlias(t *testing.T) {
	c := slotvec.New[int]()
	for i := 0; i < 150; i++ {
		c.Insert(i)
	}
	for i := 0; i < 150; i += 7 {
		_, _ = c.Remove(i)
	}

	seen := map[*int]bool{}
	prev := -1
	for i, ref := range c.Refs() {
		assert.Greater(t, i, prev)
		prev = i
		assert.False(t, seen[ref], "slot %d yielded twice", i)
		seen[ref] = true
	}
	assert.Len(t, seen, c.Len())
}

func TestIterationOnEmpty(t *testing.T) {
	c := slotvec.New[uint8]()

	for range c.All() {
		t.Fatal("unexpected value")
	}
	for range c.Refs() {
		t.Fatal("unexpected value")
	}

	it := c.IntoIter()
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIntoIterConsumes(t *testing.T) {
	c := newSparse()
	it := c.IntoIter()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Watermark())
	assert.Equal(t, slotvec.Occupancy{Kind: slotvec.StateEmpty}, c.Occupancy())

	var values []uint8
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		values = append(values, v)
	}
	assert.Equal(t, []uint8{1, 3, 5}, values)

	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIntoIterOneShot(t *testing.T) {
	it := newSparse().IntoIter()

	first, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, uint8(1), first)

	var rest []uint8
	for v := range it.Seq() {
		rest = append(rest, v)
	}
	assert.Equal(t, []uint8{3, 5}, rest)

	for range it.Seq() {
		t.Fatal("iterator restarted")
	}
}

func TestIntoIterLeavesCollectionUsable(t *testing.T) {
	c := newFilled(1, 2, 3)
	it := c.IntoIter()

	assert.Equal(t, 0, c.Insert(9))
	assert.Equal(t, []uint8{9}, collect(c))

	var values []uint8
	for v := range it.Seq() {
		values = append(values, v)
	}
	assert.Equal(t, []uint8{1, 2, 3}, values)
}
