package slotvec_test

import (
	"testing"

	"github.com/plus3/slotvec/slotvec"
	"github.com/stretchr/testify/assert"
)

func TestCommandsFlushDuringIteration(t *testing.T) {
	c := newFilled(1, 2, 3, 4, 5)
	cmds := slotvec.NewCommands[uint8]()

	for i, v := range c.All() {
		if v%2 == 0 {
			cmds.Remove(i)
			cmds.Insert(v * 10)
		}
	}
	assert.Equal(t, 4, cmds.Len())
	assert.Equal(t, 5, c.Len())

	indices, err := cmds.Flush(c)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3}, indices)
	assert.Equal(t, []uint8{1, 20, 3, 40, 5}, collect(c))
	assert.Equal(t, 0, cmds.Len())
	assert.NoError(t, c.CheckInvariants())
}

func TestCommandsFlushOrder(t *testing.T) {
	c := newFilled(1, 2)
	cmds := slotvec.NewCommands[uint8]()

	var order []string
	cmds.Defer(func() {
		order = append(order, "defer")
		assert.Equal(t, 2, c.Len())
	})
	cmds.Insert(7)
	cmds.Remove(0)

	indices, err := cmds.Flush(c)
	assert.NoError(t, err)
	assert.Equal(t, []int{0}, indices)
	assert.Equal(t, []string{"defer"}, order)
	assert.Equal(t, []uint8{7, 2}, collect(c))
}

func TestCommandsFlushJoinsErrors(t *testing.T) {
	c := newFilled(1, 2)
	cmds := slotvec.NewCommands[uint8]()

	cmds.Remove(0)
	cmds.Remove(0)
	cmds.Remove(50)
	cmds.Insert(3)

	indices, err := cmds.Flush(c)
	assert.ErrorIs(t, err, slotvec.ErrVacantSlot)
	assert.ErrorIs(t, err, slotvec.ErrOutOfBounds)
	assert.Equal(t, []int{0}, indices)
	assert.Equal(t, []uint8{3, 2}, collect(c))
}

func TestCommandsReuse(t *testing.T) {
	c := slotvec.New[uint8]()
	cmds := slotvec.NewCommands[uint8]()

	cmds.Insert(1)
	_, err := cmds.Flush(c)
	assert.NoError(t, err)

	indices, err := cmds.Flush(c)
	assert.NoError(t, err)
	assert.Empty(t, indices)
	assert.Equal(t, 1, c.Len())
}
