package slotvec

import "fmt"

// StateKind labels the occupancy of a collection.
type StateKind uint8

const (
	// StateEmpty is the initial state: nothing has ever been stored.
	StateEmpty StateKind = iota
	// StateFull means every slot below the watermark is occupied.
	StateFull
	// StatePartiallyFull means at least one slot below the watermark is
	// vacant. A collection stays in this state after its last element is
	// removed.
	StatePartiallyFull
)

func (k StateKind) String() string {
	switch k {
	case StateEmpty:
		return "Empty"
	case StateFull:
		return "Full"
	case StatePartiallyFull:
		return "PartiallyFull"
	default:
		return fmt.Sprintf("StateKind(%d)", uint8(k))
	}
}

// Occupancy is a snapshot of a collection's state descriptor.
type Occupancy struct {
	Kind  StateKind
	Count int
	Free  int
}

func (o Occupancy) String() string {
	switch o.Kind {
	case StateEmpty:
		return "Empty"
	case StateFull:
		return fmt.Sprintf("Full(%d)", o.Count)
	default:
		return fmt.Sprintf("%s(%d, %d)", o.Kind, o.Count, o.Free)
	}
}

// Occupancy returns the current state descriptor.
func (c *Collection[T]) Occupancy() Occupancy {
	return Occupancy{Kind: c.state, Count: c.count, Free: c.free}
}

// Stats provides statistics about a collection's storage.
type Stats struct {
	Occupancy
	Watermark int
	Blocks    int
	FillRatio float64
}

// Stats collects storage statistics for the collection.
func (c *Collection[T]) Stats() Stats {
	stats := Stats{
		Occupancy: c.Occupancy(),
		Watermark: c.watermark,
		Blocks:    len(c.blocks),
	}
	if c.watermark > 0 {
		stats.FillRatio = float64(c.count) / float64(c.watermark)
	}
	return stats
}

// CheckInvariants verifies that the state descriptor agrees with the slots
// it summarizes. It walks the whole storage and is meant for tests and
// diagnostics, not hot paths.
func (c *Collection[T]) CheckInvariants() error {
	occupied := 0
	for i := 0; i < c.watermark; i++ {
		if c.filled[i/blockSize][i%blockSize] {
			occupied++
		} else if i < c.lowFree {
			return fmt.Errorf("slotvec: vacant slot %d below reuse cursor %d", i, c.lowFree)
		}
	}
	vacant := c.watermark - occupied

	if occupied != c.count {
		return fmt.Errorf("slotvec: %s but %d slots occupied", c.Occupancy(), occupied)
	}
	if c.lowFree > c.watermark {
		return fmt.Errorf("slotvec: reuse cursor %d beyond watermark %d", c.lowFree, c.watermark)
	}

	switch c.state {
	case StateEmpty:
		if c.watermark != 0 || c.count != 0 || c.free != 0 {
			return fmt.Errorf("slotvec: %s with watermark %d", c.Occupancy(), c.watermark)
		}
	case StateFull:
		if c.free != 0 || vacant != 0 || c.count != c.watermark {
			return fmt.Errorf("slotvec: %s with watermark %d and %d vacant slots", c.Occupancy(), c.watermark, vacant)
		}
	case StatePartiallyFull:
		if c.free < 1 || c.free != vacant || c.count+c.free != c.watermark {
			return fmt.Errorf("slotvec: %s with watermark %d and %d vacant slots", c.Occupancy(), c.watermark, vacant)
		}
	default:
		return fmt.Errorf("slotvec: unknown occupancy state %d", c.state)
	}
	return nil
}
