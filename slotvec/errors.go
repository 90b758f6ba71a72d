package slotvec

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an index lies outside the storage.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrVacantSlot is returned when an index refers to a slot that holds no
	// value, for example when the same index is removed twice.
	ErrVacantSlot = errors.New("slot is vacant")
)

// IndexError records a failed indexed operation.
//
// The sentinel cause can be matched with errors.Is.
type IndexError struct {
	Op        string
	Index     int
	Watermark int
	Err       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("slotvec: %s index %d (watermark %d): %v", e.Op, e.Index, e.Watermark, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }
