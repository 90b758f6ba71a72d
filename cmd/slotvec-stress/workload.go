package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/kamstrup/intmap"
	"github.com/plus3/slotvec/slotvec"
)

// Workload drives random inserts and removes against a collection and keeps
// a shadow model of what every index should hold.
type Workload struct {
	rng         *rand.Rand
	coll        *slotvec.Collection[uint8]
	model       *intmap.Map[int, uint8]
	insertRatio float64

	Inserts       int64
	Removes       int64
	Reused        int64
	Rejected      int64
	MaxReuseIndex int
}

func NewWorkload(seed int64, insertRatio float64) *Workload {
	return &Workload{
		rng:         rand.New(rand.NewSource(seed)),
		coll:        slotvec.New[uint8](),
		model:       intmap.New[int, uint8](1024),
		insertRatio: insertRatio,
	}
}

// Step performs a single random operation and reports any disagreement with
// the shadow model.
func (w *Workload) Step() error {
	if w.coll.Len() == 0 || w.rng.Float64() < w.insertRatio {
		return w.insert(uint8(w.rng.Intn(256)))
	}

	// Aim at occupied slots most of the time, but also probe vacant and
	// out-of-range indices.
	index := w.rng.Intn(w.coll.Watermark() + w.coll.Watermark()/8 + 1)
	return w.remove(index)
}

func (w *Workload) insert(value uint8) error {
	before := w.coll.Watermark()
	index := w.coll.Insert(value)
	w.Inserts++

	if _, ok := w.model.Get(index); ok {
		return fmt.Errorf("insert returned occupied index %d", index)
	}
	if index < before {
		w.Reused++
		w.MaxReuseIndex = max(w.MaxReuseIndex, index)
	} else if index != before {
		return fmt.Errorf("insert appended at %d, watermark was %d", index, before)
	}

	w.model.Put(index, value)
	return nil
}

func (w *Workload) remove(index int) error {
	want, occupied := w.model.Get(index)
	got, err := w.coll.Remove(index)

	switch {
	case index >= w.coll.Watermark():
		if !errors.Is(err, slotvec.ErrOutOfBounds) {
			return fmt.Errorf("remove(%d) beyond watermark: got %v", index, err)
		}
		w.Rejected++
	case !occupied:
		if !errors.Is(err, slotvec.ErrVacantSlot) {
			return fmt.Errorf("remove(%d) on vacant slot: got %v", index, err)
		}
		w.Rejected++
	default:
		if err != nil {
			return fmt.Errorf("remove(%d): %w", index, err)
		}
		if got != want {
			return fmt.Errorf("remove(%d) = %d, want %d", index, got, want)
		}
		w.model.Del(index)
		w.Removes++
	}
	return nil
}

// Verify checks the collection's bookkeeping and compares a full traversal
// with the shadow model.
func (w *Workload) Verify() error {
	if err := w.coll.CheckInvariants(); err != nil {
		return err
	}
	if w.coll.Len() != w.model.Len() {
		return fmt.Errorf("len %d, model has %d", w.coll.Len(), w.model.Len())
	}

	prev := -1
	seen := 0
	for index, value := range w.coll.All() {
		if index <= prev {
			return fmt.Errorf("iteration out of order: %d after %d", index, prev)
		}
		prev = index
		want, ok := w.model.Get(index)
		if !ok {
			return fmt.Errorf("iteration yielded vacant index %d", index)
		}
		if value != want {
			return fmt.Errorf("index %d holds %d, want %d", index, value, want)
		}
		seen++
	}
	if seen != w.model.Len() {
		return fmt.Errorf("iteration yielded %d values, model has %d", seen, w.model.Len())
	}
	return nil
}

func (w *Workload) Stats() slotvec.Stats {
	return w.coll.Stats()
}
