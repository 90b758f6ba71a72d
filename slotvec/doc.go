// Package slotvec provides Collection, a growable slice-like container whose
// indices stay stable across removals.
//
// Removing an element leaves its slot vacant instead of shifting the
// elements after it. The next insert fills the lowest vacant slot, and only
// appends to the storage when no vacancy exists:
//
//	c := slotvec.New[uint8]()
//	a := c.Insert(1) // 0
//	b := c.Insert(2) // 1
//	c.Insert(3)      // 2
//	c.Remove(b)
//	c.Insert(4)      // 1, reusing the vacated slot
//	_ = a
//
// The collection tracks its occupancy as one of three states: Empty before
// anything is inserted, Full when every slot below the watermark is
// occupied, and PartiallyFull when at least one vacancy exists. Inserting in
// the Full state is an amortized O(1) append. Inserting in the PartiallyFull
// state scans for the lowest vacancy, which is linear in the worst case.
//
// Three iteration modes skip vacant slots and visit indices in ascending
// order: IntoIter consumes the collection, All and Values borrow it
// read-only, and Refs yields a pointer to each occupied slot exactly once.
package slotvec
