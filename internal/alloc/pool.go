// Package alloc implements the fixed-capacity, bitmap-backed arenas that
// back the FS's tables (inodes, data blocks, and open-file entries), a
// single generic Pool type. Every live object is named by a stable integer
// index into a table rather than by pointer, so cross-table references
// never form ownership cycles.
package alloc

import "github.com/goncalobarias/tecnicofs/internal/tfserrors"

// Pool is a fixed-capacity slice of T with a parallel occupancy bitmap.
// Allocation order is first-fit over the bitmap; callers must not depend
// on any particular order.
type Pool[T any] struct {
	slots    []T
	occupied []bool
}

// New returns a Pool with room for exactly capacity slots, all free.
func New[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		slots:    make([]T, capacity),
		occupied: make([]bool, capacity),
	}
}

// Cap returns the pool's fixed capacity.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// Len returns the number of currently occupied slots.
func (p *Pool[T]) Len() int {
	n := 0
	for _, occ := range p.occupied {
		if occ {
			n++
		}
	}
	return n
}

// Alloc finds the smallest free index, marks it occupied, resets its slot
// to the zero value of T, and returns both the index and a pointer to the
// slot for the caller to populate.
func (p *Pool[T]) Alloc() (int, *T, error) {
	for i, occ := range p.occupied {
		if !occ {
			p.occupied[i] = true
			var zero T
			p.slots[i] = zero
			return i, &p.slots[i], nil
		}
	}
	return -1, nil, tfserrors.New("alloc", tfserrors.OutOfSpace)
}

// Free marks index as unoccupied. The slot's contents are left as-is;
// re-allocation does not guarantee zeroed contents beyond what Alloc
// itself resets.
func (p *Pool[T]) Free(index int) error {
	if !p.valid(index) || !p.occupied[index] {
		return tfserrors.New("free", tfserrors.NotFound)
	}
	p.occupied[index] = false
	return nil
}

// Get returns a pointer to the occupied slot at index.
func (p *Pool[T]) Get(index int) (*T, error) {
	if !p.valid(index) || !p.occupied[index] {
		return nil, tfserrors.New("get", tfserrors.NotFound)
	}
	return &p.slots[index], nil
}

// Occupied reports whether index currently holds a live value.
func (p *Pool[T]) Occupied(index int) bool {
	return p.valid(index) && p.occupied[index]
}

func (p *Pool[T]) valid(index int) bool {
	return index >= 0 && index < len(p.slots)
}
