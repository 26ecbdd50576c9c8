// Package openfile implements the bounded pool of handles binding an
// inumber to a byte offset.
package openfile

import (
	"github.com/goncalobarias/tecnicofs/internal/alloc"
	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
)

// Entry is one open-file table record.
type Entry struct {
	Inumber int
	Offset  int
}

// Table is the bounded pool of open-file entries.
type Table struct {
	pool *alloc.Pool[Entry]
}

// NewTable returns a Table with room for capacity concurrently open
// handles.
func NewTable(capacity int) *Table {
	return &Table{pool: alloc.New[Entry](capacity)}
}

// Add binds a new handle to (inumber, offset) and returns it.
func (t *Table) Add(inumber, offset int) (int, error) {
	handle, slot, err := t.pool.Alloc()
	if err != nil {
		return -1, tfserrors.Wrap("openfile.add", tfserrors.OutOfSpace, err)
	}
	slot.Inumber = inumber
	slot.Offset = offset
	return handle, nil
}

// Remove closes handle, freeing it for reuse.
func (t *Table) Remove(handle int) error {
	if err := t.pool.Free(handle); err != nil {
		return tfserrors.Wrap("openfile.remove", tfserrors.BadHandle, err)
	}
	return nil
}

// Get returns the entry bound to handle.
func (t *Table) Get(handle int) (*Entry, error) {
	e, err := t.pool.Get(handle)
	if err != nil {
		return nil, tfserrors.Wrap("openfile.get", tfserrors.BadHandle, err)
	}
	return e, nil
}
