package block

import "github.com/goncalobarias/tecnicofs/internal/alloc"

// Pool is the data-block pool: alloc.Pool[Block] specialized so that every
// freshly allocated block is a zeroed buffer of the configured block size,
// rather than alloc.Pool's ordinary zero value (a nil slice, which would
// panic on first write).
type Pool struct {
	pool *alloc.Pool[Block]
	size int
}

// NewPool returns a block pool with room for capacity blocks of size
// bytes each.
func NewPool(capacity, size int) *Pool {
	return &Pool{pool: alloc.New[Block](capacity), size: size}
}

// Size returns the fixed size of every block in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Alloc reserves a new, zero-filled block and returns its index.
func (p *Pool) Alloc() (int, error) {
	index, slot, err := p.pool.Alloc()
	if err != nil {
		return -1, err
	}
	*slot = New(p.size)
	return index, nil
}

// Free releases the block at index.
func (p *Pool) Free(index int) error {
	return p.pool.Free(index)
}

// Get returns the block at index.
func (p *Pool) Get(index int) (Block, error) {
	slot, err := p.pool.Get(index)
	if err != nil {
		return nil, err
	}
	return *slot, nil
}
