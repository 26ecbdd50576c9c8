package inode

import (
	"github.com/goncalobarias/tecnicofs/internal/alloc"
	"github.com/goncalobarias/tecnicofs/internal/block"
	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
)

// Store is a thin wrapper over the inode pool. It also
// holds the block pool so that Create/Delete can manage a directory
// inode's entry-table block without the caller having to sequence two
// separate allocations.
type Store struct {
	inodes *alloc.Pool[Inode]
	blocks *block.Pool
}

// NewStore returns a Store backed by the given inode and block pools.
func NewStore(inodes *alloc.Pool[Inode], blocks *block.Pool) *Store {
	return &Store{inodes: inodes, blocks: blocks}
}

// Create allocates a new inode of the given kind. A Directory additionally
// gets a freshly zeroed data block for its entry table, since a directory
// must always be able to hold entries as soon as it exists.
func (s *Store) Create(kind Kind) (int, error) {
	inum, slot, err := s.inodes.Alloc()
	if err != nil {
		return -1, tfserrors.Wrap("inode.create", tfserrors.OutOfSpace, err)
	}

	slot.Kind = kind
	slot.Size = 0
	slot.DataBlock = NoBlock
	slot.HardLinks = 1

	if kind == Directory {
		bnum, err := s.blocks.Alloc()
		if err != nil {
			_ = s.inodes.Free(inum)
			return -1, tfserrors.Wrap("inode.create", tfserrors.OutOfSpace, err)
		}
		slot.DataBlock = bnum
	}

	return inum, nil
}

// Delete frees inum's data block, if any, then returns the inode slot
// itself to the pool.
func (s *Store) Delete(inum int) error {
	in, err := s.inodes.Get(inum)
	if err != nil {
		return tfserrors.Wrap("inode.delete", tfserrors.NotFound, err)
	}

	if in.DataBlock != NoBlock {
		if err := s.blocks.Free(in.DataBlock); err != nil {
			return tfserrors.Wrap("inode.delete", tfserrors.NotFound, err)
		}
	}

	if err := s.inodes.Free(inum); err != nil {
		return tfserrors.Wrap("inode.delete", tfserrors.NotFound, err)
	}
	return nil
}

// Get returns the inode at inum.
func (s *Store) Get(inum int) (*Inode, error) {
	in, err := s.inodes.Get(inum)
	if err != nil {
		return nil, tfserrors.Wrap("inode.get", tfserrors.NotFound, err)
	}
	return in, nil
}

// Block returns the data block owned by in, allocating one first if in
// does not yet have one.
func (s *Store) Block(in *Inode) (block.Block, error) {
	if in.DataBlock == NoBlock {
		bnum, err := s.blocks.Alloc()
		if err != nil {
			return nil, tfserrors.Wrap("inode.block", tfserrors.OutOfSpace, err)
		}
		in.DataBlock = bnum
	}
	return s.blocks.Get(in.DataBlock)
}

// FreeBlock releases in's data block, if any, and resets Size to 0. Used
// by truncation.
func (s *Store) FreeBlock(in *Inode) error {
	if in.DataBlock == NoBlock {
		return nil
	}
	if err := s.blocks.Free(in.DataBlock); err != nil {
		return tfserrors.Wrap("inode.freeblock", tfserrors.NotFound, err)
	}
	in.DataBlock = NoBlock
	in.Size = 0
	return nil
}
