// Package directory implements the single flat root directory's entry
// table, stored as fixed-size records packed into the root inode's data
// block.
//
// This differs from a directory backed by live object-storage listings:
// there is no remote store to list against here, so entries are packed
// directly into the directory inode's block, matching the original C's
// "directory is just an array of { name, inumber } structs" design.
package directory

import (
	"encoding/binary"

	"github.com/goncalobarias/tecnicofs/internal/block"
	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
)

// entrySize returns the on-block size of one directory entry: maxNameLen
// bytes for the name, followed by 8 bytes for the inumber.
func entrySize(maxNameLen int) int {
	return maxNameLen + 8
}

// count returns how many entries b's block can hold at maxNameLen.
func count(b block.Block, maxNameLen int) int {
	return len(b) / entrySize(maxNameLen)
}

func entryAt(b block.Block, maxNameLen, i int) []byte {
	sz := entrySize(maxNameLen)
	return b[i*sz : (i+1)*sz]
}

func nameOf(entry []byte, maxNameLen int) string {
	raw := entry[:maxNameLen]
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n])
}

func inumberOf(entry []byte, maxNameLen int) int {
	return int(int64(binary.BigEndian.Uint64(entry[maxNameLen:])))
}

func writeEntry(entry []byte, maxNameLen int, name string, inumber int) {
	clear(entry)
	copy(entry[:maxNameLen], name)
	binary.BigEndian.PutUint64(entry[maxNameLen:], uint64(int64(inumber)))
}

// FindInDir returns the inumber of the first entry exactly matching name.
// AddDirEntry does not reject duplicate names, so
// this always returns the first match in entry order.
func FindInDir(b block.Block, maxNameLen int, name string) (int, error) {
	n := count(b, maxNameLen)
	for i := 0; i < n; i++ {
		entry := entryAt(b, maxNameLen, i)
		if nameOf(entry, maxNameLen) == name {
			return inumberOf(entry, maxNameLen), nil
		}
	}
	return -1, tfserrors.New("directory.find", tfserrors.NotFound)
}

// AddDirEntry writes {name, inumber} into the first free entry.
func AddDirEntry(b block.Block, maxNameLen int, name string, inumber int) error {
	if name == "" || len(name) > maxNameLen {
		return tfserrors.New("directory.add", tfserrors.InvalidArgument)
	}

	n := count(b, maxNameLen)
	for i := 0; i < n; i++ {
		entry := entryAt(b, maxNameLen, i)
		if nameOf(entry, maxNameLen) == "" {
			writeEntry(entry, maxNameLen, name, inumber)
			return nil
		}
	}
	return tfserrors.New("directory.add", tfserrors.Full)
}

// ClearDirEntry zeroes the first entry exactly matching name.
func ClearDirEntry(b block.Block, maxNameLen int, name string) error {
	n := count(b, maxNameLen)
	for i := 0; i < n; i++ {
		entry := entryAt(b, maxNameLen, i)
		if nameOf(entry, maxNameLen) == name {
			clear(entry)
			return nil
		}
	}
	return tfserrors.New("directory.clear", tfserrors.NotFound)
}
