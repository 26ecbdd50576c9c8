// Package tfs is the file system's operations layer: path validation, name
// resolution through the root directory (following symlinks), and the
// public open/read/write/close/link/sym_link/unlink/copy-in surface.
//
// FileSystem materializes the session's process-wide state as an explicit
// object rather than only package globals, so tests can run several
// independent sessions in parallel subtests; the package-level functions in
// singleton.go wrap a default instance to match the free-function shape of
// the original C API.
package tfs

import (
	"github.com/goncalobarias/tecnicofs/config"
	"github.com/goncalobarias/tecnicofs/internal/alloc"
	"github.com/goncalobarias/tecnicofs/internal/block"
	"github.com/goncalobarias/tecnicofs/internal/inode"
	"github.com/goncalobarias/tecnicofs/internal/logger"
	"github.com/goncalobarias/tecnicofs/internal/openfile"
	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
)

// RootDirInum is the root directory's well-known inumber.
const RootDirInum = 0

// FileSystem is one FS session: the inode store, block pool, and open-file
// table bound together between Init and Destroy.
type FileSystem struct {
	params    config.Params
	inodes    *inode.Store
	openFiles *openfile.Table
	reader    ExternalReader
	started   bool
}

// DefaultParams returns the FS's default session parameters.
func DefaultParams() config.Params {
	return config.Default()
}

// New constructs an uninitialized FileSystem. Call Init before using it.
func New() *FileSystem {
	return &FileSystem{reader: OSExternalReader{}}
}

// Init brings up a session with the given parameters, or the defaults if
// params is nil. It is an error to call any other operation outside the
// window between a successful Init and the matching Destroy.
func (fs *FileSystem) Init(params *config.Params) error {
	p := DefaultParams()
	if params != nil {
		p = *params
	}
	if err := p.Validate(); err != nil {
		return tfserrors.Wrap("tfs.init", tfserrors.InvalidArgument, err)
	}

	blocks := block.NewPool(p.MaxBlockCount, p.BlockSize)
	fs.inodes = inode.NewStore(alloc.New[inode.Inode](p.MaxInodeCount), blocks)
	fs.openFiles = openfile.NewTable(p.MaxOpenFilesCount)
	fs.params = p
	fs.started = true

	root, err := fs.inodes.Create(inode.Directory)
	if err != nil {
		fs.started = false
		return tfserrors.Wrap("tfs.init", tfserrors.OutOfSpace, err)
	}
	if root != RootDirInum {
		// The inode pool is freshly allocated and empty; its first Alloc
		// must return index 0. If it doesn't, the pool implementation
		// itself is broken.
		panic("tfs.init: root inode must be the first inode allocated")
	}

	logger.Infof("tfs: session initialized (inodes=%d blocks=%d openFiles=%d blockSize=%d)",
		p.MaxInodeCount, p.MaxBlockCount, p.MaxOpenFilesCount, p.BlockSize)
	return nil
}

// Destroy releases all allocation pools and the open-file table. Any
// handle left open is invalidated.
func (fs *FileSystem) Destroy() error {
	if !fs.started {
		return tfserrors.New("tfs.destroy", tfserrors.NotInitialized)
	}
	fs.inodes = nil
	fs.openFiles = nil
	fs.started = false
	logger.Infof("tfs: session destroyed")
	return nil
}

// checkStarted returns tfserrors.NotInitialized if called outside the
// Init/Destroy window.
func (fs *FileSystem) checkStarted(op string) error {
	if !fs.started {
		return tfserrors.New(op, tfserrors.NotInitialized)
	}
	return nil
}

// rootBlock returns the root directory inode and its entry-table block.
func (fs *FileSystem) rootBlock() (block.Block, *inode.Inode) {
	root, err := fs.inodes.Get(RootDirInum)
	if err != nil {
		panic("tfs: root directory inode is missing: " + err.Error())
	}
	b, err := fs.inodes.Block(root)
	if err != nil {
		panic("tfs: root directory has no data block: " + err.Error())
	}
	return b, root
}
