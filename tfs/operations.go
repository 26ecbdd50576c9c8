package tfs

import (
	"github.com/goncalobarias/tecnicofs/internal/directory"
	"github.com/goncalobarias/tecnicofs/internal/inode"
	"github.com/goncalobarias/tecnicofs/internal/logger"
	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
)

// Open resolves path, following symlinks, and returns a handle bound to the
// resulting file.
func (fs *FileSystem) Open(path string, mode Mode) (int, error) {
	logger.Debugf("tfs.Open(%q, %s)", path, mode)
	if err := fs.checkStarted("tfs.open"); err != nil {
		return -1, err
	}
	h, err := fs.open(path, mode, 0)
	if err != nil {
		logger.Warnf("tfs.Open(%q, %s) failed: %v", path, mode, err)
		return -1, err
	}
	logger.Tracef("tfs.Open(%q) -> handle=%d", path, h)
	return h, nil
}

func (fs *FileSystem) open(path string, mode Mode, depth int) (int, error) {
	const op = "tfs.open"
	name, err := validatePath(op, path)
	if err != nil {
		return -1, err
	}

	rootBlock, _ := fs.rootBlock()
	inum, lookupErr := directory.FindInDir(rootBlock, fs.params.MaxFileNameLen, name)

	var created bool

	switch {
	case lookupErr == nil:
		in, err := fs.inodes.Get(inum)
		if err != nil {
			panic("tfs.open: directory entry points at a missing inode: " + err.Error())
		}

		if in.Kind == inode.SymLink {
			return fs.followSymlink(inum, in, mode, depth)
		}
		if in.Kind != inode.File {
			return -1, tfserrors.New(op, tfserrors.NotAFile)
		}

		if mode&TRUNCATE != 0 && in.Size > 0 {
			if err := fs.inodes.FreeBlock(in); err != nil {
				return -1, tfserrors.Wrap(op, tfserrors.NotFound, err)
			}
		}

	case mode&CREATE != 0:
		newInum, err := fs.inodes.Create(inode.File)
		if err != nil {
			return -1, err
		}
		if err := directory.AddDirEntry(rootBlock, fs.params.MaxFileNameLen, name, newInum); err != nil {
			_ = fs.inodes.Delete(newInum)
			return -1, err
		}
		inum = newInum
		created = true

	default:
		return -1, tfserrors.New(op, tfserrors.NotFound)
	}

	in, err := fs.inodes.Get(inum)
	if err != nil {
		panic("tfs.open: inode vanished mid-open: " + err.Error())
	}
	offset := 0
	if mode&APPEND != 0 {
		offset = in.Size
	}

	handle, err := fs.openFiles.Add(inum, offset)
	if err != nil {
		if created {
			_ = directory.ClearDirEntry(rootBlock, fs.params.MaxFileNameLen, name)
			_ = fs.inodes.Delete(inum)
		}
		return -1, err
	}

	return handle, nil
}

// followSymlink reads a symlink inode's target and recurses into it. The
// handle used to read the target is closed before recursing, and depth is
// bounded so a symlink cycle cannot recurse forever.
func (fs *FileSystem) followSymlink(inum int, in *inode.Inode, mode Mode, depth int) (int, error) {
	const op = "tfs.open"
	if depth >= fs.params.MaxSymlinkDepth {
		return -1, tfserrors.New(op, tfserrors.SymlinkLoop)
	}

	handle, err := fs.openFiles.Add(inum, 0)
	if err != nil {
		return -1, err
	}

	target := make([]byte, in.Size)
	n, readErr := fs.Read(handle, target)
	closeErr := fs.openFiles.Remove(handle)

	if readErr != nil {
		return -1, readErr
	}
	if closeErr != nil {
		return -1, closeErr
	}

	return fs.open(string(target[:n]), mode, depth+1)
}

// Close releases handle, which must not be used again.
func (fs *FileSystem) Close(handle int) error {
	if err := fs.checkStarted("tfs.close"); err != nil {
		return err
	}
	if _, err := fs.openFiles.Get(handle); err != nil {
		return err
	}
	if err := fs.openFiles.Remove(handle); err != nil {
		return err
	}
	logger.Tracef("tfs.Close(%d)", handle)
	return nil
}

// Read copies up to len(buf) bytes starting at handle's current offset into
// buf, advancing the offset by the number of bytes read.
func (fs *FileSystem) Read(handle int, buf []byte) (int, error) {
	if err := fs.checkStarted("tfs.read"); err != nil {
		return 0, err
	}
	entry, err := fs.openFiles.Get(handle)
	if err != nil {
		return 0, err
	}
	in, err := fs.inodes.Get(entry.Inumber)
	if err != nil {
		return 0, err
	}

	toRead := len(buf)
	if remaining := in.Size - entry.Offset; toRead > remaining {
		toRead = remaining
	}
	if toRead <= 0 {
		return 0, nil
	}

	b, err := fs.inodes.Block(in)
	if err != nil {
		return 0, err
	}
	n := copy(buf[:toRead], b[entry.Offset:entry.Offset+toRead])
	entry.Offset += n

	logger.Tracef("tfs.Read(%d) -> %d bytes", handle, n)
	return n, nil
}

// Write copies up to len(buf) bytes from buf into handle's file starting at
// its current offset, advancing the offset and extending the file's size as
// needed. A file's contents never exceed one data block, so Write truncates
// silently to whatever room is left in the block.
func (fs *FileSystem) Write(handle int, buf []byte) (int, error) {
	if err := fs.checkStarted("tfs.write"); err != nil {
		return 0, err
	}
	entry, err := fs.openFiles.Get(handle)
	if err != nil {
		return 0, err
	}
	in, err := fs.inodes.Get(entry.Inumber)
	if err != nil {
		return 0, err
	}

	toWrite := len(buf)
	if room := fs.params.BlockSize - entry.Offset; toWrite > room {
		toWrite = room
	}
	if toWrite <= 0 {
		return 0, nil
	}

	b, err := fs.inodes.Block(in)
	if err != nil {
		return 0, err
	}

	n := copy(b[entry.Offset:entry.Offset+toWrite], buf[:toWrite])
	entry.Offset += n
	if entry.Offset > in.Size {
		in.Size = entry.Offset
	}

	logger.Tracef("tfs.Write(%d) -> %d bytes", handle, n)
	return n, nil
}

// Link creates a new directory entry, link, referring to the same inode as
// target, a hard link in the POSIX sense. Both target and link must already
// be valid plain-file paths; target must not itself be a directory or a
// symlink.
func (fs *FileSystem) Link(target, link string) error {
	const op = "tfs.link"
	if err := fs.checkStarted(op); err != nil {
		return err
	}
	targetName, err := validatePath(op, target)
	if err != nil {
		return err
	}
	linkName, err := validatePath(op, link)
	if err != nil {
		return err
	}

	rootBlock, _ := fs.rootBlock()
	inum, err := directory.FindInDir(rootBlock, fs.params.MaxFileNameLen, targetName)
	if err != nil {
		return tfserrors.Wrap(op, tfserrors.NotFound, err)
	}
	in, err := fs.inodes.Get(inum)
	if err != nil {
		return err
	}
	if in.Kind != inode.File {
		return tfserrors.New(op, tfserrors.NotAFile)
	}

	if err := directory.AddDirEntry(rootBlock, fs.params.MaxFileNameLen, linkName, inum); err != nil {
		return err
	}
	in.HardLinks++

	logger.Debugf("tfs.Link(%q, %q)", target, link)
	return nil
}

// SymLink creates link as a new symbolic link whose target is the literal
// string target; target is not resolved or validated at creation time.
func (fs *FileSystem) SymLink(target, link string) error {
	const op = "tfs.symlink"
	if err := fs.checkStarted(op); err != nil {
		return err
	}
	linkName, err := validatePath(op, link)
	if err != nil {
		return err
	}

	handle, err := fs.open(link, CREATE, 0)
	if err != nil {
		return err
	}
	if _, err := fs.Write(handle, []byte(target)); err != nil {
		_ = fs.openFiles.Remove(handle)
		return err
	}
	if err := fs.openFiles.Remove(handle); err != nil {
		return err
	}

	rootBlock, _ := fs.rootBlock()
	linkInum, err := directory.FindInDir(rootBlock, fs.params.MaxFileNameLen, linkName)
	if err != nil {
		panic("tfs.symlink: just-created entry is missing: " + err.Error())
	}
	in, err := fs.inodes.Get(linkInum)
	if err != nil {
		panic("tfs.symlink: just-created inode is missing: " + err.Error())
	}
	in.Kind = inode.SymLink

	logger.Debugf("tfs.SymLink(%q, %q)", target, link)
	return nil
}

// Unlink removes link's directory entry. If link's inode's hard-link count
// reaches zero, the inode and its data block are also freed.
func (fs *FileSystem) Unlink(path string) error {
	const op = "tfs.unlink"
	if err := fs.checkStarted(op); err != nil {
		return err
	}
	name, err := validatePath(op, path)
	if err != nil {
		return err
	}

	rootBlock, _ := fs.rootBlock()
	inum, err := directory.FindInDir(rootBlock, fs.params.MaxFileNameLen, name)
	if err != nil {
		return tfserrors.Wrap(op, tfserrors.NotFound, err)
	}
	in, err := fs.inodes.Get(inum)
	if err != nil {
		return err
	}
	if in.Kind != inode.File {
		return tfserrors.New(op, tfserrors.NotAFile)
	}

	if err := directory.ClearDirEntry(rootBlock, fs.params.MaxFileNameLen, name); err != nil {
		return err
	}

	in.HardLinks--
	if in.HardLinks <= 0 {
		if err := fs.inodes.Delete(inum); err != nil {
			return err
		}
	}

	logger.Debugf("tfs.Unlink(%q)", path)
	return nil
}

// CopyFromExternalFS copies the entire contents of hostPath, read through
// the FileSystem's ExternalReader, into destPath, creating or truncating it
// as needed.
func (fs *FileSystem) CopyFromExternalFS(hostPath, destPath string) error {
	const op = "tfs.copy_from_external_fs"
	if err := fs.checkStarted(op); err != nil {
		return err
	}

	data, err := fs.reader.ReadAll(hostPath)
	if err != nil {
		return tfserrors.Wrap(op, tfserrors.NotFound, err)
	}
	if len(data) > fs.params.BlockSize {
		return tfserrors.New(op, tfserrors.InvalidArgument)
	}

	handle, err := fs.Open(destPath, CREATE|TRUNCATE)
	if err != nil {
		return err
	}
	_, writeErr := fs.Write(handle, data)
	closeErr := fs.Close(handle)

	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return closeErr
	}

	logger.Debugf("tfs.CopyFromExternalFS(%q, %q) -> %d bytes", hostPath, destPath, len(data))
	return nil
}
