package tfs

import (
	"testing"

	"github.com/goncalobarias/tecnicofs/config"
	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *FileSystem {
	t.Helper()
	fs := New()
	params := config.Params{
		MaxInodeCount:     8,
		MaxBlockCount:     8,
		MaxOpenFilesCount: 4,
		BlockSize:         256,
		MaxFileNameLen:    16,
		MaxSymlinkDepth:   4,
	}
	require.NoError(t, fs.Init(&params))
	t.Cleanup(func() { _ = fs.Destroy() })
	return fs
}

func TestOpenCreateWritesAndReadsBack(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)

	n, err := fs.Write(h, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, fs.Close(h))

	h2, err := fs.Open("/a", 0)
	require.NoError(t, err)
	buf := make([]byte, 5)
	n, err = fs.Read(h2, buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
	require.NoError(t, fs.Close(h2))
}

func TestOpenWithoutCreateFailsWhenMissing(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Open("/missing", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrNotFound)
}

func TestOpenTruncateResetsContents(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("hello"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	h2, err := fs.Open("/a", TRUNCATE)
	require.NoError(t, err)
	buf := make([]byte, 5)
	n, err := fs.Read(h2, buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NoError(t, fs.Close(h2))
}

func TestOpenAppendStartsAtEndOfFile(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("abc"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	h2, err := fs.Open("/a", APPEND)
	require.NoError(t, err)
	_, err = fs.Write(h2, []byte("def"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h2))

	h3, err := fs.Open("/a", 0)
	require.NoError(t, err)
	buf := make([]byte, 6)
	n, err := fs.Read(h3, buf)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(buf[:n]))
	require.NoError(t, fs.Close(h3))
}

func TestWriteClampsToBlockSize(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	big := make([]byte, 1000)
	n, err := fs.Write(h, big)
	require.NoError(t, err)
	assert.Equal(t, 256, n)
	require.NoError(t, fs.Close(h))
}

func TestWriteZeroLengthDoesNotTouchBlockPoolWhenExhausted(t *testing.T) {
	fs := New()
	params := config.Params{
		MaxInodeCount:     16,
		MaxBlockCount:     8,
		MaxOpenFilesCount: 4,
		BlockSize:         256,
		MaxFileNameLen:    16,
		MaxSymlinkDepth:   4,
	}
	require.NoError(t, fs.Init(&params))
	t.Cleanup(func() { _ = fs.Destroy() })

	// Root already holds one of the 8 configured blocks; allocate the
	// remaining 7 so the block pool is fully exhausted.
	for i := 0; i < 7; i++ {
		h, err := fs.Open("/f"+string(rune('0'+i)), CREATE)
		require.NoError(t, err)
		_, err = fs.Write(h, []byte("x"))
		require.NoError(t, err)
		require.NoError(t, fs.Close(h))
	}

	h, err := fs.Open("/fresh", CREATE)
	require.NoError(t, err)

	n, err := fs.Write(h, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// A real write, needing a block it cannot get, must still fail.
	_, err = fs.Write(h, []byte("y"))
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrOutOfSpace)

	require.NoError(t, fs.Close(h))
}

func TestWriteAtBlockSizeOffsetIsZeroLength(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	full := make([]byte, 256)
	n, err := fs.Write(h, full)
	require.NoError(t, err)
	assert.Equal(t, 256, n)

	// Offset is now at block size; any further write is zero-length and
	// must not need to touch the block again.
	n, err = fs.Write(h, []byte("overflow"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NoError(t, fs.Close(h))
}

func TestCloseInvalidatesHandle(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	err = fs.Close(h)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrBadHandle)
}

func TestLinkCreatesAdditionalNameForSameFile(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("xyz"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	require.NoError(t, fs.Link("/a", "/b"))

	hb, err := fs.Open("/b", 0)
	require.NoError(t, err)
	buf := make([]byte, 3)
	n, err := fs.Read(hb, buf)
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(buf[:n]))
	require.NoError(t, fs.Close(hb))
}

func TestLinkRejectsSymlinkTarget(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("x"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	require.NoError(t, fs.SymLink("/a", "/link"))

	err = fs.Link("/link", "/b")
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrNotAFile)
}

func TestUnlinkDeletesInodeOnLastHardLink(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	require.NoError(t, fs.Unlink("/a"))

	_, err = fs.Open("/a", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrNotFound)
}

func TestUnlinkKeepsInodeWhileOtherHardLinksRemain(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("z"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))
	require.NoError(t, fs.Link("/a", "/b"))

	require.NoError(t, fs.Unlink("/a"))

	hb, err := fs.Open("/b", 0)
	require.NoError(t, err)
	require.NoError(t, fs.Close(hb))
}

func TestUnlinkRejectsSymlink(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))
	require.NoError(t, fs.SymLink("/a", "/link"))

	err = fs.Unlink("/link")
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrNotAFile)

	// The symlink is still there: Unlink must not have touched it.
	hl, err := fs.Open("/link", 0)
	require.NoError(t, err)
	require.NoError(t, fs.Close(hl))
}

func TestSymLinkResolvesToTargetContents(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("content"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	require.NoError(t, fs.SymLink("/a", "/link"))

	hl, err := fs.Open("/link", 0)
	require.NoError(t, err)
	buf := make([]byte, 7)
	n, err := fs.Read(hl, buf)
	require.NoError(t, err)
	assert.Equal(t, "content", string(buf[:n]))
	require.NoError(t, fs.Close(hl))
}

func TestSymLinkChainExceedingDepthFails(t *testing.T) {
	fs := newTestFS(t)

	h, err := fs.Open("/a", CREATE)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	prev := "/a"
	for i := 0; i < 6; i++ {
		name := "/l" + string(rune('0'+i))
		require.NoError(t, fs.SymLink(prev, name))
		prev = name
	}

	_, err = fs.Open(prev, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrSymlinkLoop)
}

func TestCopyFromExternalFSCreatesFileWithContents(t *testing.T) {
	fs := newTestFS(t)
	reader := newFakeReader()
	reader.put("/host/a", []byte("imported"))
	fs.reader = reader

	require.NoError(t, fs.CopyFromExternalFS("/host/a", "/dest"))

	h, err := fs.Open("/dest", 0)
	require.NoError(t, err)
	buf := make([]byte, 8)
	n, err := fs.Read(h, buf)
	require.NoError(t, err)
	assert.Equal(t, "imported", string(buf[:n]))
	require.NoError(t, fs.Close(h))
}

func TestCopyFromExternalFSRejectsOversizedSource(t *testing.T) {
	fs := newTestFS(t)
	reader := newFakeReader()
	reader.put("/host/big", make([]byte, 1000))
	fs.reader = reader

	err := fs.CopyFromExternalFS("/host/big", "/dest")
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrInvalidArgument)
}

func TestOperationsFailBeforeInitAndAfterDestroy(t *testing.T) {
	fs := New()
	_, err := fs.Open("/a", CREATE)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrNotInitialized)

	params := config.Default()
	require.NoError(t, fs.Init(&params))
	require.NoError(t, fs.Destroy())

	_, err = fs.Open("/a", CREATE)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrNotInitialized)
}

func TestInvalidPathsAreRejected(t *testing.T) {
	fs := newTestFS(t)

	cases := []string{"", "/", "relative", "/nested/path"}
	for _, p := range cases {
		_, err := fs.Open(p, CREATE)
		require.Error(t, err)
		assert.ErrorIs(t, err, tfserrors.ErrInvalidArgument)
	}
}

func TestOpenFileTableExhaustionReturnsOutOfSpace(t *testing.T) {
	fs := newTestFS(t)

	for i := 0; i < 4; i++ {
		_, err := fs.Open("/f"+string(rune('0'+i)), CREATE)
		require.NoError(t, err)
	}

	_, err := fs.Open("/overflow", CREATE)
	require.Error(t, err)
	assert.ErrorIs(t, err, tfserrors.ErrOutOfSpace)
}
