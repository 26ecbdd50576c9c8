package openfile

import (
	"errors"
	"testing"

	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndGet(t *testing.T) {
	tbl := NewTable(2)

	h, err := tbl.Add(5, 0)
	require.NoError(t, err)

	e, err := tbl.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 5, e.Inumber)
	assert.Equal(t, 0, e.Offset)
}

func TestRemoveThenGetIsBadHandle(t *testing.T) {
	tbl := NewTable(2)
	h, err := tbl.Add(1, 0)
	require.NoError(t, err)

	require.NoError(t, tbl.Remove(h))

	_, err = tbl.Get(h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tfserrors.ErrBadHandle))
}

func TestRemoveUnopenedIsBadHandle(t *testing.T) {
	tbl := NewTable(2)

	err := tbl.Remove(0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, tfserrors.ErrBadHandle))
}

func TestHandleIsReusableAfterClose(t *testing.T) {
	tbl := NewTable(1)
	h1, err := tbl.Add(1, 0)
	require.NoError(t, err)
	require.NoError(t, tbl.Remove(h1))

	h2, err := tbl.Add(2, 0)

	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestAddOutOfSpace(t *testing.T) {
	tbl := NewTable(1)
	_, err := tbl.Add(1, 0)
	require.NoError(t, err)

	_, err = tbl.Add(2, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, tfserrors.ErrOutOfSpace))
}
