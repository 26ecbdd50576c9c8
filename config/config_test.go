package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, 64, p.MaxInodeCount)
	assert.Equal(t, 1024, p.MaxBlockCount)
	assert.Equal(t, 16, p.MaxOpenFilesCount)
	assert.Equal(t, 1024, p.BlockSize)
	assert.NoError(t, p.Validate())
}

func TestLoadNoOverrides(t *testing.T) {
	p, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TFS_BLOCK_SIZE", "2048")
	t.Setenv("TFS_MAX_OPEN_FILES_COUNT", "4")

	p, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 2048, p.BlockSize)
	assert.Equal(t, 4, p.MaxOpenFilesCount)
	assert.Equal(t, Default().MaxInodeCount, p.MaxInodeCount)
}

func TestLoadFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-inode-count: 8\n"), 0o644))

	p, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8, p.MaxInodeCount)
}

func TestValidateRejectsNonPositive(t *testing.T) {
	p := Default()
	p.BlockSize = 0

	err := p.Validate()

	assert.Error(t, err)
}
