// Package config defines the FS's session parameters (the former
// tfs_params) and an optional loader that overlays them from the
// environment or a YAML file using Viper, the way config layers commonly
// package overlays its mount configuration from flags and config files.
//
// There is no CLI flag surface here: the broker and its
// command-line entry point are out of scope, so this package only needs
// the "read overrides from the environment" half of that story.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Params holds the fixed-capacity sizes of the FS's four tables. They are
// set once, at Init, and are immutable for the life of the session.
type Params struct {
	MaxInodeCount     int `mapstructure:"max-inode-count"`
	MaxBlockCount     int `mapstructure:"max-block-count"`
	MaxOpenFilesCount int `mapstructure:"max-open-files-count"`
	BlockSize         int `mapstructure:"block-size"`

	// MaxFileNameLen bounds directory entry names; the original C left
	// MAX_FILE_NAME as a compile-time constant, exposed here as a session
	// parameter instead.
	MaxFileNameLen int `mapstructure:"max-file-name-len"`

	// MaxSymlinkDepth bounds symlink chain resolution, new relative to the
	// original C, which recursed unboundedly and could spin forever on a
	// cycle.
	MaxSymlinkDepth int `mapstructure:"max-symlink-depth"`
}

// Default returns the FS's default session parameters.
func Default() Params {
	return Params{
		MaxInodeCount:     64,
		MaxBlockCount:     1024,
		MaxOpenFilesCount: 16,
		BlockSize:         1024,
		MaxFileNameLen:    40,
		MaxSymlinkDepth:   16,
	}
}

// EnvPrefix is the prefix environment-variable overrides must carry, e.g.
// TFS_BLOCK_SIZE overrides BlockSize.
const EnvPrefix = "TFS"

// Load returns the default Params overlaid with any TFS_* environment
// variables and, if configPath is non-empty, a YAML file at that path.
// It never mutates the value returned by Default; it builds a fresh Viper
// instance seeded from it instead, a common practice for
// layering config sources (flags, env, file) through Viper rather than
// hand-rolling precedence.
func Load(configPath string) (Params, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("max-inode-count", defaults.MaxInodeCount)
	v.SetDefault("max-block-count", defaults.MaxBlockCount)
	v.SetDefault("max-open-files-count", defaults.MaxOpenFilesCount)
	v.SetDefault("block-size", defaults.BlockSize)
	v.SetDefault("max-file-name-len", defaults.MaxFileNameLen)
	v.SetDefault("max-symlink-depth", defaults.MaxSymlinkDepth)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Params{}, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	var params Params
	if err := v.Unmarshal(&params); err != nil {
		return Params{}, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return params, nil
}

// Validate reports whether params describes a usable session: every pool
// must have positive capacity, and a file name must be able to fit at
// least one byte.
func (p Params) Validate() error {
	switch {
	case p.MaxInodeCount <= 0:
		return fmt.Errorf("config: max-inode-count must be positive, got %d", p.MaxInodeCount)
	case p.MaxBlockCount <= 0:
		return fmt.Errorf("config: max-block-count must be positive, got %d", p.MaxBlockCount)
	case p.MaxOpenFilesCount <= 0:
		return fmt.Errorf("config: max-open-files-count must be positive, got %d", p.MaxOpenFilesCount)
	case p.BlockSize <= 0:
		return fmt.Errorf("config: block-size must be positive, got %d", p.BlockSize)
	case p.MaxFileNameLen <= 0:
		return fmt.Errorf("config: max-file-name-len must be positive, got %d", p.MaxFileNameLen)
	case p.MaxSymlinkDepth <= 0:
		return fmt.Errorf("config: max-symlink-depth must be positive, got %d", p.MaxSymlinkDepth)
	}
	return nil
}
