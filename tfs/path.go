package tfs

import (
	"strings"

	"github.com/goncalobarias/tecnicofs/internal/tfserrors"
)

// validatePath checks that path is absolute, longer than just "/", and
// names exactly one component (no nested slashes), since only a single
// flat root directory exists. It returns the bare name with the leading
// slash stripped.
func validatePath(op, path string) (string, error) {
	if len(path) <= 1 || path[0] != '/' {
		return "", tfserrors.New(op, tfserrors.InvalidArgument)
	}
	name := path[1:]
	if strings.Contains(name, "/") {
		return "", tfserrors.New(op, tfserrors.InvalidArgument)
	}
	return name, nil
}
