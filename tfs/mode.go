package tfs

import "strings"

// Mode is the bitset of flags tfs.Open accepts, the idiomatic rendering of
// the original C API's tfs_file_mode_t. Callers should use the named
// constants rather than depend on their numeric values.
type Mode int

const (
	CREATE   Mode = 1 << 0
	TRUNCATE Mode = 1 << 1
	APPEND   Mode = 1 << 2
)

// String renders mode as its set flag names, for logging.
func (m Mode) String() string {
	if m == 0 {
		return "-"
	}
	var names []string
	if m&CREATE != 0 {
		names = append(names, "CREATE")
	}
	if m&TRUNCATE != 0 {
		names = append(names, "TRUNCATE")
	}
	if m&APPEND != 0 {
		names = append(names, "APPEND")
	}
	return strings.Join(names, "|")
}
