// Package tfserrors defines the typed error kinds raised by the FS core.
//
// Every failure is ultimately one of a small, fixed set of Kinds. Callers
// that only care whether an operation failed can treat any non-nil error as
// the C API's -1; callers that want to distinguish failure modes can use
// errors.Is against the package-level sentinels, or errors.As against
// *Error to recover the Kind and the operation name that raised it.
package tfserrors

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// NotInitialized means an operation was attempted before Init or after
	// Destroy.
	NotInitialized Kind = iota
	// InvalidArgument means a path or name was malformed, relative, empty,
	// or otherwise did not meet an operation's preconditions.
	InvalidArgument
	// NotFound means a directory entry or inode did not exist.
	NotFound
	// OutOfSpace means an inode, block, or open-file pool was exhausted.
	OutOfSpace
	// Full means a directory had no free entry.
	Full
	// NotAFile means an operation that requires a plain file was given a
	// directory or a symlink.
	NotAFile
	// BadHandle means a handle was not currently open.
	BadHandle
	// BadKind means an inode's kind did not match what the caller assumed.
	// This indicates a bug in the FS core itself rather than bad caller
	// input, and is kept distinct from the other kinds for that reason.
	BadKind
	// SymlinkLoop means a symlink chain exceeded the maximum resolution
	// depth.
	SymlinkLoop
)

func (k Kind) String() string {
	switch k {
	case NotInitialized:
		return "not initialized"
	case InvalidArgument:
		return "invalid argument"
	case NotFound:
		return "not found"
	case OutOfSpace:
		return "out of space"
	case Full:
		return "full"
	case NotAFile:
		return "not a file"
	case BadHandle:
		return "bad handle"
	case BadKind:
		return "bad kind"
	case SymlinkLoop:
		return "symlink loop"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with the operation that raised it and, optionally, an
// underlying error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind, so that
// errors.Is(err, tfserrors.ErrNotFound) works without callers needing to
// know about *Error.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == sentinel.Kind
}

// New builds an *Error for op/kind with no underlying error.
func New(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

// Wrap builds an *Error for op/kind around an underlying error. If err is
// nil, Wrap returns a nil *Error; returned through an `error` result, that
// nil pointer is a non-nil error value.
func Wrap(op string, kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Sentinels for use with errors.Is. Each carries only a Kind; the Op and
// Err fields of real errors are ignored by (*Error).Is.
var (
	ErrNotInitialized = &Error{Kind: NotInitialized}
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
	ErrNotFound        = &Error{Kind: NotFound}
	ErrOutOfSpace      = &Error{Kind: OutOfSpace}
	ErrFull            = &Error{Kind: Full}
	ErrNotAFile        = &Error{Kind: NotAFile}
	ErrBadHandle       = &Error{Kind: BadHandle}
	ErrBadKind         = &Error{Kind: BadKind}
	ErrSymlinkLoop     = &Error{Kind: SymlinkLoop}
)
