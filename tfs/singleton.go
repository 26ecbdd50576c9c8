package tfs

import "github.com/goncalobarias/tecnicofs/config"

// instance is the process-wide file system used by the package-level
// functions below, mirroring the original C API's free-function surface
// over a single global state.
var instance = New()

// Init brings up the default session. See (*FileSystem).Init.
func Init(params *config.Params) error {
	return instance.Init(params)
}

// Destroy tears down the default session. See (*FileSystem).Destroy.
func Destroy() error {
	return instance.Destroy()
}

// Open opens path on the default session. See (*FileSystem).Open.
func Open(path string, mode Mode) (int, error) {
	return instance.Open(path, mode)
}

// Close closes handle on the default session. See (*FileSystem).Close.
func Close(handle int) error {
	return instance.Close(handle)
}

// Read reads from handle on the default session. See (*FileSystem).Read.
func Read(handle int, buf []byte) (int, error) {
	return instance.Read(handle, buf)
}

// Write writes to handle on the default session. See (*FileSystem).Write.
func Write(handle int, buf []byte) (int, error) {
	return instance.Write(handle, buf)
}

// Link creates a hard link on the default session. See (*FileSystem).Link.
func Link(target, link string) error {
	return instance.Link(target, link)
}

// SymLink creates a symbolic link on the default session. See
// (*FileSystem).SymLink.
func SymLink(target, link string) error {
	return instance.SymLink(target, link)
}

// Unlink removes a directory entry on the default session. See
// (*FileSystem).Unlink.
func Unlink(path string) error {
	return instance.Unlink(path)
}

// CopyFromExternalFS copies a host file into the default session. See
// (*FileSystem).CopyFromExternalFS.
func CopyFromExternalFS(hostPath, destPath string) error {
	return instance.CopyFromExternalFS(hostPath, destPath)
}
