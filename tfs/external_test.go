package tfs

import "github.com/goncalobarias/tecnicofs/internal/tfserrors"

// fakeReader is an in-memory ExternalReader fixture for tests that need to
// copy from a host path without touching the real file system.
type fakeReader struct {
	files map[string][]byte
}

func newFakeReader() *fakeReader {
	return &fakeReader{files: make(map[string][]byte)}
}

func (r *fakeReader) put(name string, data []byte) {
	r.files[name] = data
}

func (r *fakeReader) ReadAll(name string) ([]byte, error) {
	data, ok := r.files[name]
	if !ok {
		return nil, tfserrors.New("fakeReader.ReadAll", tfserrors.NotFound)
	}
	return data, nil
}
