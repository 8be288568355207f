package vfs

import (
	"path"
	"slices"
	"sync"

	slang "github.com/wippyai/slang-bridge"
)

// MapFS is an in-memory file system keyed by path.
type MapFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMapFS returns a MapFS holding a copy of files.
func NewMapFS(files map[string][]byte) *MapFS {
	m := &MapFS{files: make(map[string][]byte, len(files))}
	for name, data := range files {
		m.files[cleanKey(name)] = slices.Clone(data)
	}
	return m
}

// Set stores a copy of data at name.
func (m *MapFS) Set(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[cleanKey(name)] = slices.Clone(data)
}

// SetString stores source at name.
func (m *MapFS) SetString(name, source string) {
	m.Set(name, []byte(source))
}

// Delete removes name.
func (m *MapFS) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, cleanKey(name))
}

// Len returns the number of files.
func (m *MapFS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// LoadFile returns a blob with a copy of the file at name.
func (m *MapFS) LoadFile(name string) (*slang.Blob, error) {
	m.mu.RLock()
	data, ok := m.files[cleanKey(name)]
	m.mu.RUnlock()
	if !ok {
		return nil, notExist(name)
	}
	return slang.NewBlob(data), nil
}

func cleanKey(name string) string {
	name = path.Clean("/" + toSlash(name))
	return name[1:]
}
