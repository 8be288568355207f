package vfs

import (
	"io/fs"
	"path"
	"strings"

	slang "github.com/wippyai/slang-bridge"
)

// FS adapts an io/fs.FS, such as an embed.FS or fstest.MapFS.
type FS struct {
	fsys fs.FS
}

// FromFS returns a FileSystem reading from fsys.
func FromFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// LoadFile reads name from the wrapped file system. Leading slashes and
// "./" are ignored.
func (f *FS) LoadFile(name string) (*slang.Blob, error) {
	key := strings.TrimPrefix(path.Clean("/"+toSlash(name)), "/")
	if key == "" || !fs.ValidPath(key) {
		return nil, notExist(name)
	}
	data, err := fs.ReadFile(f.fsys, key)
	if err != nil {
		return nil, err
	}
	return slang.NewBlob(data), nil
}
