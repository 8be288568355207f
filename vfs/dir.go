package vfs

import (
	"os"
	"path/filepath"
	"strings"

	slang "github.com/wippyai/slang-bridge"
)

// Dir serves files from a directory tree. Paths are resolved relative to
// the root and may not escape it.
type Dir struct {
	root string
}

// DirFS returns a Dir rooted at root.
func DirFS(root string) *Dir {
	return &Dir{root: filepath.Clean(root)}
}

// Root returns the directory files are served from.
func (d *Dir) Root() string {
	return d.root
}

// LoadFile reads the file at name below the root.
func (d *Dir) LoadFile(name string) (*slang.Blob, error) {
	full, err := d.resolvePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, mapOSError(name, err)
	}
	return slang.NewBlob(data), nil
}

// resolvePath joins name to the root. Absolute names and names escaping the
// root are reported as missing.
func (d *Dir) resolvePath(name string) (string, error) {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		rel, err := filepath.Rel(d.root, filepath.Clean(name))
		if err != nil || escapes(rel) {
			return "", notExist(name)
		}
		name = rel
	}
	full := filepath.Clean(filepath.Join(d.root, name))

	rel, err := filepath.Rel(d.root, full)
	if err != nil || escapes(rel) {
		return "", notExist(name)
	}
	return full, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func toSlash(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}
