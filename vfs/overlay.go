package vfs

import (
	"go.uber.org/zap"

	slang "github.com/wippyai/slang-bridge"
)

// Layered tries each layer in order until one has the file.
type Layered struct {
	layers []slang.FileSystem
}

// Overlay returns a file system that consults layers in order. A layer
// reporting a missing file passes the request on; any other error stops the
// search.
func Overlay(layers ...slang.FileSystem) *Layered {
	return &Layered{layers: layers}
}

// LoadFile returns the file from the first layer that has it.
func (l *Layered) LoadFile(name string) (*slang.Blob, error) {
	for _, layer := range l.layers {
		if layer == nil {
			continue
		}
		b, err := layer.LoadFile(name)
		if err == nil {
			return b, nil
		}
		if !IsNotExist(err) {
			return nil, err
		}
	}
	return nil, notExist(name)
}

// Logged wraps fsys so that every request is logged at debug level.
func Logged(fsys slang.FileSystem, logger *zap.Logger) slang.FileSystem {
	if logger == nil {
		logger = slang.Logger()
	}
	return slang.FileSystemFunc(func(name string) (*slang.Blob, error) {
		b, err := fsys.LoadFile(name)
		if err != nil {
			logger.Debug("load file", zap.String("path", name), zap.Error(err))
			return nil, err
		}
		logger.Debug("load file", zap.String("path", name), zap.Int("bytes", b.Len()))
		return b, nil
	})
}
