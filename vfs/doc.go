// Package vfs provides slang.FileSystem implementations.
//
// Every implementation here is safe for concurrent use, since the compiler
// may load files from several threads at once.
//
//	mem := vfs.NewMapFS(nil)
//	mem.SetString("shader.slang", src)
//	desc := slang.NewSessionDesc().WithFileSystem(vfs.Overlay(mem, vfs.DirFS("shaders")))
//
// Missing files are reported with errors that wrap fs.ErrNotExist, which
// the compiler sees as E_NOT_FOUND. Overlay falls through to the next layer
// only on that error.
package vfs
