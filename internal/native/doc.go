// Package native holds all cgo code of the bridge.
//
// The Slang library is opened at runtime with dlopen, so nothing links
// against it at build time. Methods on compiler objects are reached by
// reading the object's vtable and calling the function pointer through a
// small C shim of the exact signature. Flat exported functions are resolved
// with dlsym and called the same way.
//
// Objects implemented in Go (blobs and file systems) are C structs whose
// first word is a static vtable of C trampolines. Counted objects store a
// resource handle instead of a Go pointer; the trampolines forward into Go,
// which resolves the handle through a reference-counted table.
//
// Descriptors passed to the compiler are copied into C memory owned by an
// Arena for the duration of one call.
package native
