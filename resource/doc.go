// Package resource provides reference-counted handle management for Go
// values that native code holds pointers to.
//
// Native objects implemented in Go (blobs, file systems) cannot carry Go
// pointers across the cgo boundary. Instead each object stores an integer
// handle, and the handle table maps it back to the Go value when native code
// calls in.
//
// # Lifecycle
//
// Values follow the addRef/release discipline of the native object model:
//
//	Insert  - stores a value with one reference
//	Retain  - adds a reference (addRef)
//	Release - drops a reference; at zero the value is removed
//
// When a value is removed its Drop method runs exactly once if it implements
// Dropper.
//
//	table := resource.NewTable()
//	h := table.Insert(typeID, value) // refs == 1
//	table.Retain(h)                  // refs == 2
//	table.Release(h)                 // refs == 1
//	table.Release(h)                 // refs == 0, value dropped
//
// # Type Safety
//
// Each kind of host object gets a type ID. GetTyped refuses handles of another
// type, and Typed wraps a table into a generic view for a single type:
//
//	blobs := resource.NewTyped[*Buffer](table, BlobTypeID)
//	h := blobs.Insert(buf)
//	buf, ok := blobs.Get(h)
//
// # Observers
//
// Observers receive every lifecycle event, including the reference count
// after the operation:
//
//	stop := table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s handle=%d refs=%d", e.Type, e.Handle, e.Refs)
//	}))
//	defer stop()
//
// Clear and Close drop every value regardless of outstanding references.
package resource
