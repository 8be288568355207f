package resource

// Handle is an opaque reference to a value in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRetained
	EventReleased
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	case EventDropped:
		return "dropped"
	}
	return "unknown"
}

// Event represents a lifecycle event.
// Refs is the reference count after the operation.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Refs   uint32
	Type   EventType
}

// Observer receives notifications about lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnResourceEvent calls f(e).
func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Backend provides the underlying storage mechanism.
type Backend interface {
	// Create stores a value with one reference and returns a handle.
	Create(typeID uint32, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Drop removes an entry and returns (value, true) if cleanup should run.
	// Returns (nil, false) if the handle is invalid or still referenced.
	Drop(handle Handle) (any, bool)

	// Close releases all entries held by the backend.
	Close() error
}

// RefBackend extends Backend with reference counting. It backs objects
// whose lifetime is controlled by addRef/release calls from native code.
type RefBackend interface {
	Backend

	// Retain increments the reference count and returns the new count.
	Retain(handle Handle) (uint32, bool)

	// Release decrements the reference count and returns the new count.
	// The entry stays valid at zero until it is dropped.
	Release(handle Handle) (uint32, bool)

	// Refs returns the current reference count.
	Refs(handle Handle) (uint32, bool)

	// TypeID returns the type ID an entry was created with.
	TypeID(handle Handle) (uint32, bool)
}

// Table manages values with type information and observer support.
type Table interface {
	// Insert adds a value with one reference and returns its handle.
	Insert(typeID uint32, value any) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// GetTyped retrieves a value only if it matches the expected type.
	GetTyped(handle Handle, typeID uint32) (any, bool)

	// Retain adds a reference.
	Retain(handle Handle) (uint32, bool)

	// Release drops a reference; the value is removed when none remain.
	Release(handle Handle) (uint32, bool)

	// Remove drops an unreferenced value and returns (value, true) if found.
	Remove(handle Handle) (any, bool)

	// Subscribe adds an observer for lifecycle events. The returned
	// function removes it.
	Subscribe(Observer) (unsubscribe func())

	// Len returns the number of live values.
	Len() int

	// Clear drops all values regardless of their reference counts.
	Clear()

	// Close releases all values and stops accepting operations.
	Close() error
}

// TypedTable provides type-safe access to values of a specific type.
type TypedTable[T any] interface {
	// Insert adds a value and returns its handle.
	Insert(value T) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (T, bool)

	// Release drops a reference and returns the remaining count.
	Release(handle Handle) (uint32, bool)

	// Len returns the number of live values of this type.
	Len() int

	// Each iterates over all live values of this type.
	Each(func(Handle, T) bool)
}

// Dropper is optionally implemented by values that need cleanup.
type Dropper interface {
	Drop()
}
