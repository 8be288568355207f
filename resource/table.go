package resource

import (
	"sync"
)

// UnifiedTable implements the Table interface using a LocalBackend for storage.
type UnifiedTable struct {
	backend   *LocalBackend
	observers []*subscription
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new unified table with a LocalBackend.
func NewTable() *UnifiedTable {
	return &UnifiedTable{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value with one reference and returns its handle.
func (t *UnifiedTable) Insert(typeID uint32, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Refs:   1,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *UnifiedTable) GetTyped(handle Handle, typeID uint32) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(handle)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(handle)
}

// Retain adds a reference and returns the new count.
func (t *UnifiedTable) Retain(handle Handle) (uint32, bool) {
	refs, ok := t.backend.Retain(handle)
	if !ok {
		return 0, false
	}

	typeID, _ := t.backend.TypeID(handle)
	t.notify(Event{
		Type:   EventRetained,
		Handle: handle,
		TypeID: typeID,
		Refs:   refs,
	})
	return refs, true
}

// Release drops a reference and returns the remaining count. When the count
// reaches zero the value is removed and its Dropper, if any, runs exactly once.
func (t *UnifiedTable) Release(handle Handle) (uint32, bool) {
	typeID, _ := t.backend.TypeID(handle)
	refs, ok := t.backend.Release(handle)
	if !ok {
		return 0, false
	}

	t.notify(Event{
		Type:   EventReleased,
		Handle: handle,
		TypeID: typeID,
		Refs:   refs,
	})

	if refs == 0 {
		t.Remove(handle)
	}
	return refs, true
}

// Refs returns the current reference count.
func (t *UnifiedTable) Refs(handle Handle) (uint32, bool) {
	return t.backend.Refs(handle)
}

// Remove drops an unreferenced value and returns (value, true) if found.
func (t *UnifiedTable) Remove(handle Handle) (any, bool) {
	typeID, _ := t.backend.TypeID(handle)
	value, ok := t.backend.Drop(handle)
	if !ok {
		return nil, false
	}
	t.dropped(handle, typeID, value)
	return value, true
}

func (t *UnifiedTable) dropped(handle Handle, typeID uint32, value any) {
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})
}

type subscription struct {
	o Observer
}

// Subscribe adds an observer for lifecycle events and returns a function
// that removes it. Observers need not be comparable, so removal goes
// through the returned function. Calling it more than once is a no-op.
func (t *UnifiedTable) Subscribe(o Observer) (unsubscribe func()) {
	sub := &subscription{o: o}
	t.obsMu.Lock()
	t.observers = append(t.observers, sub)
	t.obsMu.Unlock()

	return func() {
		t.obsMu.Lock()
		defer t.obsMu.Unlock()
		for i, s := range t.observers {
			if s == sub {
				t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of live values.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Clear drops all values regardless of their reference counts.
func (t *UnifiedTable) Clear() {
	// Collect handles first to avoid holding the lock during cleanup
	var handles []Handle
	t.backend.Each(func(h Handle, typeID uint32, value any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		typeID, _ := t.backend.TypeID(h)
		if value, ok := t.backend.Evict(h); ok {
			t.dropped(h, typeID, value)
		}
	}
}

// Close releases all values and stops accepting operations.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

// Backend returns the underlying backend.
func (t *UnifiedTable) Backend() RefBackend {
	return t.backend
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, s := range t.observers {
		s.o.OnResourceEvent(e)
	}
}
