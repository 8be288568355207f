package resource

// Typed is a type-safe view over a UnifiedTable restricted to one type ID.
type Typed[T any] struct {
	table  *UnifiedTable
	typeID uint32
}

// NewTyped returns a view of table that stores and returns values of type T
// under typeID.
func NewTyped[T any](table *UnifiedTable, typeID uint32) *Typed[T] {
	return &Typed[T]{table: table, typeID: typeID}
}

// Insert adds a value with one reference and returns its handle.
func (t *Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.typeID, value)
}

// Get retrieves a value by handle. It fails for handles of other types.
func (t *Typed[T]) Get(handle Handle) (T, bool) {
	var zero T
	value, ok := t.table.GetTyped(handle, t.typeID)
	if !ok {
		return zero, false
	}
	v, ok := value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Retain adds a reference to a handle of this type.
func (t *Typed[T]) Retain(handle Handle) (uint32, bool) {
	if _, ok := t.table.GetTyped(handle, t.typeID); !ok {
		return 0, false
	}
	return t.table.Retain(handle)
}

// Release drops a reference and returns the remaining count.
func (t *Typed[T]) Release(handle Handle) (uint32, bool) {
	if _, ok := t.table.GetTyped(handle, t.typeID); !ok {
		return 0, false
	}
	return t.table.Release(handle)
}

// Len returns the number of live values of this type.
func (t *Typed[T]) Len() int {
	n := 0
	t.table.backend.Each(func(_ Handle, typeID uint32, _ any) bool {
		if typeID == t.typeID {
			n++
		}
		return true
	})
	return n
}

// Each iterates over all live values of this type.
func (t *Typed[T]) Each(fn func(Handle, T) bool) {
	t.table.backend.Each(func(h Handle, typeID uint32, value any) bool {
		if typeID != t.typeID {
			return true
		}
		v, ok := value.(T)
		if !ok {
			return true
		}
		return fn(h, v)
	})
}

// Table returns the underlying unified table.
func (t *Typed[T]) Table() *UnifiedTable {
	return t.table
}

var _ TypedTable[any] = (*Typed[any])(nil)
