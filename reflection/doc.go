// Package reflection exposes the compiler's program layout as read-only
// views.
//
// Every value here points into memory owned by the component the layout
// came from and is valid only while that component is alive. Accessors are
// nil-safe: lookups that find nothing return nil, and accessors on a nil
// receiver return zero values.
//
// The reflection API is a flat C interface rather than vtables, so each
// accessor resolves its spReflection function from the loaded library on
// first use.
package reflection
