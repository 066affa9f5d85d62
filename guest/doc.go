// Package guest moves primitive arrays across the WebAssembly boundary.
//
// A Memory wraps the linear memory of a minimal wazero module. Lower copies a
// slice into it using the canonical ABI layout of the element's WIT type and
// returns a List (kind, pointer, length); Lift copies it back:
//
//	m, err := guest.NewMemory(ctx)
//	if err != nil {
//	    return err
//	}
//	defer m.Close(ctx)
//
//	l, err := guest.Lower(m, []int32{1, 2, 3}) // list<s32> at l.Ptr
//	back, err := guest.Lift[int32](m, l)
//
// Converters exposes the same operations as descriptors so an engine can
// convert []T <-> List like any other pair. Floating point values are stored
// bit for bit, including NaN payloads.
//
// Memory is a bump allocator guarded by a mutex; Reset releases every list at
// once.
package guest
