// Package vtable is the runtime half of the callback bridge: the pair type
// that co-locates a vtable pointer with implementer data, and the glue the
// generated code uses to get from a flat self pointer back to that data.
//
// A vtable is a plain struct of function fields declared with a
// structs.HostLayout marker. cmd/vtablegen turns such a declaration into an
// interface plus a generic constructor that fills every field with a
// trampoline for a given implementer type:
//
//	type Counter struct{ n int }
//
//	func (c *Counter) Add(v uint32) uint32 { c.n += int(v); return uint32(c.n) }
//
//	vt := NewCounterVTable[Counter]()     // generated
//	box := vtable.NewBox(vt, Counter{})   // *vtable.Pair[Counter, CounterVTable]
//	raw := vtable.IntoRaw(box)            // flat pointer, first word is vt
//	vt.Add(vtable.Self(raw), 2)           // trampoline -> (*Counter).Add
//	vt.Drop(raw)                          // reclaims the box
//
// # Self pointers
//
// Every slot receives the pair as its first argument, typed Self when the
// method only reads and SelfMut when it may mutate. The trampolines cast it
// back with Data or DataMut; nothing is checked at run time, the caller must
// pass a pointer that really is a Pair of the expected types.
//
// # Ownership
//
// A Box is owned by Go until IntoRaw hands it out. From then on exactly one
// of two things reclaims it: FromRaw on the Go side, or the destructor slot
// (DropGlue) invoked by whoever holds the raw pointer. Doing both is a
// programming error that is not detected.
//
// # Layout
//
// The first word of a Pair is always the vtable pointer. On non-Windows
// builds the foreign side expects one extra word right after the destructor
// slot, which generated structs reserve with a DropPadding field.
package vtable
