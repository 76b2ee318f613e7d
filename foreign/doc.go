// Package foreign hosts a foreign library and lets it call back into Go
// through vtables.
//
// The library is a WebAssembly guest executed by wazero. Every slot of every
// vtable interface is exposed to it as a host function imported from the
// "vtable" module and placed in the guest function table. Handing a pair to
// the guest with IntoForeign writes an eight byte header into guest memory:
//
//	+0  address of the vtable image (one u32 table index per slot)
//	+4  handle of the pair in the library's registry
//
// The guest treats the header address as an object pointer and dispatches
// with call_indirect through the image, exactly as native code would
// dispatch through the first word of a C++ object. Images are built once per
// Go vtable and follow the same padding rule as the Go struct: one empty
// word after Drop except on Windows.
//
// Ownership of a pair passed through IntoForeign moves to the guest. The
// guest gives it back either by calling the Drop slot, which removes it from
// the registry and runs the Go drop glue, or the host takes it back with
// FromForeign. Doing both is a programmer error and is not detected.
//
// Guests are usually assembled with NewGuest, which lays out the imports,
// table, allocator and dispatch exports the protocol expects:
//
//	g := foreign.NewGuest(1, (*CounterVTable)(nil).ForeignInterface())
//	bin, err := g.Encode()
//	lib, err := foreign.Open(ctx, foreign.DefaultConfig(), bin, iface)
//	p, err := foreign.IntoForeign(ctx, lib, NewTallyBox(tally{}))
//	res, err := lib.Dispatch(ctx, p, "Counter", "Add", 5)
package foreign
