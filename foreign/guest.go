package foreign

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/internal/wasm"
)

// HeapBase is where a guest's allocator starts. Memory below it is left to
// the guest for fixed scratch structures.
const HeapBase = 1024

// Guest is a module under construction that already speaks the bridge
// protocol:
//
//   - every slot of every interface imported from HostModule and placed in
//     the function table in Layout order
//   - a bump allocator exported as malloc, with free counting releases
//     (frees reports the count)
//   - one "call.<Interface>.<Slot>" export per slot that loads the image
//     from its first argument and dispatches through the table
//
// Foreign library stand-ins add their own functions on top.
type Guest struct {
	*wasm.Module
	Bindings []Binding

	heap  uint32
	frees uint32
}

// NewGuest starts a guest with pages of linear memory.
func NewGuest(pages uint32, ifaces ...*Interface) *Guest {
	m := wasm.NewModule()
	g := &Guest{Module: m, Bindings: Layout(ifaces...)}

	names := make([]string, len(g.Bindings))
	for i, b := range g.Bindings {
		names[i] = b.Import()
		m.ImportFunc(HostModule, b.Import(), b.Import(), ValTypes(b.Params()), ValTypes(b.Results()))
	}

	m.Memory(pages, nil)
	m.ExportMemory("memory")
	m.Table(uint32(len(g.Bindings) + 1))
	if len(names) > 0 {
		m.Elem(1, names...)
	}

	g.heap = m.Global(wasm.I32, true, HeapBase)
	g.frees = m.Global(wasm.I32, true, 0)

	g.allocator()
	for _, b := range g.Bindings {
		g.dispatcher(b)
	}
	return g
}

// Binding finds the placement of a slot.
func (g *Guest) Binding(iface, slot string) (Binding, bool) {
	for _, b := range g.Bindings {
		if b.Interface.Name == iface && b.Interface.Slots[b.Slot].Name == slot {
			return b, true
		}
	}
	return Binding{}, false
}

func (g *Guest) allocator() {
	i32 := []wasm.ValType{wasm.I32}

	malloc := g.Func("malloc", i32, i32)
	p := malloc.Local(wasm.I32)
	malloc.
		// size larger than all of memory
		LocalGet(0).MemorySize().I32Const(16).I32Shl().I32GtU().
		If().I32Const(0).Return().End().
		// p = (heap + 7) &^ 7
		GlobalGet(g.heap).I32Const(7).I32Add().I32Const(-8).I32And().LocalSet(p).
		LocalGet(p).LocalGet(0).I32Add().MemorySize().I32Const(16).I32Shl().I32GtU().
		If().I32Const(0).Return().End().
		LocalGet(p).LocalGet(0).I32Add().GlobalSet(g.heap).
		LocalGet(p).
		Export()

	g.Func("free", i32, nil).
		LocalGet(0).I32Eqz().
		If().Return().End().
		GlobalGet(g.frees).I32Const(1).I32Add().GlobalSet(g.frees).
		Export()

	g.Func("frees", nil, i32).GlobalGet(g.frees).Export()
}

func (g *Guest) dispatcher(b Binding) {
	params := ValTypes(b.Params())
	results := ValTypes(b.Results())

	f := g.Func(b.Export(), params, results)
	for i := range params {
		f.LocalGet(uint32(i))
	}
	f.LocalGet(0).I32Load(0).I32Load(b.Interface.Offset(b.Slot)).
		CallIndirect(params, results).
		Export()
}

// ValTypes converts engine value types to the assembler's. Both use the
// binary encoding, so the conversion is a copy.
func ValTypes(types []api.ValueType) []wasm.ValType {
	out := make([]wasm.ValType, len(types))
	for i, t := range types {
		out[i] = wasm.ValType(t)
	}
	return out
}
