package foreign

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/vtable"
)

// HostModule is the import module under which trampolines are exposed to
// the guest.
const HostModule = "vtable"

// HeaderSize is the size of the guest-side header standing in for a host
// pair: the address of the vtable image followed by the registry handle.
const HeaderSize = 8

// Ptr is an address in the foreign library's linear memory. Zero is null.
type Ptr uint32

// Described is implemented by generated vtable structs.
type Described interface {
	ForeignInterface() *Interface
}

// Interface describes one vtable as seen by the foreign library.
type Interface struct {
	Name  string
	Slots []Slot
}

// Slot describes one vtable entry. Params and Results exclude the self
// pointer, which is always an i32 and always first.
type Slot struct {
	Name       string
	Mutable    bool
	Destructor bool
	Params     []api.ValueType
	Results    []api.ValueType

	// Invoke forwards a guest call to the host implementer through the
	// Go vtable of the pair behind inv.
	Invoke func(inv *Invocation)
}

// Lookup returns the index of the named slot, or -1.
func (i *Interface) Lookup(name string) int {
	for k := range i.Slots {
		if i.Slots[k].Name == name {
			return k
		}
	}
	return -1
}

// Destructor returns the index of the destructor slot, or -1.
func (i *Interface) Destructor() int {
	for k := range i.Slots {
		if i.Slots[k].Destructor {
			return k
		}
	}
	return -1
}

// Offset is the byte offset of slot k in a guest vtable image. Slots after
// the destructor are shifted by the platform's drop padding.
func (i *Interface) Offset(k int) uint32 {
	words := k
	if d := i.Destructor(); d >= 0 && k > d {
		words += vtable.DropPaddingWords
	}
	return uint32(4 * words)
}

// ImageSize is the byte size of a guest vtable image.
func (i *Interface) ImageSize() uint32 {
	if len(i.Slots) == 0 {
		return 0
	}
	return i.Offset(len(i.Slots)-1) + 4
}

// Binding places one slot in the guest function table.
type Binding struct {
	Interface *Interface
	Slot      int
	Table     uint32
}

// Import is the name the trampoline is imported under.
func (b Binding) Import() string {
	return b.Interface.Name + "." + b.Interface.Slots[b.Slot].Name
}

// Export is the name of the guest function that dispatches through the
// vtable image of its first argument.
func (b Binding) Export() string {
	return "call." + b.Import()
}

// Params is the full wasm parameter list including self.
func (b Binding) Params() []api.ValueType {
	s := b.Interface.Slots[b.Slot]
	params := make([]api.ValueType, 0, len(s.Params)+1)
	params = append(params, api.ValueTypeI32)
	return append(params, s.Params...)
}

// Results is the wasm result list.
func (b Binding) Results() []api.ValueType {
	return b.Interface.Slots[b.Slot].Results
}

// Layout assigns table indices to every slot of every interface, in order,
// starting at 1 so index 0 stays the null function pointer.
func Layout(ifaces ...*Interface) []Binding {
	var out []Binding
	next := uint32(1)
	for _, iface := range ifaces {
		for k := range iface.Slots {
			out = append(out, Binding{Interface: iface, Slot: k, Table: next})
			next++
		}
	}
	return out
}
