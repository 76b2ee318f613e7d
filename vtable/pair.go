package vtable

import "unsafe"

// Self is the read-only receiver every non-mutating slot takes first.
type Self unsafe.Pointer

// SelfMut is the receiver of mutating slots and of the destructor.
type SelfMut unsafe.Pointer

// Dropper is optionally implemented by implementer data that needs cleanup
// when its pair is destroyed.
type Dropper interface {
	Drop()
}

// Pair co-locates a pointer to a static vtable with the implementer data.
// The vtable pointer is the first word, so a *Pair can be handed to code
// that only knows about the vtable.
type Pair[D any, V any] struct {
	vtable *V
	data   D
}

// Box is a heap-allocated Pair with a stable address.
type Box[D any, V any] = *Pair[D, V]

// NewPair builds a pair by value.
func NewPair[D any, V any](vt *V, data D) Pair[D, V] {
	return Pair[D, V]{vtable: vt, data: data}
}

// NewBox builds a heap-allocated pair.
func NewBox[D any, V any](vt *V, data D) *Pair[D, V] {
	return &Pair[D, V]{vtable: vt, data: data}
}

// VTable returns the vtable the pair was built with. There is no setter.
func (p *Pair[D, V]) VTable() *V {
	return p.vtable
}

// Data gives direct access to the implementer data.
func (p *Pair[D, V]) Data() *D {
	return &p.data
}

// Drop runs the data's Dropper hook, if any, and clears the data.
// The vtable pointer is kept.
func (p *Pair[D, V]) Drop() {
	if d, ok := any(&p.data).(Dropper); ok {
		d.Drop()
	}
	var zero D
	p.data = zero
}
