package vtable

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

// pinned tracks boxes whose address has been handed out through IntoRaw.
// Holding the pinner keeps the box reachable while only a raw pointer,
// possibly stored as an integer, refers to it.
var pinned = struct {
	sync.Mutex
	m map[unsafe.Pointer]*runtime.Pinner
}{m: make(map[unsafe.Pointer]*runtime.Pinner)}

// IntoRaw relinquishes Go ownership of box and returns its flat pointer.
// The box stays alive until FromRaw or DropGlue is called on the result.
func IntoRaw[D any, V any](box *Pair[D, V]) SelfMut {
	if box == nil {
		return nil
	}
	p := unsafe.Pointer(box)

	pinned.Lock()
	defer pinned.Unlock()
	if _, ok := pinned.m[p]; !ok {
		pinner := new(runtime.Pinner)
		pinner.Pin(box)
		pinned.m[p] = pinner
	}
	return SelfMut(p)
}

// FromRaw reclaims a box previously released with IntoRaw.
// The caller becomes its owner again.
func FromRaw[D any, V any](raw SelfMut) *Pair[D, V] {
	if raw == nil {
		return nil
	}
	p := unsafe.Pointer(raw)

	pinned.Lock()
	if pinner, ok := pinned.m[p]; ok {
		pinner.Unpin()
		delete(pinned.m, p)
	}
	pinned.Unlock()

	return (*Pair[D, V])(p)
}

// Pinned reports how many boxes are currently released through IntoRaw.
func Pinned() int {
	pinned.Lock()
	defer pinned.Unlock()
	return len(pinned.m)
}

// TableOf reads the vtable pointer from the first word of a pair.
func TableOf[V any](self unsafe.Pointer) *V {
	return *(**V)(self)
}

// Data recovers the implementer data from a read-only self pointer.
func Data[D any, V any](self Self) *D {
	return &(*Pair[D, V])(unsafe.Pointer(self)).data
}

// DataMut recovers the implementer data from a mutable self pointer.
func DataMut[D any, V any](self SelfMut) *D {
	return &(*Pair[D, V])(unsafe.Pointer(self)).data
}

// DropGlue is the destructor every generated vtable installs in its Drop
// slot: it reclaims the box from self and destroys it.
func DropGlue[D any, V any](self SelfMut) {
	box := FromRaw[D, V](self)
	if box == nil {
		return
	}
	if ce := Logger().Check(zap.DebugLevel, "drop glue"); ce != nil {
		ce.Write(
			zap.String("data", fmt.Sprintf("%T", box.data)),
			zap.Uintptr("self", uintptr(unsafe.Pointer(self))),
		)
	}
	box.Drop()
}

// UnreachableError is the panic value of a no-op method. A foreign call
// that runs into one cannot be resumed.
type UnreachableError struct {
	Interface string
	Method    string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("vtable: %s.%s called on a no-op implementation", e.Interface, e.Method)
}

// Unreachable logs a call that reached a no-op implementer and returns the
// value generated no-op methods panic with.
func Unreachable(iface, method string) error {
	Logger().Error("no-op implementation invoked",
		zap.String("interface", iface),
		zap.String("method", method),
	)
	return &UnreachableError{Interface: iface, Method: method}
}
