package foreign

import (
	"context"
	"fmt"
	"strconv"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/vtable"
)

// IntoForeign hands box to the foreign library and returns the guest
// address that stands in for it. From then on the guest owns the box: it is
// reclaimed either by the guest calling the destructor slot or by
// FromForeign, never both. A nil box yields a null pointer.
func IntoForeign[D any, V any, PV interface {
	*V
	Described
}](ctx context.Context, l *Library, box *vtable.Pair[D, V]) (Ptr, error) {
	if box == nil {
		return 0, nil
	}
	if l.closed {
		return 0, errors.NotInitialized(errors.PhaseBridge, "foreign library")
	}
	if l.aborted != nil {
		return 0, l.aborted
	}

	vt := box.VTable()
	iface := PV(vt).ForeignInterface()
	image, err := l.image(ctx, unsafe.Pointer(vt), iface)
	if err != nil {
		return 0, err
	}

	header, err := l.Alloc(ctx, HeaderSize)
	if err != nil {
		return 0, err
	}
	h := l.boxes.insert(unsafe.Pointer(box), iface, (*D)(nil))

	mem := l.mod.Memory()
	if !mem.WriteUint32Le(uint32(header), uint32(image)) || !mem.WriteUint32Le(uint32(header)+4, uint32(h)) {
		l.boxes.remove(h)
		err := errors.OutOfBounds(errors.PhaseBridge, []string{iface.Name}, uint32(header), HeaderSize)
		if ferr := l.Free(ctx, header); ferr != nil {
			err.Cause = ferr
		}
		return 0, err
	}

	if ce := Logger().Check(zap.DebugLevel, "pair released to guest"); ce != nil {
		ce.Write(zap.String("interface", iface.Name), zap.Uint32("header", uint32(header)), zap.Uint32("handle", uint32(h)))
	}
	return header, nil
}

// FromForeign takes a box back from the foreign library without running
// its destructor. The guest must no longer use p afterwards.
func FromForeign[D any, V any, PV interface {
	*V
	Described
}](ctx context.Context, l *Library, p Ptr) (*vtable.Pair[D, V], error) {
	if p == 0 {
		return nil, nil
	}
	box, h, err := lookup[D, V, PV](l, p)
	if err != nil {
		return nil, err
	}
	l.boxes.remove(h)
	if err := l.Free(ctx, p); err != nil {
		return box, err
	}
	return box, nil
}

// Borrow gives access to a box the guest still owns.
func Borrow[D any, V any, PV interface {
	*V
	Described
}](l *Library, p Ptr) (*vtable.Pair[D, V], error) {
	if p == 0 {
		return nil, nil
	}
	box, _, err := lookup[D, V, PV](l, p)
	return box, err
}

func lookup[D any, V any, PV interface {
	*V
	Described
}](l *Library, p Ptr) (*vtable.Pair[D, V], Handle, error) {
	if l.closed {
		return nil, 0, errors.NotInitialized(errors.PhaseBridge, "foreign library")
	}
	h, err := l.header(l.mod.Memory(), p)
	if err != nil {
		return nil, 0, err
	}
	e, ok := l.boxes.get(h)
	if !ok {
		return nil, 0, errors.NotFound(errors.PhaseBridge, "host pair", strconv.FormatUint(uint64(h), 10))
	}
	var zero PV
	want := zero.ForeignInterface()
	if e.iface != want {
		return nil, 0, errors.New(errors.PhaseBridge, errors.KindTypeMismatch).
			Detail("pair implements %s, not %s", e.iface.Name, want.Name).
			Build()
	}
	if _, ok := e.key.(*D); !ok {
		return nil, 0, errors.New(errors.PhaseBridge, errors.KindTypeMismatch).
			GoType(fmt.Sprintf("%T", e.key)).
			Detail("pair data is not %T", (*D)(nil)).
			Build()
	}
	return (*vtable.Pair[D, V])(e.box), h, nil
}
