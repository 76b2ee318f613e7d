// Package guest assembles the wasm module that stands in for the native
// physics library. It keeps the library's object model (intrusively
// counted shapes, materials and systems, host supplied layer filters and
// listeners) and drives every callback from a step routine, but performs
// no simulation: two live bodies are in contact whenever the layer filters
// let them collide.
package guest

import (
	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/internal/wasm"
)

// MinPages is the smallest memory Build accepts: one system of MaxBodies
// bodies with its pair state and scratch, plus the objects around it.
const MinPages = 2

// Object kinds, stored after the reference count.
const (
	KindShape    = 1
	KindMaterial = 2
	KindSystem   = 3
)

// Shape forms.
const (
	FormSphere = 1
	FormBox    = 2
)

// Common object header.
const (
	offCount = 0
	offKind  = 4
)

// Shape: [8] form, [12..24) dimensions.
// Material: [8] friction, [12] restitution.
const (
	offForm        = 8
	offDims        = 12
	offFriction    = 8
	offRestitution = 12

	shapeSize    = 24
	materialSize = 16
)

// System header. The body interface lives inside the system at
// sysItf and holds the system address.
const (
	sysBPL        = 8
	sysOBPL       = 12
	sysOLP        = 16
	sysContact    = 20
	sysActivation = 24
	sysCount      = 28 // high water mark of used body slots
	sysBodies     = 32
	sysMax        = 36
	sysItf        = 40
	sysState      = 44 // max*max bytes, 1 where the pair (i<j) touched last step
	sysScratch    = 48
	sysFriction   = 52
	sysLive       = 56

	SystemHeader = 64

	// MaxBodies bounds a system so the pair state stays small.
	MaxBodies = 256
)

// Body record. A zero shape marks a free slot.
const (
	bodyShape  = 0
	bodyLayer  = 4
	bodyActive = 8
	bodyUser   = 16

	BodySize = 32
)

// Scratch area passed to contact callbacks.
const (
	ScratchBaseOffset = 0
	ScratchResult     = 16   // CollideShapeResult
	ScratchManifold   = 1136 // ContactManifold
	ScratchSettings   = 3264 // ContactSettings
	ScratchPair       = 3328 // SubShapeIDPair
	ScratchSize       = 3344

	resultBody2     = 60
	manifoldNormalY = 20
	settingsSensor  = 24
)

// Interfaces are the host interfaces the library calls. All are required.
type Interfaces struct {
	BroadPhaseLayer         *foreign.Interface
	ObjectVsBroadPhaseLayer *foreign.Interface
	ObjectLayerPair         *foreign.Interface
	BodyActivation          *foreign.Interface
	Contact                 *foreign.Interface
}

func (in Interfaces) list() []*foreign.Interface {
	return []*foreign.Interface{in.BroadPhaseLayer, in.ObjectVsBroadPhaseLayer, in.ObjectLayerPair, in.BodyActivation, in.Contact}
}

var (
	i32 = wasm.I32
	i64 = wasm.I64
	f32 = wasm.F32
)

func types(ts ...wasm.ValType) []wasm.ValType { return ts }

type builder struct {
	*foreign.Guest
	in Interfaces
}

// call names the dispatcher export of a slot.
func call(iface *foreign.Interface, slot string) string {
	return "call." + iface.Name + "." + slot
}

// Build assembles the module with pages of linear memory. Open it with
// the same interfaces in the same order.
func Build(pages uint32, in Interfaces) ([]byte, error) {
	for _, iface := range in.list() {
		if iface == nil {
			return nil, errors.NilPointer(errors.PhaseLoad, []string{"guest"}, "foreign.Interface")
		}
	}
	if pages < MinPages {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Value(pages).
			Detail("guest needs at least %d pages", MinPages).
			Build()
	}
	b := &builder{Guest: foreign.NewGuest(pages, in.list()...), in: in}
	b.refcount()
	b.shapes()
	b.materials()
	b.systems()
	b.bodies()
	b.step()
	return b.Encode()
}

// Order lists the interfaces in the order Build and foreign.Open expect.
func Order(in Interfaces) []*foreign.Interface { return in.list() }

// forEach emits for i := from; i < n; i++ { body }. n is re-evaluated
// every iteration.
func forEach(f *wasm.Func, i uint32, from func(*wasm.Func), n func(*wasm.Func), body func(*wasm.Func)) {
	from(f)
	f.LocalSet(i)
	f.Block().Loop()
	f.LocalGet(i)
	n(f)
	f.I32GeU().BrIf(1)
	body(f)
	f.LocalGet(i).I32Const(1).I32Add().LocalSet(i).Br(0)
	f.End().End()
}

func zero(f *wasm.Func) { f.I32Const(0) }

// record leaves the address of body id's record on the stack.
func record(f *wasm.Func, sys, id uint32) {
	f.LocalGet(sys).I32Load(sysBodies).LocalGet(id).I32Const(BodySize).I32Mul().I32Add()
}

func (b *builder) refcount() {
	b.Func("ref_add", types(i32), types(i32)).
		LocalGet(0).LocalGet(0).I32Load(offCount).I32Const(1).I32Add().I32Store(offCount).
		LocalGet(0).
		Export()

	b.Func("ref_count", types(i32), types(i32)).
		LocalGet(0).I32Load(offCount).
		Export()

	b.Func("ref_release", types(i32), nil).
		LocalGet(0).LocalGet(0).I32Load(offCount).I32Const(1).I32Sub().I32Store(offCount).
		LocalGet(0).I32Load(offCount).
		If().Return().End().
		LocalGet(0).I32Load(offKind).I32Const(KindSystem).I32Eq().
		If().LocalGet(0).Call("system_destroy").End().
		LocalGet(0).Call("free").
		Export()
}

// object allocates size bytes with a count of one, or returns null from the
// enclosing function.
func object(f *wasm.Func, p uint32, size int32, kind int32) {
	f.I32Const(size).Call("malloc").LocalTee(p).I32Eqz().
		If().I32Const(0).Return().End().
		LocalGet(p).I32Const(1).I32Store(offCount).
		LocalGet(p).I32Const(kind).I32Store(offKind)
}

// positive returns null from the enclosing function unless local x > 0.
// NaN fails the check.
func positive(f *wasm.Func, x uint32) {
	f.LocalGet(x).F32Const(0).F32Gt().I32Eqz().
		If().I32Const(0).Return().End()
}

func (b *builder) shapes() {
	sphere := b.Func("shape_sphere", types(f32), types(i32))
	p := sphere.Local(i32)
	positive(sphere, 0)
	object(sphere, p, shapeSize, KindShape)
	sphere.
		LocalGet(p).I32Const(FormSphere).I32Store(offForm).
		LocalGet(p).LocalGet(0).F32Store(offDims).
		LocalGet(p).
		Export()

	box := b.Func("shape_box", types(f32, f32, f32), types(i32))
	p = box.Local(i32)
	for x := range uint32(3) {
		positive(box, x)
	}
	object(box, p, shapeSize, KindShape)
	box.LocalGet(p).I32Const(FormBox).I32Store(offForm)
	for x := range uint32(3) {
		box.LocalGet(p).LocalGet(x).F32Store(offDims + 4*x)
	}
	box.LocalGet(p).Export()

	b.Func("shape_form", types(i32), types(i32)).
		LocalGet(0).I32Load(offForm).
		Export()
}

func (b *builder) materials() {
	f := b.Func("material_create", types(f32, f32), types(i32))
	p := f.Local(i32)
	// friction and restitution must not be negative
	for x := range uint32(2) {
		f.F32Const(0).LocalGet(x).F32Gt().
			If().I32Const(0).Return().End()
	}
	object(f, p, materialSize, KindMaterial)
	f.
		LocalGet(p).LocalGet(0).F32Store(offFriction).
		LocalGet(p).LocalGet(1).F32Store(offRestitution).
		LocalGet(p).
		Export()

	b.Func("material_friction", types(i32), types(f32)).
		LocalGet(0).F32Load(offFriction).
		Export()
}

func (b *builder) systems() {
	// system_create(bpl, obpl, olp, max, friction) -> sys
	f := b.Func("system_create", types(i32, i32, i32, i32, f32), types(i32))
	p := f.Local(i32)
	scr := f.Local(i32)
	f.
		LocalGet(0).I32Eqz().LocalGet(1).I32Eqz().I32Or().
		LocalGet(2).I32Eqz().I32Or().LocalGet(3).I32Eqz().I32Or().
		If().I32Const(0).Return().End().
		LocalGet(3).I32Const(MaxBodies).I32GtU().
		If().I32Const(0).Return().End().
		// scratch follows the bodies and the pair state, 8-aligned
		LocalGet(3).LocalGet(3).I32Mul().
		LocalGet(3).I32Const(BodySize).I32Mul().I32Add().
		I32Const(SystemHeader + 7).I32Add().I32Const(-8).I32And().LocalSet(scr)
	f.LocalGet(scr).I32Const(ScratchSize).I32Add().Call("malloc").LocalTee(p).I32Eqz().
		If().I32Const(0).Return().End().
		LocalGet(p).I32Const(1).I32Store(offCount).
		LocalGet(p).I32Const(KindSystem).I32Store(offKind).
		LocalGet(p).LocalGet(0).I32Store(sysBPL).
		LocalGet(p).LocalGet(1).I32Store(sysOBPL).
		LocalGet(p).LocalGet(2).I32Store(sysOLP).
		LocalGet(p).LocalGet(3).I32Store(sysMax).
		LocalGet(p).LocalGet(p).I32Const(SystemHeader).I32Add().I32Store(sysBodies).
		LocalGet(p).LocalGet(p).I32Store(sysItf).
		LocalGet(p).LocalGet(p).I32Const(SystemHeader).I32Add().LocalGet(3).I32Const(BodySize).I32Mul().I32Add().I32Store(sysState).
		LocalGet(p).LocalGet(p).LocalGet(scr).I32Add().I32Store(sysScratch).
		LocalGet(p).LocalGet(4).F32Store(sysFriction).
		LocalGet(p).
		Export()

	// system_destroy releases what the system holds: body shapes, the
	// three filters and any listener still installed.
	d := b.Func("system_destroy", types(i32), nil)
	i := d.Local(i32)
	rec := d.Local(i32)
	forEach(d, i, zero, func(f *wasm.Func) { f.LocalGet(0).I32Load(sysCount) }, func(f *wasm.Func) {
		record(f, 0, i)
		f.LocalTee(rec).I32Load(bodyShape).
			If().LocalGet(rec).I32Load(bodyShape).Call("ref_release").End()
	})
	for _, h := range []struct {
		off   uint32
		iface *foreign.Interface
	}{
		{sysBPL, b.in.BroadPhaseLayer},
		{sysOBPL, b.in.ObjectVsBroadPhaseLayer},
		{sysOLP, b.in.ObjectLayerPair},
		{sysContact, b.in.Contact},
		{sysActivation, b.in.BodyActivation},
	} {
		d.LocalGet(0).I32Load(h.off).
			If().LocalGet(0).I32Load(h.off).Call(call(h.iface, "Drop")).End()
	}

	for _, field := range []struct {
		name string
		off  uint32
	}{
		{"contact", sysContact},
		{"activation", sysActivation},
	} {
		b.Func("system_set_"+field.name, types(i32, i32), nil).
			LocalGet(0).LocalGet(1).I32Store(field.off).
			Export()
		b.Func("system_"+field.name, types(i32), types(i32)).
			LocalGet(0).I32Load(field.off).
			Export()
	}

	b.Func("system_body_interface", types(i32), types(i32)).
		LocalGet(0).I32Const(sysItf).I32Add().
		Export()
	b.Func("system_bodies", types(i32), types(i32)).
		LocalGet(0).I32Load(sysLive).
		Export()
	b.Func("system_max_bodies", types(i32), types(i32)).
		LocalGet(0).I32Load(sysMax).
		Export()
	b.Func("system_filters", types(i32), types(i32, i32, i32)).
		LocalGet(0).I32Load(sysBPL).
		LocalGet(0).I32Load(sysOBPL).
		LocalGet(0).I32Load(sysOLP).
		Export()

	// state_addr(sys, a, b) is the pair state byte of bodies a and b
	s := b.Func("state_addr", types(i32, i32, i32), types(i32))
	s.
		LocalGet(0).I32Load(sysState).
		LocalGet(1).LocalGet(2).LocalGet(1).LocalGet(2).I32LtU().Select().
		LocalGet(0).I32Load(sysMax).I32Mul().
		LocalGet(2).LocalGet(1).LocalGet(1).LocalGet(2).I32LtU().Select().
		I32Add().I32Add()

	// contact_removed(sys, a, b) reports the end of a contact
	r := b.Func("contact_removed", types(i32, i32, i32), nil)
	pr := r.Local(i32)
	r.
		LocalGet(0).I32Load(sysContact).I32Eqz().
		If().Return().End().
		LocalGet(0).I32Load(sysScratch).I32Const(ScratchPair).I32Add().LocalSet(pr).
		LocalGet(pr).LocalGet(1).I32Store(0).
		LocalGet(pr).I32Const(0).I32Store(4).
		LocalGet(pr).LocalGet(2).I32Store(8).
		LocalGet(pr).I32Const(0).I32Store(12).
		LocalGet(0).I32Load(sysContact).LocalGet(pr).Call(call(b.in.Contact, "OnContactRemoved"))
}

func (b *builder) bodies() {
	bpl := b.in.BroadPhaseLayer
	act := b.in.BodyActivation

	// body_create(itf, shape, layer, user) -> id, or -1
	f := b.Func("body_create", types(i32, i32, i32, i64), types(i32))
	sys := f.Local(i32)
	id := f.Local(i32)
	rec := f.Local(i32)
	f.
		LocalGet(0).I32Load(0).LocalSet(sys).
		LocalGet(1).I32Eqz().
		If().I32Const(-1).Return().End().
		// the layer must map onto a known broad phase layer
		LocalGet(sys).I32Load(sysBPL).LocalGet(2).Call(call(bpl, "GetBroadPhaseLayer")).
		LocalGet(sys).I32Load(sysBPL).Call(call(bpl, "GetNumBroadPhaseLayers")).
		I32GeU().
		If().I32Const(-1).Return().End().
		// first free slot, or the high water mark
		I32Const(0).LocalSet(id).
		Block().Loop().
		LocalGet(id).LocalGet(sys).I32Load(sysCount).I32GeU().BrIf(1)
	record(f, sys, id)
	f.I32Load(bodyShape).I32Eqz().BrIf(1).
		LocalGet(id).I32Const(1).I32Add().LocalSet(id).Br(0).
		End().End().
		LocalGet(id).LocalGet(sys).I32Load(sysCount).I32Eq().
		If().
		LocalGet(id).LocalGet(sys).I32Load(sysMax).I32GeU().
		If().I32Const(-1).Return().End().
		LocalGet(sys).LocalGet(id).I32Const(1).I32Add().I32Store(sysCount).
		End()
	record(f, sys, id)
	f.LocalSet(rec).
		LocalGet(rec).LocalGet(1).Call("ref_add").I32Store(bodyShape).
		LocalGet(rec).LocalGet(2).I32Store(bodyLayer).
		LocalGet(rec).I32Const(1).I32Store(bodyActive).
		LocalGet(rec).LocalGet(3).I64Store(bodyUser).
		LocalGet(sys).LocalGet(sys).I32Load(sysLive).I32Const(1).I32Add().I32Store(sysLive).
		LocalGet(sys).I32Load(sysActivation).
		If().
		LocalGet(sys).I32Load(sysActivation).LocalGet(id).LocalGet(3).Call(call(act, "OnBodyActivated")).
		End().
		LocalGet(id).
		Export()

	// body_remove(itf, id) -> 1 when a body was removed
	rm := b.Func("body_remove", types(i32, i32), types(i32))
	sys = rm.Local(i32)
	rec = rm.Local(i32)
	j := rm.Local(i32)
	rm.
		LocalGet(0).I32Load(0).LocalSet(sys).
		LocalGet(1).LocalGet(sys).I32Load(sysCount).I32GeU().
		If().I32Const(0).Return().End()
	record(rm, sys, 1)
	rm.LocalTee(rec).I32Load(bodyShape).I32Eqz().
		If().I32Const(0).Return().End()
	// contacts with the body end now
	forEach(rm, j, zero, func(f *wasm.Func) { f.LocalGet(sys).I32Load(sysCount) }, func(f *wasm.Func) {
		f.LocalGet(j).LocalGet(1).I32Ne().
			If().
			LocalGet(sys).LocalGet(1).LocalGet(j).Call("state_addr").I32Load8U(0).
			If().
			LocalGet(sys).LocalGet(1).LocalGet(j).Call("state_addr").I32Const(0).I32Store8(0).
			LocalGet(sys).LocalGet(1).LocalGet(j).Call("contact_removed").
			End().
			End()
	})
	rm.
		LocalGet(rec).I32Load(bodyActive).LocalGet(sys).I32Load(sysActivation).I32Const(0).I32Ne().I32And().
		If().
		LocalGet(sys).I32Load(sysActivation).LocalGet(1).LocalGet(rec).I64Load(bodyUser).Call(call(act, "OnBodyDeactivated")).
		End().
		LocalGet(rec).I32Load(bodyShape).Call("ref_release").
		LocalGet(rec).I32Const(0).I32Store(bodyShape).
		LocalGet(rec).I32Const(0).I32Store(bodyActive).
		LocalGet(sys).LocalGet(sys).I32Load(sysLive).I32Const(1).I32Sub().I32Store(sysLive).
		I32Const(1).
		Export()

	// body_layer(itf, id) -> layer, or -1 when id names no body
	l := b.Func("body_layer", types(i32, i32), types(i32))
	sys = l.Local(i32)
	rec = l.Local(i32)
	l.
		LocalGet(0).I32Load(0).LocalSet(sys).
		LocalGet(1).LocalGet(sys).I32Load(sysCount).I32GeU().
		If().I32Const(-1).Return().End()
	record(l, sys, 1)
	l.LocalTee(rec).I32Load(bodyShape).I32Eqz().
		If().I32Const(-1).Return().End().
		LocalGet(rec).I32Load(bodyLayer).
		Export()

	// body_shape(itf, id) -> shape, or 0; the caller takes a new reference
	sh := b.Func("body_shape", types(i32, i32), types(i32))
	sys = sh.Local(i32)
	sh.
		LocalGet(0).I32Load(0).LocalSet(sys).
		LocalGet(1).LocalGet(sys).I32Load(sysCount).I32GeU().
		If().I32Const(0).Return().End()
	record(sh, sys, 1)
	sh.I32Load(bodyShape).
		Export()
}

func (b *builder) step() {
	bpl, obpl, olp, cl := b.in.BroadPhaseLayer, b.in.ObjectVsBroadPhaseLayer, b.in.ObjectLayerPair, b.in.Contact

	// step(sys, delta) -> number of non-sensor contacts
	f := b.Func("step", types(i32, f32), types(i32))
	i := f.Local(i32)
	j := f.Local(i32)
	ri := f.Local(i32)
	rj := f.Local(i32)
	touching := f.Local(i32)
	st := f.Local(i32)
	scr := f.Local(i32)
	n := f.Local(i32)

	f.LocalGet(0).I32Load(sysScratch).LocalSet(scr)
	count := func(f *wasm.Func) { f.LocalGet(0).I32Load(sysCount) }
	next := func(f *wasm.Func) { f.LocalGet(i).I32Const(1).I32Add() }

	forEach(f, i, zero, count, func(f *wasm.Func) {
		forEach(f, j, next, count, func(f *wasm.Func) {
			record(f, 0, i)
			f.LocalSet(ri)
			record(f, 0, j)
			f.LocalSet(rj)

			// touching when both bodies are live and both filters agree
			f.I32Const(0).LocalSet(touching).
				LocalGet(ri).I32Load(bodyShape).I32Eqz().LocalGet(rj).I32Load(bodyShape).I32Eqz().I32Or().I32Eqz().
				If().
				LocalGet(0).I32Load(sysOBPL).
				LocalGet(rj).I32Load(bodyLayer).
				LocalGet(0).I32Load(sysBPL).LocalGet(ri).I32Load(bodyLayer).Call(call(bpl, "GetBroadPhaseLayer")).
				Call(call(obpl, "ShouldCollide")).
				If().
				LocalGet(0).I32Load(sysOLP).LocalGet(ri).I32Load(bodyLayer).LocalGet(rj).I32Load(bodyLayer).
				Call(call(olp, "ShouldCollide")).LocalSet(touching).
				End().
				End()

			f.LocalGet(0).LocalGet(i).LocalGet(j).Call("state_addr").LocalSet(st)

			// a new contact must pass validation
			f.LocalGet(touching).LocalGet(st).I32Load8U(0).I32Eqz().I32And().
				LocalGet(0).I32Load(sysContact).I32Const(0).I32Ne().I32And().
				If().
				LocalGet(scr).LocalGet(j).I32Store(ScratchResult + resultBody2).
				LocalGet(0).I32Load(sysContact).LocalGet(i).LocalGet(j).
				LocalGet(scr).I32Const(ScratchBaseOffset).I32Add().
				LocalGet(scr).I32Const(ScratchResult).I32Add().
				Call(call(cl, "OnContactValidate")).
				I32Const(2).I32GeU().
				If().I32Const(0).LocalSet(touching).End().
				End()

			f.LocalGet(touching).
				If().
				LocalGet(0).I32Load(sysContact).
				If()
			b.settings(f, scr)
			f.LocalGet(st).I32Load8U(0).If()
			b.contact(f, i, j, scr, call(cl, "OnContactPersisted"))
			f.Else()
			b.contact(f, i, j, scr, call(cl, "OnContactAdded"))
			f.End().
				LocalGet(scr).I32Load8U(ScratchSettings + settingsSensor).I32Eqz().
				If().LocalGet(n).I32Const(1).I32Add().LocalSet(n).End().
				Else().
				LocalGet(n).I32Const(1).I32Add().LocalSet(n).
				End().
				LocalGet(st).I32Const(1).I32Store8(0).
				Else().
				LocalGet(st).I32Load8U(0).
				If().
				LocalGet(st).I32Const(0).I32Store8(0).
				LocalGet(0).LocalGet(i).LocalGet(j).Call("contact_removed").
				End().
				End()
		})
	})
	f.LocalGet(n).Export()
}

// contact calls an added or persisted callback with the scratch manifold
// and settings.
func (b *builder) contact(f *wasm.Func, i, j, scr uint32, fn string) {
	f.LocalGet(0).I32Load(sysContact).LocalGet(i).LocalGet(j).
		LocalGet(scr).I32Const(ScratchManifold).I32Add().
		LocalGet(scr).I32Const(ScratchSettings).I32Add().
		Call(fn)
}

// settings resets the contact settings and manifold the listener sees.
func (b *builder) settings(f *wasm.Func, scr uint32) {
	s := uint32(ScratchSettings)
	f.LocalGet(scr).LocalGet(0).F32Load(sysFriction).F32Store(s).
		LocalGet(scr).F32Const(0).F32Store(s + 4)
	for k := range uint32(4) {
		f.LocalGet(scr).F32Const(1).F32Store(s + 8 + 4*k)
	}
	f.LocalGet(scr).I32Const(0).I32Store8(s + settingsSensor).
		LocalGet(scr).F32Const(1).F32Store(ScratchManifold + manifoldNormalY)
}
