package foreign

import (
	"context"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/errors"
)

// Invocation is one guest call into a host vtable slot. Arguments are
// numbered from 0 and exclude self.
type Invocation struct {
	ctx   context.Context
	lib   *Library
	mem   api.Memory
	stack []uint64
	self  Ptr
	box   unsafe.Pointer
}

// Context is the context of the guest call that led here.
func (inv *Invocation) Context() context.Context { return inv.ctx }

// Library is the library the call came from.
func (inv *Invocation) Library() *Library { return inv.lib }

// Self is the host pair the guest header refers to.
func (inv *Invocation) Self() unsafe.Pointer { return inv.box }

// Header is the guest address of the header standing in for the pair.
func (inv *Invocation) Header() Ptr { return inv.self }

func (inv *Invocation) U32(i int) uint32    { return api.DecodeU32(inv.stack[i+1]) }
func (inv *Invocation) I32(i int) int32     { return api.DecodeI32(inv.stack[i+1]) }
func (inv *Invocation) U64(i int) uint64    { return inv.stack[i+1] }
func (inv *Invocation) I64(i int) int64     { return int64(inv.stack[i+1]) }
func (inv *Invocation) F32(i int) float32   { return api.DecodeF32(inv.stack[i+1]) }
func (inv *Invocation) F64(i int) float64   { return api.DecodeF64(inv.stack[i+1]) }
func (inv *Invocation) Bool(i int) bool     { return api.DecodeU32(inv.stack[i+1]) != 0 }
func (inv *Invocation) Ptr(i int) Ptr       { return Ptr(api.DecodeU32(inv.stack[i+1])) }
func (inv *Invocation) ReturnU32(v uint32)  { inv.stack[0] = api.EncodeU32(v) }
func (inv *Invocation) ReturnI32(v int32)   { inv.stack[0] = api.EncodeI32(v) }
func (inv *Invocation) ReturnU64(v uint64)  { inv.stack[0] = v }
func (inv *Invocation) ReturnI64(v int64)   { inv.stack[0] = api.EncodeI64(v) }
func (inv *Invocation) ReturnF32(v float32) { inv.stack[0] = api.EncodeF32(v) }
func (inv *Invocation) ReturnF64(v float64) { inv.stack[0] = api.EncodeF64(v) }

func (inv *Invocation) ReturnBool(v bool) {
	if v {
		inv.stack[0] = 1
	} else {
		inv.stack[0] = 0
	}
}

// Load reads argument i as a pointer to a plain-data T in guest memory.
// A failure aborts the guest call.
func Load[T any](inv *Invocation, i int) T {
	v, err := Read[T](inv.mem, inv.Ptr(i))
	if err != nil {
		panic(err)
	}
	return v
}

// Store writes v back through argument i.
func Store[T any](inv *Invocation, i int, v *T) {
	if err := Write(inv.mem, inv.Ptr(i), v); err != nil {
		panic(err)
	}
}

// Read decodes a plain-data T from guest memory at p. T must have a fixed
// size under encoding/binary; blank fields are skipped.
func Read[T any](mem api.Memory, p Ptr) (T, error) {
	var v T
	size := binary.Size(&v)
	if size < 0 {
		return v, errors.New(errors.PhaseBridge, errors.KindUnsupported).
			GoType(fmt.Sprintf("%T", v)).
			Detail("type has no fixed layout").
			Build()
	}
	if p == 0 {
		return v, errors.NilPointer(errors.PhaseBridge, nil, fmt.Sprintf("%T", v))
	}
	buf, ok := mem.Read(uint32(p), uint32(size))
	if !ok {
		return v, errors.OutOfBounds(errors.PhaseBridge, nil, uint32(p), uint32(size))
	}
	if _, err := binary.Decode(buf, binary.LittleEndian, &v); err != nil {
		return v, errors.Wrap(errors.PhaseBridge, errors.KindInvalidData, err, "decode")
	}
	return v, nil
}

// Write encodes v into guest memory at p.
func Write[T any](mem api.Memory, p Ptr, v *T) error {
	if p == 0 {
		return errors.NilPointer(errors.PhaseBridge, nil, fmt.Sprintf("%T", *v))
	}
	buf, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		return errors.New(errors.PhaseBridge, errors.KindUnsupported).
			GoType(fmt.Sprintf("%T", *v)).
			Cause(err).
			Build()
	}
	if !mem.Write(uint32(p), buf) {
		return errors.OutOfBounds(errors.PhaseBridge, nil, uint32(p), uint32(len(buf)))
	}
	return nil
}
