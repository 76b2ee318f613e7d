package wasm

import (
	"github.com/wippyai/joltbridge/errors"
)

// piece is either raw instruction bytes or a call resolved at encode time.
type piece struct {
	raw  []byte
	call string
}

// Func builds one function body. Instruction methods return the receiver
// so sequences can be chained.
type Func struct {
	m       *Module
	name    string
	typeIdx uint32
	params  []ValType
	locals  []ValType
	pieces  []piece
	cur     writer
	depth   int
}

// Local declares a local and returns its index.
func (f *Func) Local(t ValType) uint32 {
	f.locals = append(f.locals, t)
	return uint32(len(f.params) + len(f.locals) - 1)
}

// Export exports the function under its own name.
func (f *Func) Export() *Func {
	f.m.Export(f.name, f.name)
	return f
}

func (f *Func) op(b ...byte) *Func {
	f.cur.WriteBytes(b)
	return f
}

func (f *Func) memarg(op byte, align, offset uint32) *Func {
	f.cur.Byte(op)
	f.cur.WriteU32(align)
	f.cur.WriteU32(offset)
	return f
}

func (f *Func) flush() {
	if f.cur.Len() > 0 {
		raw := make([]byte, f.cur.Len())
		copy(raw, f.cur.Bytes())
		f.pieces = append(f.pieces, piece{raw: raw})
		f.cur.buf.Reset()
	}
}

// Control flow

func (f *Func) Unreachable() *Func { return f.op(opUnreachable) }
func (f *Func) Nop() *Func         { return f.op(opNop) }
func (f *Func) Return() *Func      { return f.op(opReturn) }
func (f *Func) Drop() *Func        { return f.op(opDrop) }
func (f *Func) Select() *Func      { return f.op(opSelect) }

// Block opens a block without results.
func (f *Func) Block() *Func {
	f.depth++
	return f.op(opBlock, blockTypeVoid)
}

// Loop opens a loop without results.
func (f *Func) Loop() *Func {
	f.depth++
	return f.op(opLoop, blockTypeVoid)
}

// If opens an if without results.
func (f *Func) If() *Func {
	f.depth++
	return f.op(opIf, blockTypeVoid)
}

// IfResult opens an if producing one value of type t.
func (f *Func) IfResult(t ValType) *Func {
	f.depth++
	return f.op(opIf, byte(t))
}

func (f *Func) Else() *Func { return f.op(opElse) }

// End closes the innermost block, loop or if.
func (f *Func) End() *Func {
	f.depth--
	return f.op(opEnd)
}

func (f *Func) Br(depth uint32) *Func {
	f.cur.Byte(opBr)
	f.cur.WriteU32(depth)
	return f
}

func (f *Func) BrIf(depth uint32) *Func {
	f.cur.Byte(opBrIf)
	f.cur.WriteU32(depth)
	return f
}

// Call calls a function by name.
func (f *Func) Call(name string) *Func {
	f.flush()
	f.pieces = append(f.pieces, piece{call: name})
	return f
}

// CallIndirect calls through table 0 with the given signature.
func (f *Func) CallIndirect(params, results []ValType) *Func {
	f.cur.Byte(opCallIndirect)
	f.cur.WriteU32(f.m.Type(params, results))
	f.cur.Byte(0x00)
	return f
}

// Variables

func (f *Func) LocalGet(i uint32) *Func {
	f.cur.Byte(opLocalGet)
	f.cur.WriteU32(i)
	return f
}

func (f *Func) LocalSet(i uint32) *Func {
	f.cur.Byte(opLocalSet)
	f.cur.WriteU32(i)
	return f
}

func (f *Func) LocalTee(i uint32) *Func {
	f.cur.Byte(opLocalTee)
	f.cur.WriteU32(i)
	return f
}

func (f *Func) GlobalGet(i uint32) *Func {
	f.cur.Byte(opGlobalGet)
	f.cur.WriteU32(i)
	return f
}

func (f *Func) GlobalSet(i uint32) *Func {
	f.cur.Byte(opGlobalSet)
	f.cur.WriteU32(i)
	return f
}

// Memory

func (f *Func) I32Load(offset uint32) *Func   { return f.memarg(opI32Load, 2, offset) }
func (f *Func) I64Load(offset uint32) *Func   { return f.memarg(opI64Load, 3, offset) }
func (f *Func) F32Load(offset uint32) *Func   { return f.memarg(opF32Load, 2, offset) }
func (f *Func) I32Load8U(offset uint32) *Func { return f.memarg(opI32Load8U, 0, offset) }
func (f *Func) I32Store(offset uint32) *Func  { return f.memarg(opI32Store, 2, offset) }
func (f *Func) I64Store(offset uint32) *Func  { return f.memarg(opI64Store, 3, offset) }
func (f *Func) F32Store(offset uint32) *Func  { return f.memarg(opF32Store, 2, offset) }
func (f *Func) I32Store8(offset uint32) *Func { return f.memarg(opI32Store8, 0, offset) }

func (f *Func) MemorySize() *Func { return f.op(opMemorySize, 0x00) }
func (f *Func) MemoryGrow() *Func { return f.op(opMemoryGrow, 0x00) }

// MemoryFill takes (dest, value, length) from the stack.
func (f *Func) MemoryFill() *Func {
	f.cur.Byte(opMiscPrefix)
	f.cur.WriteU32(uint32(opMemoryFill))
	f.cur.Byte(0x00)
	return f
}

// Constants

func (f *Func) I32Const(v int32) *Func {
	f.cur.Byte(opI32Const)
	f.cur.WriteS64(int64(v))
	return f
}

func (f *Func) I64Const(v int64) *Func {
	f.cur.Byte(opI64Const)
	f.cur.WriteS64(v)
	return f
}

func (f *Func) F32Const(v float32) *Func {
	f.cur.Byte(opF32Const)
	f.cur.WriteF32(v)
	return f
}

// Numeric

func (f *Func) I32Eqz() *Func  { return f.op(opI32Eqz) }
func (f *Func) I32Eq() *Func   { return f.op(opI32Eq) }
func (f *Func) I32Ne() *Func   { return f.op(opI32Ne) }
func (f *Func) I32LtS() *Func  { return f.op(opI32LtS) }
func (f *Func) I32LtU() *Func  { return f.op(opI32LtU) }
func (f *Func) I32GtU() *Func  { return f.op(opI32GtU) }
func (f *Func) I32LeU() *Func  { return f.op(opI32LeU) }
func (f *Func) I32GeU() *Func  { return f.op(opI32GeU) }
func (f *Func) I32Add() *Func  { return f.op(opI32Add) }
func (f *Func) I32Sub() *Func  { return f.op(opI32Sub) }
func (f *Func) I32Mul() *Func  { return f.op(opI32Mul) }
func (f *Func) I32And() *Func  { return f.op(opI32And) }
func (f *Func) I32Or() *Func   { return f.op(opI32Or) }
func (f *Func) I32Shl() *Func  { return f.op(opI32Shl) }
func (f *Func) I32ShrU() *Func { return f.op(opI32ShrU) }
func (f *Func) I64Add() *Func  { return f.op(opI64Add) }
func (f *Func) F32Gt() *Func   { return f.op(opF32Gt) }
func (f *Func) F32Le() *Func   { return f.op(opF32Le) }

// encode writes the code section entry body: locals, instructions and the
// final end.
func (f *Func) encode() *writer {
	f.flush()
	if f.depth != 0 {
		f.m.problems = append(f.m.problems, errors.New(errors.PhaseGenerate, errors.KindInvalidData).
			Path(f.name).
			Detail("%d unclosed blocks", f.depth).
			Build())
	}

	body := &writer{}

	// locals are run-length grouped by type
	var groups [][2]uint32
	for _, t := range f.locals {
		if n := len(groups); n > 0 && groups[n-1][1] == uint32(t) {
			groups[n-1][0]++
			continue
		}
		groups = append(groups, [2]uint32{1, uint32(t)})
	}
	body.WriteU32(uint32(len(groups)))
	for _, g := range groups {
		body.WriteU32(g[0])
		body.Byte(byte(g[1]))
	}

	for _, p := range f.pieces {
		if p.call != "" {
			body.Byte(opCall)
			body.WriteU32(f.m.resolve(p.call))
			continue
		}
		body.WriteBytes(p.raw)
	}
	body.Byte(opEnd)
	return body
}
