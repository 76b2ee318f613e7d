package wasm

import (
	"bytes"
	"encoding/binary"
	"math"
)

// writer provides buffered writing utilities for the binary encoding.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *writer) Len() int {
	return w.buf.Len()
}

func (w *writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU32 writes an unsigned LEB128 encoded uint32.
func (w *writer) WriteU32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// WriteS64 writes a signed LEB128 encoded int64. i32 immediates use it too.
func (w *writer) WriteS64(v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && (b&0x40) == 0) || (v == -1 && (b&0x40) != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.buf.WriteByte(b)
	}
}

// WriteName writes a UTF-8 encoded name (length-prefixed).
func (w *writer) WriteName(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf.WriteString(s)
}

// WriteU32LE writes a little-endian uint32 (fixed 4 bytes).
func (w *writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteF32 writes an IEEE 754 float32 in little-endian order.
func (w *writer) WriteF32(v float32) {
	w.WriteU32LE(math.Float32bits(v))
}

func (w *writer) section(id byte, body *writer) {
	w.Byte(id)
	w.WriteU32(uint32(body.Len()))
	w.WriteBytes(body.Bytes())
}

func (w *writer) valTypes(types []ValType) {
	w.WriteU32(uint32(len(types)))
	for _, t := range types {
		w.Byte(byte(t))
	}
}

func (w *writer) limits(lo uint32, hi *uint32) {
	if hi == nil {
		w.Byte(limitsNoMax)
		w.WriteU32(lo)
		return
	}
	w.Byte(limitsHasMax)
	w.WriteU32(lo)
	w.WriteU32(*hi)
}

// constI32 writes an i32.const init expression.
func (w *writer) constI32(v int32) {
	w.Byte(opI32Const)
	w.WriteS64(int64(v))
	w.Byte(opEnd)
}
