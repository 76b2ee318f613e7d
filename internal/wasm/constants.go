package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

// Section IDs in the order they must appear.
const (
	SectionType     byte = 1
	SectionImport   byte = 2
	SectionFunction byte = 3
	SectionTable    byte = 4
	SectionMemory   byte = 5
	SectionGlobal   byte = 6
	SectionExport   byte = 7
	SectionElement  byte = 9
	SectionCode     byte = 10
	SectionData     byte = 11
)

// Import/Export descriptor kinds.
const (
	KindFunc   byte = 0
	KindTable  byte = 1
	KindMemory byte = 2
	KindGlobal byte = 3
)

// ValType is a core value type.
type ValType byte

const (
	I32 ValType = 0x7F
	I64 ValType = 0x7E
	F32 ValType = 0x7D
	F64 ValType = 0x7C
)

func (v ValType) String() string {
	switch v {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	return "unknown"
}

const (
	funcTypeByte  byte = 0x60
	funcRefByte   byte = 0x70
	blockTypeVoid byte = 0x40
	limitsNoMax   byte = 0x00
	limitsHasMax  byte = 0x01
)

// Opcodes used by the instruction builder.
const (
	opUnreachable  byte = 0x00
	opNop          byte = 0x01
	opBlock        byte = 0x02
	opLoop         byte = 0x03
	opIf           byte = 0x04
	opElse         byte = 0x05
	opEnd          byte = 0x0B
	opBr           byte = 0x0C
	opBrIf         byte = 0x0D
	opReturn       byte = 0x0F
	opCall         byte = 0x10
	opCallIndirect byte = 0x11
	opDrop         byte = 0x1A
	opSelect       byte = 0x1B

	opLocalGet  byte = 0x20
	opLocalSet  byte = 0x21
	opLocalTee  byte = 0x22
	opGlobalGet byte = 0x23
	opGlobalSet byte = 0x24

	opI32Load   byte = 0x28
	opI64Load   byte = 0x29
	opF32Load   byte = 0x2A
	opI32Load8U byte = 0x2D
	opI32Store  byte = 0x36
	opI64Store  byte = 0x37
	opF32Store  byte = 0x38
	opI32Store8 byte = 0x3A

	opMemorySize byte = 0x3F
	opMemoryGrow byte = 0x40

	opI32Const byte = 0x41
	opI64Const byte = 0x42
	opF32Const byte = 0x43

	opI32Eqz byte = 0x45
	opI32Eq  byte = 0x46
	opI32Ne  byte = 0x47
	opI32LtS byte = 0x48
	opI32LtU byte = 0x49
	opI32GtU byte = 0x4B
	opI32LeU byte = 0x4D
	opI32GeU byte = 0x4F

	opF32Gt byte = 0x5E
	opF32Le byte = 0x5F

	opI32Add  byte = 0x6A
	opI32Sub  byte = 0x6B
	opI32Mul  byte = 0x6C
	opI32And  byte = 0x71
	opI32Or   byte = 0x72
	opI32Shl  byte = 0x74
	opI32ShrU byte = 0x76

	opI64Add byte = 0x7C

	opMiscPrefix byte = 0xFC
	opMemoryFill byte = 0x0B
	opMemoryCopy byte = 0x0A
)
