package vtablegen

import (
	"go/ast"
	"go/token"
)

// Import paths the generated code refers to.
const (
	VTablePath  = "github.com/wippyai/joltbridge/vtable"
	ForeignPath = "github.com/wippyai/joltbridge/foreign"
	APIPath     = "github.com/tetratelabs/wazero/api"
)

// Tag is the build tag descriptor files are constrained to. Generated files
// carry the negated constraint so the two never meet in one build.
const Tag = "vtabledef"

// Default output file names, relative to the package directory.
const (
	Output     = "zz_generated.vtable.go"
	TestOutput = "zz_generated.vtable_test.go"
)

// Kind is how a parameter or result travels across the wasm boundary.
type Kind uint8

const (
	KindInvalid   Kind = iota
	KindBool           // i32, non-zero is true
	KindI32            // signed integers up to 32 bits
	KindU32            // unsigned integers up to 32 bits
	KindI64            // int64
	KindU64            // uint64
	KindF32            // float32
	KindF64            // float64
	KindPtr            // foreign.Ptr, passed through
	KindStruct         // plain data passed by guest pointer, read only
	KindStructPtr      // pointer to plain data, read and written back
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindI32:       "i32",
	KindU32:       "u32",
	KindI64:       "i64",
	KindU64:       "u64",
	KindF32:       "f32",
	KindF64:       "f64",
	KindPtr:       "ptr",
	KindStruct:    "struct",
	KindStructPtr: "*struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindInvalid {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// valueType names the wazero api constant of the wasm type k travels as.
func (k Kind) valueType() string {
	switch k {
	case KindI64, KindU64:
		return "ValueTypeI64"
	case KindF32:
		return "ValueTypeF32"
	case KindF64:
		return "ValueTypeF64"
	default:
		return "ValueTypeI32"
	}
}

// Param is one parameter or the result of a slot.
type Param struct {
	Name string
	Type ast.Expr
	Kind Kind
	Pos  token.Pos
}

// Slot is one function field of a descriptor.
type Slot struct {
	Name string
	Doc  []string

	// Self is the type of the first parameter, nil when there is none.
	Self ast.Expr

	// Mutable and Destructor are filled in by Split.
	Mutable    bool
	Destructor bool

	Params []Param
	Result *Param
	Pos    token.Pos
}

// Descriptor is a struct marked with //vtable:generate.
type Descriptor struct {
	Name       string
	Interface  string
	AllowEmpty bool
	Doc        []string
	Slots      []*Slot
	Pos        token.Pos

	file *ast.File
}

// Destructor returns the Drop slot, or nil.
func (d *Descriptor) Destructor() *Slot {
	for _, s := range d.Slots {
		if s.Name == destructorName {
			return s
		}
	}
	return nil
}

// Impl is a type marked with //vtable:impl.
type Impl struct {
	// Type is the implementer type name.
	Type string

	// VTable is the descriptor name, without qualifier.
	VTable string

	// Path is the import path of the descriptor's package, empty when it
	// lives in the same package.
	Path string

	// Qualifier is the name the directive used for Path.
	Qualifier string

	// Package is the name of the package the directive appeared in.
	Package string

	Test bool
	Pos  token.Pos
}

const destructorName = "Drop"
