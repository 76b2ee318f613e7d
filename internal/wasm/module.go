package wasm

import (
	"strings"

	"github.com/wippyai/joltbridge/errors"
)

// FuncType is a function signature.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

func (f FuncType) key() string {
	var b strings.Builder
	for _, p := range f.Params {
		b.WriteString(p.String())
		b.WriteByte(',')
	}
	b.WriteString("->")
	for _, r := range f.Results {
		b.WriteString(r.String())
		b.WriteByte(',')
	}
	return b.String()
}

type funcImport struct {
	module  string
	name    string
	typeIdx uint32
}

type global struct {
	typ     ValType
	mutable bool
	init    int64
}

type export struct {
	name string
	kind byte
	idx  uint32
	fn   string
}

type elem struct {
	offset uint32
	funcs  []string
}

type dataSegment struct {
	offset uint32
	init   []byte
}

// Module assembles a core module. Functions are referred to by name and
// resolved to indices when the module is encoded, so they may be called
// before they are defined. Imports must be declared before the first
// defined function.
type Module struct {
	types    []FuncType
	typeIdx  map[string]uint32
	imports  []funcImport
	funcs    []*Func
	index    map[string]uint32
	table    *uint32
	memMin   uint32
	memMax   *uint32
	memory   bool
	globals  []global
	exports  []export
	elems    []elem
	data     []dataSegment
	problems errors.List
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{
		typeIdx: make(map[string]uint32),
		index:   make(map[string]uint32),
	}
}

// Type interns a function signature and returns its type index.
func (m *Module) Type(params, results []ValType) uint32 {
	ft := FuncType{Params: params, Results: results}
	k := ft.key()
	if idx, ok := m.typeIdx[k]; ok {
		return idx
	}
	idx := uint32(len(m.types))
	m.types = append(m.types, ft)
	m.typeIdx[k] = idx
	return idx
}

// ImportFunc declares an imported function known locally as local.
func (m *Module) ImportFunc(module, name, local string, params, results []ValType) uint32 {
	if len(m.funcs) > 0 {
		m.fail(errors.KindInvalidInput, "import %s.%s declared after defined functions", module, name)
		return 0
	}
	if _, dup := m.index[local]; dup {
		m.fail(errors.KindRegistration, "function %q declared twice", local)
	}
	idx := uint32(len(m.imports))
	m.imports = append(m.imports, funcImport{module: module, name: name, typeIdx: m.Type(params, results)})
	m.index[local] = idx
	return idx
}

// Func defines a function and returns its body builder.
func (m *Module) Func(name string, params, results []ValType) *Func {
	if _, dup := m.index[name]; dup {
		m.fail(errors.KindRegistration, "function %q declared twice", name)
	}
	f := &Func{
		m:       m,
		name:    name,
		typeIdx: m.Type(params, results),
		params:  params,
	}
	m.index[name] = uint32(len(m.imports) + len(m.funcs))
	m.funcs = append(m.funcs, f)
	return f
}

// Export exports the named function.
func (m *Module) Export(exportName, fn string) {
	m.exports = append(m.exports, export{name: exportName, kind: KindFunc, fn: fn})
}

// Memory declares the single linear memory.
func (m *Module) Memory(minPages uint32, maxPages *uint32) {
	m.memory = true
	m.memMin = minPages
	m.memMax = maxPages
}

// ExportMemory exports memory 0.
func (m *Module) ExportMemory(name string) {
	m.exports = append(m.exports, export{name: name, kind: KindMemory})
}

// Table declares the single funcref table.
func (m *Module) Table(minSize uint32) {
	m.table = &minSize
}

// Elem places the named functions into the table starting at offset.
func (m *Module) Elem(offset uint32, fns ...string) {
	m.elems = append(m.elems, elem{offset: offset, funcs: fns})
}

// Global declares an integer global and returns its index.
func (m *Module) Global(t ValType, mutable bool, init int64) uint32 {
	if t != I32 && t != I64 {
		m.fail(errors.KindUnsupported, "global of type %s", t)
	}
	m.globals = append(m.globals, global{typ: t, mutable: mutable, init: init})
	return uint32(len(m.globals) - 1)
}

// ExportGlobal exports global idx.
func (m *Module) ExportGlobal(name string, idx uint32) {
	m.exports = append(m.exports, export{name: name, kind: KindGlobal, idx: idx})
}

// Data places init at offset in memory 0 when the module is instantiated.
func (m *Module) Data(offset uint32, init []byte) {
	m.data = append(m.data, dataSegment{offset: offset, init: init})
}

// FuncIndex resolves a function name.
func (m *Module) FuncIndex(name string) (uint32, bool) {
	idx, ok := m.index[name]
	return idx, ok
}

func (m *Module) fail(kind errors.Kind, format string, args ...any) {
	m.problems = append(m.problems, errors.New(errors.PhaseGenerate, kind).Detail(format, args...).Build())
}

func (m *Module) resolve(name string) uint32 {
	idx, ok := m.index[name]
	if !ok {
		m.problems = append(m.problems, errors.NotFound(errors.PhaseGenerate, "function", name))
	}
	return idx
}

// Encode encodes the module to the WebAssembly binary format.
func (m *Module) Encode() ([]byte, error) {
	w := &writer{}

	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	if len(m.types) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.types)))
		for _, ft := range m.types {
			sec.Byte(funcTypeByte)
			sec.valTypes(ft.Params)
			sec.valTypes(ft.Results)
		}
		w.section(SectionType, sec)
	}

	if len(m.imports) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.imports)))
		for _, imp := range m.imports {
			sec.WriteName(imp.module)
			sec.WriteName(imp.name)
			sec.Byte(KindFunc)
			sec.WriteU32(imp.typeIdx)
		}
		w.section(SectionImport, sec)
	}

	if len(m.funcs) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.funcs)))
		for _, f := range m.funcs {
			sec.WriteU32(f.typeIdx)
		}
		w.section(SectionFunction, sec)
	}

	if m.table != nil {
		sec := &writer{}
		sec.WriteU32(1)
		sec.Byte(funcRefByte)
		sec.limits(*m.table, nil)
		w.section(SectionTable, sec)
	}

	if m.memory {
		sec := &writer{}
		sec.WriteU32(1)
		sec.limits(m.memMin, m.memMax)
		w.section(SectionMemory, sec)
	}

	if len(m.globals) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.globals)))
		for _, g := range m.globals {
			sec.Byte(byte(g.typ))
			if g.mutable {
				sec.Byte(1)
			} else {
				sec.Byte(0)
			}
			if g.typ == I64 {
				sec.Byte(opI64Const)
			} else {
				sec.Byte(opI32Const)
			}
			sec.WriteS64(g.init)
			sec.Byte(opEnd)
		}
		w.section(SectionGlobal, sec)
	}

	if len(m.exports) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.exports)))
		for _, exp := range m.exports {
			sec.WriteName(exp.name)
			sec.Byte(exp.kind)
			if exp.kind == KindFunc {
				sec.WriteU32(m.resolve(exp.fn))
			} else {
				sec.WriteU32(exp.idx)
			}
		}
		w.section(SectionExport, sec)
	}

	if len(m.elems) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.elems)))
		for _, e := range m.elems {
			// flags 0: active, table 0, vec(funcidx)
			sec.WriteU32(0)
			sec.constI32(int32(e.offset))
			sec.WriteU32(uint32(len(e.funcs)))
			for _, fn := range e.funcs {
				sec.WriteU32(m.resolve(fn))
			}
		}
		w.section(SectionElement, sec)
	}

	if len(m.funcs) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.funcs)))
		for _, f := range m.funcs {
			body := f.encode()
			sec.WriteU32(uint32(body.Len()))
			sec.WriteBytes(body.Bytes())
		}
		w.section(SectionCode, sec)
	}

	if len(m.data) > 0 {
		sec := &writer{}
		sec.WriteU32(uint32(len(m.data)))
		for _, d := range m.data {
			sec.WriteU32(0)
			sec.constI32(int32(d.offset))
			sec.WriteU32(uint32(len(d.init)))
			sec.WriteBytes(d.init)
		}
		w.section(SectionData, sec)
	}

	if err := m.problems.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
