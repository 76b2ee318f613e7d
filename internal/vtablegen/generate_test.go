package vtablegen

import (
	"go/ast"
	"go/format"
	goparser "go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/wippyai/joltbridge/errors"
)

const counterDesc = `//go:build vtabledef

package counter

import (
	"structs"

	"github.com/wippyai/joltbridge/vtable"
)

// CounterVTable is called by the foreign counter registry.
//
//vtable:generate allow_empty
type CounterVTable struct {
	_    structs.HostLayout
	Drop func(self vtable.SelfMut)
	// Add adds n and returns the total.
	Add   func(self vtable.SelfMut, n uint32) uint32
	Get   func(self vtable.Self) uint32
	Reset func(self vtable.SelfMut, to BodyID, at *Point, _ bool)
}
`

const counterImpl = `package counter

//vtable:impl CounterVTable
type tally struct{ n uint32 }
`

var counterTypes = NameResolver{
	"BodyID": KindU32,
	"Point":  KindStruct,
}

func parseAll(t *testing.T, fset *token.FileSet, srcs map[string]string) []*ast.File {
	t.Helper()
	names := make([]string, 0, len(srcs))
	for name := range srcs {
		names = append(names, name)
	}
	sort.Strings(names)

	var files []*ast.File
	for _, name := range names {
		f, err := goparser.ParseFile(fset, name, srcs[name], goparser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		files = append(files, f)
	}
	return files
}

func generate(t *testing.T, files, tests map[string]string, r Resolver) (*Result, error) {
	t.Helper()
	fset := token.NewFileSet()
	return Generate(&Package{
		Fset:      fset,
		Files:     parseAll(t, fset, files),
		TestFiles: parseAll(t, fset, tests),
		Resolver:  r,
	})
}

// flat collapses whitespace so checks do not depend on gofmt alignment.
func flat(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func mustContain(t *testing.T, src []byte, wants ...string) {
	t.Helper()
	got := flat(string(src))
	for _, w := range wants {
		if !strings.Contains(got, flat(w)) {
			t.Errorf("output lacks %q", w)
		}
	}
}

func mustParse(t *testing.T, name string, src []byte) *ast.File {
	t.Helper()
	f, err := goparser.ParseFile(token.NewFileSet(), name, src, goparser.ParseComments)
	if err != nil {
		t.Fatalf("generated %s does not parse: %v\n%s", name, err, src)
	}
	return f
}

func TestGenerate_Counter(t *testing.T) {
	res, err := generate(t, map[string]string{
		"desc.go":  counterDesc,
		"tally.go": counterImpl,
	}, nil, counterTypes)
	if err != nil {
		t.Fatal(err)
	}
	if res.TestSource != nil {
		t.Error("unexpected test output")
	}
	mustParse(t, Output, res.Source)

	if len(res.Descriptors) != 1 {
		t.Fatalf("descriptors = %d", len(res.Descriptors))
	}
	d := res.Descriptors[0]
	if d.Interface != "Counter" || !d.AllowEmpty {
		t.Errorf("descriptor = %+v", d)
	}

	methods := 0
	mutable := map[string]bool{}
	for _, s := range d.Slots {
		if s.Destructor {
			continue
		}
		methods++
		mutable[s.Name] = s.Mutable
	}
	if methods != 3 {
		t.Errorf("interface methods = %d, want 3", methods)
	}
	want := map[string]bool{"Add": true, "Get": false, "Reset": true}
	for name, m := range want {
		if mutable[name] != m {
			t.Errorf("%s mutable = %v, want %v", name, mutable[name], m)
		}
	}
	if dtor := d.Destructor(); dtor == nil || !dtor.Mutable {
		t.Error("Drop not recognised as a mutable destructor")
	}

	mustContain(t, res.Source,
		"// Code generated by vtablegen. DO NOT EDIT.",
		"//go:build !vtabledef",
		"// CounterVTable is called by the foreign counter registry.",
		"Drop func(self vtable.SelfMut) _ vtable.DropPadding // Add adds n and returns the total. Add func(self vtable.SelfMut, n uint32) uint32",
		"type Counter interface {",
		"Add(n uint32) uint32",
		"Get() uint32",
		"Reset(to BodyID, at *Point, arg3 bool)",
		"type counterImpl[T any] interface { *T Counter }",
		"func NewCounterVTable[T any, P counterImpl[T]]() *CounterVTable {",
		"Drop: vtable.DropGlue[T, CounterVTable],",
		"Get: counterGet[T, P],",
		"func counterAdd[T any, P counterImpl[T]](self vtable.SelfMut, n uint32) uint32 { return P(vtable.DataMut[T, CounterVTable](self)).Add(n) }",
		"func counterGet[T any, P counterImpl[T]](self vtable.Self) uint32 { return P(vtable.Data[T, CounterVTable](self)).Get() }",
		"P(vtable.DataMut[T, CounterVTable](self)).Reset(to, at, arg3)",
		"var counterInterface = &foreign.Interface{",
		`Name: "Counter"`,
		"func (*CounterVTable) ForeignInterface() *foreign.Interface { return counterInterface }",
	)

	// adapters
	mustContain(t, res.Source,
		"vtable.TableOf[CounterVTable](inv.Self()).Drop(vtable.SelfMut(inv.Self()))",
		"r := vt.Add(vtable.SelfMut(inv.Self()), inv.U32(0))",
		"inv.ReturnU32(r)",
		"r := vt.Get(vtable.Self(inv.Self()))",
		"a1 := foreign.Load[Point](inv, 1)",
		"vt.Reset(vtable.SelfMut(inv.Self()), BodyID(inv.U32(0)), &a1, inv.Bool(2))",
		"foreign.Store(inv, 1, &a1)",
		"Params: []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}",
		"Destructor: true",
	)

	// no-op implementer
	mustContain(t, res.Source,
		"type NoopCounter struct{}",
		`func (NoopCounter) Add(n uint32) uint32 { panic(vtable.Unreachable("Counter", "Add")) }`,
		"var noopCounterCounterVTable = NewCounterVTable[NoopCounter]()",
		"func NewNoopCounterBox() *vtable.Pair[NoopCounter, CounterVTable] { return vtable.NewBox(noopCounterCounterVTable, NoopCounter{}) }",
	)

	// registrar
	mustContain(t, res.Source,
		"var _ Counter = (*tally)(nil)",
		"var tallyCounterVTable = NewCounterVTable[tally]()",
		"func newTallyPair(data tally) vtable.Pair[tally, CounterVTable] { return vtable.NewPair(tallyCounterVTable, data) }",
		"func newTallyBox(data tally) *vtable.Pair[tally, CounterVTable] { return vtable.NewBox(tallyCounterVTable, data) }",
	)
	if strings.Count(string(res.Source), "NewCounterVTable[tally]") != 1 {
		t.Error("implementer table emitted more than once")
	}
}

func TestGenerate_TestImplementers(t *testing.T) {
	res, err := generate(t,
		map[string]string{"desc.go": counterDesc},
		map[string]string{"tally_test.go": strings.Replace(counterImpl, "type tally", "type Tally", 1)},
		counterTypes,
	)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(res.Source), "Tally") {
		t.Error("test implementer leaked into the main output")
	}
	f := mustParse(t, TestOutput, res.TestSource)
	if f.Name.Name != "counter" {
		t.Errorf("test output package = %s", f.Name.Name)
	}
	mustContain(t, res.TestSource,
		"//go:build !vtabledef",
		"func NewTallyPair(data Tally) vtable.Pair[Tally, CounterVTable]",
		"func NewTallyBox(data Tally) *vtable.Pair[Tally, CounterVTable]",
	)
}

func TestGenerate_QualifiedAndMultipleImpls(t *testing.T) {
	src := `package listeners

import "github.com/wippyai/joltbridge/physics"

//vtable:impl physics.ContactListenerVTable
//vtable:impl physics.BodyActivationListenerVTable
type Recorder struct{}
`
	res, err := generate(t, map[string]string{"rec.go": src}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	mustParse(t, Output, res.Source)
	mustContain(t, res.Source,
		`"github.com/wippyai/joltbridge/physics"`,
		"var _ physics.ContactListener = (*Recorder)(nil)",
		"var recorderContactListenerVTable = physics.NewContactListenerVTable[Recorder]()",
		"func NewRecorderContactListenerPair(data Recorder) vtable.Pair[Recorder, physics.ContactListenerVTable]",
		"func NewRecorderBodyActivationListenerBox(data Recorder) *vtable.Pair[Recorder, physics.BodyActivationListenerVTable]",
	)
}

func TestGenerate_FileLayout(t *testing.T) {
	res, err := generate(t, map[string]string{
		"desc.go":  counterDesc,
		"tally.go": counterImpl,
	}, nil, counterTypes)
	if err != nil {
		t.Fatal(err)
	}
	src := string(res.Source)
	if !strings.HasPrefix(src, "// Code generated by vtablegen. DO NOT EDIT.\n\n//go:build !vtabledef\n\npackage counter\n") {
		t.Errorf("header:\n%s", src[:min(len(src), 120)])
	}
	if !strings.Contains(src, "\tSlots: []foreign.Slot{\n\t\t{\n\t\t\tDestructor: true,\n") {
		t.Error("slot literals are not one per block")
	}
	formatted, err := format.Source(res.Source)
	if err != nil {
		t.Fatal(err)
	}
	if string(formatted) != src {
		t.Error("output is not gofmt clean")
	}

	imports := func(spec, qual string) string {
		res, err := generate(t, map[string]string{"rec.go": "package listeners\n\nimport " + spec + `

//vtable:impl ` + qual + `.ContactListenerVTable
type Recorder struct{}
`}, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		return string(res.Source)
	}
	tests := []struct {
		spec, qual, want string
	}{
		{`"github.com/wippyai/joltbridge/physics"`, "physics", "\t\"github.com/wippyai/joltbridge/physics\"\n"},
		{`ph "github.com/wippyai/joltbridge/physics"`, "ph", "\tph \"github.com/wippyai/joltbridge/physics\"\n"},
	}
	for _, tt := range tests {
		got := imports(tt.spec, tt.qual)
		if !strings.Contains(got, tt.want) {
			t.Errorf("import %s rendered as:\n%s", tt.spec, got)
		}
		if !strings.Contains(got, "var _ "+tt.qual+".ContactListener = (*Recorder)(nil)") {
			t.Errorf("import %s is not referenced as %s", tt.spec, tt.qual)
		}
	}
}

func TestGenerate_NothingToDo(t *testing.T) {
	res, err := generate(t, map[string]string{"plain.go": "package plain\n\ntype X struct{}\n"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != nil || res.TestSource != nil {
		t.Error("output produced for a package without directives")
	}
}

func descSource(body string) string {
	return `//go:build vtabledef

package bad

import (
	"structs"

	"github.com/wippyai/joltbridge/vtable"
)

` + body
}

func TestGenerate_Violations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.Kind
		line int
	}{
		{
			name: "missing layout marker",
			src: descSource(`//vtable:generate
type AVTable struct {
	Drop func(self vtable.SelfMut)
}
`),
			kind: errors.KindLayout, line: 12,
		},
		{
			name: "naming convention",
			src: descSource(`//vtable:generate
type Table struct {
	_    structs.HostLayout
	Drop func(self vtable.SelfMut)
}
`),
			kind: errors.KindNaming, line: 12,
		},
		{
			name: "unexported field",
			src: descSource(`//vtable:generate
type AVTable struct {
	_    structs.HostLayout
	drop func(self vtable.SelfMut)
}
`),
			kind: errors.KindVisibility, line: 14,
		},
		{
			name: "not a function",
			src: descSource(`//vtable:generate
type AVTable struct {
	_     structs.HostLayout
	Count uint32
}
`),
			kind: errors.KindSignature, line: 14,
		},
		{
			name: "wrong first parameter",
			src: descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Add func(self *byte, n uint32)
}
`),
			kind: errors.KindSignature, line: 14,
		},
		{
			name: "no parameters",
			src: descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Add func()
}
`),
			kind: errors.KindSignature, line: 14,
		},
		{
			name: "read only destructor",
			src: descSource(`//vtable:generate
type AVTable struct {
	_    structs.HostLayout
	Drop func(self vtable.Self)
}
`),
			kind: errors.KindSignature, line: 14,
		},
		{
			name: "destructor with arguments",
			src: descSource(`//vtable:generate
type AVTable struct {
	_    structs.HostLayout
	Drop func(self vtable.SelfMut, n uint32)
}
`),
			kind: errors.KindSignature, line: 14,
		},
		{
			name: "two results",
			src: descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Get func(self vtable.Self) (uint32, bool)
}
`),
			kind: errors.KindSignature, line: 14,
		},
		{
			name: "unsupported parameter",
			src: descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Set func(self vtable.SelfMut, m map[string]int)
}
`),
			kind: errors.KindUnsupported, line: 14,
		},
		{
			name: "platform sized integer",
			src: descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Set func(self vtable.SelfMut, n int)
}
`),
			kind: errors.KindUnsupported, line: 14,
		},
		{
			name: "plain data result",
			src: descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Get func(self vtable.Self) Point
}
`),
			kind: errors.KindUnsupported, line: 14,
		},
		{
			name: "hand written padding",
			src: descSource(`//vtable:generate
type AVTable struct {
	_    structs.HostLayout
	Drop func(self vtable.SelfMut)
	_    vtable.DropPadding
}
`),
			kind: errors.KindLayout, line: 15,
		},
		{
			name: "unknown option",
			src: descSource(`//vtable:generate sometimes
type AVTable struct {
	_ structs.HostLayout
}
`),
			kind: errors.KindInvalidInput, line: 11,
		},
		{
			name: "missing build constraint",
			src: strings.Replace(descSource(`//vtable:generate
type AVTable struct {
	_ structs.HostLayout
}
`), "//go:build vtabledef", "//go:build linux", 1),
			kind: errors.KindLayout, line: 12,
		},
		{
			name: "implementer of an unknown table",
			src: `package bad

//vtable:impl MissingVTable
type impl struct{}
`,
			kind: errors.KindNotFound, line: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(t, map[string]string{"desc.go": tt.src}, nil, counterTypes)
			if err == nil {
				t.Fatal("expected an error")
			}
			var list errors.List
			if !errors.As(err, &list) {
				t.Fatalf("error %T is not a list", err)
			}
			for _, e := range list {
				if e.Kind == tt.kind && strings.HasPrefix(e.Pos, "desc.go:"+strconv.Itoa(tt.line)+":") {
					return
				}
			}
			t.Errorf("no %s error on line %d in:\n%v", tt.kind, tt.line, err)
		})
	}
}

func TestGenerate_ReportsAllViolations(t *testing.T) {
	src := descSource(`//vtable:generate
type AVTable struct {
	a   func(self vtable.SelfMut)
	Get func(self vtable.Self) (uint32, bool)
}
`)
	_, err := generate(t, map[string]string{"desc.go": src}, nil, nil)
	var list errors.List
	if !errors.As(err, &list) {
		t.Fatalf("error = %v", err)
	}
	// unexported field, two results and the missing marker
	if len(list) != 3 {
		t.Errorf("got %d errors, want 3:\n%v", len(list), err)
	}
	for _, e := range list {
		if e.Phase != errors.PhaseGenerate || e.Pos == "" {
			t.Errorf("error without generate phase or position: %v", e)
		}
	}
}
