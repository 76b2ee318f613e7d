package vtablegen

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"

	"github.com/wippyai/joltbridge/errors"
)

func TestSplitSlot_Views(t *testing.T) {
	fset := token.NewFileSet()
	files := parseAll(t, fset, map[string]string{"desc.go": counterDesc})
	descs, _, errs := Parse(fset, files, nil)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	d := descs[0]

	views := map[string]*Split{}
	for _, s := range d.Slots {
		sp, err := SplitSlot(fset, d, s)
		if err != nil {
			t.Fatalf("%s: %v", s.Name, err)
		}
		views[s.Name] = sp
	}

	drop := views["Drop"]
	if drop.Method != nil || drop.Trampoline != nil {
		t.Error("destructor has an interface method")
	}

	tests := []struct {
		slot, field, method, forward string
	}{
		{
			slot:    "Add",
			field:   "Add func(self vtable.SelfMut, n uint32) uint32",
			method:  "Add(n uint32) uint32",
			forward: "P(vtable.DataMut[T, CounterVTable](self)).Add(n)",
		},
		{
			slot:    "Get",
			field:   "Get func(self vtable.Self) uint32",
			method:  "Get() uint32",
			forward: "P(vtable.Data[T, CounterVTable](self)).Get()",
		},
		{
			slot:    "Reset",
			field:   "Reset func(self vtable.SelfMut, to BodyID, at *Point, arg3 bool)",
			method:  "Reset(to BodyID, at *Point, arg3 bool)",
			forward: "P(vtable.DataMut[T, CounterVTable](self)).Reset(to, at, arg3)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			sp := views[tt.slot]
			// fields and methods only format inside a declaration
			for _, c := range []struct{ got, want string }{
				{fmt.Sprintf("%#v", jen.Type().Id("X").Struct(sp.Field)), "type X struct { " + tt.field + " }"},
				{fmt.Sprintf("%#v", jen.Type().Id("X").Interface(sp.Method)), "type X interface { " + tt.method + " }"},
				{fmt.Sprintf("%#v", sp.Forward), tt.forward},
			} {
				if flat(c.got) != c.want {
					t.Errorf("got %q, want %q", flat(c.got), c.want)
				}
			}
		})
	}
}

func TestSplitSlot_ReservedNames(t *testing.T) {
	src := descSource(`//vtable:generate
type AVTable struct {
	_   structs.HostLayout
	Set func(self vtable.SelfMut, r uint32, inv bool, n int32)
}
`)
	fset := token.NewFileSet()
	descs, _, errs := Parse(fset, parseAll(t, fset, map[string]string{"desc.go": src}), nil)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	var names []string
	for _, p := range descs[0].Slots[0].Params {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "arg1,arg2,n" {
		t.Errorf("params = %s", got)
	}
}

func TestNameResolver(t *testing.T) {
	r := NameResolver{
		"BodyID":     KindU32,
		"mgl32.Vec3": KindStruct,
	}
	tests := []struct {
		expr string
		want Kind
	}{
		{"uint8", KindU32},
		{"int16", KindI32},
		{"bool", KindBool},
		{"float64", KindF64},
		{"uint64", KindU64},
		{"BodyID", KindU32},
		{"mgl32.Vec3", KindStruct},
		{"*mgl32.Vec3", KindStructPtr},
		{"[4]float32", KindStruct},
		{"foreign.Ptr", KindPtr},
		{"int", KindInvalid},
		{"uintptr", KindInvalid},
		{"*uint32", KindInvalid},
		{"Unknown", KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := goparser.ParseExpr(tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.Resolve(nil, expr)
			if tt.want == KindInvalid {
				if err == nil {
					t.Fatalf("resolved to %s", got)
				}
				if !errors.Is(err, &errors.Error{Phase: errors.PhaseGenerate, Kind: errors.KindUnsupported}) {
					t.Errorf("error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChain(t *testing.T) {
	expr, _ := goparser.ParseExpr("Layer")
	c := Chain{NameResolver{}, NameResolver{"Layer": KindU32}}
	if k, err := c.Resolve(nil, expr); err != nil || k != KindU32 {
		t.Errorf("got %s, %v", k, err)
	}
	if _, err := (Chain{}).Resolve(nil, expr); err == nil {
		t.Error("empty chain resolved")
	}
}

func TestClassify(t *testing.T) {
	const src = `package p

type BodyID uint32
type Vec struct{ X, Y, Z float32 }
type Alias = Vec
type Flag bool

var (
	a BodyID
	b Vec
	c *Vec
	d Alias
	e Flag
	f int
	g [4]float32
	h *uint32
	i string
	j *[2]Vec
	k int8
)
`
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	pkg, err := (&types.Config{}).Check("p", fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]Kind{
		"a": KindU32,
		"b": KindStruct,
		"c": KindStructPtr,
		"d": KindStruct,
		"e": KindBool,
		"f": KindInvalid,
		"g": KindStruct,
		"h": KindInvalid,
		"i": KindInvalid,
		"j": KindStructPtr,
		"k": KindI32,
	}
	for name, k := range want {
		if got := Classify(pkg.Scope().Lookup(name).Type()); got != k {
			t.Errorf("%s: got %s, want %s", name, got, k)
		}
	}

	foreign := types.NewPackage(ForeignPath, "foreign")
	ptr := types.NewNamed(types.NewTypeName(token.NoPos, foreign, "Ptr", nil), types.Typ[types.Uint32], nil)
	if got := Classify(ptr); got != KindPtr {
		t.Errorf("foreign.Ptr: got %s", got)
	}
}

func TestTypesResolver(t *testing.T) {
	const src = `package p

type Layer uint16

var x Layer
`
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	info := &types.Info{
		Types: map[ast.Expr]types.TypeAndValue{},
		Defs:  map[*ast.Ident]types.Object{},
		Uses:  map[*ast.Ident]types.Object{},
	}
	if _, err := (&types.Config{}).Check("p", fset, []*ast.File{file}, info); err != nil {
		t.Fatal(err)
	}
	spec := file.Decls[1].(*ast.GenDecl).Specs[0].(*ast.ValueSpec)

	k, err := TypesResolver{Info: info}.Resolve(file, spec.Type)
	if err != nil || k != KindU32 {
		t.Errorf("got %s, %v", k, err)
	}
	if _, err := (TypesResolver{}).Resolve(file, spec.Type); err == nil {
		t.Error("resolved without type information")
	}
}

func TestParseKinds(t *testing.T) {
	r, err := ParseKinds(map[string]string{"BodyID": "u32", "mgl32.Vec3": "struct"})
	if err != nil {
		t.Fatal(err)
	}
	if r["BodyID"] != KindU32 || r["mgl32.Vec3"] != KindStruct {
		t.Errorf("kinds = %v", r)
	}

	_, err = ParseKinds(map[string]string{"B": "word", "A": "invalid"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "A = invalid, B = word") {
		t.Errorf("error = %v", err)
	}
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "defaults",
			toml: ``,
			check: func(t *testing.T, c Config) {
				if c.Dir != "." || c.Output != Output || len(c.Tags) != 1 || c.Tags[0] != Tag {
					t.Errorf("config = %+v", c)
				}
			},
		},
		{
			name: "overrides",
			toml: `
dir = "physics"
output = "vtables_gen.go"

[types]
BodyID = "u32"
`,
			check: func(t *testing.T, c Config) {
				if c.Dir != "physics" || c.Output != "vtables_gen.go" || c.TestOutput != TestOutput {
					t.Errorf("config = %+v", c)
				}
				if c.Types["BodyID"] != "u32" {
					t.Errorf("types = %v", c.Types)
				}
			},
		},
		{name: "same outputs", toml: `output = "a.go"` + "\n" + `test_output = "a.go"`, wantErr: true},
		{name: "empty dir", toml: `dir = ""`, wantErr: true},
		{name: "bad kind", toml: "[types]\nBodyID = \"u128\"", wantErr: true},
		{name: "bad toml", toml: `dir = `, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vtablegen.toml")
			if err := os.WriteFile(path, []byte(tt.toml), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, cfg)
		})
	}
}
