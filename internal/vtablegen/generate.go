package vtablegen

import (
	"bytes"
	"go/ast"
	"go/token"
	"path"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"

	"github.com/wippyai/joltbridge/errors"
)

// Package is one Go package as the generator sees it.
type Package struct {
	Name string

	// Path is the import path, informational only.
	Path string

	Fset      *token.FileSet
	Files     []*ast.File
	TestFiles []*ast.File

	// Resolver classifies slot parameter types.
	Resolver Resolver
}

// Result holds the rendered files. A nil source means there is nothing to
// write for that file.
type Result struct {
	Source     []byte
	TestSource []byte

	Descriptors []*Descriptor
	Impls       []*Impl
}

type generator struct {
	pkg    *Package
	descs  map[string]*Descriptor
	splits map[*Descriptor][]*Split
	errs   errors.List
}

// Generate parses pkg, validates every descriptor and implementer, and
// renders the generated files. All violations are reported together as an
// errors.List.
func Generate(pkg *Package) (*Result, error) {
	if pkg.Resolver == nil {
		pkg.Resolver = NameResolver{}
	}
	descs, impls, errs := Parse(pkg.Fset, pkg.Files, pkg.TestFiles)
	g := &generator{
		pkg:    pkg,
		descs:  make(map[string]*Descriptor, len(descs)),
		splits: make(map[*Descriptor][]*Split, len(descs)),
		errs:   errs,
	}

	for _, d := range descs {
		g.descs[d.Name] = d
		for _, s := range d.Slots {
			sp, err := SplitSlot(pkg.Fset, d, s)
			if err != nil {
				g.fail(err)
				continue
			}
			g.resolve(d, s)
			g.splits[d] = append(g.splits[d], sp)
		}
	}
	for _, im := range impls {
		if im.Path == "" && g.descs[im.VTable] == nil {
			g.errs = append(g.errs, errors.Positioned(errors.KindNotFound, pkg.Fset.Position(im.Pos).String(),
				"vtable %s for %s is not declared in this package", im.VTable, im.Type))
		}
	}
	if len(g.errs) > 0 {
		return nil, g.errs
	}

	res := &Result{Descriptors: descs, Impls: impls}

	var main, test []*Impl
	for _, im := range impls {
		if im.Test {
			test = append(test, im)
		} else {
			main = append(main, im)
		}
	}

	var err error
	if len(descs) > 0 || len(main) > 0 {
		if res.Source, err = g.render(g.packageName(), descs, main); err != nil {
			return nil, err
		}
	}
	if len(test) > 0 {
		name := test[0].Package
		for _, im := range test[1:] {
			if im.Package != name {
				return nil, errors.Positioned(errors.KindUnsupported, pkg.Fset.Position(im.Pos).String(),
					"implementers in both %s and %s test packages", name, im.Package)
			}
		}
		if res.TestSource, err = g.render(name, nil, test); err != nil {
			return nil, err
		}
	}

	Logger().Debug("generated",
		zap.String("package", g.packageName()),
		zap.Int("descriptors", len(descs)),
		zap.Int("impls", len(impls)),
	)
	return res, nil
}

func (g *generator) fail(err error) {
	if e, ok := err.(*errors.Error); ok {
		g.errs = append(g.errs, e)
		return
	}
	g.errs = append(g.errs, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "generate"))
}

func (g *generator) packageName() string {
	if g.pkg.Name != "" {
		return g.pkg.Name
	}
	if len(g.pkg.Files) > 0 {
		return g.pkg.Files[0].Name.Name
	}
	return "main"
}

// resolve fills in the boundary kind of every parameter and the result.
func (g *generator) resolve(d *Descriptor, s *Slot) {
	for i := range s.Params {
		p := &s.Params[i]
		k, err := g.pkg.Resolver.Resolve(d.file, p.Type)
		if err != nil {
			g.fail(positioned(g.pkg.Fset, err, p.Pos))
			continue
		}
		if k == KindStructPtr {
			if _, ok := p.Type.(*ast.StarExpr); !ok {
				g.errs = append(g.errs, errors.Positioned(errors.KindUnsupported, g.pkg.Fset.Position(p.Pos).String(),
					"pointer parameter %s of %s must be written as *T", p.Name, s.Name))
				continue
			}
		}
		p.Kind = k
	}
	if s.Result == nil {
		return
	}
	k, err := g.pkg.Resolver.Resolve(d.file, s.Result.Type)
	if err != nil {
		g.fail(positioned(g.pkg.Fset, err, s.Result.Pos))
		return
	}
	if k == KindStruct || k == KindStructPtr {
		g.errs = append(g.errs, errors.Positioned(errors.KindUnsupported, g.pkg.Fset.Position(s.Result.Pos).String(),
			"%s cannot return plain data, pass a pointer parameter instead", s.Name))
		return
	}
	s.Result.Kind = k
}

// header opens every generated file. The build constraint keeps generated
// code out of the descriptor-only build the generator loads.
const header = "// Code generated by vtablegen. DO NOT EDIT.\n\n//go:build !" + Tag + "\n\n"

func (g *generator) render(name string, descs []*Descriptor, impls []*Impl) ([]byte, error) {
	f := jen.NewFile(name)
	f.ImportName(VTablePath, "vtable")
	f.ImportName(ForeignPath, "foreign")
	f.ImportName(APIPath, "api")
	for _, im := range impls {
		switch {
		case im.Path == "":
		case im.Qualifier == path.Base(im.Path):
			f.ImportName(im.Path, im.Qualifier)
		default:
			f.ImportAlias(im.Path, im.Qualifier)
		}
	}

	for _, d := range descs {
		g.emitDescriptor(f, d)
	}

	count := make(map[string]int, len(impls))
	for _, im := range impls {
		count[im.Type]++
	}
	for _, im := range impls {
		g.emitImpl(f, im, count[im.Type] > 1)
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "render "+name)
	}
	return buf.Bytes(), nil
}

func (g *generator) emitDescriptor(f *jen.File, d *Descriptor) {
	splits := g.splits[d]

	// the table itself, padded after Drop
	fields := []jen.Code{jen.Id("_").Qual("structs", "HostLayout")}
	for _, sp := range splits {
		for _, line := range sp.Slot.Doc {
			fields = append(fields, jen.Comment(line))
		}
		fields = append(fields, sp.Field)
		if sp.Slot.Destructor {
			fields = append(fields, jen.Id("_").Qual(VTablePath, "DropPadding"))
		}
	}
	for _, line := range d.Doc {
		f.Comment(line)
	}
	f.Type().Id(d.Name).Struct(fields...)
	f.Line()

	var methods []jen.Code
	for _, sp := range splits {
		if sp.Slot.Destructor {
			continue
		}
		for _, line := range sp.Slot.Doc {
			methods = append(methods, jen.Comment(line))
		}
		methods = append(methods, sp.Method)
	}
	f.Commentf("%s is implemented by the data of pairs whose table was built by %s.", d.Interface, d.constructor())
	f.Type().Id(d.Interface).Interface(methods...)
	f.Line()

	f.Type().Id(d.constraint()).Types(jen.Id("T").Id("any")).Interface(
		jen.Op("*").Id("T"),
		jen.Id(d.Interface),
	)
	f.Line()

	entries := jen.Dict{}
	for _, sp := range splits {
		if sp.Slot.Destructor {
			entries[jen.Id(sp.Slot.Name)] = jen.Qual(VTablePath, "DropGlue").Types(jen.Id("T"), jen.Id(d.Name))
			continue
		}
		entries[jen.Id(sp.Slot.Name)] = jen.Id(d.trampoline(sp.Slot.Name)).Types(jen.Id("T"), jen.Id("P"))
	}
	f.Commentf("%s builds the %s of implementer T.", d.constructor(), d.Name)
	f.Func().Id(d.constructor()).Types(d.typeParams()...).Params().Op("*").Id(d.Name).Block(
		jen.Return(jen.Op("&").Id(d.Name).Values(entries)),
	)
	f.Line()

	for _, sp := range splits {
		if sp.Trampoline != nil {
			f.Add(sp.Trampoline)
			f.Line()
		}
	}

	slots := make([]jen.Code, 0, len(splits))
	for _, sp := range splits {
		slots = append(slots, g.slotLiteral(d, sp.Slot))
	}
	f.Var().Id(d.interfaceVar()).Op("=").Op("&").Qual(ForeignPath, "Interface").Values(jen.Dict{
		jen.Id("Name"): jen.Lit(d.Interface),
		jen.Id("Slots"): jen.Index().Qual(ForeignPath, "Slot").CustomFunc(slotList, func(gr *jen.Group) {
			for _, s := range slots {
				gr.Add(s)
			}
		}),
	})
	f.Line()

	f.Commentf("ForeignInterface describes %s to a foreign library.", d.Name)
	f.Func().Params(jen.Op("*").Id(d.Name)).Id("ForeignInterface").Params().Op("*").Qual(ForeignPath, "Interface").Block(
		jen.Return(jen.Id(d.interfaceVar())),
	)
	f.Line()

	if d.AllowEmpty {
		g.emitNoop(f, d, splits)
	}
}

// slotList puts every slot literal on its own lines.
var slotList = jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}

// slotLiteral renders the foreign.Slot of s, whose Invoke adapter decodes
// guest arguments and calls through the Go table of the pair.
func (g *generator) slotLiteral(d *Descriptor, s *Slot) jen.Code {
	fields := jen.Dict{jen.Id("Name"): jen.Lit(s.Name)}
	if s.Mutable {
		fields[jen.Id("Mutable")] = jen.True()
	}
	if s.Destructor {
		fields[jen.Id("Destructor")] = jen.True()
	}
	if len(s.Params) > 0 {
		fields[jen.Id("Params")] = valueTypes(s.Params)
	}
	if s.Result != nil {
		fields[jen.Id("Results")] = valueTypes([]Param{*s.Result})
	}

	self := jen.Id("inv").Dot("Self").Call()
	table := jen.Qual(VTablePath, "TableOf").Types(jen.Id(d.Name)).Call(self)

	var body []jen.Code
	if s.Destructor {
		body = append(body, table.Dot(s.Name).Call(jen.Qual(VTablePath, "SelfMut").Call(jen.Id("inv").Dot("Self").Call())))
	} else {
		body = append(body, jen.Id("vt").Op(":=").Add(table))

		selfType := "Self"
		if s.Mutable {
			selfType = "SelfMut"
		}
		args := []jen.Code{jen.Qual(VTablePath, selfType).Call(jen.Id("inv").Dot("Self").Call())}
		var after []jen.Code
		for i, p := range s.Params {
			switch p.Kind {
			case KindStruct:
				t, _ := typeCode(d.file, p.Type)
				body = append(body, jen.Id("a"+strconv.Itoa(i)).Op(":=").Qual(ForeignPath, "Load").Types(t).Call(jen.Id("inv"), jen.Lit(i)))
				args = append(args, jen.Id("a"+strconv.Itoa(i)))
			case KindStructPtr:
				t, _ := typeCode(d.file, p.Type.(*ast.StarExpr).X)
				body = append(body, jen.Id("a"+strconv.Itoa(i)).Op(":=").Qual(ForeignPath, "Load").Types(t).Call(jen.Id("inv"), jen.Lit(i)))
				args = append(args, jen.Op("&").Id("a"+strconv.Itoa(i)))
				after = append(after, jen.Qual(ForeignPath, "Store").Call(jen.Id("inv"), jen.Lit(i), jen.Op("&").Id("a"+strconv.Itoa(i))))
			default:
				args = append(args, g.argument(d, p, i))
			}
		}

		call := jen.Id("vt").Dot(s.Name).Call(args...)
		if s.Result == nil {
			body = append(body, call)
			body = append(body, after...)
		} else {
			body = append(body, jen.Id("r").Op(":=").Add(call))
			body = append(body, after...)
			body = append(body, g.ret(d, s.Result))
		}
	}

	fields[jen.Id("Invoke")] = jen.Func().Params(jen.Id("inv").Op("*").Qual(ForeignPath, "Invocation")).Block(body...)
	return jen.Values(fields)
}

type access struct{ get, ret, natural string }

var accessors = map[Kind]access{
	KindBool: {"Bool", "ReturnBool", "bool"},
	KindI32:  {"I32", "ReturnI32", "int32"},
	KindU32:  {"U32", "ReturnU32", "uint32"},
	KindI64:  {"I64", "ReturnI64", "int64"},
	KindU64:  {"U64", "ReturnU64", "uint64"},
	KindF32:  {"F32", "ReturnF32", "float32"},
	KindF64:  {"F64", "ReturnF64", "float64"},
	KindPtr:  {"Ptr", "ReturnU32", "uint32"},
}

// argument decodes parameter i, converting when the declared type is not
// the accessor's own.
func (g *generator) argument(d *Descriptor, p Param, i int) jen.Code {
	a := accessors[p.Kind]
	get := jen.Id("inv").Dot(a.get).Call(jen.Lit(i))
	if p.Kind == KindPtr && isSelector(d.file, p.Type, ForeignPath, "Ptr") {
		return get
	}
	if id, ok := p.Type.(*ast.Ident); ok && id.Name == a.natural && p.Kind != KindPtr {
		return get
	}
	t, _ := typeCode(d.file, p.Type)
	return t.Call(get)
}

func (g *generator) ret(d *Descriptor, r *Param) jen.Code {
	a := accessors[r.Kind]
	val := jen.Id("r")
	if id, ok := r.Type.(*ast.Ident); !ok || id.Name != a.natural {
		val = jen.Id(a.natural).Call(jen.Id("r"))
	}
	return jen.Id("inv").Dot(a.ret).Call(val)
}

func valueTypes(params []Param) jen.Code {
	return jen.Index().Qual(APIPath, "ValueType").ValuesFunc(func(gr *jen.Group) {
		for _, p := range params {
			gr.Qual(APIPath, p.Kind.valueType())
		}
	})
}

func (g *generator) emitNoop(f *jen.File, d *Descriptor, splits []*Split) {
	name := d.noop()
	f.Commentf("%s stands in for an absent %s. Its methods must never run:", name, d.Interface)
	f.Comment("a callback that reaches one aborts the foreign library.")
	f.Type().Id(name).Struct()
	f.Line()

	for _, sp := range splits {
		if sp.Slot.Destructor {
			continue
		}
		f.Func().Params(jen.Id(name)).Add(sp.Method).Block(
			jen.Panic(jen.Qual(VTablePath, "Unreachable").Call(jen.Lit(d.Interface), jen.Lit(sp.Slot.Name))),
		)
		f.Line()
	}

	table := lowerFirst(name) + d.Name
	f.Var().Id(table).Op("=").Id(d.constructor()).Types(jen.Id(name)).Call()
	f.Line()

	ctor := exportAs("New"+name+"Box", d.exported())
	f.Commentf("%s returns a pair with no implementation behind it.", ctor)
	f.Func().Id(ctor).Params().Op("*").Qual(VTablePath, "Pair").Types(jen.Id(name), jen.Id(d.Name)).Block(
		jen.Return(jen.Qual(VTablePath, "NewBox").Call(jen.Id(table), jen.Id(name).Values())),
	)
	f.Line()
}

// emitImpl renders the registrar output for one implementer: an assertion
// that it satisfies the interface, its single table and two constructors.
func (g *generator) emitImpl(f *jen.File, im *Impl, multi bool) {
	iface := strings.TrimSuffix(im.VTable, "VTable")

	qual := func(name string) *jen.Statement {
		if im.Path == "" {
			return jen.Id(name)
		}
		return jen.Qual(im.Path, name)
	}
	ctor := "New" + iface + "VTable"
	if d := g.descs[im.VTable]; im.Path == "" && d != nil {
		ctor = d.constructor()
	}

	suffix := ""
	if multi {
		suffix = upperFirst(iface)
	}
	exported := ast.IsExported(im.Type)
	table := lowerFirst(im.Type) + upperFirst(im.VTable)
	pair := exportAs("New"+upperFirst(im.Type)+suffix+"Pair", exported)
	box := exportAs("New"+upperFirst(im.Type)+suffix+"Box", exported)

	f.Var().Id("_").Add(qual(iface)).Op("=").Parens(jen.Op("*").Id(im.Type)).Call(jen.Nil())
	f.Line()
	f.Var().Id(table).Op("=").Add(qual(ctor)).Types(jen.Id(im.Type)).Call()
	f.Line()

	f.Commentf("%s pairs data with the %s of %s.", pair, im.VTable, im.Type)
	f.Func().Id(pair).Params(jen.Id("data").Id(im.Type)).Qual(VTablePath, "Pair").Types(jen.Id(im.Type), qual(im.VTable)).Block(
		jen.Return(jen.Qual(VTablePath, "NewPair").Call(jen.Id(table), jen.Id("data"))),
	)
	f.Line()

	f.Commentf("%s is %s on the heap, ready to be handed out.", box, pair)
	f.Func().Id(box).Params(jen.Id("data").Id(im.Type)).Op("*").Qual(VTablePath, "Pair").Types(jen.Id(im.Type), qual(im.VTable)).Block(
		jen.Return(jen.Qual(VTablePath, "NewBox").Call(jen.Id(table), jen.Id("data"))),
	)
	f.Line()
}

func exportAs(name string, exported bool) string {
	if exported {
		return name
	}
	return lowerFirst(name)
}
