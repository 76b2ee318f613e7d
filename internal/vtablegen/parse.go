package vtablegen

import (
	"go/ast"
	"go/build/constraint"
	"go/token"
	"path"
	"strconv"
	"strings"

	"github.com/wippyai/joltbridge/errors"
)

const directivePrefix = "//vtable:"

// reserved names the generated trampolines and adapters use themselves.
var reserved = map[string]bool{"self": true, "T": true, "P": true, "inv": true, "vt": true, "r": true}

type parser struct {
	fset  *token.FileSet
	descs []*Descriptor
	impls []*Impl
	errs  errors.List
}

func (p *parser) errorf(kind errors.Kind, pos token.Pos, format string, args ...any) {
	p.errs = append(p.errs, errors.Positioned(kind, p.fset.Position(pos).String(), format, args...))
}

// Parse scans files for descriptors and implementers. Test files only
// contribute implementers.
func Parse(fset *token.FileSet, files, testFiles []*ast.File) ([]*Descriptor, []*Impl, errors.List) {
	p := &parser{fset: fset}
	for _, f := range files {
		p.file(f, false)
	}
	for _, f := range testFiles {
		p.file(f, true)
	}
	return p.descs, p.impls, p.errs
}

func (p *parser) file(f *ast.File, test bool) {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}
			if doc == nil {
				continue
			}
			for _, c := range doc.List {
				verb, args, ok := directive(c.Text)
				if !ok {
					continue
				}
				switch verb {
				case "generate":
					if test {
						p.errorf(errors.KindUnsupported, c.Pos(), "vtable descriptor %s cannot live in a test file", ts.Name.Name)
						continue
					}
					p.descriptor(f, ts, doc, c.Pos(), args)
				case "impl":
					p.impl(f, ts, c.Pos(), args, test)
				default:
					p.errorf(errors.KindInvalidInput, c.Pos(), "unknown directive vtable:%s", verb)
				}
			}
		}
	}
}

func directive(text string) (string, []string, bool) {
	if !strings.HasPrefix(text, directivePrefix) {
		return "", nil, false
	}
	fields := strings.Fields(text[len(directivePrefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

func (p *parser) descriptor(f *ast.File, ts *ast.TypeSpec, doc *ast.CommentGroup, at token.Pos, args []string) {
	name := ts.Name.Name
	d := &Descriptor{Name: name, Doc: docLines(doc), Pos: ts.Pos(), file: f}

	for _, a := range args {
		if a != "allow_empty" {
			p.errorf(errors.KindInvalidInput, at, "unknown generate option %q", a)
			continue
		}
		d.AllowEmpty = true
	}

	if !descriptorFile(f) {
		p.errorf(errors.KindLayout, ts.Pos(), "vtable %s must be declared in a file constrained by //go:build %s", name, Tag)
	}
	if ts.TypeParams != nil {
		p.errorf(errors.KindUnsupported, ts.TypeParams.Pos(), "vtable %s cannot have type parameters", name)
	}
	if !strings.HasSuffix(name, "VTable") || name == "VTable" {
		p.errorf(errors.KindNaming, ts.Name.Pos(), "the structure %s does not end in VTable", name)
	} else {
		d.Interface = strings.TrimSuffix(name, "VTable")
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		p.errorf(errors.KindUnsupported, ts.Type.Pos(), "vtable %s must be a struct type", name)
		return
	}

	marker := false
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			p.errorf(errors.KindUnsupported, field.Pos(), "vtable fields must be named")
			continue
		}
		for _, id := range field.Names {
			if id.Name == "_" {
				switch {
				case isSelector(f, field.Type, "structs", "HostLayout"):
					marker = true
				case isSelector(f, field.Type, VTablePath, "DropPadding"):
					p.errorf(errors.KindLayout, id.Pos(), "drop padding is inserted by the generator")
				default:
					p.errorf(errors.KindUnsupported, id.Pos(), "blank vtable field")
				}
				continue
			}
			if !id.IsExported() {
				p.errorf(errors.KindVisibility, id.Pos(), "vtable field %s must be exported", id.Name)
				continue
			}
			ft, ok := field.Type.(*ast.FuncType)
			if !ok {
				p.errorf(errors.KindSignature, field.Type.Pos(), "vtable field %s must be a func", id.Name)
				continue
			}
			if s := p.slot(id, field, ft); s != nil {
				d.Slots = append(d.Slots, s)
			}
		}
	}
	if !marker {
		p.errorf(errors.KindLayout, ts.Pos(), "vtable %s is missing a _ structs.HostLayout field", name)
	}

	p.descs = append(p.descs, d)
}

func (p *parser) slot(id *ast.Ident, field *ast.Field, ft *ast.FuncType) *Slot {
	s := &Slot{Name: id.Name, Doc: docLines(field.Doc), Pos: id.Pos()}

	n := 0
	for _, pf := range ft.Params.List {
		if _, ok := pf.Type.(*ast.Ellipsis); ok {
			p.errorf(errors.KindSignature, pf.Type.Pos(), "vtable field %s cannot be variadic", id.Name)
			return nil
		}
		names := pf.Names
		if len(names) == 0 {
			names = []*ast.Ident{nil}
		}
		for _, pn := range names {
			if n == 0 {
				s.Self = pf.Type
				n++
				continue
			}
			name := "arg" + strconv.Itoa(n)
			if pn != nil && pn.Name != "_" && !reserved[pn.Name] {
				name = pn.Name
			}
			s.Params = append(s.Params, Param{Name: name, Type: pf.Type, Pos: pf.Type.Pos()})
			n++
		}
	}

	if ft.Results != nil {
		count := 0
		for _, rf := range ft.Results.List {
			count += max(1, len(rf.Names))
		}
		if count > 1 {
			p.errorf(errors.KindSignature, ft.Results.Pos(), "vtable field %s can return at most one value", id.Name)
			return nil
		}
		if count == 1 {
			rt := ft.Results.List[0].Type
			s.Result = &Param{Name: "r", Type: rt, Pos: rt.Pos()}
		}
	}
	return s
}

func (p *parser) impl(f *ast.File, ts *ast.TypeSpec, at token.Pos, args []string, test bool) {
	if len(args) != 1 {
		p.errorf(errors.KindInvalidInput, at, "vtable:impl takes exactly one vtable name")
		return
	}
	if ts.TypeParams != nil {
		p.errorf(errors.KindUnsupported, ts.TypeParams.Pos(), "implementer %s cannot have type parameters", ts.Name.Name)
		return
	}

	im := &Impl{Type: ts.Name.Name, Package: f.Name.Name, Test: test, Pos: ts.Pos()}
	qual, name, found := strings.Cut(args[0], ".")
	if !found {
		im.VTable = qual
	} else {
		im.VTable = name
		im.Qualifier = qual
		im.Path = importPath(f, qual)
		if im.Path == "" {
			p.errorf(errors.KindNotFound, at, "package %s is not imported", qual)
			return
		}
	}
	if !strings.HasSuffix(im.VTable, "VTable") || im.VTable == "VTable" {
		p.errorf(errors.KindNaming, at, "%s does not name a vtable", args[0])
		return
	}
	p.impls = append(p.impls, im)
}

// descriptorFile reports whether f is built only when Tag is set.
func descriptorFile(f *ast.File) bool {
	for _, cg := range f.Comments {
		if cg.Pos() >= f.Package {
			break
		}
		for _, c := range cg.List {
			if !constraint.IsGoBuild(c.Text) {
				continue
			}
			expr, err := constraint.Parse(c.Text)
			if err != nil {
				return false
			}
			with := expr.Eval(func(tag string) bool { return tag == Tag })
			without := expr.Eval(func(string) bool { return false })
			return with && !without
		}
	}
	return false
}

// importPath resolves a package qualifier used in f.
func importPath(f *ast.File, name string) string {
	for _, is := range f.Imports {
		p, err := strconv.Unquote(is.Path.Value)
		if err != nil {
			continue
		}
		local := path.Base(p)
		if is.Name != nil {
			local = is.Name.Name
		}
		if local == name {
			return p
		}
	}
	return ""
}

// isSelector reports whether expr is pkg.name where pkg is imported from
// importPath.
func isSelector(f *ast.File, expr ast.Expr, importPathWant, name string) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && importPath(f, x.Name) == importPathWant
}

func docLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}
	text := strings.TrimRight(cg.Text(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
