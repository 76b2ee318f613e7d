package vtablegen

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/wippyai/joltbridge/errors"
)

// Split holds the views derived from one descriptor field.
//
// For a field
//
//	Add func(self vtable.SelfMut, n uint32) uint32
//
// of CounterVTable they are
//
//	Field       Add func(self vtable.SelfMut, n uint32) uint32
//	Method      Add(n uint32) uint32
//	Forward     P(vtable.DataMut[T, CounterVTable](self)).Add(n)
//	Trampoline  func counterAdd[T any, P counterImpl[T]](self vtable.SelfMut, n uint32) uint32 { return <Forward> }
//
// The destructor only has a Field; its slot is filled with vtable.DropGlue.
type Split struct {
	Slot       *Slot
	Field      *jen.Statement
	Method     *jen.Statement
	Forward    *jen.Statement
	Trampoline *jen.Statement
}

// SplitSlot validates the receiver of s and derives its views.
func SplitSlot(fset *token.FileSet, d *Descriptor, s *Slot) (*Split, error) {
	at := func(pos token.Pos, kind errors.Kind, format string, args ...any) error {
		return errors.Positioned(kind, fset.Position(pos).String(), format, args...)
	}

	switch {
	case s.Self == nil:
		return nil, at(s.Pos, errors.KindSignature, "first parameter of %s must be vtable.Self or vtable.SelfMut", s.Name)
	case isSelector(d.file, s.Self, VTablePath, "SelfMut"):
		s.Mutable = true
	case isSelector(d.file, s.Self, VTablePath, "Self"):
		s.Mutable = false
	default:
		return nil, at(s.Self.Pos(), errors.KindSignature, "first parameter of %s must be vtable.Self or vtable.SelfMut", s.Name)
	}

	if s.Name == destructorName {
		s.Destructor = true
		if !s.Mutable {
			return nil, at(s.Self.Pos(), errors.KindSignature, "first parameter of Drop must be vtable.SelfMut")
		}
		if len(s.Params) > 0 || s.Result != nil {
			return nil, at(s.Pos, errors.KindSignature, "Drop takes only the self pointer and returns nothing")
		}
	}

	var params, args []jen.Code
	for _, p := range s.Params {
		t, err := typeCode(d.file, p.Type)
		if err != nil {
			return nil, positioned(fset, err, p.Pos)
		}
		params = append(params, jen.Id(p.Name).Add(t))
		args = append(args, jen.Id(p.Name))
	}
	result := jen.Null()
	if s.Result != nil {
		t, err := typeCode(d.file, s.Result.Type)
		if err != nil {
			return nil, positioned(fset, err, s.Result.Pos)
		}
		result = t
	}

	selfType, dataFn := "Self", "Data"
	if s.Mutable {
		selfType, dataFn = "SelfMut", "DataMut"
	}
	self := jen.Id("self").Qual(VTablePath, selfType)

	sp := &Split{
		Slot:  s,
		Field: jen.Id(s.Name).Func().Params(append([]jen.Code{self}, params...)...).Add(result),
	}
	if s.Destructor {
		return sp, nil
	}

	sp.Method = jen.Id(s.Name).Params(params...).Add(result)
	sp.Forward = jen.Id("P").Call(
		jen.Qual(VTablePath, dataFn).Types(jen.Id("T"), jen.Id(d.Name)).Call(jen.Id("self")),
	).Dot(s.Name).Call(args...)

	body := sp.Forward
	if s.Result != nil {
		body = jen.Return(sp.Forward)
	}
	sp.Trampoline = jen.Func().Id(d.trampoline(s.Name)).Types(d.typeParams()...).
		Params(append([]jen.Code{jen.Id("self").Qual(VTablePath, selfType)}, params...)...).
		Add(result).
		Block(body)
	return sp, nil
}

func positioned(fset *token.FileSet, err error, pos token.Pos) error {
	if e, ok := err.(*errors.Error); ok {
		e.Pos = fset.Position(pos).String()
	}
	return err
}

// Names of the generated declarations. They follow the visibility of the
// descriptor.

func (d *Descriptor) exported() bool { return ast.IsExported(d.Name) }

func (d *Descriptor) constraint() string { return lowerFirst(d.Interface) + "Impl" }

func (d *Descriptor) trampoline(slot string) string { return lowerFirst(d.Interface) + slot }

func (d *Descriptor) interfaceVar() string { return lowerFirst(d.Interface) + "Interface" }

func (d *Descriptor) constructor() string {
	if d.exported() {
		return "New" + d.Interface + "VTable"
	}
	return "new" + upperFirst(d.Interface) + "VTable"
}

func (d *Descriptor) noop() string {
	if d.exported() {
		return "Noop" + d.Interface
	}
	return "noop" + upperFirst(d.Interface)
}

func (d *Descriptor) typeParams() []jen.Code {
	return []jen.Code{
		jen.Id("T").Id("any"),
		jen.Id("P").Id(d.constraint()).Types(jen.Id("T")),
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
