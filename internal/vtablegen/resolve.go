package vtablegen

import (
	"go/ast"
	"go/types"
	"sort"
	"strings"

	"github.com/wippyai/joltbridge/errors"
)

// Resolver decides how a parameter type written in file f crosses the
// boundary.
type Resolver interface {
	Resolve(f *ast.File, expr ast.Expr) (Kind, error)
}

// TypesResolver classifies types from type-checker output.
type TypesResolver struct {
	Info *types.Info
}

func (r TypesResolver) Resolve(_ *ast.File, expr ast.Expr) (Kind, error) {
	if r.Info == nil {
		return KindInvalid, unresolved(expr, "no type information")
	}
	t := r.Info.TypeOf(expr)
	if t == nil || t == types.Typ[types.Invalid] {
		return KindInvalid, unresolved(expr, "type did not check")
	}
	if k := Classify(t); k != KindInvalid {
		return k, nil
	}
	return KindInvalid, unresolved(expr, "unsupported type "+t.String())
}

// Classify maps a Go type to its boundary kind, or KindInvalid.
func Classify(t types.Type) Kind {
	t = types.Unalias(t)
	if n, ok := t.(*types.Named); ok {
		obj := n.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() == ForeignPath && obj.Name() == "Ptr" {
			return KindPtr
		}
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return basicKind(u.Kind())
	case *types.Struct, *types.Array:
		return KindStruct
	case *types.Pointer:
		switch u.Elem().Underlying().(type) {
		case *types.Struct, *types.Array:
			return KindStructPtr
		}
	}
	return KindInvalid
}

func basicKind(k types.BasicKind) Kind {
	switch k {
	case types.Bool:
		return KindBool
	case types.Int8, types.Int16, types.Int32:
		return KindI32
	case types.Uint8, types.Uint16, types.Uint32:
		return KindU32
	case types.Int64:
		return KindI64
	case types.Uint64:
		return KindU64
	case types.Float32:
		return KindF32
	case types.Float64:
		return KindF64
	}
	// int, uint and uintptr change size with the host and have no fixed
	// guest counterpart.
	return KindInvalid
}

// NameResolver classifies types by how they are written. Predeclared
// fixed-size types are always known; other names, qualified as written in
// the source ("BodyID", "mgl32.Vec3"), are looked up in the map. A pointer
// to a name of kind struct is a struct pointer.
type NameResolver map[string]Kind

func (r NameResolver) Resolve(_ *ast.File, expr ast.Expr) (Kind, error) {
	if star, ok := expr.(*ast.StarExpr); ok {
		k, err := r.Resolve(nil, star.X)
		if err != nil {
			return KindInvalid, err
		}
		if k != KindStruct {
			return KindInvalid, unresolved(expr, "only pointers to plain data are supported")
		}
		return KindStructPtr, nil
	}

	name := types.ExprString(expr)
	if k, ok := r[name]; ok {
		return k, nil
	}
	if _, ok := expr.(*ast.ArrayType); ok {
		return KindStruct, nil
	}
	if obj := types.Universe.Lookup(name); obj != nil {
		if b, ok := obj.Type().(*types.Basic); ok {
			if k := basicKind(b.Kind()); k != KindInvalid {
				return k, nil
			}
		}
	}
	if name == "foreign.Ptr" {
		return KindPtr, nil
	}
	return KindInvalid, unresolved(expr, "unknown type")
}

// Chain tries each resolver in order and returns the first answer.
type Chain []Resolver

func (c Chain) Resolve(f *ast.File, expr ast.Expr) (Kind, error) {
	var last error = unresolved(expr, "no resolver")
	for _, r := range c {
		k, err := r.Resolve(f, expr)
		if err == nil {
			return k, nil
		}
		last = err
	}
	return KindInvalid, last
}

// ParseKinds converts a name to kind table as found in configuration files.
func ParseKinds(m map[string]string) (NameResolver, error) {
	out := make(NameResolver, len(m))
	var bad []string
	for name, kind := range m {
		k, ok := ParseKind(kind)
		if !ok {
			bad = append(bad, name+" = "+kind)
			continue
		}
		out[name] = k
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("unknown kinds: %s", strings.Join(bad, ", ")).
			Build()
	}
	return out, nil
}

func unresolved(expr ast.Expr, why string) error {
	return errors.New(errors.PhaseGenerate, errors.KindUnsupported).
		GoType(types.ExprString(expr)).
		Detail("cannot pass %s across the boundary: %s", types.ExprString(expr), why).
		Build()
}
