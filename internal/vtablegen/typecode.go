package vtablegen

import (
	"go/ast"
	"go/types"

	"github.com/dave/jennifer/jen"

	"github.com/wippyai/joltbridge/errors"
)

// typeCode re-emits a parameter type written in file f. Package qualifiers
// are resolved through f's imports so jennifer can manage them.
func typeCode(f *ast.File, expr ast.Expr) (*jen.Statement, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return jen.Id(e.Name), nil
	case *ast.SelectorExpr:
		x, ok := e.X.(*ast.Ident)
		if !ok {
			break
		}
		p := importPath(f, x.Name)
		if p == "" {
			return nil, errors.New(errors.PhaseGenerate, errors.KindNotFound).
				Detail("package %s is not imported", x.Name).
				Build()
		}
		return jen.Qual(p, e.Sel.Name), nil
	case *ast.StarExpr:
		inner, err := typeCode(f, e.X)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(inner), nil
	case *ast.ArrayType:
		elem, err := typeCode(f, e.Elt)
		if err != nil {
			return nil, err
		}
		if e.Len == nil {
			return jen.Index().Add(elem), nil
		}
		return jen.Index(jen.Id(types.ExprString(e.Len))).Add(elem), nil
	case *ast.ParenExpr:
		return typeCode(f, e.X)
	}
	return nil, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
		Detail("type %s cannot be used in a vtable slot", types.ExprString(expr)).
		Build()
}
