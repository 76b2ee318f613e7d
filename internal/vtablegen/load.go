package vtablegen

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/wippyai/joltbridge/errors"
)

// Load reads the package in dir with the given build tags set, type checks
// it and parses its test files. Descriptor files are only seen when Tag is
// among tags.
//
// Type errors elsewhere in the package are tolerated: with Tag set the
// generated file is excluded, so code that uses generated names does not
// check. Only the slot parameter types need to resolve.
func Load(dir string, tags []string) (*Package, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
		Fset: fset,
	}
	if len(tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(tags, ",")}
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, errors.Load("loading "+dir, err)
	}
	if len(pkgs) == 0 {
		return nil, errors.NotFound(errors.PhaseLoad, "package", dir)
	}
	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		Logger().Debug("tolerated package error", zap.String("package", pkg.PkgPath), zap.String("error", e.Error()))
	}
	if len(pkg.Syntax) == 0 {
		return nil, errors.NotFound(errors.PhaseLoad, "go files", dir)
	}

	tests, err := parseTests(fset, dir)
	if err != nil {
		return nil, err
	}

	return &Package{
		Name:      pkg.Name,
		Path:      pkg.PkgPath,
		Fset:      fset,
		Files:     pkg.Syntax,
		TestFiles: tests,
		Resolver:  TypesResolver{Info: pkg.TypesInfo},
	}, nil
}

// parseTests parses the _test.go files of dir. Implementer directives need
// no type information, so syntax is enough.
func parseTests(fset *token.FileSet, dir string) ([]*ast.File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_test.go"))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "glob "+dir)
	}
	var files []*ast.File
	for _, p := range paths {
		if filepath.Base(p) == TestOutput {
			continue
		}
		f, err := goparser.ParseFile(fset, p, nil, goparser.ParseComments)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "parse "+p)
		}
		files = append(files, f)
	}
	return files, nil
}
