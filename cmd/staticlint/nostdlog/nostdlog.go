// Package nostdlog implements an analyzer that forbids the standard
// library loggers inside internal packages.
//
// Everything under internal/ logs through the logrus logger passed in by
// the caller, so records stay structured and honour the configured level.
// Binaries under cmd/ are not checked.
//
// Reported diagnostics
//
//   - an import of "log" or "log/slog" in a package whose path contains an
//     internal element.
package nostdlog

import (
	"go/ast"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name: "nostdlog",
	Doc:  "forbid the standard log packages in internal packages",
	Requires: []*analysis.Analyzer{
		inspect.Analyzer,
	},
	Run: run,
}

var forbidden = map[string]bool{
	"log":      true,
	"log/slog": true,
}

func isInternal(pkgPath string) bool {
	for _, elem := range strings.Split(pkgPath, "/") {
		if elem == "internal" {
			return true
		}
	}
	return false
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg == nil || !isInternal(pass.Pkg.Path()) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.ImportSpec)(nil)}, func(n ast.Node) {
		spec := n.(*ast.ImportSpec)
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || !forbidden[path] {
			return
		}
		pass.Reportf(spec.Pos(), "пакет %s запрещён во внутренних пакетах, используйте logrus", path)
	})
	return nil, nil
}
