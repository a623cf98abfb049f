// Command staticlint runs the analyzers enforced on the netpulse sources.
//
// Usage, from the repository root:
//
//	go run ./cmd/staticlint ./...
//
// Included analyzers:
//
//   - the x/tools passes listed in analyzers (printf, shadow, lostcancel ...)
//   - every SA check of staticcheck plus a few S and ST checks
//   - bodyclose, exportloopref, nilerr and asciicheck
//   - nostdlog, which forbids the standard log packages under internal/
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"

	// standard passes
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/deepequalerrors"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sortslice"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"

	// staticcheck
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	// extra public analyzers
	"github.com/gostaticanalysis/nilerr"
	"github.com/kyoh86/exportloopref"
	asciicheck "github.com/tdakkota/asciicheck"
	"github.com/timakin/bodyclose/passes/bodyclose"

	// custom analyzer
	"github.com/Hobrus/netpulse/cmd/staticlint/nostdlog"
)

// simpleChecks and styleChecks are the analyzers picked from the
// non-SA staticcheck classes.
var (
	simpleChecks = map[string]bool{"S1000": true, "S1009": true, "S1021": true}
	styleChecks  = map[string]bool{"ST1005": true, "ST1019": true}
)

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		asmdecl.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		deepequalerrors.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		shadow.Analyzer,
		sortslice.Analyzer,
		stringintconv.Analyzer,
		structtag.Analyzer,
		testinggoroutine.Analyzer,
		tests.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unsafeptr.Analyzer,
		unusedresult.Analyzer,
	}

	for _, v := range staticcheck.Analyzers {
		if v.Analyzer != nil && strings.HasPrefix(v.Analyzer.Name, "SA") {
			list = append(list, v.Analyzer)
		}
	}
	for _, v := range simple.Analyzers {
		if v.Analyzer != nil && simpleChecks[v.Analyzer.Name] {
			list = append(list, v.Analyzer)
		}
	}
	for _, v := range stylecheck.Analyzers {
		if v.Analyzer != nil && styleChecks[v.Analyzer.Name] {
			list = append(list, v.Analyzer)
		}
	}

	return append(list,
		bodyclose.Analyzer,
		exportloopref.Analyzer,
		nilerr.Analyzer,
		asciicheck.NewAnalyzer(),
		nostdlog.Analyzer,
	)
}

func main() {
	multichecker.Main(analyzers()...)
}
