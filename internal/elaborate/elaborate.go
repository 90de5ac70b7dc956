// Package elaborate implements component E: the two-pass
// declare/define bidirectional elaborator that turns an ast.Program
// into a populated module.Table, reporting every failure through the
// unit's Reporter instead of ever panicking (spec.md §4.4).
package elaborate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// File elaborates one compilation unit's desugared Program into env's
// shared Table, running declare before define so sibling declarations
// may reference each other regardless of textual order (spec.md
// §4.4.1).
func File(env *module.Env, prog ast.Program) {
	declareProgram(env, prog)
	defineProgram(env, prog)
}

// Unit pairs one file's Env with its desugared Program, the input to
// Files' parallel elaboration.
type Unit struct {
	Env     *module.Env
	Program ast.Program
}

// Files elaborates every Unit concurrently: each gets its own Env (so
// holes and local scopes never cross a goroutine boundary) but every
// Env's Table pointer is the same shared module.Table, and the
// Reporter each Env carries must already be safe for concurrent use —
// report.Collecting and report.Terminal both are (spec.md §5,
// "separate files may be elaborated in parallel; merged afterward").
func Files(ctx context.Context, units []Unit) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, u := range units {
		u := u
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			File(u.Env, u.Program)
			return nil
		})
	}
	return g.Wait()
}

// reportAt is the one place every rule in this package goes through to
// raise a diagnostic; it forwards kind to env's Reporter at env's
// location and does not filter repeated reports of the same failure.
func reportAt(env *module.Env, kind report.ErrorKind) {
	env.Report(kind)
}

// reportTypeError reports err from a failed Unify/Subsumes call: a
// types.UnifyError that already carries a precise ErrorKind (e.g. an
// escaping skolem) is reported verbatim, and everything else falls
// back to a generic report.TypeMismatch between expected and got.
func reportTypeError(env *module.Env, err error, expected, got string) {
	if ue, ok := err.(types.UnifyError); ok && ue.ErrorKind != nil {
		reportAt(env, ue.ErrorKind)
		return
	}
	reportAt(env, report.TypeMismatch{Expected: expected, Got: got})
}
