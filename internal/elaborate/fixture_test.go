package elaborate

import (
	"fmt"
	"testing"

	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/fixture"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

// identityProgram builds the desugared AST for `let identity x = x`
// directly, standing in for what the desugarer would hand elaborate
// for that one-clause definition.
func identityProgram(syms *symbol.Table, span source.Span) ast.Program {
	x := syms.Intern("x")
	name := syms.Intern("identity")
	return ast.Program{
		Lets: []ast.LetDecl{{
			Name: ast.Ident{Name: name, Span: span},
			Cases: []ast.LetCase{{
				NameRange: span,
				Patterns:  []ast.Pattern{ast.PatLower{Name: ast.Ident{Name: x, Span: span}, Span: span}},
				Body:      ast.Variable{Qualified: ast.Qualified{Last: x, Span: span}, Span: span},
			}},
			Span: span,
		}},
	}
}

// notProgram builds the desugared AST for
// `let not x = when x { True -> False; False -> True }`, exercising
// checkWhen's collective-arm unification against the two builtin Bool
// constructors.
func notProgram(syms *symbol.Table, span source.Span) ast.Program {
	x := syms.Intern("x")
	name := syms.Intern("not")
	trueSym := syms.Intern("True")
	falseSym := syms.Intern("False")
	scrutinee := ast.Variable{Qualified: ast.Qualified{Last: x, Span: span}, Span: span}
	arms := []ast.WhenArm{
		{
			Pattern: ast.PatUpper{Qualified: ast.Qualified{Last: trueSym, Span: span}, Span: span},
			Then:    ast.Constructor{Qualified: ast.Qualified{Last: falseSym, Span: span}, Span: span},
			Span:    span,
		},
		{
			Pattern: ast.PatUpper{Qualified: ast.Qualified{Last: falseSym, Span: span}, Span: span},
			Then:    ast.Constructor{Qualified: ast.Qualified{Last: trueSym, Span: span}, Span: span},
			Span:    span,
		},
	}
	return ast.Program{
		Lets: []ast.LetDecl{{
			Name: ast.Ident{Name: name, Span: span},
			Cases: []ast.LetCase{{
				NameRange: span,
				Patterns:  []ast.Pattern{ast.PatLower{Name: ast.Ident{Name: x, Span: span}, Span: span}},
				Body:      ast.When{Scrutinee: scrutinee, Arms: arms, Span: span},
			}},
			Span: span,
		}},
	}
}

// TestElaborateFixtures exercises the whole declare/define path end to
// end against every golden fixture under testdata: identity.txtar
// checks `let identity x = x` generalizes to `forall a. a -> a` with
// no signature given, the smallest non-trivial program the two-pass
// elaborator has to get right, and not.txtar checks a When expression
// unifies its two arms' result types against one shared expectation.
func TestElaborateFixtures(t *testing.T) {
	programs := map[string]func(*symbol.Table, source.Span) ast.Program{
		"identity": identityProgram,
		"not":      notProgram,
	}

	cases := fixture.Load(t, "testdata")
	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			build, ok := programs[c.Name]
			if !ok {
				t.Fatalf("no program builder registered for fixture %q", c.Name)
			}

			syms := symbol.NewTable()
			registry := source.NewRegistry()
			file := registry.Register("<fixture>")
			span := source.Span{File: file, Start: 0, End: 1}

			table := module.NewTable(syms)
			Builtins(syms, table)
			env := module.New(syms, table, report.NewCollecting(), nil)

			File(env, build(syms, span))

			info, ok := table.Variable(nil, syms.Intern(c.Name))
			if !ok {
				t.Fatalf("%s was not declared", c.Name)
			}
			c.Check(t, fmt.Sprintf("%s : %s", c.Name, info.Scheme.String()))
		})
	}
}
