package desugar

import (
	"testing"

	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

func span(file source.FileID, n int) source.Span {
	return source.Span{File: file, Start: n, End: n + 1}
}

func ident(t *symbol.Table, file source.FileID, name string, n int) cst.Ident {
	return cst.Ident{Name: t.Intern(name), Span: source.Span{File: file, Start: n, End: n + len(name)}}
}

func newUnit(t *testing.T) (*symbol.Table, *report.Collecting, source.FileID) {
	t.Helper()
	syms := symbol.NewTable()
	reg := source.NewRegistry()
	return syms, report.NewCollecting(), reg.Register("t.vp")
}

func letClause(syms *symbol.Table, file source.FileID, name string, n int, nBinders int) cst.LetDecl {
	binders := make([]cst.Binder, nBinders)
	for i := range binders {
		binders[i] = cst.Binder{Pattern: cst.PatWildcard{Span: span(file, n)}}
	}
	return cst.LetDecl{
		Name:    ident(syms, file, name, n),
		Binders: binders,
		Expr:    cst.ExprLiteral{Literal: cst.Literal{Kind: cst.LitUnit, Span: span(file, n)}, Span: span(file, n)},
		Span:    span(file, n),
	}
}

// Contiguous clauses of the same name merge into one LetDecl with one
// LetCase per clause, in source order.
func TestLetDeclMerge(t *testing.T) {
	syms, reporter, file := newUnit(t)
	prog := cst.Program{TopLevels: []cst.TopLevel{
		letClause(syms, file, "id", 0, 1),
		letClause(syms, file, "id", 10, 1),
	}}

	out := File(syms, reporter, prog)

	if !reporter.Empty() {
		t.Fatalf("expected no diagnostics, got %v", reporter.Diagnostics())
	}
	if len(out.Lets) != 1 {
		t.Fatalf("expected 1 merged LetDecl, got %d", len(out.Lets))
	}
	if len(out.Lets[0].Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(out.Lets[0].Cases))
	}
}

// A second zero-arity clause for the same name is a Redeclaration.
func TestLetDeclConstRedeclaration(t *testing.T) {
	syms, reporter, file := newUnit(t)
	prog := cst.Program{TopLevels: []cst.TopLevel{
		letClause(syms, file, "one", 0, 0),
		letClause(syms, file, "one", 10, 0),
	}}

	File(syms, reporter, prog)

	diags := reporter.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if _, ok := diags[0].Kind.(report.Redeclaration); !ok {
		t.Fatalf("expected Redeclaration, got %T", diags[0].Kind)
	}
}

// Clauses of the same name separated by a clause of a different name
// are out of order and are not merged into the later run.
func TestLetDeclOutOfOrder(t *testing.T) {
	syms, reporter, file := newUnit(t)
	prog := cst.Program{TopLevels: []cst.TopLevel{
		letClause(syms, file, "f", 0, 1),
		letClause(syms, file, "g", 10, 1),
		letClause(syms, file, "f", 20, 1),
	}}

	out := File(syms, reporter, prog)

	diags := reporter.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if _, ok := diags[0].Kind.(report.OutOfOrderDefinition); !ok {
		t.Fatalf("expected OutOfOrderDefinition, got %T", diags[0].Kind)
	}

	var f ast.LetDecl
	for _, l := range out.Lets {
		if syms.String(l.Name.Name) == "f" {
			f = l
		}
	}
	if len(f.Cases) != 1 {
		t.Fatalf("expected the out-of-order clause to be dropped from the merge, got %d cases", len(f.Cases))
	}
}

// If lowers to a When over True/False with no If node surviving.
func TestIfLowersToWhen(t *testing.T) {
	syms, reporter, file := newUnit(t)
	c := newCtx(syms, reporter, nil)
	ifE := cst.ExprIf{
		Cond: cst.ExprIdent{Path: cst.Path{Last: ident(syms, file, "b", 0)}, Span: span(file, 0)},
		Then: cst.ExprLiteral{Literal: cst.Literal{Kind: cst.LitUnit}, Span: span(file, 1)},
		Else: cst.ExprLiteral{Literal: cst.Literal{Kind: cst.LitUnit}, Span: span(file, 2)},
		Span: span(file, 0),
	}

	out := c.expr(ifE)

	when, ok := out.(ast.When)
	if !ok {
		t.Fatalf("expected ast.When, got %T", out)
	}
	if len(when.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(when.Arms))
	}
	for _, arm := range when.Arms {
		if _, ok := arm.Pattern.(ast.PatUpper); !ok {
			t.Fatalf("expected PatUpper arm, got %T", arm.Pattern)
		}
	}
}

// A multi-pattern lambda curries into nested single-pattern Lambdas.
func TestLambdaCurries(t *testing.T) {
	syms, reporter, file := newUnit(t)
	c := newCtx(syms, reporter, nil)
	lam := cst.ExprLambda{
		Patterns: []cst.Pattern{
			cst.PatLower{Name: ident(syms, file, "x", 0), Span: span(file, 0)},
			cst.PatLower{Name: ident(syms, file, "y", 1), Span: span(file, 1)},
		},
		Body: cst.ExprIdent{Path: cst.Path{Last: ident(syms, file, "x", 0)}, Span: span(file, 2)},
		Span: span(file, 0),
	}

	out := c.expr(lam)

	outer, ok := out.(ast.Lambda)
	if !ok {
		t.Fatalf("expected outer ast.Lambda, got %T", out)
	}
	if _, ok := outer.Body.(ast.Lambda); !ok {
		t.Fatalf("expected nested ast.Lambda body, got %T", outer.Body)
	}
}

// Binary expressions lower to nested Applications of the operator's
// built-in function.
func TestBinaryLowersToApplication(t *testing.T) {
	syms, reporter, file := newUnit(t)
	c := newCtx(syms, reporter, nil)
	bin := cst.ExprBinary{
		Left:  cst.ExprLiteral{Literal: cst.Literal{Kind: cst.LitInteger}, Span: span(file, 0)},
		Op:    cst.OpAdd,
		Right: cst.ExprLiteral{Literal: cst.Literal{Kind: cst.LitInteger}, Span: span(file, 1)},
		Span:  span(file, 0),
	}

	out := c.expr(bin)

	outer, ok := out.(ast.Application)
	if !ok {
		t.Fatalf("expected ast.Application, got %T", out)
	}
	inner, ok := outer.Func.(ast.Application)
	if !ok {
		t.Fatalf("expected inner ast.Application, got %T", outer.Func)
	}
	fn, ok := inner.Func.(ast.Function)
	if !ok {
		t.Fatalf("expected ast.Function head, got %T", inner.Func)
	}
	if syms.String(fn.Qualified.Last) != "+" {
		t.Fatalf("expected '+' function, got %q", syms.String(fn.Qualified.Last))
	}
}
