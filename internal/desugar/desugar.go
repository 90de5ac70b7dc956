// Package desugar lowers a concrete syntax tree (component/cst) into
// the abstract syntax tree (component/ast): component B of the
// front-end. Its centerpiece is merging every `let` clause sharing a
// name, within one namespace, into a single LetDecl carrying one
// LetCase per clause (spec.md §4.1).
package desugar

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

// ctx is the desugarer's working state for one compilation unit,
// mirroring the Rust DesugarCtx: a namespace-keyed table of
// in-progress let clauses plus the name most recently seen, used to
// detect clauses that are not textually contiguous.
type ctx struct {
	symbols   *symbol.Table
	reporter  report.Reporter
	namespace []symbol.Symbol

	rightNow *symbol.Symbol
	letCases map[symbol.Symbol][]ast.LetCase
	letName  map[symbol.Symbol]ast.Ident // first clause's Ident, for the merged decl's span
}

func newCtx(symbols *symbol.Table, reporter report.Reporter, namespace []symbol.Symbol) *ctx {
	return &ctx{
		symbols:   symbols,
		reporter:  reporter,
		namespace: namespace,
		letCases:  make(map[symbol.Symbol][]ast.LetCase),
		letName:   make(map[symbol.Symbol]ast.Ident),
	}
}

// File desugars one parsed compilation unit into an ast.Program.
func File(symbols *symbol.Table, reporter report.Reporter, prog cst.Program) ast.Program {
	c := newCtx(symbols, reporter, nil)
	return c.program(prog)
}

func (c *ctx) program(prog cst.Program) ast.Program {
	out := ast.Program{}
	for _, top := range prog.TopLevels {
		c.topLevel(&out, top)
	}
	out.Lets = c.flushLets()
	return out
}

// topLevel desugars one item, routing LetDecl clauses into the
// merge table instead of appending them directly (spec.md §4.1).
func (c *ctx) topLevel(out *ast.Program, top cst.TopLevel) {
	switch t := top.(type) {
	case cst.LetDecl:
		c.letDecl(t)
	case cst.TypeDecl:
		out.Types = append(out.Types, c.typeDecl(t))
	case cst.EffectDecl:
		out.Effs = append(out.Effs, c.effectDecl(t))
	case cst.UseDecl:
		out.Uses = append(out.Uses, c.useDecl(t))
	case cst.ModuleDecl:
		out.Mods = append(out.Mods, c.moduleDecl(t))
	}
}

// letDecl implements the exact merge state machine of the Rust
// original: a zero-binder clause is "const" and may only appear once;
// non-contiguous clauses of the same name are reported but still
// discarded from the merge (the first contiguous run wins).
func (c *ctx) letDecl(d cst.LetDecl) {
	name := d.Name.Name

	patterns := make([]ast.Pattern, len(d.Binders))
	for i, b := range d.Binders {
		patterns[i] = c.pattern(b.Pattern)
	}
	isConst := len(patterns) == 0

	clauseCase := ast.LetCase{
		NameRange: d.Name.Span,
		Patterns:  patterns,
		Body:      c.expr(d.Expr),
	}

	if existing, ok := c.letCases[name]; ok {
		if isConst {
			c.reporter.Report(report.Diagnostic{
				Kind:     report.Redeclaration{Name: c.symbols.String(name)},
				Location: d.Name.Span,
			})
		}

		if c.rightNow != nil && *c.rightNow == name {
			c.letCases[name] = append(existing, clauseCase)
		} else {
			c.reporter.Report(report.Diagnostic{
				Kind:     report.OutOfOrderDefinition{Name: c.symbols.String(name)},
				Location: d.Name.Span,
			})
		}
	} else {
		c.letCases[name] = []ast.LetCase{clauseCase}
		c.letName[name] = ast.Ident{Name: name, Span: d.Name.Span}
	}

	c.rightNow = &name
}

// flushLets materializes every merge-table entry into a final LetDecl,
// using the first clause's name span as the declaration's own span
// (mirrors `value[0].name_range` in the Rust original).
func (c *ctx) flushLets() []ast.LetDecl {
	out := make([]ast.LetDecl, 0, len(c.letCases))
	for name, cases := range c.letCases {
		ident := c.letName[name]
		out = append(out, ast.LetDecl{
			Name:  ident,
			Cases: cases,
			Span:  cases[0].NameRange,
		})
	}
	return out
}

func (c *ctx) useDecl(d cst.UseDecl) ast.UseDecl {
	alias := d.Path.Last
	if d.Alias != nil {
		alias = *d.Alias
	}
	return ast.UseDecl{
		Path:  c.qualified(d.Path),
		Alias: ast.Ident{Name: alias.Name, Span: alias.Span},
		Span:  d.Span,
	}
}

func (c *ctx) moduleDecl(d cst.ModuleDecl) ast.ModuleDecl {
	inner := newCtx(c.symbols, c.reporter, append(append([]symbol.Symbol{}, c.namespace...), d.Name.Name))
	out := ast.ModuleDecl{
		Namespace: inner.namespace,
		Name:      ast.Ident{Name: d.Name.Name, Span: d.Name.Span},
		Span:      d.Span,
	}
	for _, top := range d.TopLevels {
		switch t := top.(type) {
		case cst.LetDecl:
			inner.letDecl(t)
		case cst.TypeDecl:
			out.Types = append(out.Types, inner.typeDecl(t))
		case cst.EffectDecl:
			out.Effs = append(out.Effs, inner.effectDecl(t))
		case cst.ModuleDecl:
			out.Mods = append(out.Mods, inner.moduleDecl(t))
		}
	}
	out.Lets = inner.flushLets()
	return out
}

func (c *ctx) qualified(p cst.Path) ast.Qualified {
	segs := make([]symbol.Symbol, len(p.Segments))
	for i, s := range p.Segments {
		segs[i] = s.Name
	}
	return ast.Qualified{Segments: segs, Last: p.Last.Name, Span: p.Span}
}

func joinSpans(a, b source.Span) source.Span { return a.Join(b) }
