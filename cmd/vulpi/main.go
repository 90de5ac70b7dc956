// Command vulpi is a thin demonstration front-end: it builds a small
// in-memory concrete syntax tree (this module has no parser of its
// own — spec.md scopes parsing out), runs it through the standard
// desugar-then-elaborate pipeline, and prints any diagnostics to the
// terminal with source.Span-aware coloring.
package main

import (
	"fmt"
	"os"

	"github.com/vulpi-lang/vulpi/internal/cst"
	"github.com/vulpi-lang/vulpi/internal/elaborate"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/pipeline"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

// sample builds `let identity x = x` as a hand-assembled concrete
// tree, standing in for what a real parser would hand the pipeline.
func sample(syms *symbol.Table, file source.FileID) cst.Program {
	span := source.Span{File: file, Start: 0, End: 1}
	x := cst.Ident{Name: syms.Intern("x"), Span: span}
	return cst.Program{
		TopLevels: []cst.TopLevel{
			cst.LetDecl{
				Name:    cst.Ident{Name: syms.Intern("identity"), Span: span},
				Binders: []cst.Binder{{Pattern: cst.PatLower{Name: x, Span: span}}},
				Expr:    cst.ExprIdent{Path: cst.Path{Last: x, Span: span}, Span: span},
				Span:    span,
			},
		},
	}
}

func main() {
	syms := symbol.NewTable()
	registry := source.NewRegistry()
	file := registry.Register("<demo>")
	reporter := report.NewTerminal(os.Stdout, os.Stdout.Fd())
	table := module.NewTable(syms)
	elaborate.Builtins(syms, table)

	ctx := &pipeline.Context{
		FilePath: "<demo>",
		File:     file,
		CST:      sample(syms, file),
		Symbols:  syms,
		Table:    table,
		Reporter: reporter,
	}
	pipeline.Standard().Run(ctx)

	info, ok := table.Variable(nil, syms.Intern("identity"))
	if !ok {
		fmt.Println("identity: not declared")
		os.Exit(1)
	}
	fmt.Printf("identity : %s\n", info.Scheme.String())
}
