// Package pipeline composes the desugar and elaborate stages behind
// the teacher's own Processor/PipelineContext shape, so a caller (a
// test, the demo binary, or an eventual language server) drives both
// components through one Run call instead of wiring them by hand.
package pipeline

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
	"github.com/vulpi-lang/vulpi/internal/desugar"
	"github.com/vulpi-lang/vulpi/internal/elaborate"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

// Context threads one compilation unit's state through every stage.
// CST is supplied by the caller (parsing is outside this module's
// scope); Program and Env are populated as the pipeline runs.
type Context struct {
	FilePath string
	File     source.FileID
	CST      cst.Program
	Program  ast.Program

	Symbols  *symbol.Table
	Table    *module.Table
	Reporter report.Reporter
	Env      *module.Env
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is an ordered sequence of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, always continuing past a stage
// that reported errors so downstream stages still run and the caller
// gets every diagnostic from one pass rather than stopping at the
// first failing stage.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

// DesugarProcessor lowers ctx.CST into ctx.Program.
type DesugarProcessor struct{}

func (DesugarProcessor) Process(ctx *Context) *Context {
	ctx.Program = desugar.File(ctx.Symbols, ctx.Reporter, ctx.CST)
	return ctx
}

// ElaborateProcessor runs declare/define over ctx.Program into
// ctx.Table, minting ctx.Env if the caller has not already supplied
// one (e.g. for a namespaced submodule run standalone in a test).
type ElaborateProcessor struct {
	Namespace []symbol.Symbol
}

func (e ElaborateProcessor) Process(ctx *Context) *Context {
	if ctx.Env == nil {
		ctx.Env = module.New(ctx.Symbols, ctx.Table, ctx.Reporter, e.Namespace)
	}
	elaborate.File(ctx.Env, ctx.Program)
	return ctx
}

// Standard builds the ordinary desugar-then-elaborate pipeline every
// single-file compilation uses.
func Standard() *Pipeline {
	return New(DesugarProcessor{}, ElaborateProcessor{})
}
