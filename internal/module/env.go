package module

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// localVar is one local binding's scheme, already eval'd to a Virtual
// so looking it up never re-walks a real Type.
type localVar struct {
	scheme types.Virtual
}

// varMap and tyVarMap are persistent association lists: extending one
// allocates a single cell and shares the rest of the old map, so
// cloning an Env to descend into a Lambda or Let is O(1) plus one
// allocation per new binding rather than a full map copy (spec.md §4.3,
// "cheap clone, O(log n) extension" — realized here as O(1) since
// shadowing lookups only need most-recent-wins, not log-depth balance).
type varMap struct {
	name   symbol.Symbol
	value  localVar
	parent *varMap
}

func (m *varMap) lookup(name symbol.Symbol) (localVar, bool) {
	for n := m; n != nil; n = n.parent {
		if n.name == name {
			return n.value, true
		}
	}
	return localVar{}, false
}

type tyVarEntry struct {
	name   symbol.Symbol
	value  types.Virtual
	kind   types.Kind
	parent *tyVarEntry
}

func (e *tyVarEntry) lookup(name symbol.Symbol) (types.Virtual, types.Kind, bool) {
	for n := e; n != nil; n = n.parent {
		if n.name == name {
			return n.value, n.kind, true
		}
	}
	return nil, nil, false
}

// Env is the per-elaboration, persistent, cheaply-cloned context
// (spec.md §4.3). Every method that "extends" Env returns a new value;
// the shared Table pointer means every clone still declares into (and
// reads) the same module-wide symbol tables.
type Env struct {
	Symbols   *symbol.Table
	Table     *Table
	Reporter  report.Reporter
	Namespace []symbol.Symbol
	Imports   map[symbol.Symbol][]symbol.Symbol // alias -> resolved namespace path
	location  source.Span

	level   int
	vars    *varMap
	tyVars  *tyVarEntry
	effects *EffectSink
}

// EffectSink accumulates the effect rows performed while elaborating
// one Lambda or Handler body, read back once that body finishes
// checking so the enclosing arrow's Effects field reflects what
// running it actually does (spec.md §4.4.2, "accumulate eff into the
// ambient effect set of the call site"). A nil *EffectSink is a valid,
// inert receiver so call sites never need to guard a missing sink
// (e.g. a top-level let's declared-return-type check, which installs
// none).
type EffectSink struct {
	Row types.Row
}

// Fold merges r into the sink.
func (s *EffectSink) Fold(r types.Row) {
	if s == nil {
		return
	}
	s.Row = types.Concat(s.Row, r)
}

// New creates the root Env for one compilation unit's elaboration.
func New(syms *symbol.Table, table *Table, reporter report.Reporter, namespace []symbol.Symbol) *Env {
	return &Env{
		Symbols:   syms,
		Table:     table,
		Reporter:  reporter,
		Namespace: namespace,
		Imports:   make(map[symbol.Symbol][]symbol.Symbol),
	}
}

// clone copies the Env's own fields (cheap: no map is deep-copied,
// since vars/tyVars/Imports are either persistent lists or shared by
// reference and only ever extended through the With* methods below).
func (e *Env) clone() *Env {
	cp := *e
	return &cp
}

// On returns a copy of e whose diagnostics will be reported against
// span, mirroring the Rust `env.on(span)` used before every inference
// rule so errors carry the triggering node's location (spec.md §4.4.2).
func (e *Env) On(span source.Span) *Env {
	cp := e.clone()
	cp.location = span
	return cp
}

func (e *Env) Location() source.Span { return e.location }

// Level reports how many Forall binders are in scope, satisfying
// types.Ctx.
func (e *Env) Level() int { return e.level }

// NewHole mints a hole at e's current level, satisfying types.Ctx.
func (e *Env) NewHole(kind types.Kind) *types.Hole {
	return types.NewHole(e.level, kind)
}

// NewRowHole mints an effect-row hole at e's current level.
func (e *Env) NewRowHole() *types.RowHole {
	return types.NewRowHole(e.level)
}

// WithVariable extends e with one local term binding.
func (e *Env) WithVariable(name symbol.Symbol, scheme types.Virtual) *Env {
	cp := e.clone()
	cp.vars = &varMap{name: name, value: localVar{scheme: scheme}, parent: e.vars}
	return cp
}

// Variable looks up a local term binding.
func (e *Env) Variable(name symbol.Symbol) (types.Virtual, bool) {
	v, ok := e.vars.lookup(name)
	return v.scheme, ok
}

// WithSkolem extends e with one rigid type variable and bumps the
// level, the Env-level half of opening a Forall during subsumption
// (spec.md §4.2, §4.4.4).
func (e *Env) WithSkolem(name symbol.Symbol, value types.Virtual, kind types.Kind) *Env {
	cp := e.clone()
	cp.tyVars = &tyVarEntry{name: name, value: value, kind: kind, parent: e.tyVars}
	cp.level = e.level + 1
	return cp
}

// WithTypeParam extends e with one universally quantified type
// parameter bound to a fresh bound-variable placeholder rather than a
// skolem, so later calling types.Quote at the resulting level turns
// every reference back into a real TBound instead of leaving it
// opaque — the binder-construction half of building a TForall scheme,
// as opposed to WithSkolem's rigidity used only during subsumption
// (spec.md §4.2, §4.4.4).
func (e *Env) WithTypeParam(name symbol.Symbol, kind types.Kind) *Env {
	cp := e.clone()
	cp.tyVars = &tyVarEntry{name: name, value: types.VBoundVar{Level: e.level}, kind: kind, parent: e.tyVars}
	cp.level = e.level + 1
	return cp
}

// TypeVariable looks up an in-scope type variable's current Virtual
// value and kind.
func (e *Env) TypeVariable(name symbol.Symbol) (types.Virtual, types.Kind, bool) {
	return e.tyVars.lookup(name)
}

// WithEffectSink installs sink as e's ambient effect accumulator,
// returning a clone so statements checked through it fold every
// callee's effects into sink rather than whatever sink e's own caller
// installed (spec.md §4.4.2).
func (e *Env) WithEffectSink(sink *EffectSink) *Env {
	cp := e.clone()
	cp.effects = sink
	return cp
}

// Effects returns e's ambient effect accumulator, or nil if none is
// installed.
func (e *Env) Effects() *EffectSink { return e.effects }

// WithImport records that alias now resolves to path, used by
// Qualified lookups after a UseDecl (spec.md §4.4.1).
func (e *Env) WithImport(alias symbol.Symbol, path []symbol.Symbol) *Env {
	cp := e.clone()
	imports := make(map[symbol.Symbol][]symbol.Symbol, len(e.Imports)+1)
	for k, v := range e.Imports {
		imports[k] = v
	}
	imports[alias] = path
	cp.Imports = imports
	return cp
}

// WithNamespace descends into a submodule (spec.md §4.4.1).
func (e *Env) WithNamespace(name symbol.Symbol) *Env {
	cp := e.clone()
	cp.Namespace = append(append([]symbol.Symbol{}, e.Namespace...), name)
	return cp
}

// Report forwards a diagnostic at e's current location.
func (e *Env) Report(kind report.ErrorKind) {
	e.Reporter.Report(report.Diagnostic{Kind: kind, Location: e.location})
}

// ResolveNamespace turns a Qualified reference's leading segments into
// an absolute namespace path: an empty segment list means "the current
// namespace", and the first segment is checked against Imports before
// falling back to treating the path as already absolute (spec.md
// §4.4.1).
func (e *Env) ResolveNamespace(q ast.Qualified) []symbol.Symbol {
	if len(q.Segments) == 0 {
		return e.Namespace
	}
	if resolved, ok := e.Imports[q.Segments[0]]; ok {
		return append(append([]symbol.Symbol{}, resolved...), q.Segments[1:]...)
	}
	return q.Segments
}
