package module

import (
	"testing"

	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// Extending an Env with a variable never mutates the parent Env's own
// view of that name (spec.md §4.3, "cheap clone").
func TestEnvWithVariableIsPersistent(t *testing.T) {
	syms := symbol.NewTable()
	table := NewTable(syms)
	root := New(syms, table, report.NewCollecting(), nil)

	x := syms.Intern("x")
	extended := root.WithVariable(x, types.VUnit{})

	if _, ok := root.Variable(x); ok {
		t.Fatalf("root Env should not see a binding added to its child")
	}
	if _, ok := extended.Variable(x); !ok {
		t.Fatalf("extended Env should see its own binding")
	}
}

// WithSkolem bumps the level so later-minted holes record the deeper
// scope they were created in.
func TestEnvWithSkolemBumpsLevel(t *testing.T) {
	syms := symbol.NewTable()
	table := NewTable(syms)
	root := New(syms, table, report.NewCollecting(), nil)

	a := syms.Intern("a")
	inner := root.WithSkolem(a, types.VSkolem{Name: "a"}, types.Star)

	if inner.Level() != root.Level()+1 {
		t.Fatalf("expected level to increase by 1, got %d -> %d", root.Level(), inner.Level())
	}

	h := inner.NewHole(types.Star)
	empty, ok := h.Get().(types.Empty)
	if !ok || empty.Level != inner.Level() {
		t.Fatalf("expected hole minted at level %d, got %+v", inner.Level(), h.Get())
	}
}

// A Qualified path with no segments resolves to the current namespace;
// a path whose leading segment is a known import alias is rewritten to
// the alias's target namespace (spec.md §4.4.1).
func TestResolveNamespace(t *testing.T) {
	syms := symbol.NewTable()
	table := NewTable(syms)
	ns := []symbol.Symbol{syms.Intern("List")}
	root := New(syms, table, report.NewCollecting(), ns)

	if got := root.ResolveNamespace(ast.Qualified{}); len(got) != len(ns) || got[0] != ns[0] {
		t.Fatalf("expected current namespace, got %v", got)
	}

	alias := syms.Intern("L")
	target := []symbol.Symbol{syms.Intern("List")}
	withImport := root.WithImport(alias, target)

	got := withImport.ResolveNamespace(ast.Qualified{Segments: []symbol.Symbol{alias}})
	if len(got) != 1 || got[0] != target[0] {
		t.Fatalf("expected import alias to resolve to %v, got %v", target, got)
	}
}
