package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type is the "real" representation: the de Bruijn-indexed form every
// scheme is stored and displayed in (spec.md §4.2). Bound variables
// under a Forall are TBound(index); unification never runs on Type
// directly — it runs on Virtual, reached via eval.
type Type interface {
	String() string
	typeNode()
}

// TBound references a Forall binder by its distance (de Bruijn index)
// from the point of use.
type TBound struct {
	Index int
	Kind  Kind
}

func (TBound) typeNode()      {}
func (t TBound) String() string { return fmt.Sprintf("^%d", t.Index) }

// TSkolem is a rigid variable introduced when a Forall on the right of
// a subsumption check is opened; it never unifies with anything but
// itself (spec.md §4.2, "skolemization for subsumption on the right").
// Level is the ctx level it was minted at, so occursCheck can reject a
// skolem that would escape above the hole it is being unified into.
type TSkolem struct {
	ID    uuid.UUID
	Name  string
	Kind  Kind
	Level int
}

func (TSkolem) typeNode()      {}
func (t TSkolem) String() string { return t.Name }

// THole embeds a live unification variable directly in the real
// representation so a scheme can be displayed, or re-evaluated,
// without losing a still-unsolved hole.
type THole struct{ Hole *Hole }

func (THole) typeNode() {}
func (t THole) String() string {
	switch s := t.Hole.Get().(type) {
	case Filled:
		return s.Type.String()
	default:
		return "_"
	}
}

// TCon is a reference to a declared or built-in type constructor.
type TCon struct {
	Name string
	Kind Kind
}

func (TCon) typeNode()      {}
func (t TCon) String() string { return t.Name }

// TApp is a type constructor applied to one argument; n-ary
// application is curried, mirroring Application in the AST.
type TApp struct {
	Func Type
	Arg  Type
}

func (TApp) typeNode() {}
func (t TApp) String() string {
	return fmt.Sprintf("(%s %s)", t.Func, t.Arg)
}

// TArrow is a (possibly effectful) function type.
type TArrow struct {
	Left    Type
	Effects Row
	Right   Type
}

func (TArrow) typeNode() {}
func (t TArrow) String() string {
	if t.Effects.Empty() {
		return fmt.Sprintf("(%s -> %s)", t.Left, t.Right)
	}
	return fmt.Sprintf("(%s -{%s}-> %s)", t.Left, t.Effects, t.Right)
}

type TTuple struct{ Elems []Type }

func (TTuple) typeNode() {}
func (t TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TForall introduces one bound variable of the given kind; nested
// Foralls give rank-n polymorphism directly, since there is no
// separate "prenex" restriction anywhere in the representation.
type TForall struct {
	Name string
	Kind Kind
	Body Type
}

func (TForall) typeNode() {}
func (t TForall) String() string {
	return fmt.Sprintf("forall (%s : %s). %s", t.Name, t.Kind, t.Body)
}

type TUnit struct{}

func (TUnit) typeNode()      {}
func (TUnit) String() string { return "()" }

// TError is the absorbing sentinel: it unifies with anything and never
// produces a second diagnostic (spec.md §4.4.6, §7).
type TError struct{}

func (TError) typeNode()      {}
func (TError) String() string { return "<error>" }

// Row is an effect row: an unordered set of labels plus an optional
// open tail (another row-kinded hole). Two rows unify by multiset
// matching regardless of label order (spec.md §3.2, §4.2).
type Row struct {
	Labels []string
	Tail   *RowHole // nil means closed
}

func (r Row) Empty() bool { return len(r.Labels) == 0 && r.Tail == nil }

func (r Row) String() string {
	s := strings.Join(r.Labels, ", ")
	if r.Tail != nil {
		if s != "" {
			s += " | "
		}
		s += "_"
	}
	return s
}

// ClosedRow builds a Row with no open tail.
func ClosedRow(labels ...string) Row { return Row{Labels: labels} }

// Resolve flattens r's tail, if any, into r's own label list, so a
// reader always sees every label solved into this row so far.
func (r Row) Resolve() Row {
	if r.Tail == nil {
		return r
	}
	tail := r.Tail.Resolve()
	return Row{Labels: append(append([]string{}, r.Labels...), tail.Labels...), Tail: tail.Tail}
}

// Concat merges two rows commutatively, used when an effectful
// sub-expression's row is folded into its enclosing expression's row
// (spec.md §4.4.2, Do/Application).
func Concat(a, b Row) Row {
	labels := append(append([]string{}, a.Labels...), b.Labels...)
	tail := a.Tail
	if tail == nil {
		tail = b.Tail
	}
	return Row{Labels: labels, Tail: tail}
}
