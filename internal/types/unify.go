package types

import (
	"fmt"

	"github.com/vulpi-lang/vulpi/internal/report"
)

// UnifyError is returned by Unify on a structural mismatch (spec.md
// §4.2, §7). ErrorKind is non-nil when Unify has already determined the
// precise diagnostic to raise (report.OccursCheck for a cycle,
// report.EscapingSkolem for an escaping skolem); callers (component E)
// report it verbatim and otherwise fall back on a generic
// report.TypeMismatch.
type UnifyError struct {
	Kind      string // "mismatch" | "occurs" | "row" | "escaping-skolem"
	Msg       string
	ErrorKind report.ErrorKind
}

func (e UnifyError) Error() string { return e.Msg }

// Unify solves a and b to be the same Virtual type, mutating whatever
// Holes it needs to through Fill. TError unifies with anything and
// never reports, keeping a single failure from cascading (spec.md
// §4.4.6).
func Unify(a, b Virtual) error {
	a = deref(a)
	b = deref(b)

	if _, ok := a.(VError); ok {
		return nil
	}
	if _, ok := b.(VError); ok {
		return nil
	}

	if ha, ok := a.(VHole); ok {
		return bind(ha.Hole, b)
	}
	if hb, ok := b.(VHole); ok {
		return bind(hb.Hole, a)
	}

	switch x := a.(type) {
	case VSkolem:
		y, ok := b.(VSkolem)
		if !ok || x.ID != y.ID {
			return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("expected %s, got %s", a, b)}
		}
		return nil

	case VCon:
		y, ok := b.(VCon)
		if !ok || x.Name != y.Name {
			return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("expected %s, got %s", a, b)}
		}
		return nil

	case VApp:
		y, ok := b.(VApp)
		if !ok {
			return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("expected %s, got %s", a, b)}
		}
		if err := Unify(x.Func, y.Func); err != nil {
			return err
		}
		return Unify(x.Arg, y.Arg)

	case VArrow:
		y, ok := b.(VArrow)
		if !ok {
			return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("%s is not a function", b)}
		}
		if err := Unify(x.Left, y.Left); err != nil {
			return err
		}
		if err := UnifyRow(x.Effects, y.Effects); err != nil {
			return err
		}
		return Unify(x.Right, y.Right)

	case VTuple:
		y, ok := b.(VTuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("expected %s, got %s", a, b)}
		}
		for i := range x.Elems {
			if err := Unify(x.Elems[i], y.Elems[i]); err != nil {
				return err
			}
		}
		return nil

	case VUnit:
		if _, ok := b.(VUnit); ok {
			return nil
		}
		return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("expected (), got %s", b)}

	case VForall:
		// Two still-polymorphic types only arise through subsumption
		// (Subsumes), never through plain Unify, since unify is used
		// once both sides have been instantiated/skolemized.
		return UnifyError{Kind: "mismatch", Msg: "cannot unify polymorphic types directly"}

	default:
		return UnifyError{Kind: "mismatch", Msg: fmt.Sprintf("expected %s, got %s", a, b)}
	}
}

// deref resolves a to whatever a chain of Filled holes bottoms out at,
// without mutating anything (Find already compresses on read).
func deref(v Virtual) Virtual {
	h, ok := v.(VHole)
	if !ok {
		return v
	}
	if s, ok := h.Hole.Get().(Filled); ok {
		return deref(Eval(nil, s.Type))
	}
	return v
}

// bind solves hole := v, after the occurs check and level lowering
// (spec.md §4.2). Binding a hole to itself is a no-op, matching the
// reflexivity every other branch of Unify gets for free.
func bind(hole *Hole, v Virtual) error {
	if h, ok := v.(VHole); ok && h.Hole == hole {
		return nil
	}

	empty, ok := hole.Get().(Empty)
	if !ok {
		// Another goroutine or an earlier branch already solved it;
		// unify against what it now holds.
		return Unify(VHole{Hole: hole}, v)
	}

	if err := occursCheck(hole, empty.Level, v); err != nil {
		if ue, ok := err.(UnifyError); ok && ue.Kind == "occurs" {
			ue.ErrorKind = report.OccursCheck{Hole: hole.ID().String(), Type: v.String()}
			return ue
		}
		return err
	}

	hole.Fill(Quote(0, v))
	return nil
}

// occursCheck rejects a solution that would let hole refer to itself,
// and otherwise lowers every Hole and rejects every Skolem reachable
// from v that was minted at a deeper level than hole — both cases
// would let a variable escape the scope it is allowed to appear in
// (spec.md §4.2).
func occursCheck(hole *Hole, level int, v Virtual) error {
	switch n := v.(type) {
	case VHole:
		if n.Hole == hole {
			return UnifyError{Kind: "occurs", Msg: fmt.Sprintf("%s occurs in itself", hole.ID())}
		}
		if s, ok := n.Hole.Get().(Filled); ok {
			return occursCheck(hole, level, Eval(nil, s.Type))
		}
		n.Hole.LowerLevel(level)
		return nil
	case VSkolem:
		if n.Level > level {
			kind := report.EscapingSkolem{Skolem: n.Name}
			return UnifyError{Kind: "escaping-skolem", Msg: kind.Error(), ErrorKind: kind}
		}
		return nil
	case VApp:
		if err := occursCheck(hole, level, n.Func); err != nil {
			return err
		}
		return occursCheck(hole, level, n.Arg)
	case VArrow:
		if err := occursCheck(hole, level, n.Left); err != nil {
			return err
		}
		lowerRowLevel(n.Effects, level)
		return occursCheck(hole, level, n.Right)
	case VTuple:
		for _, e := range n.Elems {
			if err := occursCheck(hole, level, e); err != nil {
				return err
			}
		}
		return nil
	case VForall:
		return nil
	default:
		return nil
	}
}

// UnifyRow solves two effect rows as multisets: every label on one
// side must be matched by an equal label on the other, with any
// leftover absorbed into the other side's tail (spec.md §3.2, §4.2).
// Two closed rows with different label sets never unify.
func UnifyRow(a, b Row) error {
	a, b = a.Resolve(), b.Resolve()

	aRemain, _ := diffLabels(a.Labels, b.Labels)
	bRemain, _ := diffLabels(b.Labels, a.Labels)

	switch {
	case a.Tail == nil && b.Tail == nil:
		if len(aRemain) != 0 || len(bRemain) != 0 {
			return UnifyError{Kind: "row", Msg: fmt.Sprintf("effect rows %s and %s disagree", a, b)}
		}
		return nil
	case a.Tail != nil && b.Tail == nil:
		if len(aRemain) != 0 {
			return UnifyError{Kind: "row", Msg: fmt.Sprintf("effect rows %s and %s disagree", a, b)}
		}
		a.Tail.Fill(Row{Labels: bRemain})
		return nil
	case a.Tail == nil && b.Tail != nil:
		if len(bRemain) != 0 {
			return UnifyError{Kind: "row", Msg: fmt.Sprintf("effect rows %s and %s disagree", a, b)}
		}
		b.Tail.Fill(Row{Labels: aRemain})
		return nil
	default:
		if a.Tail == b.Tail {
			if len(aRemain) != 0 || len(bRemain) != 0 {
				return UnifyError{Kind: "row", Msg: fmt.Sprintf("effect rows %s and %s disagree", a, b)}
			}
			return nil
		}
		fresh := NewRowHole(0)
		a.Tail.Fill(Row{Labels: bRemain, Tail: fresh})
		b.Tail.Fill(Row{Labels: aRemain, Tail: fresh})
		return nil
	}
}

// lowerRowLevel propagates a level bound into an effect row's open
// tail, the row-kinded counterpart of occursCheck's Hole handling.
func lowerRowLevel(r Row, level int) {
	if r.Tail != nil {
		r.Tail.LowerLevel(level)
	}
}

// diffLabels returns the labels of xs with one occurrence of each
// label in ys removed, plus the list of labels actually matched.
func diffLabels(xs, ys []string) (remain, matched []string) {
	counts := map[string]int{}
	for _, y := range ys {
		counts[y]++
	}
	for _, x := range xs {
		if counts[x] > 0 {
			counts[x]--
			matched = append(matched, x)
		} else {
			remain = append(remain, x)
		}
	}
	return remain, matched
}
