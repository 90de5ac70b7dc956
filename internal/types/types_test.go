package types

import "testing"

// Eval then Quote at level 0 round-trips a closed Type unchanged.
func TestEvalQuoteRoundTrip(t *testing.T) {
	ty := TArrow{Left: TCon{Name: "Int", Kind: Star}, Right: TCon{Name: "Int", Kind: Star}}
	got := Quote(0, Eval(nil, ty))
	if got.String() != ty.String() {
		t.Fatalf("round trip mismatch: got %s, want %s", got.String(), ty.String())
	}
}

// Unifying a fresh hole with a concrete type fills the hole, and a
// second unification against the same hole sees the resolved type.
func TestUnifyFillsHole(t *testing.T) {
	h := NewHole(0, Star)
	left := VHole{Hole: h}
	right := VCon{Name: "Int", Kind: Star}
	if err := Unify(left, right); err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if _, ok := h.Get().(Filled); !ok {
		t.Fatalf("expected hole to be filled")
	}
	if err := Unify(left, VCon{Name: "Int", Kind: Star}); err != nil {
		t.Fatalf("re-unify against filled hole failed: %v", err)
	}
}

// A hole cannot unify with a type that contains itself.
func TestOccursCheck(t *testing.T) {
	h := NewHole(0, Star)
	self := VApp{Func: VCon{Name: "List", Kind: Star}, Arg: VHole{Hole: h}}
	if err := Unify(VHole{Hole: h}, self); err == nil {
		t.Fatalf("expected occurs check failure")
	}
}

// Two disjoint closed rows fail to unify; identical closed rows unify
// with no error.
func TestUnifyRowClosed(t *testing.T) {
	a := ClosedRow("IO", "Exn")
	b := ClosedRow("IO", "Exn")
	if err := UnifyRow(a, b); err != nil {
		t.Fatalf("identical closed rows should unify: %v", err)
	}
	c := ClosedRow("IO")
	if err := UnifyRow(a, c); err == nil {
		t.Fatalf("expected mismatched closed rows to fail")
	}
}

// An open row unifies with a closed row by filling its tail with the
// closed row's remaining labels.
func TestUnifyRowOpenTail(t *testing.T) {
	tail := NewRowHole(0)
	open := Row{Labels: []string{"IO"}, Tail: tail}
	closed := ClosedRow("IO", "Exn")
	if err := UnifyRow(open, closed); err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	resolved := tail.Resolve()
	if len(resolved.Labels) != 1 || resolved.Labels[0] != "Exn" {
		t.Fatalf("expected tail to resolve to [Exn], got %v", resolved.Labels)
	}
}

// Generalize closes over a hole introduced strictly inside the
// binding, turning `hole -> hole` into `forall a. a -> a`.
func TestGeneralize(t *testing.T) {
	h := NewHole(1, Star)
	v := VArrow{Left: VHole{Hole: h}, Right: VHole{Hole: h}}
	scheme := Generalize(0, v)
	forall, ok := scheme.(TForall)
	if !ok {
		t.Fatalf("expected a TForall, got %T", scheme)
	}
	arrow, ok := forall.Body.(TArrow)
	if !ok {
		t.Fatalf("expected TForall body to be an arrow, got %T", forall.Body)
	}
	leftBound, ok := arrow.Left.(TBound)
	if !ok || leftBound.Index != 0 {
		t.Fatalf("expected left to be TBound(0), got %#v", arrow.Left)
	}
}

// Subsumes instantiates the polymorphic side and skolemizes the
// monomorphic expectation, so `forall a. a -> a` subsumes `Int -> Int`.
func TestSubsumesInstantiatesForall(t *testing.T) {
	scheme := VForall{Name: "a", Kind: Star, Closure: Closure{Body: TArrow{Left: TBound{Index: 0}, Right: TBound{Index: 0}}}}
	want := VArrow{Left: VCon{Name: "Int", Kind: Star}, Right: VCon{Name: "Int", Kind: Star}}
	if err := Subsumes(testCtx{}, scheme, want); err != nil {
		t.Fatalf("expected forall a. a -> a to subsume Int -> Int: %v", err)
	}
}

type testCtx struct{}

func (testCtx) Level() int             { return 0 }
func (testCtx) NewHole(k Kind) *Hole   { return NewHole(0, k) }
