package types

import "github.com/google/uuid"

func newSkolemID() uuid.UUID { return uuid.New() }

// Ctx is the minimal fresh-variable source subsumption and
// instantiation need; *module.Env satisfies it (spec.md §4.3 supplies
// the concrete implementation so this package stays free of a module
// import cycle).
type Ctx interface {
	Level() int
	NewHole(kind Kind) *Hole
}

// Instantiate opens every outermost Forall of v with a fresh hole at
// ctx's current level, used on the left of a subsumption check and
// whenever a polymorphic scheme is used as an ordinary value (spec.md
// §4.2, "instantiation").
func Instantiate(ctx Ctx, v Virtual) Virtual {
	for {
		f, ok := v.(VForall)
		if !ok {
			return v
		}
		v = f.Closure.Apply(VHole{Hole: ctx.NewHole(f.Kind)})
	}
}

// Skolemize opens every outermost Forall of v with a fresh rigid
// skolem minted at ctx's current level (bumping one level per nested
// binder, matching module.Env.WithSkolem), used on the right of a
// subsumption check so the caller's polymorphism cannot be narrowed by
// the callee (spec.md §4.2, "skolemization for subsumption on the
// right").
func Skolemize(ctx Ctx, v Virtual) (Virtual, []TSkolem) {
	var skolems []TSkolem
	level := ctx.Level()
	for {
		f, ok := v.(VForall)
		if !ok {
			return v, skolems
		}
		sk := TSkolem{ID: newSkolemID(), Name: f.Name, Kind: f.Kind, Level: level}
		skolems = append(skolems, sk)
		v = f.Closure.Apply(VSkolem{ID: sk.ID, Name: sk.Name, Kind: sk.Kind, Level: sk.Level})
		level++
	}
}

// Subsumes checks that a value of type `have` can be used wherever a
// value of type `want` is expected: instantiate `have`'s polymorphism
// (the caller may narrow it), skolemize `want`'s polymorphism (the
// context may not), then unify structurally (spec.md §4.2, §4.4.2).
// A skolem minted here that would flow into the solution of a hole
// from an outer scope is rejected by occursCheck as report.EscapingSkolem,
// since that hole's solution must remain valid outside this call.
func Subsumes(ctx Ctx, have, want Virtual) error {
	have = Instantiate(ctx, have)
	want, _ = Skolemize(ctx, want)
	return Unify(have, want)
}

// Generalize closes over every hole reachable from v that was minted
// at a level deeper than `level` (i.e. introduced strictly inside the
// binding being generalized), turning each into a fresh outermost
// Forall in source-first order — "let-generalization" for a top-level
// declaration once its body has been fully inferred (spec.md §4.2).
func Generalize(level int, v Virtual) Type {
	var holes []*Hole
	seen := map[*Hole]bool{}
	collectHoles(level, v, &holes, seen)

	body := Quote(0, v)
	for i := len(holes) - 1; i >= 0; i-- {
		h := holes[i]
		name := genName(len(holes) - 1 - i)
		kind := Star
		if e, ok := h.Get().(Empty); ok {
			kind = e.Kind
		}
		h.Fill(TBound{Index: 0, Kind: kind})
		body = abstractHole(h, 0, body)
		body = TForall{Name: name, Kind: kind, Body: body}
	}
	return body
}

func genName(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%len(letters)])
}

func collectHoles(level int, v Virtual, out *[]*Hole, seen map[*Hole]bool) {
	switch n := v.(type) {
	case VHole:
		switch s := n.Hole.Get().(type) {
		case Filled:
			collectHoles(level, Eval(nil, s.Type), out, seen)
		case Empty:
			if s.Level > level && !seen[n.Hole] {
				seen[n.Hole] = true
				*out = append(*out, n.Hole)
			}
		}
	case VApp:
		collectHoles(level, n.Func, out, seen)
		collectHoles(level, n.Arg, out, seen)
	case VArrow:
		collectHoles(level, n.Left, out, seen)
		collectHoles(level, n.Right, out, seen)
	case VTuple:
		for _, e := range n.Elems {
			collectHoles(level, e, out, seen)
		}
	case VForall:
		collectHoles(level, n.Closure.Apply(VBoundVar{Level: -1}), out, seen)
	}
}

// abstractHole rewrites every THole for h inside t into TBound{Index:
// depth}, the index of the Forall about to wrap t, where depth grows by
// one under each TForall passed on the way down. Every other node,
// including existing TBound references, is left unchanged.
func abstractHole(h *Hole, depth int, t Type) Type {
	switch n := t.(type) {
	case THole:
		if n.Hole == h {
			return TBound{Index: depth}
		}
		return n
	case TApp:
		return TApp{Func: abstractHole(h, depth, n.Func), Arg: abstractHole(h, depth, n.Arg)}
	case TArrow:
		return TArrow{Left: abstractHole(h, depth, n.Left), Effects: n.Effects, Right: abstractHole(h, depth, n.Right)}
	case TTuple:
		elems := make([]Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = abstractHole(h, depth, e)
		}
		return TTuple{Elems: elems}
	case TForall:
		return TForall{Name: n.Name, Kind: n.Kind, Body: abstractHole(h, depth+1, n.Body)}
	default:
		return n
	}
}
