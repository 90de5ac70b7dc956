package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Virtual is the representation unification actually runs over: a
// normalized, substitution-free form reached from Type by eval. A
// Forall's body is a Closure rather than a substituted Type, so
// opening it (subsumption, instantiation) costs one Apply instead of a
// full-term substitution pass (spec.md §4.2).
type Virtual interface {
	String() string
	virtualNode()
}

// VBoundVar stands for a binder opened at a given level but not yet
// converted to a concrete de Bruijn index: Quote opens a Forall with
// one, and module.Env.WithTypeParam binds a type parameter to one
// (spec.md §4.2, level-based NbE).
type VBoundVar struct{ Level int }

func (VBoundVar) virtualNode()      {}
func (v VBoundVar) String() string { return fmt.Sprintf("#%d", v.Level) }

type VHole struct{ Hole *Hole }

func (VHole) virtualNode() {}
func (v VHole) String() string {
	if s, ok := v.Hole.Get().(Filled); ok {
		return Eval(nil, s.Type).String()
	}
	return "_"
}

// VSkolem's Level mirrors TSkolem's: the ctx level in scope when this
// skolem was minted by Skolemize.
type VSkolem struct {
	ID    uuid.UUID
	Name  string
	Kind  Kind
	Level int
}

func (VSkolem) virtualNode()      {}
func (v VSkolem) String() string { return v.Name }

type VCon struct {
	Name string
	Kind Kind
}

func (VCon) virtualNode()      {}
func (v VCon) String() string { return v.Name }

type VApp struct{ Func, Arg Virtual }

func (VApp) virtualNode() {}
func (v VApp) String() string {
	return fmt.Sprintf("(%s %s)", v.Func, v.Arg)
}

type VArrow struct {
	Left    Virtual
	Effects Row
	Right   Virtual
}

func (VArrow) virtualNode() {}
func (v VArrow) String() string {
	if v.Effects.Empty() {
		return fmt.Sprintf("(%s -> %s)", v.Left, v.Right)
	}
	return fmt.Sprintf("(%s -{%s}-> %s)", v.Left, v.Effects, v.Right)
}

type VTuple struct{ Elems []Virtual }

func (VTuple) virtualNode() {}
func (v VTuple) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Closure defers substitution of a Forall's body until it is opened,
// the central trick that makes the virtual representation cheap to
// build (spec.md §4.2).
type Closure struct {
	Env  []Virtual
	Body Type
}

// Apply substitutes arg for the closure's own bound variable and
// evaluates the body under the extended environment.
func (c Closure) Apply(arg Virtual) Virtual {
	return Eval(append([]Virtual{arg}, c.Env...), c.Body)
}

type VForall struct {
	Name    string
	Kind    Kind
	Closure Closure
}

func (VForall) virtualNode() {}
func (v VForall) String() string {
	return fmt.Sprintf("forall (%s : %s). _", v.Name, v.Kind)
}

type VUnit struct{}

func (VUnit) virtualNode()      {}
func (VUnit) String() string   { return "()" }

type VError struct{}

func (VError) virtualNode()      {}
func (VError) String() string   { return "<error>" }

// Eval lowers a real Type into its virtual form under env, the de
// Bruijn environment mapping each in-scope TBound index to the
// Virtual value it stands for (innermost binder first).
func Eval(env []Virtual, t Type) Virtual {
	switch n := t.(type) {
	case TBound:
		if n.Index < len(env) {
			return env[n.Index]
		}
		return VError{}
	case TSkolem:
		return VSkolem{ID: n.ID, Name: n.Name, Kind: n.Kind, Level: n.Level}
	case THole:
		resolved := Find(n)
		if h, ok := resolved.(THole); ok {
			return VHole{Hole: h.Hole}
		}
		return Eval(nil, resolved)
	case TCon:
		return VCon{Name: n.Name, Kind: n.Kind}
	case TApp:
		return VApp{Func: Eval(env, n.Func), Arg: Eval(env, n.Arg)}
	case TArrow:
		return VArrow{Left: Eval(env, n.Left), Effects: n.Effects, Right: Eval(env, n.Right)}
	case TTuple:
		elems := make([]Virtual, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = Eval(env, e)
		}
		return VTuple{Elems: elems}
	case TForall:
		return VForall{Name: n.Name, Kind: n.Kind, Closure: Closure{Env: env, Body: n.Body}}
	case TUnit:
		return VUnit{}
	case TError:
		return VError{}
	default:
		return VError{}
	}
}

// Quote raises a Virtual back into a real Type at the given level (the
// number of Forall binders already opened on the path to this call),
// converting any VBoundVar introduced along the way into a concrete
// de Bruijn TBound index.
func Quote(level int, v Virtual) Type {
	switch n := v.(type) {
	case VBoundVar:
		return TBound{Index: level - n.Level - 1}
	case VSkolem:
		return TSkolem{ID: n.ID, Name: n.Name, Kind: n.Kind, Level: n.Level}
	case VHole:
		if s, ok := n.Hole.Get().(Filled); ok {
			return Quote(level, Eval(nil, s.Type))
		}
		return THole{Hole: n.Hole}
	case VCon:
		return TCon{Name: n.Name, Kind: n.Kind}
	case VApp:
		return TApp{Func: Quote(level, n.Func), Arg: Quote(level, n.Arg)}
	case VArrow:
		return TArrow{Left: Quote(level, n.Left), Effects: n.Effects, Right: Quote(level, n.Right)}
	case VTuple:
		elems := make([]Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = Quote(level, e)
		}
		return TTuple{Elems: elems}
	case VForall:
		body := n.Closure.Apply(VBoundVar{Level: level})
		return TForall{Name: n.Name, Kind: n.Kind, Body: Quote(level+1, body)}
	case VUnit:
		return TUnit{}
	case VError:
		return TError{}
	default:
		return TError{}
	}
}
