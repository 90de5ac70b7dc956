package elaborate

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// inferType elaborates a surface ast.Type into a Virtual plus the kind
// it was inferred at (spec.md §4.4.4). Every branch mirrors the
// corresponding ast.Type constructor one-to-one.
func inferType(env *module.Env, t ast.Type) (types.Virtual, types.Kind) {
	switch n := t.(type) {
	case ast.TypeVariable:
		if v, k, ok := env.TypeVariable(n.Name.Name); ok {
			return v, k
		}
		reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Name.Name)})
		return types.VError{}, types.Star

	case ast.TypeConstructor:
		ns := env.ResolveNamespace(n.Qualified)
		if info, ok := env.Table.Type(ns, n.Qualified.Last); ok {
			if info.Synonym != nil {
				return types.Eval(nil, info.Synonym), info.Kind
			}
			return types.Eval(nil, types.TCon{Name: env.Symbols.String(n.Qualified.Last), Kind: info.Kind}), info.Kind
		}
		reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Qualified.Last)})
		return types.VError{}, types.Star

	case ast.Unit:
		return types.VUnit{}, types.Star

	case ast.Tuple:
		elems := make([]types.Virtual, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = checkType(env, e, types.Star)
		}
		return types.VTuple{Elems: elems}, types.Star

	case ast.Pi:
		left := checkType(env, n.Left, types.Star)
		right := checkType(env, n.Right, types.Star)
		row := inferEffects(env, n.Effects)
		return types.VArrow{Left: left, Effects: row, Right: right}, types.Star

	case ast.Application:
		head, headKind := inferType(env, n.Left)
		result := head
		for _, arg := range n.Right {
			argKind := types.Star
			if ka, ok := headKind.(types.KArrow); ok {
				argKind = ka.Left
			}
			argV := checkType(env, arg, argKind)
			// A synonym with parameters evaluates to a Forall; applying
			// it substitutes the argument into the synonym's body.
			if f, ok := result.(types.VForall); ok {
				result = f.Closure.Apply(argV)
			} else {
				result = types.VApp{Func: result, Arg: argV}
			}
			if ka, ok := headKind.(types.KArrow); ok {
				headKind = ka.Right
			}
		}
		return result, headKind

	case ast.Forall:
		inner := env
		for _, p := range n.Params {
			inner = inner.WithTypeParam(p.Name, kind(p.Kind))
		}
		body, _ := inferType(inner, n.Body)
		quoted := types.Quote(inner.Level(), body)
		for i := len(n.Params) - 1; i >= 0; i-- {
			quoted = types.TForall{Name: env.Symbols.String(n.Params[i].Name), Kind: kind(n.Params[i].Kind), Body: quoted}
		}
		return types.Eval(nil, quoted), types.Star

	case ast.TypeError:
		return types.VError{}, types.Star

	default:
		return types.VError{}, types.Star
	}
}

// checkType elaborates t and reports a KindMismatch if its inferred
// kind does not equal expected, the source-type counterpart of
// checking an expression against an expected Virtual type.
func checkType(env *module.Env, t ast.Type, expected types.Kind) types.Virtual {
	v, got := inferType(env, t)
	if !types.KindEqual(got, expected) {
		reportAt(env.On(t.GetSpan()), report.KindMismatch{Expected: expected.String(), Got: got.String()})
		return types.VError{}
	}
	return v
}

// inferEffects elaborates an arrow's effect-row annotation; an absent
// annotation (zero labels, no explicit open tail written) lowers to
// the empty closed row, matching a pure function's type.
func inferEffects(env *module.Env, e ast.Effects) types.Row {
	labels := make([]string, 0, len(e.Labels))
	for _, q := range e.Labels {
		ns := env.ResolveNamespace(q)
		name := env.Symbols.String(q.Last)
		if _, ok := env.Table.Effect(ns, q.Last); !ok {
			reportAt(env.On(e.Span), report.CannotFind{Name: name})
			continue
		}
		labels = append(labels, name)
	}
	return types.Row{Labels: labels}
}
