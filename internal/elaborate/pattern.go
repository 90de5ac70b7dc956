package elaborate

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// checkPattern elaborates p against an already-known scrutinee type
// expected, extending env with every variable p binds (spec.md
// §4.4.3). Every arm of a When or every case of a multi-clause let
// goes through this so argument/scrutinee types are checked, not
// re-inferred, against the shared type the arms must agree on. It is
// the entry point into one pattern tree, so it starts a fresh
// bound-names accumulator for checkLinear to enforce linearity against
// (spec.md §4.4.3, "no binding name may appear twice in one pattern").
func checkPattern(env *module.Env, p ast.Pattern, expected types.Virtual) *module.Env {
	return checkLinear(env, p, expected, map[symbol.Symbol]bool{})
}

// checkLinear is checkPattern's recursive worker, threading seen
// through every sub-pattern of the same top-level pattern so a name
// bound twice — even across sibling arguments of a constructor
// application like `Pair x x` — raises report.DuplicateBinding. A
// PatOr's two branches each get their own copy of seen, since an Or
// pattern's two alternatives are expected to bind the same names
// (checked separately by sameBoundNames), not accumulate across them.
func checkLinear(env *module.Env, p ast.Pattern, expected types.Virtual, seen map[symbol.Symbol]bool) *module.Env {
	switch n := p.(type) {
	case ast.PatWildcard:
		return env

	case ast.PatLower:
		if seen[n.Name.Name] {
			reportAt(env.On(n.Span), report.DuplicateBinding{Name: env.Symbols.String(n.Name.Name)})
		}
		seen[n.Name.Name] = true
		return env.WithVariable(n.Name.Name, expected)

	case ast.PatAnnotation:
		declared := checkType(env, n.Type, types.Star)
		if err := types.Subsumes(env, declared, expected); err != nil {
			reportTypeError(env.On(n.Span), err, expected.String(), declared.String())
		}
		return checkLinear(env, n.Pattern, declared, seen)

	case ast.PatLiteral:
		lit := literalType(n.Literal)
		if err := types.Unify(lit, expected); err != nil {
			reportTypeError(env.On(n.Span), err, expected.String(), lit.String())
		}
		return env

	case ast.PatUpper:
		ns := env.ResolveNamespace(n.Qualified)
		info, ok := env.Table.Constructor(ns, n.Qualified.Last)
		if !ok {
			reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Qualified.Last)})
			return env
		}
		scheme := types.Instantiate(env, types.Eval(nil, info.Scheme))
		if err := types.Unify(scheme, expected); err != nil {
			reportTypeError(env.On(n.Span), err, expected.String(), scheme.String())
		}
		return env

	case ast.PatApplication:
		ns := env.ResolveNamespace(n.Qualified)
		info, ok := env.Table.Constructor(ns, n.Qualified.Last)
		if !ok {
			reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Qualified.Last)})
			return env
		}
		if info.Arity != len(n.Args) {
			reportAt(env.On(n.Span), report.WrongArity{Expected: info.Arity, Got: len(n.Args)})
		}
		scheme := types.Instantiate(env, types.Eval(nil, info.Scheme))
		result := env
		for _, arg := range n.Args {
			arrow, ok := scheme.(types.VArrow)
			if !ok {
				return checkLinear(result, arg, types.VError{}, seen)
			}
			result = checkLinear(result, arg, arrow.Left, seen)
			scheme = arrow.Right
		}
		if err := types.Unify(scheme, expected); err != nil {
			reportTypeError(env.On(n.Span), err, expected.String(), scheme.String())
		}
		return result

	case ast.PatOr:
		leftEnv := checkLinear(env, n.Left, expected, cloneNameSet(seen))
		rightEnv := checkLinear(env, n.Right, expected, cloneNameSet(seen))
		if !sameBoundNames(env.Symbols, n.Left, n.Right) {
			reportAt(env.On(n.Span), report.OrPatternBindingMismatch{})
			return leftEnv
		}
		names := map[symbol.Symbol]bool{}
		collectPatternNames(n.Left, names)
		for name := range names {
			lt, _ := leftEnv.Variable(name)
			rt, _ := rightEnv.Variable(name)
			if err := types.Unify(lt, rt); err != nil {
				reportAt(env.On(n.Span), report.OrPatternBindingMismatch{})
				break
			}
		}
		return leftEnv

	default:
		return env
	}
}

// cloneNameSet copies a bound-names accumulator so a PatOr's two
// branches check linearity independently rather than treating a name
// bound on both sides as a duplicate.
func cloneNameSet(seen map[symbol.Symbol]bool) map[symbol.Symbol]bool {
	cp := make(map[symbol.Symbol]bool, len(seen))
	for k, v := range seen {
		cp[k] = v
	}
	return cp
}

// literalType returns the built-in type a literal pattern or
// expression always has, independent of context.
func literalType(l ast.Literal) types.Virtual {
	switch l.Kind {
	case ast.LitString:
		return types.VCon{Name: "String", Kind: types.Star}
	case ast.LitInteger:
		return types.VCon{Name: "Int", Kind: types.Star}
	case ast.LitFloat:
		return types.VCon{Name: "Float", Kind: types.Star}
	case ast.LitChar:
		return types.VCon{Name: "Char", Kind: types.Star}
	default:
		return types.VUnit{}
	}
}

// sameBoundNames checks the two sides of a PatOr bind exactly the same
// set of names, the one extra well-formedness rule an Or pattern needs
// beyond ordinary type checking (spec.md §4.4.3 edge case).
func sameBoundNames(syms *symbol.Table, a, b ast.Pattern) bool {
	as := map[symbol.Symbol]bool{}
	collectPatternNames(a, as)
	bs := map[symbol.Symbol]bool{}
	collectPatternNames(b, bs)
	if len(as) != len(bs) {
		return false
	}
	for k := range as {
		if !bs[k] {
			return false
		}
	}
	return true
}

func collectPatternNames(p ast.Pattern, out map[symbol.Symbol]bool) {
	switch n := p.(type) {
	case ast.PatLower:
		out[n.Name.Name] = true
	case ast.PatAnnotation:
		collectPatternNames(n.Pattern, out)
	case ast.PatOr:
		collectPatternNames(n.Left, out)
		collectPatternNames(n.Right, out)
	case ast.PatApplication:
		for _, a := range n.Args {
			collectPatternNames(a, out)
		}
	}
}
