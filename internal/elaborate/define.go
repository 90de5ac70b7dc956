package elaborate

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// defineProgram runs the define half of the two-pass elaborator in the
// same order as declare: types, then effects, then submodules, then
// lets (spec.md §4.4.1). A submodule's bodies therefore see every
// constructor, field and operation of the enclosing module, and its own
// lets are fully generalized before any sibling let references them.
func defineProgram(env *module.Env, prog ast.Program) {
	for _, t := range prog.Types {
		defineType(env, t)
	}
	for _, e := range prog.Effs {
		defineEffect(env, e)
	}
	for _, m := range prog.Mods {
		defineModule(env, m)
	}
	for _, l := range prog.Lets {
		defineLet(env, l)
	}
}

func defineModule(env *module.Env, m ast.ModuleDecl) {
	inner := env.WithNamespace(m.Name.Name)
	defineProgram(inner, ast.Program{Types: m.Types, Effs: m.Effs, Lets: m.Lets, Mods: m.Mods})
}

// withParamEnv extends env with one WithTypeParam binder per type
// parameter, the shared setup every type-level definition (sum
// variant, record field, synonym body, effect operation) needs before
// elaborating a body that may reference those parameters.
func withParamEnv(env *module.Env, params []ast.TypeBinder) *module.Env {
	inner := env
	for _, p := range params {
		inner = inner.WithTypeParam(p.Name, kind(p.Kind))
	}
	return inner
}

// quoteForall wraps body (already elaborated inside inner, whose level
// reflects every binder in params) in one TForall per parameter,
// outermost first, turning the explicit binder list into a real
// polymorphic scheme (mirrors ast.Forall's own elaboration in type.go).
func quoteForall(env, inner *module.Env, params []ast.TypeBinder, body types.Virtual) types.Type {
	quoted := types.Quote(inner.Level(), body)
	for i := len(params) - 1; i >= 0; i-- {
		quoted = types.TForall{Name: env.Symbols.String(params[i].Name), Kind: kind(params[i].Kind), Body: quoted}
	}
	return quoted
}

// selfType builds `TypeName p1 .. pN` applied to this TypeDecl's own
// parameters in binder order, the result type every constructor of a
// sum (and the implicit record constructor) produces.
func selfType(env *module.Env, inner *module.Env, name string, params []ast.TypeBinder) types.Virtual {
	var head types.Virtual = types.VCon{Name: name, Kind: types.Star}
	for i := range params {
		head = types.VApp{Func: head, Arg: types.VBoundVar{Level: env.Level() + i}}
	}
	return head
}

func defineType(env *module.Env, d ast.TypeDecl) {
	name := env.Symbols.String(d.Name.Name)
	inner := withParamEnv(env, d.Params)
	result := selfType(env, inner, name, d.Params)

	switch def := d.Def.(type) {
	case ast.EnumDecl:
		for _, v := range def.Variants {
			args := make([]types.Virtual, len(v.Args))
			for i, a := range v.Args {
				args[i] = checkType(inner, a, types.Star)
			}
			ret := result
			if v.Ret != nil {
				ret = checkType(inner, v.Ret, types.Star)
			}
			scheme := ret
			for i := len(args) - 1; i >= 0; i-- {
				scheme = types.VArrow{Left: args[i], Effects: types.Row{}, Right: scheme}
			}
			env.Table.SetConstructor(env.Namespace, v.Name.Name, module.ConstructorInfo{
				Scheme: quoteForall(env, inner, d.Params, scheme),
				Arity:  len(args),
			})
		}

	case ast.RecordDecl:
		for _, f := range def.Fields {
			fieldType := checkType(inner, f.Type, types.Star)
			scheme := types.VArrow{Left: result, Effects: types.Row{}, Right: fieldType}
			env.Table.SetField(env.Namespace, f.Name.Name, module.FieldInfo{
				Scheme: quoteForall(env, inner, d.Params, scheme),
			})
			env.Table.SetFieldOwner(env.Namespace, f.Name.Name, d.Name.Name)
		}
		args := make([]types.Virtual, len(def.Fields))
		for i, f := range def.Fields {
			args[i] = checkType(inner, f.Type, types.Star)
		}
		scheme := result
		for i := len(args) - 1; i >= 0; i-- {
			scheme = types.VArrow{Left: args[i], Effects: types.Row{}, Right: scheme}
		}
		env.Table.SetConstructor(env.Namespace, d.Name.Name, module.ConstructorInfo{
			Scheme: quoteForall(env, inner, d.Params, scheme),
			Arity:  len(args),
		})

	case ast.SynonymDecl:
		body := checkType(inner, def.Body, types.Star)
		scheme := quoteForall(env, inner, d.Params, body)
		if occursInSynonym(env, d.Name.Name, scheme) {
			reportAt(env.On(d.Span), report.CyclicSynonym{Name: name})
			return
		}
		existing, _ := env.Table.Type(env.Namespace, d.Name.Name)
		existing.Synonym = scheme
		env.Table.SetType(env.Namespace, d.Name.Name, existing)
	}
}

// occursInSynonym is a conservative direct-reference check: it catches
// a synonym whose own body mentions its own name, which is the only
// shape vulpi-typer's original synonym expander needs to reject before
// expansion would recurse forever (spec.md §9 Open Question 2). Mutual
// cycles between two synonyms are left as a known limitation (see
// DESIGN.md).
func occursInSynonym(env *module.Env, self symbol.Symbol, t types.Type) bool {
	switch n := t.(type) {
	case types.TCon:
		return n.Name == env.Symbols.String(self)
	case types.TApp:
		return occursInSynonym(env, self, n.Func) || occursInSynonym(env, self, n.Arg)
	case types.TArrow:
		return occursInSynonym(env, self, n.Left) || occursInSynonym(env, self, n.Right)
	case types.TTuple:
		for _, e := range n.Elems {
			if occursInSynonym(env, self, e) {
				return true
			}
		}
		return false
	case types.TForall:
		return occursInSynonym(env, self, n.Body)
	default:
		return false
	}
}

// defineEffect elaborates each operation's argument and result types
// into a scheme of `forall effectParams. arg1 -> .. -> argN -> Result`,
// registered so `perform Eff.op` can look it up the same way a
// constructor application does (spec.md §9 Open Question 1).
func defineEffect(env *module.Env, d ast.EffectDecl) {
	inner := withParamEnv(env, d.Binders)
	for _, f := range d.Fields {
		args := make([]types.Virtual, len(f.Args))
		for i, a := range f.Args {
			args[i] = checkType(inner, a, types.Star)
		}
		ret := checkType(inner, f.Type, types.Star)
		scheme := ret
		for i := len(args) - 1; i >= 0; i-- {
			scheme = types.VArrow{Left: args[i], Effects: types.Row{}, Right: scheme}
		}
		env.Table.SetOperation(env.Namespace, f.Name.Name, module.OperationInfo{
			Scheme: quoteForall(env, inner, d.Binders, scheme),
		})
	}
}

// defineLet infers (or checks, if declareLet already recorded an
// explicit signature) every clause's body, unifies the clauses'
// collective argument and result types the way a When's arms are
// collectively unified, and generalizes the result into the table's
// final scheme for this binding (spec.md §4.4.1, §4.4.2).
func defineLet(env *module.Env, d ast.LetDecl) {
	prior, _ := env.Table.Variable(env.Namespace, d.Name.Name)
	declared := types.Eval(nil, prior.Scheme)

	// The clause holes are minted one level deeper than env, so
	// Generalize (run at env.Level()) closes over those left unsolved.
	arity := len(d.Cases[0].Patterns)
	argTypes := make([]types.Virtual, arity)
	for i := range argTypes {
		argTypes[i] = types.VHole{Hole: types.NewHole(env.Level()+1, types.Star)}
	}
	resultType := types.Virtual(types.VHole{Hole: types.NewHole(env.Level()+1, types.Star)})

	// Every clause's body shares one sink: whichever clause runs at
	// call time, the declared function's own arrow must describe what
	// running its body can do, so the clauses' effects are folded
	// together rather than kept separate (spec.md §4.4.2).
	bodySink := &module.EffectSink{}
	for _, c := range d.Cases {
		clauseEnv := env
		for i, p := range c.Patterns {
			clauseEnv = checkPattern(clauseEnv, p, argTypes[i])
		}
		checkExpr(clauseEnv.WithEffectSink(bodySink), c.Body, resultType)
	}

	scheme := resultType
	for i := arity - 1; i >= 0; i-- {
		// Only the innermost arrow — the one applied once every argument
		// is supplied — carries the body's effects; partial application
		// of a curried function performs nothing by itself.
		effects := types.Row{}
		if i == arity-1 {
			effects = bodySink.Row
		}
		scheme = types.VArrow{Left: argTypes[i], Effects: effects, Right: scheme}
	}

	switch n := declared.(type) {
	case types.VError:
		// declareLet already reported why; nothing further to check.
	case types.VHole:
		// No explicit signature: the hole was only a scratch
		// placeholder for recursive self-references, so it is filled
		// with the inferred scheme rather than subsumption-checked
		// against it.
		n.Hole.Fill(types.Quote(env.Level(), scheme))
	default:
		if err := Subsumes(env, scheme, declared); err != nil {
			reportTypeError(env.On(d.Span), err, declared.String(), scheme.String())
		}
	}

	generalized := types.Generalize(env.Level(), scheme)
	env.Table.SetVariable(env.Namespace, d.Name.Name, module.VariableInfo{
		Scheme:  generalized,
		Arity:   arity,
		IsConst: arity == 0,
	})
}

// Subsumes is a thin package-local alias so defineLet reads like the
// rest of this file rather than reaching into types directly for one
// call; it exists purely for readability.
func Subsumes(env *module.Env, have, want types.Virtual) error {
	return types.Subsumes(env, have, want)
}
