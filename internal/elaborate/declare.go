package elaborate

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// declareProgram runs the declare half of the two-pass elaborator over
// one compilation unit: types, then effects, then submodules, then
// lets, so every name in the unit is visible in module.Table before
// any body is checked regardless of which file or clause defines it
// (spec.md §4.4.1, traversal order grounded on the original's
// Declare::declare for Module).
func declareProgram(env *module.Env, prog ast.Program) {
	for _, u := range prog.Uses {
		declareUse(env, u)
	}
	for _, t := range prog.Types {
		declareType(env, t)
	}
	for _, e := range prog.Effs {
		declareEffect(env, e)
	}
	for _, m := range prog.Mods {
		declareModule(env, m)
	}
	for _, l := range prog.Lets {
		declareLet(env, l)
	}
}

// declareUse records u's alias in env.Imports, so every later
// ResolveNamespace call whose first segment is the alias resolves to
// the imported module's full path.
func declareUse(env *module.Env, u ast.UseDecl) {
	prefix := env.ResolveNamespace(u.Path)
	env.Imports[u.Alias.Name] = append(prefix[:len(prefix):len(prefix)], u.Path.Last)
}

func declareModule(env *module.Env, m ast.ModuleDecl) {
	inner := env.WithNamespace(m.Name.Name)
	declareProgram(inner, ast.Program{Types: m.Types, Effs: m.Effs, Lets: m.Lets, Mods: m.Mods})
}

// declareType registers name's kind, computed from its parameter
// binders (defaulting each to Star), before its definition is
// elaborated. A synonym's Synonym field is left nil until define fills
// it in, so a forward reference to the synonym during declare sees
// "declared but not yet a known alias" rather than a stale zero value.
func declareType(env *module.Env, d ast.TypeDecl) {
	paramKinds := make([]types.Kind, len(d.Params))
	for i, p := range d.Params {
		paramKinds[i] = kind(p.Kind)
	}
	k := types.MakeArrow(append(paramKinds, types.Star)...)
	env.Table.SetType(env.Namespace, d.Name.Name, module.TypeInfo{Kind: k})
}

// declareEffect registers an effect's kind the same way declareType
// does for a data type, except the arrow's result kind is Effect
// instead of Star, marking it as usable only inside a row annotation.
func declareEffect(env *module.Env, d ast.EffectDecl) {
	paramKinds := make([]types.Kind, len(d.Binders))
	for i, b := range d.Binders {
		paramKinds[i] = kind(b.Kind)
	}
	k := types.MakeArrow(append(paramKinds, types.Effect)...)
	env.Table.SetEffect(env.Namespace, d.Qualified.Last, module.EffectInfo{Kind: k})
}

// declareLet registers a placeholder scheme for a top-level binding so
// mutually recursive lets can reference each other regardless of
// source order; define overwrites this entry with the fully
// generalized scheme once the body has been inferred (spec.md §4.4.1).
// A clause with an explicit return-type annotation on its first case
// elaborates that annotation immediately instead of waiting, since an
// annotated signature is exactly the declared-before-use contract a
// recursive function relies on.
func declareLet(env *module.Env, d ast.LetDecl) {
	if d.Ret != nil {
		v := checkType(env, d.Ret, types.Star)
		env.Table.SetVariable(env.Namespace, d.Name.Name, module.VariableInfo{
			Scheme:  types.Quote(0, v),
			Arity:   len(d.Cases[0].Patterns),
			IsConst: len(d.Cases) > 0 && len(d.Cases[0].Patterns) == 0,
		})
		return
	}
	hole := env.NewHole(types.Star)
	env.Table.SetVariable(env.Namespace, d.Name.Name, module.VariableInfo{
		Scheme:  types.THole{Hole: hole},
		Arity:   len(d.Cases[0].Patterns),
		IsConst: len(d.Cases) > 0 && len(d.Cases[0].Patterns) == 0,
	})
}
