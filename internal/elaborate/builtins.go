package elaborate

import (
	"strings"

	"github.com/vulpi-lang/vulpi/internal/config"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// Builtins seeds table's root namespace with every built-in type
// constructor, nullary data constructor, and operator function named
// in constants.go and described by config's embedded prelude manifest,
// the one-time setup every compilation must run before declare/define
// ever look a name up (spec.md §3, "ambient built-ins").
func Builtins(syms *symbol.Table, table *module.Table) {
	for _, name := range []string{
		config.BoolTypeName, config.UnitTypeName, config.IntTypeName,
		config.FloatTypeName, config.StringTypeName, config.CharTypeName,
	} {
		table.SetType(nil, syms.Intern(name), module.TypeInfo{Kind: types.Star})
	}
	table.SetType(nil, syms.Intern(config.ListTypeName), module.TypeInfo{
		Kind: types.KArrow{Left: types.Star, Right: types.Star},
	})

	prelude := config.LoadPrelude()
	for _, c := range prelude.NullaryConstructors {
		table.SetConstructor(nil, syms.Intern(c.Name), module.ConstructorInfo{
			Scheme: parseSurfaceType(syms, c.Type),
			Arity:  0,
		})
	}
	for _, op := range prelude.Operators {
		table.SetVariable(nil, syms.Intern(op.Name), module.VariableInfo{
			Scheme:  parseSurfaceType(syms, op.Type),
			Arity:   strings.Count(op.Type, "->"),
			IsConst: false,
		})
	}
}

// parseSurfaceType reads the prelude manifest's tiny "A -> B -> C"
// grammar directly into a generalized types.Type: a lowercase word is
// a universally quantified variable (collected and wrapped in an
// outer TForall chain), an uppercase word is a nullary TCon, and
// "Name arg" is a one-argument TApp. This is deliberately not routed
// through inferType/ast.Type, since prelude schemes are closed
// constants known at compile time rather than user source.
func parseSurfaceType(syms *symbol.Table, src string) types.Type {
	parts := strings.Split(src, "->")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	vars := map[string]int{}
	var order []string
	var collect func(s string)
	collect = func(s string) {
		for _, w := range strings.Fields(s) {
			if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
				if _, ok := vars[w]; !ok {
					vars[w] = len(order)
					order = append(order, w)
				}
			}
		}
	}
	for _, p := range parts {
		collect(p)
	}

	atom := func(s string) types.Type {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return types.TError{}
		}
		var head types.Type
		if idx, ok := vars[fields[0]]; ok {
			head = types.TBound{Index: len(order) - 1 - idx, Kind: types.Star}
		} else {
			head = types.TCon{Name: fields[0], Kind: types.Star}
		}
		for _, arg := range fields[1:] {
			var a types.Type
			if idx, ok := vars[arg]; ok {
				a = types.TBound{Index: len(order) - 1 - idx, Kind: types.Star}
			} else {
				a = types.TCon{Name: arg, Kind: types.Star}
			}
			head = types.TApp{Func: head, Arg: a}
		}
		return head
	}

	var body types.Type = atom(parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		body = types.TArrow{Left: atom(parts[i]), Effects: types.Row{}, Right: body}
	}
	for range order {
		body = types.TForall{Name: "a", Kind: types.Star, Body: body}
	}
	return body
}
