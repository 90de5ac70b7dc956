package desugar

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
)

func (c *ctx) kindOpt(k cst.Kind) ast.Kind {
	if k == nil {
		return nil
	}
	return c.kind(k)
}

func (c *ctx) kind(k cst.Kind) ast.Kind {
	switch t := k.(type) {
	case cst.KindStar:
		return ast.KindStar{Span: t.Span}
	case cst.KindArrow:
		return ast.KindArrow{Left: c.kind(t.Left), Right: c.kind(t.Right), Span: t.Span}
	default:
		return ast.KindStar{}
	}
}

// typ lowers a CST type, unwrapping parentheses and defaulting an
// absent effect annotation to the empty row.
func (c *ctx) typ(t cst.Type) ast.Type {
	switch n := t.(type) {
	case cst.TypeParenthesis:
		return c.typ(n.Inner)
	case cst.TypeUpper:
		if len(n.Path.Segments) == 0 && c.symbols.String(n.Path.Last.Name) == "Unit" {
			return ast.Unit{Span: n.Span}
		}
		return ast.TypeConstructor{Qualified: c.qualified(n.Path), Span: n.Span}
	case cst.TypeLower:
		return ast.TypeVariable{Name: ast.Ident{Name: n.Name.Name, Span: n.Name.Span}, Span: n.Span}
	case cst.TypeArrow:
		return ast.Pi{
			Left:    c.typ(n.Left),
			Effects: c.effects(n.Effects),
			Right:   c.typ(n.Right),
			Span:    n.Span,
		}
	case cst.TypeApplication:
		args := make([]ast.Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.typ(a)
		}
		return ast.Application{Left: c.typ(n.Func), Right: args, Span: n.Span}
	case cst.TypeForall:
		params := make([]ast.TypeBinder, len(n.Params))
		for i, p := range n.Params {
			params[i] = c.typeBinder(p)
		}
		return ast.Forall{Params: params, Body: c.typ(n.Body), Span: n.Span}
	case cst.TypeTuple:
		elems := make([]ast.Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = c.typ(e)
		}
		return ast.Tuple{Elems: elems, Span: n.Span}
	case cst.TypeUnit:
		return ast.Unit{Span: n.Span}
	default:
		return ast.TypeError{}
	}
}

func (c *ctx) effects(e cst.Effects) ast.Effects {
	labels := make([]ast.Qualified, len(e.Labels))
	for i, l := range e.Labels {
		labels[i] = c.qualified(l)
	}
	return ast.Effects{Labels: labels, Span: e.Span}
}
