package desugar

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
)

func (c *ctx) pattern(p cst.Pattern) ast.Pattern {
	switch n := p.(type) {
	case cst.PatParenthesis:
		return c.pattern(n.Inner)
	case cst.PatWildcard:
		return ast.PatWildcard{Span: n.Span}
	case cst.PatUpper:
		return ast.PatUpper{Qualified: c.qualified(n.Path), Span: n.Span}
	case cst.PatLower:
		return ast.PatLower{Name: ast.Ident{Name: n.Name.Name, Span: n.Name.Span}, Span: n.Span}
	case cst.PatLiteral:
		return ast.PatLiteral{Literal: c.literal(n.Literal), Span: n.Span}
	case cst.PatAnnotation:
		return ast.PatAnnotation{Pattern: c.pattern(n.Pattern), Type: c.typ(n.Type), Span: n.Span}
	case cst.PatOr:
		return ast.PatOr{Left: c.pattern(n.Left), Right: c.pattern(n.Right), Span: n.Span}
	case cst.PatApplication:
		args := make([]ast.Pattern, len(n.Args))
		for i, a := range n.Args {
			args[i] = c.pattern(a)
		}
		return ast.PatApplication{Qualified: c.qualified(n.Func), Args: args, Span: n.Span}
	default:
		return ast.PatWildcard{}
	}
}

func (c *ctx) literal(l cst.Literal) ast.Literal {
	var kind ast.LiteralKind
	switch l.Kind {
	case cst.LitString:
		kind = ast.LitString
	case cst.LitInteger:
		kind = ast.LitInteger
	case cst.LitFloat:
		kind = ast.LitFloat
	case cst.LitChar:
		kind = ast.LitChar
	case cst.LitUnit:
		kind = ast.LitUnit
	}
	return ast.Literal{Kind: kind, Text: c.symbols.String(l.Text.Name), Span: l.Span}
}
