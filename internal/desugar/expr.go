package desugar

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
)

// operatorName maps each surface operator to the built-in function
// name it desugars to an Application of (spec.md §4.1: binary
// expressions are sugar, not their own AST node).
func operatorName(op cst.Operator) string {
	switch op {
	case cst.OpAdd:
		return "+"
	case cst.OpSub:
		return "-"
	case cst.OpMul:
		return "*"
	case cst.OpDiv:
		return "/"
	case cst.OpRem:
		return "%"
	case cst.OpAnd:
		return "&&"
	case cst.OpOr:
		return "||"
	case cst.OpXor:
		return "^"
	case cst.OpNot:
		return "!"
	case cst.OpEq:
		return "=="
	case cst.OpNeq:
		return "!="
	case cst.OpLt:
		return "<"
	case cst.OpGt:
		return ">"
	case cst.OpLe:
		return "<="
	case cst.OpGe:
		return ">="
	case cst.OpShl:
		return "<<"
	case cst.OpShr:
		return ">>"
	default:
		return "<op>"
	}
}

func (c *ctx) expr(e cst.Expr) ast.Expr {
	switch n := e.(type) {
	case cst.ExprParenthesis:
		return c.expr(n.Inner)
	case cst.ExprIdent:
		return c.identExpr(n)
	case cst.ExprLiteral:
		return ast.LiteralExpr{Literal: c.literal(n.Literal), Span: n.Span}
	case cst.ExprLambda:
		return c.lambda(n.Patterns, n.Body)
	case cst.ExprApplication:
		return c.application(n.Func, n.Args)
	case cst.ExprAccessor:
		return ast.Projection{
			Expr:  c.expr(n.Expr),
			Field: ast.Ident{Name: n.Field.Name, Span: n.Field.Span},
			Span:  n.Span,
		}
	case cst.ExprBinary:
		return c.binary(n)
	case cst.ExprLet:
		return ast.Let{
			Pattern: c.pattern(n.Pattern),
			Value:   c.expr(n.Value),
			Body:    c.expr(n.Body),
			Span:    n.Span,
		}
	case cst.ExprIf:
		return c.ifExpr(n)
	case cst.ExprWhen:
		return c.when(n)
	case cst.ExprAnnotation:
		return ast.Annotation{Expr: c.expr(n.Expr), Type: c.typ(n.Type), Span: n.Span}
	case cst.ExprTuple:
		elems := make([]ast.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = c.expr(el)
		}
		return ast.Tuple{Elems: elems, Span: n.Span}
	case cst.ExprDo:
		return c.doBlock(n)
	case cst.ExprError:
		return ast.Error{Span: n.Span}
	default:
		return ast.Error{}
	}
}

// identExpr disambiguates Variable / Function / Constructor the way
// the front-end's grammar does it lexically: an uppercase-leading
// terminal segment is a Constructor reference, a lowercase segment
// qualified by at least one module segment is a cross-module Function
// reference, and a bare lowercase segment is a Variable that the
// elaborator may still redirect to the local module's Function table
// on a scope miss (spec.md §4.4.2).
func (c *ctx) identExpr(n cst.ExprIdent) ast.Expr {
	last := c.symbols.String(n.Path.Last.Name)
	q := c.qualified(n.Path)
	if len(last) > 0 && isUpper(last[0]) {
		return ast.Constructor{Qualified: q, Span: n.Span}
	}
	if len(n.Path.Segments) > 0 {
		return ast.Function{Qualified: q, Span: n.Span}
	}
	return ast.Variable{Qualified: q, Span: n.Span}
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// lambda curries a multi-pattern surface lambda into nested
// single-pattern Lambda nodes (spec.md §3.3's Lambda carries one
// pattern).
func (c *ctx) lambda(pats []cst.Pattern, body cst.Expr) ast.Expr {
	return c.curryLambdaFrom(pats, 0, c.expr(body))
}

func (c *ctx) curryLambdaFrom(pats []cst.Pattern, i int, body ast.Expr) ast.Expr {
	if i >= len(pats) {
		return body
	}
	rest := c.curryLambdaFrom(pats, i+1, body)
	p := c.pattern(pats[i])
	return ast.Lambda{Pattern: p, Body: rest, Span: p.GetSpan().Join(rest.GetSpan())}
}

// application curries a multi-argument surface call into nested
// single-argument Application nodes.
func (c *ctx) application(fn cst.Expr, args []cst.Expr) ast.Expr {
	result := c.expr(fn)
	for _, a := range args {
		arg := c.expr(a)
		result = ast.Application{Func: result, Arg: arg, Span: result.GetSpan().Join(arg.GetSpan())}
	}
	return result
}

// binary lowers `left op right` to an Application of the operator's
// built-in function, except `|>` which applies right to left.
func (c *ctx) binary(n cst.ExprBinary) ast.Expr {
	left := c.expr(n.Left)
	right := c.expr(n.Right)
	if n.Op == cst.OpPipe {
		return ast.Application{Func: right, Arg: left, Span: n.Span}
	}
	sym := c.symbols.Intern(operatorName(n.Op))
	fn := ast.Function{Qualified: ast.Qualified{Last: sym, Span: n.Span}, Span: n.Span}
	step1 := ast.Application{Func: fn, Arg: left, Span: n.Span}
	return ast.Application{Func: step1, Arg: right, Span: n.Span}
}

// ifExpr lowers `if c then a else b` into a When over the True/False
// constructors — the AST's closed Expression list has no If node
// (spec.md §3.3 omits it; this resolves that gap).
func (c *ctx) ifExpr(n cst.ExprIf) ast.Expr {
	trueSym := c.symbols.Intern("True")
	falseSym := c.symbols.Intern("False")
	cond := c.expr(n.Cond)
	thenE := c.expr(n.Then)
	elseE := c.expr(n.Else)
	return ast.When{
		Scrutinee: cond,
		Arms: []ast.WhenArm{
			{Pattern: ast.PatUpper{Qualified: ast.Qualified{Last: trueSym, Span: n.Span}, Span: n.Span}, Then: thenE, Span: n.Span},
			{Pattern: ast.PatUpper{Qualified: ast.Qualified{Last: falseSym, Span: n.Span}, Span: n.Span}, Then: elseE, Span: n.Span},
		},
		Span: n.Span,
	}
}

func (c *ctx) when(n cst.ExprWhen) ast.Expr {
	arms := make([]ast.WhenArm, len(n.Arms))
	for i, a := range n.Arms {
		var guard ast.Expr
		if a.Guard != nil {
			guard = c.expr(a.Guard)
		}
		arms[i] = ast.WhenArm{
			Pattern: c.pattern(a.Pattern),
			Guard:   guard,
			Then:    c.expr(a.Then),
			Span:    a.Span,
		}
	}
	return ast.When{Scrutinee: c.expr(n.Scrutinee), Arms: arms, Span: n.Span}
}

// doBlock lowers every statement into a DoStatement; a bare expression
// statement binds a wildcard pattern, matching the Rust original's
// treatment of a do-block as sugar over nested lets (spec.md §4.1).
// WasLet is carried through so the elaborator can still tell a genuine
// `let` statement from a bare expression even though both share the
// same Pattern/Value shape (spec.md §4.4.2's Unit-resolution rule).
func (c *ctx) doBlock(n cst.ExprDo) ast.Expr {
	stmts := make([]ast.DoStatement, len(n.Block.Statements))
	for i, s := range n.Block.Statements {
		switch st := s.(type) {
		case cst.StatementLet:
			stmts[i] = ast.DoStatement{
				Pattern: c.pattern(st.Let.Pattern),
				Value:   c.expr(st.Let.Expr),
				WasLet:  true,
				Span:    st.Let.Span,
			}
		case cst.StatementExpr:
			v := c.expr(st.Expr)
			stmts[i] = ast.DoStatement{Pattern: ast.PatWildcard{Span: v.GetSpan()}, Value: v, Span: v.GetSpan()}
		case cst.StatementError:
			stmts[i] = ast.DoStatement{Pattern: ast.PatWildcard{Span: st.Span}, Value: ast.Error{Span: st.Span}, Span: st.Span}
		}
	}
	return ast.Do{Statements: stmts, Span: n.Span}
}
