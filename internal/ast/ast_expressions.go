package ast

import "github.com/vulpi-lang/vulpi/internal/source"

// LiteralKind mirrors cst.LiteralKind at the AST layer.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitInteger
	LitFloat
	LitChar
	LitUnit
)

type Literal struct {
	Kind LiteralKind
	Text string
	Span source.Span
}

// Expr is the AST shape of spec.md §3.3. Projection, RecordInstance,
// RecordUpdate, Handler, Cases and Effect are carried as thin nodes
// whose elaboration rule mirrors the nearest implemented case (spec.md
// §9 Open Question 1); there is deliberately no If node — the
// desugarer lowers `if c then a else b` into a When over True/False.
type Expr interface {
	exprNode()
	GetSpan() source.Span
}

// Lambda is a one-pattern abstraction; multi-pattern surface lambdas
// are curried into nested Lambdas by the desugarer.
type Lambda struct {
	Pattern Pattern
	Body    Expr
	Span    source.Span
}

func (Lambda) exprNode()            {}
func (e Lambda) GetSpan() source.Span { return e.Span }

// Variable is a reference resolved to a local binding (spec.md §4.4.2).
type Variable struct {
	Qualified Qualified
	Span      source.Span
}

func (Variable) exprNode()            {}
func (e Variable) GetSpan() source.Span { return e.Span }

// Constructor is a reference to a declared data constructor.
type Constructor struct {
	Qualified Qualified
	Span      source.Span
}

func (Constructor) exprNode()            {}
func (e Constructor) GetSpan() source.Span { return e.Span }

// Function is a reference to a top-level let-bound name, distinguished
// from Variable because its scheme is looked up in the module table
// rather than the local environment (spec.md §4.4.2).
type Function struct {
	Qualified Qualified
	Span      source.Span
}

func (Function) exprNode()            {}
func (e Function) GetSpan() source.Span { return e.Span }

// Let is `let pat = value in body`.
type Let struct {
	Pattern Pattern
	Value   Expr
	Body    Expr
	Span    source.Span
}

func (Let) exprNode()            {}
func (e Let) GetSpan() source.Span { return e.Span }

// Application is `func arg`; surface multi-argument application is
// curried by the desugarer into nested Applications.
type Application struct {
	Func Expr
	Arg  Expr
	Span source.Span
}

func (Application) exprNode()            {}
func (e Application) GetSpan() source.Span { return e.Span }

// WhenArm is one arm of a When expression.
type WhenArm struct {
	Pattern Pattern
	Guard   Expr // nil when there is no guard
	Then    Expr
	Span    source.Span
}

// When is a pattern match over a scrutinee; If is lowered into a When
// with two arms over the True/False constructors.
type When struct {
	Scrutinee Expr
	Arms      []WhenArm
	Span      source.Span
}

func (When) exprNode()            {}
func (e When) GetSpan() source.Span { return e.Span }

// Do is a desugared statement sequence: a flat list of DoStatements in
// source order, where every StatementExpr becomes a statement binding a
// wildcard pattern. The elaborator checks the statements one after
// another, each in the scope extended by the ones before it.
type Do struct {
	Statements []DoStatement
	Span       source.Span
}

func (Do) exprNode()            {}
func (e Do) GetSpan() source.Span { return e.Span }

// DoStatement is one binding of a Do block. WasLet distinguishes a
// genuine `let` statement from a bare-expression statement even
// though both desugar to the same Pattern/Value shape: the block's
// result type is Unit when the last statement has WasLet set, and the
// last statement's own value type otherwise (spec.md §4.4.2).
type DoStatement struct {
	Pattern Pattern
	Value   Expr
	WasLet  bool
	Span    source.Span
}

type Tuple struct {
	Elems []Expr
	Span  source.Span
}

func (Tuple) exprNode()            {}
func (e Tuple) GetSpan() source.Span { return e.Span }

type LiteralExpr struct {
	Literal Literal
	Span    source.Span
}

func (LiteralExpr) exprNode()            {}
func (e LiteralExpr) GetSpan() source.Span { return e.Span }

// Annotation is `expr : Type`, which check uses to switch from
// inference into checking mode (spec.md §4.4.2).
type Annotation struct {
	Expr Expr
	Type Type
	Span source.Span
}

func (Annotation) exprNode()            {}
func (e Annotation) GetSpan() source.Span { return e.Span }

// Projection is `expr.field`, elaborated by inferring expr's record
// type and looking up field the same way Variable looks up a scheme.
type Projection struct {
	Expr  Expr
	Field Ident
	Span  source.Span
}

func (Projection) exprNode()            {}
func (e Projection) GetSpan() source.Span { return e.Span }

// RecordInstanceField is one `name = value` pair of a record literal.
type RecordInstanceField struct {
	Name  Ident
	Value Expr
	Span  source.Span
}

// RecordInstance constructs a record value by name, elaborated the
// same way Constructor elaborates a sum variant: infer each field
// against the declared record's field schemes (spec.md §9 Open
// Question 1).
type RecordInstance struct {
	Qualified Qualified
	Fields    []RecordInstanceField
	Span      source.Span
}

func (RecordInstance) exprNode()            {}
func (e RecordInstance) GetSpan() source.Span { return e.Span }

// RecordUpdate rebuilds Expr's record type with Fields overridden; it
// shares RecordInstance's per-field checking rule.
type RecordUpdate struct {
	Expr   Expr
	Fields []RecordInstanceField
	Span   source.Span
}

func (RecordUpdate) exprNode()            {}
func (e RecordUpdate) GetSpan() source.Span { return e.Span }

// HandlerArm is one `effect.op arg1 .. argN resume -> body` clause.
type HandlerArm struct {
	Qualified Qualified
	Args      []Pattern
	Resume    Ident
	Body      Expr
	Span      source.Span
}

// Handler installs effect-operation interpretations around Body,
// elaborated like a When whose arms are effect operations instead of
// patterns: each arm's argument patterns check against the operation's
// declared argument types and Resume receives a function type ending
// in the handler's result type (spec.md §9 Open Question 1).
type Handler struct {
	Body Expr
	Arms []HandlerArm
	Span source.Span
}

func (Handler) exprNode()            {}
func (e Handler) GetSpan() source.Span { return e.Span }

// Cases is a multi-clause lambda: `cases { pat1 -> e1 ; .. }`,
// elaborated as sugar for `\x -> when x { ... }` over a fresh
// scrutinee, reusing the When collective-arm-unification rule.
type Cases struct {
	Arms []WhenArm
	Span source.Span
}

func (Cases) exprNode()            {}
func (e Cases) GetSpan() source.Span { return e.Span }

// Effect performs an effect operation: `perform Eff.op arg1 .. argN`,
// elaborated like Function applied to the operation's scheme except
// the inferred effect row gains Eff's label instead of leaving it
// absent (spec.md §9 Open Question 1).
type Effect struct {
	Qualified Qualified
	Span      source.Span
}

func (Effect) exprNode()            {}
func (e Effect) GetSpan() source.Span { return e.Span }

// Error is the absorbing sentinel for an expression that failed to
// elaborate; it unifies with anything and never raises a second
// diagnostic (spec.md §4.4.6, §7).
type Error struct{ Span source.Span }

func (Error) exprNode()            {}
func (e Error) GetSpan() source.Span { return e.Span }
