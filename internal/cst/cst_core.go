// Package cst defines the concrete syntax tree: the input contract this
// front-end expects from the (external, out-of-scope) parser
// collaborator. Every node wraps its payload with a Span; grouping
// parentheses are explicit nodes so the desugarer can drop them.
package cst

import (
	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/source"
)

// Ident is a bare lower- or upper-case identifier as written in source.
type Ident struct {
	Name symbol.Symbol
	Span source.Span
}

// Path is a qualified reference: zero or more module segments followed
// by a terminal name.
type Path struct {
	Segments []Ident
	Last     Ident
	Span     source.Span
}

// Operator enumerates the fixed alphabet of binary operators the
// concrete syntax can spell out as infix notation (spec.md §4.1).
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpAnd
	OpOr
	OpXor
	OpNot
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpShl
	OpShr
	OpPipe
)

// Program is the root of a single compilation unit's concrete tree.
type Program struct {
	TopLevels []TopLevel
}

// TopLevel is any item that may appear at module scope.
type TopLevel interface {
	topLevel()
}

// LetDecl is one clause of a (possibly multi-clause) let definition:
// `let name pat1 .. patN = expr`. Distinct clauses of the same name
// appear as separate LetDecl values in Program.TopLevels — merging them
// into one declaration is the desugarer's job (spec.md §4.1).
type LetDecl struct {
	Name     Ident
	Binders  []Binder
	Return   *Type // optional declared return type annotation
	Expr     Expr
	Span     source.Span
}

func (LetDecl) topLevel() {}

// Binder is one lambda/let parameter: a pattern plus its (possibly
// inferred-later) type annotation.
type Binder struct {
	Pattern Pattern
	Type    Type // nil when the binder carries no type annotation
}

// TypeDecl declares a named type with parameters and a definition
// (sum, record, or synonym).
type TypeDecl struct {
	Name    Ident
	Binders []TypeBinder
	Def     TypeDef
	Span    source.Span
}

func (TypeDecl) topLevel() {}

// TypeBinder is a type parameter, optionally kind-annotated.
type TypeBinder struct {
	Name     Ident
	Kind     Kind // nil when implicit
	Explicit bool
}

// TypeDef is the right-hand side of a TypeDecl.
type TypeDef interface {
	typeDef()
}

// Constructor is one variant of a SumDecl: `Name arg1 .. argN [: Ret]`.
type Constructor struct {
	Name Ident
	Args []Type
	Ret  *Type // explicit result type, when the source supplies one
	Span source.Span
}

// SumDecl is an algebraic sum type definition.
type SumDecl struct {
	Constructors []Constructor
}

func (SumDecl) typeDef() {}

// Field is one record field: `name : Type`.
type Field struct {
	Name Ident
	Type Type
	Span source.Span
}

// RecordDecl is a record (product) type definition.
type RecordDecl struct {
	Fields []Field
}

func (RecordDecl) typeDef() {}

// SynonymDecl aliases a name to an existing type expression.
type SynonymDecl struct {
	Body Type
}

func (SynonymDecl) typeDef() {}

// EffectDecl declares a named effect and its operations.
type EffectDecl struct {
	Name    Ident
	Binders []TypeBinder
	Fields  []EffectField
	Span    source.Span
}

func (EffectDecl) topLevel() {}

// EffectField is one operation of an effect: `name arg1 .. argN -> Ret`.
type EffectField struct {
	Name Ident
	Args []Type
	Ret  Type
	Span source.Span
}

// UseDecl imports a qualified path under a local alias.
type UseDecl struct {
	Path  Path
	Alias *Ident // nil when the alias defaults to the path's last segment
	Span  source.Span
}

func (UseDecl) topLevel() {}

// ModuleDecl introduces a nested namespace grouping further top-levels.
type ModuleDecl struct {
	Name      Ident
	TopLevels []TopLevel
	Span      source.Span
}

func (ModuleDecl) topLevel() {}
