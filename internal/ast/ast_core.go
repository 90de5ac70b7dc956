// Package ast defines the abstract syntax tree: the output of the
// desugarer (component B) and the input to the elaborator (component
// E). Every node still carries the span of the concrete node(s) it was
// produced from (spec.md §8, invariant 1).
package ast

import (
	"github.com/vulpi-lang/vulpi/internal/source"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

// Ident is a bare name plus the span it was written at.
type Ident struct {
	Name symbol.Symbol
	Span source.Span
}

// Qualified is a path reference used for types, constructors, fields,
// effects, and let-bindings at module scope (spec.md §3.1).
type Qualified struct {
	Segments []symbol.Symbol
	Last     symbol.Symbol
	Span     source.Span
}

// Program is one compilation unit's desugared tree.
type Program struct {
	Uses  []UseDecl
	Types []TypeDecl
	Effs  []EffectDecl
	Lets  []LetDecl
	Mods  []ModuleDecl
}

// Decl is the common interface for every top-level declaration kind
// (spec.md §3.3).
type Decl interface {
	declNode()
}

// TypeBinder is one parameter of a TypeDecl or EffectDecl, with its
// kind defaulted to Star by the declare pass unless explicit.
type TypeBinder struct {
	Name     symbol.Symbol
	Kind     Kind // nil when implicit; declare fills in Star
	Explicit bool
	Span     source.Span
}

// TypeDecl declares a named type with parameters and a definition.
type TypeDecl struct {
	Namespace []symbol.Symbol
	Name      Ident
	Params    []TypeBinder
	Def       TypeDef
	Span      source.Span
}

func (TypeDecl) declNode() {}

// TypeDef is the right-hand side of a TypeDecl: sum, record, or synonym.
type TypeDef interface {
	typeDefNode()
}

type Variant struct {
	Name Ident
	Args []Type
	Ret  Type // nil when the constructor has no explicit result type
	Span source.Span
}

type EnumDecl struct{ Variants []Variant }

func (EnumDecl) typeDefNode() {}

type Field struct {
	Name Ident
	Type Type
	Span source.Span
}

type RecordDecl struct{ Fields []Field }

func (RecordDecl) typeDefNode() {}

// SynonymDecl aliases Name to Body, expanded at use (eval) time rather
// than stored nominally (resolves spec.md §9 Open Question 2).
type SynonymDecl struct{ Body Type }

func (SynonymDecl) typeDefNode() {}

// EffectDecl declares a named effect and the operations it carries.
type EffectDecl struct {
	Namespace []symbol.Symbol
	Qualified Qualified
	Binders   []TypeBinder
	Fields    []EffectField
	Span      source.Span
}

func (EffectDecl) declNode() {}

type EffectField struct {
	Name Ident
	Args []Type
	Type Type
	Span source.Span
}

// LetCase is one source clause of a (possibly multi-clause) let
// definition, preserved in source order inside its LetDecl.
type LetCase struct {
	NameRange source.Span
	Patterns  []Pattern
	Body      Expr
}

// LetDecl is the merged result of every clause sharing Name within a
// namespace (spec.md §3.3, "Merging invariant").
type LetDecl struct {
	Name   Ident
	Ret    Type // declared return type annotation, if any; desugar.File never sets it (cst.LetDecl.Return is not carried over)
	Cases  []LetCase
	Span   source.Span
}

func (LetDecl) declNode() {}

// UseDecl imports Path under the local name Alias.
type UseDecl struct {
	Path  Qualified
	Alias Ident
	Span  source.Span
}

func (UseDecl) declNode() {}

// ModuleDecl introduces a nested namespace; its own declare/define
// pass runs with the namespace path extended (spec.md §4.4.1).
type ModuleDecl struct {
	Namespace []symbol.Symbol
	Name      Ident
	Types     []TypeDecl
	Effs      []EffectDecl
	Lets      []LetDecl
	Mods      []ModuleDecl
	Span      source.Span
}

func (ModuleDecl) declNode() {}
