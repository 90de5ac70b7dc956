package ast

import "github.com/vulpi-lang/vulpi/internal/source"

// Pattern is the AST shape of spec.md §3.3: Wildcard | Upper | Lower |
// Literal | Annotation | Or | Application.
type Pattern interface {
	patternNode()
	GetSpan() source.Span
}

type PatWildcard struct{ Span source.Span }

func (PatWildcard) patternNode()            {}
func (p PatWildcard) GetSpan() source.Span { return p.Span }

// PatUpper matches a nullary constructor.
type PatUpper struct {
	Qualified Qualified
	Span      source.Span
}

func (PatUpper) patternNode()            {}
func (p PatUpper) GetSpan() source.Span { return p.Span }

// PatLower binds the scrutinee (or sub-term) to a fresh variable.
type PatLower struct {
	Name Ident
	Span source.Span
}

func (PatLower) patternNode()            {}
func (p PatLower) GetSpan() source.Span { return p.Span }

type PatLiteral struct {
	Literal Literal
	Span    source.Span
}

func (PatLiteral) patternNode()            {}
func (p PatLiteral) GetSpan() source.Span { return p.Span }

// PatAnnotation ascribes a type to a sub-pattern, used by check to push
// an expected type down instead of inferring one (spec.md §4.4.3).
type PatAnnotation struct {
	Pattern Pattern
	Type    Type
	Span    source.Span
}

func (PatAnnotation) patternNode()            {}
func (p PatAnnotation) GetSpan() source.Span { return p.Span }

// PatOr requires both branches to bind the same set of names with the
// same types (spec.md §4.4.3 edge case); violations raise
// OrPatternBindingMismatch.
type PatOr struct {
	Left, Right Pattern
	Span        source.Span
}

func (PatOr) patternNode()            {}
func (p PatOr) GetSpan() source.Span { return p.Span }

// PatApplication matches a constructor applied to sub-patterns; arity
// is checked against the constructor's declared scheme.
type PatApplication struct {
	Qualified Qualified
	Args      []Pattern
	Span      source.Span
}

func (PatApplication) patternNode()            {}
func (p PatApplication) GetSpan() source.Span { return p.Span }
