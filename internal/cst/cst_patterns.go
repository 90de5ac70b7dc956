package cst

import "github.com/vulpi-lang/vulpi/internal/source"

// Pattern is the surface syntax for a pattern.
type Pattern interface {
	patternNode()
	GetSpan() source.Span
}

type PatWildcard struct{ Span source.Span }

func (p PatWildcard) patternNode()          {}
func (p PatWildcard) GetSpan() source.Span { return p.Span }

// PatUpper matches a nullary constructor, e.g. `None`.
type PatUpper struct {
	Path Path
	Span source.Span
}

func (p PatUpper) patternNode()          {}
func (p PatUpper) GetSpan() source.Span { return p.Span }

// PatLower binds a fresh variable.
type PatLower struct {
	Name Ident
	Span source.Span
}

func (p PatLower) patternNode()          {}
func (p PatLower) GetSpan() source.Span { return p.Span }

// PatLiteral matches a literal value.
type PatLiteral struct {
	Literal Literal
	Span    source.Span
}

func (p PatLiteral) patternNode()          {}
func (p PatLiteral) GetSpan() source.Span { return p.Span }

// PatAnnotation ascribes a type to a sub-pattern: `pat : Type`.
type PatAnnotation struct {
	Pattern Pattern
	Type    Type
	Span    source.Span
}

func (p PatAnnotation) patternNode()          {}
func (p PatAnnotation) GetSpan() source.Span { return p.Span }

// PatOr is `left | right`: either branch may match, both must bind the
// same names (spec.md §4.4.3).
type PatOr struct {
	Left, Right Pattern
	Span        source.Span
}

func (p PatOr) patternNode()          {}
func (p PatOr) GetSpan() source.Span { return p.Span }

// PatApplication matches a constructor applied to argument patterns.
type PatApplication struct {
	Func Path
	Args []Pattern
	Span source.Span
}

func (p PatApplication) patternNode()          {}
func (p PatApplication) GetSpan() source.Span { return p.Span }

// PatParenthesis wraps a parenthesized pattern; the desugarer unwraps it.
type PatParenthesis struct {
	Inner Pattern
	Span  source.Span
}

func (p PatParenthesis) patternNode()          {}
func (p PatParenthesis) GetSpan() source.Span { return p.Span }
