package cst

import "github.com/vulpi-lang/vulpi/internal/source"

// Kind is the surface syntax for a kind annotation on an explicit type
// binder (e.g. `forall (f : * -> *). ...`).
type Kind interface {
	kind()
}

type KindStar struct{ Span source.Span }

func (KindStar) kind() {}

type KindArrow struct {
	Left, Right Kind
	Span        source.Span
}

func (KindArrow) kind() {}

// Type is the surface syntax for a type expression.
type Type interface {
	typeNode()
	GetSpan() source.Span
}

// TypeParenthesis wraps a parenthesized type; the desugarer unwraps it.
type TypeParenthesis struct {
	Inner Type
	Span  source.Span
}

func (t TypeParenthesis) typeNode()          {}
func (t TypeParenthesis) GetSpan() source.Span { return t.Span }

// TypeUpper is a reference to a user or built-in type constructor.
type TypeUpper struct {
	Path Path
	Span source.Span
}

func (t TypeUpper) typeNode()          {}
func (t TypeUpper) GetSpan() source.Span { return t.Span }

// TypeLower is a reference to an in-scope type variable.
type TypeLower struct {
	Name Ident
	Span source.Span
}

func (t TypeLower) typeNode()          {}
func (t TypeLower) GetSpan() source.Span { return t.Span }

// Effects is the brace-delimited effect label set annotating an arrow.
type Effects struct {
	Labels []Path
	Span   source.Span
}

// TypeArrow is `Left -{Effects}-> Right`; Effects is empty for a plain
// arrow `Left -> Right`.
type TypeArrow struct {
	Left    Type
	Effects Effects
	Right   Type
	Span    source.Span
}

func (t TypeArrow) typeNode()          {}
func (t TypeArrow) GetSpan() source.Span { return t.Span }

// TypeApplication is `Func Arg1 .. ArgN`.
type TypeApplication struct {
	Func Type
	Args []Type
	Span source.Span
}

func (t TypeApplication) typeNode()          {}
func (t TypeApplication) GetSpan() source.Span { return t.Span }

// TypeForall is `forall (x : k) .. . Body`.
type TypeForall struct {
	Params []TypeBinder
	Body   Type
	Span   source.Span
}

func (t TypeForall) typeNode()          {}
func (t TypeForall) GetSpan() source.Span { return t.Span }

// TypeTuple is `(T1, .., Tn)` with n >= 2.
type TypeTuple struct {
	Elems []Type
	Span  source.Span
}

func (t TypeTuple) typeNode()          {}
func (t TypeTuple) GetSpan() source.Span { return t.Span }

// TypeUnit is the nullary tuple type `()`.
type TypeUnit struct{ Span source.Span }

func (t TypeUnit) typeNode()          {}
func (t TypeUnit) GetSpan() source.Span { return t.Span }
