package ast

import "github.com/vulpi-lang/vulpi/internal/source"

// Kind is surface syntax for an explicit kind annotation on a type
// binder; it is elaborated into types.Kind by the kind checker
// (spec.md §4.4.4).
type Kind interface {
	kindNode()
}

type KindStar struct{ Span source.Span }

func (KindStar) kindNode() {}

type KindArrow struct {
	Left, Right Kind
	Span        source.Span
}

func (KindArrow) kindNode() {}

// Effects is the label set annotating a Pi type's arrow.
type Effects struct {
	Labels []Qualified
	Span   source.Span
}

// Type is the AST shape of spec.md §3.3: Pi | Tuple | Application |
// Forall | TypeVariable | TypeConstructor | Unit | Error.
type Type interface {
	typeNode()
	GetSpan() source.Span
}

// Pi is an arrow type, possibly effectful.
type Pi struct {
	Left    Type
	Effects Effects
	Right   Type
	Span    source.Span
}

func (t Pi) typeNode()            {}
func (t Pi) GetSpan() source.Span { return t.Span }

type Tuple struct {
	Elems []Type
	Span  source.Span
}

func (t Tuple) typeNode()            {}
func (t Tuple) GetSpan() source.Span { return t.Span }

// Application is a type constructor applied to argument types.
type Application struct {
	Left  Type
	Right []Type
	Span  source.Span
}

func (t Application) typeNode()            {}
func (t Application) GetSpan() source.Span { return t.Span }

// Forall is an explicit rank-n quantifier.
type Forall struct {
	Params []TypeBinder
	Body   Type
	Span   source.Span
}

func (t Forall) typeNode()            {}
func (t Forall) GetSpan() source.Span { return t.Span }

// TypeVariable is a reference to an in-scope type variable.
type TypeVariable struct {
	Name Ident
	Span source.Span
}

func (t TypeVariable) typeNode()            {}
func (t TypeVariable) GetSpan() source.Span { return t.Span }

// TypeConstructor is a reference to a declared type, effect, or built-in.
type TypeConstructor struct {
	Qualified Qualified
	Span      source.Span
}

func (t TypeConstructor) typeNode()            {}
func (t TypeConstructor) GetSpan() source.Span { return t.Span }

type Unit struct{ Span source.Span }

func (t Unit) typeNode()            {}
func (t Unit) GetSpan() source.Span { return t.Span }

// TypeError is the absorbing sentinel produced whenever kind checking
// fails; recursion into it never raises a second diagnostic.
type TypeError struct{ Span source.Span }

func (t TypeError) typeNode()            {}
func (t TypeError) GetSpan() source.Span { return t.Span }
