package report

import "fmt"

// ErrorKind is the closed taxonomy of diagnostics the front-end can
// raise (spec.md §7). Each variant is a concrete type implementing
// error so every diagnostic carries a structured payload instead of a
// pre-formatted string, matching the teacher's
// internal/typesystem/error.go style of one struct per error kind.
type ErrorKind interface {
	error
	Code() string
}

// Redeclaration: a zero-arity let clause for Name already has cases.
type Redeclaration struct{ Name string }

func (e Redeclaration) Code() string { return "redeclaration" }
func (e Redeclaration) Error() string {
	return fmt.Sprintf("%q is a constant and cannot have multiple clauses", e.Name)
}

// OutOfOrderDefinition: non-contiguous let clauses for Name.
type OutOfOrderDefinition struct{ Name string }

func (e OutOfOrderDefinition) Code() string { return "out-of-order-definition" }
func (e OutOfOrderDefinition) Error() string {
	return fmt.Sprintf("clauses of %q must be contiguous", e.Name)
}

// UnresolvedVariable: term variable not in env.
type UnresolvedVariable struct{ Name string }

func (e UnresolvedVariable) Code() string { return "unresolved-variable" }
func (e UnresolvedVariable) Error() string {
	return fmt.Sprintf("unresolved variable %q", e.Name)
}

// CannotFind: qualified type/effect/constructor/import missing.
type CannotFind struct{ Name string }

func (e CannotFind) Code() string { return "cannot-find" }
func (e CannotFind) Error() string {
	return fmt.Sprintf("cannot find %q", e.Name)
}

// WrongArity: constructor or when-arm pattern arity mismatch.
type WrongArity struct{ Expected, Got int }

func (e WrongArity) Code() string { return "wrong-arity" }
func (e WrongArity) Error() string {
	return fmt.Sprintf("expected %d argument(s), got %d", e.Expected, e.Got)
}

// TypeMismatch: unification failure between non-error types.
type TypeMismatch struct{ Expected, Got string }

func (e TypeMismatch) Code() string { return "type-mismatch" }
func (e TypeMismatch) Error() string {
	return fmt.Sprintf("expected type %s, got %s", e.Expected, e.Got)
}

// NotAFunction: application head lacks an arrow.
type NotAFunction struct{ Got string }

func (e NotAFunction) Code() string { return "not-a-function" }
func (e NotAFunction) Error() string {
	return fmt.Sprintf("%s is not a function", e.Got)
}

// OccursCheck: unification would form a cycle.
type OccursCheck struct{ Hole, Type string }

func (e OccursCheck) Code() string { return "occurs-check" }
func (e OccursCheck) Error() string {
	return fmt.Sprintf("occurs check: %s occurs in %s", e.Hole, e.Type)
}

// EscapingSkolem: a skolem leaks above its introducing forall.
type EscapingSkolem struct{ Skolem string }

func (e EscapingSkolem) Code() string { return "escaping-skolem" }
func (e EscapingSkolem) Error() string {
	return fmt.Sprintf("type variable %s would escape its scope", e.Skolem)
}

// DuplicateBinding: same pattern binds Name twice.
type DuplicateBinding struct{ Name string }

func (e DuplicateBinding) Code() string { return "duplicate-binding" }
func (e DuplicateBinding) Error() string {
	return fmt.Sprintf("%q is bound more than once in this pattern", e.Name)
}

// OrPatternBindingMismatch: Or pattern branches disagree on bindings.
type OrPatternBindingMismatch struct{}

func (e OrPatternBindingMismatch) Code() string { return "or-pattern-binding-mismatch" }
func (e OrPatternBindingMismatch) Error() string {
	return "both sides of an `or` pattern must bind the same names at the same types"
}

// KindMismatch: kind subsumption failure.
type KindMismatch struct{ Expected, Got string }

func (e KindMismatch) Code() string { return "kind-mismatch" }
func (e KindMismatch) Error() string {
	return fmt.Sprintf("expected kind %s, got %s", e.Expected, e.Got)
}

// CyclicSynonym: a type synonym's body names the synonym itself
// (resolves Open Question 2 of spec.md §9). A cycle that runs through
// another synonym is not detected.
type CyclicSynonym struct{ Name string }

func (e CyclicSynonym) Code() string { return "cyclic-synonym" }
func (e CyclicSynonym) Error() string {
	return fmt.Sprintf("type synonym %q is cyclic", e.Name)
}
