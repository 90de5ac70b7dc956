// Package module implements component D: the shared, namespace-keyed
// Module table every compilation unit declares into, and the
// persistent Env each elaboration goroutine carries its own copy of
// (spec.md §4.3).
package module

import (
	"strings"
	"sync"

	"github.com/vulpi-lang/vulpi/internal/symbol"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// VariableInfo is what the module table remembers about a top-level
// let-bound name: its generalized scheme plus whether it is a
// constant (zero-arity) binding, mirroring the symbols package's
// per-kind Symbol fields in the teacher.
type VariableInfo struct {
	Scheme   types.Type
	Arity    int
	IsConst  bool
}

// TypeInfo is what the module table remembers about a declared type:
// its kind and, for a synonym, the body to expand at use (spec.md §9
// Open Question 2).
type TypeInfo struct {
	Kind    types.Kind
	Synonym types.Type // nil unless this TypeDecl is a synonym
}

// ConstructorInfo is a declared sum variant's scheme, already built as
// `forall params. arg1 -> .. -> argN -> Result`.
type ConstructorInfo struct {
	Scheme types.Type
	Arity  int
}

// FieldInfo is a declared record field's scheme, built as
// `forall params. Record -> FieldType`.
type FieldInfo struct {
	Scheme types.Type
}

// EffectInfo is a declared effect's kind, keyed the same way a type is.
type EffectInfo struct {
	Kind types.Kind
}

// OperationInfo is a declared effect operation's scheme, built as
// `forall params. arg1 -> .. -> argN -> Result`; every arrow in it
// carries an empty effect row.
type OperationInfo struct {
	Scheme types.Type
}

// namespaceKey joins a namespace path into the table's lookup key, the
// same "." join shape as symbols.Symbol.OriginModule in the teacher.
func namespaceKey(ns []symbol.Symbol, syms *symbol.Table) string {
	parts := make([]string, len(ns))
	for i, s := range ns {
		parts[i] = syms.String(s)
	}
	return strings.Join(parts, ".")
}

// Table is the one piece of mutable shared state every concurrently
// elaborated file's Env points into. It is read-only during infer and
// check, and mutated only by declare/define (spec.md §5, "Shared
// mutable state").
type Table struct {
	mu           sync.RWMutex
	symbols      *symbol.Table
	variables    map[string]map[symbol.Symbol]VariableInfo
	typesByName  map[string]map[symbol.Symbol]TypeInfo
	constructors map[string]map[symbol.Symbol]ConstructorInfo
	fields       map[string]map[symbol.Symbol]FieldInfo
	effects      map[string]map[symbol.Symbol]EffectInfo
	operations   map[string]map[symbol.Symbol]OperationInfo
	// fieldOwner maps a field name to the record type that declared it,
	// used by Projection to find which type a `.field` access selects
	// from without the caller naming the record type up front.
	fieldOwner map[string]map[symbol.Symbol]symbol.Symbol
}

// NewTable creates an empty Module table sharing syms for name
// resolution.
func NewTable(syms *symbol.Table) *Table {
	return &Table{
		symbols:      syms,
		variables:    make(map[string]map[symbol.Symbol]VariableInfo),
		typesByName:  make(map[string]map[symbol.Symbol]TypeInfo),
		constructors: make(map[string]map[symbol.Symbol]ConstructorInfo),
		fields:       make(map[string]map[symbol.Symbol]FieldInfo),
		effects:      make(map[string]map[symbol.Symbol]EffectInfo),
		operations:   make(map[string]map[symbol.Symbol]OperationInfo),
		fieldOwner:   make(map[string]map[symbol.Symbol]symbol.Symbol),
	}
}

func get[V any](t *Table, m map[string]map[symbol.Symbol]V, ns []symbol.Symbol, name symbol.Symbol) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	key := namespaceKey(ns, t.symbols)
	scope, ok := m[key]
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := scope[name]
	return v, ok
}

func set[V any](t *Table, m map[string]map[symbol.Symbol]V, ns []symbol.Symbol, name symbol.Symbol, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := namespaceKey(ns, t.symbols)
	scope, ok := m[key]
	if !ok {
		scope = make(map[symbol.Symbol]V)
		m[key] = scope
	}
	scope[name] = v
}

func (t *Table) Variable(ns []symbol.Symbol, name symbol.Symbol) (VariableInfo, bool) {
	return get(t, t.variables, ns, name)
}
func (t *Table) SetVariable(ns []symbol.Symbol, name symbol.Symbol, v VariableInfo) {
	set(t, t.variables, ns, name, v)
}

func (t *Table) Type(ns []symbol.Symbol, name symbol.Symbol) (TypeInfo, bool) {
	return get(t, t.typesByName, ns, name)
}
func (t *Table) SetType(ns []symbol.Symbol, name symbol.Symbol, v TypeInfo) {
	set(t, t.typesByName, ns, name, v)
}

func (t *Table) Constructor(ns []symbol.Symbol, name symbol.Symbol) (ConstructorInfo, bool) {
	return get(t, t.constructors, ns, name)
}
func (t *Table) SetConstructor(ns []symbol.Symbol, name symbol.Symbol, v ConstructorInfo) {
	set(t, t.constructors, ns, name, v)
}

func (t *Table) Field(ns []symbol.Symbol, name symbol.Symbol) (FieldInfo, bool) {
	return get(t, t.fields, ns, name)
}
func (t *Table) SetField(ns []symbol.Symbol, name symbol.Symbol, v FieldInfo) {
	set(t, t.fields, ns, name, v)
}

func (t *Table) Effect(ns []symbol.Symbol, name symbol.Symbol) (EffectInfo, bool) {
	return get(t, t.effects, ns, name)
}
func (t *Table) SetEffect(ns []symbol.Symbol, name symbol.Symbol, v EffectInfo) {
	set(t, t.effects, ns, name, v)
}

func (t *Table) Operation(ns []symbol.Symbol, name symbol.Symbol) (OperationInfo, bool) {
	return get(t, t.operations, ns, name)
}
func (t *Table) SetOperation(ns []symbol.Symbol, name symbol.Symbol, v OperationInfo) {
	set(t, t.operations, ns, name, v)
}

// FieldOwner reports which record type in ns declared field, if any.
func (t *Table) FieldOwner(ns []symbol.Symbol, field symbol.Symbol) (symbol.Symbol, bool) {
	return get(t, t.fieldOwner, ns, field)
}
func (t *Table) SetFieldOwner(ns []symbol.Symbol, field, owner symbol.Symbol) {
	set(t, t.fieldOwner, ns, field, owner)
}
