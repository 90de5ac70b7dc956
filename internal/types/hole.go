package types

import (
	"sync"

	"github.com/google/uuid"
)

// Hole is a mutable unification variable cell. It is either Empty,
// recording the binder depth (Level) it was created under and the
// Kind it must solve to, or Filled with a concrete Type once
// unification has pinned it down. Two Holes are the same unification
// variable iff they are the same *Hole (compared by pointer; the uuid
// each carries is used in messages), never by the structure of what
// they currently point to (spec.md §4.2).
type Hole struct {
	mu    sync.Mutex
	id    uuid.UUID
	state holeState
}

type holeState interface{ isHoleState() }

// Empty is an unsolved Hole: Level records how many enclosing Forall
// binders were in scope when it was minted, used by the occurs check
// to reject a solution that would let a later-bound skolem escape.
type Empty struct {
	Level int
	Kind  Kind
}

func (Empty) isHoleState() {}

// Filled is a solved Hole.
type Filled struct {
	Type Type
}

func (Filled) isHoleState() {}

// NewHole mints a fresh, empty unification variable at the given level.
func NewHole(level int, kind Kind) *Hole {
	return &Hole{id: uuid.New(), state: Empty{Level: level, Kind: kind}}
}

// ID is the Hole's stable identity, independent of its current state.
func (h *Hole) ID() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

// Get returns the current state. Callers that find Filled must follow
// the chain themselves (Find does this with path compression).
func (h *Hole) Get() holeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Fill sets h's state to Filled{t}, replacing whatever it held; Find
// relies on this to compress a chain through an already-Filled hole.
func (h *Hole) Fill(t Type) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = Filled{Type: t}
}

// LowerLevel widens an Empty hole's recorded level down to at most
// `to`, used when unifying it against a type mentioning a hole or
// skolem from an outer scope (spec.md §4.2, level-based scope check).
func (h *Hole) LowerLevel(to int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.state.(Empty); ok && to < e.Level {
		h.state = Empty{Level: to, Kind: e.Kind}
	}
}

// RowHole is the effect-row analogue of Hole: a mutable cell that is
// either Empty (open, at a recorded level) or Filled with a concrete
// Row, kept distinct from Hole because its Filled payload is a label
// multiset rather than a Type (spec.md §3.2, §4.2).
type RowHole struct {
	mu    sync.Mutex
	id    uuid.UUID
	empty bool
	level int
	row   Row
}

// NewRowHole mints a fresh, open row variable at the given level.
func NewRowHole(level int) *RowHole {
	return &RowHole{id: uuid.New(), empty: true, level: level}
}

func (h *RowHole) ID() uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

// Resolve returns the Row this hole currently stands for, recursively
// flattening a chain of row holes so every reader sees the fully
// merged label set.
func (h *RowHole) Resolve() Row {
	h.mu.Lock()
	empty, row := h.empty, h.row
	h.mu.Unlock()
	if empty {
		return Row{Tail: h}
	}
	if row.Tail == nil {
		return row
	}
	tail := row.Tail.Resolve()
	return Row{Labels: append(append([]string{}, row.Labels...), tail.Labels...), Tail: tail.Tail}
}

func (h *RowHole) Fill(r Row) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.empty = false
	h.row = r
}

func (h *RowHole) LowerLevel(to int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.empty && to < h.level {
		h.level = to
	}
}

// Find walks a chain of Filled holes pointing at further Hole
// references, compressing the chain as it goes (spec.md §4.2:
// "disjoint-set-forest-like" hole resolution). It returns either the
// final Empty hole or the concrete, non-hole Type that chain resolves
// to.
func Find(t Type) Type {
	h, ok := t.(THole)
	if !ok {
		return t
	}
	switch s := h.Hole.Get().(type) {
	case Empty:
		return h
	case Filled:
		resolved := Find(s.Type)
		if resolved != s.Type {
			h.Hole.Fill(resolved)
		}
		return resolved
	default:
		return h
	}
}
