package source

import (
	"sync"

	"github.com/google/uuid"
)

// Registry mints FileIDs for files the parser collaborator has loaded.
// Like symbol.Table it is thread-safe and append-only: files are never
// unregistered mid-run, matching the "no incremental recomputation"
// non-goal — a Registry exists for exactly one batch elaboration.
type Registry struct {
	mu    sync.Mutex
	files []FileID
}

// NewRegistry creates an empty file registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register mints a fresh FileID for name. Calling it twice for the same
// name yields two distinct FileIDs on purpose — the registry does not
// deduplicate by name, since two units legitimately named "main.vp" can
// be elaborated side by side (§5).
func (r *Registry) Register(name string) FileID {
	id := FileID{name: name, tag: uuid.New()}
	r.mu.Lock()
	r.files = append(r.files, id)
	r.mu.Unlock()
	return id
}
