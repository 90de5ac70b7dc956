// Package source tracks file identities and byte-range spans, the other
// half of component A (Symbol / Span / Reporter).
package source

import (
	"fmt"

	"github.com/google/uuid"
)

// FileID identifies a source file loaded by the (external) parser
// collaborator. It carries a uuid so that two FileIDs minted for
// distinct files are never confused even if their human-readable
// names collide (e.g. two different "lib.vp" in separate directories
// elaborated concurrently, per §5).
type FileID struct {
	name string
	tag  uuid.UUID
}

// Span is a byte range within a single file. Every AST node carries one.
type Span struct {
	File  FileID
	Start int
	End   int
}

// Join returns the smallest span covering both a and b. Both must share
// a file; Join panics otherwise, since joining spans across files is
// always a caller bug.
func (a Span) Join(b Span) Span {
	if a.File != b.File {
		panic(fmt.Sprintf("source: Join across files %q and %q", a.File.name, b.File.name))
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{File: a.File, Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d-%d", s.File.name, s.Start, s.End)
}

// Name returns the human-readable file name backing id.
func (id FileID) Name() string { return id.name }
