package report

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/vulpi-lang/vulpi/internal/source"
)

// Diagnostic pairs an ErrorKind with the location it was raised at.
type Diagnostic struct {
	Kind     ErrorKind
	Location source.Span
}

// Reporter is the sink every component reports diagnostics through
// (component A). Per §5, implementations must serialize writes if
// called from multiple goroutines, and must preserve source order of
// reports within one compilation unit.
type Reporter interface {
	Report(d Diagnostic)
}

// Collecting is the default Reporter: an in-memory, order-preserving
// sink. It is safe for concurrent use; when several files are
// elaborated in parallel (§5) each gets its own Env but every goroutine
// may share one Collecting reporter, since its only job is to buffer
// diagnostics for the caller to inspect afterwards.
type Collecting struct {
	mu   sync.Mutex
	seq  int
	logs []sequenced
}

type sequenced struct {
	seq int
	d   Diagnostic
}

// NewCollecting creates an empty Collecting reporter.
func NewCollecting() *Collecting {
	return &Collecting{}
}

func (c *Collecting) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = append(c.logs, sequenced{seq: c.seq, d: d})
	c.seq++
}

// Diagnostics returns every reported diagnostic sorted by file name,
// then start offset, with ties kept in the order Report was called, so
// that diagnostics from concurrently-elaborated files still come out in
// a deterministic, source-ordered stream.
func (c *Collecting) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sequenced, len(c.logs))
	copy(out, c.logs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].d.Location, out[j].d.Location
		if a.File.Name() != b.File.Name() {
			return a.File.Name() < b.File.Name()
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return out[i].seq < out[j].seq
	})
	result := make([]Diagnostic, len(out))
	for i, s := range out {
		result[i] = s.d
	}
	return result
}

// Empty reports whether no diagnostics have been collected — the
// front-end's definition of "the unit succeeded" (§7).
func (c *Collecting) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.logs) == 0
}

// Terminal wraps a Collecting reporter and additionally streams each
// diagnostic to w as it arrives, coloring the message when w is a TTY.
// This mirrors the teacher's use of github.com/mattn/go-isatty in
// internal/evaluator/builtins_term.go to decide whether to emit ANSI
// escapes.
type Terminal struct {
	*Collecting
	w      io.Writer
	color  bool
	mu     sync.Mutex
}

// NewTerminal builds a Terminal reporter. fd is the file descriptor
// backing w (e.g. os.Stdout.Fd()), used only for the isatty check.
func NewTerminal(w io.Writer, fd uintptr) *Terminal {
	return &Terminal{
		Collecting: NewCollecting(),
		w:          w,
		color:      isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (t *Terminal) Report(d Diagnostic) {
	t.Collecting.Report(d)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.color {
		fmt.Fprintf(t.w, "\x1b[31merror[%s]\x1b[0m %s: %s\n", d.Kind.Code(), d.Location, d.Kind.Error())
	} else {
		fmt.Fprintf(t.w, "error[%s] %s: %s\n", d.Kind.Code(), d.Location, d.Kind.Error())
	}
}
