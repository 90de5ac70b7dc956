// Package fixture is a small txtar-based golden test harness: each
// fixture file holds an "out" section with the expected rendering of a
// pipeline run, compared against what elaborating a caller-supplied,
// hand-built program actually produces (spec.md has no parser in
// scope, so fixtures drive the pipeline from hand-built trees rather
// than from source text, unlike the txtar golden tests cuelang-cue
// runs over its own parser's output).
package fixture

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

var Update = flag.Bool("update", false, "update fixture golden output")

// Case is one parsed fixture: Name is the archive's base filename and
// Want is the trimmed contents of its "out" file.
type Case struct {
	Name string
	path string
	Want string
}

// Load reads every *.txtar file in dir into a Case.
func Load(t *testing.T, dir string) []Case {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("fixture: reading %s: %v", dir, err)
	}
	var cases []Case
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txtar") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		ar, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatalf("fixture: parsing %s: %v", path, err)
		}
		want := ""
		for _, f := range ar.Files {
			if f.Name == "out" {
				want = strings.TrimRight(string(f.Data), "\n")
			}
		}
		cases = append(cases, Case{Name: strings.TrimSuffix(e.Name(), ".txtar"), path: path, Want: want})
	}
	return cases
}

// Check compares got against the Case's golden "out" section, or
// rewrites the fixture file's "out" section when -update is passed.
func (c Case) Check(t *testing.T, got string) {
	t.Helper()
	got = strings.TrimRight(got, "\n")
	if got == c.Want {
		return
	}
	if !*Update {
		t.Errorf("%s: got:\n%s\nwant:\n%s", c.Name, got, c.Want)
		return
	}
	ar, err := txtar.ParseFile(c.path)
	if err != nil {
		t.Fatalf("fixture: re-reading %s: %v", c.path, err)
	}
	for i, f := range ar.Files {
		if f.Name == "out" {
			ar.Files[i].Data = []byte(got + "\n")
		}
	}
	if err := os.WriteFile(c.path, txtar.Format(ar), 0o644); err != nil {
		t.Fatalf("fixture: writing %s: %v", c.path, err)
	}
}
