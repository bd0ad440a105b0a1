// Package testutil provides golden file helpers for report tests.
package testutil

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Update regenerates expected.txt files from current output.
// Usage: go test ./internal/runner -update
var Update = flag.Bool("update", false, "update golden files")

// CheckFunc renders the report for one PHP source.
type CheckFunc func(input string) string

// RunGolden checks one case directory holding input.php and expected.txt.
func RunGolden(t *testing.T, dir string, checkFn CheckFunc) {
	t.Helper()

	input, err := os.ReadFile(filepath.Join(dir, "input.php"))
	if err != nil {
		t.Fatalf("reading input: %v", err)
	}
	got := checkFn(string(input))

	expectedPath := filepath.Join(dir, "expected.txt")
	if *Update {
		if err := os.WriteFile(expectedPath, []byte(got), 0o644); err != nil {
			t.Fatalf("updating %s: %v", expectedPath, err)
		}
		t.Logf("updated %s", expectedPath)
		return
	}

	want, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("reading expected report: %v", err)
	}
	if diff := DiffLines(string(want), got); len(diff) > 0 {
		t.Errorf("%s: report differs from expected.txt (rerun with -update to accept):\n%s",
			dir, strings.Join(diff, "\n"))
	}
}

// RunGoldenDir runs RunGolden as a subtest for every case directory
// under testdataDir.
func RunGoldenDir(t *testing.T, testdataDir string, checkFn CheckFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("reading %s: %v", testdataDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, filepath.Join(testdataDir, entry.Name()), checkFn)
		})
	}
}

// DiffLines compares two reports line by line. Each differing line
// yields one entry: "-N: want" for an expected line and "+N: got" for
// the line produced in its place. N is 1-based.
func DiffLines(want, got string) []string {
	if want == got {
		return nil
	}
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")

	var out []string
	for i := 0; i < max(len(wl), len(gl)); i++ {
		var w, g string
		hasW, hasG := i < len(wl), i < len(gl)
		if hasW {
			w = wl[i]
		}
		if hasG {
			g = gl[i]
		}
		if hasW && hasG && w == g {
			continue
		}
		if hasW {
			out = append(out, fmt.Sprintf("-%d: %s", i+1, w))
		}
		if hasG {
			out = append(out, fmt.Sprintf("+%d: %s", i+1, g))
		}
	}
	return out
}
