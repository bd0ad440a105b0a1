package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/donaldgifford/phpspace/internal/report"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// emptyConfig returns the path of a config file that keeps every default.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "phpspace.yml", "")
}

func run(t *testing.T, opts *Options) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.Stdout = &out
	opts.Stderr = &errOut
	if opts.ConfigPath == "" {
		opts.ConfigPath = emptyConfig(t)
	}
	if opts.Color == "" {
		opts.Color = "off"
	}
	code = Run(context.Background(), opts)
	return code, out.String(), errOut.String()
}

func decodeJSON(t *testing.T, s string) report.Document {
	t.Helper()
	var doc report.Document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		t.Fatalf("invalid JSON report: %v\n%s", err, s)
	}
	return doc
}

func TestRunIssuesFound(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.php", "<?php\nfoo( $a);\n")

	code, stdout, _ := run(t, &Options{Paths: []string{path}})

	if code != ExitIssues {
		t.Errorf("exit code: got %d, want %d", code, ExitIssues)
	}
	want := path + ":2:4: Remove all space after the opening parenthesis. (no_space_inside_parens)\n" +
		"foo( $a);\n" +
		"   ^\n" +
		"1 issue in 1 file\n"
	if stdout != want {
		t.Errorf("stdout:\n got: %q\nwant: %q", stdout, want)
	}
}

func TestRunClean(t *testing.T) {
	path := writeFile(t, t.TempDir(), "clean.php", "<?php\nfunction foo($a, $b) {\n    return bar($a);\n}\n")

	code, stdout, stderr := run(t, &Options{Paths: []string{path}})

	if code != ExitOK {
		t.Errorf("exit code: got %d, want %d (stderr %q)", code, ExitOK, stderr)
	}
	if stdout != "0 issues in 1 file\n" {
		t.Errorf("stdout: got %q", stdout)
	}
}

func TestRunQuiet(t *testing.T) {
	path := writeFile(t, t.TempDir(), "clean.php", "<?php foo();\n")

	code, stdout, _ := run(t, &Options{Paths: []string{path}, Quiet: true})

	if code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}
	if stdout != "" {
		t.Errorf("quiet run printed %q", stdout)
	}
}

func TestRunStdin(t *testing.T) {
	code, stdout, _ := run(t, &Options{Stdin: strings.NewReader("<?php if (true){}\n")})

	if code != ExitIssues {
		t.Errorf("exit code: got %d, want %d", code, ExitIssues)
	}
	if !strings.HasPrefix(stdout, "<stdin>:1:15: Put one space between the closing parenthesis and the opening curly brace.") {
		t.Errorf("stdout: got %q", stdout)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.php", "<?php foo(;")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.php"), "nope.php: error:"},
		{"parse error", broken, "broken.php: error: parse error at 1:12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := run(t, &Options{Paths: []string{tt.path}})
			if code != ExitError {
				t.Errorf("exit code: got %d, want %d", code, ExitError)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout %q does not contain %q", stdout, tt.want)
			}
		})
	}
}

func TestRunErrorOutranksIssues(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.php", "<?php foo( $a);\n")

	code, _, _ := run(t, &Options{Paths: []string{bad, filepath.Join(dir, "missing.php")}})
	if code != ExitError {
		t.Errorf("exit code: got %d, want %d", code, ExitError)
	}
}

func TestRunConfigErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.php", "<?php\n")

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"bad format flag", Options{Format: "xml"}, "output.format"},
		{"bad color flag", Options{Color: "rainbow"}, "output.color"},
		{"missing config", Options{ConfigPath: "/nonexistent/phpspace.yml"}, "config file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Paths = []string{path}
			code, stdout, stderr := run(t, &opts)
			if code != ExitError {
				t.Errorf("exit code: got %d, want %d", code, ExitError)
			}
			if stdout != "" {
				t.Errorf("unexpected report: %q", stdout)
			}
			if !strings.HasPrefix(stderr, "phpspace: ") || !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr %q does not mention %q", stderr, tt.want)
			}
		})
	}
}

func TestRunConfigDisablesRule(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.php", "<?php foo( $a);\n")
	cfg := writeFile(t, dir, "phpspace.yml", "rules:\n  no_space_inside_parens: false\n")

	code, _, _ := run(t, &Options{Paths: []string{path}, ConfigPath: cfg})
	if code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}
}

func TestRunDirectoryWithExclude(t *testing.T) {
	dir := t.TempDir()
	bad := "<?php foo( $a);\n"
	writeFile(t, dir, "a.php", bad)
	writeFile(t, dir, "notes.txt", bad)
	writeFile(t, dir, "vendor/lib.php", bad)
	writeFile(t, dir, "sub/d.PHP", bad)
	writeFile(t, dir, "sub/gen.php", bad)
	cfg := writeFile(t, t.TempDir(), "phpspace.toml", "exclude = [\"vendor/**\", \"gen.php\"]\n\n[output]\nformat = \"json\"\n")

	code, stdout, _ := run(t, &Options{Paths: []string{dir}, ConfigPath: cfg})
	if code != ExitIssues {
		t.Errorf("exit code: got %d, want %d", code, ExitIssues)
	}

	doc := decodeJSON(t, stdout)
	var got []string
	for _, f := range doc.Files {
		rel, err := filepath.Rel(dir, f.Path)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"a.php", "sub/d.PHP"}
	if !slices.Equal(got, want) {
		t.Errorf("files: got %v, want %v", got, want)
	}
}

func TestRunParallelKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 24; i++ {
		src := "<?php foo($a);\n"
		if i%3 == 0 {
			src = "<?php foo($a,$b);\n"
		}
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%02d.php", i), src))
	}
	// Reverse so that input order differs from lexical order.
	slices.Reverse(paths)

	code, stdout, _ := run(t, &Options{Paths: paths, Format: "json", Jobs: 4})
	if code != ExitIssues {
		t.Errorf("exit code: got %d, want %d", code, ExitIssues)
	}

	doc := decodeJSON(t, stdout)
	if len(doc.Files) != len(paths) {
		t.Fatalf("got %d files, want %d", len(doc.Files), len(paths))
	}
	for i, f := range doc.Files {
		if f.Path != paths[i] {
			t.Fatalf("file %d: got %s, want %s", i, f.Path, paths[i])
		}
	}
	if doc.Summary.Issues != 8 {
		t.Errorf("issues: got %d, want 8", doc.Summary.Issues)
	}
}

func TestRunSuppression(t *testing.T) {
	src := "<?php\n" +
		"foo( $a); // NOSONAR\n" +
		"bar( $b); # phpspace:ignore\n" +
		"baz( $c);\n" +
		"/* NOSONAR */ qux( $d);\n"
	path := writeFile(t, t.TempDir(), "s.php", src)

	code, stdout, _ := run(t, &Options{Paths: []string{path}, Format: "json"})
	if code != ExitIssues {
		t.Errorf("exit code: got %d, want %d", code, ExitIssues)
	}

	doc := decodeJSON(t, stdout)
	issues := doc.Files[0].Issues
	if len(issues) != 1 || issues[0].Line != 4 {
		t.Errorf("issues: got %+v, want one on line 4", issues)
	}
}

func TestRunVerbose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "v.php", "<?php foo( $a);\n")

	_, _, stderr := run(t, &Options{Paths: []string{path}, Verbose: true, Jobs: 2})

	if !strings.Contains(stderr, "phpspace: "+path+": 1 issue(s)") {
		t.Errorf("verbose output missing file line: %q", stderr)
	}
	if !strings.Contains(stderr, "checked 1 file(s) with 2 job(s)") {
		t.Errorf("verbose output missing totals: %q", stderr)
	}
}

func TestRunCanceled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.php", "<?php\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := Run(ctx, &Options{
		Paths:      []string{path},
		ConfigPath: emptyConfig(t),
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	if code != ExitError {
		t.Errorf("exit code: got %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "context canceled") {
		t.Errorf("stderr: got %q", stderr.String())
	}
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"vendor", []string{"vendor/**"}, true},
		{"vendor/a/b.php", []string{"vendor/**"}, true},
		{"vendors/b.php", []string{"vendor/**"}, false},
		{"src/gen.php", []string{"gen.php"}, true},
		{"src/a_test.php", []string{"*_test.php"}, true},
		{"src/a.php", []string{"src/*.php"}, true},
		{"src/deep/a.php", []string{"src/*.php"}, false},
		{"a.php", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := excluded(tt.rel, tt.patterns); got != tt.want {
				t.Errorf("excluded(%q, %v) = %v, want %v", tt.rel, tt.patterns, got, tt.want)
			}
		})
	}
}
