package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/donaldgifford/phpspace/internal/lint"
	"github.com/donaldgifford/phpspace/internal/source"
)

func sampleResults() []FileResult {
	return []FileResult{
		{
			Path:   "a.php",
			Source: source.FromString("a.php", "<?php foo( $a);\n"),
			Issues: []lint.Issue{{
				Rule:    lint.RuleNoSpaceInsideParens,
				Message: "Remove all space after the opening parenthesis.",
				Line:    1,
				Column:  10,
			}},
		},
		{
			Path: "b.php",
			Err:  errors.New("boom"),
		},
		{
			Path:   "c.php",
			Source: source.FromString("c.php", "<?php\nf($a,);\n"),
			Faults: []lint.Fault{{
				Rule:   lint.RuleSpaceAfterComma,
				Line:   2,
				Column: 2,
				Err:    fmt.Errorf("%w: missing element after comma", lint.ErrStructure),
			}},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResults(), Options{Format: "text", Summary: true}); err != nil {
		t.Fatal(err)
	}

	want := `a.php:1:10: Remove all space after the opening parenthesis. (no_space_inside_parens)
<?php foo( $a);
         ^
b.php: error: boom
c.php:2:2: internal error: structural inconsistency: missing element after comma (space_after_comma)
1 issue in 3 files, 1 internal error, 1 file could not be analysed
`
	if buf.String() != want {
		t.Errorf("text output mismatch:\n got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTextWithoutSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, Options{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWriteTextColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResults()[:1], Options{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{"first column", "foo()", 1, ""},
		{"ascii", "foo( $a)", 5, "    "},
		{"tab kept", "\tfoo( $a)", 6, "\t    "},
		{"wide runes", "$x = '日本'; f( )", 14, strings.Repeat(" ", 15)},
		{"past end", "ab", 10, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := caretPadding(tt.line, tt.column); got != tt.want {
				t.Errorf("caretPadding(%q, %d) = %q, want %q", tt.line, tt.column, got, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResults(), Options{Format: "json"}); err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	checkDocument(t, &doc)
}

func TestWriteMsgpack(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResults(), Options{Format: "msgpack"}); err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := msgpack.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	checkDocument(t, &doc)
}

func checkDocument(t *testing.T, doc *Document) {
	t.Helper()

	if doc.Summary != (Summary{Files: 3, Issues: 1, Faults: 1, Errors: 1}) {
		t.Errorf("summary: got %+v", doc.Summary)
	}
	if len(doc.Files) != 3 {
		t.Fatalf("got %d files, want 3", len(doc.Files))
	}

	a := doc.Files[0]
	if a.Path != "a.php" || len(a.Issues) != 1 {
		t.Fatalf("a.php: got %+v", a)
	}
	want := IssueDoc{Rule: "no_space_inside_parens", Message: "Remove all space after the opening parenthesis.", Line: 1, Column: 10}
	if a.Issues[0] != want {
		t.Errorf("a.php issue: got %+v, want %+v", a.Issues[0], want)
	}

	if b := doc.Files[1]; b.Error != "boom" || len(b.Issues) != 0 {
		t.Errorf("b.php: got %+v", b)
	}
	if c := doc.Files[2]; len(c.Faults) != 1 || c.Faults[0].Rule != "space_after_comma" || c.Faults[0].Line != 2 {
		t.Errorf("c.php: got %+v", c)
	}
}

func TestWriteRejectsNegativePositions(t *testing.T) {
	results := []FileResult{{
		Path:   "x.php",
		Issues: []lint.Issue{{Rule: lint.RuleSpaceAfterComma, Line: -1, Column: 1}},
	}}
	if err := Write(&bytes.Buffer{}, results, Options{Format: "json"}); err == nil {
		t.Error("expected an error for a negative line")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, Options{Format: "xml"}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
