package report

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Document is the machine-readable form of a run.
type Document struct {
	Files   []FileDoc `json:"files" msgpack:"files"`
	Summary Summary   `json:"summary" msgpack:"summary"`
}

// FileDoc is one file's results.
type FileDoc struct {
	Path   string     `json:"path" msgpack:"path"`
	Issues []IssueDoc `json:"issues" msgpack:"issues"`
	Faults []IssueDoc `json:"faults,omitempty" msgpack:"faults,omitempty"`
	Error  string     `json:"error,omitempty" msgpack:"error,omitempty"`
}

// IssueDoc is one issue or fault. Positions are 1-indexed.
type IssueDoc struct {
	Rule    string `json:"rule" msgpack:"rule"`
	Message string `json:"message" msgpack:"message"`
	Line    uint32 `json:"line" msgpack:"line"`
	Column  uint32 `json:"column" msgpack:"column"`
}

func newIssueDoc(rule fmt.Stringer, msg string, line, col int) (IssueDoc, error) {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		return IssueDoc{}, fmt.Errorf("line %d: %w", line, err)
	}
	c, err := safecast.Conv[uint32](col)
	if err != nil {
		return IssueDoc{}, fmt.Errorf("column %d: %w", col, err)
	}
	return IssueDoc{Rule: rule.String(), Message: msg, Line: l, Column: c}, nil
}

// NewDocument converts results to their serialisable form.
func NewDocument(results []FileResult) (*Document, error) {
	doc := &Document{
		Files:   make([]FileDoc, 0, len(results)),
		Summary: Summarize(results),
	}
	for _, r := range results {
		fd := FileDoc{Path: r.Path, Issues: []IssueDoc{}}
		if r.Err != nil {
			fd.Error = r.Err.Error()
		}
		for _, i := range r.Issues {
			d, err := newIssueDoc(i.Rule, i.Message, i.Line, i.Column)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.Path, err)
			}
			fd.Issues = append(fd.Issues, d)
		}
		for _, f := range r.Faults {
			d, err := newIssueDoc(f.Rule, f.Err.Error(), f.Line, f.Column)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.Path, err)
			}
			fd.Faults = append(fd.Faults, d)
		}
		doc.Files = append(doc.Files, fd)
	}
	return doc, nil
}

func writeJSON(w io.Writer, results []FileResult) error {
	doc, err := NewDocument(results)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeMsgpack(w io.Writer, results []FileResult) error {
	doc, err := NewDocument(results)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(doc)
}
