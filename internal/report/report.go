// Package report renders lint results as text, JSON or msgpack.
package report

import (
	"fmt"
	"io"

	"github.com/donaldgifford/phpspace/internal/config"
	"github.com/donaldgifford/phpspace/internal/lint"
	"github.com/donaldgifford/phpspace/internal/source"
)

// FileResult is the outcome of analysing one file.
type FileResult struct {
	Path   string
	Source *source.File // Nil when the file could not be read.
	Issues []lint.Issue
	Faults []lint.Fault
	Err    error // Read, decode or parse failure.
}

// Options controls rendering.
type Options struct {
	Format  string // config.FormatText, FormatJSON or FormatMsgpack.
	Color   bool   // Text only.
	Summary bool   // Text only: end with a count line.
}

// Summary counts results across a run.
type Summary struct {
	Files  int `json:"files" msgpack:"files"`
	Issues int `json:"issues" msgpack:"issues"`
	Faults int `json:"faults" msgpack:"faults"`
	Errors int `json:"errors" msgpack:"errors"`
}

// Summarize counts the results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		s.Issues += len(r.Issues)
		s.Faults += len(r.Faults)
		if r.Err != nil {
			s.Errors++
		}
	}
	return s
}

// Write renders results in input order.
func Write(w io.Writer, results []FileResult, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return writeText(w, results, opts)
	case config.FormatJSON:
		return writeJSON(w, results)
	case config.FormatMsgpack:
		return writeMsgpack(w, results)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}
