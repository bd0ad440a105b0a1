// Package source decodes PHP files into analyzable text.
package source

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// File is a decoded source file.
type File struct {
	Path  string
	Text  string   // UTF-8, BOM stripped, line terminators normalized to \n.
	lines []string // Lazily split from Text.
}

// LookupEncoding resolves an encoding label such as "utf-8",
// "iso-8859-1" or "windows-1252".
func LookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// Decode converts raw bytes in the given encoding to a File. A leading
// UTF-8 BOM is always honoured.
func Decode(path string, raw []byte, label string) (*File, error) {
	enc, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}

	dec := unicode.BOMOverride(enc.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", path, label, err)
	}

	return &File{Path: path, Text: normalizeNewlines(out)}, nil
}

// FromString wraps already-decoded text.
func FromString(path, text string) *File {
	return &File{Path: path, Text: normalizeNewlines([]byte(text))}
}

// normalizeNewlines rewrites \r\n and lone \r to \n so that line numbers
// agree with what editors show.
func normalizeNewlines(b []byte) string {
	if bytes.IndexByte(b, '\r') < 0 {
		return string(b)
	}
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	return string(b)
}

// Line returns the text of the 1-indexed line n without its terminator,
// or "" when n is out of range.
func (f *File) Line(n int) string {
	if f.lines == nil {
		f.lines = strings.Split(f.Text, "\n")
	}
	if n < 1 || n > len(f.lines) {
		return ""
	}
	return f.lines[n-1]
}
