package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type palette struct {
	path, message, rule, caret, errLabel *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:     color.New(color.Bold),
		message:  color.New(color.FgYellow),
		rule:     color.New(color.Faint),
		caret:    color.New(color.FgGreen, color.Bold),
		errLabel: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.message, p.rule, p.caret, p.errLabel} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writeText prints one block per issue:
//
//	path:line:col: message (rule)
//	<source line>
//	     ^
func writeText(w io.Writer, results []FileResult, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "%s: %s %v\n", p.path.Sprint(r.Path), p.errLabel.Sprint("error:"), r.Err)
			continue
		}
		for _, f := range r.Faults {
			fmt.Fprintf(&b, "%s: %s %v (%s)\n",
				p.path.Sprintf("%s:%d:%d", r.Path, f.Line, f.Column),
				p.errLabel.Sprint("internal error:"), f.Err, p.rule.Sprint(f.Rule))
		}
		for _, i := range r.Issues {
			fmt.Fprintf(&b, "%s: %s (%s)\n",
				p.path.Sprintf("%s:%d:%d", r.Path, i.Line, i.Column),
				p.message.Sprint(i.Message), p.rule.Sprint(i.Rule))
			if r.Source == nil {
				continue
			}
			line := r.Source.Line(i.Line)
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
			b.WriteString(caretPadding(line, i.Column))
			b.WriteString(p.caret.Sprint("^"))
			b.WriteByte('\n')
		}
	}

	if opts.Summary {
		b.WriteString(summaryLine(Summarize(results)))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// caretPadding returns the whitespace that puts a caret under the given
// 1-indexed rune column. Tabs are kept so the caret lines up however the
// terminal expands them; wide runes take two cells.
func caretPadding(line string, column int) string {
	var b strings.Builder
	n := 0
	for _, r := range line {
		n++
		if n >= column {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func summaryLine(s Summary) string {
	line := fmt.Sprintf("%d %s in %d %s", s.Issues, plural(s.Issues, "issue"), s.Files, plural(s.Files, "file"))
	if s.Faults > 0 {
		line += fmt.Sprintf(", %d internal %s", s.Faults, plural(s.Faults, "error"))
	}
	if s.Errors > 0 {
		line += fmt.Sprintf(", %d %s could not be analysed", s.Errors, plural(s.Errors, "file"))
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
