package parser

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the tree, one node per line.
func (t *Tree) Dump(w io.Writer) error {
	if t.Root() == NoNode {
		return nil
	}
	return t.dump(w, t.Root(), 0)
}

func (t *Tree) dump(w io.Writer, id NodeID, depth int) error {
	indent := strings.Repeat("  ", depth)
	if tok, ok := t.Token(id); ok {
		_, err := fmt.Fprintf(w, "%s%s %q %d:%d\n", indent, tok.Kind, tok.Text, tok.Line, tok.Column)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, t.Kind(id)); err != nil {
		return err
	}
	for _, c := range t.Children(id) {
		if err := t.dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
