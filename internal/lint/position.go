package lint

import (
	"errors"

	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/token"
)

// ErrNoTokens is returned by SameLine when called with no tokens.
var ErrNoTokens = errors.New("same line check needs at least one token")

// Gap returns the number of columns between the end of a and the start
// of b. It is only meaningful when both are on the same line.
func Gap(a, b token.Token) int {
	return b.Column - a.EndColumn() - 1
}

// SameLine reports whether every token starts on the line of the first.
func SameLine(toks ...token.Token) (bool, error) {
	if len(toks) == 0 {
		return false, ErrNoTokens
	}
	line := toks[0].Line
	for _, tok := range toks[1:] {
		if tok.Line != line {
			return false, nil
		}
	}
	return true, nil
}

// firstToken is Tree.FirstToken for a node the caller expects to exist.
func firstToken(t *parser.Tree, id parser.NodeID, what string) (token.Token, error) {
	if !t.HasTokens(id) {
		return token.Token{}, structuralf("missing %s", what)
	}
	return t.FirstToken(id), nil
}

func lastToken(t *parser.Tree, id parser.NodeID, what string) (token.Token, error) {
	if !t.HasTokens(id) {
		return token.Token{}, structuralf("missing %s", what)
	}
	return t.LastToken(id), nil
}
