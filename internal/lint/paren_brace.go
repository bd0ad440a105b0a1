package lint

import (
	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/token"
)

// checkSpaceBeforeBrace wants exactly one space between a ")" leaf and
// a "{" that follows it on the same line.
func checkSpaceBeforeBrace(t *parser.Tree, rparen parser.NodeID) (*Issue, error) {
	next := t.NextNode(rparen)
	if next == parser.NoNode || !t.HasTokens(next) {
		return nil, nil
	}

	closing, _ := t.Token(rparen)
	brace := t.FirstToken(next)
	if brace.Kind != token.LBrace {
		return nil, nil
	}

	gap := Gap(closing, brace)
	if gap == 1 {
		return nil, nil
	}
	same, err := SameLine(closing, brace)
	if err != nil || !same {
		return nil, err
	}

	msg := "Put one space between the closing parenthesis and the opening curly brace."
	if gap > 1 {
		msg = "Put only one space between the closing parenthesis and the opening curly brace."
	}
	return newIssue(t, RuleSpaceBeforeBrace, rparen, msg), nil
}
