package lint

import (
	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/token"
)

// checkInsideParens wants no space just inside a pair of parentheses.
// It is evaluated on the ")" leaf and reports on the matching "(".
func checkInsideParens(t *parser.Tree, rparen parser.NodeID) (*Issue, error) {
	parent := t.Parent(rparen)
	if parent == parser.NoNode {
		return nil, structuralf("\")\" without a parent")
	}
	lparen := t.FirstChildToken(parent, token.LParen)
	if lparen == parser.NoNode {
		return nil, structuralf("\")\" without \"(\" in %s", t.Kind(parent))
	}
	open, _ := t.Token(lparen)
	closing, _ := t.Token(rparen)

	firstInner, err := firstToken(t, t.NextNode(lparen), "token after \"(\"")
	if err != nil {
		return nil, err
	}
	lastInner, err := lastToken(t, t.PrevNode(rparen), "token before \")\"")
	if err != nil {
		return nil, err
	}

	leftOK, err := tight(open, firstInner)
	if err != nil {
		return nil, err
	}
	rightOK, err := tight(lastInner, closing)
	if err != nil {
		return nil, err
	}

	var msg string
	switch {
	case leftOK && rightOK:
		return nil, nil
	case !leftOK && !rightOK:
		msg = "Remove all space after the opening parenthesis and before the closing parenthesis."
	case !leftOK:
		msg = "Remove all space after the opening parenthesis."
	default:
		msg = "Remove all space before the closing parenthesis."
	}
	return newIssue(t, RuleNoSpaceInsideParens, lparen, msg), nil
}

// tight reports whether a and b touch or sit on different lines.
func tight(a, b token.Token) (bool, error) {
	same, err := SameLine(a, b)
	if err != nil {
		return false, err
	}
	return !same || Gap(a, b) == 0, nil
}
