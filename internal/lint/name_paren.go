package lint

import (
	"fmt"

	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/token"
)

// checkNameParen wants the "(" of a declaration or call to touch the
// name before it.
func checkNameParen(t *parser.Tree, id parser.NodeID) (*Issue, error) {
	lparen, ok := t.Token(t.FirstChildToken(id, token.LParen))
	if !ok {
		return nil, structuralf("%s without \"(\"", t.Kind(id))
	}

	var name token.Token
	if t.Kind(id) == parser.KindCallArgumentList {
		var err error
		if name, err = lastToken(t, t.PrevNode(id), "callee before argument list"); err != nil {
			return nil, err
		}
	} else {
		if name, ok = t.Token(t.FirstChildToken(id, token.Identifier)); !ok {
			return nil, structuralf("%s without a name", t.Kind(id))
		}
	}

	if Gap(name, lparen) == 0 {
		return nil, nil
	}
	msg := fmt.Sprintf("Remove all space between the method name %q and the opening parenthesis.", name.Text)
	return newIssue(t, RuleNoSpaceAfterName, id, msg), nil
}
