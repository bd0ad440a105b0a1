package lint

import (
	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/token"
)

const (
	msgCommaBefore = "Remove any space before comma separated arguments."
	msgCommaAfter  = "Put exactly one space after comma separated arguments."
	msgCommaBoth   = "Remove any space before comma separated arguments and put exactly one space after comma separated arguments."
)

// checkCommaSpacing wants no space before and one space after every
// comma of a parameter or argument list. Commas whose neighbours are on
// other lines are skipped. At most one issue is reported per list: the
// first comma wrong on both sides wins outright and ends the scan,
// otherwise the first one-sided problem found is reported.
func checkCommaSpacing(t *parser.Tree, list parser.NodeID) (*Issue, error) {
	msg := ""

	for _, comma := range t.ChildrenToken(list, token.Comma) {
		next := t.NextSibling(comma)
		if t.Kind(list) == parser.KindCallArgumentList && t.IsToken(next, token.RParen) {
			// Trailing comma: nothing follows it.
			continue
		}

		prevTok, err := lastToken(t, t.PrevSibling(comma), "element before comma")
		if err != nil {
			return nil, err
		}
		nextTok, err := firstToken(t, next, "element after comma")
		if err != nil {
			return nil, err
		}
		commaTok, _ := t.Token(comma)

		same, err := SameLine(prevTok, commaTok, nextTok)
		if err != nil {
			return nil, err
		}
		if !same {
			continue
		}

		beforeOK := Gap(prevTok, commaTok) == 0
		afterOK := Gap(commaTok, nextTok) == 1

		if !beforeOK && !afterOK {
			msg = msgCommaBoth
			break
		}
		if msg != "" {
			continue
		}
		switch {
		case !beforeOK:
			msg = msgCommaBefore
		case !afterOK:
			msg = msgCommaAfter
		}
	}

	if msg == "" {
		return nil, nil
	}
	return newIssue(t, RuleSpaceAfterComma, list, msg), nil
}
