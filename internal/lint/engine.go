package lint

import (
	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/token"
)

// Engine dispatches nodes to the enabled rules. It holds no state
// besides the enabled set and may be shared across goroutines.
type Engine struct {
	enabled [numRules]bool
}

// New returns an engine running the given rules. Unknown IDs are ignored.
func New(rules ...RuleID) *Engine {
	e := &Engine{}
	for _, r := range rules {
		if r >= 0 && r < numRules {
			e.enabled[r] = true
		}
	}
	return e
}

// Enabled reports whether rule r runs.
func (e *Engine) Enabled(r RuleID) bool {
	return r >= 0 && r < numRules && e.enabled[r]
}

// Run visits every node of the tree in document order.
func (e *Engine) Run(t *parser.Tree, sink Sink) {
	t.Walk(func(id parser.NodeID) {
		e.Visit(t, id, sink)
	})
}

// Visit evaluates the enabled rules that apply to one node, in
// dispatch order. A rule that finds the tree malformed reports a Fault
// and the node's remaining rules are skipped.
func (e *Engine) Visit(t *parser.Tree, id parser.NodeID, sink Sink) {
	for _, r := range AllRules {
		if !e.enabled[r] || !applies(r, t, id) {
			continue
		}
		issue, err := check(r, t, id)
		if err != nil {
			tok := t.FirstToken(id)
			sink.ReportFault(Fault{Rule: r, Anchor: id, Line: tok.Line, Column: tok.Column, Err: err})
			return
		}
		if issue != nil {
			sink.ReportIssue(*issue)
		}
	}
}

func applies(r RuleID, t *parser.Tree, id parser.NodeID) bool {
	switch r {
	case RuleSpaceBeforeBrace, RuleNoSpaceInsideParens:
		return t.IsToken(id, token.RParen)
	case RuleSpaceAfterComma:
		k := t.Kind(id)
		return k == parser.KindParameterList || k == parser.KindCallArgumentList
	case RuleNoSpaceAfterName:
		k := t.Kind(id)
		return k == parser.KindFunctionDeclaration || k == parser.KindMethodDeclaration || k == parser.KindCallArgumentList
	}
	return false
}

func check(r RuleID, t *parser.Tree, id parser.NodeID) (*Issue, error) {
	switch r {
	case RuleSpaceBeforeBrace:
		return checkSpaceBeforeBrace(t, id)
	case RuleSpaceAfterComma:
		return checkCommaSpacing(t, id)
	case RuleNoSpaceAfterName:
		return checkNameParen(t, id)
	case RuleNoSpaceInsideParens:
		return checkInsideParens(t, id)
	}
	return nil, nil
}
