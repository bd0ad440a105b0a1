// Package lint checks whitespace placement around parentheses, braces
// and commas in a parsed PHP tree.
package lint

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/phpspace/internal/parser"
)

// RuleID identifies one spacing rule.
type RuleID int

const (
	// RuleSpaceBeforeBrace wants exactly one space in ") {".
	RuleSpaceBeforeBrace RuleID = iota
	// RuleSpaceAfterComma wants "a, b" in parameter and argument lists.
	RuleSpaceAfterComma
	// RuleNoSpaceAfterName wants "name(" in declarations and calls.
	RuleNoSpaceAfterName
	// RuleNoSpaceInsideParens wants "(a)" rather than "( a )".
	RuleNoSpaceInsideParens

	numRules
)

// AllRules lists every rule in dispatch order.
var AllRules = []RuleID{
	RuleSpaceBeforeBrace,
	RuleSpaceAfterComma,
	RuleNoSpaceAfterName,
	RuleNoSpaceInsideParens,
}

var ruleKeys = [numRules]string{
	RuleSpaceBeforeBrace:    "space_before_brace",
	RuleSpaceAfterComma:     "space_after_comma",
	RuleNoSpaceAfterName:    "no_space_after_name",
	RuleNoSpaceInsideParens: "no_space_inside_parens",
}

// String returns the rule's config key.
func (r RuleID) String() string {
	if r >= 0 && r < numRules {
		return ruleKeys[r]
	}
	return fmt.Sprintf("RuleID(%d)", int(r))
}

// ErrStructure marks a tree that does not have the shape a rule relies
// on, such as a ")" without a matching "(" in the same node. It points
// at a parser defect, never at the user's code.
var ErrStructure = errors.New("structural inconsistency")

func structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
}

// Issue is one spacing violation.
type Issue struct {
	Rule    RuleID
	Message string
	Anchor  parser.NodeID
	Line    int // Position of the anchor's first token.
	Column  int
}

// Fault records a rule that could not evaluate a node.
type Fault struct {
	Rule   RuleID
	Anchor parser.NodeID
	Line   int
	Column int
	Err    error
}

func (f Fault) Error() string {
	return fmt.Sprintf("%d:%d: %s: %v", f.Line, f.Column, f.Rule, f.Err)
}

func (f Fault) Unwrap() error {
	return f.Err
}

// Sink receives issues and faults in traversal order.
type Sink interface {
	ReportIssue(Issue)
	ReportFault(Fault)
}

// Collector is a Sink that keeps everything it receives.
type Collector struct {
	Issues []Issue
	Faults []Fault
}

// ReportIssue implements Sink.
func (c *Collector) ReportIssue(i Issue) {
	c.Issues = append(c.Issues, i)
}

// ReportFault implements Sink.
func (c *Collector) ReportFault(f Fault) {
	c.Faults = append(c.Faults, f)
}

func newIssue(t *parser.Tree, rule RuleID, anchor parser.NodeID, msg string) *Issue {
	tok := t.FirstToken(anchor)
	return &Issue{
		Rule:    rule,
		Message: msg,
		Anchor:  anchor,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
