package rules

import (
	"github.com/donaldgifford/phpspace/internal/config"
	"github.com/donaldgifford/phpspace/internal/lint"
)

func init() {
	// Registered in dispatch order.
	Register(Definition{
		ID:          lint.RuleSpaceBeforeBrace,
		Name:        "Space before brace",
		Description: "Exactly one space between a closing parenthesis and an opening curly brace on the same line.",
		Enabled:     func(c config.RulesConfig) bool { return c.SpaceBeforeBrace },
	})
	Register(Definition{
		ID:          lint.RuleSpaceAfterComma,
		Name:        "Space after comma",
		Description: "No space before and one space after each comma of a parameter or argument list.",
		Enabled:     func(c config.RulesConfig) bool { return c.SpaceAfterComma },
	})
	Register(Definition{
		ID:          lint.RuleNoSpaceAfterName,
		Name:        "No space after name",
		Description: "No space between a function or method name and its opening parenthesis.",
		Enabled:     func(c config.RulesConfig) bool { return c.NoSpaceAfterName },
	})
	Register(Definition{
		ID:          lint.RuleNoSpaceInsideParens,
		Name:        "No space inside parentheses",
		Description: "No space after an opening or before a closing parenthesis on the same line.",
		Enabled:     func(c config.RulesConfig) bool { return c.NoSpaceInsideParens },
	})
}
