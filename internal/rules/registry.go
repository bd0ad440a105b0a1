// Package rules describes the spacing rules and maps them to config.
package rules

import (
	"github.com/donaldgifford/phpspace/internal/config"
	"github.com/donaldgifford/phpspace/internal/lint"
)

// Definition describes one rule for configuration and listings.
type Definition struct {
	ID          lint.RuleID
	Name        string
	Description string
	// Enabled reads the rule's flag from a rules config.
	Enabled func(config.RulesConfig) bool
}

// Key returns the config key for this rule (e.g., "space_after_comma").
func (d Definition) Key() string {
	return d.ID.String()
}

var definitions []Definition

// Register adds a rule definition to the catalog. Definitions are
// listed in the order they are registered.
func Register(d Definition) {
	definitions = append(definitions, d)
}

// Definitions returns all registered rules in dispatch order.
func Definitions() []Definition {
	return definitions
}

// Lookup returns the definition with the given config key.
func Lookup(key string) (Definition, bool) {
	for _, d := range definitions {
		if d.Key() == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Enabled returns the IDs of the rules switched on in cfg.
func Enabled(cfg config.RulesConfig) []lint.RuleID {
	var ids []lint.RuleID
	for _, d := range definitions {
		if d.Enabled(cfg) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// NewEngine returns a lint engine running the rules enabled in cfg.
func NewEngine(cfg config.RulesConfig) *lint.Engine {
	return lint.New(Enabled(cfg)...)
}
