// Package config defines the configuration types and defaults for phpspace.
package config

import (
	"fmt"

	"github.com/donaldgifford/phpspace/internal/source"
)

// Config is the top-level configuration.
type Config struct {
	Rules      RulesConfig  `yaml:"rules" toml:"rules"`
	Encoding   string       `yaml:"encoding" toml:"encoding"`
	Extensions []string     `yaml:"extensions" toml:"extensions"`
	Exclude    []string     `yaml:"exclude" toml:"exclude"`
	Output     OutputConfig `yaml:"output" toml:"output"`
	Jobs       int          `yaml:"jobs" toml:"jobs"`
}

// RulesConfig holds one enable flag per spacing rule.
type RulesConfig struct {
	SpaceBeforeBrace    bool `yaml:"space_before_brace" toml:"space_before_brace"`
	SpaceAfterComma     bool `yaml:"space_after_comma" toml:"space_after_comma"`
	NoSpaceAfterName    bool `yaml:"no_space_after_name" toml:"no_space_after_name"`
	NoSpaceInsideParens bool `yaml:"no_space_inside_parens" toml:"no_space_inside_parens"`
}

// OutputConfig controls how issues are reported.
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"` // text, json or msgpack.
	Color  string `yaml:"color" toml:"color"`   // auto, on or off.
}

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// DefaultConfig returns a Config with every rule enabled.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			SpaceBeforeBrace:    true,
			SpaceAfterComma:     true,
			NoSpaceAfterName:    true,
			NoSpaceInsideParens: true,
		},
		Encoding:   "utf-8",
		Extensions: []string{".php"},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatMsgpack:
	default:
		return fmt.Errorf("output.format: unknown format %q (want text, json or msgpack)", c.Output.Format)
	}

	switch c.Output.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("output.color: unknown mode %q (want auto, on or off)", c.Output.Color)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs: must be >= 0, got %d", c.Jobs)
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions: at least one file extension is required")
	}

	if _, err := source.LookupEncoding(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	return nil
}
