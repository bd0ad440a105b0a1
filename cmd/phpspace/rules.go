package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/phpspace/internal/config"
	"github.com/donaldgifford/phpspace/internal/rules"
)

func newRulesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the spacing rules and whether the config enables them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return writeRules(cmd.OutOrStdout(), cfg.Rules)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	return cmd
}

// writeRules prints one entry per rule. Styles follow the color
// support of w.
func writeRules(w io.Writer, cfg config.RulesConfig) error {
	r := lipgloss.NewRenderer(w)
	keyStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	onStyle := r.NewStyle().Foreground(lipgloss.Color("2"))
	offStyle := r.NewStyle().Foreground(lipgloss.Color("1"))
	descStyle := r.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("7"))

	defs := rules.Definitions()
	width := 0
	for _, d := range defs {
		width = max(width, len(d.Key()))
	}

	var b strings.Builder
	for _, d := range defs {
		state := offStyle.Render("off")
		if d.Enabled(cfg) {
			state = onStyle.Render("on")
		}
		key := keyStyle.Render(d.Key() + strings.Repeat(" ", width-len(d.Key())))
		fmt.Fprintf(&b, "%s  %s  %s\n", key, state, d.Name)
		b.WriteString(descStyle.Render(d.Description))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
