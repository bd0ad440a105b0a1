package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/phpspace/internal/config"
	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/source"
)

func newASTCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree the rules run on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			path := "<stdin>"
			var raw []byte
			if len(args) == 1 {
				path = args[0]
				raw, err = os.ReadFile(path)
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			src, err := source.Decode(path, raw, cfg.Encoding)
			if err != nil {
				return err
			}
			tree, err := parser.Parse(src.Text)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return tree.Dump(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	return cmd
}
