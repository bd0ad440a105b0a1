// Package main is the entry point for phpspace.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/phpspace/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitCode carries the runner's exit code out of cobra.
var exitCode int

func newRootCmd() *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "phpspace [flags] [paths...]",
		Short: "Check whitespace around parentheses, braces and commas in PHP code",
		Long: `phpspace reports spacing problems in PHP source: the space between ")" and "{",
around commas in parameter and argument lists, between a function name and "(",
and just inside parentheses. Directories are searched for PHP files. With no
paths, source is read from stdin.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			exitCode = runner.Run(cmd.Context(), opts)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	flags.StringVar(&opts.Format, "format", "", "report format (text|json|msgpack)")
	flags.StringVar(&opts.Color, "color", "", "colorize output (auto|on|off)")
	flags.IntVarP(&opts.Jobs, "jobs", "j", 0, "files analysed in parallel (0 = all CPUs)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress the summary line")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print per-file counts to stderr")

	cmd.AddCommand(newRulesCmd(), newVersionCmd(), newASTCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "phpspace: %v\n", err)
		os.Exit(runner.ExitError)
	}
	os.Exit(exitCode)
}
