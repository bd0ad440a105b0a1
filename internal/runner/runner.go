// Package runner orchestrates the decode -> parse -> lint -> report pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/donaldgifford/phpspace/internal/config"
	"github.com/donaldgifford/phpspace/internal/lint"
	"github.com/donaldgifford/phpspace/internal/parser"
	"github.com/donaldgifford/phpspace/internal/report"
	"github.com/donaldgifford/phpspace/internal/rules"
	"github.com/donaldgifford/phpspace/internal/source"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitIssues = 1
	ExitError  = 2
)

// StdinName is the path reported for source read from stdin.
const StdinName = "<stdin>"

// Options configures the runner behavior. Empty Format and Color and a
// zero Jobs fall back to the config file.
type Options struct {
	Paths      []string
	ConfigPath string
	Format     string
	Color      string
	Jobs       int
	Quiet      bool
	Verbose    bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run checks the given paths, or stdin when there are none, writes the
// report to Stdout and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		writeErr(opts.Stderr, "phpspace: %v\n", err)
		return ExitError
	}

	engine := rules.NewEngine(cfg.Rules)

	var results []report.FileResult
	if len(opts.Paths) == 0 {
		results = []report.FileResult{runStdin(opts, cfg, engine)}
	} else {
		results, err = runFiles(ctx, opts, cfg, engine)
		if err != nil {
			writeErr(opts.Stderr, "phpspace: %v\n", err)
			return ExitError
		}
	}

	if opts.Verbose {
		for _, r := range results {
			writeErr(opts.Stderr, "phpspace: %s: %d issue(s)\n", r.Path, len(r.Issues))
		}
	}

	err = report.Write(opts.Stdout, results, report.Options{
		Format:  cfg.Output.Format,
		Color:   useColor(cfg.Output.Color, opts.Stdout),
		Summary: !opts.Quiet,
	})
	if err != nil {
		writeErr(opts.Stderr, "phpspace: writing report: %v\n", err)
		return ExitError
	}

	return exitCode(report.Summarize(results))
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.Color != "" {
		cfg.Output.Color = opts.Color
	}
	if opts.Jobs != 0 {
		cfg.Jobs = opts.Jobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runStdin(opts *Options, cfg *config.Config, engine *lint.Engine) report.FileResult {
	src, err := io.ReadAll(opts.Stdin)
	if err != nil {
		return report.FileResult{Path: StdinName, Err: fmt.Errorf("reading stdin: %w", err)}
	}
	return analyze(StdinName, src, cfg, engine)
}

// runFiles analyses files in parallel. Each file is analysed by one
// goroutine from start to finish and results keep the input order.
func runFiles(ctx context.Context, opts *Options, cfg *config.Config, engine *lint.Engine) ([]report.FileResult, error) {
	files := collectFiles(opts.Paths, cfg)
	results := make([]report.FileResult, len(files))

	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range files {
		if f.err != nil {
			results[i] = report.FileResult{Path: f.path, Err: f.err}
			continue
		}
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runFile(f.path, cfg, engine)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Verbose {
		writeErr(opts.Stderr, "phpspace: checked %d file(s) with %d job(s)\n", len(files), jobs)
	}
	return results, nil
}

func runFile(path string, cfg *config.Config, engine *lint.Engine) report.FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return report.FileResult{Path: path, Err: err}
	}
	return analyze(path, src, cfg, engine)
}

// analyze decodes, parses and lints one file.
func analyze(path string, raw []byte, cfg *config.Config, engine *lint.Engine) report.FileResult {
	src, err := source.Decode(path, raw, cfg.Encoding)
	if err != nil {
		return report.FileResult{Path: path, Err: err}
	}

	tree, err := parser.Parse(src.Text)
	if err != nil {
		return report.FileResult{Path: path, Source: src, Err: fmt.Errorf("parse error at %w", err)}
	}

	var c lint.Collector
	engine.Run(tree, &c)

	return report.FileResult{
		Path:   path,
		Source: src,
		Issues: suppress(tree, c.Issues),
		Faults: c.Faults,
	}
}

func exitCode(s report.Summary) int {
	switch {
	case s.Errors > 0 || s.Faults > 0:
		return ExitError
	case s.Issues > 0:
		return ExitIssues
	}
	return ExitOK
}

// useColor resolves the color mode. In auto mode color is used when w
// is a terminal and NO_COLOR is unset.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
