package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/avtag/internal/config"
	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/logfields"
	"git.home.luguber.info/inful/avtag/internal/version"
)

// CLI holds the global flags. avtag has no subcommands.
type CLI struct {
	ASCII          bool             `name:"ascii" help:"Use only ASCII characters for table borders"`
	Completion     string           `placeholder:"SHELL" help:"Print a completion script for SHELL (bash, zsh, fish, powershell, elvish) and exit"`
	Config         string           `short:"c" type:"path" env:"AVTAG_CONFIG" help:"Configuration file path (default: ${default_config})"`
	Verbose        bool             `short:"v" help:"Enable verbose logging"`
	Version        kong.VersionFlag `name:"version" help:"Show version and exit"`
	IgnoreFailures bool             `help:"Exit successfully even when some repositories could not be resolved"`
	MetricsFile    string           `type:"path" placeholder:"PATH" help:"Write Prometheus metrics in textfile format to PATH"`

	stderr io.Writer    `kong:"-"`
	logger *slog.Logger `kong:"-"`
	runID  string       `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	w := c.stderr
	if w == nil {
		w = io.Discard
	}
	c.runID = uuid.NewString()
	c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With(logfields.RunID(c.runID))
	slog.SetDefault(c.logger)
	return nil
}

func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	cli.stderr = stderr
	return kong.New(cli,
		kong.Name("avtag"),
		kong.Description("List upstream tags that are missing locally or newer than the packaged version."),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Vars{
			"version":        version.String(),
			"default_config": config.DefaultPath(),
		},
	)
}

// run parses args, executes and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) int {
	cli := &CLI{}
	parser, err := newParser(cli, stdout, stderr, exit)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, nil).Report(stderr,
			errors.WrapError(err, errors.CategoryInternal, "failed to build command line parser").Build())
	}
	if _, err := parser.Parse(args); err != nil {
		return errors.NewCLIErrorAdapter(false, nil).Report(stderr,
			errors.WrapError(err, errors.CategoryValidation, "invalid arguments").Build())
	}

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, cli.logger)
	return adapter.Report(stderr, execute(ctx, cli, parser.Model, stdout, stderr))
}
