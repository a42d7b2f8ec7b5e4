package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/avtag/internal/catalog"
	"git.home.luguber.info/inful/avtag/internal/completion"
	"git.home.luguber.info/inful/avtag/internal/config"
	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/git"
	"git.home.luguber.info/inful/avtag/internal/logfields"
	"git.home.luguber.info/inful/avtag/internal/metrics"
	"git.home.luguber.info/inful/avtag/internal/report"
	"git.home.luguber.info/inful/avtag/internal/resolver"
	"git.home.luguber.info/inful/avtag/internal/retry"
	"git.home.luguber.info/inful/avtag/internal/workspace"
)

func execute(ctx context.Context, cli *CLI, app *kong.Application, stdout, stderr io.Writer) error {
	if cli.Completion != "" {
		return completion.Generate(stdout, cli.Completion, app, map[string][]string{
			"completion": completion.Shells,
		})
	}

	logger := cli.logger
	if logger == nil {
		logger = slog.Default()
	}

	path := cli.Config
	if path == "" {
		path = config.DefaultPath()
		installed, err := config.Install(path)
		if err != nil {
			return err
		}
		if installed {
			logger.Info("Installed default configuration", logfields.Path(path))
			_, _ = fmt.Fprintf(stdout, "Installed config to %s\n", path)
			_, _ = fmt.Fprintln(stdout, "Edit the defaults and repos sections before the next run")
			return nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("Loaded configuration", logfields.Path(path), logfields.RepoCount(len(cfg.Repos)))

	return runReport(ctx, cli, cfg, logger, stdout, stderr)
}

func runReport(ctx context.Context, cli *CLI, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	start := time.Now()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cli.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	ws := workspace.NewManager("")
	if err := ws.Create(); err != nil {
		return err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			logger.Warn("Failed to remove scratch directory", logfields.Path(ws.GetPath()), logfields.Error(err))
		}
	}()

	policy := retry.FromConfig(cfg.Retry)

	var cat *catalog.Catalog
	if cfg.BinList.Enabled() {
		loader := catalog.NewLoader(ws, catalog.WithRetryPolicy(policy), catalog.WithLogger(logger))
		loaded, err := loader.Load(ctx, cfg.BinList)
		if err != nil {
			return err
		}
		cat = loaded
		recorder.SetCatalogEntries(cat.Len())
	}

	lister := git.WithRetry(git.NewLister(cfg.Defaults.Backend), policy, logger)
	res := resolver.New(lister,
		resolver.WithCatalog(cat),
		resolver.WithRecorder(recorder),
		resolver.WithLogger(logger),
	)

	repos := cfg.Repositories()
	config.SortRepositories(repos)
	results := res.ResolveAll(ctx, repos)
	failed := resolver.Failed(results)

	rep := report.Assemble(results, cat)
	if err := rep.Render(stdout, report.Options{ASCII: cli.ASCII}); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to render report").Build()
	}

	tagCount := 0
	for _, row := range rep.Rows() {
		tagCount += len(row.Tags)
	}
	logger.Info("Run complete",
		logfields.RepoCount(len(repos)),
		logfields.Failed(len(failed)),
		logfields.TagCount(tagCount),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	if len(failed) > 0 {
		_, _ = fmt.Fprintf(stderr, "%d of %d repositories could not be resolved:\n", len(failed), len(repos))
		for _, f := range failed {
			_, _ = fmt.Fprintf(stderr, "  %s: %v\n", f.Repository.Path, f.Err)
		}
	}

	recorder.ObserveRun(time.Since(start), len(repos), len(failed))
	if prom != nil {
		if err := prom.WriteTextfile(cli.MetricsFile); err != nil {
			return errors.FileSystemError("failed to write metrics file").WithCause(err).
				WithContext("path", cli.MetricsFile).
				Build()
		}
	}

	if len(failed) > 0 && !cli.IgnoreFailures {
		return errors.NewError(errors.CategoryGit, fmt.Sprintf("%d of %d repositories failed", len(failed), len(repos))).Build()
	}
	return nil
}
