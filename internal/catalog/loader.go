package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"git.home.luguber.info/inful/avtag/internal/config"
	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/logfields"
	"git.home.luguber.info/inful/avtag/internal/retry"
	"git.home.luguber.info/inful/avtag/internal/version"
	"git.home.luguber.info/inful/avtag/internal/workspace"
)

const (
	rawFileName = "bin_list_raw"
	fileName    = "bin_list"
)

// Loader fetches, transforms and parses the catalog using the run's scratch directory.
type Loader struct {
	workspace *workspace.Manager
	client    *http.Client
	policy    retry.Policy
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithRetryPolicy sets the retry policy for transient fetch failures.
func WithRetryPolicy(p retry.Policy) Option {
	return func(l *Loader) { l.policy = p }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader writing its intermediate files into ws.
func NewLoader(ws *workspace.Manager, opts ...Option) *Loader {
	l := &Loader{
		workspace: ws,
		client:    &http.Client{},
		policy:    retry.DefaultPolicy(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches cfg.URL into <scratch>/bin_list_raw, pipes it through cfg.ExtractCmd
// into <scratch>/bin_list (or renames it when no command is set) and parses the result.
func (l *Loader) Load(ctx context.Context, cfg config.BinList) (*Catalog, error) {
	start := time.Now()
	rawPath, err := l.workspace.File(rawFileName)
	if err != nil {
		return nil, err
	}
	outPath, err := l.workspace.File(fileName)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
	defer cancel()
	err = retry.Do(fetchCtx, l.policy, errors.IsRetryable,
		func(attempt int, err error) {
			l.logger.Warn("Retrying version catalog fetch", logfields.URL(cfg.URL), logfields.Attempt(attempt), logfields.Error(err))
		},
		func(ctx context.Context) error { return l.fetch(ctx, cfg.URL, rawPath) })
	if err != nil {
		return nil, err
	}

	if err := l.transform(ctx, cfg.ExtractCmd, rawPath, outPath); err != nil {
		return nil, err
	}

	f, err := os.Open(outPath)
	if err != nil {
		return nil, errors.FileSystemError("failed to open version catalog").WithCause(err).
			WithContext("path", outPath).
			Build()
	}
	defer func() { _ = f.Close() }()

	c, err := Parse(f)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Loaded version catalog",
		logfields.URL(cfg.URL),
		logfields.Entries(c.Len()),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return c, nil
}

// fetch copies the catalog source to dst. Sources may be http(s) URLs, file URLs or paths.
func (l *Loader) fetch(ctx context.Context, source, dst string) error {
	body, err := l.open(ctx, source)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	tmp, err := os.CreateTemp(l.workspace.GetPath(), rawFileName+"-*")
	if err != nil {
		return errors.FileSystemError("failed to create temporary catalog file").WithCause(err).Build()
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryNetwork, "failed to download version catalog").
			WithContext("url", source).
			Retryable().
			Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.FileSystemError("failed to write version catalog").WithCause(err).Build()
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return errors.FileSystemError("failed to store version catalog").WithCause(err).
			WithContext("path", dst).
			Build()
	}
	return nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return l.get(ctx, source)
	}
	path := config.ExpandTilde(source)
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "failed to open version catalog").
			WithContext("path", path).
			Build()
	}
	return f, nil
}

func (l *Loader) get(ctx context.Context, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid version catalog URL").
			WithContext("url", source).
			Build()
	}
	req.Header.Set("User-Agent", "avtag/"+version.Version)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNetwork, "failed to fetch version catalog").
			WithContext("url", source).
			Retryable().
			Build()
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		msg := fmt.Sprintf("fetching version catalog returned %s", resp.Status)
		var b *errors.ErrorBuilder
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			b = errors.NetworkError(msg).RateLimit()
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			b = errors.AuthError(msg)
		case resp.StatusCode == http.StatusNotFound:
			b = errors.NewError(errors.CategoryNotFound, msg)
		case resp.StatusCode < 500:
			b = errors.NewError(errors.CategoryNetwork, msg)
		default:
			b = errors.NetworkError(msg)
		}
		return nil, b.WithContext("url", source).WithContext("status", resp.StatusCode).Build()
	}
	return resp.Body, nil
}

// transform runs cmd with stdin from src and stdout to dst. An empty cmd moves src to dst.
func (l *Loader) transform(ctx context.Context, cmd []string, src, dst string) error {
	if len(cmd) == 0 {
		if err := os.Rename(src, dst); err != nil {
			return errors.FileSystemError("failed to move version catalog").WithCause(err).Build()
		}
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.FileSystemError("failed to open raw version catalog").WithCause(err).Build()
	}
	defer func() { _ = in.Close() }()
	out, err := os.Create(dst)
	if err != nil {
		return errors.FileSystemError("failed to create version catalog").WithCause(err).Build()
	}
	defer func() { _ = out.Close() }()

	var stderr bytes.Buffer
	// #nosec G204 -- the command comes from the user's own configuration file
	c := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	c.Stdin = in
	c.Stdout = out
	c.Stderr = &stderr

	l.logger.Debug("Transforming version catalog", logfields.Command(strings.Join(cmd, " ")))
	if err := c.Run(); err != nil {
		return errors.WrapError(err, errors.CategoryCatalog, "version catalog extract command failed").
			Fatal().
			WithContext("command", strings.Join(cmd, " ")).
			WithContext("stderr", strings.TrimSpace(stderr.String())).
			Build()
	}
	if err := out.Close(); err != nil {
		return errors.FileSystemError("failed to write version catalog").WithCause(err).Build()
	}
	return nil
}
