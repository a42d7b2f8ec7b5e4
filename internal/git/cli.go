package git

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CLILister lists tags by running the git command, so the user's credential
// helpers, ssh configuration and insteadOf rewrites apply.
type CLILister struct {
	gitBin string
}

// NewCLILister creates a TagLister backed by the git executable on PATH.
func NewCLILister() *CLILister {
	return &CLILister{gitBin: "git"}
}

// RemoteTags implements TagLister via `git ls-remote --tags --refs`.
func (l *CLILister) RemoteTags(ctx context.Context, repoPath, remote string) ([]TagRef, error) {
	out, err := l.run(ctx, repoPath, "ls-remote", "--tags", "--refs", remote)
	if err != nil {
		return nil, ClassifyGitError(err, "list remote tags", remote)
	}
	return parseRefLines(out)
}

// LocalTags implements TagLister via `git show-ref --tags`.
func (l *CLILister) LocalTags(ctx context.Context, repoPath string) ([]TagRef, error) {
	out, err := l.run(ctx, repoPath, "show-ref", "--tags")
	if err != nil {
		var exitErr *exec.ExitError
		// show-ref exits 1 without output when there are no tags
		if stderrors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(bytes.TrimSpace(out)) == 0 {
			return []TagRef{}, nil
		}
		return nil, ClassifyGitError(err, "list local tags", "")
	}
	return parseRefLines(out)
}

type commandError struct {
	args   []string
	stderr string
	err    error
}

func (e *commandError) Error() string {
	if e.stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", strings.Join(e.args, " "), e.err, e.stderr)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.args, " "), e.err)
}

func (e *commandError) Unwrap() error { return e.err }

func (l *CLILister) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("repository path %s does not exist", dir)
	}
	var stdout, stderr bytes.Buffer
	// #nosec G204 -- arguments are fixed subcommands plus the configured remote
	cmd := exec.CommandContext(ctx, l.gitBin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return stdout.Bytes(), &commandError{args: args, stderr: strings.TrimSpace(stderr.String()), err: err}
	}
	return stdout.Bytes(), nil
}

// parseRefLines parses "<hash> <ref>" lines (tab or space separated) and keeps tag refs.
func parseRefLines(out []byte) ([]TagRef, error) {
	tags := []TagRef{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, GitError("unexpected git output").WithContext("line", scanner.Text()).Build()
		}
		if !isTagRef(fields[1]) {
			continue
		}
		tags = append(tags, TagRef{Hash: fields[0], Name: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, GitError("failed to read git output").WithCause(err).Build()
	}
	SortByHash(tags)
	return tags, nil
}
