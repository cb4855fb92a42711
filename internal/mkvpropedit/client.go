package mkvpropedit

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"mkvdefaulter/internal/services"
	"mkvdefaulter/internal/tracks"
)

const (
	// DefaultBinary is the executable name resolved from PATH.
	DefaultBinary = "mkvpropedit"
	stageApply    = "apply"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(run Runner) Option {
	return func(c *Client) {
		if run != nil {
			c.run = run
		}
	}
}

// WithTimeout bounds each edit. Zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Result describes one Apply call.
type Result struct {
	DryRun bool `json:"dry_run"`
	// Count is the number of flag transitions applied or, for dry runs, that would be.
	Count   int      `json:"count"`
	Changed bool     `json:"changed"`
	Command []string `json:"command,omitempty"`
	// Warnings holds the messages of an edit that exited 1: written, but with warnings.
	Warnings []string `json:"warnings,omitempty"`
}

// Client wraps mkvpropedit invocations.
type Client struct {
	binary  string
	timeout time.Duration
	run     Runner
}

// New constructs an mkvpropedit client. An empty binary falls back to DefaultBinary.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	client := &Client{binary: binary, run: combinedRunner}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Binary returns the configured executable.
func (c *Client) Binary() string { return c.binary }

// BuildArgs returns the mkvpropedit arguments for the transitions.
func BuildArgs(path string, transitions []tracks.Transition) []string {
	args := make([]string, 0, 1+4*len(transitions))
	args = append(args, path)
	for _, tr := range transitions {
		args = append(args, "--edit", tr.Selector(), "--set", tr.FlagValue())
	}
	return args
}

// Apply writes the transitions to path. An empty transition list is a no-op
// and a dry run only reports what would be executed.
func (c *Client) Apply(ctx context.Context, path string, transitions []tracks.Transition, dryRun bool) (Result, error) {
	if len(transitions) == 0 {
		return Result{DryRun: dryRun}, nil
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{DryRun: dryRun}, services.Wrap(services.ErrApply, stageApply, "edit", "empty path", nil)
	}
	args := BuildArgs(path, transitions)
	command := append([]string{c.binary}, args...)
	if dryRun {
		return Result{DryRun: true, Count: len(transitions), Command: command}, nil
	}

	editCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		editCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	output, err := c.run(editCtx, c.binary, args...)
	var exitErr *exec.ExitError
	// mkvpropedit exits 1 when the file was written but warnings were issued.
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && editCtx.Err() == nil {
		return Result{Count: len(transitions), Changed: true, Command: command, Warnings: warningLines(output)}, nil
	}
	if err != nil {
		if detail := strings.TrimSpace(string(output)); detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return Result{Command: command}, services.CommandFailure(services.ErrApply, stageApply, "mkvpropedit", editCtx.Err(), err)
	}
	return Result{Count: len(transitions), Changed: true, Command: command}, nil
}

func warningLines(output []byte) []string {
	var warnings []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Warning:") {
			warnings = append(warnings, strings.TrimSpace(strings.TrimPrefix(line, "Warning:")))
		}
	}
	if len(warnings) == 0 {
		if detail := strings.TrimSpace(string(output)); detail != "" {
			warnings = append(warnings, detail)
		}
	}
	return warnings
}

func combinedRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}
