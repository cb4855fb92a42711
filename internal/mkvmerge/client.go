package mkvmerge

import (
	"bytes"
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
	DefaultBinary = "mkvmerge"
	stageProbe    = "probe"
)

// Runner executes a command and returns its stdout and stderr separately.
type Runner func(ctx context.Context, binary string, args ...string) (stdout, stderr []byte, err error)

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

// WithTimeout bounds each probe. Zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client wraps mkvmerge identification.
type Client struct {
	binary  string
	timeout time.Duration
	run     Runner
}

// New constructs an mkvmerge client. An empty binary falls back to DefaultBinary.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	client := &Client{binary: binary, run: execRunner}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Binary returns the configured executable.
func (c *Client) Binary() string { return c.binary }

// Probe identifies path and returns its audio and subtitle tracks.
func (c *Client) Probe(ctx context.Context, path string) (tracks.Inventory, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return tracks.Inventory{}, services.Wrap(services.ErrProbe, stageProbe, "identify", "empty path", nil)
	}

	probeCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	stdout, stderr, err := c.run(probeCtx, c.binary, "-J", path)
	ident, parseErr := ParseIdentification(stdout)
	if err != nil {
		var exitErr *exec.ExitError
		// mkvmerge exits 1 when it only has warnings to report.
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && parseErr == nil && len(ident.Errors) == 0 {
			err = nil
		}
	}
	if err != nil {
		detail := ""
		if parseErr == nil {
			detail = ident.ErrorMessage()
		}
		if detail == "" {
			detail = strings.TrimSpace(string(stderr))
		}
		if detail == "" {
			detail = strings.TrimSpace(string(stdout))
		}
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return tracks.Inventory{}, services.CommandFailure(services.ErrProbe, stageProbe, "mkvmerge -J", probeCtx.Err(), err)
	}
	if parseErr != nil {
		return tracks.Inventory{}, services.Wrap(services.ErrProbe, stageProbe, "parse identification", "", parseErr)
	}
	if msg := ident.ErrorMessage(); msg != "" {
		return tracks.Inventory{}, services.Wrap(services.ErrProbe, stageProbe, "identify", msg, nil)
	}
	if !ident.Container.Recognized {
		return tracks.Inventory{}, services.Wrap(services.ErrProbe, stageProbe, "identify", "container not recognized", nil)
	}
	return ident.Inventory(path), nil
}

func execRunner(ctx context.Context, binary string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
