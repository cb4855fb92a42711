package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mkvdefaulter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config backed by a per-test temp directory,
// applies any provided options, then normalizes and validates the result.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Refresh(); err != nil {
		t.Fatalf("refresh test config: %v", err)
	}
	return builder.cfg
}

// WithStubbedBinaries writes no-op mkvmerge and mkvpropedit executables and
// points the config at them.
func WithStubbedBinaries() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tools.Mkvmerge = b.writeStub("mkvmerge", "#!/bin/sh\nexit 0\n")
		b.cfg.Tools.Mkvpropedit = b.writeStub("mkvpropedit", "#!/bin/sh\nexit 0\n")
	}
}

// WithMkvmergeScript installs script as the mkvmerge executable.
func WithMkvmergeScript(script string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tools.Mkvmerge = b.writeStub("mkvmerge", script)
	}
}

// WithMkvpropeditScript installs script as the mkvpropedit executable.
func WithMkvpropeditScript(script string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tools.Mkvpropedit = b.writeStub("mkvpropedit", script)
	}
}

func (b *configBuilder) writeStub(name, script string) string {
	b.t.Helper()
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// WriteStub writes an executable shell script into dir and returns its path.
func WriteStub(t testing.TB, dir, name, script string) string {
	t.Helper()
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
