package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvdefaulter/internal/testsupport"
)

const probeFixture = `{
  "container": {"recognized": true, "supported": true, "type": "Matroska"},
  "errors": [],
  "tracks": [
    {"id": 0, "type": "video", "codec": "HEVC", "properties": {"number": 1, "language": "und", "default_track": true}},
    {"id": 1, "type": "audio", "codec": "AAC", "properties": {"number": 2, "language": "eng", "default_track": true}},
    {"id": 2, "type": "audio", "codec": "FLAC", "properties": {"number": 3, "language": "jpn", "default_track": false}},
    {"id": 3, "type": "subtitles", "codec": "SubStationAlpha", "properties": {"number": 4, "language": "eng", "default_track": false}}
  ]
}`

type cliTestEnv struct {
	baseDir     string
	configPath  string
	library     string
	propeditLog string
}

// setupCLITestEnv isolates HOME and the working directory, writes stub
// MKVToolNix executables, and points a config file at them.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("MKVMERGE", "")
	t.Setenv("MKVPROPEDIT", "")
	t.Chdir(base)

	prevLockDir := lockDir
	lockDir = filepath.Join(base, "locks")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		t.Fatalf("mkdir locks: %v", err)
	}
	t.Cleanup(func() { lockDir = prevLockDir })

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	fixture := filepath.Join(base, "probe.json")
	if err := os.WriteFile(fixture, []byte(probeFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	mkvmerge := testsupport.WriteStub(t, binDir, "mkvmerge", fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then echo "mkvmerge v88.0 ('All I Know') 64-bit"; exit 0; fi
case "$2" in
  *broken*) echo '{"container":{"recognized":false},"errors":["The file could not be opened for reading"],"tracks":[]}'; exit 2 ;;
esac
cat '%s'
`, fixture))
	propeditLog := filepath.Join(base, "mkvpropedit.log")
	mkvpropedit := testsupport.WriteStub(t, binDir, "mkvpropedit", fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then echo "mkvpropedit v88.0 ('All I Know') 64-bit"; exit 0; fi
echo "$@" >> '%s'
`, propeditLog))

	configPath := filepath.Join(base, "config.toml")
	body := fmt.Sprintf("[tools]\nmkvmerge = %q\nmkvpropedit = %q\n", mkvmerge, mkvpropedit)
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	library := testsupport.WriteTree(t, filepath.Join(base, "library"),
		"Show S01E01.mkv",
		"Show S01E02.mkv",
		"Season 2/Show S02E01.mkv",
	)

	return &cliTestEnv{
		baseDir:     base,
		configPath:  configPath,
		library:     library,
		propeditLog: propeditLog,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *cliTestEnv) propeditCalls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.propeditLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read mkvpropedit log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
