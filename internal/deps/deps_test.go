package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present", "#!/bin/sh\nexit 0\n")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank detail %q", results[2].Detail)
	}

	missing, ok := FirstMissing(results)
	if !ok || missing.Name != "Missing" {
		t.Fatalf("FirstMissing = %#v, %v", missing, ok)
	}
}

func TestResolveFromPath(t *testing.T) {
	binDir := t.TempDir()
	want := writeStub(t, binDir, "mkvmerge", "#!/bin/sh\nexit 0\n")
	t.Setenv("PATH", binDir)

	got, err := Resolve("mkvmerge")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
}

func TestVersion(t *testing.T) {
	binDir := t.TempDir()
	stub := writeStub(t, binDir, "mkvmerge", "#!/bin/sh\necho 'mkvmerge v88.0 (\"All I Know\") 64-bit'\necho extra\n")

	got, err := Version(context.Background(), stub)
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if got != `mkvmerge v88.0 ("All I Know") 64-bit` {
		t.Fatalf("unexpected version %q", got)
	}

	failing := writeStub(t, binDir, "broken", "#!/bin/sh\nexit 3\n")
	if _, err := Version(context.Background(), failing); err == nil {
		t.Fatal("expected error for failing binary")
	}
}
