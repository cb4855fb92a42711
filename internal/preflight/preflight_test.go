package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvdefaulter/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileAccess(t *testing.T) {
	dir := t.TempDir()
	movie := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(movie, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		writable bool
		passed   bool
		detail   string
	}{
		{name: "readable", path: movie, passed: true, detail: "read ok"},
		{name: "writable", path: movie, writable: true, passed: true, detail: "read/write ok"},
		{name: "missing", path: filepath.Join(dir, "gone.mkv"), detail: "does not exist"},
		{name: "directory", path: dir, detail: "is not a regular file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckFileAccess("Input file", tt.path, tt.writable)
			if result.Passed != tt.passed {
				t.Fatalf("Passed = %v, want %v (%s)", result.Passed, tt.passed, result.Detail)
			}
			if !strings.Contains(result.Detail, tt.detail) {
				t.Fatalf("detail %q does not contain %q", result.Detail, tt.detail)
			}
		})
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil, Target{}); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestRunAll_ChecksToolsAndLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	library := t.TempDir()

	results := RunAll(cfg, Target{Library: library})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %#v", len(results), results)
	}
	if failure, ok := FirstFailure(results); ok {
		t.Fatalf("unexpected failure: %#v", failure)
	}
	if results[2].Name != "Library directory" {
		t.Fatalf("unexpected last check %q", results[2].Name)
	}
}

func TestRunAll_MissingPropeditOnlyFailsRealRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Tools.Mkvpropedit = filepath.Join(t.TempDir(), "absent-mkvpropedit")

	results := RunAll(cfg, Target{Library: t.TempDir()})
	failure, ok := FirstFailure(results)
	if !ok || failure.Name != "mkvpropedit" {
		t.Fatalf("expected mkvpropedit failure, got %#v (ok=%v)", failure, ok)
	}

	results = RunAll(cfg, Target{Library: t.TempDir(), DryRun: true})
	if failure, ok := FirstFailure(results); ok {
		t.Fatalf("dry run should tolerate missing mkvpropedit, got %#v", failure)
	}
	if !strings.Contains(results[1].Detail, "optional") {
		t.Fatalf("expected optional detail, got %q", results[1].Detail)
	}
}
