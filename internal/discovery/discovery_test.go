package discovery_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"mkvdefaulter/internal/discovery"
	"mkvdefaulter/internal/testsupport"
)

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{".mkv"}},
		{"mkv,.MP4", []string{".mkv", ".mp4"}},
		{" .mkv , mka,,.mkv ", []string{".mkv", ".mka"}},
		{",.", []string{".mkv"}},
	}
	for _, tc := range tests {
		if got := discovery.ParseExtensions(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseExtensions(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFindLibraryDepth(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root,
		"b.mkv",
		"a.MKV",
		"notes.txt",
		"Season 1/e01.mkv",
		"Season 1/extras/featurette.mkv",
	)

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"a.MKV", "b.mkv"}},
		{1, []string{"Season 1/e01.mkv", "a.MKV", "b.mkv"}},
		{2, []string{"Season 1/e01.mkv", "Season 1/extras/featurette.mkv", "a.MKV", "b.mkv"}},
	}
	for _, tc := range tests {
		got, err := discovery.Find(discovery.Options{Library: root, Depth: tc.depth})
		if err != nil {
			t.Fatalf("Find depth %d: %v", tc.depth, err)
		}
		if rel := relAll(t, root, got); !reflect.DeepEqual(rel, tc.want) {
			t.Fatalf("depth %d: got %v, want %v", tc.depth, rel, tc.want)
		}
	}
}

func TestFindLibraryPatternAnchoredAtStart(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "Show S01E01.mkv", "Show S01E02.mkv", "Other Show S01E01.mkv", "clip.mp4")

	got, err := discovery.Find(discovery.Options{Library: root, Pattern: `Show S01`, Extensions: discovery.ParseExtensions("mkv,mp4")})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := []string{"Show S01E01.mkv", "Show S01E02.mkv"}
	if rel := relAll(t, root, got); !reflect.DeepEqual(rel, want) {
		t.Fatalf("got %v, want %v", rel, want)
	}
}

func TestFindLibraryExtensions(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "a.mkv", "b.mp4", "c.avi")

	got, err := discovery.Find(discovery.Options{Library: root, Extensions: discovery.ParseExtensions(".mp4,avi")})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := []string{"b.mp4", "c.avi"}
	if rel := relAll(t, root, got); !reflect.DeepEqual(rel, want) {
		t.Fatalf("got %v, want %v", rel, want)
	}
}

func TestFindSingleFile(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "movie.mkv", "movie.mp4")

	got, err := discovery.Find(discovery.Options{File: filepath.Join(root, "movie.mkv")})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the file itself, got %v", got)
	}

	got, err = discovery.Find(discovery.Options{File: filepath.Join(root, "movie.mp4")})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected disallowed extension to be filtered, got %v", got)
	}
}

func TestFindErrors(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, "movie.mkv")

	tests := []struct {
		name string
		opts discovery.Options
	}{
		{"neither", discovery.Options{}},
		{"both", discovery.Options{File: filepath.Join(root, "movie.mkv"), Library: root}},
		{"missing file", discovery.Options{File: filepath.Join(root, "absent.mkv")}},
		{"file is dir", discovery.Options{File: root}},
		{"library is file", discovery.Options{Library: filepath.Join(root, "movie.mkv")}},
		{"negative depth", discovery.Options{Library: root, Depth: -1}},
		{"bad regex", discovery.Options{Library: root, Pattern: "("}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := discovery.Find(tc.opts); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
