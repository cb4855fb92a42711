package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultExtension is used when no extension allow-list is supplied.
const DefaultExtension = ".mkv"

// Options controls discovery. Exactly one of File or Library must be set.
type Options struct {
	File       string
	Library    string
	Depth      int
	Extensions []string
	// Pattern filters base names in library mode; it is anchored at the start.
	Pattern string
	// OnSkip, when set, is called for entries that could not be read.
	OnSkip func(path string, err error)
}

// ParseExtensions splits a comma-separated allow-list, lowercasing each entry
// and adding a leading dot where missing. Blank input yields DefaultExtension.
func ParseExtensions(value string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(value, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return []string{DefaultExtension}
	}
	return out
}

// CompilePattern compiles a name filter anchored at the start of the name.
// An empty pattern returns nil.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("compile regex filter: %w", err)
	}
	return re, nil
}

// HasExtension reports whether path ends with one of exts (case-insensitive).
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, allowed := range exts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Find returns the candidate files described by opts in lexical order.
func Find(opts Options) ([]string, error) {
	file := strings.TrimSpace(opts.File)
	library := strings.TrimSpace(opts.Library)
	switch {
	case file != "" && library != "":
		return nil, errors.New("file and library are mutually exclusive")
	case file == "" && library == "":
		return nil, errors.New("a file or library path is required")
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{DefaultExtension}
	}

	if file != "" {
		info, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("stat file: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory; use a library path instead", file)
		}
		if !HasExtension(file, exts) {
			return nil, nil
		}
		return []string{file}, nil
	}

	if opts.Depth < 0 {
		return nil, fmt.Errorf("depth must be >= 0, got %d", opts.Depth)
	}
	re, err := CompilePattern(opts.Pattern)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(library)
	if err != nil {
		return nil, fmt.Errorf("stat library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", library)
	}

	root := filepath.Clean(library)
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if opts.OnSkip != nil {
				opts.OnSkip(path, err)
			}
			return nil
		}
		if d.IsDir() {
			if path != root && levelOf(root, path) > opts.Depth {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !HasExtension(d.Name(), exts) {
			return nil
		}
		if re != nil && !re.MatchString(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk library: %w", walkErr)
	}
	sort.Strings(files)
	return files, nil
}

// levelOf returns how many directories below root dir sits.
func levelOf(root, dir string) int {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
