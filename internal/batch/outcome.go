package batch

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mkvdefaulter/internal/tracks"
)

// Outcome classifies what happened to one file.
type Outcome string

const (
	OutcomeChanged     Outcome = "changed"
	OutcomeWouldChange Outcome = "would_change"
	OutcomeUnchanged   Outcome = "unchanged"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeError       Outcome = "error"
	OutcomeCancelled   Outcome = "cancelled"
)

// Outcomes lists every outcome in summary order.
var Outcomes = []Outcome{
	OutcomeChanged,
	OutcomeWouldChange,
	OutcomeUnchanged,
	OutcomeSkipped,
	OutcomeInvalid,
	OutcomeError,
	OutcomeCancelled,
}

// Stage names used in FileResult.Stage.
const (
	StageProbe   = "probe"
	StageResolve = "resolve"
	StageApply   = "apply"
	StageFilter  = "filter"
)

// FileResult is the outcome of one file pipeline.
type FileResult struct {
	Path        string              `json:"path"`
	Extension   string              `json:"extension"`
	Outcome     Outcome             `json:"outcome"`
	Stage       string              `json:"stage,omitempty"`
	Reason      string              `json:"reason,omitempty"`
	Missing     []tracks.Kind       `json:"missing,omitempty"`
	Transitions []tracks.Transition `json:"transitions,omitempty"`
	Command     []string            `json:"command,omitempty"`
	Duration    time.Duration       `json:"duration_ns"`
	Err         error               `json:"-"`
}

// Problem reports whether the result deserves attention in a summary.
func (r FileResult) Problem() bool {
	switch r.Outcome {
	case OutcomeSkipped, OutcomeInvalid, OutcomeError:
		return true
	default:
		return false
	}
}

// Report aggregates the results of a run by path.
type Report struct {
	DryRun     bool             `json:"dry_run"`
	Method     tracks.Method    `json:"method"`
	Selection  tracks.Selection `json:"selection"`
	Files      []FileResult     `json:"files"`
	Counts     map[Outcome]int  `json:"counts"`
	Extensions map[string]int   `json:"extensions"`
	StartedAt  time.Time        `json:"started_at"`
	Elapsed    time.Duration    `json:"elapsed_ns"`
}

// Total returns the number of files in the report.
func (r Report) Total() int { return len(r.Files) }

// Count returns the number of files with outcome o.
func (r Report) Count(o Outcome) int { return r.Counts[o] }

// HasErrors reports whether any file failed.
func (r Report) HasErrors() bool { return r.Counts[OutcomeError] > 0 }

// Problems returns the skipped, invalid and failed files in path order.
func (r Report) Problems() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Problem() {
			out = append(out, f)
		}
	}
	return out
}

// SortedExtensions returns the extension keys in lexical order.
func (r Report) SortedExtensions() []string {
	keys := make([]string, 0, len(r.Extensions))
	for k := range r.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newReport(results []FileResult) Report {
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	rep := Report{
		Files:      results,
		Counts:     make(map[Outcome]int, len(Outcomes)),
		Extensions: make(map[string]int),
	}
	for _, res := range results {
		rep.Counts[res.Outcome]++
		rep.Extensions[res.Extension]++
	}
	return rep
}

func extensionOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "(none)"
	}
	return ext
}
