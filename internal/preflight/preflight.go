package preflight

import (
	"fmt"
	"strings"

	"mkvdefaulter/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Target describes what a run is about to touch.
type Target struct {
	File    string
	Library string
	DryRun  bool
}

// RunAll executes the checks that apply to target.
func RunAll(cfg *config.Config, target Target) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg, target.DryRun) {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional}
		switch {
		case status.Available:
			result.Detail = status.Path
		case status.Optional:
			result.Detail = fmt.Sprintf("%s (optional: %s)", status.Command, status.Detail)
		default:
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	if file := strings.TrimSpace(target.File); file != "" {
		results = append(results, CheckFileAccess("Input file", file, !target.DryRun))
	}
	if library := strings.TrimSpace(target.Library); library != "" {
		results = append(results, CheckDirectoryAccess("Library directory", library))
	}
	return results
}

// FirstFailure returns the first failing check.
func FirstFailure(results []Result) (Result, bool) {
	for _, r := range results {
		if !r.Passed {
			return r, true
		}
	}
	return Result{}, false
}
