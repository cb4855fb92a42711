package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mkvdefaulter/internal/language"
	"mkvdefaulter/internal/logging"
	"mkvdefaulter/internal/mkvpropedit"
	"mkvdefaulter/internal/services"
	"mkvdefaulter/internal/tracks"
)

// Prober reads a file's track inventory.
type Prober interface {
	Probe(ctx context.Context, path string) (tracks.Inventory, error)
}

// Applier writes default-flag transitions to a file.
type Applier interface {
	Apply(ctx context.Context, path string, transitions []tracks.Transition, dryRun bool) (mkvpropedit.Result, error)
}

// Processor runs the per-file pipeline over a bounded worker pool.
type Processor struct {
	Prober    Prober
	Applier   Applier
	Selection tracks.Selection
	Method    tracks.Method
	DryRun    bool
	// Workers bounds concurrent file pipelines; values below 1 mean 1.
	Workers int
	Logger  *slog.Logger
	// OnResult is called from the coordinating goroutine once per file.
	OnResult func(FileResult)
}

// Run processes paths and returns the aggregated report. Per-file failures
// are recorded in the report and never stop the batch.
func (p *Processor) Run(ctx context.Context, paths []string) Report {
	started := time.Now()
	logger := p.logger()

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}
	logger.Debug("batch starting",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int("files", len(paths)),
		logging.Int("workers", workers),
		logging.Bool("dry_run", p.DryRun),
	)

	jobs := make(chan string)
	results := make(chan FileResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, jobs, results)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, path := range paths {
			if ctx.Err() == nil {
				select {
				case jobs <- path:
					continue
				case <-ctx.Done():
				}
			}
			for _, rest := range paths[i:] {
				results <- cancelledResult(rest)
			}
			return
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]FileResult, 0, len(paths))
	for res := range results {
		collected = append(collected, res)
		if p.OnResult != nil {
			p.OnResult(res)
		}
	}

	rep := newReport(collected)
	rep.DryRun = p.DryRun
	rep.Method = p.Method
	rep.Selection = p.Selection
	rep.StartedAt = started
	rep.Elapsed = time.Since(started)
	logger.Debug("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("files", rep.Total()),
		logging.Int("errors", rep.Count(OutcomeError)),
		logging.Duration("elapsed", rep.Elapsed),
	)
	return rep
}

func (p *Processor) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan string, results chan<- FileResult) {
	defer wg.Done()
	for path := range jobs {
		results <- p.processFile(ctx, path)
	}
}

// processFile runs one pipeline. External calls use a context that ignores
// cancellation so a started file is never left half-edited.
func (p *Processor) processFile(ctx context.Context, path string) FileResult {
	started := time.Now()
	res := FileResult{Path: path, Extension: extensionOf(path)}
	callCtx := services.WithFile(context.WithoutCancel(ctx), path)
	logger := logging.WithContext(callCtx, p.logger())

	finish := func(res FileResult) FileResult {
		res.Duration = time.Since(started)
		return res
	}

	if !IsMatroska(path) {
		res.Outcome = OutcomeInvalid
		res.Stage = StageFilter
		res.Reason = "not a Matroska file"
		logging.WarnWithContext(logger, "file skipped", "file_invalid",
			logging.String(logging.FieldStage, StageFilter),
			logging.String("reason", res.Reason),
			logging.String(logging.FieldErrorHint, "narrow --extensions to Matroska files"),
			logging.String(logging.FieldImpact, "file left untouched"),
		)
		return finish(res)
	}

	inv, err := p.Prober.Probe(services.WithStage(callCtx, StageProbe), path)
	if err != nil {
		return finish(p.fail(logger, res, StageProbe, err))
	}
	logger.Debug("tracks probed",
		logging.String(logging.FieldStage, StageProbe),
		logging.Int("audio_tracks", len(inv.Audio())),
		logging.Int("subtitle_tracks", len(inv.Subtitles())),
		logging.String("tracks", trackLabels(inv)),
	)

	resolution, err := tracks.Resolve(inv, p.Selection, p.Method)
	if err != nil {
		return finish(p.fail(logger, res, StageResolve, err))
	}
	res.Missing = resolution.Missing
	if !resolution.Proceed {
		res.Outcome = OutcomeSkipped
		res.Stage = StageResolve
		res.Reason = p.missingReason(resolution.Missing)
		logger.Info("file skipped",
			logging.String(logging.FieldEventType, "policy_not_satisfied"),
			logging.String("method", string(p.Method)),
			logging.String("reason", res.Reason),
		)
		return finish(res)
	}
	if !resolution.Changed() {
		res.Outcome = OutcomeUnchanged
		logger.Debug("defaults already correct",
			logging.String(logging.FieldEventType, "file_unchanged"),
		)
		return finish(res)
	}

	res.Transitions = resolution.Transitions
	applied, err := p.Applier.Apply(services.WithStage(callCtx, StageApply), path, resolution.Transitions, p.DryRun)
	res.Command = applied.Command
	if err != nil {
		return finish(p.fail(logger, res, StageApply, err))
	}
	if applied.DryRun {
		res.Outcome = OutcomeWouldChange
	} else {
		res.Outcome = OutcomeChanged
	}
	logger.Info("default flags updated",
		logging.String(logging.FieldEventType, "file_"+string(res.Outcome)),
		logging.Int("transitions", applied.Count),
		logging.String("changes", describeTransitions(resolution.Transitions)),
		logging.Bool("dry_run", applied.DryRun),
	)
	if len(applied.Warnings) > 0 {
		logging.WarnWithContext(logger, "mkvpropedit reported warnings", "apply_warning",
			logging.String(logging.FieldStage, StageApply),
			logging.String("warnings", strings.Join(applied.Warnings, "; ")),
			logging.String(logging.FieldErrorHint, "inspect the file with mkvinfo"),
			logging.String(logging.FieldImpact, "flags were written"),
		)
	}
	return finish(res)
}

func (p *Processor) fail(logger *slog.Logger, res FileResult, stage string, err error) FileResult {
	res.Outcome = OutcomeError
	res.Stage = stage
	res.Err = err
	res.Reason = err.Error()
	logging.ErrorWithContext(logger, "file failed", "file_"+stage+"_failed",
		logging.String(logging.FieldStage, stage),
		logging.String("error_kind", services.Classify(err)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hintFor(stage)),
	)
	return res
}

func (p *Processor) missingReason(missing []tracks.Kind) string {
	parts := make([]string, 0, len(missing))
	for _, kind := range missing {
		want := p.Selection.Audio
		if kind == tracks.KindSubtitles {
			want = p.Selection.Subtitle
		}
		parts = append(parts, fmt.Sprintf("%s language %q (%s) not found", kind, want, language.DisplayName(want)))
	}
	if len(parts) == 0 {
		return "policy not satisfied"
	}
	return strings.Join(parts, "; ")
}

func trackLabels(inv tracks.Inventory) string {
	labels := make([]string, 0, len(inv.Tracks))
	for _, t := range inv.Tracks {
		labels = append(labels, t.Label())
	}
	return strings.Join(labels, "; ")
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return logging.NewNop()
	}
	return p.Logger
}

func cancelledResult(path string) FileResult {
	return FileResult{
		Path:      path,
		Extension: extensionOf(path),
		Outcome:   OutcomeCancelled,
		Reason:    "run cancelled before file was scheduled",
	}
}

func hintFor(stage string) string {
	switch stage {
	case StageProbe:
		return "check that mkvmerge can read the file"
	case StageApply:
		return "check file permissions and mkvpropedit output"
	default:
		return "check the requested languages against the file's tracks"
	}
}

func describeTransitions(transitions []tracks.Transition) string {
	parts := make([]string, 0, len(transitions))
	for _, tr := range transitions {
		parts = append(parts, tr.String())
	}
	return strings.Join(parts, ", ")
}
