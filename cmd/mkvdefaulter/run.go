package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mkvdefaulter/internal/batch"
	"mkvdefaulter/internal/config"
	"mkvdefaulter/internal/discovery"
	"mkvdefaulter/internal/logging"
	"mkvdefaulter/internal/mkvmerge"
	"mkvdefaulter/internal/mkvpropedit"
	"mkvdefaulter/internal/preflight"
	"mkvdefaulter/internal/runlock"
	"mkvdefaulter/internal/services"
	"mkvdefaulter/internal/tracks"
)

// lockDir overrides the run lock directory in tests.
var lockDir = ""

func runDefaults(cmd *cobra.Command, cmdCtx *commandContext, opts runOptions) error {
	if err := validateRunFlags(cmd, opts); err != nil {
		return err
	}
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, opts); err != nil {
		return err
	}
	timeout := cfg.Timeout()
	if cmd.Flags().Changed("timeout") {
		timeout = opts.timeout
	}

	runID := uuid.NewString()
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
		File:   cfg.Logging.File,
		RunID:  runID,
	})
	if err != nil {
		return configurationError(fmt.Sprintf("init logger: %v", err))
	}
	logger = logging.NewComponentLogger(logger, "cli")
	ctx := services.WithRunID(cmd.Context(), runID)

	target := preflight.Target{File: opts.file, Library: opts.library, DryRun: opts.dryRun}
	results := preflight.RunAll(cfg, target)
	for _, r := range results {
		logger.Debug("preflight check",
			logging.String(logging.FieldEventType, "preflight"),
			logging.String("check", r.Name),
			logging.Bool("passed", r.Passed),
			logging.String("detail", r.Detail),
		)
	}
	if failure, failed := preflight.FirstFailure(results); failed {
		return configurationError(fmt.Sprintf("preflight %s: %s", failure.Name, failure.Detail))
	}

	if !opts.dryRun {
		lock, err := runlock.Acquire(lockDir, lockTarget(opts))
		if err != nil {
			return configurationError(err.Error())
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logging.WarnWithContext(logger, "run lock release failed", "lock_release_failed",
					logging.String(logging.FieldErrorHint, "remove the stale lock file manually"),
					logging.String("lock", lock.Path()),
					logging.Error(err),
				)
			}
		}()
	}

	paths, err := discovery.Find(discovery.Options{
		File:       opts.file,
		Library:    opts.library,
		Depth:      cfg.Defaults.Depth,
		Extensions: cfg.Defaults.Extensions,
		Pattern:    opts.regex,
		OnSkip: func(path string, err error) {
			logging.WarnWithContext(logger, "skipping unreadable entry", "discovery_skip",
				logging.String(logging.FieldErrorHint, "check directory permissions"),
				logging.String(logging.FieldImpact, "files below this entry were not processed"),
				logging.String(logging.FieldFile, path),
				logging.Error(err),
			)
		},
	})
	if err != nil {
		return configurationError(err.Error())
	}
	if len(paths) == 0 {
		logging.WarnWithContext(logger, "no matching files found", "discovery_empty",
			logging.String(logging.FieldErrorHint, "check --extensions, --depth and --regex-filter"),
			logging.String(logging.FieldImpact, "nothing to process"),
			logging.String("extensions", strings.Join(cfg.Defaults.Extensions, ",")),
		)
	}

	progress := newProgress(cmd.ErrOrStderr(), len(paths), showProgress(cmd, cfg, opts))
	proc := &batch.Processor{
		Prober:    mkvmerge.New(cfg.Tools.Mkvmerge, mkvmerge.WithTimeout(timeout)),
		Applier:   mkvpropedit.New(cfg.Tools.Mkvpropedit, mkvpropedit.WithTimeout(timeout)),
		Selection: tracks.Selection{Audio: cfg.Defaults.Audio, Subtitle: cfg.Defaults.Subtitle},
		Method:    cfg.Method(),
		DryRun:    opts.dryRun,
		Workers:   cfg.Defaults.PoolSize,
		Logger:    logger,
		OnResult:  progress.advance,
	}
	logger.Info("run starting",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Int("files", len(paths)),
		logging.String("method", string(proc.Method)),
		logging.Bool("dry_run", opts.dryRun),
	)
	report := proc.Run(ctx, paths)
	progress.finish()
	logRunComplete(logger, report)

	if opts.json {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		root := opts.library
		renderSummary(cmd.OutOrStdout(), report, root, isTerminal(cmd.OutOrStdout()))
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if report.HasErrors() {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, report.Count(batch.OutcomeError), report.Total())
	}
	return nil
}

func lockTarget(opts runOptions) string {
	if opts.file != "" {
		return opts.file
	}
	return opts.library
}

// showProgress enables the bar only for interactive runs whose log output
// would not interleave with it.
func showProgress(cmd *cobra.Command, cfg *config.Config, opts runOptions) bool {
	if opts.json || opts.noProgress || !isTerminal(cmd.ErrOrStderr()) {
		return false
	}
	switch cfg.Logging.Level {
	case logging.LevelNone, "error":
		return true
	default:
		return false
	}
}

func logRunComplete(logger *slog.Logger, report batch.Report) {
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("files", report.Total()),
		logging.Duration("elapsed", report.Elapsed),
	}
	for _, outcome := range batch.Outcomes {
		if n := report.Count(outcome); n > 0 {
			attrs = append(attrs, logging.Int(string(outcome), n))
		}
	}
	logger.Info("run complete", logging.Args(attrs...)...)
}
