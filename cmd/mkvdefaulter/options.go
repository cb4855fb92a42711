package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvdefaulter/internal/config"
	"mkvdefaulter/internal/discovery"
	"mkvdefaulter/internal/language"
	"mkvdefaulter/internal/logging"
	"mkvdefaulter/internal/services"
	"mkvdefaulter/internal/tracks"
)

// libraryOnlyFlags may not be combined with --file.
var libraryOnlyFlags = []string{"depth", "pool-size", "regex-filter"}

// validateRunFlags rejects flag combinations before any configuration merge.
func validateRunFlags(cmd *cobra.Command, opts runOptions) error {
	file := strings.TrimSpace(opts.file)
	library := strings.TrimSpace(opts.library)
	switch {
	case file == "" && library == "":
		return configurationError("one of --file or --library is required")
	case file != "" && library != "":
		return configurationError("--file and --library are mutually exclusive")
	}
	if file != "" {
		for _, name := range libraryOnlyFlags {
			if cmd.Flags().Changed(name) {
				return configurationError(fmt.Sprintf("--%s can only be used with --library", name))
			}
		}
	}
	if cmd.Flags().Changed("audio") {
		if language.IsOff(opts.audio) {
			return configurationError("audio cannot be \"off\"")
		}
		if !language.Known(opts.audio) {
			return configurationError(fmt.Sprintf("unknown audio language code %q (see `mkvdefaulter languages`)", opts.audio))
		}
	}
	if cmd.Flags().Changed("subtitle") && !language.IsOff(opts.subtitle) && !language.Known(opts.subtitle) {
		return configurationError(fmt.Sprintf("unknown subtitle language code %q (see `mkvdefaulter languages`)", opts.subtitle))
	}
	if cmd.Flags().Changed("method") {
		if _, err := tracks.ParseMethod(opts.method); err != nil {
			return configurationError(err.Error())
		}
	}
	if opts.depth < 0 {
		return configurationError("--depth must be >= 0")
	}
	if opts.poolSize < 1 {
		return configurationError("--pool-size must be >= 1")
	}
	if opts.timeout < 0 {
		return configurationError("--timeout must be >= 0")
	}
	if _, err := logging.LevelForVerbosity(opts.verbose); err != nil {
		return configurationError(err.Error())
	}
	if opts.regex != "" {
		if _, err := discovery.CompilePattern(opts.regex); err != nil {
			return configurationError(err.Error())
		}
	}
	return nil
}

// applyRunFlags overlays explicitly set flags on cfg and revalidates it.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	changed := cmd.Flags().Changed
	if changed("audio") {
		cfg.Defaults.Audio = opts.audio
	}
	if changed("subtitle") {
		cfg.Defaults.Subtitle = opts.subtitle
	}
	if changed("method") {
		cfg.Defaults.Method = opts.method
	}
	if changed("depth") {
		cfg.Defaults.Depth = opts.depth
	}
	if changed("extensions") {
		cfg.Defaults.Extensions = discovery.ParseExtensions(opts.extensions)
	}
	if changed("pool-size") {
		cfg.Defaults.PoolSize = opts.poolSize
	}
	if changed("mkvmerge") {
		cfg.Tools.Mkvmerge = opts.mkvmerge
	}
	if changed("mkvpropedit") {
		cfg.Tools.Mkvpropedit = opts.mkvpropedit
	}
	if changed("verbose") {
		level, _ := logging.LevelForVerbosity(opts.verbose)
		cfg.Logging.Level = level
	}
	if err := cfg.Refresh(); err != nil {
		return configurationError(err.Error())
	}
	if cfg.Defaults.Audio == "" && cfg.Defaults.Subtitle == "" {
		return configurationError("at least one of --audio or --subtitle is required")
	}
	return nil
}

func configurationError(msg string) error {
	return services.Wrap(services.ErrConfiguration, "", "", msg, nil)
}

// errFilesFailed marks a run in which at least one file ended in error.
var errFilesFailed = errors.New("one or more files failed")
