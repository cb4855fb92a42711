package main

import (
	"time"

	"github.com/spf13/cobra"
)

// runOptions holds the root command's flag values.
type runOptions struct {
	file        string
	library     string
	audio       string
	subtitle    string
	method      string
	depth       int
	extensions  string
	poolSize    int
	regex       string
	dryRun      bool
	verbose     int
	mkvmerge    string
	mkvpropedit string
	timeout     time.Duration
	json        bool
	noProgress  bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts runOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "mkvdefaulter",
		Short: "Set the default audio and subtitle tracks of Matroska files",
		Long: "mkvdefaulter picks the first audio and subtitle track matching the requested\n" +
			"languages and rewrites the default-track flags in place with mkvpropedit.",
		Example: "  mkvdefaulter -l ~/Media/Anime -a jpn -s eng -d 2 -p 4\n" +
			"  mkvdefaulter -f movie.mkv -a eng -s off --dry-run",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			set := cmd.Flags().NFlag()
			if cmd.Flags().Changed("config") {
				set--
			}
			if set == 0 {
				return cmd.Help()
			}
			return runDefaults(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "Process a single file")
	flags.StringVarP(&opts.library, "library", "l", "", "Process every matching file below a directory")
	flags.StringVarP(&opts.audio, "audio", "a", "", "Audio language to mark as default (ISO 639 code)")
	flags.StringVarP(&opts.subtitle, "subtitle", "s", "", "Subtitle language to mark as default, or \"off\"")
	flags.StringVarP(&opts.method, "method", "m", "", "Resolution method: strict or lazy (default from config, strict)")
	flags.IntVarP(&opts.depth, "depth", "d", 0, "Directory levels to descend below the library root (library only)")
	flags.StringVarP(&opts.extensions, "extensions", "e", "", "Comma-separated extension allow-list (default .mkv)")
	flags.IntVarP(&opts.poolSize, "pool-size", "p", 1, "Files processed concurrently (library only)")
	flags.StringVarP(&opts.regex, "regex-filter", "r", "", "Regular expression matched against the start of file names (library only)")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Report what would change without editing files")
	flags.IntVarP(&opts.verbose, "verbose", "v", 4, "Log verbosity: 0 none, 1 info, 2 debug, 3 warn, 4 error")
	flags.StringVar(&opts.mkvmerge, "mkvmerge", "", "mkvmerge executable (name on PATH or path)")
	flags.StringVar(&opts.mkvpropedit, "mkvpropedit", "", "mkvpropedit executable (name on PATH or path)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-invocation timeout for MKVToolNix calls (0 disables)")
	flags.BoolVar(&opts.json, "json", false, "Print the run report as JSON")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.MarkFlagsMutuallyExclusive("file", "library")

	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
