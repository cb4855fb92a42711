// Package logging assembles the structured slog loggers used by mkvdefaulter.
//
// It owns the console and JSON handlers, maps the CLI's 0-4 verbosity scale
// onto slog levels, optionally tees every record into a JSON log file, and
// stamps each line with the run's correlation id. Context helpers pull the
// file path and stage that the batch pipeline stores on its contexts so
// per-file log lines carry them without manual plumbing.
package logging
