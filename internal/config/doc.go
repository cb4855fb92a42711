// Package config loads, normalizes, and validates mkvdefaulter configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the MKVMERGE and MKVPROPEDIT environment fallbacks
// for tool locations. Command-line flags override whatever this package
// returns; the config file only supplies defaults for repeated runs.
package config
