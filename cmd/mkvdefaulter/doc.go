// Package main hosts the mkvdefaulter CLI entrypoint and command graph.
//
// The root command discovers Matroska files, resolves which audio and
// subtitle tracks should carry the default flag, and rewrites the flags in
// place with mkvpropedit. Subcommands cover configuration scaffolding, the
// language code table, and a dependency check.
//
// Keep this package lean: resolution, probing, and the worker pool live in
// internal packages; the commands here only merge flags with configuration,
// run preflight checks, and render results.
package main
