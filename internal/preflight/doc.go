// Package preflight provides readiness checks for the MKVToolNix executables
// and the filesystem paths a run touches.
//
// The CLI calls RunAll before discovery. Any failing check aborts the run
// before a single file is probed. The doctor command renders the same
// results as a table.
package preflight
