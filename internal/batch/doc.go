// Package batch runs the probe, resolve, apply pipeline for many files on a
// bounded worker pool and aggregates one FileResult per file into a Report.
//
// Workers never share mutable state: each returns its result over a channel
// to a single coordinator, which is also where OnResult progress callbacks
// fire. Cancelling the run context stops new files from being scheduled;
// files already in flight finish because their external tool calls run under
// a context detached from cancellation.
package batch
