// Package services defines shared utilities consumed by the per-file pipeline
// and the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp the file path, pipeline stage, and run
//     correlation identifier for logging.
//   - Structured error markers plus the Wrap helper that let callers classify
//     failures (probe vs apply vs timeout) with errors.Is while keeping the
//     stage and tool output in the message.
//
// Use these helpers when wiring new pipeline steps so error classification and
// observability stay uniform across the tool wrappers.
package services
