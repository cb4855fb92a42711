// Package tracks models a Matroska file's audio/subtitle track inventory and
// resolves which tracks should carry the default flag.
//
// This package depends only on internal/language and performs no I/O; the
// probe and edit tools live in internal/mkvmerge and internal/mkvpropedit.
//
// Key types:
//   - Inventory: the tracks reported by a single probe, in probe order
//   - Selection: the requested audio/subtitle languages ("off" disables subtitles)
//   - Method: strict (every requested side must match) or lazy (any side)
//   - Resolution: whether to proceed plus the complete list of flag transitions
//
// Primary entry point:
//   - Resolve: applies the method's policy and computes transitions, where the
//     first matching track in probe order wins
package tracks
