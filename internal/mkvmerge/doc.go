// Package mkvmerge reads a Matroska file's track inventory by running
// `mkvmerge -J` and decoding its identification JSON.
//
// Audio and subtitle tracks are numbered by their ordinal within each kind,
// which is the numbering mkvpropedit's type-relative selectors use. Failures
// are tagged with services.ErrProbe (or services.ErrTimeout) so batch callers
// can classify them without parsing messages.
package mkvmerge
