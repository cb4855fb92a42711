// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639-1, ISO 639-2 bibliographic and
// terminologic codes, display names) are consolidated here. The lookup table
// is built once at init and never mutated afterwards. Selections must come
// from the table; track languages outside it are matched and named through
// golang.org/x/text.
package language
