// Package mkvpropedit flips Matroska default-track flags in place by running
// mkvpropedit with one `--edit track:<sel> --set flag-default=<0|1>` pair per
// transition. Dry runs never start a process.
package mkvpropedit
