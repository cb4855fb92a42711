// Package discovery turns a file or library path into the sorted list of
// candidate media files for a run.
//
// Library mode walks the root plus up to Depth levels of subdirectories,
// keeping files whose extension is in the allow-list and whose base name
// matches the optional pattern anchored at the start of the name.
package discovery
