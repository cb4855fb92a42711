// Package runlock serializes runs that target the same file or library.
//
// The lock is an advisory flock(2) held on a file in the system temp
// directory whose name is derived from the absolute target path. A second
// run against the same target fails fast instead of racing mkvpropedit.
package runlock
