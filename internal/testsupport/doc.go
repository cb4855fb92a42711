// Package testsupport holds fixtures shared by package tests: library trees
// on disk and stub MKVToolNix executables.
package testsupport
