// Package deps resolves and checks the external MKVToolNix executables.
package deps
