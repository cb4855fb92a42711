package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"mkvdefaulter/internal/config"
	"mkvdefaulter/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and can be listed and traversed.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckFileAccess verifies that a regular file exists and is readable. When
// writable is set the file must also be writable, since mkvpropedit edits in place.
func CheckFileAccess(name, path string, writable bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a regular file)", path)}
	}
	mode := uint32(unix.R_OK)
	label := "read ok"
	if writable {
		mode |= unix.W_OK
		label = "read/write ok"
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckSystemDeps evaluates the MKVToolNix executables for the given config.
// mkvpropedit is optional for dry runs because nothing is written.
func CheckSystemDeps(cfg *config.Config, dryRun bool) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "mkvmerge",
			Command:     cfg.Tools.Mkvmerge,
			Description: "Required to probe track inventories",
		},
		{
			Name:        "mkvpropedit",
			Command:     cfg.Tools.Mkvpropedit,
			Description: "Required to rewrite default flags",
			Optional:    dryRun,
		},
	}
	return deps.CheckBinaries(requirements)
}
