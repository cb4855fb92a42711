package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"mkvdefaulter/internal/textutil"
)

// ErrLocked indicates another run already holds the lock for the target.
var ErrLocked = errors.New("another mkvdefaulter run is already editing this target")

// Lock is a held run lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file location for target inside dir. An empty dir
// selects os.TempDir.
func PathFor(dir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve lock target: %w", err)
	}
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "mkvdefaulter-"+textutil.SanitizeToken(abs)+".lock"), nil
}

// Acquire takes the lock for target without blocking.
func Acquire(dir, target string) (*Lock, error) {
	path, err := PathFor(dir, target)
	if err != nil {
		return nil, err
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
