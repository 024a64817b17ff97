package lock

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

// RunLock keeps two scheduled check-all runs from overlapping. The lock
// file carries no data; only the OS advisory lock on it matters.
type RunLock struct {
	path  string
	flock *flock.Flock
}

func NewRunLock(path string) *RunLock {
	return &RunLock{
		path:  path,
		flock: flock.New(path),
	}
}

// Acquire takes the lock without waiting. It returns domain.ErrLockHeld
// when another process holds it.
func (l *RunLock) Acquire() error {
	locked, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock %s: %w", l.path, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", domain.ErrLockHeld, l.path)
	}
	return nil
}

func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("releasing lock %s: %w", l.path, err)
	}
	return nil
}

func (l *RunLock) Path() string {
	return l.path
}
