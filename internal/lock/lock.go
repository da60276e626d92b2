// Package lock implements the single-instance session lock.
//
// The lock is a pair of files: one holding the decimal pid of the holder
// and a sibling holding the decimal Unix time of acquisition. A lock whose
// recorded time is older than the staleness threshold is discarded even if
// the recorded pid happens to be alive, favoring recovery over deadlock.
// Acquisition is best-effort, not atomic; two processes racing to acquire
// simultaneously is a documented limitation of a single-user local tool.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning indicates another live session holds the lock.
var ErrAlreadyRunning = errors.New("another focus session is already running")

// Store is the capability the session controller needs: scoped acquisition
// with guaranteed release.
type Store interface {
	Acquire() error
	Release() error
}

// FileLock is a pidfile-based Store.
type FileLock struct {
	Path       string
	TimePath   string
	StaleAfter time.Duration

	// test seams
	alive func(pid int) bool
	now   func() time.Time
}

// New creates a FileLock for the given paths and staleness threshold.
func New(path, timePath string, staleAfter time.Duration) *FileLock {
	return &FileLock{
		Path:       path,
		TimePath:   timePath,
		StaleAfter: staleAfter,
		alive:      processAlive,
		now:        time.Now,
	}
}

// Acquire takes the lock, clearing stale or orphaned records first.
// Returns ErrAlreadyRunning if a live holder exists.
func (l *FileLock) Acquire() error {
	pid, held, err := l.readHolder()
	if err != nil {
		return err
	}

	if held {
		if l.isStale() {
			// An ancient lock is invalid regardless of holder liveness.
			l.remove()
		} else if l.alive(pid) {
			return ErrAlreadyRunning
		} else {
			// Orphaned: the recorded holder died without releasing.
			l.remove()
		}
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(l.Path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}
	stamp := strconv.FormatInt(l.now().Unix(), 10)
	if err := os.WriteFile(l.TimePath, []byte(stamp), 0644); err != nil {
		os.Remove(l.Path)
		return fmt.Errorf("failed to write lock timestamp: %w", err)
	}
	return nil
}

// Release removes the lock record unconditionally.
func (l *FileLock) Release() error {
	l.remove()
	return nil
}

// Held reports whether a lock record currently exists.
func (l *FileLock) Held() bool {
	_, err := os.Stat(l.Path)
	return err == nil
}

// readHolder reads the recorded holder pid. held is false when no lock
// record exists. A garbled record is treated as orphaned.
func (l *FileLock) readHolder() (pid int, held bool, err error) {
	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read lock file: %w", err)
	}

	pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if convErr != nil {
		return 0, true, nil // held by nobody parseable; caller will clear it
	}
	return pid, true, nil
}

// isStale reports whether the recorded acquisition time is older than the
// staleness threshold. A missing or unreadable timestamp is not stale;
// liveness alone decides then.
func (l *FileLock) isStale() bool {
	data, err := os.ReadFile(l.TimePath)
	if err != nil {
		return false
	}
	unix, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return false
	}
	return l.now().Sub(time.Unix(unix, 0)) > l.StaleAfter
}

func (l *FileLock) remove() {
	os.Remove(l.Path)
	os.Remove(l.TimePath)
}

// processAlive checks whether a pid refers to a live process using signal 0.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	// EPERM means the process exists but belongs to another user.
	return errors.Is(err, syscall.EPERM)
}
