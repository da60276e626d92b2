package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func newTestLock(t *testing.T) *FileLock {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "focus.lock"), filepath.Join(dir, "focus.lock.time"), 6*time.Hour)
}

func TestAcquire_WritesOwnPid(t *testing.T) {
	l := newTestLock(t)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}

	pid, err := strconv.Atoi(string(data))
	if err != nil {
		t.Fatalf("lock file content %q is not a pid", data)
	}
	if pid != os.Getpid() {
		t.Errorf("lock holder = %d, want %d", pid, os.Getpid())
	}

	if _, err := os.Stat(l.TimePath); err != nil {
		t.Errorf("Acquire() should write the timestamp file: %v", err)
	}
}

func TestAcquire_LiveHolderFails(t *testing.T) {
	first := newTestLock(t)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	// Second attempt against the same paths, holder (this process) is alive.
	second := New(first.Path, first.TimePath, first.StaleAfter)
	err := second.Acquire()
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Acquire() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestAcquire_OrphanedLockIsCleared(t *testing.T) {
	l := newTestLock(t)

	if err := os.WriteFile(l.Path, []byte("4194304"), 0644); err != nil {
		t.Fatal(err)
	}
	l.alive = func(pid int) bool { return false }

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v, want orphan recovery", err)
	}

	data, _ := os.ReadFile(l.Path)
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("lock holder = %s, want own pid after orphan recovery", data)
	}
}

func TestAcquire_StaleLockBeatsLiveness(t *testing.T) {
	l := newTestLock(t)

	// Holder alive (this process) but the record is 7 hours old.
	if err := os.WriteFile(l.Path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-7 * time.Hour).Unix()
	if err := os.WriteFile(l.TimePath, []byte(strconv.FormatInt(old, 10)), 0644); err != nil {
		t.Fatal(err)
	}

	if err := l.Acquire(); err != nil {
		t.Errorf("Acquire() error = %v, want stale recovery regardless of liveness", err)
	}
}

func TestAcquire_FreshLockWithLiveHolderFails(t *testing.T) {
	l := newTestLock(t)

	if err := os.WriteFile(l.Path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatal(err)
	}
	recent := time.Now().Add(-10 * time.Minute).Unix()
	if err := os.WriteFile(l.TimePath, []byte(strconv.FormatInt(recent, 10)), 0644); err != nil {
		t.Fatal(err)
	}

	if err := l.Acquire(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Acquire() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestAcquire_GarbledRecordIsCleared(t *testing.T) {
	l := newTestLock(t)

	if err := os.WriteFile(l.Path, []byte("not-a-pid"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := l.Acquire(); err != nil {
		t.Errorf("Acquire() error = %v, want garbled record cleared", err)
	}
}

func TestRelease_RemovesBothFiles(t *testing.T) {
	l := newTestLock(t)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	if l.Held() {
		t.Error("Held() = true after Release()")
	}
	if _, err := os.Stat(l.TimePath); !os.IsNotExist(err) {
		t.Error("Release() should remove the timestamp file")
	}
}

func TestRelease_IdempotentWhenNotHeld(t *testing.T) {
	l := newTestLock(t)

	if err := l.Release(); err != nil {
		t.Errorf("Release() on unheld lock error = %v, want nil", err)
	}
}

func TestAcquire_AfterReleaseSucceeds(t *testing.T) {
	l := newTestLock(t)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := l.Acquire(); err != nil {
		t.Errorf("re-Acquire() error = %v, want success", err)
	}
}
