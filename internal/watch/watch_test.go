package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	writeFile(t, path, "a = 1\n")

	var calls atomic.Int32
	w := New(path, func(string) error {
		calls.Add(1)
		return nil
	}, WithDebounce(20*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "a = 2\n")

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("reload not called after write")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	writeFile(t, path, "a = 1\n")

	var calls atomic.Int32
	w := New(path, func(string) error {
		calls.Add(1)
		return nil
	}, WithDebounce(20*time.Millisecond))
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.toml"), "b = 1\n")
	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("reload called %d times for sibling file, want 0", n)
	}
}

func TestStartAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	writeFile(t, path, "a = 1\n")

	w := New(path, func(string) error { return nil })
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Start(); err != ErrWatcherClosed {
		t.Errorf("Start() after Close error = %v, want ErrWatcherClosed", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.toml")
	writeFile(t, path, "a = 1\n")

	w := New(path, func(string) error { return nil })
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
