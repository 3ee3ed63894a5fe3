package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// nextEvent waits for one path on w.Events.
func nextEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name, ok := <-w.Events:
		if !ok {
			t.Fatal("events channel closed")
		}
		return name
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
	return ""
}

// expectQuiet fails if any path arrives on w.Events within d.
func expectQuiet(t *testing.T, w *Watcher, d time.Duration) {
	t.Helper()
	select {
	case name := <-w.Events:
		t.Errorf("unexpected event for %q", name)
	case <-time.After(d):
	}
}

func TestWatcherReportsContentFilesOnly(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	levelPath := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(levelPath, []byte(testLevelB), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if name := nextEvent(t, w); name != levelPath {
		t.Errorf("event for %q, expected %q", name, levelPath)
	}
	// Create and write of the same file collapse into one event.
	expectQuiet(t, w, 300*time.Millisecond)
}

func TestWatcherSubdirectoriesAndYml(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "world-1")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	manifest := filepath.Join(sub, "world.yml")
	if err := os.WriteFile(manifest, []byte(testManifest), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if name := nextEvent(t, w); name != manifest {
		t.Errorf("event for %q, expected %q", name, manifest)
	}
}

func TestWatcherDebouncesAndReportsLaterChanges(t *testing.T) {
	dir := t.TempDir()
	levelPath := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(levelPath, []byte(testLevelB), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// A burst of writes is reported once.
	for range 3 {
		if err := os.WriteFile(levelPath, []byte(testLevelB), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	if name := nextEvent(t, w); name != levelPath {
		t.Errorf("event for %q, expected %q", name, levelPath)
	}
	expectQuiet(t, w, 50*time.Millisecond)

	// Outside the window the same file is reported again.
	time.Sleep(2 * debounceWindow)
	if err := os.WriteFile(levelPath, []byte(testLevelB), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if name := nextEvent(t, w); name != levelPath {
		t.Errorf("event for %q, expected %q", name, levelPath)
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("events channel should be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("events channel still open after Close")
	}
	if _, ok := <-w.Errors; ok {
		t.Error("errors channel should be closed")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
