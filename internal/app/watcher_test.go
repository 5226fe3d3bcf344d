package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitNotify drains one notification or fails after the timeout.
func waitNotify(t *testing.T, cw *ConfigWatcher, timeout time.Duration) string {
	t.Helper()
	select {
	case p := <-cw.Notify():
		return p
	case <-time.After(timeout):
		t.Fatal("no notification before timeout")
		return ""
	}
}

func TestConfigWatcherNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfg, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(cfg, 30)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer cw.Close()

	if err := os.WriteFile(cfg, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := waitNotify(t, cw, 3*time.Second); got != filepath.Clean(cfg) {
		t.Errorf("notification path: got %q, expected %q", got, cfg)
	}
}

func TestConfigWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfg, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(cfg, 30)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer cw.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-cw.Notify():
		t.Errorf("unexpected notification for sibling write: %q", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcherSeesRenameReplace(t *testing.T) {
	// Editors often save by writing a temp file and renaming it over the
	// target; the watcher must report that as a change to the target.
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfg, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(cfg, 30)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer cw.Close()

	tmp := filepath.Join(dir, "config.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{"a":2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, cfg); err != nil {
		t.Fatal(err)
	}

	waitNotify(t, cw, 3*time.Second)
}

func TestConfigWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfg, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cw, err := NewConfigWatcher(cfg, 50)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer cw.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(cfg, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	waitNotify(t, cw, 3*time.Second)

	// The burst already ended, so no second notification should follow.
	select {
	case <-cw.Notify():
		t.Error("burst produced a second notification")
	case <-time.After(300 * time.Millisecond):
	}
}
