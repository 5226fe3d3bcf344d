package store

import (
	"path/filepath"
	"testing"
	"time"
)

// newTestDB opens a store in a temp dir and runs its worker.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	d := NewDB()
	if err := d.Open(filepath.Join(t.TempDir(), "usage.db")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	go d.Start()
	t.Cleanup(func() {
		close(d.RequestChan)
		d.Close()
	})
	return d
}

// recv waits for the next store response.
func recv(t *testing.T, d *DB) Response {
	t.Helper()
	select {
	case resp := <-d.ResponseChan:
		return resp
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for store response")
		return Response{}
	}
}

func TestFetchStatsEmpty(t *testing.T) {
	d := newTestDB(t)

	d.RequestChan <- Request{Op: FetchStats}
	resp := recv(t, d)

	if resp.Op != FetchStats {
		t.Errorf("expected FetchStats response, got %v", resp.Op)
	}
	if resp.Err != nil {
		t.Errorf("unexpected error: %v", resp.Err)
	}
	if len(resp.Stats) != 0 {
		t.Errorf("expected no stats, got %d", len(resp.Stats))
	}
}

func TestRecordLaunchAggregates(t *testing.T) {
	d := newTestDB(t)

	d.RequestChan <- Request{Op: RecordLaunch, ButtonID: "b1", Label: "notepad", Target: `C:\Windows\notepad.exe`}
	d.RequestChan <- Request{Op: RecordLaunch, ButtonID: "b2", Label: "Home", Target: "/home/user"}
	d.RequestChan <- Request{Op: RecordLaunch, ButtonID: "b1", Label: "notepad", Target: `C:\Windows\notepad.exe`}

	// Each mutation triggers a stats fetch; the last reflects all three
	var resp Response
	for i := 0; i < 3; i++ {
		resp = recv(t, d)
	}

	if resp.Err != nil {
		t.Fatalf("unexpected error: %v", resp.Err)
	}
	if len(resp.Stats) != 2 {
		t.Fatalf("expected 2 buttons in stats, got %d", len(resp.Stats))
	}

	// Most-launched button sorts first
	first := resp.Stats[0]
	if first.ButtonID != "b1" || first.Count != 2 {
		t.Errorf("expected b1 with 2 launches first, got %s with %d", first.ButtonID, first.Count)
	}
	if first.Label != "notepad" {
		t.Errorf("expected label from launch record, got %q", first.Label)
	}
	if first.LastLaunch.IsZero() {
		t.Error("expected last launch timestamp to be set")
	}

	if resp.Stats[1].ButtonID != "b2" || resp.Stats[1].Count != 1 {
		t.Errorf("expected b2 with 1 launch second, got %+v", resp.Stats[1])
	}
}

func TestClearHistory(t *testing.T) {
	d := newTestDB(t)

	d.RequestChan <- Request{Op: RecordLaunch, ButtonID: "b1", Label: "x", Target: "/x"}
	recv(t, d)

	d.RequestChan <- Request{Op: ClearHistory}
	resp := recv(t, d)

	if resp.Err != nil {
		t.Fatalf("unexpected error: %v", resp.Err)
	}
	if len(resp.Stats) != 0 {
		t.Errorf("expected empty stats after clear, got %d", len(resp.Stats))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	d := newTestDB(t)

	d.RequestChan <- Request{Op: SaveSetting, Key: "window.width", Value: "800"}
	resp := recv(t, d)

	if resp.Op != FetchSettings {
		t.Errorf("expected FetchSettings after save, got %v", resp.Op)
	}
	if resp.Settings["window.width"] != "800" {
		t.Errorf("expected saved setting, got %q", resp.Settings["window.width"])
	}

	// Saving again upserts
	d.RequestChan <- Request{Op: SaveSetting, Key: "window.width", Value: "1024"}
	resp = recv(t, d)
	if resp.Settings["window.width"] != "1024" {
		t.Errorf("expected upserted setting, got %q", resp.Settings["window.width"])
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	d := NewDB()
	path := filepath.Join(t.TempDir(), "nested", "dir", "usage.db")
	if err := d.Open(path); err != nil {
		t.Fatalf("Open should create parent directories: %v", err)
	}
	d.Close()
}

func TestDefaultPathLocation(t *testing.T) {
	p := DefaultPath()
	want := filepath.Join(".config", "quickdeck", "usage.db")
	if filepath.Base(p) != "usage.db" {
		t.Errorf("DefaultPath() = %q, expected usage.db file", p)
	}
	if got := p[len(p)-len(want):]; got != want {
		t.Errorf("DefaultPath() = %q, expected suffix %q", p, want)
	}
}
