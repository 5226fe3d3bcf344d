package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/quickdeck/internal/action"
	"github.com/justyntemme/quickdeck/internal/deck"
)

func TestLoadMissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default config written to %s: %v", path, err)
	}
	if m.ParseError() != nil {
		t.Errorf("unexpected parse error: %v", m.ParseError())
	}

	cfg := m.Get()
	if cfg.Grid.Rows != 3 || cfg.Grid.Cols != 4 {
		t.Errorf("expected default 3x4 grid, got %dx%d", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if len(cfg.Buttons) != 3 {
		t.Errorf("expected 3 starter buttons, got %d", len(cfg.Buttons))
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected light theme default, got %q", cfg.UI.Theme)
	}
}

func TestLoadInvalidJSONServesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom should not fail on parse errors, got %v", err)
	}

	if m.ParseError() == nil {
		t.Error("expected stored parse error")
	}

	// Defaults must be served so the app still starts
	cfg := m.Get()
	if cfg.Grid.Rows != 3 || cfg.Grid.Cols != 4 {
		t.Errorf("expected default grid after parse error, got %dx%d", cfg.Grid.Rows, cfg.Grid.Cols)
	}
}

func TestLoadClampsGridDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"grid": {"rows": 99, "cols": 0, "baseGap": 999},
		"ui": {"theme": ""},
		"behavior": {"scanDepth": -3}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom: %v", err)
	}

	cfg := m.Get()
	if cfg.Grid.Rows != MaxGridDim {
		t.Errorf("rows: expected clamp to %d, got %d", MaxGridDim, cfg.Grid.Rows)
	}
	if cfg.Grid.Cols != MinGridDim {
		t.Errorf("cols: expected clamp to %d, got %d", MinGridDim, cfg.Grid.Cols)
	}
	if cfg.Grid.BaseGap != MaxBaseGap {
		t.Errorf("baseGap: expected clamp to %d, got %d", MaxBaseGap, cfg.Grid.BaseGap)
	}
	if cfg.Behavior.ScanDepth != 1 {
		t.Errorf("scanDepth: expected floor of 1, got %d", cfg.Behavior.ScanDepth)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme: expected fallback to light, got %q", cfg.UI.Theme)
	}
}

func TestLoadDropsUnplaceableButtons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"grid": {"rows": 2, "cols": 2, "baseGap": 8},
		"buttons": [
			{
				"id": "keep",
				"position": {"row": 1, "col": 2},
				"label": "Notes",
				"action": {"type": "Open", "config": {"target": "/home/user/notes.txt"}}
			},
			{
				"id": "outside",
				"position": {"row": 5, "col": 5},
				"label": "Far",
				"action": {"type": "Open", "config": {"target": "/tmp"}}
			},
			{
				"id": "broken",
				"position": {"row": 2, "col": 1},
				"label": "NoPath",
				"action": {"type": "LaunchApp", "config": {}}
			}
		]
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom: %v", err)
	}

	cfg := m.Get()
	if len(cfg.Buttons) != 1 {
		t.Fatalf("expected 1 surviving button, got %d", len(cfg.Buttons))
	}
	if cfg.Buttons[0].ID != "keep" {
		t.Errorf("wrong button survived: %q", cfg.Buttons[0].ID)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom: %v", err)
	}

	buttons := []deck.Button{
		{
			ID:       "b1",
			Position: deck.Position{Row: 1, Col: 1},
			Label:    "notepad",
			Action:   action.LaunchApp(`C:\Windows\System32\notepad.exe`),
		},
		{
			ID:       "b2",
			Position: deck.Position{Row: 2, Col: 3},
			Label:    "Projects",
			Action:   action.Open("/home/user/projects"),
		},
	}
	m.SetGrid(4, 5)
	m.SetTheme("dark")
	m.SetButtons(buttons)

	fresh := NewManager()
	if err := fresh.loadFrom(path); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if diff := cmp.Diff(m.Get(), fresh.Get()); diff != "" {
		t.Errorf("config changed across save/load (-saved +reloaded):\n%s", diff)
	}
}

func TestSettersPersistImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom: %v", err)
	}

	m.SetShowLabels(false)
	m.SetCloseOnLaunch(true)
	m.SetTerminal("kitty")

	// Read the file directly, not through the manager
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk Config
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("saved config is not valid JSON: %v", err)
	}

	if onDisk.UI.ShowLabels {
		t.Error("ShowLabels not persisted")
	}
	if !onDisk.UI.CloseOnLaunch {
		t.Error("CloseOnLaunch not persisted")
	}
	if onDisk.Behavior.Terminal != "kitty" {
		t.Errorf("Terminal not persisted, got %q", onDisk.Behavior.Terminal)
	}
}

func TestSetGridClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m := NewManager()
	if err := m.loadFrom(path); err != nil {
		t.Fatalf("loadFrom: %v", err)
	}

	m.SetGrid(0, 100)
	cfg := m.Get()
	if cfg.Grid.Rows != MinGridDim || cfg.Grid.Cols != MaxGridDim {
		t.Errorf("expected %dx%d after clamping, got %dx%d",
			MinGridDim, MaxGridDim, cfg.Grid.Rows, cfg.Grid.Cols)
	}
}

func TestIsDarkMode(t *testing.T) {
	m := NewManager()
	if m.IsDarkMode() {
		t.Error("default config should not be dark mode")
	}
	m.config.UI.Theme = "dark"
	if !m.IsDarkMode() {
		t.Error("expected dark mode with dark theme")
	}
}

func TestConfigPathLocation(t *testing.T) {
	p := ConfigPath()
	want := filepath.Join(".config", "quickdeck", "config.json")
	if !strings.HasSuffix(p, want) {
		t.Errorf("ConfigPath() = %q, expected suffix %q", p, want)
	}
}
