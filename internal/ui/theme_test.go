package ui

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}, true},
		{"#4285f4", color.NRGBA{R: 66, G: 133, B: 244, A: 255}, true},
		{"4285f4", color.NRGBA{R: 66, G: 133, B: 244, A: 255}, true},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{" #000000 ", color.NRGBA{A: 255}, true},
		{"#12345", color.NRGBA{}, false},
		{"#gghhii", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := parseHexColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadThemeDir(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("solarized.yaml", "name: solarized\ndark: false\ncolors:\n  background: \"#fdf6e3\"\n  accent: \"#268bd2\"\n")
	write("noname.yml", "dark: true\ncolors:\n  background: \"#002b36\"\n")
	write("broken.yaml", "{not yaml")
	write("ignored.txt", "name: nope")

	presets := LoadThemeDir(dir)
	if len(presets) != 2 {
		t.Fatalf("LoadThemeDir returned %d presets, want 2: %+v", len(presets), presets)
	}
	// Sorted by name: "noname" before "solarized".
	if presets[0].Name != "noname" || !presets[0].Dark {
		t.Errorf("presets[0] = %+v, want dark preset named after file", presets[0])
	}
	if presets[1].Name != "solarized" || presets[1].Colors.Accent != "#268bd2" {
		t.Errorf("presets[1] = %+v, want solarized with accent", presets[1])
	}
}

func TestLoadThemeDirMissing(t *testing.T) {
	if presets := LoadThemeDir(filepath.Join(t.TempDir(), "nope")); presets != nil {
		t.Errorf("LoadThemeDir on missing dir = %+v, want nil", presets)
	}
}

func TestApplyPresetOverridesBase(t *testing.T) {
	defer basePalette(false)

	applyPreset(ThemePreset{
		Name: "custom",
		Dark: true,
		Colors: ThemeColors{
			Accent: "#ff8800",
		},
	})
	if colAccent != (color.NRGBA{R: 255, G: 136, B: 0, A: 255}) {
		t.Errorf("colAccent = %v, want override", colAccent)
	}
	// Unset entries come from the dark base.
	if colBg != (color.NRGBA{R: 24, G: 25, B: 28, A: 255}) {
		t.Errorf("colBg = %v, want dark base", colBg)
	}
	if colDropHint.A != 90 {
		t.Errorf("colDropHint.A = %d, want 90", colDropHint.A)
	}
}

func TestFindPreset(t *testing.T) {
	extras := []ThemePreset{{Name: "solarized", Dark: false}}

	if p := findPreset("dark", extras); !p.Dark {
		t.Errorf("findPreset(dark) = %+v, want builtin dark", p)
	}
	if p := findPreset("solarized", extras); p.Name != "solarized" {
		t.Errorf("findPreset(solarized) = %+v", p)
	}
	if p := findPreset("missing", extras); p.Name != "light" {
		t.Errorf("findPreset(missing) = %+v, want light fallback", p)
	}
}
