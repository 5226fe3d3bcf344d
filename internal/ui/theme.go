package ui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/quickdeck/internal/debug"
)

// ThemePreset is one named color scheme. Presets come from the two builtins
// plus any YAML files in the themes directory. Colors left empty in a file
// fall back to the builtin the preset is based on (light or dark).
type ThemePreset struct {
	Name   string      `yaml:"name"`
	Dark   bool        `yaml:"dark"`
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors holds the overridable palette entries as "#rrggbb" strings.
type ThemeColors struct {
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	Border     string `yaml:"border"`
	Cell       string `yaml:"cell"`
	CellHover  string `yaml:"cellHover"`
	CellEmpty  string `yaml:"cellEmpty"`
	Accent     string `yaml:"accent"`
	Success    string `yaml:"success"`
	Danger     string `yaml:"danger"`
}

// BuiltinThemes returns the light and dark presets.
func BuiltinThemes() []ThemePreset {
	return []ThemePreset{
		{Name: "light"},
		{Name: "dark", Dark: true},
	}
}

// LoadThemeDir reads YAML theme presets from dir. Unreadable or malformed
// files are skipped; a missing directory yields no presets and no error.
func LoadThemeDir(dir string) []ThemePreset {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var presets []ThemePreset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			debug.Log(debug.UI, "Theme file unreadable: %s: %v", path, err)
			continue
		}
		var preset ThemePreset
		if err := yaml.Unmarshal(data, &preset); err != nil {
			debug.Log(debug.UI, "Theme file malformed: %s: %v", path, err)
			continue
		}
		if preset.Name == "" {
			preset.Name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}
		presets = append(presets, preset)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets
}

// parseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.NRGBA{}, false
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, false
		}
	default:
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, true
}

// basePalette resets the col* variables to one of the builtin schemes.
func basePalette(dark bool) {
	if dark {
		colBg = color.NRGBA{R: 24, G: 25, B: 28, A: 255}
		colText = color.NRGBA{R: 230, G: 230, B: 232, A: 255}
		colMuted = color.NRGBA{R: 150, G: 152, B: 158, A: 255}
		colSurface = color.NRGBA{R: 36, G: 37, B: 42, A: 255}
		colBorder = color.NRGBA{R: 62, G: 64, B: 70, A: 255}
		colCell = color.NRGBA{R: 44, G: 46, B: 52, A: 255}
		colCellHover = color.NRGBA{R: 58, G: 62, B: 74, A: 255}
		colCellEmpty = color.NRGBA{R: 32, G: 33, B: 37, A: 255}
		colAccent = color.NRGBA{R: 99, G: 150, B: 245, A: 255}
		colSuccess = color.NRGBA{R: 72, G: 180, B: 97, A: 255}
		colDanger = color.NRGBA{R: 235, G: 87, B: 100, A: 255}
		colDisabled = color.NRGBA{R: 110, G: 112, B: 118, A: 255}
		colCodeBg = color.NRGBA{R: 32, G: 33, B: 37, A: 255}
		colCodeBorder = color.NRGBA{R: 58, G: 60, B: 66, A: 255}
		colQuoteBg = color.NRGBA{R: 30, G: 31, B: 35, A: 255}
		colQuoteLine = color.NRGBA{R: 90, G: 92, B: 98, A: 255}
		return
	}
	colBg = color.NRGBA{R: 245, G: 245, B: 247, A: 255}
	colText = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	colMuted = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colSurface = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBorder = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colCell = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colCellHover = color.NRGBA{R: 232, G: 240, B: 254, A: 255}
	colCellEmpty = color.NRGBA{R: 238, G: 238, B: 240, A: 255}
	colAccent = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colSuccess = color.NRGBA{R: 40, G: 167, B: 69, A: 255}
	colDanger = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colDisabled = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colCodeBg = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colCodeBorder = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colQuoteBg = color.NRGBA{R: 248, G: 248, B: 248, A: 255}
	colQuoteLine = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
}

// applyPreset installs a preset: builtin base first, then per-entry
// overrides from the preset's colors.
func applyPreset(p ThemePreset) {
	basePalette(p.Dark)

	set := func(dst *color.NRGBA, hex string) {
		if hex == "" {
			return
		}
		if c, ok := parseHexColor(hex); ok {
			*dst = c
		}
	}
	set(&colBg, p.Colors.Background)
	set(&colSurface, p.Colors.Surface)
	set(&colText, p.Colors.Text)
	set(&colMuted, p.Colors.Muted)
	set(&colBorder, p.Colors.Border)
	set(&colCell, p.Colors.Cell)
	set(&colCellHover, p.Colors.CellHover)
	set(&colCellEmpty, p.Colors.CellEmpty)
	set(&colAccent, p.Colors.Accent)
	set(&colSuccess, p.Colors.Success)
	set(&colDanger, p.Colors.Danger)

	colDropHint = colAccent
	colDropHint.A = 90
}

// findPreset resolves a theme name against builtins plus extras. Unknown
// names fall back to light.
func findPreset(name string, extras []ThemePreset) ThemePreset {
	for _, p := range extras {
		if p.Name == name {
			return p
		}
	}
	for _, p := range BuiltinThemes() {
		if p.Name == name {
			return p
		}
	}
	return ThemePreset{Name: "light"}
}
