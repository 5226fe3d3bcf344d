package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/justyntemme/quickdeck/internal/action"
	"github.com/justyntemme/quickdeck/internal/deck"
)

// Grid dimension limits applied when loading.
const (
	MinGridDim = 1
	MaxGridDim = 12
	MaxBaseGap = 64
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Grid     GridConfig     `json:"grid"`
	UI       UIConfig       `json:"ui"`
	Behavior BehaviorConfig `json:"behavior"`
	Hotkeys  HotkeysConfig  `json:"hotkeys"`
	Buttons  []deck.Button  `json:"buttons"`
}

// GridConfig holds the deck dimensions
type GridConfig struct {
	Rows    int `json:"rows"`
	Cols    int `json:"cols"`
	BaseGap int `json:"baseGap"` // Gap between cells in px, before responsive scaling
}

// Bounds returns the grid dimensions as deck bounds.
func (g GridConfig) Bounds() deck.Bounds {
	return deck.Bounds{Rows: g.Rows, Cols: g.Cols}
}

// UIConfig holds appearance settings
type UIConfig struct {
	Theme         string `json:"theme"` // "light", "dark", or a theme preset name
	ShowLabels    bool   `json:"showLabels"`
	CloseOnLaunch bool   `json:"closeOnLaunch"` // Minimize the deck after a successful launch
}

// BehaviorConfig holds behavior settings
type BehaviorConfig struct {
	Terminal  string `json:"terminal"`  // Terminal ID override, empty = auto-detect
	ScanDepth int    `json:"scanDepth"` // Max depth for Import Folder
}

// HotkeysConfig holds the configurable keyboard shortcuts as strings
// like "Ctrl+Shift+K". Empty entries disable the shortcut.
type HotkeysConfig struct {
	Search       string `json:"search"`
	Help         string `json:"help"`
	Settings     string `json:"settings"`
	NewButton    string `json:"newButton"`
	EditButton   string `json:"editButton"`
	RemoveButton string `json:"removeButton"`
	ImportFolder string `json:"importFolder"`
	ToggleLabels string `json:"toggleLabels"`
	Quit         string `json:"quit"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration: a 3x4 deck seeded with a
// home folder, a downloads folder, and a terminal button.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	buttons := []deck.Button{
		starterButton("Home", action.Open(home), deck.Position{Row: 1, Col: 1}),
		starterButton("Downloads", action.Open(filepath.Join(home, "Downloads")), deck.Position{Row: 1, Col: 2}),
		starterButton("Terminal", action.Terminal(action.TerminalConfig{WorkDir: home}), deck.Position{Row: 1, Col: 3}),
	}

	return &Config{
		Grid: GridConfig{
			Rows:    3,
			Cols:    4,
			BaseGap: 8,
		},
		UI: UIConfig{
			Theme:         "light",
			ShowLabels:    true,
			CloseOnLaunch: false,
		},
		Behavior: BehaviorConfig{
			Terminal:  "",
			ScanDepth: 2,
		},
		Hotkeys: DefaultHotkeys(),
		Buttons: buttons,
	}
}

func starterButton(label string, act action.Action, pos deck.Position) deck.Button {
	b := deck.NewButton(label, act)
	b.Position = pos
	return b
}

// ConfigPath returns the config file path: ~/.config/quickdeck/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quickdeck", "config.json")
}

// ThemesDir returns the directory scanned for YAML theme presets.
func ThemesDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quickdeck", "themes")
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	return m.loadFrom(ConfigPath())
}

func (m *Manager) loadFrom(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = path
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	// Try to read existing config
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		// Create default config file
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		log.Printf("Config: default config created successfully")
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Parse JSON
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Store error for UI display, use defaults
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	cfg.normalize()
	log.Printf("Config: loaded from %s (%d buttons)", m.path, len(cfg.Buttons))
	m.config = &cfg
	return nil
}

// normalize clamps dimensions into their valid ranges and drops buttons that
// cannot be placed, so a hand-edited config degrades instead of breaking.
func (c *Config) normalize() {
	c.Grid.Rows = clamp(c.Grid.Rows, MinGridDim, MaxGridDim)
	c.Grid.Cols = clamp(c.Grid.Cols, MinGridDim, MaxGridDim)
	c.Grid.BaseGap = clamp(c.Grid.BaseGap, 0, MaxBaseGap)
	if c.Behavior.ScanDepth < 1 {
		c.Behavior.ScanDepth = 1
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "light"
	}

	bounds := c.Grid.Bounds()
	kept := c.Buttons[:0]
	for _, b := range c.Buttons {
		if !bounds.Contains(b.Position) {
			log.Printf("Config: dropping button %q at %+v outside %dx%d grid",
				b.Label, b.Position, bounds.Rows, bounds.Cols)
			continue
		}
		if err := b.Action.Validate(); err != nil {
			log.Printf("Config: dropping button %q: %v", b.Label, err)
			continue
		}
		kept = append(kept, b)
	}
	c.Buttons = kept
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// Path returns the loaded config file path.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.path == "" {
		return ConfigPath()
	}
	return m.path
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	m.Save()
}

// SetShowLabels updates the label visibility setting
func (m *Manager) SetShowLabels(show bool) {
	m.mu.Lock()
	m.config.UI.ShowLabels = show
	m.mu.Unlock()
	m.Save()
}

// SetCloseOnLaunch updates the close-on-launch behavior
func (m *Manager) SetCloseOnLaunch(close bool) {
	m.mu.Lock()
	m.config.UI.CloseOnLaunch = close
	m.mu.Unlock()
	m.Save()
}

// SetTerminal updates the preferred terminal ID
func (m *Manager) SetTerminal(id string) {
	m.mu.Lock()
	m.config.Behavior.Terminal = id
	m.mu.Unlock()
	m.Save()
}

// SetGrid updates the grid dimensions, clamped to the valid range
func (m *Manager) SetGrid(rows, cols int) {
	m.mu.Lock()
	m.config.Grid.Rows = clamp(rows, MinGridDim, MaxGridDim)
	m.config.Grid.Cols = clamp(cols, MinGridDim, MaxGridDim)
	m.mu.Unlock()
	m.Save()
}

// SetBaseGap updates the cell gap, clamped to the valid range
func (m *Manager) SetBaseGap(gap int) {
	m.mu.Lock()
	m.config.Grid.BaseGap = clamp(gap, 0, MaxBaseGap)
	m.mu.Unlock()
	m.Save()
}

// SetScanDepth updates the folder import recursion depth
func (m *Manager) SetScanDepth(depth int) {
	m.mu.Lock()
	if depth < 1 {
		depth = 1
	}
	m.config.Behavior.ScanDepth = depth
	m.mu.Unlock()
	m.Save()
}

// SetButtons replaces the persisted button list. This is the save path for
// every deck mutation: drops, edits, moves, and removals.
func (m *Manager) SetButtons(buttons []deck.Button) {
	m.mu.Lock()
	m.config.Buttons = make([]deck.Button, len(buttons))
	copy(m.config.Buttons, buttons)
	m.mu.Unlock()
	m.Save()
}

// IsDarkMode returns true if the dark theme is active
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// GenerateConfig backs up existing config and creates a fresh default config
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig() (backupPath string, err error) {
	configPath := ConfigPath()

	// Check if existing config exists
	if _, err := os.Stat(configPath); err == nil {
		// Create backup with timestamp
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(configPath), "config.backup."+timestamp+".json")

		// Read existing config
		data, err := os.ReadFile(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}

		// Write backup
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write fresh default config
	defaultCfg := DefaultConfig()
	data, err := json.MarshalIndent(defaultCfg, "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}
