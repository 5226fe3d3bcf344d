// Package action defines the tagged union of behaviors a deck button can
// trigger. Every action has exactly one variant config matching its type;
// dispatch over the type is exhaustive wherever actions are consumed.
package action

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type identifies an action variant. The values double as the "type" tag in
// the JSON config format.
type Type string

const (
	TypeLaunchApp Type = "LaunchApp"
	TypeOpen      Type = "Open"
	TypeTerminal  Type = "Terminal"
)

// Types lists all known action types in display order.
func Types() []Type {
	return []Type{TypeLaunchApp, TypeOpen, TypeTerminal}
}

// LaunchAppConfig launches an executable directly.
type LaunchAppConfig struct {
	Path    string            `json:"path"`
	Args    []string          `json:"args,omitempty"`
	WorkDir string            `json:"workdir,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// OpenConfig opens a file, directory, or URL with the platform handler.
type OpenConfig struct {
	Target string `json:"target"`
}

// TerminalConfig opens a terminal, optionally in a working directory and
// optionally running a command. Terminal selects a specific emulator by ID;
// empty means the configured or detected default.
type TerminalConfig struct {
	Terminal string            `json:"terminal,omitempty"`
	WorkDir  string            `json:"workdir,omitempty"`
	Command  string            `json:"command,omitempty"`
	Env      map[string]string `json:"env,omitempty"`
}

// Action is one button behavior. Exactly one of the variant pointers is
// non-nil, and it matches Type.
type Action struct {
	Type      Type
	LaunchApp *LaunchAppConfig
	Open      *OpenConfig
	Terminal  *TerminalConfig
}

// LaunchApp builds a LaunchApp action for the given executable path.
func LaunchApp(path string) Action {
	return Action{Type: TypeLaunchApp, LaunchApp: &LaunchAppConfig{Path: path}}
}

// Open builds an Open action for the given target.
func Open(target string) Action {
	return Action{Type: TypeOpen, Open: &OpenConfig{Target: target}}
}

// Terminal builds a Terminal action.
func Terminal(cfg TerminalConfig) Action {
	c := cfg
	return Action{Type: TypeTerminal, Terminal: &c}
}

// Validate checks that the action carries exactly the variant its type names
// and that required fields are present.
func (a Action) Validate() error {
	variants := 0
	if a.LaunchApp != nil {
		variants++
	}
	if a.Open != nil {
		variants++
	}
	if a.Terminal != nil {
		variants++
	}
	if variants != 1 {
		return fmt.Errorf("action %q: expected exactly one config, got %d", a.Type, variants)
	}

	switch a.Type {
	case TypeLaunchApp:
		if a.LaunchApp == nil {
			return fmt.Errorf("action %q: missing launch config", a.Type)
		}
		if a.LaunchApp.Path == "" {
			return fmt.Errorf("action %q: path is required", a.Type)
		}
	case TypeOpen:
		if a.Open == nil {
			return fmt.Errorf("action %q: missing open config", a.Type)
		}
		if a.Open.Target == "" {
			return fmt.Errorf("action %q: target is required", a.Type)
		}
	case TypeTerminal:
		if a.Terminal == nil {
			return fmt.Errorf("action %q: missing terminal config", a.Type)
		}
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	return nil
}

// Target returns the primary string the action operates on: the executable
// path, the open target, or the terminal command/workdir. Used for display
// and for the clipboard "Copy Path" menu item.
func (a Action) Target() string {
	switch a.Type {
	case TypeLaunchApp:
		if a.LaunchApp != nil {
			return a.LaunchApp.Path
		}
	case TypeOpen:
		if a.Open != nil {
			return a.Open.Target
		}
	case TypeTerminal:
		if a.Terminal != nil {
			if a.Terminal.Command != "" {
				return a.Terminal.Command
			}
			return a.Terminal.WorkDir
		}
	}
	return ""
}

// Describe returns a short human-readable summary for tooltips and menus.
func (a Action) Describe() string {
	switch a.Type {
	case TypeLaunchApp:
		if a.LaunchApp == nil {
			return "Launch"
		}
		if len(a.LaunchApp.Args) > 0 {
			return fmt.Sprintf("Launch %s %s", a.LaunchApp.Path, strings.Join(a.LaunchApp.Args, " "))
		}
		return "Launch " + a.LaunchApp.Path
	case TypeOpen:
		if a.Open == nil {
			return "Open"
		}
		return "Open " + a.Open.Target
	case TypeTerminal:
		if a.Terminal == nil || a.Terminal.Command == "" {
			return "Open terminal"
		}
		return "Terminal: " + a.Terminal.Command
	}
	return string(a.Type)
}

// envelope is the wire form: {"type": "...", "config": {...}}.
type envelope struct {
	Type   Type            `json:"type"`
	Config json.RawMessage `json:"config"`
}

// MarshalJSON encodes the action as a type tag plus the variant config.
func (a Action) MarshalJSON() ([]byte, error) {
	var cfg any
	switch a.Type {
	case TypeLaunchApp:
		cfg = a.LaunchApp
	case TypeOpen:
		cfg = a.Open
	case TypeTerminal:
		cfg = a.Terminal
	default:
		return nil, fmt.Errorf("marshal: unknown action type %q", a.Type)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: a.Type, Config: raw})
}

// UnmarshalJSON decodes the tagged form, rejecting unknown types by name so
// config errors point at the offending entry.
func (a *Action) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*a = Action{Type: env.Type}
	cfg := env.Config
	if len(cfg) == 0 {
		cfg = []byte("{}")
	}

	switch env.Type {
	case TypeLaunchApp:
		a.LaunchApp = &LaunchAppConfig{}
		return json.Unmarshal(cfg, a.LaunchApp)
	case TypeOpen:
		a.Open = &OpenConfig{}
		return json.Unmarshal(cfg, a.Open)
	case TypeTerminal:
		a.Terminal = &TerminalConfig{}
		return json.Unmarshal(cfg, a.Terminal)
	default:
		return fmt.Errorf("unknown action type %q", env.Type)
	}
}
