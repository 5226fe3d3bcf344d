// Package launch dispatches button actions to the operating system: starting
// executables, opening files and URLs with the platform handler, and spawning
// terminal emulators.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/justyntemme/quickdeck/internal/action"
	"github.com/justyntemme/quickdeck/internal/debug"
)

// Launcher executes actions. Terminal holds the configured terminal ID used
// when a Terminal action doesn't name one itself.
type Launcher struct {
	Terminal string
}

// Result reports the outcome of an asynchronous launch, keyed back to the
// button that triggered it.
type Result struct {
	ButtonID string
	Label    string
	Err      error
}

// Launch dispatches the action. Processes are started detached; errors cover
// validation and spawn failures, not the child's exit status.
func (l *Launcher) Launch(act action.Action) error {
	if err := act.Validate(); err != nil {
		return err
	}

	switch act.Type {
	case action.TypeLaunchApp:
		return l.launchApp(act.LaunchApp)
	case action.TypeOpen:
		debug.Log(debug.LAUNCH, "open %s", act.Open.Target)
		return platformOpen(act.Open.Target)
	case action.TypeTerminal:
		return l.openTerminal(act.Terminal)
	default:
		return fmt.Errorf("unknown action type %q", act.Type)
	}
}

// Run executes the action and packages the outcome for the result channel.
func (l *Launcher) Run(buttonID, label string, act action.Action) Result {
	return Result{ButtonID: buttonID, Label: label, Err: l.Launch(act)}
}

func (l *Launcher) launchApp(cfg *action.LaunchAppConfig) error {
	debug.Log(debug.LAUNCH, "launch %s args=%v workdir=%q", cfg.Path, cfg.Args, cfg.WorkDir)

	cmd := exec.Command(cfg.Path, cfg.Args...)
	if cfg.WorkDir != "" {
		cmd.Dir = cfg.WorkDir
	}
	cmd.Env = mergeEnv(cfg.Env)
	return cmd.Start()
}

func (l *Launcher) openTerminal(cfg *action.TerminalConfig) error {
	id := cfg.Terminal
	if id == "" {
		id = l.Terminal
	}
	dir := cfg.WorkDir
	if dir == "" {
		dir, _ = os.UserHomeDir()
	}
	debug.Log(debug.LAUNCH, "terminal id=%q workdir=%q command=%q", id, dir, cfg.Command)
	return platformOpenTerminal(id, dir, cfg.Command, cfg.Env)
}

// mergeEnv overlays the action's environment on the parent's. A nil return
// makes exec inherit the parent environment unchanged.
func mergeEnv(overlay map[string]string) []string {
	if len(overlay) == 0 {
		return nil
	}

	environ := os.Environ()
	out := make([]string, 0, len(environ)+len(overlay))
	replaced := make(map[string]bool, len(overlay))

	for _, kv := range environ {
		k, _, _ := strings.Cut(kv, "=")
		if v, ok := overlay[k]; ok {
			out = append(out, k+"="+v)
			replaced[k] = true
			continue
		}
		out = append(out, kv)
	}

	// Keys not present in the parent environment, sorted for determinism
	extra := make([]string, 0, len(overlay))
	for k := range overlay {
		if !replaced[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, k+"="+overlay[k])
	}
	return out
}
