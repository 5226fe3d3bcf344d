//go:build linux

package launch

import (
	"os/exec"
	"strings"

	"github.com/justyntemme/quickdeck/internal/config"
)

// platformOpen opens the target using 'xdg-open' (default application).
func platformOpen(target string) error {
	return exec.Command("xdg-open", target).Start()
}

// platformOpenTerminal opens a terminal emulator in the given directory,
// optionally running a command in it.
func platformOpenTerminal(id, dir, command string, env map[string]string) error {
	term, ok := config.PreferredTerminal(id)
	if !ok {
		// No terminal emulator installed; let the desktop handle the directory
		return exec.Command("xdg-open", dir).Start()
	}

	cmd := exec.Command(term.Cmd, terminalArgv(term.ID, dir, command)...)
	cmd.Env = mergeEnv(env)
	return cmd.Start()
}

// terminalArgv builds the argument list for a terminal emulator. Each family
// has its own working-directory flag and exec convention.
func terminalArgv(termID, dir, command string) []string {
	var argv []string

	switch termID {
	case "konsole":
		argv = []string{"--workdir", dir}
		if command != "" {
			argv = append(argv, "-e", "sh", "-c", command)
		}
	case "alacritty":
		argv = []string{"--working-directory", dir}
		if command != "" {
			argv = append(argv, "-e", "sh", "-c", command)
		}
	case "kitty":
		argv = []string{"--directory", dir}
		if command != "" {
			argv = append(argv, "sh", "-c", command)
		}
	case "foot":
		argv = []string{"--working-directory", dir}
		if command != "" {
			argv = append(argv, "sh", "-c", command)
		}
	case "wezterm":
		argv = []string{"start", "--cwd", dir}
		if command != "" {
			argv = append(argv, "--", "sh", "-c", command)
		}
	case "gnome-terminal":
		argv = []string{"--working-directory=" + dir}
		if command != "" {
			argv = append(argv, "--", "sh", "-c", command)
		}
	case "xfce4-terminal", "mate-terminal", "terminator":
		argv = []string{"--working-directory=" + dir}
		if command != "" {
			argv = append(argv, "-x", "sh", "-c", command)
		}
	case "ghostty":
		argv = []string{"--working-directory=" + dir}
		if command != "" {
			argv = append(argv, "-e", command)
		}
	case "xterm", "x-terminal-emulator":
		shell := "cd " + shellQuote(dir) + " && exec ${SHELL:-sh} -l"
		if command != "" {
			shell = "cd " + shellQuote(dir) + " && " + command
		}
		argv = []string{"-e", "sh", "-c", shell}
	default:
		argv = []string{"--working-directory=" + dir}
		if command != "" {
			argv = append(argv, "-e", "sh", "-c", command)
		}
	}

	return argv
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
