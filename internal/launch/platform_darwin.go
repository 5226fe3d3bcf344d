//go:build darwin

package launch

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/justyntemme/quickdeck/internal/config"
)

// platformOpen opens the target using the macOS 'open' command.
func platformOpen(target string) error {
	return exec.Command("open", target).Start()
}

// platformOpenTerminal opens a terminal in the given directory, optionally
// running a command. The stock terminals are driven over AppleScript; CLI
// emulators get their native flags.
func platformOpenTerminal(id, dir, command string, env map[string]string) error {
	term, ok := config.PreferredTerminal(id)
	if !ok {
		term = config.TerminalInfo{ID: "terminal", Name: "Terminal"}
	}

	switch term.ID {
	case "terminal":
		script := `tell application "Terminal"
	activate
	do script ` + strconv.Quote(shellCommand(dir, command)) + `
end tell`
		return exec.Command("osascript", "-e", script).Start()

	case "iterm2":
		script := `tell application "iTerm"
	activate
	create window with default profile
	tell current session of current window to write text ` + strconv.Quote(shellCommand(dir, command)) + `
end tell`
		return exec.Command("osascript", "-e", script).Start()

	default:
		cmd := exec.Command(term.Cmd, terminalArgv(term.ID, dir, command)...)
		cmd.Env = mergeEnv(env)
		return cmd.Start()
	}
}

// terminalArgv builds the argument list for CLI-launchable emulators.
func terminalArgv(termID, dir, command string) []string {
	var argv []string

	switch termID {
	case "kitty":
		argv = []string{"--directory", dir}
		if command != "" {
			argv = append(argv, "sh", "-c", command)
		}
	case "alacritty":
		argv = []string{"--working-directory", dir}
		if command != "" {
			argv = append(argv, "-e", "sh", "-c", command)
		}
	case "wezterm":
		argv = []string{"start", "--cwd", dir}
		if command != "" {
			argv = append(argv, "--", "sh", "-c", command)
		}
	case "ghostty":
		argv = []string{"--working-directory=" + dir}
		if command != "" {
			argv = append(argv, "-e", command)
		}
	default:
		argv = []string{"--working-directory", dir}
		if command != "" {
			argv = append(argv, "-e", "sh", "-c", command)
		}
	}

	return argv
}

// shellCommand builds the shell line typed into a fresh terminal session.
func shellCommand(dir, command string) string {
	line := "cd " + shellQuote(dir)
	if command != "" {
		line += " && " + command
	}
	return line
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
