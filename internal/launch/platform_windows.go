//go:build windows

package launch

import (
	"os/exec"

	"github.com/justyntemme/quickdeck/internal/config"
)

// platformOpen opens the target using the Windows 'start' command.
func platformOpen(target string) error {
	// 'cmd /c start "" "path"' is the standard way to launch files in Windows
	return exec.Command("cmd", "/c", "start", "", target).Start()
}

// platformOpenTerminal opens a terminal in the given directory, optionally
// running a command in it.
func platformOpenTerminal(id, dir, command string, env map[string]string) error {
	term, ok := config.PreferredTerminal(id)
	if !ok {
		term = config.TerminalInfo{ID: "cmd", Cmd: "cmd.exe"}
	}

	name, argv := terminalArgv(term.ID, dir, command)
	cmd := exec.Command(name, argv...)
	cmd.Env = mergeEnv(env)
	return cmd.Start()
}

// terminalArgv builds the executable name and argument list for a Windows
// terminal. cmd is wrapped in 'start' so it gets its own console window.
func terminalArgv(termID, dir, command string) (string, []string) {
	switch termID {
	case "wt":
		argv := []string{"-d", dir}
		if command != "" {
			argv = append(argv, "cmd", "/k", command)
		}
		return "wt.exe", argv

	case "pwsh", "powershell":
		ps := "Set-Location -LiteralPath '" + dir + "'"
		if command != "" {
			ps += "; " + command
		}
		return termID + ".exe", []string{"-NoExit", "-Command", ps}

	case "alacritty":
		argv := []string{"--working-directory", dir}
		if command != "" {
			argv = append(argv, "-e", "cmd", "/k", command)
		}
		return "alacritty.exe", argv

	case "wezterm":
		argv := []string{"start", "--cwd", dir}
		if command != "" {
			argv = append(argv, "--", "cmd", "/k", command)
		}
		return "wezterm.exe", argv

	default:
		argv := []string{"/c", "start", "", "/d", dir, "cmd"}
		if command != "" {
			argv = append(argv, "/k", command)
		}
		return "cmd", argv
	}
}
