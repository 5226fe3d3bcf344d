package deck

import (
	"strings"

	"github.com/justyntemme/quickdeck/internal/action"
)

// unknownName is the label fallback when a path yields no filename at all.
const unknownName = "Unknown"

// ButtonFromPath builds a button descriptor from one dropped file path.
// Executables (extension "exe", case-insensitive) become LaunchApp actions
// carrying the full path; everything else becomes an Open action. The path
// passes into the action verbatim: separators, spaces, brackets, and UNC
// prefixes are preserved. Total over any non-empty string; the returned
// button has no position assigned.
func ButtonFromPath(path string) Button {
	name := fileNameOf(path)
	ext, hasDot := extensionOf(name)
	executable := hasDot && ext == "exe"

	label := name
	if hasDot {
		label = name[:strings.LastIndex(name, ".")]
	}

	var act action.Action
	if executable {
		act = action.LaunchApp(path)
	} else {
		act = action.Open(path)
	}

	b := NewButton(label, act)
	return b
}

// fileNameOf extracts the last non-empty path segment. Backslash is the
// separator when present (Windows and UNC paths), slash otherwise.
func fileNameOf(path string) string {
	sep := "/"
	if strings.Contains(path, `\`) {
		sep = `\`
	}

	parts := strings.Split(path, sep)
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return unknownName
}

// extensionOf returns the final dot-segment of name, lower-cased. Without a
// dot the whole lower-cased name is returned and hasDot is false; callers
// must treat that case as non-executable.
func extensionOf(name string) (ext string, hasDot bool) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return strings.ToLower(name), false
	}
	return strings.ToLower(name[idx+1:]), true
}
