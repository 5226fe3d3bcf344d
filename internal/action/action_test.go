package action

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConstructors(t *testing.T) {
	la := LaunchApp(`C:\Tools\build.exe`)
	if la.Type != TypeLaunchApp {
		t.Errorf("LaunchApp: expected type %q, got %q", TypeLaunchApp, la.Type)
	}
	if la.LaunchApp == nil || la.LaunchApp.Path != `C:\Tools\build.exe` {
		t.Errorf("LaunchApp: path not preserved: %+v", la.LaunchApp)
	}
	if la.Open != nil || la.Terminal != nil {
		t.Error("LaunchApp: unexpected extra variant configs")
	}

	op := Open("/home/user/notes.txt")
	if op.Type != TypeOpen {
		t.Errorf("Open: expected type %q, got %q", TypeOpen, op.Type)
	}
	if op.Open == nil || op.Open.Target != "/home/user/notes.txt" {
		t.Errorf("Open: target not preserved: %+v", op.Open)
	}

	term := Terminal(TerminalConfig{Terminal: "kitty", WorkDir: "/src", Command: "make"})
	if term.Type != TypeTerminal {
		t.Errorf("Terminal: expected type %q, got %q", TypeTerminal, term.Type)
	}
	if term.Terminal == nil || term.Terminal.Command != "make" {
		t.Errorf("Terminal: command not preserved: %+v", term.Terminal)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		act     Action
		wantErr bool
	}{
		{"valid launch", LaunchApp("/usr/bin/gimp"), false},
		{"valid open", Open("https://example.com"), false},
		{"valid terminal empty", Terminal(TerminalConfig{}), false},
		{"launch missing path", Action{Type: TypeLaunchApp, LaunchApp: &LaunchAppConfig{}}, true},
		{"open missing target", Action{Type: TypeOpen, Open: &OpenConfig{}}, true},
		{"no variant", Action{Type: TypeOpen}, true},
		{"two variants", Action{Type: TypeOpen, Open: &OpenConfig{Target: "x"}, Terminal: &TerminalConfig{}}, true},
		{"mismatched variant", Action{Type: TypeLaunchApp, Open: &OpenConfig{Target: "x"}}, true},
		{"unknown type", Action{Type: "Reboot", Open: &OpenConfig{Target: "x"}}, true},
	}

	for _, tc := range testCases {
		err := tc.act.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		act  Action
	}{
		{"launch minimal", LaunchApp(`C:\Windows\System32\notepad.exe`)},
		{"launch full", Action{
			Type: TypeLaunchApp,
			LaunchApp: &LaunchAppConfig{
				Path:    "/usr/bin/code",
				Args:    []string{"--new-window", "/src"},
				WorkDir: "/src",
				Env:     map[string]string{"EDITOR_MODE": "dark"},
			},
		}},
		{"open path with spaces", Open(`C:\Program Files (x86)\My App\readme.txt`)},
		{"open unc", Open(`\\server\share\docs`)},
		{"terminal", Terminal(TerminalConfig{Terminal: "wezterm", WorkDir: "/tmp", Command: "htop"})},
	}

	for _, tc := range testCases {
		data, err := json.Marshal(tc.act)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}

		var got Action
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}

		if diff := cmp.Diff(tc.act, got); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestJSONTagFormat(t *testing.T) {
	data, err := json.Marshal(Open("/home/user"))
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["type"]; !ok {
		t.Error("encoded action missing \"type\" tag")
	}
	if _, ok := raw["config"]; !ok {
		t.Error("encoded action missing \"config\" object")
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"type":"Hibernate","config":{}}`), &a)
	if err == nil {
		t.Fatal("expected error for unknown action type")
	}
	if !strings.Contains(err.Error(), "Hibernate") {
		t.Errorf("error should name the unknown type, got: %v", err)
	}
}

func TestUnmarshalMissingConfig(t *testing.T) {
	// A bare type with no config decodes to the zero variant; Validate
	// catches missing required fields.
	var a Action
	if err := json.Unmarshal([]byte(`{"type":"Terminal"}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Terminal == nil {
		t.Fatal("expected terminal config to be allocated")
	}
	if err := a.Validate(); err != nil {
		t.Errorf("empty terminal config should validate, got: %v", err)
	}
}

func TestTarget(t *testing.T) {
	testCases := []struct {
		act      Action
		expected string
	}{
		{LaunchApp("/opt/app/bin/app"), "/opt/app/bin/app"},
		{Open("~/Downloads"), "~/Downloads"},
		{Terminal(TerminalConfig{Command: "npm start", WorkDir: "/web"}), "npm start"},
		{Terminal(TerminalConfig{WorkDir: "/web"}), "/web"},
	}

	for _, tc := range testCases {
		if got := tc.act.Target(); got != tc.expected {
			t.Errorf("Target(%s): expected %q, got %q", tc.act.Type, tc.expected, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	testCases := []struct {
		act      Action
		contains string
	}{
		{LaunchApp("/usr/bin/gimp"), "Launch /usr/bin/gimp"},
		{Open("/etc/hosts"), "Open /etc/hosts"},
		{Terminal(TerminalConfig{}), "Open terminal"},
		{Terminal(TerminalConfig{Command: "make test"}), "make test"},
	}

	for _, tc := range testCases {
		if got := tc.act.Describe(); !strings.Contains(got, tc.contains) {
			t.Errorf("Describe(%s): expected to contain %q, got %q", tc.act.Type, tc.contains, got)
		}
	}
}
