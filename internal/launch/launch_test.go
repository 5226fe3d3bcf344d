package launch

import (
	"os"
	"strings"
	"testing"

	"github.com/justyntemme/quickdeck/internal/action"
)

func TestMergeEnvEmptyInherits(t *testing.T) {
	if env := mergeEnv(nil); env != nil {
		t.Errorf("expected nil env for inheritance, got %d entries", len(env))
	}
	if env := mergeEnv(map[string]string{}); env != nil {
		t.Errorf("expected nil env for empty overlay, got %d entries", len(env))
	}
}

func TestMergeEnvOverridesExisting(t *testing.T) {
	t.Setenv("QUICKDECK_TEST_VAR", "original")

	env := mergeEnv(map[string]string{"QUICKDECK_TEST_VAR": "overridden"})

	var found int
	for _, kv := range env {
		if strings.HasPrefix(kv, "QUICKDECK_TEST_VAR=") {
			found++
			if kv != "QUICKDECK_TEST_VAR=overridden" {
				t.Errorf("expected override, got %q", kv)
			}
		}
	}
	if found != 1 {
		t.Errorf("expected exactly 1 entry for overridden var, got %d", found)
	}
	if len(env) != len(os.Environ()) {
		t.Errorf("override should not change env length: got %d, parent has %d",
			len(env), len(os.Environ()))
	}
}

func TestMergeEnvAppendsNewSorted(t *testing.T) {
	env := mergeEnv(map[string]string{
		"QUICKDECK_ZZZ": "2",
		"QUICKDECK_AAA": "1",
	})

	n := len(env)
	if n < 2 {
		t.Fatalf("expected appended entries, got %d total", n)
	}
	// New keys go at the end in sorted order
	if env[n-2] != "QUICKDECK_AAA=1" || env[n-1] != "QUICKDECK_ZZZ=2" {
		t.Errorf("expected sorted tail, got %q, %q", env[n-2], env[n-1])
	}
}

func TestLaunchRejectsInvalidAction(t *testing.T) {
	l := &Launcher{}

	tests := []struct {
		name string
		act  action.Action
	}{
		{"empty", action.Action{}},
		{"missing config", action.Action{Type: action.TypeOpen}},
		{"empty path", action.LaunchApp("")},
		{"unknown type", action.Action{Type: "Hibernate", Open: &action.OpenConfig{Target: "/tmp"}}},
	}

	for _, tt := range tests {
		if err := l.Launch(tt.act); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestRunPackagesResult(t *testing.T) {
	l := &Launcher{}

	res := l.Run("btn-1", "Broken", action.Action{})
	if res.ButtonID != "btn-1" || res.Label != "Broken" {
		t.Errorf("result not keyed to button: %+v", res)
	}
	if res.Err == nil {
		t.Error("expected error from invalid action")
	}
}
