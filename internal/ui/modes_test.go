package ui

import "testing"

func TestMachineStartsIdle(t *testing.T) {
	var sm Machine
	if sm.Current() != ModeIdle {
		t.Fatalf("Current() = %v, want ModeIdle", sm.Current())
	}
}

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Mode
		step func(*Machine) bool
		want Mode
		ok   bool
	}{
		{"menu from idle", ModeIdle, (*Machine).OpenMenu, ModeMenu, true},
		{"menu retarget", ModeMenu, (*Machine).OpenMenu, ModeMenu, true},
		{"editor from idle", ModeIdle, (*Machine).OpenEditor, ModeEditing, true},
		{"editor from menu", ModeMenu, (*Machine).OpenEditor, ModeEditing, true},
		{"editor blocked by settings", ModeSettings, (*Machine).OpenEditor, ModeSettings, false},
		{"drag from idle", ModeIdle, (*Machine).BeginDrag, ModeDragging, true},
		{"drag from menu move", ModeMenu, (*Machine).BeginDrag, ModeDragging, true},
		{"drag blocked while editing", ModeEditing, (*Machine).BeginDrag, ModeEditing, false},
		{"drop ends drag", ModeDragging, (*Machine).EndDrag, ModeIdle, true},
		{"end drag needs drag", ModeIdle, (*Machine).EndDrag, ModeIdle, false},
		{"search from idle", ModeIdle, (*Machine).OpenSearch, ModeSearch, true},
		{"search blocked by menu", ModeMenu, (*Machine).OpenSearch, ModeMenu, false},
		{"settings from menu", ModeMenu, (*Machine).OpenSettings, ModeSettings, true},
		{"help from menu", ModeMenu, (*Machine).OpenHelp, ModeHelp, true},
		{"help blocked by search", ModeSearch, (*Machine).OpenHelp, ModeSearch, false},
		{"confirm from menu", ModeMenu, (*Machine).Confirm, ModeConfirm, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := Machine{mode: tt.from}
			if got := tt.step(&sm); got != tt.ok {
				t.Errorf("transition ok = %v, want %v", got, tt.ok)
			}
			if sm.Current() != tt.want {
				t.Errorf("mode = %v, want %v", sm.Current(), tt.want)
			}
		})
	}
}

func TestMachineDismissAlwaysReturnsToIdle(t *testing.T) {
	for _, m := range []Mode{ModeMenu, ModeEditing, ModeDragging, ModeSearch, ModeSettings, ModeHelp, ModeConfirm} {
		sm := Machine{mode: m}
		if !sm.Dismiss() {
			t.Errorf("Dismiss() from %v = false, want true", m)
		}
		if sm.Current() != ModeIdle {
			t.Errorf("after Dismiss from %v: mode = %v, want ModeIdle", m, sm.Current())
		}
	}

	var sm Machine
	if sm.Dismiss() {
		t.Error("Dismiss() from idle = true, want false")
	}
}

func TestModeString(t *testing.T) {
	if got := ModeDragging.String(); got != "dragging" {
		t.Errorf("ModeDragging.String() = %q, want %q", got, "dragging")
	}
	if got := Mode(99).String(); got != "unknown" {
		t.Errorf("Mode(99).String() = %q, want %q", got, "unknown")
	}
}
