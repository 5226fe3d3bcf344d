package ui

// Mode identifies which interaction surface owns input for the current
// frame. Exactly one mode is active at a time; overlays never stack.
type Mode int

const (
	// ModeIdle is the base state: the grid is interactive, hotkeys are armed.
	ModeIdle Mode = iota
	// ModeMenu has a context menu open (button or background).
	ModeMenu
	// ModeEditing has the button editor modal open.
	ModeEditing
	// ModeDragging tracks an in-progress button drag.
	ModeDragging
	// ModeSearch has the fuzzy search overlay open.
	ModeSearch
	// ModeSettings has the settings modal open.
	ModeSettings
	// ModeHelp has the help overlay open.
	ModeHelp
	// ModeConfirm has the remove-confirmation dialog open.
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMenu:
		return "menu"
	case ModeEditing:
		return "editing"
	case ModeDragging:
		return "dragging"
	case ModeSearch:
		return "search"
	case ModeSettings:
		return "settings"
	case ModeHelp:
		return "help"
	case ModeConfirm:
		return "confirm"
	}
	return "unknown"
}

// Machine is the UI mode state machine. Transitions happen only through its
// methods; an illegal transition leaves the mode unchanged and reports false.
// The renderer consults Current() to decide which overlay draws and which
// input filters are armed.
type Machine struct {
	mode Mode
}

// Current returns the active mode.
func (sm *Machine) Current() Mode {
	return sm.mode
}

// Is reports whether the active mode equals m.
func (sm *Machine) Is(m Mode) bool {
	return sm.mode == m
}

// transition moves to target if the current mode is one of from.
func (sm *Machine) transition(target Mode, from ...Mode) bool {
	for _, f := range from {
		if sm.mode == f {
			sm.mode = target
			return true
		}
	}
	return false
}

// OpenMenu opens a context menu. Legal from idle only; a second right-click
// while a menu is open re-targets the existing menu instead.
func (sm *Machine) OpenMenu() bool {
	return sm.transition(ModeMenu, ModeIdle, ModeMenu)
}

// OpenEditor opens the button editor, from idle or from a context menu.
func (sm *Machine) OpenEditor() bool {
	return sm.transition(ModeEditing, ModeIdle, ModeMenu)
}

// BeginDrag enters the dragging state, from idle or from a menu's Move item.
func (sm *Machine) BeginDrag() bool {
	return sm.transition(ModeDragging, ModeIdle, ModeMenu)
}

// EndDrag leaves the dragging state after a drop or cancel.
func (sm *Machine) EndDrag() bool {
	return sm.transition(ModeIdle, ModeDragging)
}

// OpenSearch opens the search overlay. Legal from idle only.
func (sm *Machine) OpenSearch() bool {
	return sm.transition(ModeSearch, ModeIdle)
}

// OpenSettings opens the settings modal, from idle or the background menu.
func (sm *Machine) OpenSettings() bool {
	return sm.transition(ModeSettings, ModeIdle, ModeMenu)
}

// OpenHelp opens the help overlay, from idle or the background menu.
func (sm *Machine) OpenHelp() bool {
	return sm.transition(ModeHelp, ModeIdle, ModeMenu)
}

// Confirm opens the remove-confirmation dialog, from idle or a menu.
func (sm *Machine) Confirm() bool {
	return sm.transition(ModeConfirm, ModeIdle, ModeMenu)
}

// Dismiss steps back to idle from any overlay. Escape routes here.
func (sm *Machine) Dismiss() bool {
	if sm.mode == ModeIdle {
		return false
	}
	sm.mode = ModeIdle
	return true
}
