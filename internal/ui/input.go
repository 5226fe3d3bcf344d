package ui

import (
	"time"
	"unicode"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"

	"github.com/justyntemme/quickdeck/internal/config"
	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/deck"
)

// Keyboard input handling

func (r *Renderer) processGlobalInput(gtx layout.Context, state *State) UIEvent {
	// Keyboard input handling using configurable hotkeys
	// We register explicit filters for each hotkey to ensure they're captured
	// even when other widgets might consume generic key events
	keyTag := &r.keyTag
	filters := r.buildHotkeyFilters(keyTag)

	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}

		debug.Log(debug.HOTKEY, "key press name=%q mods=0x%x mode=%s", k.Name, k.Modifiers, r.machine.Current())

		// Escape works in every mode: dismiss whatever overlay is up, then
		// cancel a pending move, then drop the selection.
		if k.Name == key.NameEscape {
			switch {
			case !r.machine.Is(ModeIdle):
				r.dismissOverlay(gtx)
			case r.movePending:
				r.movePending = false
				r.moveID = ""
			case state.Selected != (deck.Position{}):
				return UIEvent{Action: ActionSelect, Pos: deck.Position{}}
			}
			continue
		}

		// Everything below is grid-level input; modal overlays swallow it.
		switch r.machine.Current() {
		case ModeIdle, ModeMenu, ModeDragging:
		default:
			continue
		}

		if r.hotkeys != nil {
			if r.hotkeys.Search.Matches(k) {
				r.openSearch(gtx)
				continue
			}
			if r.hotkeys.Help.Matches(k) {
				r.openHelp()
				continue
			}
			if r.hotkeys.Settings.Matches(k) {
				r.openSettings(state)
				continue
			}
			if r.hotkeys.NewButton.Matches(k) {
				// Zero position lets the deck pick the first free cell.
				r.openEditor(state, "", state.Selected)
				continue
			}
			if r.hotkeys.EditButton.Matches(k) {
				if b := state.ButtonAt(state.Selected); b != nil {
					r.openEditor(state, b.Button.ID, b.Button.Position)
				}
				continue
			}
			if r.hotkeys.RemoveButton.Matches(k) {
				if b := state.ButtonAt(state.Selected); b != nil {
					r.openConfirm(b.Button.ID, b.Button.Label)
				}
				continue
			}
			if r.hotkeys.ImportFolder.Matches(k) {
				r.openImport(state.Selected)
				continue
			}
			if r.hotkeys.ToggleLabels.Matches(k) {
				return UIEvent{Action: ActionToggleLabels, ShowLabels: !state.ShowLabels}
			}
			if r.hotkeys.Quit.Matches(k) {
				return UIEvent{Action: ActionQuit}
			}
		}

		// Arrow keys, Enter, slash, and the digit launchers are not configurable
		switch k.Name {
		case "/":
			r.openSearch(gtx)
		case key.NameUpArrow:
			return UIEvent{Action: ActionSelect, Pos: moveSelection(state.Selected, state.Bounds, -1, 0)}
		case key.NameDownArrow:
			return UIEvent{Action: ActionSelect, Pos: moveSelection(state.Selected, state.Bounds, 1, 0)}
		case key.NameLeftArrow:
			return UIEvent{Action: ActionSelect, Pos: moveSelection(state.Selected, state.Bounds, 0, -1)}
		case key.NameRightArrow:
			return UIEvent{Action: ActionSelect, Pos: moveSelection(state.Selected, state.Bounds, 0, 1)}
		case key.NameReturn, key.NameEnter:
			if r.movePending {
				// Enter drops the armed button onto the selected cell
				if state.Selected != (deck.Position{}) {
					ev := UIEvent{Action: ActionMoveButton, ButtonID: r.moveID, Pos: state.Selected}
					r.movePending = false
					r.moveID = ""
					return ev
				}
				continue
			}
			if b := state.ButtonAt(state.Selected); b != nil && b.Launchable() {
				return UIEvent{Action: ActionLaunch, ButtonID: b.Button.ID}
			}
		default:
			if k.Modifiers == 0 && len(k.Name) == 1 {
				c := rune(k.Name[0])
				// Digits 1-9 launch the Nth button in row-major order
				if c >= '1' && c <= '9' {
					if idx := int(c - '1'); idx < len(state.Buttons) && state.Buttons[idx].Launchable() {
						return UIEvent{Action: ActionLaunch, ButtonID: state.Buttons[idx].Button.ID}
					}
					continue
				}
				// Quick-jump: single letter moves the selection to the next
				// button whose label starts with it
				if c >= 'A' && c <= 'Z' {
					if b := r.findNextLabelMatch(state, c); b != nil {
						return UIEvent{Action: ActionSelect, Pos: b.Button.Position}
					}
				}
			}
		}
	}
	return UIEvent{}
}

// findNextLabelMatch finds the next button whose label starts with the given
// letter. If the same letter was pressed recently, it cycles to the next match.
func (r *Renderer) findNextLabelMatch(state *State, letter rune) *DeckButton {
	if len(state.Buttons) == 0 {
		return nil
	}

	letterLower := unicode.ToLower(letter)
	now := time.Now()

	startIdx := 0
	if r.lastJumpKey == letter && now.Sub(r.lastJumpTime) < time.Second {
		// Same letter pressed recently - cycle to next match
		startIdx = r.lastJumpIndex + 1
		if startIdx >= len(state.Buttons) {
			startIdx = 0
		}
	} else if state.Selected != (deck.Position{}) {
		for i := range state.Buttons {
			if state.Buttons[i].Button.Position == state.Selected {
				startIdx = i
				break
			}
		}
	}

	for i := 0; i < len(state.Buttons); i++ {
		idx := (startIdx + i) % len(state.Buttons)
		label := state.Buttons[idx].Button.Label
		if len(label) > 0 && unicode.ToLower(rune(label[0])) == letterLower {
			r.lastJumpKey = letter
			r.lastJumpTime = now
			r.lastJumpIndex = idx
			return &state.Buttons[idx]
		}
	}
	return nil
}

// moveSelection shifts the keyboard cursor, clamping at the grid edges. The
// first arrow press from an empty selection lands on the top-left cell.
func moveSelection(sel deck.Position, bounds deck.Bounds, dRow, dCol int) deck.Position {
	if sel == (deck.Position{}) {
		return deck.Position{Row: 1, Col: 1}
	}
	sel.Row = clampInt(sel.Row+dRow, 1, bounds.Rows)
	sel.Col = clampInt(sel.Col+dCol, 1, bounds.Cols)
	return sel
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// buildHotkeyFilters creates the key.Filter slice for all configured hotkeys
// plus the fixed navigation keys.
func (r *Renderer) buildHotkeyFilters(keyTag event.Tag) []event.Filter {
	var hotkeys []config.Hotkey
	if r.hotkeys != nil {
		hotkeys = r.hotkeys.All()
	}

	// Use a map to deduplicate filters with same key+modifiers
	type filterKey struct {
		name key.Name
		mods key.Modifiers
	}
	seen := make(map[filterKey]bool)
	filters := make([]event.Filter, 0, len(hotkeys)+42)

	for _, hk := range hotkeys {
		fk := filterKey{hk.Key, hk.Modifiers}
		if !seen[fk] {
			seen[fk] = true
			filters = append(filters, hk.Filter(keyTag))
		}
	}

	fixed := []key.Name{
		key.NameEscape, "/",
		key.NameUpArrow, key.NameDownArrow, key.NameLeftArrow, key.NameRightArrow,
		key.NameReturn, key.NameEnter,
	}
	for c := '1'; c <= '9'; c++ {
		fixed = append(fixed, key.Name(string(c)))
	}
	for c := 'A'; c <= 'Z'; c++ {
		fixed = append(fixed, key.Name(string(c)))
	}
	for _, name := range fixed {
		fk := filterKey{name, 0}
		if !seen[fk] {
			seen[fk] = true
			filters = append(filters, key.Filter{
				Focus: keyTag,
				Name:  name,
			})
		}
	}

	return filters
}
