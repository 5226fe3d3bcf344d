package ui

import (
	"github.com/justyntemme/quickdeck/internal/config"
	"github.com/justyntemme/quickdeck/internal/deck"
	"github.com/justyntemme/quickdeck/internal/store"
)

// ButtonDragMIME is the MIME type for internal button drag-and-drop. The
// payload is the dragged button's ID.
const ButtonDragMIME = "application/x-quickdeck-button"

type UIAction int

const (
	ActionNone UIAction = iota
	ActionLaunch        // Launch the button with ButtonID
	ActionSelect        // Move the keyboard selection to Pos
	ActionSaveButton    // Editor finished: upsert Button
	ActionRemoveButton  // Confirmed removal of ButtonID
	ActionMoveButton    // Drag finished: ButtonID moves to Pos
	ActionDropFiles     // External files dropped: Paths seed the grid at Pos
	ActionImportFolder  // Import a directory tree: Paths[0] is the root, Pos the seed cell
	ActionCopyTarget    // Copy ButtonID's launch target to the clipboard
	ActionChangeGrid    // Settings: Rows x Cols changed
	ActionChangeGap     // Settings: BaseGap changed
	ActionChangeTheme   // Settings: ThemeName selected
	ActionToggleLabels
	ActionToggleCloseOnLaunch
	ActionChangeTerminal // Settings: TerminalID selected
	ActionChangeScanDepth
	ActionClearHistory // Settings: wipe the usage store
	ActionQuit
)

func (a UIAction) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLaunch:
		return "Launch"
	case ActionSelect:
		return "Select"
	case ActionSaveButton:
		return "SaveButton"
	case ActionRemoveButton:
		return "RemoveButton"
	case ActionMoveButton:
		return "MoveButton"
	case ActionDropFiles:
		return "DropFiles"
	case ActionImportFolder:
		return "ImportFolder"
	case ActionCopyTarget:
		return "CopyTarget"
	case ActionChangeGrid:
		return "ChangeGrid"
	case ActionChangeGap:
		return "ChangeGap"
	case ActionChangeTheme:
		return "ChangeTheme"
	case ActionToggleLabels:
		return "ToggleLabels"
	case ActionToggleCloseOnLaunch:
		return "ToggleCloseOnLaunch"
	case ActionChangeTerminal:
		return "ChangeTerminal"
	case ActionChangeScanDepth:
		return "ChangeScanDepth"
	case ActionClearHistory:
		return "ClearHistory"
	case ActionQuit:
		return "Quit"
	}
	return "Unknown"
}

// UIEvent is the renderer's output for one frame: at most one action with
// its parameters. The orchestrator dispatches on Action.
type UIEvent struct {
	Action        UIAction
	ButtonID      string
	Pos           deck.Position
	Paths         []string
	Button        deck.Button
	Rows, Cols    int
	BaseGap       int
	ThemeName     string
	ShowLabels    bool
	CloseOnLaunch bool
	TerminalID    string
	ScanDepth     int
}

// DeckButton pairs a deck button with its per-frame widget state. The slice
// in State is rebuilt when the deck changes but entries keep their widget
// state between frames via ID matching.
type DeckButton struct {
	Button deck.Button

	Touch   Touchable // Combined click, right-click, and drag handling
	DropTag struct{}  // Unique drop-target tag (address is unique per entry)
}

// State is the renderer's input: a snapshot of deck and settings owned by
// the orchestrator. Widget state inside Buttons persists across frames, so
// the same State pointer is passed to every Layout call.
type State struct {
	Bounds  deck.Bounds
	BaseGap int
	Buttons []DeckButton // Row-major order

	Stats map[string]store.ButtonStats // Launch stats by button ID

	ShowLabels    bool
	CloseOnLaunch bool
	ThemeName     string
	ScanDepth     int

	Terminal  string // Active terminal ID, empty = auto
	Terminals []config.TerminalInfo

	// Selected is the keyboard cursor cell; zero value means no selection.
	Selected deck.Position

	// Importing is set while a folder import scan runs.
	Importing bool

	// ConfigErr holds the config parse failure message, shown as a banner.
	ConfigErr string
}

// SetButtons rebuilds the widget list from deck buttons, carrying over
// widget state for IDs that survive.
func (s *State) SetButtons(buttons []deck.Button) {
	old := make(map[string]*DeckButton, len(s.Buttons))
	for i := range s.Buttons {
		old[s.Buttons[i].Button.ID] = &s.Buttons[i]
	}

	next := make([]DeckButton, len(buttons))
	for i, b := range buttons {
		if prev, ok := old[b.ID]; ok {
			next[i] = *prev
		}
		next[i].Button = b
		next[i].Touch.Type = ButtonDragMIME
	}
	s.Buttons = next
}

// ButtonAt returns the widget entry occupying pos, or nil.
func (s *State) ButtonAt(pos deck.Position) *DeckButton {
	for i := range s.Buttons {
		if s.Buttons[i].Button.Position == pos {
			return &s.Buttons[i]
		}
	}
	return nil
}

// ButtonByID returns the widget entry with the given ID, or nil.
func (s *State) ButtonByID(id string) *DeckButton {
	for i := range s.Buttons {
		if s.Buttons[i].Button.ID == id {
			return &s.Buttons[i]
		}
	}
	return nil
}

// Launchable reports whether the button's action passes validation.
func (b *DeckButton) Launchable() bool {
	return b.Button.Action.Validate() == nil
}

// cellIndex returns the row-major index of pos within bounds, 0-based.
func cellIndex(pos deck.Position, bounds deck.Bounds) int {
	return (pos.Row-1)*bounds.Cols + (pos.Col - 1)
}
