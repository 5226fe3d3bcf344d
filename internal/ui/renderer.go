package ui

import (
	"image"
	"image/color"
	"strings"
	"sync/atomic"
	"time"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/quickdeck/internal/action"
	"github.com/justyntemme/quickdeck/internal/config"
	"github.com/justyntemme/quickdeck/internal/deck"
)

// terminalAuto is the radio value meaning "use the platform default".
const terminalAuto = "auto"

// Icon cache sizing: room for a few full grids, icons scaled to the largest
// cell edge.
const (
	iconCacheEntries = 256
	iconMaxEdge      = 128
)

// maxScanDepth caps the import depth stepper. Deeper scans work when set in
// the config file directly; past this the grid cannot hold the results anyway.
const maxScanDepth = 8

// Renderer owns all widget state and produces at most one UIEvent per frame.
// The orchestrator owns State; the Renderer never mutates the deck itself.
type Renderer struct {
	Theme *material.Theme

	machine Machine
	hotkeys *config.HotkeyMatcher
	icons   *IconCache

	// busy mirrors "an edit session is open" for readers on other
	// goroutines; the frame loop stores it every Layout.
	busy atomic.Bool

	toast Toast

	// Global input
	mouseTag struct{}
	keyTag   struct{}
	mousePos image.Point
	focused  bool

	// Quick-jump letter cycling
	lastJumpKey   rune
	lastJumpTime  time.Time
	lastJumpIndex int

	// Grid geometry from the last frame, for drop hit testing.
	metrics       deck.CellMetrics
	gridOrigin    image.Point
	contentOffset image.Point
	lastBounds    deck.Bounds

	// Drop target tags for empty cells, indexed row-major. Grown on resize.
	cellTags []struct{}

	// Dismiss layer under menus, scrim over modals.
	bgClick        widget.Clickable
	bgRightTag     struct{}
	backdropClick  widget.Clickable
	modalBodyClick widget.Clickable

	// Context menu
	menuPos          image.Point
	menuButtonID     string
	menuIsBackground bool
	menuLaunchBtn    widget.Clickable
	menuEditBtn      widget.Clickable
	menuCopyBtn      widget.Clickable
	menuMoveBtn      widget.Clickable
	menuRemoveBtn    widget.Clickable
	menuNewBtn       widget.Clickable
	menuImportBtn    widget.Clickable
	menuSettingsBtn  widget.Clickable
	menuHelpBtn      widget.Clickable

	// Keyboard move armed from the context menu: the next cell click is the
	// destination.
	movePending bool
	moveID      string

	// Button editor
	editingID          string // empty while creating
	editorPos          deck.Position
	editorFocusPending bool
	labelEditor        widget.Editor
	iconEditor         widget.Editor
	targetEditor       widget.Editor
	argsEditor         widget.Editor
	workdirEditor      widget.Editor
	commandEditor      widget.Editor
	actionKind         widget.Enum
	editorTerminal     widget.Enum
	editorList         widget.List
	editorSaveBtn      widget.Clickable
	editorCancelBtn    widget.Clickable

	// Folder import prompt, shares the editing mode.
	importPrompt    bool
	importEditor    widget.Editor
	importOKBtn     widget.Clickable
	importCancelBtn widget.Clickable

	// Settings
	settingsList     widget.List
	rowsInc, rowsDec widget.Clickable
	colsInc, colsDec widget.Clickable
	gapInc, gapDec   widget.Clickable
	depthInc         widget.Clickable
	depthDec         widget.Clickable
	themeEnum        widget.Enum
	showLabelsCheck  widget.Bool
	closeLaunchChk   widget.Bool
	terminalEnum     widget.Enum
	clearHistoryBtn  widget.Clickable
	settingsCloseBtn widget.Clickable
	themePresets     []ThemePreset

	// Remove confirmation
	confirmID        string
	confirmLabel     string
	confirmCancelBtn widget.Clickable
	confirmOKBtn     widget.Clickable

	// Search
	searchEditor     widget.Editor
	searchQuery      string
	searchResults    []searchResult
	searchResultBtns []widget.Clickable
	searchSel        int
	searchList       widget.List

	// Help
	helpList     widget.List
	helpBlocks   []MarkdownBlock
	helpCloseBtn widget.Clickable

	// ID of the button being dragged, empty when no drag is active.
	dragID string
}

// NewRenderer builds a renderer with an idle mode machine. invalidate is
// called from the icon loader goroutine when a decoded icon is ready.
func NewRenderer(invalidate func()) *Renderer {
	r := &Renderer{
		Theme: material.NewTheme(),
	}
	r.icons = NewIconCache(iconCacheEntries, iconMaxEdge, invalidate)

	for _, ed := range []*widget.Editor{
		&r.labelEditor, &r.iconEditor, &r.targetEditor, &r.argsEditor,
		&r.workdirEditor, &r.commandEditor, &r.importEditor, &r.searchEditor,
	} {
		ed.SingleLine = true
		ed.Submit = true
	}

	r.actionKind.Value = string(action.TypeLaunchApp)
	r.editorTerminal.Value = terminalAuto
	r.terminalEnum.Value = terminalAuto

	r.editorList.Axis = layout.Vertical
	r.settingsList.Axis = layout.Vertical
	r.helpList.Axis = layout.Vertical
	r.searchList.Axis = layout.Vertical

	r.ApplyTheme("light")
	return r
}

// Shutdown stops the icon loader goroutine.
func (r *Renderer) Shutdown() {
	r.icons.Stop()
}

// SetHotkeys installs the configured hotkey bindings.
func (r *Renderer) SetHotkeys(m *config.HotkeyMatcher) {
	r.hotkeys = m
}

// SetThemePresets installs user theme presets loaded from the themes
// directory. Must be called before ApplyTheme for presets to resolve.
func (r *Renderer) SetThemePresets(presets []ThemePreset) {
	r.themePresets = presets
}

// ApplyTheme switches the palette to the named preset and syncs the material
// theme so stock widgets pick up the new colors.
func (r *Renderer) ApplyTheme(name string) {
	applyPreset(findPreset(name, r.themePresets))
	r.Theme.Palette.Bg = colBg
	r.Theme.Palette.Fg = colText
	r.Theme.Palette.ContrastBg = colAccent
	r.Theme.Palette.ContrastFg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// themeNames lists selectable themes: builtins first, then presets, without
// duplicates when a preset shadows a builtin name.
func (r *Renderer) themeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range append(BuiltinThemes(), r.themePresets...) {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}

// Busy reports whether the button editor or the settings modal is open.
// Safe to call from any goroutine; disruptive background work like config
// reloads is deferred while it returns true.
func (r *Renderer) Busy() bool {
	return r.busy.Load()
}

// CellAtPoint maps a window coordinate to a grid cell using the geometry of
// the last rendered frame. Used for external drop positioning.
func (r *Renderer) CellAtPoint(pt image.Point) (deck.Position, bool) {
	if r.metrics.Cell == 0 {
		return deck.Position{}, false
	}
	return r.metrics.CellAt(pt.Sub(r.gridOrigin), r.lastBounds)
}

// openMenu raises the context menu at pos. buttonID is empty for the
// background variant.
func (r *Renderer) openMenu(pos image.Point, buttonID string) {
	if !r.machine.OpenMenu() {
		return
	}
	r.menuPos = pos
	r.menuButtonID = buttonID
	r.menuIsBackground = buttonID == ""
}

// openEditor raises the button editor. An empty id creates a new button at
// pos; otherwise the editors are seeded from the existing button.
func (r *Renderer) openEditor(state *State, id string, pos deck.Position) {
	if !r.machine.OpenEditor() {
		return
	}
	r.importPrompt = false
	r.editingID = id
	r.editorPos = pos
	r.editorFocusPending = true
	r.resetEditors()
	if id != "" {
		if b := state.ButtonByID(id); b != nil {
			r.seedEditors(b.Button)
			r.editorPos = b.Button.Position
		} else {
			r.editingID = ""
		}
	}
}

// openImport raises the folder import prompt, seeding the target cell.
func (r *Renderer) openImport(pos deck.Position) {
	if !r.machine.OpenEditor() {
		return
	}
	r.importPrompt = true
	r.editorPos = pos
	r.editorFocusPending = true
	r.importEditor.SetText("")
}

// openSettings raises the settings modal seeded from the current state.
func (r *Renderer) openSettings(state *State) {
	if !r.machine.OpenSettings() {
		return
	}
	r.themeEnum.Value = state.ThemeName
	r.showLabelsCheck.Value = state.ShowLabels
	r.closeLaunchChk.Value = state.CloseOnLaunch
	if state.Terminal == "" {
		r.terminalEnum.Value = terminalAuto
	} else {
		r.terminalEnum.Value = state.Terminal
	}
}

// openSearch raises the fuzzy search overlay and focuses its editor.
func (r *Renderer) openSearch(gtx layout.Context) {
	if !r.machine.OpenSearch() {
		return
	}
	r.searchEditor.SetText("")
	r.searchQuery = ""
	r.searchResults = nil
	r.searchSel = 0
	gtx.Execute(key.FocusCmd{Tag: &r.searchEditor})
	gtx.Execute(op.InvalidateCmd{})
}

// openHelp raises the help overlay, parsing the help text on first use.
func (r *Renderer) openHelp() {
	if !r.machine.OpenHelp() {
		return
	}
	if r.helpBlocks == nil {
		r.helpBlocks = ParseMarkdown(helpText)
	}
}

// openConfirm raises the remove confirmation for the given button.
func (r *Renderer) openConfirm(id, label string) {
	if !r.machine.Confirm() {
		return
	}
	r.confirmID = id
	r.confirmLabel = label
}

// dismissOverlay returns to idle from whatever overlay is up. Keyboard focus
// goes back to the grid on the next frame.
func (r *Renderer) dismissOverlay(gtx layout.Context) {
	r.importPrompt = false
	if r.machine.Dismiss() {
		r.focused = false
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (r *Renderer) resetEditors() {
	r.labelEditor.SetText("")
	r.iconEditor.SetText("")
	r.targetEditor.SetText("")
	r.argsEditor.SetText("")
	r.workdirEditor.SetText("")
	r.commandEditor.SetText("")
	r.actionKind.Value = string(action.TypeLaunchApp)
	r.editorTerminal.Value = terminalAuto
}

// seedEditors fills the editor fields from an existing button.
func (r *Renderer) seedEditors(b deck.Button) {
	r.labelEditor.SetText(b.Label)
	r.iconEditor.SetText(b.Icon)
	r.actionKind.Value = string(b.Action.Type)
	switch b.Action.Type {
	case action.TypeLaunchApp:
		if c := b.Action.LaunchApp; c != nil {
			r.targetEditor.SetText(c.Path)
			r.argsEditor.SetText(joinArgs(c.Args))
			r.workdirEditor.SetText(c.WorkDir)
		}
	case action.TypeOpen:
		if c := b.Action.Open; c != nil {
			r.targetEditor.SetText(c.Target)
		}
	case action.TypeTerminal:
		if c := b.Action.Terminal; c != nil {
			r.commandEditor.SetText(c.Command)
			r.workdirEditor.SetText(c.WorkDir)
			if c.Terminal == "" {
				r.editorTerminal.Value = terminalAuto
			} else {
				r.editorTerminal.Value = c.Terminal
			}
		}
	}
}

// joinArgs renders an argument vector for editing, quoting arguments that
// contain whitespace.
func joinArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			parts[i] = "\"" + a + "\""
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}

// splitArgs parses whitespace-separated arguments with double-quote grouping.
func splitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for _, c := range s {
		switch {
		case c == '"':
			inQuote = !inQuote
		case !inQuote && (c == ' ' || c == '\t'):
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return args
}
