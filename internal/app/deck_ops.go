package app

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/justyntemme/quickdeck/internal/config"
	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/deck"
	"github.com/justyntemme/quickdeck/internal/scan"
)

// importOutcome is the result of an asynchronous folder scan.
type importOutcome struct {
	label string // display name for toasts
	start deck.Position
	paths []string
	err   error
}

// dropEvent is a batch of files dropped onto the window from another
// application, with the drop point in window pixels.
type dropEvent struct {
	paths []string
	at    image.Point
}

// launchButton starts the button's action on a worker goroutine; the outcome
// comes back through o.results.
func (o *Orchestrator) launchButton(id string) {
	o.deckMu.Lock()
	i := o.deck.ByID(id)
	var b deck.Button
	if i >= 0 {
		b = o.deck.Buttons[i]
	}
	o.deckMu.Unlock()
	if i < 0 {
		return
	}

	debug.Log(debug.APP, "launching %q", b.Label)
	go func() {
		o.results <- o.launcher.Run(b.ID, b.Label, b.Action)
	}()
}

// saveButton upserts an edited or new button. A zero position means the
// first free cell.
func (o *Orchestrator) saveButton(b deck.Button) {
	o.deckMu.Lock()
	o.deck.Remove(b.ID)
	if b.Position == (deck.Position{}) {
		pos, ok := o.deck.FreeCell()
		if !ok {
			o.deckMu.Unlock()
			o.ui.ShowError("The deck is full")
			o.window.Invalidate()
			return
		}
		b.Position = pos
	}
	o.deck.Place(b)
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()

	debug.Log(debug.DECK, "saved button %q at %d,%d", b.Label, b.Position.Row, b.Position.Col)
	o.state.SetButtons(sorted)
	o.state.Selected = b.Position
	o.persistButtons(sorted)
	o.window.Invalidate()
}

func (o *Orchestrator) removeButton(id string) {
	o.deckMu.Lock()
	ok := o.deck.Remove(id)
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()
	if !ok {
		return
	}

	debug.Log(debug.DECK, "removed button %s", id)
	o.state.SetButtons(sorted)
	o.persistButtons(sorted)
	o.window.Invalidate()
}

// moveButton relocates a button, replacing whatever occupied the target
// cell. Dropping a button onto itself is a no-op.
func (o *Orchestrator) moveButton(id string, to deck.Position) {
	o.deckMu.Lock()
	ok := o.deck.Move(id, to)
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()
	if !ok {
		return
	}

	debug.Log(debug.DECK, "moved button %s to %d,%d", id, to.Row, to.Col)
	o.state.SetButtons(sorted)
	o.persistButtons(sorted)
	o.window.Invalidate()
}

// addDroppedFiles turns dropped paths into buttons starting at start, which
// falls back to the first free cell when zero.
func (o *Orchestrator) addDroppedFiles(paths []string, start deck.Position) {
	placed, total := o.insertFiles(paths, start)
	if total == 0 {
		return
	}
	switch {
	case placed == 0:
		o.ui.ShowError("The deck is full")
	case placed < total:
		o.ui.ShowError(fmt.Sprintf("Deck full: added %d of %d", placed, total))
	default:
		o.ui.ShowSuccess(fmt.Sprintf("Added %d %s", placed, plural(placed, "button")))
	}
	o.window.Invalidate()
}

// insertFiles places one button per path walking row-major from start.
// Returns how many fit and how many were offered.
func (o *Orchestrator) insertFiles(paths []string, start deck.Position) (placed, total int) {
	if len(paths) == 0 {
		return 0, 0
	}

	o.deckMu.Lock()
	if start == (deck.Position{}) {
		pos, ok := o.deck.FreeCell()
		if !ok {
			o.deckMu.Unlock()
			return 0, len(paths)
		}
		start = pos
	}
	buttons := o.deck.InsertFiles(paths, start)
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()

	debug.Log(debug.DECK, "placed %d of %d files from %d,%d", len(buttons), len(paths), start.Row, start.Col)
	if len(buttons) > 0 {
		o.state.SetButtons(sorted)
		o.persistButtons(sorted)
	}
	return len(buttons), len(paths)
}

// startImport validates the folder and scans it on a worker goroutine. The
// scan is capped at the cells remaining from the seed position, so a huge
// tree cannot queue more buttons than the deck can hold.
func (o *Orchestrator) startImport(root string, start deck.Position) {
	// root accepts a PATH-style list, so several trees can seed the deck in
	// one pass.
	var roots []string
	for _, r := range strings.Split(root, string(os.PathListSeparator)) {
		r = expandHome(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		info, err := os.Stat(r)
		if err != nil || !info.IsDir() {
			o.ui.ShowError("Not a folder: " + r)
			o.window.Invalidate()
			return
		}
		roots = append(roots, r)
	}
	if len(roots) == 0 {
		return
	}

	o.deckMu.Lock()
	if start == (deck.Position{}) {
		if pos, ok := o.deck.FreeCell(); ok {
			start = pos
		}
	}
	limit := o.deck.Bounds.CellsFrom(start)
	o.deckMu.Unlock()

	if start == (deck.Position{}) || limit == 0 {
		o.ui.ShowError("The deck is full")
		o.window.Invalidate()
		return
	}

	label := filepath.Base(roots[0])
	if len(roots) > 1 {
		label = fmt.Sprintf("%d folders", len(roots))
	}

	depth := o.config.Get().Behavior.ScanDepth
	debug.Log(debug.SCAN, "import %s depth=%d limit=%d", strings.Join(roots, ", "), depth, limit)
	o.state.Importing = true
	o.window.Invalidate()

	go func() {
		paths, err := scan.ScanAll(context.Background(), roots, scan.Options{MaxDepth: depth, MaxResults: limit})
		o.imports <- importOutcome{label: label, start: start, paths: paths, err: err}
	}()
}

// handleImportOutcome lands a finished folder scan on the deck.
func (o *Orchestrator) handleImportOutcome(out importOutcome) {
	o.state.Importing = false

	switch {
	case out.err != nil:
		debug.Log(debug.SCAN, "import failed: %v", out.err)
		o.ui.ShowError(fmt.Sprintf("Import failed: %v", out.err))
	case len(out.paths) == 0:
		o.ui.ShowError("No files found in " + out.label)
	default:
		placed, total := o.insertFiles(out.paths, out.start)
		switch {
		case placed == 0:
			o.ui.ShowError("The deck is full")
		case placed < total:
			o.ui.ShowError(fmt.Sprintf("Imported %d of %d, the rest did not fit", placed, total))
		default:
			o.ui.ShowSuccess(fmt.Sprintf("Imported %d %s", placed, plural(placed, "item")))
		}
	}
	o.window.Invalidate()
}

// handleExternalDrop maps an OS drag-and-drop point onto a cell and places
// the dropped files there.
func (o *Orchestrator) handleExternalDrop(drop dropEvent) {
	pos, ok := o.ui.CellAtPoint(drop.at)
	if !ok {
		pos = deck.Position{}
	}
	debug.Log(debug.APP, "external drop of %d files at %v (cell %d,%d)", len(drop.paths), drop.at, pos.Row, pos.Col)
	o.addDroppedFiles(drop.paths, pos)
}

// copyTarget puts the button's launch target on the system clipboard.
func (o *Orchestrator) copyTarget(id string) {
	o.deckMu.Lock()
	target := ""
	if i := o.deck.ByID(id); i >= 0 {
		target = o.deck.Buttons[i].Action.Target()
	}
	o.deckMu.Unlock()
	if target == "" {
		return
	}

	if err := clipboard.WriteAll(target); err != nil {
		debug.Log(debug.APP, "clipboard write failed: %v", err)
		o.ui.ShowError("Clipboard unavailable")
	} else {
		o.ui.ShowSuccess("Target copied")
	}
	o.window.Invalidate()
}

// resizeGrid applies new grid dimensions. Buttons that fall outside the new
// bounds are dropped, with a warning naming how many.
func (o *Orchestrator) resizeGrid(rows, cols int) {
	o.config.SetGrid(rows, cols)
	o.markSelfSave()
	bounds := o.config.Get().Grid.Bounds()

	o.deckMu.Lock()
	dropped := o.deck.Resize(bounds)
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()

	debug.Log(debug.DECK, "grid resized to %dx%d, dropped %d", bounds.Rows, bounds.Cols, len(dropped))
	o.state.Bounds = bounds
	o.state.SetButtons(sorted)
	if !bounds.Contains(o.state.Selected) {
		o.state.Selected = deck.Position{}
	}
	if len(dropped) > 0 {
		o.persistButtons(sorted)
		o.ui.ShowError(fmt.Sprintf("%d %s outside the new grid removed", len(dropped), plural(len(dropped), "button")))
	}
	o.window.Invalidate()
}

// persistButtons writes the deck back to config.json.
func (o *Orchestrator) persistButtons(sorted []deck.Button) {
	o.config.SetButtons(sorted)
	o.markSelfSave()
}

// markSelfSave records a config write of our own so the watcher's next
// notification is not mistaken for an external edit.
func (o *Orchestrator) markSelfSave() {
	o.lastSelfSave.Store(time.Now().UnixNano())
}

// handleConfigChange gates a watcher notification: our own saves are
// skipped, and reloads are deferred while an edit session is open so the
// user's editor fields are not rebuilt under them.
func (o *Orchestrator) handleConfigChange() {
	if time.Since(time.Unix(0, o.lastSelfSave.Load())) < selfSaveWindow {
		debug.Log(debug.WATCH, "config change is our own save, skipping reload")
		return
	}
	if o.ui.Busy() {
		debug.Log(debug.WATCH, "edit session open, deferring reload")
		o.reloadPending = true
		return
	}
	o.reloadConfig()
}

// reloadConfig re-reads config.json after an on-disk change and rebuilds the
// deck from it. Runs on the processEvents goroutine.
func (o *Orchestrator) reloadConfig() {
	debug.Log(debug.CONFIG, "config changed on disk, reloading")
	if err := o.config.Load(); err != nil {
		debug.Log(debug.CONFIG, "reload failed: %v", err)
		return
	}
	cfg := o.config.Get()

	o.deckMu.Lock()
	o.deck = deck.New(cfg.Grid.Bounds())
	for _, b := range cfg.Buttons {
		o.deck.Place(b)
	}
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()

	o.applyConfig(cfg, sorted)
	if o.state.ConfigErr == "" {
		o.ui.ShowSuccess("Configuration reloaded")
	}
	o.window.Invalidate()
}

// applyConfig pushes cfg into the launcher, the renderer, and the UI state.
// The deck must already hold cfg's buttons.
func (o *Orchestrator) applyConfig(cfg config.Config, sorted []deck.Button) {
	o.launcher.Terminal = cfg.Behavior.Terminal

	o.ui.ApplyTheme(cfg.UI.Theme)
	o.ui.SetHotkeys(config.NewHotkeyMatcher(cfg.Hotkeys))

	o.state.Bounds = cfg.Grid.Bounds()
	o.state.BaseGap = cfg.Grid.BaseGap
	o.state.ShowLabels = cfg.UI.ShowLabels
	o.state.CloseOnLaunch = cfg.UI.CloseOnLaunch
	o.state.ThemeName = cfg.UI.Theme
	o.state.ScanDepth = cfg.Behavior.ScanDepth
	o.state.Terminal = cfg.Behavior.Terminal
	o.state.SetButtons(sorted)
	if !o.state.Bounds.Contains(o.state.Selected) {
		o.state.Selected = deck.Position{}
	}

	o.state.ConfigErr = ""
	if err := o.config.ParseError(); err != nil {
		o.state.ConfigErr = err.Error()
	}
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
