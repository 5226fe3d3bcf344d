// Package app owns the window event loop and wires the services together:
// UI events become deck mutations, deck mutations are persisted to config,
// and asynchronous work (launches, folder scans, the usage store, config
// reloads, external drops) flows back into UI state through channels.
package app

import (
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/quickdeck/internal/config"
	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/deck"
	"github.com/justyntemme/quickdeck/internal/launch"
	"github.com/justyntemme/quickdeck/internal/platform"
	"github.com/justyntemme/quickdeck/internal/store"
	"github.com/justyntemme/quickdeck/internal/ui"
)

// Window size limits in dp. The initial size derives from the configured
// grid; a size saved in the usage store overrides it on the next start.
const (
	minWinWidth  = 320
	minWinHeight = 240
	maxWinDim    = 4096
)

// windowSaveDelay is how long the window size must hold still before it is
// persisted.
const windowSaveDelay = 750 * time.Millisecond

// selfSaveWindow suppresses watcher reloads right after our own config
// writes; only external edits should trigger a reload.
const selfSaveWindow = time.Second

// configDebounceMs is the watcher debounce for config file changes.
const configDebounceMs = 300

type Orchestrator struct {
	window   *app.Window
	config   *config.Manager
	store    *store.DB
	launcher *launch.Launcher
	ui       *ui.Renderer
	state    ui.State
	debug    bool

	// deckMu serializes deck access: the frame loop and processEvents both
	// mutate it.
	deckMu sync.Mutex
	deck   *deck.Deck

	results chan launch.Result
	imports chan importOutcome
	drops   chan dropEvent
	watcher *ConfigWatcher

	// reloadPending defers a config reload that arrived mid edit session.
	// Only touched by the processEvents goroutine.
	reloadPending bool

	// storeReady is false when the database failed to open; history and
	// window-size persistence are simply off then.
	storeReady bool

	// lastSelfSave is the unix-nano time of our last config write, used to
	// tell our own saves apart from external edits.
	lastSelfSave atomic.Int64

	// Window size tracking, in dp.
	winSize     image.Point
	winSaved    image.Point
	winDirty    atomic.Int64
	winRestored bool
}

func NewOrchestrator(debug bool) *Orchestrator {
	w := new(app.Window)
	return &Orchestrator{
		window:   w,
		config:   config.NewManager(),
		store:    store.NewDB(),
		launcher: &launch.Launcher{},
		ui:       ui.NewRenderer(w.Invalidate),
		debug:    debug,
		results:  make(chan launch.Result, 4),
		imports:  make(chan importOutcome, 1),
		drops:    make(chan dropEvent, 4),
	}
}

func (o *Orchestrator) Run(importPath string) error {
	if o.debug {
		log.Println("Starting QuickDeck in DEBUG mode")
	}

	if err := o.config.Load(); err != nil {
		log.Printf("Config load failed: %v", err)
	}
	cfg := o.config.Get()

	o.ui.SetThemePresets(ui.LoadThemeDir(config.ThemesDir()))
	o.state.Terminals = config.DetectTerminals()

	o.deckMu.Lock()
	o.deck = deck.New(cfg.Grid.Bounds())
	for _, b := range cfg.Buttons {
		o.deck.Place(b)
	}
	sorted := o.deck.Sorted()
	o.deckMu.Unlock()
	o.applyConfig(cfg, sorted)
	defer o.ui.Shutdown()

	win := deck.DefaultWindowSize(cfg.Grid.Bounds(), cfg.Grid.BaseGap)
	o.window.Option(
		app.Title("QuickDeck"),
		app.Size(
			unit.Dp(clampDim(win.X, minWinWidth, maxWinDim)),
			unit.Dp(clampDim(win.Y, minWinHeight, maxWinDim)),
		),
		app.MinSize(unit.Dp(minWinWidth), unit.Dp(minWinHeight)),
	)

	// Usage store. A failed open turns history and size persistence off
	// instead of taking the deck down with it.
	if err := o.store.Open(store.DefaultPath()); err != nil {
		log.Printf("Failed to open usage store: %v", err)
	} else {
		o.storeReady = true
		defer o.store.Close()
		go o.store.Start()
		o.store.RequestChan <- store.Request{Op: store.FetchStats}
		o.store.RequestChan <- store.Request{Op: store.FetchSettings}
	}

	// Hot reload on external config edits.
	if w, err := NewConfigWatcher(o.config.Path(), configDebounceMs); err != nil {
		log.Printf("Config watcher unavailable: %v", err)
	} else {
		o.watcher = w
		defer w.Close()
	}

	// External drops arrive on a platform thread; hand them over to
	// processEvents.
	platform.SetDropHandler(func(paths []string, x, y int) {
		o.drops <- dropEvent{paths: paths, at: image.Pt(x, y)}
	})

	go o.processEvents()

	if importPath != "" {
		o.startImport(importPath, deck.Position{})
	}

	var ops op.Ops
	for {
		e := o.window.Event()
		if o.handlePlatformEvent(e) {
			continue
		}
		switch e := e.(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			o.trackWindowSize(e)
			gtx := app.NewContext(&ops, e)
			evt := o.ui.Layout(gtx, &o.state)

			if o.debug && evt.Action != ui.ActionNone {
				log.Printf("[DEBUG] Action: %s, Button: %s, Pos: %v", evt.Action, evt.ButtonID, evt.Pos)
			}

			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionLaunch:
		o.launchButton(evt.ButtonID)
	case ui.ActionSelect:
		o.state.Selected = evt.Pos
		o.window.Invalidate()
	case ui.ActionSaveButton:
		o.saveButton(evt.Button)
	case ui.ActionRemoveButton:
		o.removeButton(evt.ButtonID)
	case ui.ActionMoveButton:
		o.moveButton(evt.ButtonID, evt.Pos)
	case ui.ActionDropFiles:
		o.addDroppedFiles(evt.Paths, evt.Pos)
	case ui.ActionImportFolder:
		if len(evt.Paths) > 0 {
			o.startImport(evt.Paths[0], evt.Pos)
		}
	case ui.ActionCopyTarget:
		o.copyTarget(evt.ButtonID)
	case ui.ActionChangeGrid:
		o.resizeGrid(evt.Rows, evt.Cols)
	case ui.ActionChangeGap:
		o.config.SetBaseGap(evt.BaseGap)
		o.markSelfSave()
		o.state.BaseGap = o.config.Get().Grid.BaseGap
		o.window.Invalidate()
	case ui.ActionChangeTheme:
		o.config.SetTheme(evt.ThemeName)
		o.markSelfSave()
		o.state.ThemeName = evt.ThemeName
		o.window.Invalidate()
	case ui.ActionToggleLabels:
		o.config.SetShowLabels(evt.ShowLabels)
		o.markSelfSave()
		o.state.ShowLabels = evt.ShowLabels
		o.window.Invalidate()
	case ui.ActionToggleCloseOnLaunch:
		o.config.SetCloseOnLaunch(evt.CloseOnLaunch)
		o.markSelfSave()
		o.state.CloseOnLaunch = evt.CloseOnLaunch
	case ui.ActionChangeTerminal:
		o.config.SetTerminal(evt.TerminalID)
		o.markSelfSave()
		o.launcher.Terminal = evt.TerminalID
		o.state.Terminal = evt.TerminalID
	case ui.ActionChangeScanDepth:
		o.config.SetScanDepth(evt.ScanDepth)
		o.markSelfSave()
		o.state.ScanDepth = evt.ScanDepth
	case ui.ActionClearHistory:
		if o.storeReady {
			o.store.RequestChan <- store.Request{Op: store.ClearHistory}
		}
	case ui.ActionQuit:
		o.window.Perform(system.ActionClose)
	}
}

// processEvents funnels worker results into UI state. Every channel-delivered
// mutation lands here, so the frame loop only ever races with this goroutine.
func (o *Orchestrator) processEvents() {
	var cfgChanges <-chan string
	if o.watcher != nil {
		cfgChanges = o.watcher.Notify()
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case resp := <-o.store.ResponseChan:
			o.handleStoreResponse(resp)
		case res := <-o.results:
			o.handleLaunchResult(res)
		case out := <-o.imports:
			o.handleImportOutcome(out)
		case drop := <-o.drops:
			o.handleExternalDrop(drop)
		case <-cfgChanges:
			o.handleConfigChange()
		case <-ticker.C:
			if o.reloadPending && !o.ui.Busy() {
				o.reloadPending = false
				o.reloadConfig()
			}
			o.maybeSaveWindowSize()
		}
	}
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Err != nil {
		debug.Log(debug.STORE, "store error: %v", resp.Err)
		return
	}

	switch resp.Op {
	case store.FetchStats:
		stats := make(map[string]store.ButtonStats, len(resp.Stats))
		for _, s := range resp.Stats {
			stats[s.ButtonID] = s
		}
		o.state.Stats = stats
	case store.FetchSettings:
		o.restoreWindowSize(resp.Settings)
	}
	o.window.Invalidate()
}

func (o *Orchestrator) handleLaunchResult(res launch.Result) {
	if res.Err != nil {
		debug.Log(debug.LAUNCH, "launch failed button=%s: %v", res.ButtonID, res.Err)
		o.ui.ShowError(fmt.Sprintf("%s: %v", res.Label, res.Err))
		o.window.Invalidate()
		return
	}

	if o.storeReady {
		target := ""
		o.deckMu.Lock()
		if i := o.deck.ByID(res.ButtonID); i >= 0 {
			target = o.deck.Buttons[i].Action.Target()
		}
		o.deckMu.Unlock()
		o.store.RequestChan <- store.Request{
			Op: store.RecordLaunch, ButtonID: res.ButtonID, Label: res.Label, Target: target,
		}
	}

	if o.state.CloseOnLaunch {
		o.window.Perform(system.ActionMinimize)
	}
}

// trackWindowSize notes the frame size in dp; the save runs from
// processEvents once the size stops changing.
func (o *Orchestrator) trackWindowSize(e app.FrameEvent) {
	scale := e.Metric.PxPerDp
	if scale <= 0 {
		return
	}
	cur := image.Pt(int(float32(e.Size.X)/scale+0.5), int(float32(e.Size.Y)/scale+0.5))
	if cur != o.winSize {
		o.winSize = cur
		o.winDirty.Store(time.Now().UnixNano())
	}
}

func (o *Orchestrator) maybeSaveWindowSize() {
	dirty := o.winDirty.Load()
	if dirty == 0 || !o.storeReady {
		return
	}
	if time.Since(time.Unix(0, dirty)) < windowSaveDelay {
		return
	}
	o.winDirty.Store(0)
	if o.winSize == o.winSaved {
		return
	}
	o.winSaved = o.winSize

	debug.Log(debug.APP, "saving window size %dx%d", o.winSize.X, o.winSize.Y)
	o.store.RequestChan <- store.Request{Op: store.SaveSetting, Key: "window_width", Value: strconv.Itoa(o.winSize.X)}
	o.store.RequestChan <- store.Request{Op: store.SaveSetting, Key: "window_height", Value: strconv.Itoa(o.winSize.Y)}
}

// restoreWindowSize applies the persisted window size once, on the first
// settings fetch. Later fetches (every SaveSetting echoes one) are ignored.
func (o *Orchestrator) restoreWindowSize(settings map[string]string) {
	if o.winRestored {
		return
	}
	o.winRestored = true

	w, werr := strconv.Atoi(settings["window_width"])
	h, herr := strconv.Atoi(settings["window_height"])
	if werr != nil || herr != nil {
		return
	}
	w = clampDim(w, minWinWidth, maxWinDim)
	h = clampDim(h, minWinHeight, maxWinDim)
	o.winSaved = image.Pt(w, h)
	o.window.Option(app.Size(unit.Dp(w), unit.Dp(h)))
	debug.Log(debug.APP, "restored window size %dx%d", w, h)
}

func clampDim(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Main runs the deck until the window closes. importPath, when non-empty,
// queues a folder import into the first free cells on startup.
func Main(debug bool, importPath string) {
	go func() {
		o := NewOrchestrator(debug)
		if err := o.Run(importPath); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
