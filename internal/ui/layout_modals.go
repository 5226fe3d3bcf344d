package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"gioui.org/font"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/quickdeck/internal/action"
	"github.com/justyntemme/quickdeck/internal/config"
	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/deck"
)

// Button editor, folder import prompt, settings, and remove confirmation.

func (r *Renderer) layoutEditorModal(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	if !r.machine.Is(ModeEditing) || r.importPrompt {
		return layout.Dimensions{}
	}
	if r.editorFocusPending {
		r.editorFocusPending = false
		gtx.Execute(key.FocusCmd{Tag: &r.labelEditor})
	}

	editors := []*widget.Editor{
		&r.labelEditor, &r.iconEditor, &r.targetEditor,
		&r.argsEditor, &r.workdirEditor, &r.commandEditor,
	}
	// Escape cancels even while a field holds keyboard focus.
	for _, ed := range editors {
		for {
			evt, ok := gtx.Event(key.Filter{Focus: ed, Name: key.NameEscape})
			if !ok {
				break
			}
			if ke, ok := evt.(key.Event); ok && ke.State == key.Press {
				r.dismissOverlay(gtx)
			}
		}
	}
	// Enter in any field saves, same as the Save button.
	for _, ed := range editors {
		for {
			evt, ok := ed.Update(gtx)
			if !ok {
				break
			}
			if _, ok := evt.(widget.SubmitEvent); ok {
				r.trySaveButton(gtx, state, eventOut)
			}
		}
	}
	if r.editorSaveBtn.Clicked(gtx) {
		r.trySaveButton(gtx, state, eventOut)
	}
	if r.editorCancelBtn.Clicked(gtx) {
		r.dismissOverlay(gtx)
	}
	if !r.machine.Is(ModeEditing) {
		return layout.Dimensions{}
	}

	title := "New Button"
	if r.editingID != "" {
		title = "Edit Button"
	}

	return r.modalBackdrop(gtx, 420, &r.editorCancelBtn, func(gtx layout.Context) layout.Dimensions {
		return r.modalContent(gtx, title, colText,
			func(gtx layout.Context) layout.Dimensions {
				if max := gtx.Dp(380); gtx.Constraints.Max.Y > max {
					gtx.Constraints.Max.Y = max
				}
				return material.List(r.Theme, &r.editorList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return r.layoutEditorFields(gtx, state)
				})
			},
			func(gtx layout.Context) layout.Dimensions {
				return r.dialogButtonRow(gtx, &r.editorCancelBtn, &r.editorSaveBtn, "Cancel", "Save", ButtonPrimary)
			},
		)
	})
}

func (r *Renderer) layoutEditorFields(gtx layout.Context, state *State) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.editorField(gtx, "Label", &r.labelEditor, "defaults to the target name")
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, "Action")
			lbl.Color = colMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(r.actionKindRadio(string(action.TypeLaunchApp), "Launch app")),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(r.actionKindRadio(string(action.TypeOpen), "Open")),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(r.actionKindRadio(string(action.TypeTerminal), "Terminal")),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
	}

	switch action.Type(r.actionKind.Value) {
	case action.TypeLaunchApp:
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.editorField(gtx, "Executable", &r.targetEditor, "/usr/bin/blender")
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.editorField(gtx, "Arguments", &r.argsEditor, `--flag "value with spaces"`)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.editorField(gtx, "Working directory", &r.workdirEditor, "optional")
			}),
		)
	case action.TypeOpen:
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.editorField(gtx, "Target", &r.targetEditor, "file, folder, or URL")
			}),
		)
	case action.TypeTerminal:
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.editorField(gtx, "Command", &r.commandEditor, "optional, leave empty for a shell")
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.editorField(gtx, "Working directory", &r.workdirEditor, "optional")
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, "Terminal")
				lbl.Color = colMuted
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.terminalOptions(gtx, &r.editorTerminal, state.Terminals)
			}),
		)
	}

	children = append(children,
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.editorField(gtx, "Icon", &r.iconEditor, "optional image path")
		}),
	)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (r *Renderer) actionKindRadio(key, label string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		rb := material.RadioButton(r.Theme, &r.actionKind, key, label)
		rb.Color = colText
		return rb.Layout(gtx)
	}
}

// editorField is a labelled single-line text input.
func (r *Renderer) editorField(gtx layout.Context, label string, ed *widget.Editor, hint string) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, label)
			lbl.Color = colMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return widget.Border{Color: colBorder, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
						material.Editor(r.Theme, ed, hint).Layout)
				})
		}),
	)
}

func (r *Renderer) terminalOptions(gtx layout.Context, enum *widget.Enum, terminals []config.TerminalInfo) layout.Dimensions {
	children := make([]layout.FlexChild, 0, 2*(len(terminals)+1))
	add := func(key, label string) {
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				rb := material.RadioButton(r.Theme, enum, key, label)
				rb.Color = colText
				return rb.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		)
	}
	add(terminalAuto, "System default")
	for _, t := range terminals {
		add(t.ID, t.Name)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (r *Renderer) trySaveButton(gtx layout.Context, state *State, eventOut *UIEvent) {
	b, err := r.editorButton(state)
	if err != nil {
		r.ShowError(err.Error())
		return
	}
	*eventOut = UIEvent{Action: ActionSaveButton, Button: b}
	r.dismissOverlay(gtx)
}

// editorButton assembles a button from the form fields. The returned button
// keeps the identity and position of the button being edited, or carries the
// cell the editor was opened on for new buttons.
func (r *Renderer) editorButton(state *State) (deck.Button, error) {
	label := strings.TrimSpace(r.labelEditor.Text())
	icon := strings.TrimSpace(r.iconEditor.Text())
	target := strings.TrimSpace(r.targetEditor.Text())
	workdir := strings.TrimSpace(r.workdirEditor.Text())

	var act action.Action
	switch action.Type(r.actionKind.Value) {
	case action.TypeLaunchApp:
		act = action.LaunchApp(target)
		act.LaunchApp.Args = splitArgs(r.argsEditor.Text())
		act.LaunchApp.WorkDir = workdir
	case action.TypeOpen:
		act = action.Open(target)
	case action.TypeTerminal:
		term := r.editorTerminal.Value
		if term == terminalAuto {
			term = ""
		}
		act = action.Terminal(action.TerminalConfig{
			Terminal: term,
			WorkDir:  workdir,
			Command:  strings.TrimSpace(r.commandEditor.Text()),
		})
	default:
		return deck.Button{}, fmt.Errorf("unknown action type %q", r.actionKind.Value)
	}
	if err := act.Validate(); err != nil {
		return deck.Button{}, err
	}
	if label == "" {
		label = fallbackLabel(act)
	}

	if r.editingID != "" {
		prev := state.ButtonByID(r.editingID)
		if prev == nil {
			return deck.Button{}, fmt.Errorf("button %q no longer exists", r.editingID)
		}
		b := prev.Button
		b.Label = label
		b.Icon = icon
		b.Action = act
		return b, nil
	}

	b := deck.NewButton(label, act)
	b.Position = r.editorPos
	b.Icon = icon
	return b, nil
}

func fallbackLabel(act action.Action) string {
	switch act.Type {
	case action.TypeLaunchApp:
		return filepath.Base(act.LaunchApp.Path)
	case action.TypeOpen:
		t := act.Open.Target
		if strings.Contains(t, "://") {
			return t
		}
		return filepath.Base(t)
	default:
		return "Terminal"
	}
}

func (r *Renderer) layoutImportModal(gtx layout.Context, eventOut *UIEvent) layout.Dimensions {
	if !r.machine.Is(ModeEditing) || !r.importPrompt {
		return layout.Dimensions{}
	}
	if r.editorFocusPending {
		r.editorFocusPending = false
		gtx.Execute(key.FocusCmd{Tag: &r.importEditor})
	}
	for {
		evt, ok := gtx.Event(key.Filter{Focus: &r.importEditor, Name: key.NameEscape})
		if !ok {
			break
		}
		if ke, ok := evt.(key.Event); ok && ke.State == key.Press {
			r.dismissOverlay(gtx)
		}
	}

	submit := func() {
		path := strings.TrimSpace(r.importEditor.Text())
		if path == "" {
			r.ShowError("Enter a folder path")
			return
		}
		*eventOut = UIEvent{Action: ActionImportFolder, Paths: []string{path}, Pos: r.editorPos}
		r.dismissOverlay(gtx)
	}

	for {
		evt, ok := r.importEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := evt.(widget.SubmitEvent); ok {
			submit()
		}
	}
	if r.importOKBtn.Clicked(gtx) {
		submit()
	}
	if r.importCancelBtn.Clicked(gtx) {
		r.dismissOverlay(gtx)
	}
	if !r.machine.Is(ModeEditing) {
		return layout.Dimensions{}
	}

	return r.modalBackdrop(gtx, 380, &r.importCancelBtn, func(gtx layout.Context) layout.Dimensions {
		return r.modalContent(gtx, "Import Folder", colText,
			func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return r.editorField(gtx, "Folder to scan", &r.importEditor, "~/Documents/projects")
					}),
					layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						lbl := material.Caption(r.Theme, "Every entry found becomes a button, filling free cells in reading order.")
						lbl.Color = colMuted
						return lbl.Layout(gtx)
					}),
				)
			},
			func(gtx layout.Context) layout.Dimensions {
				return r.dialogButtonRow(gtx, &r.importCancelBtn, &r.importOKBtn, "Cancel", "Import", ButtonPrimary)
			},
		)
	})
}

func (r *Renderer) layoutSettingsModal(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	if !r.machine.Is(ModeSettings) {
		return layout.Dimensions{}
	}
	if r.settingsCloseBtn.Clicked(gtx) {
		r.dismissOverlay(gtx)
	}

	if r.themeEnum.Update(gtx) {
		name := r.themeEnum.Value
		debug.Log(debug.UI, "Theme changed to %s", name)
		r.ApplyTheme(name)
		*eventOut = UIEvent{Action: ActionChangeTheme, ThemeName: name}
	}
	if r.showLabelsCheck.Update(gtx) {
		*eventOut = UIEvent{Action: ActionToggleLabels, ShowLabels: r.showLabelsCheck.Value}
	}
	if r.closeLaunchChk.Update(gtx) {
		*eventOut = UIEvent{Action: ActionToggleCloseOnLaunch, CloseOnLaunch: r.closeLaunchChk.Value}
	}
	if r.terminalEnum.Update(gtx) {
		id := r.terminalEnum.Value
		if id == terminalAuto {
			id = ""
		}
		*eventOut = UIEvent{Action: ActionChangeTerminal, TerminalID: id}
	}

	rows, cols := state.Bounds.Rows, state.Bounds.Cols
	if r.rowsDec.Clicked(gtx) && rows > config.MinGridDim {
		*eventOut = UIEvent{Action: ActionChangeGrid, Rows: rows - 1, Cols: cols}
	}
	if r.rowsInc.Clicked(gtx) && rows < config.MaxGridDim {
		*eventOut = UIEvent{Action: ActionChangeGrid, Rows: rows + 1, Cols: cols}
	}
	if r.colsDec.Clicked(gtx) && cols > config.MinGridDim {
		*eventOut = UIEvent{Action: ActionChangeGrid, Rows: rows, Cols: cols - 1}
	}
	if r.colsInc.Clicked(gtx) && cols < config.MaxGridDim {
		*eventOut = UIEvent{Action: ActionChangeGrid, Rows: rows, Cols: cols + 1}
	}
	if r.gapDec.Clicked(gtx) && state.BaseGap > 0 {
		gap := state.BaseGap - 2
		if gap < 0 {
			gap = 0
		}
		*eventOut = UIEvent{Action: ActionChangeGap, BaseGap: gap}
	}
	if r.gapInc.Clicked(gtx) && state.BaseGap < config.MaxBaseGap {
		gap := state.BaseGap + 2
		if gap > config.MaxBaseGap {
			gap = config.MaxBaseGap
		}
		*eventOut = UIEvent{Action: ActionChangeGap, BaseGap: gap}
	}
	if r.depthDec.Clicked(gtx) && state.ScanDepth > 1 {
		*eventOut = UIEvent{Action: ActionChangeScanDepth, ScanDepth: state.ScanDepth - 1}
	}
	if r.depthInc.Clicked(gtx) && state.ScanDepth < maxScanDepth {
		*eventOut = UIEvent{Action: ActionChangeScanDepth, ScanDepth: state.ScanDepth + 1}
	}
	if r.clearHistoryBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionClearHistory}
		r.ShowSuccess("Launch history cleared")
	}

	return r.modalBackdrop(gtx, 400, &r.settingsCloseBtn, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.Y = gtx.Dp(440)
		return r.modalContentWithClose(gtx, "Settings", colText, &r.settingsCloseBtn,
			func(gtx layout.Context) layout.Dimensions {
				return material.List(r.Theme, &r.settingsList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
					return r.layoutSettingsBody(gtx, state)
				})
			},
			nil,
		)
	})
}

func (r *Renderer) layoutSettingsBody(gtx layout.Context, state *State) layout.Dimensions {
	rows, cols := state.Bounds.Rows, state.Bounds.Cols
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(r.sectionHeader("APPEARANCE")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.themeOptions(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			cb := material.CheckBox(r.Theme, &r.showLabelsCheck, "Show button labels")
			cb.Color = colText
			return cb.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutHorizontalSeparator(gtx, colBorder)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

		layout.Rigid(r.sectionHeader("GRID")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.stepperRow(gtx, "Rows", fmt.Sprintf("%d", rows),
				&r.rowsDec, &r.rowsInc, rows > config.MinGridDim, rows < config.MaxGridDim)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.stepperRow(gtx, "Columns", fmt.Sprintf("%d", cols),
				&r.colsDec, &r.colsInc, cols > config.MinGridDim, cols < config.MaxGridDim)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.stepperRow(gtx, "Cell gap", fmt.Sprintf("%d px", state.BaseGap),
				&r.gapDec, &r.gapInc, state.BaseGap > 0, state.BaseGap < config.MaxBaseGap)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, "The gap shrinks with the cells when the window gets tight.")
			lbl.Color = colMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutHorizontalSeparator(gtx, colBorder)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

		layout.Rigid(r.sectionHeader("BEHAVIOR")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			cb := material.CheckBox(r.Theme, &r.closeLaunchChk, "Minimize window after launching")
			cb.Color = colText
			return cb.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, "Terminal application")
			lbl.Color = colText
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.terminalOptions(gtx, &r.terminalEnum, state.Terminals)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.stepperRow(gtx, "Import depth", fmt.Sprintf("%d", state.ScanDepth),
				&r.depthDec, &r.depthInc, state.ScanDepth > 1, state.ScanDepth < maxScanDepth)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, "How many folder levels Import Folder descends into.")
			lbl.Color = colMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.layoutHorizontalSeparator(gtx, colBorder)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),

		layout.Rigid(r.sectionHeader("USAGE HISTORY")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.styledButton(gtx, &r.clearHistoryBtn, "Clear launch history", ButtonDanger)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, "Launch counts rank search results. Clearing cannot be undone.")
			lbl.Color = colMuted
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
	)
}

func (r *Renderer) themeOptions(gtx layout.Context) layout.Dimensions {
	names := r.themeNames()
	children := make([]layout.FlexChild, 0, 2*len(names))
	for _, name := range names {
		key := name
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				rb := material.RadioButton(r.Theme, &r.themeEnum, key, titleCase(key))
				rb.Color = colText
				return rb.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (r *Renderer) sectionHeader(title string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		lbl := material.Caption(r.Theme, title)
		lbl.Color = colMuted
		lbl.Font.Weight = font.Bold
		return lbl.Layout(gtx)
	}
}

// stepperRow is a labelled value with -/+ buttons. Out-of-range buttons stay
// clickable but are drawn disabled; the caller's range check ignores them.
func (r *Renderer) stepperRow(gtx layout.Context, label, value string, dec, inc *widget.Clickable, canDec, canInc bool) layout.Dimensions {
	stepBtn := func(btn *widget.Clickable, text string, enabled bool) layout.Widget {
		return func(gtx layout.Context) layout.Dimensions {
			b := material.Button(r.Theme, btn, text)
			b.Inset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}
			if !enabled {
				b.Background = colCellEmpty
				b.Color = colDisabled
			}
			return b.Layout(gtx)
		}
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, label)
			lbl.Color = colText
			return lbl.Layout(gtx)
		}),
		layout.Rigid(stepBtn(dec, "-", canDec)),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body1(r.Theme, value)
			lbl.Color = colText
			return lbl.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Rigid(stepBtn(inc, "+", canInc)),
	)
}

func (r *Renderer) layoutConfirmModal(gtx layout.Context, eventOut *UIEvent) layout.Dimensions {
	if !r.machine.Is(ModeConfirm) {
		return layout.Dimensions{}
	}
	if r.confirmOKBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionRemoveButton, ButtonID: r.confirmID}
		r.dismissOverlay(gtx)
	}
	if r.confirmCancelBtn.Clicked(gtx) {
		r.dismissOverlay(gtx)
	}
	if !r.machine.Is(ModeConfirm) {
		return layout.Dimensions{}
	}

	return r.modalBackdrop(gtx, 350, &r.confirmCancelBtn, func(gtx layout.Context) layout.Dimensions {
		return r.modalContent(gtx, "Remove Button?", colDanger,
			func(gtx layout.Context) layout.Dimensions {
				msg := fmt.Sprintf("Remove %q from the deck? The target it points to is not touched.", r.confirmLabel)
				lbl := material.Body2(r.Theme, msg)
				lbl.Color = colText
				return lbl.Layout(gtx)
			},
			func(gtx layout.Context) layout.Dimensions {
				return r.dialogButtonRow(gtx, &r.confirmCancelBtn, &r.confirmOKBtn, "Cancel", "Remove", ButtonDanger)
			},
		)
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
