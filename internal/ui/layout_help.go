package ui

import (
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// helpText is the usage guide, rendered through the markdown pipeline. The
// hotkey reference below it is built live from the configured bindings.
const helpText = `## Buttons

Click a button to launch it. Right-click a button for launch, edit,
move, copy, and remove. Right-click an empty cell to create a button
there or to import a folder.

Drag a button onto a free cell to move it. Dropping onto an occupied
cell swaps the two buttons.

Drop files or folders from your file manager onto the grid to turn
them into buttons. Executables become launch buttons, everything else
opens with its default application.

## Importing folders

*Import Folder* scans a directory and creates a button for every entry
found, filling free cells in reading order. The scan depth is set in
Settings.

## Searching

The search palette matches button labels loosely, so ` + "`blndr`" + `
finds **Blender**. Buttons you launch often rank higher.
`

func (r *Renderer) layoutHelpModal(gtx layout.Context) layout.Dimensions {
	if !r.machine.Is(ModeHelp) {
		return layout.Dimensions{}
	}
	if r.helpCloseBtn.Clicked(gtx) {
		r.dismissOverlay(gtx)
	}
	if !r.machine.Is(ModeHelp) {
		return layout.Dimensions{}
	}

	maxHeight := gtx.Constraints.Max.Y * 80 / 100
	if min := gtx.Dp(300); maxHeight < min {
		maxHeight = min
	}

	return r.modalBackdrop(gtx, 460, &r.helpCloseBtn, func(gtx layout.Context) layout.Dimensions {
		if gtx.Constraints.Max.Y > maxHeight {
			gtx.Constraints.Max.Y = maxHeight
		}
		return r.modalContentWithClose(gtx, "Help", colText, &r.helpCloseBtn,
			func(gtx layout.Context) layout.Dimensions {
				n := len(r.helpBlocks) + 1
				return material.List(r.Theme, &r.helpList).Layout(gtx, n, func(gtx layout.Context, i int) layout.Dimensions {
					if i < len(r.helpBlocks) {
						return layout.Inset{Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							return r.LayoutMarkdownBlock(gtx, r.helpBlocks[i])
						})
					}
					return r.layoutHotkeyReference(gtx)
				})
			},
			nil,
		)
	})
}

type hotkeyRow struct {
	action  string
	binding string
}

func (r *Renderer) layoutHotkeyReference(gtx layout.Context) layout.Dimensions {
	var configured []hotkeyRow
	if hk := r.hotkeys; hk != nil {
		configured = []hotkeyRow{
			{"Search", hk.Search.String()},
			{"New button", hk.NewButton.String()},
			{"Edit selected", hk.EditButton.String()},
			{"Remove selected", hk.RemoveButton.String()},
			{"Import folder", hk.ImportFolder.String()},
			{"Toggle labels", hk.ToggleLabels.String()},
			{"Settings", hk.Settings.String()},
			{"Help", hk.Help.String()},
			{"Quit", hk.Quit.String()},
		}
	}
	builtin := []hotkeyRow{
		{"Move selection", "Arrow keys"},
		{"Launch selected", "Enter"},
		{"Launch button 1-9", "1-9"},
		{"Jump to label", "A-Z"},
		{"Search", "/"},
		{"Close overlay", "Esc"},
	}

	section := func(title string, rows []hotkeyRow) []layout.FlexChild {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Caption(r.Theme, title)
				lbl.Color = colMuted
				lbl.Font.Weight = font.Bold
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		}
		for _, row := range rows {
			row := row
			if row.binding == "" {
				continue
			}
			children = append(children,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutHotkeyRow(gtx, row)
				}),
				layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			)
		}
		children = append(children, layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout))
		return children
	}

	var children []layout.FlexChild
	children = append(children, section("HOTKEYS", configured)...)
	children = append(children, section("KEYS", builtin)...)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (r *Renderer) layoutHotkeyRow(gtx layout.Context, row hotkeyRow) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, row.action)
			lbl.Color = colText
			return lbl.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.E.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, row.binding)
				lbl.Color = colMuted
				return lbl.Layout(gtx)
			})
		}),
	)
}
