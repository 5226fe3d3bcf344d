package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/quickdeck/internal/debug"
)

// Context menus: one variant for a button cell, one for empty space.

const menuWidth = unit.Dp(180)

func (r *Renderer) layoutContextMenu(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	if !r.machine.Is(ModeMenu) {
		return layout.Dimensions{}
	}

	if r.menuIsBackground {
		return r.layoutBackgroundMenu(gtx, state)
	}

	b := state.ButtonByID(r.menuButtonID)
	if b == nil {
		// Button vanished under the menu (config reload)
		r.dismissOverlay(gtx)
		return layout.Dimensions{}
	}

	// 5 items + separator
	menuHeight := 5*gtx.Dp(32) + gtx.Dp(9)
	pos := clampMenuPos(r.menuPos, gtx.Dp(menuWidth), menuHeight, gtx.Constraints.Max)
	defer op.Offset(pos).Push(gtx.Ops).Pop()

	// Handle clicks before layout so the menu closes on the same frame
	if r.menuLaunchBtn.Clicked(gtx) {
		if b.Launchable() {
			*eventOut = UIEvent{Action: ActionLaunch, ButtonID: b.Button.ID}
		}
		r.dismissOverlay(gtx)
	}
	if r.menuEditBtn.Clicked(gtx) {
		debug.Log(debug.UI, "menu edit button=%s", b.Button.ID)
		r.openEditor(state, b.Button.ID, b.Button.Position)
	}
	if r.menuCopyBtn.Clicked(gtx) {
		*eventOut = UIEvent{Action: ActionCopyTarget, ButtonID: b.Button.ID}
		r.dismissOverlay(gtx)
	}
	if r.menuMoveBtn.Clicked(gtx) {
		r.movePending = true
		r.moveID = b.Button.ID
		r.dismissOverlay(gtx)
		r.ShowToast("Click a destination cell", ToastInfo)
	}
	if r.menuRemoveBtn.Clicked(gtx) {
		r.openConfirm(b.Button.ID, b.Button.Label)
	}

	return r.menuShell(gtx, menuWidth, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuLaunchBtn, "Launch")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuEditBtn, "Edit…")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuCopyBtn, "Copy Path")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuMoveBtn, "Move…")
			}),
			layout.Rigid(r.layoutMenuSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItemDanger(gtx, &r.menuRemoveBtn, "Remove")
			}),
		)
	})
}

func (r *Renderer) layoutBackgroundMenu(gtx layout.Context, state *State) layout.Dimensions {
	menuHeight := 4*gtx.Dp(32) + gtx.Dp(9)
	pos := clampMenuPos(r.menuPos, gtx.Dp(menuWidth), menuHeight, gtx.Constraints.Max)

	// The cell under the click seeds new buttons and imports
	targetCell, _ := r.CellAtPoint(r.menuPos)

	defer op.Offset(pos).Push(gtx.Ops).Pop()

	if r.menuNewBtn.Clicked(gtx) {
		debug.Log(debug.UI, "menu new button cell=%d,%d", targetCell.Row, targetCell.Col)
		r.openEditor(state, "", targetCell)
	}
	if r.menuImportBtn.Clicked(gtx) {
		r.openImport(targetCell)
	}
	if r.menuSettingsBtn.Clicked(gtx) {
		r.openSettings(state)
	}
	if r.menuHelpBtn.Clicked(gtx) {
		r.openHelp()
	}

	return r.menuShell(gtx, menuWidth, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuNewBtn, "New Button…")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuImportBtn, "Import Folder…")
			}),
			layout.Rigid(r.layoutMenuSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuSettingsBtn, "Settings…")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return r.menuItem(gtx, &r.menuHelpBtn, "Help")
			}),
		)
	})
}

// clampMenuPos flips the menu to the other side of the cursor when it would
// overflow the window, then clamps to the window edges.
func clampMenuPos(at image.Point, w, h int, max image.Point) image.Point {
	pos := at
	if pos.X+w > max.X {
		pos.X -= w
	}
	if pos.Y+h > max.Y {
		pos.Y -= h
	}
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	return pos
}
