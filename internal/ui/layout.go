package ui

import (
	"image"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/quickdeck/internal/deck"
)

func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()

	r.lastBounds = state.Bounds
	r.updateToast()

	paint.FillShape(gtx.Ops, colBg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	// ===== TRACK GLOBAL MOUSE POSITION =====
	// Register for all pointer events at root level to track mouse position
	// Use PassOp so events pass through to elements underneath
	areaStack := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	passOp := pointer.PassOp{}.Push(gtx.Ops)
	event.Op(gtx.Ops, &r.mouseTag)
	passOp.Pop()
	areaStack.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{Target: &r.mouseTag, Kinds: pointer.Move | pointer.Press | pointer.Drag})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			r.mousePos = image.Pt(int(e.Position.X), int(e.Position.Y))
		}
	}

	// ===== KEYBOARD FOCUS =====
	keyTag := &r.keyTag
	event.Op(gtx.Ops, keyTag)
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: keyTag})
		r.focused = true
	}

	eventOut := r.processGlobalInput(gtx, state)

	// ===== MAIN LAYOUT =====
	layout.Stack{}.Layout(gtx,
		// Background layer: left clicks dismiss menus and drop the selection,
		// right clicks on empty space raise the background menu.
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			for {
				ev, ok := gtx.Event(pointer.Filter{Target: &r.bgRightTag, Kinds: pointer.Press})
				if !ok {
					break
				}
				if e, ok := ev.(pointer.Event); ok && e.Kind == pointer.Press && e.Buttons.Contain(pointer.ButtonSecondary) {
					r.openMenu(image.Pt(int(e.Position.X), int(e.Position.Y)), "")
				}
			}

			if r.bgClick.Clicked(gtx) {
				switch {
				case r.movePending:
					if pos, ok := r.CellAtPoint(r.mousePos); ok {
						eventOut = UIEvent{Action: ActionMoveButton, ButtonID: r.moveID, Pos: pos}
					}
					r.movePending = false
					r.moveID = ""
				case r.machine.Is(ModeMenu):
					r.dismissOverlay(gtx)
				case r.machine.Is(ModeIdle) && state.Selected != (deck.Position{}):
					eventOut = UIEvent{Action: ActionSelect, Pos: deck.Position{}}
					gtx.Execute(key.FocusCmd{Tag: keyTag})
				}
			}
			dims := r.bgClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			})

			areaStack := clip.Rect{Max: dims.Size}.Push(gtx.Ops)
			passOp := pointer.PassOp{}.Push(gtx.Ops)
			event.Op(gtx.Ops, &r.bgRightTag)
			passOp.Pop()
			areaStack.Pop()
			return dims
		}),

		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			var bannerHeight int
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				// Config error banner (shown when config.json failed to parse)
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					d := r.layoutConfigErrorBanner(gtx, state)
					bannerHeight += d.Size.Y
					return d
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					d := r.layoutImportBanner(gtx, state)
					bannerHeight += d.Size.Y
					return d
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					// Window offset of the grid area, needed to map global
					// cursor coordinates back to cells.
					r.contentOffset = image.Pt(0, bannerHeight)
					return r.layoutGrid(gtx, state, &eventOut)
				}),
			)
		}),

		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutContextMenu(gtx, state, &eventOut) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutEditorModal(gtx, state, &eventOut) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutImportModal(gtx, &eventOut) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutSettingsModal(gtx, state, &eventOut) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutConfirmModal(gtx, &eventOut) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutSearchOverlay(gtx, state, &eventOut) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutHelpModal(gtx) }),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions { return r.layoutToast(gtx) }),
	)

	r.busy.Store(r.machine.Is(ModeEditing) || r.machine.Is(ModeSettings))
	return eventOut
}

func (r *Renderer) layoutConfigErrorBanner(gtx layout.Context, state *State) layout.Dimensions {
	if state.ConfigErr == "" {
		return layout.Dimensions{}
	}

	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Top: unit.Dp(4)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			// Draw red background
			height := gtx.Dp(28)
			paint.FillShape(gtx.Ops, colErrorBannerBg, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, height)}.Op())

			return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, "Config error: "+state.ConfigErr+" (using defaults)")
					lbl.Color = colErrorBannerText
					lbl.Font.Weight = font.Bold
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				})
		})
}

// layoutImportBanner shows a slim progress strip while a folder scan runs.
func (r *Renderer) layoutImportBanner(gtx layout.Context, state *State) layout.Dimensions {
	if !state.Importing {
		return layout.Dimensions{}
	}

	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Top: unit.Dp(4)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			height := gtx.Dp(24)
			paint.FillShape(gtx.Ops, colSurface, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, height)}.Op())

			return layout.Inset{Top: unit.Dp(3), Bottom: unit.Dp(3), Left: unit.Dp(12)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					lbl := material.Caption(r.Theme, "Importing folder…")
					lbl.Color = colAccent
					return lbl.Layout(gtx)
				})
		})
}
