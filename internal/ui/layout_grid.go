package ui

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/quickdeck/internal/action"
	"github.com/justyntemme/quickdeck/internal/debug"
	"github.com/justyntemme/quickdeck/internal/deck"
)

// fileDropMIME is the MIME type window managers use for dragged files.
const fileDropMIME = "text/uri-list"

func (r *Renderer) layoutGrid(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	area := gtx.Constraints.Max
	r.metrics = deck.ComputeCellMetrics(area.X, area.Y, state.Bounds, state.BaseGap)

	gridSize := r.metrics.GridSize(state.Bounds)
	center := image.Pt((area.X-gridSize.X)/2, (area.Y-gridSize.Y)/2)
	if center.X < 0 {
		center.X = 0
	}
	if center.Y < 0 {
		center.Y = 0
	}
	r.gridOrigin = r.contentOffset.Add(center)

	if len(r.cellTags) < state.Bounds.Cells() {
		r.cellTags = make([]struct{}, state.Bounds.Cells())
	}

	// Cell under the cursor while a drag or an armed move wants a target.
	var hintPos deck.Position
	hintOK := false
	if r.dragID != "" || r.movePending {
		hintPos, hintOK = r.CellAtPoint(r.mousePos)
	}

	defer op.Offset(center).Push(gtx.Ops).Pop()

	// Empty cells first so occupied cells draw over them.
	for row := 1; row <= state.Bounds.Rows; row++ {
		for col := 1; col <= state.Bounds.Cols; col++ {
			pos := deck.Position{Row: row, Col: col}
			if state.ButtonAt(pos) != nil {
				continue
			}
			r.layoutEmptyCell(gtx, state, pos, hintOK && hintPos == pos, eventOut)
		}
	}

	for i := range state.Buttons {
		b := &state.Buttons[i]
		r.layoutButtonCell(gtx, state, b, hintOK && hintPos == b.Button.Position, eventOut)
	}

	// Drag lifecycle for the mode machine.
	dragging := ""
	for i := range state.Buttons {
		if state.Buttons[i].Touch.Dragging() {
			dragging = state.Buttons[i].Button.ID
			break
		}
	}
	switch {
	case dragging != "" && r.dragID == "":
		debug.Log(debug.UI, "drag start button=%s", dragging)
		r.dragID = dragging
		r.machine.BeginDrag()
	case dragging == "" && r.dragID != "":
		debug.Log(debug.UI, "drag end button=%s", r.dragID)
		r.dragID = ""
		r.machine.EndDrag()
	}
	if r.dragID != "" || r.movePending {
		// Keep frames coming so the drag shadow and drop hint track the cursor
		gtx.Execute(op.InvalidateCmd{})
	}

	return layout.Dimensions{Size: area}
}

func (r *Renderer) layoutEmptyCell(gtx layout.Context, state *State, pos deck.Position, dropHint bool, eventOut *UIEvent) {
	origin := r.metrics.CellOrigin(pos)
	defer op.Offset(origin).Push(gtx.Ops).Pop()

	cell := r.metrics.Cell
	bounds := image.Rect(0, 0, cell, cell)
	rr := gtx.Dp(6)
	paint.FillShape(gtx.Ops, colCellEmpty, clip.RRect{Rect: bounds, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
	strokeRRect(gtx, bounds, rr, gtx.Dp(1), colBorder)

	if dropHint {
		paint.FillShape(gtx.Ops, colDropHint, clip.RRect{Rect: bounds, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
	}
	if pos == state.Selected {
		strokeRRect(gtx, bounds, rr, gtx.Dp(2), colAccent)
	}

	tag := &r.cellTags[cellIndex(pos, state.Bounds)]
	r.processDropEvents(gtx, tag, pos, eventOut)

	// PassOp keeps the background click layer reachable through the cell.
	passStack := pointer.PassOp{}.Push(gtx.Ops)
	stack := clip.Rect{Max: bounds.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, tag)
	stack.Pop()
	passStack.Pop()
}

func (r *Renderer) layoutButtonCell(gtx layout.Context, state *State, b *DeckButton, dropHint bool, eventOut *UIEvent) {
	pos := b.Button.Position
	if !state.Bounds.Contains(pos) {
		return
	}
	origin := r.metrics.CellOrigin(pos)
	defer op.Offset(origin).Push(gtx.Ops).Pop()

	cell := r.metrics.Cell
	cgtx := gtx
	cgtx.Constraints = layout.Exact(image.Pt(cell, cell))

	// MIME type must be set before Update() and Layout()
	b.Touch.Type = ButtonDragMIME

	r.processDropEvents(cgtx, &b.DropTag, pos, eventOut)

	dims, touchEvt := b.Touch.Layout(cgtx,
		func(gtx layout.Context) layout.Dimensions {
			return r.renderButtonContent(gtx, state, b, cell, dropHint)
		},
		func(gtx layout.Context) layout.Dimensions {
			return r.renderDragBadge(gtx, b)
		},
	)

	if touchEvt != nil {
		switch touchEvt.Kind {
		case TouchClick:
			r.machine.Dismiss()
			if r.movePending {
				*eventOut = UIEvent{Action: ActionMoveButton, ButtonID: r.moveID, Pos: pos}
				r.movePending = false
				r.moveID = ""
			} else if b.Launchable() {
				*eventOut = UIEvent{Action: ActionLaunch, ButtonID: b.Button.ID}
			} else {
				r.ShowError("Button has no valid action")
			}
			gtx.Execute(key.FocusCmd{Tag: &r.keyTag})
			gtx.Execute(op.InvalidateCmd{})

		case TouchRightClick:
			r.openMenu(r.mousePos, b.Button.ID)
			gtx.Execute(op.InvalidateCmd{})
		}
	}

	// Register drop target AFTER Touch.Layout with the same dimensions.
	// PassOp is critical: without it, the drop target clip area would block
	// pointer events from reaching the underlying Touchable.
	passStack := pointer.PassOp{}.Push(gtx.Ops)
	stack := clip.Rect{Max: dims.Size}.Push(gtx.Ops)
	event.Op(gtx.Ops, &b.DropTag)
	stack.Pop()
	passStack.Pop()

	// Serve drag data when a drop target accepts - call Update() AFTER Layout()
	if mime, ok := b.Touch.Update(gtx); ok && mime == ButtonDragMIME {
		b.Touch.Offer(gtx, mime, io.NopCloser(strings.NewReader(b.Button.ID)))
	}
}

// processDropEvents drains transfer events for one cell. Internal drags carry
// a button ID, external drops a uri-list of files.
func (r *Renderer) processDropEvents(gtx layout.Context, tag event.Tag, pos deck.Position, eventOut *UIEvent) {
	for {
		ev, ok := gtx.Event(
			transfer.TargetFilter{Target: tag, Type: ButtonDragMIME},
			transfer.TargetFilter{Target: tag, Type: fileDropMIME},
		)
		if !ok {
			break
		}
		e, ok := ev.(transfer.DataEvent)
		if !ok {
			continue
		}
		reader := e.Open()
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			continue
		}

		switch e.Type {
		case ButtonDragMIME:
			if id := strings.TrimSpace(string(data)); id != "" {
				debug.Log(debug.UI, "drop button=%s cell=%d,%d", id, pos.Row, pos.Col)
				*eventOut = UIEvent{Action: ActionMoveButton, ButtonID: id, Pos: pos}
			}
		case fileDropMIME:
			if paths := parseURIList(string(data)); len(paths) > 0 {
				debug.Log(debug.UI, "drop %d files cell=%d,%d", len(paths), pos.Row, pos.Col)
				*eventOut = UIEvent{Action: ActionDropFiles, Paths: paths, Pos: pos}
			}
		}
	}
}

func (r *Renderer) renderButtonContent(gtx layout.Context, state *State, b *DeckButton, cell int, dropHint bool) layout.Dimensions {
	selected := state.Selected == b.Button.Position

	return layout.Stack{Alignment: layout.Center}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			bg := colCell
			if b.Touch.Hovered() {
				bg = colCellHover
			}
			rr := gtx.Dp(6)
			bounds := image.Rectangle{Max: gtx.Constraints.Min}
			paint.FillShape(gtx.Ops, bg, clip.RRect{Rect: bounds, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
			if dropHint {
				paint.FillShape(gtx.Ops, colDropHint, clip.RRect{Rect: bounds, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
			}
			if selected {
				strokeRRect(gtx, bounds, rr, gtx.Dp(2), colAccent)
			}
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			iconSize := cell * 3 / 5
			if !state.ShowLabels {
				iconSize = cell * 7 / 10
			}
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return r.drawButtonIcon(gtx, b, iconSize)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if !state.ShowLabels {
						return layout.Dimensions{}
					}
					gtx.Constraints.Min.X = cell
					gtx.Constraints.Max.X = cell
					return layout.Inset{Top: unit.Dp(4), Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							lbl := material.Caption(r.Theme, truncateLabel(b.Button.Label, cell/7))
							lbl.Alignment = text.Middle
							lbl.MaxLines = 1
							lbl.Color = colText
							return lbl.Layout(gtx)
						})
				}),
			)
		}),
	)
}

// drawButtonIcon renders the configured icon image, falling back to an action
// type glyph while it loads or when none is set.
func (r *Renderer) drawButtonIcon(gtx layout.Context, b *DeckButton, size int) layout.Dimensions {
	if b.Button.Icon != "" {
		if img, _, ok := r.icons.Get(b.Button.Icon); ok {
			gtx.Constraints.Min = image.Pt(size, size)
			gtx.Constraints.Max = image.Pt(size, size)
			widget.Image{
				Src:      img,
				Fit:      widget.Contain,
				Position: layout.Center,
			}.Layout(gtx)
			return layout.Dimensions{Size: image.Pt(size, size)}
		}
		r.icons.RequestLoad(b.Button.Icon)
	}

	switch b.Button.Action.Type {
	case action.TypeTerminal:
		drawTerminalGlyph(gtx.Ops, size)
	case action.TypeOpen:
		target := ""
		if b.Button.Action.Open != nil {
			target = b.Button.Action.Open.Target
		}
		if looksLikeDir(target) {
			drawFolderGlyph(gtx.Ops, size)
		} else {
			drawFileGlyph(gtx.Ops, size, strings.ToLower(filepath.Ext(target)))
		}
	default:
		drawAppGlyph(gtx.Ops, size)
	}
	return layout.Dimensions{Size: image.Pt(size, size)}
}

// renderDragBadge is the compact shadow that follows the cursor during a drag.
func (r *Renderer) renderDragBadge(gtx layout.Context, b *DeckButton) layout.Dimensions {
	dragHeight := gtx.Dp(36)
	dragWidth := gtx.Dp(160)

	cornerRadius := gtx.Dp(4)
	rr := clip.RRect{
		Rect: image.Rect(0, 0, dragWidth, dragHeight),
		NE:   cornerRadius, NW: cornerRadius, SE: cornerRadius, SW: cornerRadius,
	}
	paint.FillShape(gtx.Ops, colCellHover, rr.Op(gtx.Ops))
	strokeRRect(gtx, image.Rect(0, 0, dragWidth, dragHeight), cornerRadius, gtx.Dp(1), colAccent)

	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.drawButtonIcon(gtx, b, gtx.Dp(24))
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(r.Theme, b.Button.Label)
					lbl.Color = colText
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
			)
		})
}

// strokeRRect outlines a rounded rect. radius and width are in pixels.
func strokeRRect(gtx layout.Context, rect image.Rectangle, radius, width int, col color.NRGBA) {
	path := clip.RRect{Rect: rect, NE: radius, NW: radius, SE: radius, SW: radius}.Path(gtx.Ops)
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path, Width: float32(width)}.Op())
}

// looksLikeDir guesses whether an open target is a directory. Used only to
// pick a glyph; the launch layer does its own resolution.
func looksLikeDir(target string) bool {
	if target == "" || strings.Contains(target, "://") {
		return false
	}
	if strings.HasSuffix(target, "/") || strings.HasSuffix(target, string(filepath.Separator)) {
		return true
	}
	return filepath.Ext(target) == ""
}

// parseURIList decodes a text/uri-list payload into local file paths.
// Non-file URIs and comment lines are skipped.
func parseURIList(data string) []string {
	var paths []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		path := line
		if strings.HasPrefix(line, "file://") {
			path = strings.TrimPrefix(line, "file://")
			// Strip a host component: file://host/path
			if !strings.HasPrefix(path, "/") {
				if idx := strings.Index(path, "/"); idx >= 0 {
					path = path[idx:]
				}
			}
			path = unescapeURIPath(path)
			// Windows form file:///C:/dir -> C:/dir
			if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
				path = path[1:]
			}
		} else if strings.Contains(line, "://") {
			continue
		}
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// unescapeURIPath decodes percent escapes, leaving malformed sequences as-is.
func unescapeURIPath(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
