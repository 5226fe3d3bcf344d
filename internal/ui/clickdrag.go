package ui

import (
	"image"
	"io"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// TouchKind classifies a resolved pointer interaction on a Touchable.
type TouchKind int

const (
	// TouchClick is a primary-button click that did not turn into a drag.
	TouchClick TouchKind = iota
	// TouchRightClick is a secondary-button press.
	TouchRightClick
)

// TouchEvent is a resolved click on a Touchable area.
type TouchEvent struct {
	Kind      TouchKind
	Position  image.Point
	Modifiers key.Modifiers
}

// Touchable handles click, right-click, and drag gestures on the same area.
// It combines gesture.Click for click detection with gesture.Drag for drag
// operations, and doubles as a transfer source for drag-and-drop.
//
// gesture.Drag has a built-in movement threshold before it activates. Click
// events are processed first and suppressed once that threshold is crossed,
// so both interactions coexist on one widget.
type Touchable struct {
	// Type is the MIME type offered for drag-and-drop transfers.
	Type string

	click gesture.Click
	drag  gesture.Drag

	// Drag state for rendering the drag shadow.
	clickPos f32.Point // position where the press landed
	dragPos  f32.Point // current offset relative to the press

	// pid coordinates click vs drag for a single pointer.
	pid         pointer.ID
	dragStarted bool
}

// Dragging reports whether a drag is in progress.
func (t *Touchable) Dragging() bool {
	return t.drag.Dragging()
}

// Pressed reports whether a pointer is pressing.
func (t *Touchable) Pressed() bool {
	return t.drag.Pressed()
}

// Hovered reports whether a pointer is inside the area.
func (t *Touchable) Hovered() bool {
	return t.click.Hovered()
}

// Pos returns the current drag offset relative to the press position.
func (t *Touchable) Pos() f32.Point {
	return t.dragPos
}

// Update processes transfer events and returns the MIME type when a drop
// target requested this widget's drag data. Call after Layout.
func (t *Touchable) Update(gtx layout.Context) (mime string, requested bool) {
	for {
		ev, ok := gtx.Event(transfer.SourceFilter{Target: t, Type: t.Type})
		if !ok {
			break
		}
		if e, ok := ev.(transfer.RequestEvent); ok {
			return e.Type, true
		}
	}
	return "", false
}

// Offer provides data for a drag-and-drop transfer.
func (t *Touchable) Offer(gtx layout.Context, mime string, data io.ReadCloser) {
	gtx.Execute(transfer.OfferCmd{Tag: t, Type: mime, Data: data})
}

// Layout renders the widget and resolves click/drag interactions. The w
// widget is rendered in place; the drag widget is rendered at the pointer
// offset while a drag is in progress, giving the floating shadow. Returns
// the dimensions and the click event for this frame, if any.
func (t *Touchable) Layout(gtx layout.Context, w, drag layout.Widget) (layout.Dimensions, *TouchEvent) {
	if !gtx.Enabled() {
		return w(gtx), nil
	}

	var touchEvt *TouchEvent

	// Click events first: they are delivered against the previous frame's
	// hit area, and a click only counts if no drag started.
	for {
		e, ok := t.click.Update(gtx.Source)
		if !ok {
			break
		}
		switch e.Kind {
		case gesture.KindClick:
			if !t.dragStarted {
				touchEvt = &TouchEvent{
					Kind:      TouchClick,
					Position:  e.Position,
					Modifiers: e.Modifiers,
				}
			}
		case gesture.KindCancel:
			t.dragStarted = false
		}
	}

	// Secondary button presses arrive through a separate pointer filter;
	// gesture.Click only tracks the primary button.
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: t, Kinds: pointer.Press})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok && e.Kind == pointer.Press && e.Buttons.Contain(pointer.ButtonSecondary) {
			touchEvt = &TouchEvent{
				Kind:      TouchRightClick,
				Position:  image.Pt(int(e.Position.X), int(e.Position.Y)),
				Modifiers: e.Modifiers,
			}
		}
	}

	// Drag events.
	for {
		e, ok := t.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch e.Kind {
		case pointer.Press:
			t.clickPos = e.Position
			t.dragPos = f32.Point{}
			t.pid = e.PointerID
			t.dragStarted = false
		case pointer.Drag:
			if e.PointerID == t.pid {
				t.dragStarted = true
				t.dragPos = e.Position.Sub(t.clickPos)
			}
		case pointer.Release, pointer.Cancel:
			t.dragStarted = false
		}
	}

	dims := w(gtx)

	// Hit area for next frame's events.
	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	t.click.Add(gtx.Ops)
	t.drag.Add(gtx.Ops)
	event.Op(gtx.Ops, t)

	// Drag shadow floats above everything else via op.Defer.
	if drag != nil && t.drag.Pressed() && t.dragStarted {
		rec := op.Record(gtx.Ops)
		op.Offset(t.dragPos.Round()).Add(gtx.Ops)
		drag(gtx)
		op.Defer(gtx.Ops, rec.Stop())
	}

	return dims, touchEvt
}
