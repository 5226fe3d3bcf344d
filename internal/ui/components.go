package ui

import (
	"image"
	"image/color"
	"strings"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Shared widgets: menu shells, modal scaffolding, styled buttons, glyphs.

// ButtonStyle selects the fill for styledButton.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonDanger
)

// menuShell draws a fixed-width popup surface with a layered drop shadow.
// Content is measured with a macro first so the shadows can match its size.
func (r *Renderer) menuShell(gtx layout.Context, width unit.Dp, content layout.Widget) layout.Dimensions {
	cornerRadius := gtx.Dp(8)
	widthPx := gtx.Dp(width)

	macro := op.Record(gtx.Ops)
	gtx.Constraints.Min.X = widthPx
	gtx.Constraints.Max.X = widthPx
	contentDims := widget.Border{Color: colBorder, Width: unit.Dp(1), CornerRadius: unit.Dp(8)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Stack{}.Layout(gtx,
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					rr := clip.RRect{
						Rect: image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y),
						NE:   cornerRadius, NW: cornerRadius, SE: cornerRadius, SW: cornerRadius,
					}
					paint.FillShape(gtx.Ops, colSurface, rr.Op(gtx.Ops))
					return layout.Dimensions{Size: gtx.Constraints.Min}
				}),
				layout.Stacked(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min.X = widthPx
					gtx.Constraints.Max.X = widthPx
					return content(gtx)
				}),
			)
		})
	contentCall := macro.Stop()

	// Shadow layers outer to inner for proper compositing.
	outerOffset := gtx.Dp(6)
	paint.FillShape(gtx.Ops, colShadowOuter, clip.RRect{
		Rect: image.Rect(outerOffset, outerOffset, contentDims.Size.X+outerOffset, contentDims.Size.Y+outerOffset),
		NE:   cornerRadius + 2, NW: cornerRadius + 2, SE: cornerRadius + 2, SW: cornerRadius + 2,
	}.Op(gtx.Ops))

	midOffset := gtx.Dp(4)
	paint.FillShape(gtx.Ops, color.NRGBA{A: 35}, clip.RRect{
		Rect: image.Rect(midOffset, midOffset, contentDims.Size.X+midOffset, contentDims.Size.Y+midOffset),
		NE:   cornerRadius + 1, NW: cornerRadius + 1, SE: cornerRadius + 1, SW: cornerRadius + 1,
	}.Op(gtx.Ops))

	innerOffset := gtx.Dp(2)
	paint.FillShape(gtx.Ops, colShadow, clip.RRect{
		Rect: image.Rect(innerOffset, innerOffset, contentDims.Size.X+innerOffset, contentDims.Size.Y+innerOffset),
		NE:   cornerRadius, NW: cornerRadius, SE: cornerRadius, SW: cornerRadius,
	}.Op(gtx.Ops))

	contentCall.Add(gtx.Ops)

	return contentDims
}

// menuItemWithColor renders a clickable menu row with the given text color.
func (r *Renderer) menuItemWithColor(gtx layout.Context, btn *widget.Clickable, label string, textColor color.NRGBA) layout.Dimensions {
	return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, label)
			lbl.Color = textColor
			return lbl.Layout(gtx)
		})
	})
}

func (r *Renderer) menuItem(gtx layout.Context, btn *widget.Clickable, label string) layout.Dimensions {
	return r.menuItemWithColor(gtx, btn, label, colText)
}

func (r *Renderer) menuItemDanger(gtx layout.Context, btn *widget.Clickable, label string) layout.Dimensions {
	return r.menuItemWithColor(gtx, btn, label, colDanger)
}

func (r *Renderer) layoutMenuSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(1))
		paint.FillShape(gtx.Ops, colBorder, clip.Rect{Max: size}.Op())
		return layout.Dimensions{Size: size}
	})
}

func (r *Renderer) layoutHorizontalSeparator(gtx layout.Context, col color.NRGBA) layout.Dimensions {
	size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(1))
	paint.FillShape(gtx.Ops, col, clip.Rect{Max: size}.Op())
	return layout.Dimensions{Size: size}
}

// modalBackdrop dims the whole window and centers a fixed-width shell on
// top. Clicks on the dim layer register against dismiss, so the same
// Clicked() check covers both the X button and the backdrop; pass nil for
// dialogs that must be answered.
func (r *Renderer) modalBackdrop(gtx layout.Context, width unit.Dp, dismiss *widget.Clickable, content layout.Widget) layout.Dimensions {
	backdrop := dismiss
	if backdrop == nil {
		backdrop = &r.backdropClick
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colBackdrop, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return backdrop.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Max}
			})
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				// The body swallows clicks so they never fall through
				// to the backdrop underneath.
				return r.modalBodyClick.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return r.menuShell(gtx, width, content)
				})
			})
		}),
	)
}

// modalContent is the standard modal body: colored title, body, and an
// optional button row.
func (r *Renderer) modalContent(gtx layout.Context, title string, titleColor color.NRGBA, body, buttons layout.Widget) layout.Dimensions {
	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				h6 := material.H6(r.Theme, title)
				h6.Color = titleColor
				return h6.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Rigid(body),
		}
		if buttons != nil {
			children = append(children,
				layout.Rigid(layout.Spacer{Height: unit.Dp(20)}.Layout),
				layout.Rigid(buttons),
			)
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

// modalContentWithClose adds a header X button and gives the body the
// remaining height, for tall scrollable modals.
func (r *Renderer) modalContentWithClose(gtx layout.Context, title string, titleColor color.NRGBA, closeBtn *widget.Clickable, body, buttons layout.Widget) layout.Dimensions {
	return layout.UniformInset(unit.Dp(20)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						h6 := material.H6(r.Theme, title)
						h6.Color = titleColor
						return h6.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						closeSize := gtx.Dp(24)
						return material.Clickable(gtx, closeBtn, func(gtx layout.Context) layout.Dimensions {
							return r.drawXIcon(gtx, closeSize, colMuted)
						})
					}),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Flexed(1, body),
		}
		if buttons != nil {
			children = append(children,
				layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
				layout.Rigid(buttons),
			)
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

// dialogButtonRow is the right-aligned cancel/confirm pair.
func (r *Renderer) dialogButtonRow(gtx layout.Context, cancel, ok *widget.Clickable, cancelText, okText string, okStyle ButtonStyle) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.styledButton(gtx, cancel, cancelText, ButtonSecondary)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.styledButton(gtx, ok, okText, okStyle)
		}),
	)
}

func (r *Renderer) styledButton(gtx layout.Context, btn *widget.Clickable, label string, style ButtonStyle) layout.Dimensions {
	b := material.Button(r.Theme, btn, label)
	switch style {
	case ButtonPrimary:
		b.Background = colAccent
		b.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	case ButtonDanger:
		b.Background = colDanger
		b.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	case ButtonSecondary:
		b.Background = colCellEmpty
		b.Color = colText
	}
	return b.Layout(gtx)
}

// drawXIcon strokes a close cross inside a size x size box.
func (r *Renderer) drawXIcon(gtx layout.Context, size int, col color.NRGBA) layout.Dimensions {
	s := float32(size)
	inset := s * 0.3

	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(inset, inset))
	p.LineTo(f32.Pt(s-inset, s-inset))
	p.MoveTo(f32.Pt(s-inset, inset))
	p.LineTo(f32.Pt(inset, s-inset))
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: p.End(), Width: 2}.Op())

	return layout.Dimensions{Size: image.Pt(size, size)}
}

// Action glyphs drawn when a button has no icon image. Material-style flat
// shapes built from filled rects, sized to the given box.

func drawAppGlyph(ops *op.Ops, size int) {
	s := float32(size)

	bodyX := int(s * 0.16)
	bodyY := int(s * 0.16)
	bodyW := int(s * 0.68)

	light := lighten(colAccent, 180)
	paint.FillShape(ops, light, clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyW),
	}.Op())

	borderW := 2
	strokeRect(ops, colAccent, image.Rect(bodyX, bodyY, bodyX+bodyW, bodyY+bodyW), borderW)

	// Play marker in the center.
	markW := int(s * 0.22)
	markX := int(s*0.5) - markW/2
	markY := int(s*0.5) - markW/2
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(markX, markY),
		Max: image.Pt(markX+markW, markY+markW),
	}.Op())
}

func drawFolderGlyph(ops *op.Ops, size int) {
	s := float32(size)

	bodyY := int(s * 0.28)
	bodyH := int(s * 0.58)
	bodyW := int(s * 0.76)
	bodyX := int(s * 0.12)

	paint.FillShape(ops, lighten(colAccent, 180), clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyH),
	}.Op())

	borderW := 2
	strokeRect(ops, colAccent, image.Rect(bodyX, bodyY, bodyX+bodyW, bodyY+bodyH), borderW)

	// Manila tab.
	tabW := int(s * 0.30)
	tabH := int(s * 0.12)
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(bodyX, bodyY-tabH),
		Max: image.Pt(bodyX+tabW, bodyY+borderW),
	}.Op())
}

func drawFileGlyph(ops *op.Ops, size int, ext string) {
	s := float32(size)

	fileX := int(s * 0.22)
	fileY := int(s * 0.08)
	fileW := int(s * 0.56)
	fileH := int(s * 0.78)

	paint.FillShape(ops, lighten(colAccent, 195), clip.Rect{
		Min: image.Pt(fileX, fileY),
		Max: image.Pt(fileX+fileW, fileY+fileH),
	}.Op())

	borderW := 2
	strokeRect(ops, colAccent, image.Rect(fileX, fileY, fileX+fileW, fileY+fileH), borderW)

	// Folded corner.
	cornerSize := int(s * 0.12)
	paint.FillShape(ops, colAccent, clip.Rect{
		Min: image.Pt(fileX+fileW-cornerSize, fileY),
		Max: image.Pt(fileX+fileW, fileY+cornerSize),
	}.Op())

	if ext != "" && len(ext) <= 5 {
		ext = strings.ToUpper(strings.TrimPrefix(ext, "."))
		boxY := int(s * 0.50)
		boxH := int(s * 0.22)
		boxW := int(s * 0.44)
		boxX := int(s*0.5) - boxW/2

		paint.FillShape(ops, extensionColor(ext), clip.Rect{
			Min: image.Pt(boxX, boxY),
			Max: image.Pt(boxX+boxW, boxY+boxH),
		}.Op())
	}
}

func drawTerminalGlyph(ops *op.Ops, size int) {
	s := float32(size)

	bodyX := int(s * 0.12)
	bodyY := int(s * 0.18)
	bodyW := int(s * 0.76)
	bodyH := int(s * 0.60)

	paint.FillShape(ops, color.NRGBA{R: 40, G: 42, B: 46, A: 255}, clip.Rect{
		Min: image.Pt(bodyX, bodyY),
		Max: image.Pt(bodyX+bodyW, bodyY+bodyH),
	}.Op())
	strokeRect(ops, colAccent, image.Rect(bodyX, bodyY, bodyX+bodyW, bodyY+bodyH), 2)

	// Prompt chevron and cursor bar.
	green := color.NRGBA{R: 80, G: 220, B: 100, A: 255}
	chevW := int(s * 0.06)
	chevX := bodyX + int(s*0.10)
	chevY := bodyY + int(s*0.16)
	chevH := int(s * 0.24)
	paint.FillShape(ops, green, clip.Rect{
		Min: image.Pt(chevX, chevY),
		Max: image.Pt(chevX+chevW, chevY+chevH),
	}.Op())
	paint.FillShape(ops, green, clip.Rect{
		Min: image.Pt(chevX+chevW, chevY+chevH/2-chevW/2),
		Max: image.Pt(chevX+chevW+int(s*0.10), chevY+chevH/2+chevW/2),
	}.Op())

	barW := int(s * 0.16)
	barY := bodyY + bodyH - int(s*0.20)
	paint.FillShape(ops, green, clip.Rect{
		Min: image.Pt(chevX+chevW+int(s*0.14), barY),
		Max: image.Pt(chevX+chevW+int(s*0.14)+barW, barY+chevW),
	}.Op())
}

// strokeRect outlines a rect with four filled edges.
func strokeRect(ops *op.Ops, col color.NRGBA, rect image.Rectangle, w int) {
	paint.FillShape(ops, col, clip.Rect{Min: rect.Min, Max: image.Pt(rect.Max.X, rect.Min.Y+w)}.Op())
	paint.FillShape(ops, col, clip.Rect{Min: image.Pt(rect.Min.X, rect.Max.Y-w), Max: rect.Max}.Op())
	paint.FillShape(ops, col, clip.Rect{Min: rect.Min, Max: image.Pt(rect.Min.X+w, rect.Max.Y)}.Op())
	paint.FillShape(ops, col, clip.Rect{Min: image.Pt(rect.Max.X-w, rect.Min.Y), Max: rect.Max}.Op())
}

func lighten(c color.NRGBA, by int) color.NRGBA {
	return color.NRGBA{
		R: uint8(min(255, int(c.R)+by)),
		G: uint8(min(255, int(c.G)+by)),
		B: uint8(min(255, int(c.B)+by)),
		A: 255,
	}
}

func extensionColor(ext string) color.NRGBA {
	switch strings.ToLower(ext) {
	case "go":
		return color.NRGBA{R: 0, G: 173, B: 216, A: 255}
	case "js", "ts", "jsx", "tsx":
		return color.NRGBA{R: 247, G: 223, B: 30, A: 255}
	case "py":
		return color.NRGBA{R: 55, G: 118, B: 171, A: 255}
	case "rs":
		return color.NRGBA{R: 222, G: 165, B: 132, A: 255}
	case "md", "txt":
		return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	case "json", "yaml", "yml", "toml":
		return color.NRGBA{R: 130, G: 80, B: 160, A: 255}
	case "html", "css":
		return color.NRGBA{R: 228, G: 77, B: 38, A: 255}
	case "png", "jpg", "jpeg", "gif", "webp":
		return color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	case "pdf":
		return color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	case "exe", "msi", "bat", "cmd":
		return color.NRGBA{R: 96, G: 125, B: 139, A: 255}
	default:
		return colAccent
	}
}

// truncateLabel shortens long button labels keeping the start and end.
func truncateLabel(label string, maxLen int) string {
	if len(label) <= maxLen || maxLen < 5 {
		return label
	}
	keep := (maxLen - 1) / 2
	return label[:keep] + "…" + label[len(label)-keep:]
}
