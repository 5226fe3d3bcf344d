package ui

import (
	"fmt"
	"image"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	goldtext "github.com/yuin/goldmark/text"
)

// MarkdownSpan is a styled segment of markdown text.
type MarkdownSpan struct {
	Text      string
	Bold      bool
	Italic    bool
	Code      bool
	Link      string // URL if this span is a link
	NewLine   bool   // force a line break after this span
}

// MarkdownBlock is one block of markdown content.
type MarkdownBlock struct {
	Spans    []MarkdownSpan
	Type     string // "paragraph", "heading", "code", "list", "quote", "hr"
	Level    int    // heading level 1-6
	Language string // code block language
}

// ParseMarkdown parses markdown into renderable blocks using the goldmark
// AST. Inline styling is reduced to span flags; nesting beyond one list
// level is flattened.
func ParseMarkdown(content string) []MarkdownBlock {
	source := []byte(content)

	md := goldmark.New()
	doc := md.Parser().Parse(goldtext.NewReader(source))

	var blocks []MarkdownBlock

	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			blocks = append(blocks, MarkdownBlock{
				Type:  "heading",
				Level: n.Level,
				Spans: inlineSpans(n, source, false, false),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			// Paragraphs inside list items are covered by the item itself.
			if _, ok := node.Parent().(*ast.ListItem); ok {
				return ast.WalkContinue, nil
			}
			blocks = append(blocks, MarkdownBlock{
				Type:  "paragraph",
				Spans: inlineSpans(n, source, false, false),
			})
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			blocks = append(blocks, MarkdownBlock{
				Type:     "code",
				Language: string(n.Language(source)),
				Spans:    []MarkdownSpan{{Text: rawLines(n, source), Code: true}},
			})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			blocks = append(blocks, MarkdownBlock{
				Type:  "code",
				Spans: []MarkdownSpan{{Text: rawLines(n, source), Code: true}},
			})
			return ast.WalkSkipChildren, nil

		case *ast.List:
			num := n.Start
			if num == 0 {
				num = 1
			}
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				item, ok := child.(*ast.ListItem)
				if !ok {
					continue
				}
				marker := "• "
				if n.IsOrdered() {
					marker = fmt.Sprintf("%d. ", num)
					num++
				}
				spans := []MarkdownSpan{{Text: marker}}
				for c := item.FirstChild(); c != nil; c = c.NextSibling() {
					spans = append(spans, inlineSpans(c, source, false, false)...)
				}
				blocks = append(blocks, MarkdownBlock{Type: "list", Spans: spans})
			}
			return ast.WalkSkipChildren, nil

		case *ast.Blockquote:
			var spans []MarkdownSpan
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				spans = append(spans, inlineSpans(child, source, false, false)...)
			}
			blocks = append(blocks, MarkdownBlock{Type: "quote", Spans: spans})
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			blocks = append(blocks, MarkdownBlock{Type: "hr"})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return blocks
}

// rawLines concatenates a block node's source lines.
func rawLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// inlineSpans flattens inline content into styled spans.
func inlineSpans(node ast.Node, source []byte, bold, italic bool) []MarkdownSpan {
	var spans []MarkdownSpan

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			if t := string(n.Segment.Value(source)); t != "" {
				spans = append(spans, MarkdownSpan{Text: t, Bold: bold, Italic: italic})
			}
			if n.HardLineBreak() || n.SoftLineBreak() {
				spans = append(spans, MarkdownSpan{NewLine: true})
			}

		case *ast.Emphasis:
			cb, ci := bold, italic
			if n.Level >= 2 {
				cb = true
			} else {
				ci = true
			}
			spans = append(spans, inlineSpans(n, source, cb, ci)...)

		case *ast.CodeSpan:
			var code strings.Builder
			for seg := n.FirstChild(); seg != nil; seg = seg.NextSibling() {
				if t, ok := seg.(*ast.Text); ok {
					code.Write(t.Segment.Value(source))
				}
			}
			spans = append(spans, MarkdownSpan{Text: code.String(), Code: true})

		case *ast.Link:
			linkSpans := inlineSpans(n, source, bold, italic)
			for i := range linkSpans {
				linkSpans[i].Link = string(n.Destination)
			}
			spans = append(spans, linkSpans...)

		case *ast.AutoLink:
			url := string(n.URL(source))
			spans = append(spans, MarkdownSpan{Text: url, Link: url})

		case *ast.String:
			spans = append(spans, MarkdownSpan{Text: string(n.Value), Bold: bold, Italic: italic})

		default:
			spans = append(spans, inlineSpans(child, source, bold, italic)...)
		}
	}

	return spans
}

// LayoutMarkdownBlock renders a single markdown block.
func (r *Renderer) LayoutMarkdownBlock(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	switch block.Type {
	case "heading":
		return r.layoutMarkdownHeading(gtx, block)
	case "code":
		return r.layoutMarkdownCodeBlock(gtx, block)
	case "quote":
		return r.layoutMarkdownBlockquote(gtx, block)
	case "hr":
		return r.layoutMarkdownHR(gtx)
	case "list":
		return r.layoutMarkdownListItem(gtx, block)
	default:
		return r.layoutMarkdownParagraph(gtx, block)
	}
}

func (r *Renderer) layoutMarkdownHeading(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	sizes := []unit.Sp{24, 20, 18, 16, 14, 12}
	size := sizes[0]
	if block.Level >= 1 && block.Level <= 6 {
		size = sizes[block.Level-1]
	}

	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.layoutMarkdownSpans(gtx, block.Spans, size, font.Bold)
	})
}

func (r *Renderer) layoutMarkdownParagraph(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.layoutMarkdownSpans(gtx, block.Spans, unit.Sp(14), font.Normal)
	})
}

func (r *Renderer) layoutMarkdownCodeBlock(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		cornerRadius := gtx.Dp(4)

		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := clip.RRect{
					Rect: image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y),
					NE:   cornerRadius, NW: cornerRadius, SE: cornerRadius, SW: cornerRadius,
				}
				paint.FillShape(gtx.Ops, colCodeBg, rr.Op(gtx.Ops))
				paint.FillShape(gtx.Ops, colCodeBorder, clip.Stroke{Path: rr.Path(gtx.Ops), Width: 1}.Op())
				return layout.Dimensions{Size: gtx.Constraints.Max}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					var content strings.Builder
					for _, span := range block.Spans {
						content.WriteString(span.Text)
					}
					lbl := material.Body2(r.Theme, content.String())
					lbl.Font.Typeface = "monospace"
					lbl.TextSize = unit.Sp(12)
					lbl.Color = colText
					return lbl.Layout(gtx)
				})
			}),
		)
	})
}

func (r *Renderer) layoutMarkdownBlockquote(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		borderWidth := gtx.Dp(3)
		cornerRadius := gtx.Dp(2)

		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := clip.RRect{
					Rect: image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y),
					NE:   cornerRadius, NW: cornerRadius, SE: cornerRadius, SW: cornerRadius,
				}
				paint.FillShape(gtx.Ops, colQuoteBg, rr.Op(gtx.Ops))
				return layout.Dimensions{Size: gtx.Constraints.Max}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						paint.FillShape(gtx.Ops, colQuoteLine, clip.Rect{Max: image.Pt(borderWidth, gtx.Constraints.Max.Y)}.Op())
						return layout.Dimensions{Size: image.Pt(borderWidth, gtx.Constraints.Min.Y)}
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							return r.layoutMarkdownSpans(gtx, block.Spans, unit.Sp(14), font.Normal)
						})
					}),
				)
			}),
		)
	})
}

func (r *Renderer) layoutMarkdownHR(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		height := gtx.Dp(1)
		paint.FillShape(gtx.Ops, colBorder, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, height)}.Op())
		return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, height)}
	})
}

func (r *Renderer) layoutMarkdownListItem(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.layoutMarkdownSpans(gtx, block.Spans, unit.Sp(14), font.Normal)
	})
}

// layoutMarkdownSpans renders spans as one wrapped text block. The
// predominant style wins; per-span rich text is not attempted.
func (r *Renderer) layoutMarkdownSpans(gtx layout.Context, spans []MarkdownSpan, baseSize unit.Sp, baseWeight font.Weight) layout.Dimensions {
	var content strings.Builder
	hasCode := false
	hasLink := false

	for _, span := range spans {
		if span.NewLine {
			content.WriteString("\n")
			continue
		}
		content.WriteString(span.Text)
		if span.Code {
			hasCode = true
		}
		if span.Link != "" {
			hasLink = true
		}
	}

	lbl := material.Body1(r.Theme, content.String())
	lbl.TextSize = baseSize
	lbl.Font.Weight = baseWeight
	lbl.Color = colText

	if hasCode {
		lbl.Font.Typeface = "monospace"
	}
	if hasLink {
		lbl.Color = colAccent
	}
	if len(spans) > 0 {
		if spans[0].Bold {
			lbl.Font.Weight = font.Bold
		}
		if spans[0].Italic {
			lbl.Font.Style = font.Italic
		}
	}

	lbl.Alignment = text.Start

	return lbl.Layout(gtx)
}
