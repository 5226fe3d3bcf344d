package ui

import (
	"strings"
	"testing"
)

func spanText(spans []MarkdownSpan) string {
	var b strings.Builder
	for _, s := range spans {
		if s.NewLine {
			b.WriteString("\n")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestParseMarkdownBlockSequence(t *testing.T) {
	md := "# Title\n\nPlain paragraph.\n\n- one\n- two\n\n> quoted\n\n---\n\n```sh\nls -la\n```\n"

	blocks := ParseMarkdown(md)
	types := make([]string, len(blocks))
	for i, b := range blocks {
		types[i] = b.Type
	}

	want := []string{"heading", "paragraph", "list", "list", "quote", "hr", "code"}
	if len(types) != len(want) {
		t.Fatalf("block types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("block[%d].Type = %q, want %q (all: %v)", i, types[i], want[i], types)
		}
	}

	if blocks[0].Level != 1 || spanText(blocks[0].Spans) != "Title" {
		t.Errorf("heading = level %d %q", blocks[0].Level, spanText(blocks[0].Spans))
	}
	if got := spanText(blocks[2].Spans); got != "• one" {
		t.Errorf("first list item = %q, want %q", got, "• one")
	}
	if blocks[6].Language != "sh" || blocks[6].Spans[0].Text != "ls -la" {
		t.Errorf("code block = lang %q text %q", blocks[6].Language, blocks[6].Spans[0].Text)
	}
	if !blocks[6].Spans[0].Code {
		t.Error("code block span not marked Code")
	}
}

func TestParseMarkdownOrderedListNumbering(t *testing.T) {
	blocks := ParseMarkdown("1. first\n2. second\n3. third\n")
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	for i, wantMarker := range []string{"1. ", "2. ", "3. "} {
		if blocks[i].Spans[0].Text != wantMarker {
			t.Errorf("item %d marker = %q, want %q", i, blocks[i].Spans[0].Text, wantMarker)
		}
	}
}

func TestParseMarkdownInlineStyles(t *testing.T) {
	blocks := ParseMarkdown("Some *italic* and **bold** and `mono` text.")
	if len(blocks) != 1 || blocks[0].Type != "paragraph" {
		t.Fatalf("blocks = %+v", blocks)
	}

	var sawItalic, sawBold, sawCode bool
	for _, s := range blocks[0].Spans {
		switch s.Text {
		case "italic":
			sawItalic = s.Italic
		case "bold":
			sawBold = s.Bold
		case "mono":
			sawCode = s.Code
		}
	}
	if !sawItalic || !sawBold || !sawCode {
		t.Errorf("styles italic=%v bold=%v code=%v, want all true; spans %+v",
			sawItalic, sawBold, sawCode, blocks[0].Spans)
	}
}

func TestParseMarkdownLinks(t *testing.T) {
	blocks := ParseMarkdown("See [docs](https://example.com/docs) for more.")
	var linked *MarkdownSpan
	for i := range blocks[0].Spans {
		if blocks[0].Spans[i].Link != "" {
			linked = &blocks[0].Spans[i]
		}
	}
	if linked == nil {
		t.Fatalf("no linked span in %+v", blocks[0].Spans)
	}
	if linked.Text != "docs" || linked.Link != "https://example.com/docs" {
		t.Errorf("link span = %+v", *linked)
	}
}

func TestParseMarkdownEmpty(t *testing.T) {
	if blocks := ParseMarkdown(""); len(blocks) != 0 {
		t.Errorf("ParseMarkdown(\"\") = %+v, want none", blocks)
	}
}
