package deck

import (
	"testing"

	"github.com/justyntemme/quickdeck/internal/action"
)

func TestPlaceFiles_RowMajorOrder(t *testing.T) {
	paths := []string{"a.exe", "b.txt", "c.pdf"}
	placed := PlaceFiles(paths, Position{Row: 1, Col: 1}, Bounds{Rows: 3, Cols: 4})

	expected := []Position{{1, 1}, {1, 2}, {1, 3}}
	if len(placed) != len(expected) {
		t.Fatalf("expected %d buttons, got %d", len(expected), len(placed))
	}
	for i, b := range placed {
		if b.Position != expected[i] {
			t.Errorf("button %d: expected position %+v, got %+v", i, expected[i], b.Position)
		}
	}

	// Output order matches input order.
	if placed[0].Action.Type != action.TypeLaunchApp {
		t.Errorf("a.exe should map to LaunchApp, got %s", placed[0].Action.Type)
	}
	if placed[1].Label != "b" || placed[2].Label != "c" {
		t.Errorf("output order should match input order, got labels %q, %q",
			placed[1].Label, placed[2].Label)
	}
}

func TestPlaceFiles_WrapsRows(t *testing.T) {
	paths := []string{"1.txt", "2.txt", "3.txt", "4.txt", "5.txt"}
	placed := PlaceFiles(paths, Position{Row: 1, Col: 3}, Bounds{Rows: 2, Cols: 4})

	expected := []Position{{1, 3}, {1, 4}, {2, 1}, {2, 2}, {2, 3}}
	if len(placed) != len(expected) {
		t.Fatalf("expected %d buttons, got %d", len(expected), len(placed))
	}
	for i, b := range placed {
		if b.Position != expected[i] {
			t.Errorf("button %d: expected position %+v, got %+v", i, expected[i], b.Position)
		}
	}
}

func TestPlaceFiles_StopsWhenGridFull(t *testing.T) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = "file.txt"
	}

	// Starting at (2,2) of a 2x3 grid leaves 2 cells: (2,2), (2,3).
	placed := PlaceFiles(paths, Position{Row: 2, Col: 2}, Bounds{Rows: 2, Cols: 3})
	if len(placed) != 2 {
		t.Fatalf("expected 2 buttons (grid exhausted), got %d", len(placed))
	}
	if placed[1].Position != (Position{Row: 2, Col: 3}) {
		t.Errorf("last button: expected position {2,3}, got %+v", placed[1].Position)
	}
}

func TestPlaceFiles_NeverExceedsBounds(t *testing.T) {
	bounds := []Bounds{
		{Rows: 1, Cols: 1},
		{Rows: 2, Cols: 3},
		{Rows: 4, Cols: 2},
		{Rows: 3, Cols: 4},
	}
	starts := []Position{
		{Row: 1, Col: 1},
		{Row: 2, Col: 2},
		{Row: 0, Col: 0},
		{Row: 3, Col: 9},
		{Row: 9, Col: 1},
	}
	paths := make([]string, 25)
	for i := range paths {
		paths[i] = "f.bin"
	}

	for _, bd := range bounds {
		for _, start := range starts {
			placed := PlaceFiles(paths, start, bd)
			for _, b := range placed {
				if !bd.Contains(b.Position) {
					t.Errorf("bounds %+v start %+v: emitted out-of-bounds position %+v",
						bd, start, b.Position)
				}
			}
			if remaining := bd.CellsFrom(start); len(placed) != min(len(paths), remaining) {
				t.Errorf("bounds %+v start %+v: expected %d placed, got %d",
					bd, start, min(len(paths), remaining), len(placed))
			}
		}
	}
}

func TestPlaceFiles_EmptyInput(t *testing.T) {
	placed := PlaceFiles(nil, Position{Row: 1, Col: 1}, Bounds{Rows: 3, Cols: 3})
	if len(placed) != 0 {
		t.Errorf("expected no buttons for empty input, got %d", len(placed))
	}
}

func TestCellsFrom(t *testing.T) {
	testCases := []struct {
		start    Position
		bounds   Bounds
		expected int
	}{
		{Position{1, 1}, Bounds{3, 4}, 12},
		{Position{2, 1}, Bounds{3, 4}, 8},
		{Position{3, 4}, Bounds{3, 4}, 1},
		{Position{4, 1}, Bounds{3, 4}, 0},
		{Position{3, 5}, Bounds{3, 4}, 0}, // snaps past the last row
		{Position{1, 5}, Bounds{3, 4}, 8}, // snaps to (2,1)
	}

	for _, tc := range testCases {
		if got := tc.bounds.CellsFrom(tc.start); got != tc.expected {
			t.Errorf("CellsFrom(%+v, %+v): expected %d, got %d",
				tc.start, tc.bounds, tc.expected, got)
		}
	}
}

func TestDeck_PlaceReplacesOccupant(t *testing.T) {
	d := New(Bounds{Rows: 2, Cols: 2})

	first := NewButton("first", action.Open("/a"))
	first.Position = Position{Row: 1, Col: 1}
	if replaced := d.Place(first); replaced {
		t.Error("placing into an empty cell should not report replacement")
	}

	second := NewButton("second", action.Open("/b"))
	second.Position = Position{Row: 1, Col: 1}
	if replaced := d.Place(second); !replaced {
		t.Error("placing onto an occupied cell should report replacement")
	}

	if len(d.Buttons) != 1 {
		t.Fatalf("expected 1 button after replacement, got %d", len(d.Buttons))
	}
	if d.Buttons[0].Label != "second" {
		t.Errorf("expected the newer button to win, got %q", d.Buttons[0].Label)
	}
}

func TestDeck_PlaceRejectsOutOfBounds(t *testing.T) {
	d := New(Bounds{Rows: 2, Cols: 2})
	b := NewButton("stray", action.Open("/x"))
	b.Position = Position{Row: 3, Col: 1}
	d.Place(b)
	if len(d.Buttons) != 0 {
		t.Errorf("out-of-bounds placement should be rejected, deck has %d buttons", len(d.Buttons))
	}
}

func TestDeck_InsertFilesReplacesPerCell(t *testing.T) {
	d := New(Bounds{Rows: 2, Cols: 2})
	d.InsertFiles([]string{"a.txt", "b.txt"}, Position{Row: 1, Col: 1})
	d.InsertFiles([]string{"c.txt"}, Position{Row: 1, Col: 2})

	if len(d.Buttons) != 2 {
		t.Fatalf("expected 2 buttons after overlapping insert, got %d", len(d.Buttons))
	}
	i := d.At(Position{Row: 1, Col: 2})
	if i < 0 {
		t.Fatal("cell (1,2) should be occupied")
	}
	if d.Buttons[i].Label != "c" {
		t.Errorf("cell (1,2): expected replacement label %q, got %q", "c", d.Buttons[i].Label)
	}
}

func TestDeck_Move(t *testing.T) {
	d := New(Bounds{Rows: 2, Cols: 2})
	a := NewButton("a", action.Open("/a"))
	a.Position = Position{Row: 1, Col: 1}
	b := NewButton("b", action.Open("/b"))
	b.Position = Position{Row: 2, Col: 2}
	d.Place(a)
	d.Place(b)

	// Move onto the occupied cell: occupant is replaced.
	if !d.Move(a.ID, Position{Row: 2, Col: 2}) {
		t.Fatal("move should succeed")
	}
	if len(d.Buttons) != 1 {
		t.Fatalf("expected 1 button after move-with-replace, got %d", len(d.Buttons))
	}
	if d.Buttons[0].ID != a.ID || d.Buttons[0].Position != (Position{Row: 2, Col: 2}) {
		t.Errorf("moved button state wrong: %+v", d.Buttons[0])
	}

	// Move to own cell is a no-op success.
	if !d.Move(a.ID, Position{Row: 2, Col: 2}) {
		t.Error("moving onto own cell should succeed")
	}

	// Unknown ID and out-of-bounds targets fail.
	if d.Move("missing", Position{Row: 1, Col: 1}) {
		t.Error("moving an unknown ID should fail")
	}
	if d.Move(a.ID, Position{Row: 5, Col: 5}) {
		t.Error("moving out of bounds should fail")
	}
}

func TestDeck_RemoveAndFreeCell(t *testing.T) {
	d := New(Bounds{Rows: 1, Cols: 2})
	b := NewButton("only", action.Open("/x"))
	b.Position = Position{Row: 1, Col: 1}
	d.Place(b)

	if p, ok := d.FreeCell(); !ok || p != (Position{Row: 1, Col: 2}) {
		t.Errorf("expected free cell {1,2}, got %+v ok=%v", p, ok)
	}

	if !d.Remove(b.ID) {
		t.Error("remove should report success for existing button")
	}
	if d.Remove(b.ID) {
		t.Error("remove should report failure for missing button")
	}
	if p, ok := d.FreeCell(); !ok || p != (Position{Row: 1, Col: 1}) {
		t.Errorf("expected free cell {1,1} after removal, got %+v ok=%v", p, ok)
	}
}

func TestDeck_Sorted(t *testing.T) {
	d := New(Bounds{Rows: 3, Cols: 3})
	positions := []Position{{3, 1}, {1, 2}, {2, 3}, {1, 1}}
	for i, p := range positions {
		b := NewButton(string(rune('a'+i)), action.Open("/x"))
		b.Position = p
		d.Place(b)
	}

	sorted := d.Sorted()
	for i := 1; i < len(sorted); i++ {
		if !sorted[i-1].Position.Before(sorted[i].Position) {
			t.Errorf("Sorted(): positions out of order at %d: %+v then %+v",
				i, sorted[i-1].Position, sorted[i].Position)
		}
	}
}

func TestDeck_ResizeDropsOutsiders(t *testing.T) {
	d := New(Bounds{Rows: 3, Cols: 3})
	inside := NewButton("in", action.Open("/a"))
	inside.Position = Position{Row: 1, Col: 1}
	outside := NewButton("out", action.Open("/b"))
	outside.Position = Position{Row: 3, Col: 3}
	d.Place(inside)
	d.Place(outside)

	dropped := d.Resize(Bounds{Rows: 2, Cols: 2})
	if len(dropped) != 1 || dropped[0].Label != "out" {
		t.Errorf("expected the outside button to be dropped, got %+v", dropped)
	}
	if len(d.Buttons) != 1 || d.Buttons[0].Label != "in" {
		t.Errorf("expected the inside button to survive, got %+v", d.Buttons)
	}
}

func BenchmarkPlaceFiles(b *testing.B) {
	paths := make([]string, 48)
	for i := range paths {
		paths[i] = "/home/user/files/document.pdf"
	}
	bounds := Bounds{Rows: 6, Cols: 8}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PlaceFiles(paths, Position{Row: 1, Col: 1}, bounds)
	}
}
