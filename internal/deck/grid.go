package deck

import "sort"

// normalizeStart clamps a start cell onto the grid's row-major walk. Columns
// past the end of a row snap to the start of the next row, mirroring the
// cursor advance rule; rows past the end stay past the end so placement
// stops immediately.
func normalizeStart(start Position, bounds Bounds) Position {
	p := start
	if p.Row < 1 {
		p.Row = 1
	}
	if p.Col < 1 {
		p.Col = 1
	}
	if p.Col > bounds.Cols {
		p.Col = 1
		p.Row++
	}
	return p
}

// PlaceFiles maps each path to a button (ButtonFromPath) and assigns
// positions from start in row-major order: the cursor advances column-wise
// and wraps to the next row after the last column. Placement stops once the
// cursor passes the last row; remaining paths are dropped silently. Output
// order matches input order and every emitted position lies within bounds.
func PlaceFiles(paths []string, start Position, bounds Bounds) []Button {
	cursor := normalizeStart(start, bounds)
	out := make([]Button, 0, len(paths))

	for _, p := range paths {
		if cursor.Row > bounds.Rows {
			break
		}
		b := ButtonFromPath(p)
		b.Position = cursor
		out = append(out, b)

		cursor.Col++
		if cursor.Col > bounds.Cols {
			cursor.Col = 1
			cursor.Row++
		}
	}
	return out
}

// Deck is the collection of placed buttons within a bounded grid. At most
// one button occupies a cell; placing onto an occupied cell replaces the
// occupant. Deck methods are not safe for concurrent use; the app layer
// serializes access.
type Deck struct {
	Bounds  Bounds
	Buttons []Button
}

// New creates an empty deck with the given bounds.
func New(bounds Bounds) *Deck {
	return &Deck{Bounds: bounds}
}

// At returns the index of the button occupying pos, or -1.
func (d *Deck) At(pos Position) int {
	for i := range d.Buttons {
		if d.Buttons[i].Position == pos {
			return i
		}
	}
	return -1
}

// ByID returns the index of the button with the given ID, or -1.
func (d *Deck) ByID(id string) int {
	for i := range d.Buttons {
		if d.Buttons[i].ID == id {
			return i
		}
	}
	return -1
}

// Place inserts b at its position, replacing any existing occupant.
// Reports whether a button was replaced. Buttons outside the bounds are
// rejected without change.
func (d *Deck) Place(b Button) (replaced bool) {
	if !d.Bounds.Contains(b.Position) {
		return false
	}
	if i := d.At(b.Position); i >= 0 {
		d.Buttons[i] = b
		return true
	}
	d.Buttons = append(d.Buttons, b)
	return false
}

// Remove deletes the button with the given ID. Reports whether it existed.
func (d *Deck) Remove(id string) bool {
	i := d.ByID(id)
	if i < 0 {
		return false
	}
	d.Buttons = append(d.Buttons[:i], d.Buttons[i+1:]...)
	return true
}

// Move relocates the button with the given ID to a new cell, replacing any
// occupant there. Moving onto its own cell is a no-op.
func (d *Deck) Move(id string, to Position) bool {
	i := d.ByID(id)
	if i < 0 || !d.Bounds.Contains(to) {
		return false
	}
	if d.Buttons[i].Position == to {
		return true
	}
	if j := d.At(to); j >= 0 {
		d.Buttons = append(d.Buttons[:j], d.Buttons[j+1:]...)
		if j < i {
			i--
		}
	}
	d.Buttons[i].Position = to
	return true
}

// InsertFiles runs the placement sequencer from start and places every
// produced button onto the deck, replacing occupants cell by cell. The
// placed buttons are returned in placement order.
func (d *Deck) InsertFiles(paths []string, start Position) []Button {
	placed := PlaceFiles(paths, start, d.Bounds)
	for _, b := range placed {
		d.Place(b)
	}
	return placed
}

// FreeCell returns the first unoccupied cell in row-major order.
func (d *Deck) FreeCell() (Position, bool) {
	occupied := make(map[Position]bool, len(d.Buttons))
	for i := range d.Buttons {
		occupied[d.Buttons[i].Position] = true
	}
	for row := 1; row <= d.Bounds.Rows; row++ {
		for col := 1; col <= d.Bounds.Cols; col++ {
			p := Position{Row: row, Col: col}
			if !occupied[p] {
				return p, true
			}
		}
	}
	return Position{}, false
}

// Sorted returns a copy of the buttons in row-major order. Used for saving
// and for deterministic keyboard traversal.
func (d *Deck) Sorted() []Button {
	out := make([]Button, len(d.Buttons))
	copy(out, d.Buttons)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Before(out[j].Position)
	})
	return out
}

// Resize changes the bounds, dropping buttons that fall outside the new
// grid. The dropped buttons are returned so callers can warn about them.
func (d *Deck) Resize(bounds Bounds) (dropped []Button) {
	kept := d.Buttons[:0]
	for _, b := range d.Buttons {
		if bounds.Contains(b.Position) {
			kept = append(kept, b)
		} else {
			dropped = append(dropped, b)
		}
	}
	d.Buttons = kept
	d.Bounds = bounds
	return dropped
}
