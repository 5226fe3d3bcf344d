// Package deck holds the button-grid model: button descriptors, grid bounds
// and placement, the file-to-button mapper, and the responsive cell metrics.
// Everything here is pure data and functions; rendering and persistence live
// elsewhere.
package deck

import (
	"github.com/google/uuid"

	"github.com/justyntemme/quickdeck/internal/action"
)

// Position is a 1-based grid cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Before reports whether p comes before q in row-major (reading) order.
func (p Position) Before(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Bounds is the grid extent. Valid cells are [1,Rows] x [1,Cols].
type Bounds struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Contains reports whether p is a valid cell within b.
func (b Bounds) Contains(p Position) bool {
	return p.Row >= 1 && p.Row <= b.Rows && p.Col >= 1 && p.Col <= b.Cols
}

// Cells returns the total number of cells.
func (b Bounds) Cells() int {
	if b.Rows < 1 || b.Cols < 1 {
		return 0
	}
	return b.Rows * b.Cols
}

// CellsFrom returns how many cells remain from start (inclusive) to the end
// of the grid in row-major order. A start outside the grid yields 0.
func (b Bounds) CellsFrom(start Position) int {
	p := normalizeStart(start, b)
	if p.Row > b.Rows {
		return 0
	}
	return (b.Rows-p.Row)*b.Cols + (b.Cols - p.Col + 1)
}

// Button is one configured deck entry. Icon is an optional path to an image
// file rendered in the cell; an empty icon falls back to a drawn glyph.
type Button struct {
	ID       string        `json:"id"`
	Position Position      `json:"position"`
	Label    string        `json:"label"`
	Icon     string        `json:"icon,omitempty"`
	Action   action.Action `json:"action"`
}

// NewButton creates a button with a fresh ID at an unset position.
func NewButton(label string, act action.Action) Button {
	return Button{
		ID:     uuid.New().String(),
		Label:  label,
		Action: act,
	}
}
