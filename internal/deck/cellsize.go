package deck

import (
	"image"
	"math"
)

// Cell sizing constants. The base gap is calibrated against a 96px reference
// cell and scales proportionally with the computed cell size.
const (
	MinCellPx = 64
	MaxCellPx = 128
	MinGapPx  = 4
	MaxGapPx  = 16

	refCellPx = 96

	// Margin factors reserve room for window chrome around the grid.
	widthFactor  = 0.9
	heightFactor = 0.85
)

// CellMetrics is the computed cell and gap size in pixels.
type CellMetrics struct {
	Cell int
	Gap  int
}

// ComputeCellMetrics sizes grid cells for a viewport. The grid gets 90% of
// the viewport width and 85% of its height; the cell is the largest square
// that fits the column and row budgets, floored and clamped to
// [MinCellPx, MaxCellPx]. The gap scales with the cell relative to the 96px
// reference and clamps to [MinGapPx, MaxGapPx]. Pure function of its inputs;
// callers recompute it on every resize or grid change.
func ComputeCellMetrics(viewportW, viewportH int, bounds Bounds, baseGap int) CellMetrics {
	rows, cols := bounds.Rows, bounds.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	availW := float64(viewportW) * widthFactor
	availH := float64(viewportH) * heightFactor

	gap := float64(baseGap)
	maxCellW := (availW - float64(cols-1)*gap) / float64(cols)
	maxCellH := (availH - float64(rows-1)*gap) / float64(rows)

	cell := int(math.Floor(math.Min(maxCellW, maxCellH)))
	if cell < MinCellPx {
		cell = MinCellPx
	}
	if cell > MaxCellPx {
		cell = MaxCellPx
	}

	gapOut := int(math.Round(gap * float64(cell) / refCellPx))
	if gapOut < MinGapPx {
		gapOut = MinGapPx
	}
	if gapOut > MaxGapPx {
		gapOut = MaxGapPx
	}

	return CellMetrics{Cell: cell, Gap: gapOut}
}

// DefaultWindowSize returns a window size that renders the grid at the
// reference cell size, inverting the margin factors ComputeCellMetrics
// applies. Used to size a fresh window from the configured grid.
func DefaultWindowSize(bounds Bounds, baseGap int) image.Point {
	rows, cols := bounds.Rows, bounds.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	gap := baseGap
	if gap < MinGapPx {
		gap = MinGapPx
	}
	if gap > MaxGapPx {
		gap = MaxGapPx
	}

	w := math.Ceil(float64(cols*refCellPx+(cols-1)*gap) / widthFactor)
	h := math.Ceil(float64(rows*refCellPx+(rows-1)*gap) / heightFactor)
	return image.Pt(int(w), int(h))
}

// GridSize returns the pixel extent of a grid rendered with these metrics.
func (m CellMetrics) GridSize(bounds Bounds) image.Point {
	if bounds.Rows < 1 || bounds.Cols < 1 {
		return image.Point{}
	}
	w := bounds.Cols*m.Cell + (bounds.Cols-1)*m.Gap
	h := bounds.Rows*m.Cell + (bounds.Rows-1)*m.Gap
	return image.Pt(w, h)
}

// CellAt maps a pixel point within the grid area to the cell under it.
// Points in gaps resolve to the nearest preceding cell; points outside the
// grid report ok=false.
func (m CellMetrics) CellAt(pt image.Point, bounds Bounds) (Position, bool) {
	if m.Cell <= 0 || pt.X < 0 || pt.Y < 0 {
		return Position{}, false
	}
	stride := m.Cell + m.Gap
	col := pt.X/stride + 1
	row := pt.Y/stride + 1
	p := Position{Row: row, Col: col}
	if !bounds.Contains(p) {
		return Position{}, false
	}
	return p, true
}

// CellOrigin returns the pixel origin of a cell within the grid area.
func (m CellMetrics) CellOrigin(p Position) image.Point {
	stride := m.Cell + m.Gap
	return image.Pt((p.Col-1)*stride, (p.Row-1)*stride)
}
