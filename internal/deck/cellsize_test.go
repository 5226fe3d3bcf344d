package deck

import (
	"image"
	"testing"
)

func TestComputeCellMetrics(t *testing.T) {
	testCases := []struct {
		name     string
		w, h     int
		bounds   Bounds
		baseGap  int
		expected CellMetrics
	}{
		// 1920x1080: width budget 1728, height budget 918; the raw cell
		// (281) clamps to the 128 maximum, gap scales 8*128/96 = 10.67.
		{"full hd", 1920, 1080, Bounds{Rows: 3, Cols: 6}, 8, CellMetrics{Cell: 128, Gap: 11}},
		// 400x300: height-limited, (255-16)/3 = 79.67 floors to 79.
		{"small window", 400, 300, Bounds{Rows: 3, Cols: 4}, 8, CellMetrics{Cell: 79, Gap: 7}},
		// Tiny viewport clamps to the 64 minimum.
		{"tiny window", 100, 100, Bounds{Rows: 4, Cols: 4}, 8, CellMetrics{Cell: 64, Gap: 5}},
		// Zero base gap clamps up to the 4px gap floor.
		{"zero gap", 800, 600, Bounds{Rows: 2, Cols: 2}, 0, CellMetrics{Cell: 128, Gap: 4}},
		// Oversized base gap clamps down to the 16px ceiling.
		{"huge gap", 1920, 1080, Bounds{Rows: 2, Cols: 2}, 64, CellMetrics{Cell: 128, Gap: 16}},
	}

	for _, tc := range testCases {
		got := ComputeCellMetrics(tc.w, tc.h, tc.bounds, tc.baseGap)
		if got != tc.expected {
			t.Errorf("%s: ComputeCellMetrics(%d, %d, %+v, %d): expected %+v, got %+v",
				tc.name, tc.w, tc.h, tc.bounds, tc.baseGap, tc.expected, got)
		}
	}
}

func TestComputeCellMetrics_AlwaysClamped(t *testing.T) {
	viewports := []image.Point{
		{X: 1, Y: 1},
		{X: 320, Y: 240},
		{X: 1366, Y: 768},
		{X: 1920, Y: 1080},
		{X: 3840, Y: 2160},
		{X: 7680, Y: 4320},
	}
	grids := []Bounds{
		{Rows: 1, Cols: 1},
		{Rows: 2, Cols: 8},
		{Rows: 12, Cols: 12},
		{Rows: 0, Cols: 0}, // degenerate grids clamp to 1x1
	}
	gaps := []int{0, 1, 8, 16, 64}

	for _, vp := range viewports {
		for _, g := range grids {
			for _, gap := range gaps {
				m := ComputeCellMetrics(vp.X, vp.Y, g, gap)
				if m.Cell < MinCellPx || m.Cell > MaxCellPx {
					t.Errorf("viewport %v grid %+v gap %d: cell %d outside [%d,%d]",
						vp, g, gap, m.Cell, MinCellPx, MaxCellPx)
				}
				if m.Gap < MinGapPx || m.Gap > MaxGapPx {
					t.Errorf("viewport %v grid %+v gap %d: gap %d outside [%d,%d]",
						vp, g, gap, m.Gap, MinGapPx, MaxGapPx)
				}
			}
		}
	}
}

func TestComputeCellMetrics_Deterministic(t *testing.T) {
	a := ComputeCellMetrics(1440, 900, Bounds{Rows: 3, Cols: 5}, 8)
	b := ComputeCellMetrics(1440, 900, Bounds{Rows: 3, Cols: 5}, 8)
	if a != b {
		t.Errorf("same inputs must produce same metrics: %+v vs %+v", a, b)
	}
}

func TestDefaultWindowSize(t *testing.T) {
	testCases := []struct {
		name     string
		bounds   Bounds
		baseGap  int
		expected image.Point
	}{
		// 4*96+3*8 = 408 wide, 3*96+2*8 = 304 tall, divided by the
		// margin factors and rounded up.
		{"default grid", Bounds{Rows: 3, Cols: 4}, 8, image.Pt(454, 358)},
		{"single cell", Bounds{Rows: 1, Cols: 1}, 8, image.Pt(107, 113)},
		// Degenerate bounds clamp to 1x1, same as ComputeCellMetrics.
		{"zero bounds", Bounds{}, 8, image.Pt(107, 113)},
	}

	for _, tc := range testCases {
		if got := DefaultWindowSize(tc.bounds, tc.baseGap); got != tc.expected {
			t.Errorf("%s: DefaultWindowSize(%+v, %d): expected %v, got %v",
				tc.name, tc.bounds, tc.baseGap, tc.expected, got)
		}
	}
}

func TestDefaultWindowSize_RendersReferenceCell(t *testing.T) {
	// A window sized for the grid must render cells at exactly the
	// reference size with the base gap unchanged.
	grids := []Bounds{
		{Rows: 1, Cols: 1},
		{Rows: 2, Cols: 2},
		{Rows: 3, Cols: 4},
		{Rows: 2, Cols: 8},
		{Rows: 12, Cols: 12},
	}
	gaps := []int{4, 8, 12, 16}

	for _, g := range grids {
		for _, gap := range gaps {
			win := DefaultWindowSize(g, gap)
			m := ComputeCellMetrics(win.X, win.Y, g, gap)
			if m.Cell != refCellPx || m.Gap != gap {
				t.Errorf("grid %+v gap %d: window %v renders %+v, expected cell %d gap %d",
					g, gap, win, m, refCellPx, gap)
			}
		}
	}
}

func TestGridSize(t *testing.T) {
	m := CellMetrics{Cell: 100, Gap: 10}
	got := m.GridSize(Bounds{Rows: 2, Cols: 3})
	expected := image.Pt(320, 210)
	if got != expected {
		t.Errorf("GridSize: expected %v, got %v", expected, got)
	}

	if got := m.GridSize(Bounds{}); got != (image.Point{}) {
		t.Errorf("GridSize of empty bounds: expected zero point, got %v", got)
	}
}

func TestCellAt(t *testing.T) {
	m := CellMetrics{Cell: 100, Gap: 10}
	bounds := Bounds{Rows: 2, Cols: 2}

	testCases := []struct {
		pt       image.Point
		expected Position
		ok       bool
	}{
		{image.Pt(0, 0), Position{Row: 1, Col: 1}, true},
		{image.Pt(99, 99), Position{Row: 1, Col: 1}, true},
		{image.Pt(105, 50), Position{Row: 1, Col: 1}, true}, // in the gap
		{image.Pt(110, 0), Position{Row: 1, Col: 2}, true},
		{image.Pt(115, 119), Position{Row: 2, Col: 2}, true},
		{image.Pt(220, 0), Position{}, false},
		{image.Pt(-1, 0), Position{}, false},
	}

	for _, tc := range testCases {
		got, ok := m.CellAt(tc.pt, bounds)
		if ok != tc.ok || got != tc.expected {
			t.Errorf("CellAt(%v): expected (%+v, %v), got (%+v, %v)",
				tc.pt, tc.expected, tc.ok, got, ok)
		}
	}
}

func TestCellOrigin(t *testing.T) {
	m := CellMetrics{Cell: 100, Gap: 10}
	testCases := []struct {
		pos      Position
		expected image.Point
	}{
		{Position{Row: 1, Col: 1}, image.Pt(0, 0)},
		{Position{Row: 1, Col: 2}, image.Pt(110, 0)},
		{Position{Row: 3, Col: 1}, image.Pt(0, 220)},
	}

	for _, tc := range testCases {
		if got := m.CellOrigin(tc.pos); got != tc.expected {
			t.Errorf("CellOrigin(%+v): expected %v, got %v", tc.pos, tc.expected, got)
		}
	}
}

func BenchmarkComputeCellMetrics(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ComputeCellMetrics(1920, 1080, Bounds{Rows: 3, Cols: 6}, 8)
	}
}
