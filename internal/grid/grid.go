// Package grid computes the background geometry of a Gantt chart: one band
// per row, the separator lines between them, a tick per date column and the
// band that highlights the column containing "now".
package grid

import "time"

// Rect is an axis-aligned rectangle in chart coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Line is a straight segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y2 float64 `json:"y2" yaml:"y2"`
}

// Params are the inputs of ComputeGridGeometry.
type Params struct {
	RowCount    int
	RowHeight   float64
	ColumnWidth float64
	// TotalWidth is the width of the row bands and separator lines.
	TotalWidth float64
	// ColumnDates are the column boundaries in display order. Under RTL the
	// caller passes them latest first.
	ColumnDates []time.Time
	RTL         bool
	// Now picks the highlighted column. It has no default.
	Now time.Time
}

// Geometry is everything the grid body draws.
type Geometry struct {
	RowRects []Rect `json:"rowRects" yaml:"rowRects"`
	RowLines []Line `json:"rowLines" yaml:"rowLines"`
	Ticks    []Line `json:"ticks" yaml:"ticks"`
	// Today is nil when no column contains Now.
	Today *Rect `json:"today,omitempty" yaml:"today,omitempty"`
}

// Height returns the height covered by the rows.
func (p Params) Height() float64 {
	if p.RowCount <= 0 {
		return 0
	}
	return float64(p.RowCount) * p.RowHeight
}

// ComputeGridGeometry lays out rows, separators, ticks and the today band.
// It never fails: malformed inputs (negative counts, unordered dates) give
// meaningless but well-formed geometry.
func ComputeGridGeometry(p Params) Geometry {
	var g Geometry
	height := p.Height()

	g.RowLines = append(g.RowLines, Line{X1: 0, Y1: 0, X2: p.TotalWidth, Y2: 0})
	y := 0.0
	for i := 0; i < p.RowCount; i++ {
		g.RowRects = append(g.RowRects, Rect{X: 0, Y: y, Width: p.TotalWidth, Height: p.RowHeight})
		g.RowLines = append(g.RowLines, Line{X1: 0, Y1: y + p.RowHeight, X2: p.TotalWidth, Y2: y + p.RowHeight})
		y += p.RowHeight
	}

	dates := p.ColumnDates
	tickX := 0.0
	for i := range dates {
		g.Ticks = append(g.Ticks, Line{X1: tickX, Y1: 0, X2: tickX, Y2: height})

		if isTodayColumn(dates, i, p.Now) {
			g.Today = &Rect{X: tickX, Y: 0, Width: p.ColumnWidth, Height: height}
		}
		if p.RTL && isTodayColumnRTL(dates, i, p.Now) {
			g.Today = &Rect{X: tickX + p.ColumnWidth, Y: 0, Width: p.ColumnWidth, Height: height}
		}

		tickX += p.ColumnWidth
	}
	return g
}

// isTodayColumn reports whether now lies in (dates[i], dates[i+1]]. The last
// column has no right boundary, so one is projected forward by the width of
// the column before it.
func isTodayColumn(dates []time.Time, i int, now time.Time) bool {
	d := dates[i]
	if !d.Before(now) {
		return false
	}
	if i+1 < len(dates) {
		return !dates[i+1].Before(now)
	}
	if i == 0 {
		return false
	}
	edge := d.Add(d.Sub(dates[i-1]))
	return !edge.Before(now)
}

// isTodayColumnRTL reports whether now lies in [dates[i+1], dates[i]) of a
// latest-first column list, i.e. the later boundary is at or past now and the
// next one is already behind it.
func isTodayColumnRTL(dates []time.Time, i int, now time.Time) bool {
	if i+1 >= len(dates) {
		return false
	}
	return !dates[i].Before(now) && dates[i+1].Before(now)
}
