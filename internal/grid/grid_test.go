package grid

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func threeDays() []time.Time {
	return []time.Time{day(1), day(2), day(3)}
}

func TestComputeGridGeometry_Rows(t *testing.T) {
	g := ComputeGridGeometry(Params{RowCount: 2, RowHeight: 50, TotalWidth: 300})

	want := Geometry{
		RowRects: []Rect{
			{X: 0, Y: 0, Width: 300, Height: 50},
			{X: 0, Y: 50, Width: 300, Height: 50},
		},
		RowLines: []Line{
			{X1: 0, Y1: 0, X2: 300, Y2: 0},
			{X1: 0, Y1: 50, X2: 300, Y2: 50},
			{X1: 0, Y1: 100, X2: 300, Y2: 100},
		},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeGridGeometry_NoRowsNoColumns(t *testing.T) {
	g := ComputeGridGeometry(Params{RowCount: 0, RowHeight: 50, TotalWidth: 300, Now: day(1)})

	assert.Empty(t, g.RowRects)
	assert.Len(t, g.RowLines, 1)
	assert.Empty(t, g.Ticks)
	assert.Nil(t, g.Today)
}

func TestComputeGridGeometry_NegativeRowCount(t *testing.T) {
	g := ComputeGridGeometry(Params{RowCount: -3, RowHeight: 50, TotalWidth: 300, ColumnDates: threeDays(), ColumnWidth: 10})

	assert.Empty(t, g.RowRects)
	assert.Len(t, g.RowLines, 1)
	require.Len(t, g.Ticks, 3)
	assert.Zero(t, g.Ticks[0].Y2)
}

func TestComputeGridGeometry_Ticks(t *testing.T) {
	g := ComputeGridGeometry(Params{
		RowCount:    3,
		RowHeight:   20,
		ColumnWidth: 10,
		TotalWidth:  30,
		ColumnDates: threeDays(),
		Now:         day(20),
	})

	assert.Equal(t, []Line{
		{X1: 0, Y1: 0, X2: 0, Y2: 60},
		{X1: 10, Y1: 0, X2: 10, Y2: 60},
		{X1: 20, Y1: 0, X2: 20, Y2: 60},
	}, g.Ticks)
	assert.Nil(t, g.Today)
}

func TestComputeGridGeometry_TodayLeftToRight(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		wantX float64
		found bool
	}{
		{name: "inside first column", now: day(1).Add(12 * time.Hour), wantX: 0, found: true},
		{name: "on right boundary", now: day(2), wantX: 0, found: true},
		{name: "on left boundary of first column", now: day(1), found: false},
		{name: "inside second column", now: day(2).Add(time.Hour), wantX: 10, found: true},
		{name: "inside synthesized last column", now: day(3).Add(12 * time.Hour), wantX: 20, found: true},
		{name: "on synthesized edge", now: day(4), wantX: 20, found: true},
		{name: "past synthesized edge", now: day(4).Add(time.Second), found: false},
		{name: "before all columns", now: day(1).Add(-time.Hour), found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ComputeGridGeometry(Params{
				RowCount:    1,
				RowHeight:   40,
				ColumnWidth: 10,
				TotalWidth:  30,
				ColumnDates: threeDays(),
				Now:         tt.now,
			})
			if !tt.found {
				assert.Nil(t, g.Today)
				return
			}
			require.NotNil(t, g.Today)
			assert.Equal(t, Rect{X: tt.wantX, Y: 0, Width: 10, Height: 40}, *g.Today)
		})
	}
}

func TestComputeGridGeometry_SingleColumnHasNoSynthesizedEdge(t *testing.T) {
	g := ComputeGridGeometry(Params{
		RowCount:    1,
		RowHeight:   40,
		ColumnWidth: 10,
		ColumnDates: []time.Time{day(1)},
		Now:         day(1).Add(time.Hour),
	})
	assert.Nil(t, g.Today)
	assert.Len(t, g.Ticks, 1)
}

func TestComputeGridGeometry_TodayRightToLeft(t *testing.T) {
	now := day(2).Add(12 * time.Hour)

	ltr := ComputeGridGeometry(Params{
		RowCount: 1, RowHeight: 40, ColumnWidth: 10, TotalWidth: 30,
		ColumnDates: threeDays(),
		Now:         now,
	})
	require.NotNil(t, ltr.Today)
	assert.Equal(t, 10.0, ltr.Today.X)

	rtl := ComputeGridGeometry(Params{
		RowCount: 1, RowHeight: 40, ColumnWidth: 10, TotalWidth: 30,
		ColumnDates: Reverse(threeDays()),
		RTL:         true,
		Now:         now,
	})
	require.NotNil(t, rtl.Today)
	// [Jan3, Jan2] is the first visual column; the band sits one column further right.
	assert.Equal(t, Rect{X: 10, Y: 0, Width: 10, Height: 40}, *rtl.Today)
}

func TestComputeGridGeometry_RightToLeftBoundaries(t *testing.T) {
	dates := Reverse(threeDays())
	params := Params{RowCount: 1, RowHeight: 40, ColumnWidth: 10, ColumnDates: dates, RTL: true}

	params.Now = day(3)
	g := ComputeGridGeometry(params)
	require.NotNil(t, g.Today)
	assert.Equal(t, 10.0, g.Today.X)

	params.Now = day(2)
	g = ComputeGridGeometry(params)
	require.NotNil(t, g.Today)
	assert.Equal(t, 20.0, g.Today.X)

	params.Now = day(5)
	g = ComputeGridGeometry(params)
	assert.Nil(t, g.Today)
}

func TestComputeGridGeometry_RTLFlagKeepsTickCount(t *testing.T) {
	for _, rtl := range []bool{false, true} {
		g := ComputeGridGeometry(Params{RowCount: 2, RowHeight: 10, ColumnWidth: 5, ColumnDates: threeDays(), RTL: rtl})
		assert.Len(t, g.Ticks, 3)
	}
}

func TestComputeGridGeometry_Deterministic(t *testing.T) {
	p := Params{
		RowCount: 4, RowHeight: 25, ColumnWidth: 60, TotalWidth: 600,
		ColumnDates: SeedDates(day(1), day(9), ViewDay, 1),
		Now:         day(5).Add(3 * time.Hour),
	}
	first := ComputeGridGeometry(p)
	second := ComputeGridGeometry(p)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("geometry differs between calls:\n%s", diff)
	}
}
