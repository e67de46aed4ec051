package render

import (
	"bytes"
	stdjson "encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"gantt2svg/internal/config"
	"gantt2svg/internal/datefmt"
	"gantt2svg/internal/grid"
	"gantt2svg/internal/grouping"
)

func jan(day int) time.Time {
	return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
}

func sampleEntities() []grouping.Entity {
	return []grouping.Entity{
		{Name: "A", Start: jan(1), End: jan(3), Expand: grouping.ExpandExpanded},
		{Name: "B", Start: jan(3), End: jan(4)},
		{Name: "A", Start: jan(2), End: jan(5)},
		{Name: "A", Start: jan(10), End: jan(12)},
	}
}

func newTestRenderer(t *testing.T, rtl bool) *Renderer {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Padding = 0
	cfg.Layout.RTL = rtl
	require.NoError(t, cfg.Validate())

	formatter, err := datefmt.NewFormatter(cfg.Layout.Locale, datefmt.NewCache(64))
	require.NoError(t, err)
	r, err := NewRenderer(cfg, formatter, zaptest.NewLogger(t))
	require.NoError(t, err)
	return r
}

func TestNewRenderer_RejectsUnknownLabelField(t *testing.T) {
	cfg := config.Default()
	cfg.Labels.Month = "roman"

	formatter, err := datefmt.NewFormatter(cfg.Layout.Locale, nil)
	require.NoError(t, err)
	_, err = NewRenderer(cfg, formatter, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labels.month")
}

func TestBuild_LeftToRight(t *testing.T) {
	r := newTestRenderer(t, false)
	chart := r.Build(sampleEntities(), jan(2).Add(12*time.Hour))

	require.Len(t, chart.Columns, 13)
	assert.Equal(t, jan(1), chart.Columns[0].Date)
	assert.Equal(t, "Jan 1", chart.Columns[0].Label)
	assert.Equal(t, 1245.0, chart.Width)
	assert.Equal(t, 150.0, chart.Height)

	require.Len(t, chart.Rows, 2)
	a := chart.Rows[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, grouping.ExpandedMarker, a.Indicator)
	assert.Equal(t, "Mon, January 1, 2024", a.StartLabel)
	assert.Equal(t, "Fri, January 12, 2024", a.EndLabel)
	assert.Equal(t, []grouping.Block{{Start: jan(1), End: jan(5)}, {Start: jan(10), End: jan(12)}}, a.Blocks)
	assert.Equal(t, []grid.Rect{
		{X: 0, Y: 10, Width: 240, Height: 30},
		{X: 540, Y: 10, Width: 120, Height: 30},
	}, a.Bars)

	b := chart.Rows[1]
	assert.Equal(t, "B", b.Name)
	assert.Empty(t, b.Indicator)
	assert.Equal(t, []grid.Rect{{X: 120, Y: 60, Width: 60, Height: 30}}, b.Bars)

	require.NotNil(t, chart.Geometry.Today)
	assert.Equal(t, 60.0, chart.Geometry.Today.X)
	assert.Len(t, chart.Geometry.RowRects, 2)
	assert.Len(t, chart.Geometry.RowLines, 3)
	assert.Len(t, chart.Geometry.Ticks, 13)
}

func TestBuild_RightToLeftMirrors(t *testing.T) {
	r := newTestRenderer(t, true)
	chart := r.Build(sampleEntities(), jan(2).Add(12*time.Hour))

	require.Len(t, chart.Columns, 13)
	assert.Equal(t, jan(13), chart.Columns[0].Date)
	assert.Equal(t, jan(1), chart.Columns[12].Date)

	assert.Equal(t, []grid.Rect{
		{X: 540, Y: 10, Width: 240, Height: 30},
		{X: 120, Y: 10, Width: 120, Height: 30},
	}, chart.Rows[0].Bars)

	require.NotNil(t, chart.Geometry.Today)
	assert.Equal(t, 660.0, chart.Geometry.Today.X)
}

func TestBuild_NoEntities(t *testing.T) {
	r := newTestRenderer(t, false)
	chart := r.Build(nil, jan(1))

	assert.Empty(t, chart.Rows)
	assert.Empty(t, chart.Columns)
	assert.Len(t, chart.Geometry.RowLines, 1)
	assert.Nil(t, chart.Geometry.Today)
}

func TestSVG(t *testing.T) {
	r := newTestRenderer(t, false)
	entities := append(sampleEntities(), grouping.Entity{
		Name: `R&D <core>`, Start: jan(6), End: jan(7), Expand: grouping.ExpandCollapsed,
	})
	out := r.SVG(r.Build(entities, jan(2).Add(12*time.Hour)))

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<g class="today"><rect x="60" y="0" width="60" height="100"`)
	assert.Contains(t, out, "R&amp;D &lt;core&gt;")
	assert.NotContains(t, out, "<core>")
	assert.Contains(t, out, grouping.CollapsedMarker)
	assert.Contains(t, out, "Mon, January 1, 2024")
	assert.Equal(t, 4, strings.Count(out, `rx="3"`), "one bar per merged block")
	assert.Equal(t, 3, strings.Count(out, `<g class="taskListRow">`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestSVG_BarTitlesUseLocale(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Padding = 0
	cfg.Layout.Locale = "de-DE"
	formatter, err := datefmt.NewFormatter(cfg.Layout.Locale, nil)
	require.NoError(t, err)
	r, err := NewRenderer(cfg, formatter, zaptest.NewLogger(t))
	require.NoError(t, err)

	out := r.SVG(r.Build(sampleEntities(), jan(2)))
	assert.Contains(t, out, "<title>A: Mo., 1. Januar 2024 – Fr., 5. Januar 2024</title>")
	assert.Contains(t, out, "<title>B: Mi., 3. Januar 2024 – Do., 4. Januar 2024</title>")
	assert.NotContains(t, out, "2024-01-01")
}

func TestSVG_RightToLeftSetsDirection(t *testing.T) {
	r := newTestRenderer(t, true)
	out := r.SVG(r.Build(sampleEntities(), jan(2)))
	assert.Contains(t, out, `direction="rtl"`)
}

func TestWrite_JSON(t *testing.T) {
	r := newTestRenderer(t, false)
	chart := r.Build(sampleEntities(), jan(2).Add(12*time.Hour))

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, chart, "JSON"))

	var decoded struct {
		Rows []struct {
			Name   string `json:"name"`
			Blocks []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"blocks"`
		} `json:"rows"`
		Geometry struct {
			Today *grid.Rect `json:"today"`
		} `json:"geometry"`
	}
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "A", decoded.Rows[0].Name)
	assert.True(t, decoded.Rows[0].Blocks[0].End.Equal(jan(5)))
	require.NotNil(t, decoded.Geometry.Today)
	assert.Equal(t, 60.0, decoded.Geometry.Today.X)
}

func TestWrite_YAML(t *testing.T) {
	r := newTestRenderer(t, false)
	chart := r.Build(sampleEntities(), jan(30))

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, chart, FormatYAML))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "day", decoded["viewMode"])
	geometry, ok := decoded["geometry"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, geometry, "today")
}

func TestWrite_UnknownFormat(t *testing.T) {
	r := newTestRenderer(t, false)
	err := r.Write(&bytes.Buffer{}, r.Build(nil, jan(1)), "png")
	assert.Error(t, err)
}

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "custom.svg", OutputFilename("data/plan.csv", "custom.svg", "json"))
	assert.Equal(t, "plan.svg", OutputFilename("data/plan.csv", "", ""))
	assert.Equal(t, "plan.json", OutputFilename("data/plan.csv", "", "JSON"))
}
