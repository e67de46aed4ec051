// Package render combines merged rows and grid geometry into a chart and
// writes it as SVG, JSON or YAML.
package render

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"gantt2svg/internal/config"
	"gantt2svg/internal/datefmt"
	"gantt2svg/internal/grid"
	"gantt2svg/internal/grouping"
)

// DateFormatter renders a date for a label.
type DateFormatter interface {
	Format(t time.Time, opts datefmt.Options) string
}

// Row is one chart row: a distinct entity name and its merged blocks.
type Row struct {
	Name       string           `json:"name" yaml:"name"`
	Indicator  string           `json:"indicator,omitempty" yaml:"indicator,omitempty"`
	StartLabel string           `json:"startLabel" yaml:"startLabel"`
	EndLabel   string           `json:"endLabel" yaml:"endLabel"`
	Blocks     []grouping.Block `json:"blocks" yaml:"blocks"`
	// Bars are the blocks projected into grid coordinates.
	Bars []grid.Rect `json:"bars" yaml:"bars"`
}

// Column is one date column in display order.
type Column struct {
	Date  time.Time `json:"date" yaml:"date"`
	X     float64   `json:"x" yaml:"x"`
	Label string    `json:"label" yaml:"label"`
}

// Chart is the full renderable model.
type Chart struct {
	Now      time.Time     `json:"now" yaml:"now"`
	RTL      bool          `json:"rtl" yaml:"rtl"`
	ViewMode grid.ViewMode `json:"viewMode" yaml:"viewMode"`
	Width    float64       `json:"width" yaml:"width"`
	Height   float64       `json:"height" yaml:"height"`
	Rows     []Row         `json:"rows" yaml:"rows"`
	Columns  []Column      `json:"columns" yaml:"columns"`
	Geometry grid.Geometry `json:"geometry" yaml:"geometry"`
}

// Renderer builds and writes charts using one configuration.
type Renderer struct {
	cfg       *config.Config
	formatter DateFormatter
	labelOpts datefmt.Options
	logger    *zap.Logger
}

// NewRenderer returns a renderer for cfg, failing on unknown label fields.
func NewRenderer(cfg *config.Config, formatter DateFormatter, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts, err := cfg.DateOptions()
	if err != nil {
		return nil, fmt.Errorf("error reading label options: %w", err)
	}
	return &Renderer{cfg: cfg, formatter: formatter, labelOpts: opts, logger: logger.Named("render")}, nil
}

// headerOptions picks the column label parts for a view mode.
func headerOptions(mode grid.ViewMode) datefmt.Options {
	switch mode {
	case grid.ViewMonth:
		return datefmt.Options{Month: datefmt.Short, Year: datefmt.Numeric}
	case grid.ViewYear:
		return datefmt.Options{Year: datefmt.Numeric}
	default:
		return datefmt.Options{Month: datefmt.Short, Day: datefmt.Numeric}
	}
}

// Build groups entities into rows and lays out the grid. now selects the
// highlighted column.
func (r *Renderer) Build(entities []grouping.Entity, now time.Time) *Chart {
	layout := r.cfg.Layout
	mode := r.cfg.ViewMode()

	groups := grouping.ComputeBlocksPerGroup(entities)

	var ascending []time.Time
	if groups.Len() > 0 {
		first, last := chartSpan(groups)
		ascending = grid.SeedDates(first, last, mode, r.cfg.Grid.Padding)
	}
	dates := ascending
	if layout.RTL {
		dates = grid.Reverse(ascending)
	}

	gridWidth := float64(len(dates)) * layout.ColumnWidth
	geometry := grid.ComputeGridGeometry(grid.Params{
		RowCount:    groups.Len(),
		RowHeight:   layout.RowHeight,
		ColumnWidth: layout.ColumnWidth,
		TotalWidth:  gridWidth,
		ColumnDates: dates,
		RTL:         layout.RTL,
		Now:         now,
	})

	chart := &Chart{
		Now:      now,
		RTL:      layout.RTL,
		ViewMode: mode,
		Width:    3*layout.ListWidth + gridWidth,
		Height:   layout.HeaderHeight + float64(groups.Len())*layout.RowHeight,
		Geometry: geometry,
	}

	header := headerOptions(mode)
	for i, d := range dates {
		chart.Columns = append(chart.Columns, Column{
			Date:  d,
			X:     float64(i) * layout.ColumnWidth,
			Label: r.formatter.Format(d, header),
		})
	}

	barHeight := layout.RowHeight * layout.BarFill
	barOffset := (layout.RowHeight - barHeight) / 2
	groups.Each(func(i int, g *grouping.Group) {
		start, end := g.Span()
		row := Row{
			Name:       g.Name,
			Indicator:  g.Indicator(),
			StartLabel: r.formatter.Format(start, r.labelOpts),
			EndLabel:   r.formatter.Format(end, r.labelOpts),
			Blocks:     g.Blocks,
		}
		y := float64(i)*layout.RowHeight + barOffset
		for _, b := range g.Blocks {
			x1 := grid.XForTime(ascending, layout.ColumnWidth, b.Start)
			x2 := grid.XForTime(ascending, layout.ColumnWidth, b.End)
			if layout.RTL {
				x1, x2 = gridWidth-x2, gridWidth-x1
			}
			row.Bars = append(row.Bars, grid.Rect{X: x1, Y: y, Width: x2 - x1, Height: barHeight})
		}
		chart.Rows = append(chart.Rows, row)
	})

	if geometry.Today == nil {
		r.logger.Debug("Now falls outside the chart columns", zap.Time("now", now))
	}
	r.logger.Debug("Built chart",
		zap.Int("entities", len(entities)),
		zap.Int("rows", len(chart.Rows)),
		zap.Int("columns", len(chart.Columns)),
		zap.Bool("rtl", layout.RTL))
	return chart
}

// chartSpan returns the earliest start and latest end over all groups.
func chartSpan(groups *grouping.Groups) (time.Time, time.Time) {
	var first, last time.Time
	groups.Each(func(i int, g *grouping.Group) {
		start, end := g.Span()
		if i == 0 || start.Before(first) {
			first = start
		}
		if i == 0 || end.After(last) {
			last = end
		}
	})
	return first, last
}
