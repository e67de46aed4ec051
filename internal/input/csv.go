// Package input reads timeline entities from CSV.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"gantt2svg/internal/config"
	"gantt2svg/internal/grouping"
)

var (
	// ErrMissingColumn is returned when a configured column is absent from the header.
	ErrMissingColumn = errors.New("column not found")
	// ErrInvertedInterval is returned for a row whose end is before its start.
	ErrInvertedInterval = errors.New("end before start")
)

// timestampFormats are tried in order for every start/end cell.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// Options controls how rows are read.
type Options struct {
	Columns       config.ColumnsConfig
	AllowInverted bool
	// Location is used for timestamps without a zone. Defaults to UTC.
	Location *time.Location
}

// Loader turns CSV rows into entities. Rows keep file order, which decides
// the order of chart rows.
type Loader struct {
	opts   Options
	logger *zap.Logger
}

// NewLoader returns a loader; a nil logger discards log output.
func NewLoader(opts Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Loader{opts: opts, logger: logger.Named("input")}
}

type columnIndex struct {
	name, start, end int
	hideChildren     int // -1 when the file has no such column
}

// LoadFile opens filename and reads it with Read.
func (l *Loader) LoadFile(filename string) ([]grouping.Entity, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	entities, err := l.Read(file)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Parsed CSV", zap.String("file", filename), zap.Int("entities", len(entities)))
	return entities, nil
}

// Read parses every data row of r.
func (l *Loader) Read(r io.Reader) ([]grouping.Entity, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	idx, err := l.mapColumns(header)
	if err != nil {
		return nil, err
	}

	var entities []grouping.Entity
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		entity, err := l.parseRow(record, idx)
		if err != nil {
			return nil, fmt.Errorf("error parsing CSV row %d: %w", line, err)
		}
		if entity.End.Before(entity.Start) {
			if !l.opts.AllowInverted {
				return nil, fmt.Errorf("error parsing CSV row %d: %q %s: %w",
					line, entity.Name, entity.Start.Format(time.RFC3339), ErrInvertedInterval)
			}
			l.logger.Warn("Row ends before it starts; drawing it with zero width",
				zap.Int("line", line),
				zap.String("name", entity.Name),
				zap.Time("start", entity.Start),
				zap.Time("end", entity.End))
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (l *Loader) mapColumns(header []string) (columnIndex, error) {
	columnMap := make(map[string]int, len(header))
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	find := func(name string) (int, error) {
		if i, ok := columnMap[strings.ToLower(name)]; ok {
			return i, nil
		}
		return -1, fmt.Errorf("%w: %q (available columns: %v)", ErrMissingColumn, name, header)
	}

	var idx columnIndex
	var err error
	if idx.name, err = find(l.opts.Columns.Name); err != nil {
		return idx, err
	}
	if idx.start, err = find(l.opts.Columns.Start); err != nil {
		return idx, err
	}
	if idx.end, err = find(l.opts.Columns.End); err != nil {
		return idx, err
	}
	idx.hideChildren = -1
	if l.opts.Columns.HideChildren != "" {
		if i, ok := columnMap[strings.ToLower(l.opts.Columns.HideChildren)]; ok {
			idx.hideChildren = i
		}
	}
	return idx, nil
}

func (l *Loader) parseRow(record []string, idx columnIndex) (grouping.Entity, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	start, err := ParseTimestamp(cell(idx.start), l.opts.Location)
	if err != nil {
		return grouping.Entity{}, err
	}
	end, err := ParseTimestamp(cell(idx.end), l.opts.Location)
	if err != nil {
		return grouping.Entity{}, err
	}
	expand, err := ParseExpandState(cell(idx.hideChildren))
	if err != nil {
		return grouping.Entity{}, err
	}
	return grouping.Entity{Name: cell(idx.name), Start: start, End: end, Expand: expand}, nil
}

// ParseTimestamp accepts RFC 3339 and the common date layouts listed in
// timestampFormats. Layouts without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var err error
	for _, format := range timestampFormats {
		var t time.Time
		t, err = time.ParseInLocation(format, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp '%s': %w", s, err)
}

// ParseExpandState reads the hide_children cell: "true" means collapsed,
// "false" means expanded, an empty cell means the row has no children.
func ParseExpandState(s string) (grouping.ExpandState, error) {
	switch strings.ToLower(s) {
	case "":
		return grouping.ExpandUnknown, nil
	case "true", "yes", "1", "collapsed":
		return grouping.ExpandCollapsed, nil
	case "false", "no", "0", "expanded":
		return grouping.ExpandExpanded, nil
	}
	return grouping.ExpandUnknown, fmt.Errorf("invalid hide_children value %q", s)
}
