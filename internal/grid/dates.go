package grid

import (
	"fmt"
	"strings"
	"time"
)

// ViewMode is the time span covered by one column.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewYear  ViewMode = "year"
)

// ParseViewMode accepts a view mode name, case-insensitively.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return m, nil
	}
	return "", fmt.Errorf("unknown view mode %q (want day, week, month or year)", s)
}

// step advances t by n columns.
func (m ViewMode) step(t time.Time, n int) time.Time {
	switch m {
	case ViewWeek:
		return t.AddDate(0, 0, 7*n)
	case ViewMonth:
		return t.AddDate(0, n, 0)
	case ViewYear:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

// truncate moves t back to the start of its column.
func (m ViewMode) truncate(t time.Time) time.Time {
	y, mo, d := t.Date()
	day := time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
	switch m {
	case ViewWeek:
		// weeks start on Monday
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case ViewMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, t.Location())
	case ViewYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

// SeedDates returns the column boundaries covering [start, end] with pad
// extra columns before the first and after the last occupied column. The
// result is ascending; callers rendering right-to-left reverse it.
func SeedDates(start, end time.Time, mode ViewMode, pad int) []time.Time {
	if end.Before(start) {
		start, end = end, start
	}
	if pad < 0 {
		pad = 0
	}
	first := mode.step(mode.truncate(start), -pad)
	last := mode.step(mode.truncate(end), pad+1)

	var dates []time.Time
	for d := first; !d.After(last); d = mode.step(d, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Reverse returns the dates in reverse order without touching the input.
func Reverse(dates []time.Time) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[len(dates)-1-i] = d
	}
	return out
}

// XForTime projects t onto the x axis of ascending column dates. Times
// before the first column map to 0 and times past the last boundary are
// extrapolated using the width of the last column.
func XForTime(dates []time.Time, columnWidth float64, t time.Time) float64 {
	if len(dates) == 0 || !t.After(dates[0]) {
		return 0
	}
	for i := 0; i+1 < len(dates); i++ {
		if t.After(dates[i+1]) {
			continue
		}
		span := dates[i+1].Sub(dates[i])
		if span <= 0 {
			return float64(i) * columnWidth
		}
		frac := float64(t.Sub(dates[i])) / float64(span)
		return (float64(i) + frac) * columnWidth
	}
	last := len(dates) - 1
	if last == 0 {
		return 0
	}
	span := dates[last].Sub(dates[last-1])
	if span <= 0 {
		return float64(last) * columnWidth
	}
	frac := float64(t.Sub(dates[last])) / float64(span)
	return (float64(last) + frac) * columnWidth
}
