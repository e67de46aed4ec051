// Package datefmt formats dates for row labels in a handful of locales and
// memoises the results.
package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Field controls how one date component is rendered.
type Field int

const (
	Omit Field = iota
	Numeric
	Short
	Long
)

// Options selects the date components to show.
type Options struct {
	Weekday Field `yaml:"weekday" mapstructure:"weekday"`
	Year    Field `yaml:"year" mapstructure:"year"`
	Month   Field `yaml:"month" mapstructure:"month"`
	Day     Field `yaml:"day" mapstructure:"day"`
}

// DefaultOptions renders e.g. "Mon, January 1, 2024" in English.
var DefaultOptions = Options{Weekday: Short, Year: Numeric, Month: Long, Day: Numeric}

func (o Options) key() string {
	return fmt.Sprintf("%d%d%d%d", o.Weekday, o.Year, o.Month, o.Day)
}

// ParseField maps "", "numeric", "short" and "long" to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "omit":
		return Omit, nil
	case "numeric":
		return Numeric, nil
	case "short":
		return Short, nil
	case "long":
		return Long, nil
	}
	return Omit, fmt.Errorf("unknown date field style %q", s)
}

// Formatter renders dates for a single locale. It is safe for concurrent use
// when its Cache is.
type Formatter struct {
	tag   language.Tag
	names *localeNames
	cache *Cache
}

// NewFormatter matches locale against the supported locales and falls back to
// English when nothing is close. A nil cache gets a private one of
// DefaultCacheSize entries.
func NewFormatter(locale string, cache *Cache) (*Formatter, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("error parsing locale %q: %w", locale, err)
	}
	_, idx, _ := matcher.Match(requested)
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Formatter{tag: supported[idx], names: locales[idx], cache: cache}, nil
}

// Locale returns the matched locale.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Format renders t with opts in t's own location. Results are cached by
// locale, calendar date and options, so one instant seen in two zones gets
// two entries.
func (f *Formatter) Format(t time.Time, opts Options) string {
	key := f.tag.String() + "|" + t.Format("2006-01-02") + "|" + opts.key()
	return f.cache.GetOrCompute(key, func() string {
		return f.names.format(t, opts)
	})
}

type dateParts struct {
	weekday string
	day     string
	month   string
	year    string
	numeric bool
}

func (n *localeNames) parts(t time.Time, opts Options) dateParts {
	var p dateParts
	switch opts.Weekday {
	case Short:
		p.weekday = n.weekdaysShort[t.Weekday()]
	case Long, Numeric:
		p.weekday = n.weekdaysLong[t.Weekday()]
	}
	switch opts.Month {
	case Short:
		p.month = n.monthsShort[t.Month()-1]
	case Long:
		p.month = n.monthsLong[t.Month()-1]
	case Numeric:
		p.month = strconv.Itoa(int(t.Month()))
		p.numeric = true
	}
	if opts.Day != Omit {
		p.day = strconv.Itoa(t.Day())
	}
	if opts.Year != Omit {
		p.year = strconv.Itoa(t.Year())
	}
	return p
}

func (n *localeNames) format(t time.Time, opts Options) string {
	return n.compose(n.parts(t, opts))
}

// join concatenates the non-empty parts with sep.
func join(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// prefix puts the weekday in front of rest using sep.
func prefix(weekday, sep, rest string) string {
	if weekday == "" {
		return rest
	}
	if rest == "" {
		return weekday
	}
	return weekday + sep + rest
}
