// Package config loads gantt2svg settings from YAML files, the environment
// and command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"gantt2svg/internal/datefmt"
	"gantt2svg/internal/grid"
)

// EnvPrefix prefixes every environment override, e.g. GANTT2SVG_LAYOUT_RTL.
const EnvPrefix = "GANTT2SVG"

// ConfigName is the file searched for in the working and home directories.
const ConfigName = ".gantt2svg"

// Config is the complete configuration for chart generation.
//
// Key configuration patterns:
//   - Right-to-left charts: set layout.rtl = true; columns are drawn latest first
//   - Coarser columns: set grid.view_mode to week, month or year
//   - Localised labels: set layout.locale (en, de, fr, es)
type Config struct {
	Font    FontConfig    `mapstructure:"font" yaml:"font"`
	Colors  ColorsConfig  `mapstructure:"colors" yaml:"colors"`
	Layout  LayoutConfig  `mapstructure:"layout" yaml:"layout"`
	Grid    GridConfig    `mapstructure:"grid" yaml:"grid"`
	Labels  LabelsConfig  `mapstructure:"labels" yaml:"labels"`
	Columns ColumnsConfig `mapstructure:"columns" yaml:"columns"`
	Input   InputConfig   `mapstructure:"input" yaml:"input"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
}

type FontConfig struct {
	Family string `mapstructure:"family" yaml:"family"` // Font family for all text (e.g., "Arial, sans-serif")
	Size   int    `mapstructure:"size" yaml:"size"`     // Base font size in pixels
}

type ColorsConfig struct {
	Background string `mapstructure:"background" yaml:"background"`
	Row        string `mapstructure:"row" yaml:"row"`           // Fill of even rows
	RowAlt     string `mapstructure:"row_alt" yaml:"row_alt"`   // Fill of odd rows
	RowLine    string `mapstructure:"row_line" yaml:"row_line"` // Horizontal separators
	Tick       string `mapstructure:"tick" yaml:"tick"`         // Column ticks
	Today      string `mapstructure:"today" yaml:"today"`       // Today highlight band
	Bar        string `mapstructure:"bar" yaml:"bar"`           // Merged block fill
	BarStroke  string `mapstructure:"bar_stroke" yaml:"bar_stroke"`
	Text       string `mapstructure:"text" yaml:"text"`
	Header     string `mapstructure:"header" yaml:"header"` // Column header text
}

type LayoutConfig struct {
	RowHeight    float64 `mapstructure:"row_height" yaml:"row_height"`       // Height of one row in pixels
	ColumnWidth  float64 `mapstructure:"column_width" yaml:"column_width"`   // Width of one date column in pixels
	ListWidth    float64 `mapstructure:"list_width" yaml:"list_width"`       // Width of each task list cell (name, from, to)
	HeaderHeight float64 `mapstructure:"header_height" yaml:"header_height"` // Height of the date header above the grid
	BarFill      float64 `mapstructure:"bar_fill" yaml:"bar_fill"`           // Fraction of the row height covered by a bar (0-1]
	BarRadius    float64 `mapstructure:"bar_radius" yaml:"bar_radius"`
	RTL          bool    `mapstructure:"rtl" yaml:"rtl"`
	Locale       string  `mapstructure:"locale" yaml:"locale"`
}

type GridConfig struct {
	ViewMode string `mapstructure:"view_mode" yaml:"view_mode"` // day, week, month or year
	Padding  int    `mapstructure:"padding" yaml:"padding"`     // Empty columns before the first and after the last entity
}

// LabelsConfig selects the date parts in the task list (omit, numeric, short, long).
type LabelsConfig struct {
	Weekday   string `mapstructure:"weekday" yaml:"weekday"`
	Year      string `mapstructure:"year" yaml:"year"`
	Month     string `mapstructure:"month" yaml:"month"`
	Day       string `mapstructure:"day" yaml:"day"`
	CacheSize int    `mapstructure:"cache_size" yaml:"cache_size"` // Formatted label cache entries, 0 = unbounded
}

// ColumnsConfig names the CSV columns; matching is case-insensitive.
type ColumnsConfig struct {
	Name         string `mapstructure:"name" yaml:"name"`
	Start        string `mapstructure:"start" yaml:"start"`
	End          string `mapstructure:"end" yaml:"end"`
	HideChildren string `mapstructure:"hide_children" yaml:"hide_children"` // Optional tri-state column
}

type InputConfig struct {
	// AllowInverted accepts rows whose end is before their start. They are
	// drawn with zero width instead of failing the load.
	AllowInverted bool `mapstructure:"allow_inverted" yaml:"allow_inverted"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // svg, json or yaml
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // console or json
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"` // Optional rotating JSON log file
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("font.family", "Arial, sans-serif")
	v.SetDefault("font.size", 12)

	v.SetDefault("colors.background", "#ffffff")
	v.SetDefault("colors.row", "#ffffff")
	v.SetDefault("colors.row_alt", "#f5f5f5")
	v.SetDefault("colors.row_line", "#ebeff2")
	v.SetDefault("colors.tick", "#e6e4e4")
	v.SetDefault("colors.today", "rgba(252, 248, 227, 0.5)")
	v.SetDefault("colors.bar", "#4285f4")
	v.SetDefault("colors.bar_stroke", "#333333")
	v.SetDefault("colors.text", "#333333")
	v.SetDefault("colors.header", "#666666")

	v.SetDefault("layout.row_height", 50.0)
	v.SetDefault("layout.column_width", 60.0)
	v.SetDefault("layout.list_width", 155.0)
	v.SetDefault("layout.header_height", 50.0)
	v.SetDefault("layout.bar_fill", 0.6)
	v.SetDefault("layout.bar_radius", 3.0)
	v.SetDefault("layout.rtl", false)
	v.SetDefault("layout.locale", "en-US")

	v.SetDefault("grid.view_mode", string(grid.ViewDay))
	v.SetDefault("grid.padding", 1)

	v.SetDefault("labels.weekday", "short")
	v.SetDefault("labels.year", "numeric")
	v.SetDefault("labels.month", "long")
	v.SetDefault("labels.day", "numeric")
	v.SetDefault("labels.cache_size", datefmt.DefaultCacheSize)

	v.SetDefault("columns.name", "name")
	v.SetDefault("columns.start", "start")
	v.SetDefault("columns.end", "end")
	v.SetDefault("columns.hide_children", "hide_children")

	v.SetDefault("input.allow_inverted", false)
	v.SetDefault("output.format", "svg")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "gantt2svg")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load reads configuration into v and decodes it. When path is empty a
// ".gantt2svg.yaml" is searched for in the working directory and then in the
// home directory; a missing file is not an error. Environment variables
// prefixed with GANTT2SVG_ override file values.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("error resolving config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the layout values can produce a chart.
func (c *Config) Validate() error {
	var errs []error
	if c.Layout.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout.row_height must be positive, got %v", c.Layout.RowHeight))
	}
	if c.Layout.ColumnWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.column_width must be positive, got %v", c.Layout.ColumnWidth))
	}
	if c.Layout.ListWidth < 0 {
		errs = append(errs, fmt.Errorf("layout.list_width must not be negative, got %v", c.Layout.ListWidth))
	}
	if c.Layout.BarFill <= 0 || c.Layout.BarFill > 1 {
		errs = append(errs, fmt.Errorf("layout.bar_fill must be in (0, 1], got %v", c.Layout.BarFill))
	}
	if c.Grid.Padding < 0 {
		errs = append(errs, fmt.Errorf("grid.padding must not be negative, got %d", c.Grid.Padding))
	}
	if _, err := grid.ParseViewMode(c.Grid.ViewMode); err != nil {
		errs = append(errs, fmt.Errorf("grid.view_mode: %w", err))
	}
	if _, err := c.DateOptions(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Output.Format) {
	case "svg", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format must be svg, json or yaml, got %q", c.Output.Format))
	}
	if c.Columns.Name == "" || c.Columns.Start == "" || c.Columns.End == "" {
		errs = append(errs, errors.New("columns.name, columns.start and columns.end are required"))
	}
	return errors.Join(errs...)
}

// ViewMode returns the parsed grid.view_mode.
func (c *Config) ViewMode() grid.ViewMode {
	m, err := grid.ParseViewMode(c.Grid.ViewMode)
	if err != nil {
		return grid.ViewDay
	}
	return m
}

// DateOptions converts the labels section into formatting options.
func (c *Config) DateOptions() (datefmt.Options, error) {
	var opts datefmt.Options
	var err error
	if opts.Weekday, err = datefmt.ParseField(c.Labels.Weekday); err != nil {
		return opts, fmt.Errorf("labels.weekday: %w", err)
	}
	if opts.Year, err = datefmt.ParseField(c.Labels.Year); err != nil {
		return opts, fmt.Errorf("labels.year: %w", err)
	}
	if opts.Month, err = datefmt.ParseField(c.Labels.Month); err != nil {
		return opts, fmt.Errorf("labels.month: %w", err)
	}
	if opts.Day, err = datefmt.ParseField(c.Labels.Day); err != nil {
		return opts, fmt.Errorf("labels.day: %w", err)
	}
	return opts, nil
}

// Write dumps c as YAML, suitable as a starting config file.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return enc.Close()
}
