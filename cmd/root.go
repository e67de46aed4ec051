// Package cmd wires the gantt2svg command line.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"gantt2svg/internal/config"
	"gantt2svg/internal/datefmt"
	"gantt2svg/internal/grouping"
	"gantt2svg/internal/input"
	"gantt2svg/internal/observability"
)

// rootOptions is the state shared by every subcommand.
type rootOptions struct {
	configFile string
	debug      bool

	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
}

// New builds the command tree.
func New() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "gantt2svg",
		Short: "Render CSV schedules as Gantt chart SVGs.",
		Long: `gantt2svg reads name/start/end rows from a CSV file, merges overlapping
rows that share a name into blocks, and draws one chart row per name on a
date grid with the current column highlighted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file (default is ./.gantt2svg.yaml, then ~/.gantt2svg.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug mode for verbose output")
	flags.Bool("rtl", false, "Lay the chart out right-to-left")
	flags.String("view", "", "Column size: day, week, month or year")
	flags.String("locale", "", "Locale for date labels (e.g. en-US, de-DE)")
	mustBind(opts.v, "layout.rtl", flags.Lookup("rtl"))
	mustBind(opts.v, "grid.view_mode", flags.Lookup("view"))
	mustBind(opts.v, "layout.locale", flags.Lookup("locale"))

	root.AddCommand(
		newRenderCommand(opts),
		newGroupsCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (o *rootOptions) initialize() error {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		observability.InitializeLogger(config.Default().Logger)
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if o.debug {
		cfg.Logger.Level = "debug"
	}
	observability.InitializeLogger(cfg.Logger)

	o.cfg = cfg
	o.logger = observability.GetLogger()
	o.logger.Debug("Configuration loaded",
		zap.Float64("row_height", cfg.Layout.RowHeight),
		zap.Float64("column_width", cfg.Layout.ColumnWidth),
		zap.String("view_mode", cfg.Grid.ViewMode),
		zap.Bool("rtl", cfg.Layout.RTL))
	return nil
}

// loadEntities reads the CSV with the configured column mapping.
func (o *rootOptions) loadEntities(csvFile string) ([]grouping.Entity, error) {
	if csvFile == "" {
		return nil, fmt.Errorf("CSV file is required; use --csv to specify the file")
	}
	loader := input.NewLoader(input.Options{
		Columns:       o.cfg.Columns,
		AllowInverted: o.cfg.Input.AllowInverted,
		Location:      inputLocation,
	}, o.logger)

	entities, err := loader.LoadFile(csvFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("no entities found in CSV file %s", csvFile)
	}
	return entities, nil
}

func (o *rootOptions) formatter() (*datefmt.Formatter, error) {
	f, err := datefmt.NewFormatter(o.cfg.Layout.Locale, datefmt.NewCache(o.cfg.Labels.CacheSize))
	if err != nil {
		return nil, fmt.Errorf("error creating date formatter: %w", err)
	}
	return f, nil
}

// inputLocation applies to CSV cells and --now values that carry no zone,
// so both land on the same column grid.
var inputLocation = time.UTC

// parseNow reads the --now flag; an empty value means the wall clock.
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := input.ParseTimestamp(s, inputLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return t, nil
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding --%s to %s: %v", flag.Name, key, err))
	}
}
