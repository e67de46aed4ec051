package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gantt2svg/internal/render"
)

type renderOptions struct {
	csvFile string
	output  string
	now     string
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a CSV schedule as an SVG (or JSON/YAML) Gantt chart.",
		Example: `
gantt2svg render --csv plan.csv
gantt2svg render --csv plan.csv --config chart.yaml --output plan.svg
gantt2svg render --csv plan.csv --format json --output -
gantt2svg render --csv plan.csv --rtl --view week --now 2024-01-02T12:00:00Z
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.csvFile, "csv", "", "CSV file with name, start and end columns (required)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output filename; '-' writes to stdout (default: CSV name with the format's extension)")
	flags.StringVar(&opts.now, "now", "", "Instant used for the today highlight (default: current time)")
	flags.String("format", "", "Output format: svg, json or yaml")
	mustBind(root.v, "output.format", flags.Lookup("format"))
	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, root *rootOptions) error {
	logger := root.logger
	cfg := root.cfg

	now, err := parseNow(o.now)
	if err != nil {
		return err
	}
	entities, err := root.loadEntities(o.csvFile)
	if err != nil {
		return err
	}
	logger.Debug("Parsed entities", zap.Int("count", len(entities)), zap.String("csv", o.csvFile))

	formatter, err := root.formatter()
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(cfg, formatter, logger)
	if err != nil {
		return err
	}
	chart := renderer.Build(entities, now)

	if o.output == "-" {
		return renderer.Write(cmd.OutOrStdout(), chart, cfg.Output.Format)
	}

	outputPath := render.OutputFilename(o.csvFile, o.output, cfg.Output.Format)
	if err := writeFile(outputPath, func(w io.Writer) error {
		return renderer.Write(w, chart, cfg.Output.Format)
	}); err != nil {
		return err
	}

	logger.Info("Chart generated",
		zap.String("output", outputPath),
		zap.Int("rows", len(chart.Rows)),
		zap.Int("columns", len(chart.Columns)))
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d entities from %s\n", len(entities), o.csvFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Timeline %s generated successfully: %s\n", cfg.Output.Format, outputPath)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}
