package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"gantt2svg/internal/grouping"
)

func newGroupsCommand(root *rootOptions) *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Print the merged date blocks per name.",
		Example: `
gantt2svg groups --csv plan.csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entities, err := root.loadEntities(csvFile)
			if err != nil {
				return err
			}
			formatter, err := root.formatter()
			if err != nil {
				return err
			}
			opts, err := root.cfg.DateOptions()
			if err != nil {
				return err
			}

			groups := grouping.ComputeBlocksPerGroup(entities)

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("", bold.Sprint("Name"), bold.Sprint("From"), bold.Sprint("To"), bold.Sprint("Blocks"))
			groups.Each(func(_ int, g *grouping.Group) {
				start, end := g.Span()
				tbl.AddRow(g.Indicator(), displayName(g.Name),
					formatter.Format(start, opts), formatter.Format(end, opts), describeBlocks(g.Blocks))
			})
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvFile, "csv", "", "CSV file with name, start and end columns (required)")
	return cmd
}

func displayName(name string) string {
	if name == "" {
		return color.New(color.Faint).Sprint("(unnamed)")
	}
	return name
}

func describeBlocks(blocks []grouping.Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Start.Format("2006-01-02") + ".." + b.End.Format("2006-01-02")
	}
	return strings.Join(parts, ", ")
}
