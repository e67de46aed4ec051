package cmd

import (
	"github.com/spf13/cobra"
)

func newConfigCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML.",
		Long: `Print the configuration after merging defaults, the config file,
GANTT2SVG_* environment variables and flags. The output is a valid
config file to start from.`,
		Example: `
gantt2svg config > .gantt2svg.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.cfg.Write(cmd.OutOrStdout())
		},
	}
}
