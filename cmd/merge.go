package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Combine the reports of a sharded run",
		Long: `Combine the report-<i>-of-<n>.yaml files written by "jsprobe run --shard"
into a single report.yaml in the --output directory, ordered by file and
mutant id, so "jsprobe view" can score the whole run.`,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.Merge(cmd.Context(), domain.MergeArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
