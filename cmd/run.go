package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

var runParallelFlag int
var runShardFlag string
var runInputsFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Run mutation testing",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shardIndex, totalShards := parseShardFlag(runShardFlag)

			return workflow.Test(cmd.Context(), domain.TestArgs{
				Paths:           parsePaths(args),
				Inputs:          m.Path(runInputsFlag),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Threads:         viper.GetInt(runParallelConfigKey),
				ShardIndex:      shardIndex,
				TotalShardCount: totalShards,
				SpillDir:        viper.GetString(runSpillDirKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, parallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers for mutation testing")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelConfigKey)

	cmd.Flags().Duration(timeoutFlagName, viper.GetDuration(runTimeoutConfigKey), "time limit of one program invocation")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), runTimeoutConfigKey)

	cmd.Flags().StringVarP(&runShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().StringVarP(&runInputsFlag, inputsFlagName, "i", "", "input suite used for every file")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
