package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

var coverInputsFlag string
var coverParallelFlag int
var coverDetailFlag bool
var coverCodeFlag bool
var coverModifiedFlag bool

// coverCmd represents the cover command.
var coverCmd = newCoverCmd()

func newCoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover FILE...",
		Short: "Report function, statement and branch coverage",
		Long:  coverLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threads := coverParallelFlag
			if !cmd.Flags().Changed(parallelFlagName) {
				threads = viper.GetInt(runParallelConfigKey)
			}

			return workflow.Cover(cmd.Context(), domain.CoverArgs{
				Paths:   parsePaths(args),
				Inputs:  m.Path(coverInputsFlag),
				Threads: threads,
				Render: domain.RenderOptions{
					Modified: coverModifiedFlag,
					Detail:   viper.GetBool(coverDetailKey),
					Code:     coverCodeFlag,
				},
			})
		},
	}

	configureCoverFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(coverCmd)
}

func configureCoverFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&coverInputsFlag, inputsFlagName, "i", "", "input suite used for every file")
	cmd.Flags().IntVarP(&coverParallelFlag, parallelFlagName, "p", defaultRunParallel, "number of input slices run in parallel, run.parallel when unset")

	cmd.Flags().BoolVar(&coverDetailFlag, detailFlagName, viper.GetBool(coverDetailKey), "list every tracked id with its range")
	bindFlagToConfig(cmd.Flags().Lookup(detailFlagName), coverDetailKey)

	cmd.Flags().BoolVar(&coverCodeFlag, codeFlagName, false, "show the source text of every tracked id (with --detail)")
	cmd.Flags().BoolVar(&coverModifiedFlag, modifiedFlagName, false, "print the instrumented program")
}
