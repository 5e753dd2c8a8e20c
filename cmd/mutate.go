package cmd

import (
	"github.com/spf13/cobra"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

var mutateDiffFlag bool
var mutateWriteFlag string

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate FILE...",
		Short: "List the mutants of JavaScript files",
		Long:  mutateLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Mutate(cmd.Context(), domain.MutateArgs{
				Paths:    parsePaths(args),
				Diff:     mutateDiffFlag,
				WriteDir: m.Path(mutateWriteFlag),
			})
		},
	}

	cmd.Flags().BoolVar(&mutateDiffFlag, diffFlagName, false, "show a unified diff of every mutant against the original")
	cmd.Flags().StringVarP(&mutateWriteFlag, writeFlagName, "w", "", "also write every mutant as a standalone file into this directory")

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}
