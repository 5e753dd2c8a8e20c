package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter jsprobe.yaml",
		Long: `Write jsprobe.yaml into the current directory with every setting at its
default: the mutation sentinel and assertion names, the sandbox timeout and
program cache, worker count, report directory and log rotation. Values in the
file are overridden by JSPROBE_* environment variables and by flags.

The command refuses to overwrite an existing jsprobe.yaml.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
