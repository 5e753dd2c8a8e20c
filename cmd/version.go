package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const engineModule = "github.com/dop251/goja"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jsprobe version",
		Long: `Print the jsprobe build version, the Go toolchain it was built with and the
version of the goja engine that parses and runs the JavaScript under test.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("jsprobe version: unknown")
				return
			}

			cmd.Println("jsprobe\t", info.Main.Version)
			cmd.Println("go\t", info.GoVersion)
			cmd.Println("goja\t", engineVersion(info))
		},
	}
}

// engineVersion returns the goja module version linked into the binary.
func engineVersion(info *debug.BuildInfo) string {
	for _, dep := range info.Deps {
		if dep.Path != engineModule {
			continue
		}

		if dep.Replace != nil {
			return dep.Replace.Version
		}

		return dep.Version
	}

	return "unknown"
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
