// Package cmd provides the root command and CLI setup for jsprobe.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"jsprobe.dev/pkg/jsprobe/internal/adapter"
	"jsprobe.dev/pkg/jsprobe/internal/controller"
	"jsprobe.dev/pkg/jsprobe/internal/domain"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var sandbox *adapter.GojaSandbox
var orchestrator domain.Orchestrator
var ui controller.UI

// workflow is built by setupWorkflow on first use; tests replace it with a mock.
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// uiModeFlag selects the renderer: auto, simple or tui.
var uiModeFlag string

// verboseFlag forces debug logging.
var verboseFlag bool

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewYAMLReportStore()
}

const filesHelp = `Every FILE is a JavaScript source. Its input suite is read from the
sibling <name>.inputs.yaml unless --inputs names one suite for all files:

  inputs:
    - [5]              call the program's function with 5
    - expr: f(-5)      evaluate an expression after the program`

const rootLongDescription = `jsprobe measures how well a set of inputs exercises a JavaScript program.

It reports function, statement and branch coverage, and it runs mutation
testing: small deliberate faults (mutants) are injected one at a time and a
mutant is killed when some input makes it behave differently from the
original program.`

const coverLongDescription = `Instrument the given files, run their input suites and report coverage.

` + filesHelp

const mutateLongDescription = `Generate and list the mutants of the given files without running them.`

const runLongDescription = `Run mutation testing for the given files and save the reports.

` + filesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jsprobe",
		Short: "JavaScript coverage and mutation testing tool",
		Long:  rootLongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFileKey), viper.GetBool(logVerboseKey))
			return setupWorkflow(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for mutation testing reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&uiModeFlag, uiFlagName, viper.GetString(uiFlagName), "user interface: auto, simple or tui")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(uiFlagName), uiFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newUI returns the renderer for mode. auto picks the interactive one when
// stdout is a terminal.
func newUI(cmd *cobra.Command, mode string) (controller.UI, error) {
	switch mode {
	case "", uiModeAuto:
		return controller.NewUI(cmd, controller.IsTTY(os.Stdout)), nil
	case uiModeSimple:
		return controller.NewUI(cmd, false), nil
	case uiModeTUI:
		return controller.NewUI(cmd, true), nil
	}

	return nil, fmt.Errorf("unknown ui %q: want %s, %s or %s", mode, uiModeAuto, uiModeSimple, uiModeTUI)
}

// setupWorkflow builds the sandbox and the workflow from the resolved
// configuration. It runs after flags are parsed so flag values apply.
func setupWorkflow(cmd *cobra.Command) error {
	if workflow != nil {
		return nil
	}

	var err error

	ui, err = newUI(cmd, viper.GetString(uiFlagName))
	if err != nil {
		return err
	}

	sandbox, err = adapter.NewGojaSandbox(adapter.SandboxOptions{
		Timeout:     viper.GetDuration(runTimeoutConfigKey),
		CacheSize:   viper.GetInt(runCacheConfigKey),
		AssertIdent: viper.GetString(assertConfigKey),
	})
	if err != nil {
		return fmt.Errorf("failed to create sandbox: %w", err)
	}

	orchestrator = domain.NewOrchestrator(sandbox)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		orchestrator,
		sandbox,
		domain.MutatorOptions{
			Sentinel:    viper.GetString(sentinelConfigKey),
			AssertIdent: viper.GetString(assertConfigKey),
		},
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
