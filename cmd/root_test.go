package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsprobe.dev/pkg/jsprobe/internal/controller"
	domainmocks "jsprobe.dev/pkg/jsprobe/internal/domain/mocks"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func TestParseShardFlag(t *testing.T) {
	tests := []struct {
		name      string
		shard     string
		wantIndex int
		wantTotal int
	}{
		{"empty string", "", 0, 1},
		{"valid 0/3", "0/3", 0, 3},
		{"valid 1/3", "1/3", 1, 3},
		{"valid 2/3", "2/3", 2, 3},
		{"invalid format", "invalid", 0, 1},
		{"zero total", "0/0", 0, 1},
		{"negative total", "0/-1", 0, 1},
		{"negative index", "-1/3", 0, 1},
		{"index >= total", "3/3", 0, 1},
		{"index > total", "5/3", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIndex, gotTotal := parseShardFlag(tt.shard)
			assert.Equal(t, tt.wantIndex, gotIndex, "index")
			assert.Equal(t, tt.wantTotal, gotTotal, "total")
		})
	}
}

func TestParsePaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty", []string{}, []m.Path{}},
		{"single", []string{"sign.js"}, []m.Path{m.Path("sign.js")}},
		{
			"multiple",
			[]string{"src/a.js", "src/b.js", "lib/c.mjs"},
			[]m.Path{m.Path("src/a.js"), m.Path("src/b.js"), m.Path("lib/c.mjs")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePaths(tt.args)
			require.Len(t, got, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "jsprobe", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{outputFlagName, uiFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	withWorkflow(t, domainmocks.NewMockWorkflow(t))

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "branch coverage")
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"cover", "mutate", "run", "view", "merge", "init", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestSubcommandHelp(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want []string
	}{
		{newInitCmd(), []string{"jsprobe.yaml", "JSPROBE_", "overwrite"}},
		{newViewCmd(), []string{"jsprobe run", "status", "mutation score"}},
		{newMergeCmd(), []string{"report-<i>-of-<n>.yaml", "report.yaml", "--shard"}},
		{newVersionCmd(), []string{"jsprobe", "goja"}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.NotEmpty(t, tt.cmd.Short)

			help := tt.cmd.Short + "\n" + tt.cmd.Long
			for _, want := range tt.want {
				assert.Contains(t, help, want)
			}

			assert.NotContains(t, help, ".go ")
		})
	}
}

func TestInit(t *testing.T) {
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, reportStore)
}

func TestNewUI(t *testing.T) {
	cmd := newRootCmd()

	for _, mode := range []string{"", uiModeAuto} {
		got, err := newUI(cmd, mode)
		require.NoError(t, err, mode)
		assert.NotNil(t, got, mode)
	}

	got, err := newUI(cmd, uiModeSimple)
	require.NoError(t, err)
	assert.IsType(t, &controller.SimpleUI{}, got)

	got, err = newUI(cmd, uiModeTUI)
	require.NoError(t, err)
	assert.IsType(t, &controller.TUI{}, got)

	_, err = newUI(cmd, "fancy")
	require.ErrorContains(t, err, `unknown ui "fancy"`)
}

func TestSetupWorkflow(t *testing.T) {
	withWorkflow(t, nil)

	require.NoError(t, setupWorkflow(newRootCmd()))

	assert.NotNil(t, workflow)
	assert.NotNil(t, sandbox)
	assert.NotNil(t, orchestrator)
	assert.NotNil(t, ui)

	built := workflow
	require.NoError(t, setupWorkflow(newRootCmd()))
	assert.Same(t, built, workflow)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // exits with status 1
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
