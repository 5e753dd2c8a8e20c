package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
)

// withWorkflow installs wf as the command workflow for the duration of the
// test. A nil wf makes the next command build the real one.
func withWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	originalWorkflow, originalUI, originalSandbox, originalOrchestrator := workflow, ui, sandbox, orchestrator
	workflow = wf

	t.Cleanup(func() {
		workflow, ui, sandbox, orchestrator = originalWorkflow, originalUI, originalSandbox, originalOrchestrator
	})
}

// newTestRootCmd returns a root command with sub attached and its output discarded.
func newTestRootCmd(sub *cobra.Command) *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return cmd
}
