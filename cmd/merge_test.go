package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	domainmocks "jsprobe.dev/pkg/jsprobe/internal/domain/mocks"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func TestMergeCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newMergeCmd())

	mockWorkflow.On("Merge", mock.Anything, mock.MatchedBy(func(args domain.MergeArgs) bool {
		return args.Reports == m.Path(defaultReportsDir)
	})).Return(nil)

	cmd.SetArgs([]string{"merge"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestMergeCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newMergeCmd())

	mockWorkflow.On("Merge", mock.Anything, mock.MatchedBy(func(args domain.MergeArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil)

	cmd.SetArgs([]string{"--output", "./reports-dir", "merge"})
	err := cmd.Execute()
	require.NoError(t, err)
}
