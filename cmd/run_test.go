package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	domainmocks "jsprobe.dev/pkg/jsprobe/internal/domain/mocks"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func TestRunCmd_TestMode(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.On("Test", mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.Threads == 2 &&
			args.ShardIndex == 0 &&
			args.TotalShardCount == 1 &&
			args.Inputs == "" &&
			args.Reports == m.Path(defaultReportsDir)
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--parallel", "2", "sign.js"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRunCmd_WithSharding(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.On("Test", mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.ShardIndex == 1 && args.TotalShardCount == 3
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--shard", "1/3", "sign.js"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRunCmd_InputsAndPaths(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.On("Test", mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.Inputs == m.Path("suite.yaml") &&
			assert.ObjectsAreEqual([]m.Path{"src/a.js", "src/b.js"}, args.Paths)
	})).Return(nil)

	cmd.SetArgs([]string{"run", "-i", "suite.yaml", "src/a.js", "src/b.js"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRunCmd_OutputFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())

	mockWorkflow.On("Test", mock.Anything, mock.MatchedBy(func(args domain.TestArgs) bool {
		return args.Reports == m.Path("out")
	})).Return(nil)

	cmd.SetArgs([]string{"-o", "out", "run", "sign.js"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_RequiresFiles(t *testing.T) {
	withWorkflow(t, domainmocks.NewMockWorkflow(t))

	cmd := newTestRootCmd(newRunCmd())
	cmd.SetArgs([]string{"run"})

	require.Error(t, cmd.Execute())
}

func TestRunCmd_WorkflowErrorIsReturned(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newRunCmd())
	mockWorkflow.On("Test", mock.Anything, mock.Anything).Return(domain.ErrNoInputs)

	cmd.SetArgs([]string{"run", "sign.js"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrNoInputs)
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run FILE...", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, runLongDescription, cmd.Long)

	for _, name := range []string{parallelFlagName, shardFlagName, inputsFlagName, timeoutFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
