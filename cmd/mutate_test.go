package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jsprobe.dev/pkg/jsprobe/internal/domain"
	domainmocks "jsprobe.dev/pkg/jsprobe/internal/domain/mocks"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func TestMutateCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.MutateArgs
	}{
		{
			name: "list only",
			args: []string{"mutate", "sign.js"},
			want: domain.MutateArgs{Paths: []m.Path{"sign.js"}},
		},
		{
			name: "diff and write",
			args: []string{"mutate", "--diff", "-w", "mutants", "sign.js"},
			want: domain.MutateArgs{Paths: []m.Path{"sign.js"}, Diff: true, WriteDir: "mutants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)
			withWorkflow(t, mockWorkflow)

			cmd := newTestRootCmd(newMutateCmd())
			mockWorkflow.On("Mutate", mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestMutateCmd_Error(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	withWorkflow(t, mockWorkflow)

	cmd := newTestRootCmd(newMutateCmd())
	mockWorkflow.On("Mutate", mock.Anything, mock.Anything).Return(errors.New("display: closed"))

	cmd.SetArgs([]string{"mutate", "sign.js"})
	require.EqualError(t, cmd.Execute(), "display: closed")
}
