package cmd

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	if strings.Contains(output, "jsprobe version: unknown") {
		return
	}

	assert.Contains(t, output, "jsprobe\t")
	assert.Contains(t, output, "go\t")
	assert.Contains(t, output, "goja\t")
}

func TestEngineVersion(t *testing.T) {
	tests := []struct {
		name string
		deps []*debug.Module
		want string
	}{
		{"missing", nil, "unknown"},
		{"linked", []*debug.Module{{Path: "github.com/spf13/cobra", Version: "v1.10.2"}, {Path: engineModule, Version: "v0.0.1"}}, "v0.0.1"},
		{"replaced", []*debug.Module{{Path: engineModule, Version: "v0.0.1", Replace: &debug.Module{Version: "v0.0.2"}}}, "v0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engineVersion(&debug.BuildInfo{Deps: tt.deps}))
		})
	}
}
