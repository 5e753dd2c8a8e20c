package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

const sampleSource = "function f(x) { return x > 0; }"

func sampleMutant(id int, kind m.MutantType, text string) m.Mutant {
	return m.Mutant{
		ID:             id,
		Type:           kind,
		OriginalSource: sampleSource,
		Range: m.SourceRange{
			Start: m.Position{Line: 1, Column: 24, Index: 23},
			End:   m.Position{Line: 1, Column: 29, Index: 28},
		},
		MutatedText: text,
	}
}

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_Lifecycle(t *testing.T) {
	ui, buf := newBufferedUI()
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithTestMode()))
	ui.Wait(ctx)
	ui.Close(ctx)

	assert.Empty(t, buf.String())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	require.ErrorIs(t, ui.Start(cancelled), context.Canceled)
}

func TestSimpleUI_DisplayCoverage(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplayCoverage(context.Background(), "sign.js", "Coverage:\n- func: 1/1 (100.00%)")

	assert.Equal(t, "File: sign.js\nCoverage:\n- func: 1/1 (100.00%)\n", buf.String())
}

func TestSimpleUI_DisplayMutants(t *testing.T) {
	tests := []struct {
		name         string
		mutants      []m.Mutant
		wantContains []string
	}{
		{
			name:         "no mutants",
			mutants:      nil,
			wantContains: []string{"File: a.js", "TOTAL MUTANTS", "0"},
		},
		{
			name: "mutants with original and mutated text",
			mutants: []m.Mutant{
				sampleMutant(1, m.MutantEquality, "x <= 0"),
				sampleMutant(2, m.MutantEquality, "x >= 0"),
			},
			wantContains: []string{"EqualityOperator", "x > 0", "x <= 0", "x >= 0", "1:24-1:29", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newBufferedUI()

			err := ui.DisplayMutants(context.Background(), "a.js", tt.mutants, nil)
			require.NoError(t, err)

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestSimpleUI_DisplayMutants_PrintsDiffs(t *testing.T) {
	ui, buf := newBufferedUI()

	mutant := sampleMutant(1, m.MutantEquality, "x <= 0")
	mutant.Diff = "--- original\n+++ mutant #1 (EqualityOperator)\n"

	require.NoError(t, ui.DisplayMutants(context.Background(), "a.js", []m.Mutant{mutant}, nil))

	assert.Contains(t, buf.String(), "+++ mutant #1 (EqualityOperator)")
}

func TestSimpleUI_DisplayMutants_Error(t *testing.T) {
	ui, buf := newBufferedUI()
	wantErr := errors.New("boom")

	err := ui.DisplayMutants(context.Background(), "a.js", nil, wantErr)
	require.ErrorIs(t, err, wantErr)

	assert.Equal(t, "mutation error: boom\n", buf.String())
}

func TestSimpleUI_TestProgress(t *testing.T) {
	ui, buf := newBufferedUI()
	ctx := context.Background()

	survivor := sampleMutant(2, m.MutantBoolean, "false")
	survivor.Diff = "-  return true;\n+  return false;\n"

	ui.DisplayConcurrencyInfo(ctx, 4, 1, 3)
	ui.DisplayUpcomingTestsInfo(ctx, 2)
	ui.DisplayStartingTestInfo(ctx, "a.js", sampleMutant(1, m.MutantEquality, "x <= 0"), 0)
	ui.DisplayCompletedTestInfo(ctx, m.Report{
		File:     "a.js",
		Mutant:   sampleMutant(1, m.MutantEquality, "x <= 0"),
		Status:   m.Killed,
		Input:    0,
		Original: "true",
		Mutated:  "false",
	})
	ui.DisplayCompletedTestInfo(ctx, m.Report{File: "a.js", Mutant: survivor, Status: m.Survived, Input: -1})
	ui.DisplayCompletedTestInfo(ctx, m.Report{File: "a.js", Mutant: sampleMutant(3, m.MutantBlock, "{}"), Status: m.Error, Input: -1, Err: "SyntaxError"})
	ui.DisplayMutationScore(ctx, 0.5)

	lines := []string{
		"Running with 4 worker(s) (shard 1/3)",
		"Upcoming mutants: 2",
		"Starting mutant #1 (EqualityOperator) a.js",
		"Completed mutant #1 (EqualityOperator) -> killed",
		"  input 0: true -> false",
		"Completed mutant #2 (BooleanLiteral) -> survived",
		"File: a.js",
		"+  return false;",
		"Completed mutant #3 (BlockStatement) -> error",
		"  error: SyntaxError",
		"Mutation score: 50.00%",
	}

	out := buf.String()
	for _, line := range lines {
		assert.Contains(t, out, line)
	}

	assert.Less(t, strings.Index(out, "Upcoming"), strings.Index(out, "Mutation score"))
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	ui, buf := newBufferedUI()

	reports := []m.Report{
		{File: "a.js", Mutant: sampleMutant(1, m.MutantEquality, "x <= 0"), Status: m.Killed},
		{File: "a.js", Mutant: sampleMutant(2, m.MutantEquality, "x >= 0"), Status: m.Timeout},
		{File: "b.js", Mutant: sampleMutant(3, m.MutantBoolean, "false"), Status: m.Survived},
	}

	require.NoError(t, ui.DisplayReports(context.Background(), reports))

	out := buf.String()
	for _, want := range []string{"a.js", "b.js", "killed", "timeout", "survived", "TOTAL MUTANTS 3", "KILLED 2 / SURVIVED 1"} {
		assert.Contains(t, out, want)
	}
}

func TestSimpleUI_CancelledContextPrintsNothing(t *testing.T) {
	ui, buf := newBufferedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayCoverage(ctx, "a.js", "x")
	ui.DisplayUpcomingTestsInfo(ctx, 1)
	ui.DisplayMutationScore(ctx, 1)
	require.Error(t, ui.DisplayReports(ctx, nil))

	assert.Empty(t, buf.String())
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a + b", snippet("a +\n   b"))

	long := strings.Repeat("x", 60)
	got := snippet(long)
	assert.Len(t, got, snippetWidth)
	assert.True(t, strings.HasSuffix(got, "..."))
}
