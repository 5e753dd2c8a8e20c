// Package controller provides the renderers jsprobe uses to show coverage,
// mutants and mutation testing progress.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCover StartMode = iota
	ModeList
	ModeTest
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithCoverMode sets the UI to coverage reporting mode.
func WithCoverMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCover
	}
}

// WithListMode sets the UI to mutant listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithTestMode sets the UI to test execution mode.
func WithTestMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeTest
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeTest}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying workflow output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayCoverage(ctx context.Context, file m.Path, report string)
	DisplayMutants(ctx context.Context, file m.Path, mutants []m.Mutant, err error) error
	DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int)
	DisplayUpcomingTestsInfo(ctx context.Context, n int)
	DisplayStartingTestInfo(ctx context.Context, file m.Path, mutant m.Mutant, threadID int)
	DisplayCompletedTestInfo(ctx context.Context, report m.Report)
	DisplayMutationScore(ctx context.Context, score float64)
	DisplayReports(ctx context.Context, reports []m.Report) error
}

// NewUI returns the interactive UI when useTTY is set, the plain one otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
