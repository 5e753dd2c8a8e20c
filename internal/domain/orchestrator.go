package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jsprobe.dev/pkg/jsprobe/internal/adapter"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

// Baseline holds the outcomes of the original program for a fixed input
// suite. Mutants are compared against it.
type Baseline struct {
	File     m.Path
	Inputs   []m.Input
	Outcomes []adapter.Outcome
}

// Orchestrator runs programs through the sandbox and classifies mutants.
type Orchestrator interface {
	Baseline(ctx context.Context, file m.File, inputs []m.Input) (*Baseline, error)
	TestMutant(ctx context.Context, baseline *Baseline, mutant m.Mutant) (m.Report, error)
}

type orchestrator struct {
	compiler adapter.Compiler
}

// NewOrchestrator creates an Orchestrator compiling programs with compiler.
func NewOrchestrator(compiler adapter.Compiler) Orchestrator {
	return &orchestrator{compiler: compiler}
}

// Baseline runs the original program once per input. The original must be
// runnable and must finish on every input.
func (o *orchestrator) Baseline(ctx context.Context, file m.File, inputs []m.Input) (*Baseline, error) {
	runner, err := o.compiler.Compile(ctx, file.Content)
	if err != nil {
		slog.Error("Failed to compile original program", "file", file.Path, "error", err)
		return nil, fmt.Errorf("failed to compile %s: %w", file.Path, err)
	}

	outcomes := make([]adapter.Outcome, len(inputs))

	for i, input := range inputs {
		outcome, err := runner.Invoke(ctx, input, nil)
		if err != nil {
			slog.Error("Failed to run original program", "file", file.Path, "input", i, "error", err)
			return nil, fmt.Errorf("failed to run %s on input %d: %w", file.Path, i, err)
		}

		outcomes[i] = outcome
	}

	return &Baseline{File: file.Path, Inputs: inputs, Outcomes: outcomes}, nil
}

// TestMutant runs mutant against every input of baseline, in order, and stops
// at the first input whose outcome differs from the original's.
func (o *orchestrator) TestMutant(ctx context.Context, baseline *Baseline, mutant m.Mutant) (m.Report, error) {
	report := m.Report{File: baseline.File, Mutant: mutant, Input: -1}

	if err := ctx.Err(); err != nil {
		return o.withStatus(report, m.Skipped), err
	}

	runner, err := o.compiler.Compile(ctx, mutant.MutatedSource)
	if err != nil {
		slog.Debug("Mutant does not compile", "file", baseline.File, "mutant", mutant.ID, "error", err)

		report.Err = err.Error()

		return o.withStatus(report, m.Error), nil
	}

	for i, input := range baseline.Inputs {
		outcome, err := runner.Invoke(ctx, input, nil)

		switch {
		case errors.Is(err, adapter.ErrTimeout):
			report.Input = i
			report.Original = baseline.Outcomes[i].String()
			report.Mutated = "timeout"

			return o.withStatus(report, m.Timeout), nil
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return o.withStatus(report, m.Skipped), ctxErr
			}

			report.Input = i
			report.Err = err.Error()

			return o.withStatus(report, m.Error), nil
		}

		if outcome != baseline.Outcomes[i] {
			report.Input = i
			report.Original = baseline.Outcomes[i].String()
			report.Mutated = outcome.String()

			return o.withStatus(report, m.Killed), nil
		}
	}

	return o.withStatus(report, m.Survived), nil
}

func (o *orchestrator) withStatus(report m.Report, status m.TestStatus) m.Report {
	report.Status = status

	slog.Debug("Mutant tested", "file", report.File, "mutant", report.Mutant.ID, "status", status)

	return report
}
