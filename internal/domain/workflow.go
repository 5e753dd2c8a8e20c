package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"jsprobe.dev/pkg/jsprobe/internal/adapter"
	"jsprobe.dev/pkg/jsprobe/internal/controller"
	m "jsprobe.dev/pkg/jsprobe/internal/model"
	pkg "jsprobe.dev/pkg/jsprobe/pkg"
)

// ErrNoInputs is returned when mutation testing is asked to run a file
// without any input to tell mutants apart from the original.
var ErrNoInputs = errors.New("no inputs")

// InputsSuffix names the input suite found next to a source file by default:
// sign.js reads sign.inputs.yaml.
const InputsSuffix = ".inputs.yaml"

// CoverArgs contains the arguments for a coverage run.
type CoverArgs struct {
	Paths   []m.Path
	Inputs  m.Path // overrides the per-file default suite
	Threads int
	Render  RenderOptions
}

// MutateArgs contains the arguments for listing mutants.
type MutateArgs struct {
	Paths    []m.Path
	Diff     bool
	WriteDir m.Path // when set, every mutant is also written there as a standalone file
}

// TestArgs contains the arguments for running mutation tests.
type TestArgs struct {
	Paths           []m.Path
	Inputs          m.Path
	Reports         m.Path
	Threads         int
	ShardIndex      int
	TotalShardCount int
	SpillDir        string
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs contains the arguments for merging shard reports.
type MergeArgs struct {
	Reports m.Path
}

// Workflow defines the operations behind jsprobe's commands.
type Workflow interface {
	Cover(ctx context.Context, args CoverArgs) error
	Mutate(ctx context.Context, args MutateArgs) error
	Test(ctx context.Context, args TestArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Orchestrator

	compiler adapter.Compiler
	options  MutatorOptions
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
	compiler adapter.Compiler,
	options MutatorOptions,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Orchestrator:    orchestrator,
		compiler:        compiler,
		options:         options,
	}
}

// InputsPath returns the input suite used for file: override when set,
// otherwise the sibling <name>.inputs.yaml.
func InputsPath(file, override m.Path) m.Path {
	if override != "" {
		return override
	}

	path := string(file)

	return m.Path(strings.TrimSuffix(path, filepath.Ext(path)) + InputsSuffix)
}

func (w *workflow) readInputs(ctx context.Context, file, override m.Path) ([]m.Input, error) {
	path := InputsPath(file, override)

	inputs, err := w.ReadInputs(ctx, path)
	if err != nil {
		if override == "" && errors.Is(err, fs.ErrNotExist) {
			slog.Warn("No input suite found", "file", file, "inputs", path)
			return nil, nil
		}

		slog.Error("Failed to read inputs", "inputs", path, "error", err)

		return nil, fmt.Errorf("failed to read inputs %s: %w", path, err)
	}

	return inputs, nil
}

// Cover instruments every file, runs its input suite and displays the
// coverage summary.
func (w *workflow) Cover(ctx context.Context, args CoverArgs) error {
	if err := w.Start(ctx, controller.WithCoverMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	for _, path := range args.Paths {
		report, err := w.cover(ctx, path, args)
		if err != nil {
			w.Close(ctx)
			return err
		}

		w.DisplayCoverage(ctx, path, report)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) cover(ctx context.Context, path m.Path, args CoverArgs) (string, error) {
	file, err := w.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read source", "file", path, "error", err)
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	inputs, err := w.readInputs(ctx, path, args.Inputs)
	if err != nil {
		return "", err
	}

	coverage, err := NewCoverage(ctx, file.Content, w.compiler)
	if err != nil {
		return "", fmt.Errorf("failed to instrument %s: %w", path, err)
	}

	if err := runCoverage(ctx, coverage, inputs, args.Threads); err != nil {
		return "", fmt.Errorf("coverage run of %s: %w", path, err)
	}

	return coverage.Render(args.Render), nil
}

// runCoverage splits inputs into contiguous slices, runs each slice on a
// fork of coverage and merges the forks back.
func runCoverage(ctx context.Context, coverage *Coverage, inputs []m.Input, threads int) error {
	slices := splitInputs(inputs, threads)
	if len(slices) <= 1 || !coverage.Runnable() {
		return coverage.Run(ctx, inputs)
	}

	forks := make([]*Coverage, len(slices))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, slice := range slices {
		fork := coverage.Fork()
		forks[i] = fork

		group.Go(func() error {
			return fork.Run(groupCtx, slice)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, fork := range forks {
		coverage.Merge(fork)
	}

	return nil
}

func splitInputs(inputs []m.Input, parts int) [][]m.Input {
	if parts <= 1 || len(inputs) <= 1 {
		return [][]m.Input{inputs}
	}

	size := (len(inputs) + parts - 1) / parts

	var out [][]m.Input

	for start := 0; start < len(inputs); start += size {
		end := min(start+size, len(inputs))
		out = append(out, inputs[start:end])
	}

	return out
}

// Mutate generates and displays the mutants of every file.
func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	for _, path := range args.Paths {
		mutants, err := w.mutants(ctx, path, args.Diff)
		if err == nil && args.WriteDir != "" {
			err = w.writeMutants(ctx, path, args.WriteDir, mutants)
		}

		if displayErr := w.DisplayMutants(ctx, path, mutants, err); displayErr != nil {
			w.Close(ctx)
			slog.Error("Failed to display mutants", "file", path, "error", displayErr)

			return fmt.Errorf("display: %w", displayErr)
		}
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) mutants(ctx context.Context, path m.Path, diff bool) ([]m.Mutant, error) {
	file, err := w.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mutants, err := GenerateMutants(file.Content, w.options)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mutants for %s: %w", path, err)
	}

	if !diff {
		return mutants, nil
	}

	for i := range mutants {
		text, err := MutantDiff(mutants[i])
		if err != nil {
			return nil, err
		}

		mutants[i].Diff = text
	}

	return mutants, nil
}

// MutantFileName names the standalone file of a mutant: sign.js mutant 3 is
// sign.mutant-3.js.
func MutantFileName(file m.Path, id int) string {
	base := filepath.Base(string(file))
	ext := filepath.Ext(base)

	return fmt.Sprintf("%s.mutant-%d%s", strings.TrimSuffix(base, ext), id, ext)
}

func (w *workflow) writeMutants(ctx context.Context, file, dir m.Path, mutants []m.Mutant) error {
	for _, mutant := range mutants {
		path := m.Path(filepath.Join(string(dir), MutantFileName(file, mutant.ID)))

		if err := w.WriteFile(ctx, path, []byte(mutant.MutatedSource)); err != nil {
			slog.Error("Failed to write mutant", "path", path, "error", err)
			return fmt.Errorf("failed to write mutant %d: %w", mutant.ID, err)
		}
	}

	return nil
}

// Test runs mutation testing: it records a baseline per file, spills every
// mutant to disk, tests the mutants of the requested shard in parallel and
// saves the reports.
func (w *workflow) Test(ctx context.Context, args TestArgs) error {
	if err := w.Start(ctx, controller.WithTestMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	score, err := w.test(ctx, args)
	if err != nil {
		w.Close(ctx)
		return err
	}

	w.DisplayMutationScore(ctx, score.Ratio())

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) test(ctx context.Context, args TestArgs) (Score, error) {
	pending, err := pkg.NewFileSpill[pendingMutant](spillOptions(args.SpillDir)...)
	if err != nil {
		return Score{}, err
	}
	defer removeSpill(pending)

	baselines, err := w.prepare(ctx, args, pending)
	if err != nil {
		return Score{}, err
	}

	upcoming, err := countShard(pending, args.ShardIndex, args.TotalShardCount)
	if err != nil {
		return Score{}, fmt.Errorf("failed to read mutants: %w", err)
	}

	threads := normalizeBufferSize(args.Threads)
	w.DisplayConcurrencyInfo(ctx, threads, args.ShardIndex, args.TotalShardCount)
	w.DisplayUpcomingTestsInfo(ctx, upcoming)

	results, err := pkg.NewFileSpill[m.Report](spillOptions(args.SpillDir)...)
	if err != nil {
		return Score{}, err
	}
	defer removeSpill(results)

	if err := w.testShard(ctx, args, baselines, pending, results); err != nil {
		return Score{}, err
	}

	reports := make([]m.Report, 0, results.Len())

	err = results.Range(func(_ uint64, report m.Report) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return Score{}, fmt.Errorf("failed to read results: %w", err)
	}

	shard := adapter.Shard{Index: args.ShardIndex, Total: args.TotalShardCount}
	if err := w.SaveReports(ctx, args.Reports, shard, reports); err != nil {
		slog.Error("Failed to save reports", "dir", args.Reports, "error", err)
		return Score{}, fmt.Errorf("save reports: %w", err)
	}

	return mutationScoreFromReports(results)
}

// prepare records the baseline of every file and spills its mutants.
func (w *workflow) prepare(ctx context.Context, args TestArgs, pending pkg.FileSpill[pendingMutant]) (map[m.Path]*Baseline, error) {
	baselines := make(map[m.Path]*Baseline, len(args.Paths))
	index := 0

	for _, path := range args.Paths {
		file, err := w.ReadFile(ctx, path)
		if err != nil {
			slog.Error("Failed to read source", "file", path, "error", err)
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		inputs, err := w.readInputs(ctx, path, args.Inputs)
		if err != nil {
			return nil, err
		}

		if len(inputs) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrNoInputs)
		}

		baseline, err := w.Baseline(ctx, file, inputs)
		if err != nil {
			return nil, err
		}

		baselines[path] = baseline

		mutants, err := GenerateMutants(file.Content, w.options)
		if err != nil {
			slog.Error("Failed to generate mutants", "file", path, "error", err)
			return nil, fmt.Errorf("generate mutants for %s: %w", path, err)
		}

		for _, mutant := range mutants {
			if err := pending.Append(pendingMutant{File: path, Index: index, Mutant: mutant}); err != nil {
				return nil, err
			}

			index++
		}

		slog.Debug("Generated mutants", "file", path, "count", len(mutants))
	}

	return baselines, nil
}

func (w *workflow) testShard(
	ctx context.Context,
	args TestArgs,
	baselines map[m.Path]*Baseline,
	pending pkg.FileSpill[pendingMutant],
	results pkg.FileSpill[m.Report],
) error {
	threads := normalizeBufferSize(args.Threads)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	threadIDs := make(chan int, threads)
	for id := range threads {
		threadIDs <- id
	}

	stream, streamErr := streamShard(groupCtx, pending, threads, args.ShardIndex, args.TotalShardCount)

	for task := range stream {
		group.Go(func() error {
			threadID := <-threadIDs
			defer func() { threadIDs <- threadID }()

			return w.testOne(groupCtx, baselines[task.File], task, threadID, results)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := <-streamErr; err != nil {
		return fmt.Errorf("failed to read mutants: %w", err)
	}

	return ctx.Err()
}

func (w *workflow) testOne(ctx context.Context, baseline *Baseline, task pendingMutant, threadID int, results pkg.FileSpill[m.Report]) error {
	w.DisplayStartingTestInfo(ctx, task.File, task.Mutant, threadID)

	report, err := w.TestMutant(ctx, baseline, task.Mutant)
	if err != nil {
		return err
	}

	if report.Status == m.Survived {
		diff, err := MutantDiff(task.Mutant)
		if err != nil {
			slog.Warn("Failed to diff mutant", "file", task.File, "mutant", task.Mutant.ID, "error", err)
		}

		report.Mutant.Diff = diff
	}

	if err := results.Append(report); err != nil {
		return err
	}

	w.DisplayCompletedTestInfo(ctx, report)

	return nil
}

// View loads saved reports and displays them with their score.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}

	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to load reports", "dir", args.Reports, "error", err)

		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.DisplayMutationScore(ctx, ScoreReports(reports).Ratio())

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// Merge combines shard reports into a single report.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	if err := w.MergeReports(ctx, args.Reports); err != nil {
		slog.Error("Failed to merge reports", "dir", args.Reports, "error", err)
		return fmt.Errorf("merge reports: %w", err)
	}

	slog.Info("Merged shard reports", "dir", args.Reports)

	return nil
}

func spillOptions(dir string) []pkg.SpillOption {
	if dir == "" {
		return nil
	}

	return []pkg.SpillOption{pkg.WithDir(dir)}
}

func removeSpill[T any](spill pkg.FileSpill[T]) {
	if err := spill.Remove(); err != nil {
		slog.Error("Failed to remove spill", "path", spill.Path(), "error", err)
	}
}
