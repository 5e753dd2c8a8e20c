package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCoverage prints a rendered coverage report.
func (s *SimpleUI) DisplayCoverage(ctx context.Context, file m.Path, report string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("File: %s\n%s\n", file, report)
}

// DisplayMutants prints the generated mutants of file as a table, followed by
// the diff of every mutant that carries one.
func (s *SimpleUI) DisplayMutants(ctx context.Context, file m.Path, mutants []m.Mutant, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("mutation error: %v\n", err)
		return err
	}

	s.printf("File: %s\n%s", file, renderMutantTable(mutants))

	for _, mutant := range mutants {
		if mutant.Diff != "" {
			s.printf("\n%s", mutant.Diff)
		}
	}

	return nil
}

func renderMutantTable(mutants []m.Mutant) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Type", "Range", "Original", "Mutated"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, mutant := range mutants {
		table.Append([]string{
			strconv.Itoa(mutant.ID),
			string(mutant.Type),
			mutant.Range.String(),
			snippet(mutant.OriginalText()),
			snippet(mutant.MutatedText),
		})
	}

	table.SetFooter([]string{"", "", "", "Total Mutants", strconv.Itoa(len(mutants))})
	table.Render()

	return tableBuffer.String()
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, shardIndex int, shardCount int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running with %d worker(s) (shard %d/%d)\n", threads, shardIndex, shardCount)
}

// DisplayUpcomingTestsInfo shows the number of mutants about to be tested.
func (s *SimpleUI) DisplayUpcomingTestsInfo(ctx context.Context, n int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Upcoming mutants: %d\n", n)
}

// DisplayStartingTestInfo shows info about the mutant test starting.
func (s *SimpleUI) DisplayStartingTestInfo(ctx context.Context, file m.Path, mutant m.Mutant, _ int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Starting mutant #%d (%s) %s\n", mutant.ID, mutant.Type, file)
}

// DisplayCompletedTestInfo shows the verdict for one mutant. Undetected
// mutants are followed by their diff.
func (s *SimpleUI) DisplayCompletedTestInfo(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Completed mutant #%d (%s) -> %s\n", report.Mutant.ID, report.Mutant.Type, report.Status)

	switch report.Status {
	case m.Killed, m.Timeout:
		s.printf("  input %d: %s -> %s\n", report.Input, report.Original, report.Mutated)
	case m.Error:
		s.printf("  error: %s\n", report.Err)
	case m.Survived:
		if report.Mutant.Diff != "" {
			s.printf("File: %s\n%s\n", report.File, report.Mutant.Diff)
		}
	}
}

// DisplayMutationScore prints the final mutation score.
func (s *SimpleUI) DisplayMutationScore(ctx context.Context, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Mutation score: %.2f%%\n", score*100)
}

// DisplayReports prints saved reports as a table with a status summary.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReportTable(reports))

	return nil
}

func renderReportTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "ID", "Type", "Range", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	counts := statusCounts(reports)

	for _, report := range reports {
		table.Append([]string{
			string(report.File),
			strconv.Itoa(report.Mutant.ID),
			string(report.Mutant.Type),
			report.Mutant.Range.String(),
			report.Status.String(),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Mutants %d", len(reports)),
		"",
		"",
		"",
		fmt.Sprintf("killed %d / survived %d", counts[m.Killed]+counts[m.Timeout], counts[m.Survived]),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
