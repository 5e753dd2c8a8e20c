package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

const (
	reportFileName    = "report.yaml"
	shardReportFormat = "report-%d-of-%d.yaml"
	shardReportGlob   = "report-*-of-*.yaml"
)

// Shard identifies one slice of a sharded mutation run. Total 0 or 1 means
// the run is not sharded.
type Shard struct {
	Index int
	Total int
}

func (s Shard) sharded() bool {
	return s.Total > 1
}

// FileName returns the report file name for the shard.
func (s Shard) FileName() string {
	if !s.sharded() {
		return reportFileName
	}

	return fmt.Sprintf(shardReportFormat, s.Index, s.Total)
}

// ReportStore persists mutation testing reports.
type ReportStore interface {
	SaveReports(ctx context.Context, dir m.Path, shard Shard, reports []m.Report) error
	LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error)
	MergeReports(ctx context.Context, dir m.Path) error
}

type reportDocument struct {
	Reports []m.Report `yaml:"reports"`
}

// YAMLReportStore stores reports as YAML documents inside a directory.
type YAMLReportStore struct{}

// NewYAMLReportStore creates a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReports writes reports to report.yaml, or to report-<i>-of-<n>.yaml
// for a sharded run.
func (s *YAMLReportStore) SaveReports(ctx context.Context, dir m.Path, shard Shard, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		return fmt.Errorf("failed to create reports dir: %w", err)
	}

	return writeReports(filepath.Join(string(dir), shard.FileName()), reports)
}

// LoadReports reads report.yaml and every shard report in dir, ordered by
// mutant id.
func (s *YAMLReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths, err := reportPaths(dir)
	if err != nil {
		return nil, err
	}

	var all []m.Report

	for _, path := range paths {
		reports, err := readReports(path)
		if err != nil {
			return nil, err
		}

		all = append(all, reports...)
	}

	sortReports(all)

	return all, nil
}

// MergeReports folds every shard report into report.yaml and removes the
// shard files.
func (s *YAMLReportStore) MergeReports(ctx context.Context, dir m.Path) error {
	reports, err := s.LoadReports(ctx, dir)
	if err != nil {
		return err
	}

	shards, err := filepath.Glob(filepath.Join(string(dir), shardReportGlob))
	if err != nil {
		return err
	}

	if err := writeReports(filepath.Join(string(dir), reportFileName), reports); err != nil {
		return err
	}

	for _, path := range shards {
		if err := os.Remove(path); err != nil {
			slog.Error("Failed to remove shard report", "path", path, "error", err)
		}
	}

	return nil
}

func reportPaths(dir m.Path) ([]string, error) {
	var paths []string

	merged := filepath.Join(string(dir), reportFileName)
	if _, err := os.Stat(merged); err == nil {
		paths = append(paths, merged)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	shards, err := filepath.Glob(filepath.Join(string(dir), shardReportGlob))
	if err != nil {
		return nil, err
	}

	sort.Strings(shards)

	return append(paths, shards...), nil
}

func writeReports(path string, reports []m.Report) error {
	data, err := yaml.Marshal(reportDocument{Reports: reports})
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write reports %s: %w", path, err)
	}

	return nil
}

func readReports(path string) ([]m.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reports %s: %w", path, err)
	}

	var doc reportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode reports %s: %w", path, err)
	}

	return doc.Reports, nil
}

func sortReports(reports []m.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].File != reports[j].File {
			return reports[i].File < reports[j].File
		}

		return reports[i].Mutant.ID < reports[j].Mutant.ID
	})
}
