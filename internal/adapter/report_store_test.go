package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func sampleReport(id int, status m.TestStatus) m.Report {
	return m.Report{
		File:   "f.js",
		Mutant: m.Mutant{ID: id, Type: m.MutantArithmetic, MutatedText: "a - b"},
		Status: status,
		Input:  -1,
	}
}

func TestShard_FileName(t *testing.T) {
	assert.Equal(t, "report.yaml", Shard{}.FileName())
	assert.Equal(t, "report.yaml", Shard{Index: 0, Total: 1}.FileName())
	assert.Equal(t, "report-1-of-3.yaml", Shard{Index: 1, Total: 3}.FileName())
}

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewYAMLReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))
	ctx := context.Background()

	reports := []m.Report{sampleReport(2, m.Survived), sampleReport(1, m.Killed)}
	require.NoError(t, store.SaveReports(ctx, dir, Shard{}, reports))

	loaded, err := store.LoadReports(ctx, dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].Mutant.ID)
	assert.Equal(t, m.Killed, loaded[0].Status)
	assert.Equal(t, m.Survived, loaded[1].Status)
}

func TestYAMLReportStore_LoadMissingDir(t *testing.T) {
	store := NewYAMLReportStore()

	loaded, err := store.LoadReports(context.Background(), m.Path(filepath.Join(t.TempDir(), "none")))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestYAMLReportStore_Merge(t *testing.T) {
	store := NewYAMLReportStore()
	dir := m.Path(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SaveReports(ctx, dir, Shard{Index: 0, Total: 2}, []m.Report{sampleReport(2, m.Killed)}))
	require.NoError(t, store.SaveReports(ctx, dir, Shard{Index: 1, Total: 2}, []m.Report{sampleReport(1, m.Timeout)}))

	require.NoError(t, store.MergeReports(ctx, dir))

	_, err := os.Stat(filepath.Join(string(dir), "report-0-of-2.yaml"))
	assert.True(t, os.IsNotExist(err))

	loaded, err := store.LoadReports(ctx, dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].Mutant.ID)
	assert.Equal(t, m.Timeout, loaded[0].Status)
}
