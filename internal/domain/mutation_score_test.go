package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
	jsprobepkg "jsprobe.dev/pkg/jsprobe/pkg"
)

type errSpill[T any] struct {
	err error
}

func (e errSpill[T]) Len() uint64                                    { return 0 }
func (e errSpill[T]) Path() string                                   { return "" }
func (e errSpill[T]) Append(_ T) error                               { return nil }
func (e errSpill[T]) AppendBatch(_ []T) error                        { return nil }
func (e errSpill[T]) Range(_ func(index uint64, item T) error) error { return e.err }
func (e errSpill[T]) Close() error                                   { return nil }
func (e errSpill[T]) Remove() error                                  { return nil }

func reportsWith(statuses ...m.TestStatus) []m.Report {
	out := make([]m.Report, len(statuses))
	for i, s := range statuses {
		out[i] = m.Report{File: "a.js", Mutant: m.Mutant{ID: i + 1}, Status: s, Input: -1}
	}

	return out
}

func TestMutationScoreFromReports(t *testing.T) {
	spill, err := jsprobepkg.NewFileSpill[m.Report]()
	require.NoError(t, err)
	defer spill.Remove()

	require.NoError(t, spill.AppendBatch(reportsWith(m.Killed, m.Survived, m.Skipped, m.Error, m.Killed)))

	score, err := mutationScoreFromReports(spill)
	require.NoError(t, err)

	require.Equal(t, Score{Killed: 2, Survived: 1, Skipped: 1, Error: 1}, score)
	require.InDelta(t, 2.0/3.0, score.Ratio(), 1e-9)
	require.Equal(t, 5, score.Total())
}

func TestMutationScoreFromReports_EmptySpillIsOne(t *testing.T) {
	spill, err := jsprobepkg.NewFileSpill[m.Report]()
	require.NoError(t, err)
	defer spill.Remove()

	score, err := mutationScoreFromReports(spill)
	require.NoError(t, err)

	require.Equal(t, 1.0, score.Ratio())
}

func TestScore_OnlySkippedAndErrorIsOne(t *testing.T) {
	score := ScoreReports(reportsWith(m.Skipped, m.Error))

	require.Equal(t, 1.0, score.Ratio())
}

func TestScore_AllSurvivedIsZero(t *testing.T) {
	score := ScoreReports(reportsWith(m.Survived, m.Survived))

	require.Equal(t, 0.0, score.Ratio())
}

func TestScore_TimeoutsCountAsDetected(t *testing.T) {
	score := ScoreReports(reportsWith(m.Killed, m.Timeout, m.Survived, m.Survived, m.Error))

	require.Equal(t, 0.5, score.Ratio())
	require.Equal(t, 1, score.Timeout)
}

func TestMutationScoreFromReports_RangeErrorPropagates(t *testing.T) {
	wantErr := errors.New("range failed")

	_, err := mutationScoreFromReports(errSpill[m.Report]{err: wantErr})
	require.Error(t, err)
	require.ErrorIs(t, err, wantErr)
}
