package domain

import (
	m "jsprobe.dev/pkg/jsprobe/internal/model"
	pkg "jsprobe.dev/pkg/jsprobe/pkg"
)

// Score summarizes a set of reports.
type Score struct {
	Killed   int
	Survived int
	Timeout  int
	Error    int
	Skipped  int
}

// Add counts one report.
func (s *Score) Add(report m.Report) {
	switch report.Status {
	case m.Killed:
		s.Killed++
	case m.Survived:
		s.Survived++
	case m.Timeout:
		s.Timeout++
	case m.Error:
		s.Error++
	case m.Skipped:
		s.Skipped++
	}
}

// Total returns the number of counted reports.
func (s Score) Total() int {
	return s.Killed + s.Survived + s.Timeout + s.Error + s.Skipped
}

// Ratio returns the share of detected mutants among the ones that ran to a
// verdict. Timeouts count as detected; errors and skipped mutants are left
// out. With nothing to judge the ratio is 1.
func (s Score) Ratio() float64 {
	detected := s.Killed + s.Timeout

	judged := detected + s.Survived
	if judged == 0 {
		return 1
	}

	return float64(detected) / float64(judged)
}

// ScoreReports counts reports.
func ScoreReports(reports []m.Report) Score {
	var s Score
	for _, r := range reports {
		s.Add(r)
	}

	return s
}

func mutationScoreFromReports(reports pkg.FileSpill[m.Report]) (Score, error) {
	var s Score

	err := reports.Range(func(_ uint64, report m.Report) error {
		s.Add(report)
		return nil
	})
	if err != nil {
		return Score{}, err
	}

	return s, nil
}
