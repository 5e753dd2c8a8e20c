package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
	"jsprobe.dev/pkg/jsprobe/internal/syntax"
)

const diffContextLines = 3

// MutantDiff returns a unified diff between the beautified original program
// and the mutant. Both sides come out of the same printer, so the diff shows
// only the alteration.
func MutantDiff(mutant m.Mutant) (string, error) {
	program, err := syntax.Parse(mutant.OriginalSource)
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(syntax.Generate(program)),
		B:        difflib.SplitLines(mutant.MutatedSource),
		FromFile: "original",
		ToFile:   fmt.Sprintf("mutant #%d (%s)", mutant.ID, mutant.Type),
		Context:  diffContextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff mutant %d: %w", mutant.ID, err)
	}

	return text, nil
}
