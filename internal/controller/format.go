package controller

import (
	"strings"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

const snippetWidth = 40

// snippet flattens code to one line and shortens it to snippetWidth runes.
func snippet(code string) string {
	flat := strings.Join(strings.Fields(code), " ")

	runes := []rune(flat)
	if len(runes) <= snippetWidth {
		return flat
	}

	return string(runes[:snippetWidth-3]) + "..."
}

func statusCounts(reports []m.Report) map[m.TestStatus]int {
	counts := make(map[m.TestStatus]int)
	for _, report := range reports {
		counts[report.Status]++
	}

	return counts
}
