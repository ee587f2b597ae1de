package directory

import (
	"strings"

	"jobfinder-engine/internal/domain"
)

// FilterByTitle keeps jobs whose title contains query, ignoring case.
// A blank query keeps everything. The input slice is never modified.
func FilterByTitle(jobs []domain.Job, query string) []domain.Job {
	if strings.TrimSpace(query) == "" {
		return append([]domain.Job(nil), jobs...)
	}
	needle := strings.ToLower(query)

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), needle) {
			out = append(out, j)
		}
	}
	return out
}
