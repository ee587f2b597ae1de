package normalize

import (
	"strconv"
	"strings"
)

// CleanText collapses whitespace runs and strips non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Slug lower-cases s and replaces every whitespace run with a single hyphen.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// JobID derives the stable identifier of the record at index in its batch.
func JobID(company, title string, index int) string {
	return Slug(company + "-" + title + "-" + strconv.Itoa(index))
}
