package directory

import (
	"time"

	"jobfinder-engine/internal/domain"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is a snapshot of the directory. Jobs is the visible collection and
// is empty unless Status is ready.
type State struct {
	Status    Status       `json:"status"`
	Jobs      []domain.Job `json:"jobs"`
	Message   string       `json:"message,omitempty"`
	Query     string       `json:"query"`
	Total     int          `json:"total"`
	FetchedAt *time.Time   `json:"fetchedAt,omitempty"`
}

const (
	MsgFetchFailed = "Failed to fetch jobs"
	MsgParseFailed = "Failed to parse jobs"
)
