package events

import (
	"encoding/json"
	"time"
)

// Event types pushed to the UI over SSE.
const (
	TypePing                 = "ping"
	TypeJobsLoading          = "jobs_loading"
	TypeJobsReady            = "jobs_ready"
	TypeJobsError            = "jobs_error"
	TypeJobsFiltered         = "jobs_filtered"
	TypeJobSaved             = "job_saved"
	TypeJobUnsaved           = "job_unsaved"
	TypeThemeChanged         = "theme_changed"
	TypeApplicationSubmitted = "application_submitted"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
