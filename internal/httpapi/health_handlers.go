package httpapi

import (
	"net/http"
	"time"

	"jobfinder-engine/internal/events"
)

type HealthHandler struct {
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	}
	if h.Hub != nil {
		out["subscribers"] = h.Hub.Subscribers()
	}
	writeJSON(w, out)
}
