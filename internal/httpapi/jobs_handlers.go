package httpapi

import (
	"context"
	"net/http"

	"jobfinder-engine/internal/directory"
	"jobfinder-engine/internal/events"
)

type JobsHandler struct {
	Dir *directory.Directory
	Hub *events.Hub
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Dir.State())
}

// Refresh blocks until the fetch settles and returns the resulting state.
// A failed fetch is still a 200: the failure is part of the state.
func (h JobsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	// The client timeout bounds the fetch; a closed browser tab should not
	// turn into an error state.
	st := h.Dir.Refresh(context.WithoutCancel(r.Context()))
	writeJSON(w, st)
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h JobsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	st, ok := h.Dir.SetSearchText(req.Query)
	if !ok {
		WriteError(w, r, http.StatusConflict, "not_ready", "jobs are "+string(st.Status))
		return
	}

	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeJobsFiltered, map[string]any{
		"query":   st.Query,
		"visible": len(st.Jobs),
		"total":   st.Total,
	})
	writeJSON(w, st)
}

// DirectoryEvents turns directory snapshots into hub events.
func DirectoryEvents(hub *events.Hub) func(directory.State) {
	return func(st directory.State) {
		switch st.Status {
		case directory.StatusLoading:
			hub.Emit("", events.TypeJobsLoading, nil)
		case directory.StatusReady:
			hub.Emit("", events.TypeJobsReady, map[string]any{
				"total":     st.Total,
				"fetchedAt": st.FetchedAt,
			})
		case directory.StatusError:
			hub.Emit("", events.TypeJobsError, map[string]any{"message": st.Message})
		}
	}
}
