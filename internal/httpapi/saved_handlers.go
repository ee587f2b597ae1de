package httpapi

import (
	"net/http"
	"strings"

	"jobfinder-engine/internal/directory"
	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/saved"
)

type SavedHandler struct {
	Saved *saved.Registry
	Dir   *directory.Directory
	Hub   *events.Hub
}

func (h SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs := h.Saved.List()
	writeJSON(w, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// Save accepts either {"id": "..."} naming a job in the directory, or a full
// job object.
func (h SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in domain.Job
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_id", "id is required")
		return
	}

	job := in
	if in.Title == "" && in.Company == "" && in.Salary == "" && in.Location == "" {
		j, ok := h.Dir.Job(in.ID)
		if !ok {
			WriteError(w, r, http.StatusNotFound, "unknown_job", "no job with id "+in.ID)
			return
		}
		job = j
	} else if in.Title == "" || in.Company == "" || in.Salary == "" || in.Location == "" {
		WriteError(w, r, http.StatusBadRequest, "incomplete_job", "title, company, salary and location are required")
		return
	}

	added := h.Saved.Save(job)
	if added {
		h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeJobSaved, map[string]any{"id": job.ID})
	}
	writeJSON(w, map[string]any{"saved": added, "job": job, "count": h.Saved.Len()})
}

// ByPath serves /saved/{id}.
func (h SavedHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/saved/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_id", "id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		out := map[string]any{"id": id, "saved": false}
		if j, ok := h.Saved.Get(id); ok {
			out["saved"] = true
			out["job"] = j
		}
		writeJSON(w, out)
	case http.MethodDelete:
		removed := h.Saved.Unsave(id)
		if removed {
			h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeJobUnsaved, map[string]any{"id": id})
		}
		writeJSON(w, map[string]any{"id": id, "removed": removed, "count": h.Saved.Len()})
	}
}
