package httpapi

import (
	"net/http"

	"jobfinder-engine/internal/store"
)

type DBHandler struct {
	DB *store.DB
}

func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !isLocalRequest(r) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}
	if err := h.DB.Checkpoint(r.Context()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "checkpoint_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
