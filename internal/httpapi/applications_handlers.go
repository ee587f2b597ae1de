package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"jobfinder-engine/internal/application"
)

type ApplicationsHandler struct {
	Apps *application.Service
}

func (h ApplicationsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var f application.Form
	if err := decodeJSON(w, r, &f); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	a, err := h.Apps.Submit(r.Context(), f)
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErrorDetails(w, r, http.StatusBadRequest, "invalid_application", "application has invalid fields", ve.Fields)
		return
	case errors.Is(err, application.ErrUnknownJob):
		WriteError(w, r, http.StatusNotFound, "unknown_job", err.Error())
		return
	case err != nil:
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}

func (h ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			WriteError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	apps, err := h.Apps.List(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"applications": apps, "count": len(apps)})
}
