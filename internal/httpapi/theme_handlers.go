package httpapi

import (
	"errors"
	"net/http"

	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/theme"
)

type ThemeHandler struct {
	Theme *theme.Registry
	Hub   *events.Hub
}

type themeBody struct {
	Mode string `json:"mode"`
}

func (h ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, themeBody{Mode: h.Theme.Current().String()})
}

func (h ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.changed(w, r, h.Theme.Toggle())
}

func (h ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var in themeBody
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	m, err := theme.ParseMode(in.Mode)
	if err == nil {
		err = h.Theme.Set(m)
	}
	if errors.Is(err, theme.ErrUnknownMode) {
		WriteError(w, r, http.StatusBadRequest, "unknown_mode", err.Error())
		return
	}
	h.changed(w, r, m)
}

func (h ThemeHandler) changed(w http.ResponseWriter, r *http.Request, m theme.Mode) {
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeThemeChanged, themeBody{Mode: m.String()})
	writeJSON(w, themeBody{Mode: m.String()})
}
