package httpapi

import (
	"crypto/subtle"
	"net/http"
)

// ShutdownHandler stops the engine for the desktop shell that started it.
// Only local callers holding the token printed at startup may use it.
type ShutdownHandler struct {
	Token string
	Stop  func()
}

func (h ShutdownHandler) Shutdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if !isLocalRequest(r) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}

	got := r.Header.Get("X-Shutdown-Token")
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.Token)) != 1 {
		WriteError(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	// Respond first; Stop tears the server down.
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("shutting down\n"))
	go h.Stop()
}
