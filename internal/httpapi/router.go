package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// NewMux returns the raw mux so the caller can still attach /shutdown.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{Hub: d.Hub}.Health,
	}))

	// Jobs
	jh := JobsHandler{Dir: d.Directory, Hub: d.Hub}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Refresh,
	}))
	mux.HandleFunc("/jobs/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: jh.Search,
	}))

	// Saved
	sh := SavedHandler{Saved: d.Saved, Dir: d.Directory, Hub: d.Hub}
	mux.HandleFunc("/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  sh.List,
		http.MethodPost: sh.Save,
	}))
	mux.HandleFunc("/saved/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    sh.ByPath, // expects /saved/{id}
		http.MethodDelete: sh.ByPath,
	}))

	// Theme
	th := ThemeHandler{Theme: d.Theme, Hub: d.Hub}
	mux.HandleFunc("/theme", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: th.Get,
		http.MethodPut: th.Put,
	}))
	mux.HandleFunc("/theme/toggle", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: th.Toggle,
	}))

	// Applications
	ah := ApplicationsHandler{Apps: d.Applications}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ah.List,
		http.MethodPost: ah.Submit,
	}))

	// Config
	if d.CfgVal != nil {
		ch := ConfigHandler{
			CfgVal:      d.CfgVal,
			UserCfgPath: d.UserCfgPath,
			LoadCfg:     d.LoadCfg,
		}
		mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Get,
			http.MethodPut: ch.Put,
		}))
		mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Path,
		}))
		mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Validate,
		}))
	}

	if d.DB != nil {
		mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
			http.MethodPost: DBHandler{DB: d.DB}.Checkpoint,
		}))
	}

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// NewHandler wraps h in the standard middleware chain.
func NewHandler(h http.Handler, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return Chain(h, RequestID, Recover(log), AccessLog(log), Cors)
}
