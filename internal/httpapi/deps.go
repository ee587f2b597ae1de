package httpapi

import (
	"sync/atomic"

	"jobfinder-engine/internal/application"
	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/directory"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/saved"
	"jobfinder-engine/internal/store"
	"jobfinder-engine/internal/theme"
)

type Deps struct {
	Directory    *directory.Directory
	Saved        *saved.Registry
	Theme        *theme.Registry
	Applications *application.Service

	Hub *events.Hub
	DB  *store.DB // optional; /db/checkpoint is only mounted when set

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
