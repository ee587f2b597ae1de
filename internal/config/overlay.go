// config/overlay.go
package config

import (
	"strconv"
	"strings"
)

// OverlayEnv applies JOBFINDER_* variables on top of cfg. Unset or blank
// variables leave the file value alone.
func OverlayEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv("JOBFINDER_SOURCE_URL")); v != "" {
		cfg.Source.URL = v
	}
	if v := strings.TrimSpace(getenv("JOBFINDER_ENV")); v != "" {
		cfg.App.Env = v
	}
	if v := strings.TrimSpace(getenv("JOBFINDER_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := strings.TrimSpace(getenv("JOBFINDER_SALARY_SENTINEL")); v != "" {
		cfg.Normalize.SalarySentinel = v
	}
}
