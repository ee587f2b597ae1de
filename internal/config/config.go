// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	App struct {
		Port int    `yaml:"port" json:"port"`
		Env  string `yaml:"env" json:"env"`
	} `yaml:"app" json:"app"`

	Source struct {
		URL            string  `yaml:"url" json:"url"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		MaxBodyBytes   int64   `yaml:"max_body_bytes" json:"max_body_bytes"`
		RatePerSec     float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
		UserAgent      string  `yaml:"user_agent" json:"user_agent"`
	} `yaml:"source" json:"source"`

	Normalize struct {
		SalarySentinel string `yaml:"salary_sentinel" json:"salary_sentinel"`
	} `yaml:"normalize" json:"normalize"`

	Startup struct {
		Refresh bool `yaml:"refresh" json:"refresh"`
	} `yaml:"startup" json:"startup"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.Env = EnvDevelopment
	cfg.Source.TimeoutSeconds = 20
	cfg.Source.MaxBodyBytes = 8 << 20
	cfg.Source.RatePerSec = 1
	cfg.Source.Burst = 2
	cfg.Source.UserAgent = "JobFinder/1.0 (+local)"
	cfg.Normalize.SalarySentinel = "Negotiable"
	cfg.Startup.Refresh = true
	return cfg
}

// Load reads path on top of Default, so keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
