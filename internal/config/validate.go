package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.Env = strings.ToLower(strings.TrimSpace(out.App.Env))
	out.Source.URL = strings.TrimSpace(out.Source.URL)
	out.Source.UserAgent = strings.TrimSpace(out.Source.UserAgent)
	out.Normalize.SalarySentinel = strings.TrimSpace(out.Normalize.SalarySentinel)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	switch out.App.Env {
	case "", EnvDevelopment, EnvProduction:
	default:
		res.addErr("app.env must be %q or %q", EnvDevelopment, EnvProduction)
	}

	// source
	if out.Source.URL == "" {
		res.addErr("source.url is required")
	} else if u, err := url.Parse(out.Source.URL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("source.url must be an absolute http(s) URL")
	} else if u.Scheme == "http" && !isLocalHost(u.Hostname()) {
		res.addWarn("source.url uses plain http; job data will travel unencrypted.")
	}

	if out.Source.TimeoutSeconds <= 0 {
		res.addErr("source.timeout_seconds must be > 0")
	} else if out.Source.TimeoutSeconds > 120 {
		res.addWarn("source.timeout_seconds is very high (%d); a stuck refresh will look frozen.", out.Source.TimeoutSeconds)
	}
	if out.Source.MaxBodyBytes <= 0 {
		res.addErr("source.max_body_bytes must be > 0")
	}
	if out.Source.RatePerSec < 0 {
		res.addErr("source.rate_per_sec must be >= 0")
	} else if out.Source.RatePerSec == 0 {
		res.addWarn("source.rate_per_sec is 0; refreshes will not be rate limited.")
	}
	if out.Source.Burst < 0 {
		res.addErr("source.burst must be >= 0")
	}

	if out.Normalize.SalarySentinel == "" {
		res.addWarn("normalize.salary_sentinel is empty; \"Negotiable\" will be used.")
	}

	return out, res
}

func isLocalHost(h string) bool {
	return h == "localhost" || h == "127.0.0.1" || h == "::1"
}
