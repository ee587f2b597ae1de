package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validConfig() Config {
	cfg := Default()
	cfg.Source.URL = "https://jobs.example.com/api/jobs"
	return cfg
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  url: https://x.test/jobs\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/jobs", cfg.Source.URL)
	assert.Equal(t, 20, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "Negotiable", cfg.Normalize.SalarySentinel)
	assert.True(t, cfg.Startup.Refresh)
}

func TestDefault_HasNoDataDirKey(t *testing.T) {
	b, err := yaml.Marshal(Default())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "data_dir")
}

func TestNormalizeAndValidate(t *testing.T) {
	_, res := NormalizeAndValidate(validConfig())
	assert.True(t, res.OK(), res.Errors)

	cfg := validConfig()
	cfg.App.Port = 0
	cfg.Source.URL = "ftp://nope"
	cfg.Source.TimeoutSeconds = 0
	cfg.App.Env = "staging"
	_, res = NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Len(t, res.Errors, 4)
}

func TestNormalizeAndValidate_Warnings(t *testing.T) {
	cfg := validConfig()
	cfg.Source.URL = " http://jobs.example.com/api "
	cfg.Source.RatePerSec = 0

	out, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.Equal(t, "http://jobs.example.com/api", out.Source.URL)
	assert.Len(t, res.Warnings, 2)

	cfg.Source.URL = "http://localhost:9000/jobs"
	_, res = NormalizeAndValidate(cfg)
	assert.Len(t, res.Warnings, 1)
}

func TestOverlayEnv(t *testing.T) {
	env := map[string]string{
		"JOBFINDER_SOURCE_URL": "https://env.test/jobs",
		"JOBFINDER_PORT":       "9000",
		"JOBFINDER_ENV":        " ",
	}
	cfg := validConfig()
	OverlayEnv(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, "https://env.test/jobs", cfg.Source.URL)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, EnvDevelopment, cfg.App.Env)
}

func TestSaveAtomic_WritesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := validConfig()
	require.NoError(t, SaveAtomic(path, cfg))

	cfg.App.Port = 40000
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40000, got.App.Port)
	assert.FileExists(t, path+".bak")

	bad := cfg
	bad.Source.URL = ""
	assert.Error(t, SaveAtomic(path, bad))
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()

	p, err := EnsureUserConfig(dir, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(p, []byte("app:\n  port: 1234\n"), 0o644))
	p2, err := EnsureUserConfig(dir, "unused")
	require.NoError(t, err)
	assert.Equal(t, p, p2)
	cfg, _ = Load(p2)
	assert.Equal(t, 1234, cfg.App.Port)
}

func TestLockDataDir(t *testing.T) {
	dir := t.TempDir()
	lk, err := LockDataDir(dir)
	require.NoError(t, err)
	defer lk.Unlock()

	_, err = LockDataDir(dir)
	assert.Error(t, err)
}
