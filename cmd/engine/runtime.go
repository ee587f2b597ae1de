package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/directory"
	"jobfinder-engine/internal/logging"
	"jobfinder-engine/internal/normalize"
	"jobfinder-engine/internal/source"
)

type engineRuntime struct {
	dataDir     string
	userCfgPath string
	cfg         config.Config
	log         *zap.Logger
}

// bootstrap resolves the data dir, loads config and builds the logger.
func bootstrap() (*engineRuntime, error) {
	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Engine data dir: use env if provided (the desktop shell passes one), else local folder.
	dataDir := os.Getenv("JOBFINDER_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return nil, fmt.Errorf("config bootstrap failed: %w", err)
	}

	cfg, vr, err := loadConfig(userCfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}

	log := logging.Must(cfg.App.Env)
	for _, w := range vr.Warnings {
		log.Warn("[config] " + w)
	}
	if !vr.OK() {
		return nil, errors.New("invalid config " + userCfgPath + ":\n- " + strings.Join(vr.Errors, "\n- "))
	}

	return &engineRuntime{dataDir: dataDir, userCfgPath: userCfgPath, cfg: cfg, log: log}, nil
}

func loadConfig(path string) (config.Config, config.Validation, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, config.Validation{}, err
	}
	config.OverlayEnv(&cfg, os.Getenv)
	cfg, vr := config.NormalizeAndValidate(cfg)
	return cfg, vr, nil
}

func newDirectory(cfg config.Config, log *zap.Logger) *directory.Directory {
	limiter := source.NewHostLimiter(cfg.Source.RatePerSec, cfg.Source.Burst)
	src := source.New(source.Config{
		URL:          cfg.Source.URL,
		Timeout:      time.Duration(cfg.Source.TimeoutSeconds) * time.Second,
		MaxBodyBytes: cfg.Source.MaxBodyBytes,
		UserAgent:    cfg.Source.UserAgent,
	}, limiter, log)
	norm := normalize.New(normalize.Options{SalarySentinel: cfg.Normalize.SalarySentinel})
	return directory.New(src, norm, log)
}

// shutdownToken returns JOBFINDER_SHUTDOWN_TOKEN or a fresh random token.
// A generated token is written to out for the desktop shell; it never goes
// to the log.
func shutdownToken(getenv func(string) string, out io.Writer) (string, error) {
	if token := strings.TrimSpace(getenv("JOBFINDER_SHUTDOWN_TOKEN")); token != "" {
		return token, nil
	}
	token, err := randomToken(16)
	if err != nil {
		return "", err
	}
	_, err = fmt.Fprintf(out, "SHUTDOWN_TOKEN=%s\n", token)
	return token, err
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
