package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobfinder-engine/internal/application"
	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/httpapi"
	"jobfinder-engine/internal/saved"
	"jobfinder-engine/internal/scheduler"
	"jobfinder-engine/internal/store"
	"jobfinder-engine/internal/theme"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine HTTP API (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	log := rt.log
	defer func() { _ = log.Sync() }()

	lk, err := config.LockDataDir(rt.dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = lk.Unlock() }()

	dbPath := filepath.Join(rt.dataDir, "jobfinder.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	hub := events.NewHub()

	dir := newDirectory(rt.cfg, log)
	dir.OnChange = httpapi.DirectoryEvents(hub)

	reg := saved.NewRegistry()
	apps := application.NewService(db, log, dir, application.LookupFunc(reg.Get))
	apps.OnSubmit = func(a domain.Application) {
		hub.Emit("", events.TypeApplicationSubmitted, map[string]any{"id": a.ID, "jobId": a.JobID})
	}

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(rt.cfg)

	mux := httpapi.NewMux(httpapi.Deps{
		Directory:    dir,
		Saved:        reg,
		Theme:        theme.NewRegistry(),
		Applications: apps,
		Hub:          hub,
		DB:           db,
		CfgVal:       &cfgVal,
		UserCfgPath:  rt.userCfgPath,
		LoadCfg: func() (config.Config, error) {
			cfg, _, err := loadConfig(rt.userCfgPath)
			return cfg, err
		},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := shutdownToken(os.Getenv, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	mux.HandleFunc("/shutdown", httpapi.ShutdownHandler{Token: token, Stop: stop}.Shutdown)

	// Bind to a predictable local port so the desktop shell can find us.
	addr := fmt.Sprintf("127.0.0.1:%d", rt.cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           httpapi.NewHandler(mux, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("[engine] listening",
		zap.String("addr", "http://"+addr),
		zap.String("db", dbPath),
		zap.String("source", rt.cfg.Source.URL),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("[engine] shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		scheduler.Every(gctx, 10*time.Minute, "checkpoint", log, db.Checkpoint)
		return nil
	})
	if rt.cfg.Startup.Refresh {
		g.Go(func() error {
			dir.Refresh(gctx)
			return nil
		})
	}
	return g.Wait()
}
