package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-voice-agent/internal/calls"
	"dental-voice-agent/internal/config"
	"dental-voice-agent/internal/httpapi"
	"dental-voice-agent/internal/vapi"
	"dental-voice-agent/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	chain, err := calls.LoadChain(cfg.Store.SquadConfig)
	if err != nil {
		log.Error("squad config load failed", "err", err)
		os.Exit(1)
	}

	store := calls.NewStore(cfg.Store.RecordsPath, log)
	store.Load()

	client := vapi.NewClient(cfg.Vapi.BaseURL, cfg.Vapi.APIKey, log)

	h := httpapi.Handlers{
		Initiator:  calls.NewInitiator(client, store, chain, cfg.Vapi.PhoneNumberID, log),
		Reconciler: calls.NewReconciler(client, store, log),
		Store:      store,
		Profile:    calls.NewCurrentProfile(calls.DefaultProfile()),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "web/static")

	registerRoutes(r, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Reconciliation blocks on the remote fetch; the write timeout must
		// outlast the client timeout plus its retry budget.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.App.Env, "records_path", cfg.Store.RecordsPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	if err := store.Save(); err != nil {
		log.Error("final records save failed", "err", err)
	}
}
