package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/vytor/lutrisart/internal/api"
	"github.com/vytor/lutrisart/internal/assets"
	"github.com/vytor/lutrisart/internal/config"
	"github.com/vytor/lutrisart/internal/fetch"
	"github.com/vytor/lutrisart/internal/logger"
	"github.com/vytor/lutrisart/internal/repository/sqlite"
	"github.com/vytor/lutrisart/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Lutris Art Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("coverart_dir=%s", cfg.CoverArtDir)
	log.Debug("banner_dir=%s", cfg.BannerDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("fetch_timeout=%s", cfg.FetchTimeout)

	// The catalog is opened per command, so a missing pga.db only fails requests.
	if _, err := os.Stat(cfg.CatalogPath); err != nil {
		log.Warn("catalog not readable yet: %v", err)
	}

	fs := afero.NewOsFs()
	libraryService := services.NewLibraryService(
		sqlite.NewCatalogSource(cfg.CatalogPath),
		assets.NewResolver(fs, assets.Dirs{CoverArt: cfg.CoverArtDir, Banner: cfg.BannerDir}),
		fetch.New(fs, cfg.FetchTimeout),
	)

	srv := &api.Server{
		LibraryService: libraryService,
	}

	// Configure HTTP server. Downloads are bounded by FetchTimeout, so the
	// write timeout leaves room for it.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.FetchTimeout == 0 {
		httpServer.WriteTimeout = 0
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Lutris Art Server Stopped")
	log.Info("===========================================")
}
