package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vbonduro/photowall/internal/config"
	"github.com/vbonduro/photowall/internal/imagecache/local"
	"github.com/vbonduro/photowall/internal/live"
	"github.com/vbonduro/photowall/internal/logging"
	"github.com/vbonduro/photowall/internal/photoapi"
	"github.com/vbonduro/photowall/internal/service"
	"github.com/vbonduro/photowall/internal/web"
	"github.com/vbonduro/photowall/internal/web/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.ConfigFile != "" {
		logger.Info("loaded config file", "path", cfg.ConfigFile)
	}

	cache, err := local.NewLocalCache(cfg.CacheDir)
	if err != nil {
		logger.Error("failed to initialize image cache", "error", err)
		return
	}

	client := photoapi.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	photoService := service.NewPhotoService(client, cache, logger)

	hub := live.NewHub(live.Config{
		Photos:     photoService,
		Categories: cfg.Categories,
		TimerStart: cfg.TimerStart,
		Logger:     logger,
	})

	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET not set; upload messages will not survive a restart")
	}
	server := web.NewServer(
		client,
		cache,
		hub,
		web.NewSessionStore(cfg.SessionSecret),
		templates.FS,
		web.Options{
			AdminPath:  cfg.AdminPath,
			Categories: cfg.Categories,
			TimerStart: cfg.TimerStart,
		},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("using photo api", "base_url", cfg.APIBaseURL, "categories", cfg.Categories)
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hub.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to close live sessions", "error", err)
	}
}
