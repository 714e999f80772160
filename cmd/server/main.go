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

	"github.com/dgallion1/inkpost/internal/api"
	"github.com/dgallion1/inkpost/internal/cache"
	"github.com/dgallion1/inkpost/internal/config"
	"github.com/dgallion1/inkpost/internal/markdown"
	"github.com/dgallion1/inkpost/internal/metrics"
	"github.com/dgallion1/inkpost/internal/templates"
	"github.com/dgallion1/inkpost/internal/view"
	"github.com/dgallion1/inkpost/internal/watcher"
)

func main() {
	dotenvErr := config.LoadDotenv()

	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if dotenvErr != nil {
		log.Warn("failed to load .env files", "error", dotenvErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	menus, err := templates.LoadMenus(cfg.ConfigTOML)
	if err != nil {
		log.Warn("menu config ignored", "path", cfg.ConfigTOML, "error", err)
	}
	site := templates.Site{
		Title:       cfg.Site.Title,
		URL:         cfg.Site.URL,
		RSSCount:    cfg.Site.RSSCount,
		RSSLength:   cfg.Site.RSSLength,
		Priority:    cfg.Site.Priority,
		Keywords:    cfg.Site.Keywords,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Author,
		Menus:       menus,
		Year:        time.Now().Year(),
	}
	tmpl, err := templates.New(cfg.TemplateDir, site)
	if err != nil {
		log.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	posts := cache.New(
		cache.DirLoader{Dir: cfg.ContentDir, Workers: cfg.ContentWorkers},
		cache.WithLogger(log.With("component", "cache")),
		cache.WithRecorder(m),
	)
	views := view.NewService(posts, markdown.New(log.With("component", "markdown")), tmpl, view.Config{
		IndexPageSize: cfg.IndexPageSize,
		ListPageSize:  cfg.ListPageSize,
		ReadSpeed:     cfg.ReadSpeed,
	}, log)

	if cfg.WatchContent {
		w := watcher.New(cfg.ContentDir, cfg.WatchDebounce, posts.Refresh, log.With("component", "watcher"))
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Error("content watcher stopped", "error", err)
			}
		}()
	}

	srv := api.NewServer(views, posts, tmpl, m, log, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	log.Info("starting inkpost", "addr", cfg.Addr(), "content_dir", cfg.ContentDir)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
