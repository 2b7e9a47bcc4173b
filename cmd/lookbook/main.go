package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vbonduro/lookbook/internal/admin"
	"github.com/vbonduro/lookbook/internal/assets"
	"github.com/vbonduro/lookbook/internal/assets/local"
	"github.com/vbonduro/lookbook/internal/catalog"
	"github.com/vbonduro/lookbook/internal/config"
	"github.com/vbonduro/lookbook/internal/db"
	"github.com/vbonduro/lookbook/internal/gallery"
	"github.com/vbonduro/lookbook/internal/insight"
	claudeinsight "github.com/vbonduro/lookbook/internal/insight/claude"
	"github.com/vbonduro/lookbook/internal/live"
	"github.com/vbonduro/lookbook/internal/logging"
	"github.com/vbonduro/lookbook/internal/service"
	"github.com/vbonduro/lookbook/internal/store"
	"github.com/vbonduro/lookbook/internal/web"
	"github.com/vbonduro/lookbook/internal/web/templates"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if err := run(cfg, logger); err != nil {
		logger.Error("lookbook stopped", "error", err)
		cleanup()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "images", cat.Len(), "path", cfg.CatalogPath)

	assetStore, err := local.NewLocalAssetStore(cfg.AssetPath)
	if err != nil {
		return err
	}
	thumbs, err := assets.NewThumbnailer(assetStore, cfg.ThumbSize, 0)
	if err != nil {
		return err
	}

	sessionStore := store.NewSessionStore(database)
	registry := gallery.NewRegistry(sessionStore, cfg.SessionTTL, logger)
	// The sweeper only stops on cancellation, so every return path cancels
	// before waiting for it.
	var wg sync.WaitGroup
	defer func() {
		stop()
		wg.Wait()
	}()
	wg.Go(func() { registry.Run(ctx, cfg.SweepInterval) })

	hub := live.NewHub(logger)
	go hub.Run(ctx)

	gate := admin.NewGate(cfg.AdminClicks, cfg.AdminWindow, admin.LogNotifier{Logger: logger})
	go pruneGate(ctx, gate, cfg.AdminWindow)

	svc := service.NewGalleryService(cat, registry, sessionStore, hub, newSummarizer(cfg, logger), logger)
	server := web.NewServer(svc, templates.FS, assetStore, thumbs, hub, gate, logger)
	httpServer := server.HTTPServer(cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	// Requests finished during shutdown may have changed sessions after the
	// sweeper's final flush.
	registry.Flush(shutdownCtx)
	return nil
}

// openDatabase opens the configured database. Test mode uses a throwaway
// in-memory database so end-to-end runs start from a clean slate.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.TestMode {
		logger.Warn("test mode enabled, using in-memory database")
		return db.OpenForTesting()
	}
	return db.Open(cfg.DBPath)
}

func newSummarizer(cfg *config.Config, logger *slog.Logger) insight.Summarizer {
	if cfg.TestMode {
		return insight.NewStaticSummarizer()
	}
	switch cfg.InsightBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when INSIGHT_BACKEND=claude, using static insights")
			return insight.NewStaticSummarizer()
		}
		logger.Info("using Claude insight backend", "model", cfg.ClaudeModel)
		return claudeinsight.NewClaudeSummarizer(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.ClaudeBaseURL)
	default:
		logger.Info("using static insight backend")
		return insight.NewStaticSummarizer()
	}
}

func pruneGate(ctx context.Context, gate *admin.Gate, window time.Duration) {
	ticker := time.NewTicker(window * 10)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gate.Prune()
		}
	}
}
