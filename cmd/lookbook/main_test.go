package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/lookbook/internal/config"
	"github.com/vbonduro/lookbook/internal/insight"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ListenAddr:     "127.0.0.1:0",
		AssetPath:      t.TempDir(),
		ThumbSize:      64,
		SessionTTL:     time.Minute,
		SweepInterval:  time.Minute,
		AdminClicks:    3,
		AdminWindow:    time.Second,
		InsightBackend: "static",
		TestMode:       true,
	}
}

func runWithTimeout(t *testing.T, cfg *config.Config) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- run(cfg, slog.Default()) }()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
		return nil
	}
}

func TestRunReturnsWhenAssetDirectoryIsUnusable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	cfg := testConfig(t)
	cfg.AssetPath = filepath.Join(blocker, "assets")

	assert.Error(t, runWithTimeout(t, cfg))
}

func TestRunReturnsWhenListenFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.ListenAddr = "256.0.0.1:bad"

	assert.Error(t, runWithTimeout(t, cfg))
}

func TestNewSummarizerFallsBackToStatic(t *testing.T) {
	cfg := testConfig(t)
	cfg.TestMode = false
	cfg.InsightBackend = "claude"

	// No API key configured.
	assert.IsType(t, &insight.StaticSummarizer{}, newSummarizer(cfg, slog.Default()))
}
