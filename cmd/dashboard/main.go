package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdrienBref/networkTester-front/internal/config"
	"github.com/AdrienBref/networkTester-front/internal/directory"
	"github.com/AdrienBref/networkTester-front/internal/editor"
	"github.com/AdrienBref/networkTester-front/internal/httpapi"
	"github.com/AdrienBref/networkTester-front/internal/livefeed"
	"github.com/AdrienBref/networkTester-front/internal/logging"
	"github.com/AdrienBref/networkTester-front/internal/snapshot"
	"github.com/AdrienBref/networkTester-front/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	client := directory.NewClient(cfg.DirectoryBaseURL, cfg.RequestTimeout, logger)
	devices := store.New()
	status := store.NewStatusBoard()

	loader := snapshot.New(client, devices, status, logger)
	if err := loader.Load(ctx); err != nil {
		// The dashboard stays up on its error banner; the operator
		// re-triggers the load through the refresh endpoint.
		logger.Warn("initial snapshot load failed", "err", err)
	}

	feed := livefeed.New(cfg.LiveFeedURL, cfg.LiveFeedTopic, cfg.LiveReconnectDelay, logger)
	go livefeed.Pump(feed.Subscribe(ctx), devices, logger)

	submitter := editor.NewSubmitter(client, devices, logger)
	api := httpapi.New(devices, status, loader, submitter, logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("dashboard starting", "addr", server.Addr, "directory", cfg.DirectoryBaseURL)
	if err := httpapi.RunServer(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("dashboard terminated with error", "err", err)
		os.Exit(1)
	}
	logger.Info("dashboard stopped")
}
