package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holidayapi/internal/auth"
	"holidayapi/internal/config"
	"holidayapi/internal/holiday"
	apphttp "holidayapi/internal/http"
	"holidayapi/internal/httpx"
	"holidayapi/internal/ingest"
	"holidayapi/internal/platform/github"
)

const userAgent = "holidayapi-fetcher/1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("creating data dir %s: %v", cfg.DataDir, err)
	}

	store := holiday.NewStore()
	ghClient := github.NewClient(userAgent, cfg.Token, cfg.GitHubRPS)
	syncService := ingest.NewService(ghClient, store, ingest.Config{
		DataDir: cfg.DataDir,
		Repo: github.Repo{
			Owner:  cfg.RepoOwner,
			Name:   cfg.RepoName,
			Path:   cfg.RepoPath,
			Branch: cfg.RepoBranch,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial refresh; on sync failure the service still starts from
	// whatever yearly files are already on disk.
	if _, err := syncService.Refresh(ctx, false); err != nil {
		log.Printf("initial refresh: %v (serving local data, if any)", err)
	}
	if !store.Ready() {
		log.Printf("no calendar data loaded yet; queries will return 404 until a sync succeeds")
	}
	go syncService.RunPeriodic(ctx, cfg.RefreshInterval)

	gate := auth.NewTokenGate(cfg.AdminTokenHash)
	if !gate.Enabled() {
		log.Printf("ADMIN_TOKEN_HASH not set; forced refresh is unprotected")
	}

	holidayHandler := apphttp.NewHolidayHandler(store)
	refreshHandler := apphttp.NewRefreshHandler(syncService, gate)
	healthHandler := apphttp.NewHealthHandler(store)

	router := http.NewServeMux()
	router.HandleFunc("/healthz", healthHandler.Healthz)
	router.HandleFunc("/readyz", healthHandler.Readyz)
	router.HandleFunc("/query", holidayHandler.Query)
	router.HandleFunc("/api/query", holidayHandler.QueryBody)
	router.HandleFunc("/api/refresh", refreshHandler.Refresh)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	var handler http.Handler = router
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s (data dir %s, refresh every %s)", cfg.Addr, cfg.DataDir, cfg.RefreshInterval)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
