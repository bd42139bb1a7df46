// ABOUTME: Entry point for the atelier backend server
// ABOUTME: Serves the authentication and AI generation API

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/atelier-ai/atelier/internal/ai"
	"github.com/atelier-ai/atelier/internal/auth"
	"github.com/atelier-ai/atelier/internal/config"
	"github.com/atelier-ai/atelier/internal/server"
	"github.com/atelier-ai/atelier/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
        _       _ _
   __ _| |_ ___| (_) ___ _ __
  / _' | __/ _ \ | |/ _ \ '__|
 | (_| | ||  __/ | |  __/ |
  \__,_|\__\___|_|_|\___|_|
`

// getConfigPath returns the path to the config file.
// Priority: ATELIER_CONFIG env var > ./atelier.yaml
func getConfigPath() string {
	if envPath := os.Getenv("ATELIER_CONFIG"); envPath != "" {
		return envPath
	}
	return "atelier.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: atelier <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the API server")
		fmt.Println("  init     Write a default config file")
		fmt.Println("  health   Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		yellow.Print("    ! ")
		fmt.Println("Using the insecure default JWT secret (dev only)")
	}
	if cfg.AI.APIKey == "" {
		yellow.Print("    ! ")
		fmt.Println("No AI API key configured; generation is disabled")
	}
	fmt.Println()

	logger.Info("starting atelier",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	codec := auth.NewTokenCodec([]byte(cfg.Auth.JWTSecret))
	authSvc := auth.NewService(st, codec, cfg.Auth)

	aiSvc, err := ai.NewService(cfg.AI)
	if err != nil {
		return fmt.Errorf("creating AI service: %w", err)
	}

	srv := server.New(authSvc, aiSvc, codec, st)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// runInit writes a default config file next to the binary
func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	content := `server:
  http_addr: "127.0.0.1:8080"

database:
  path: "atelier.db"

auth:
  # Uncomment to override the insecure development defaults.
  # jwt_secret: "${ATELIER_JWT_SECRET}"
  # dev_password: "${ATELIER_DEV_PASSWORD}"
  token_ttl: "720h"

ai:
  api_key: "${GEMINI_API_KEY}"
  model: "gemini-2.0-flash"

logging:
  level: "info"
  format: "text"
`

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/api/healthz", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
