package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitstake/fitstake-go/internal/bootstrap"
	"github.com/fitstake/fitstake-go/internal/challenge"
	"github.com/fitstake/fitstake-go/internal/config"
	"github.com/fitstake/fitstake-go/internal/event"
	"github.com/fitstake/fitstake-go/internal/feeconfig"
	"github.com/fitstake/fitstake-go/internal/identity"
	"github.com/fitstake/fitstake-go/internal/logger"
	"github.com/fitstake/fitstake-go/internal/remote"
	"github.com/fitstake/fitstake-go/internal/server"
	"github.com/fitstake/fitstake-go/internal/sse"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load first so a .env file is applied before schema validation
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateEnv(); err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	initLogger(cfg)

	// Backend gateway and the singleton fee loader
	gateway := remote.NewClient(cfg.BackendBaseURL, cfg.HTTPTimeout, cfg.MaxRetries)
	fees := feeconfig.NewLoader(gateway)

	// Event bus and the SSE bridge to browser clients
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	hub.Start()
	subscriber := sse.NewSubscriber(hub, bus)
	subscriber.Subscribe()

	// Ambient identity for server-to-server calls
	provider := identity.NewStatic(cfg.SessionEmail)

	challengeService := challenge.NewService(gateway, fees, bus, provider, challenge.Options{
		FreshnessWindow: cfg.FreshnessWindow,
	})
	if cfg.AutoSyncEnabled {
		challengeService.StartAutoSync(cfg.AutoSyncInterval)
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, challengeService, fees, gateway, hub)

	// Serve until interrupted
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalf("Server failed: %v", err)
	case sig := <-quit:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:           srv,
		ChallengeService: challengeService,
		Subscriber:       subscriber,
		Hub:              hub,
	})
}
