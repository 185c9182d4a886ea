// Package bootstrap holds the application assembly helpers shared by the
// entry point: ordered graceful shutdown of the HTTP server, the sync
// controller and the SSE hub.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/fitstake/fitstake-go/internal/challenge"
	"github.com/fitstake/fitstake-go/internal/server"
	"github.com/fitstake/fitstake-go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server           *server.Server
	ChallengeService challenge.Service
	Subscriber       *sse.Subscriber
	Hub              *sse.Hub
}

// GracefulShutdown performs graceful shutdown of all application components
// in order:
//  1. HTTP server (stop accepting new requests)
//  2. Challenge service (stop auto-sync, drain background refreshes)
//  3. SSE bridge and hub (detach from the bus, close client streams)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	shutdownService(ctx, ServiceNameChallenge, components.ChallengeService)

	if components.Subscriber != nil {
		components.Subscriber.Unsubscribe()
	}
	if components.Hub != nil {
		components.Hub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
