package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikey/spamcheck/internal/adapters/session"
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/di"
	"github.com/mikey/spamcheck/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

type healthProber interface {
	WaitHealthy(ctx context.Context, attempts int, delay time.Duration) error
}

// run is the main application function that gets all dependencies injected
func run(
	cfg *config.Config,
	logger *zap.Logger,
	frontend ports.Frontend,
	classifier core.Classifier,
	sessions *session.MemoryStore,
) error {
	defer logger.Sync()

	// An unreachable API is not fatal, checks just come back without a verdict
	if prober, ok := classifier.(healthProber); ok {
		apiCfg, err := cfg.GetAPI()
		if err != nil {
			return err
		}
		if err := prober.WaitHealthy(context.Background(), apiCfg.HealthAttempts, apiCfg.HealthDelay); err != nil {
			logger.Warn("Classification API is not healthy, starting anyway", zap.Error(err))
		}
	}

	// Start the front-end
	if err := frontend.Start(); err != nil {
		logger.Error("Failed to start front-end", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the front-end
	if err := frontend.Stop(); err != nil {
		logger.Error("Failed to stop front-end", zap.Error(err))
	}

	// Stop the session cleanup
	sessions.Stop()

	logger.Info("Shutdown complete")
	return nil
}
