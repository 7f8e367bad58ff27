package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inboxguard/fraud-filter/internal/core"
	"github.com/inboxguard/fraud-filter/internal/di"
	"github.com/inboxguard/fraud-filter/internal/ports"
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

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	server ports.APIServer,
	scorer core.Scorer,
	metricsRepo core.MetricsRepository,
) error {
	defer logger.Sync()

	// Start the API server
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start API server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the server
	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop API server", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := scorer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close scorer backend", zap.Error(err))
		}
	}
	if closer, ok := metricsRepo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close metrics store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
