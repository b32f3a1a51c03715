package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/trisarira/internal/config"
	"github.com/samdwyer/trisarira/internal/game"
	"github.com/samdwyer/trisarira/internal/logger"
	"github.com/samdwyer/trisarira/internal/save"
	"github.com/samdwyer/trisarira/internal/telemetry"
	"github.com/samdwyer/trisarira/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Setup(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("received shutdown signal")
		cancel()
	}()

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("failed to set up telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal screen: %w", err)
	}
	defer screen.Close()

	g, err := game.New(cfg, log, screen, store)
	if err != nil {
		return err
	}
	return g.Run(ctx)
}

// openStore picks the save backend: redis when configured, otherwise an
// in-memory store that lasts for the process.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (save.Store, error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, saves will not outlive this session")
		return save.NewMemoryStore(), nil
	}
	store := save.NewRedisStore(cfg.RedisAddr, log)
	if err := store.WaitForConnection(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
