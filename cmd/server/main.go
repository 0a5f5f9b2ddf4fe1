package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"messageboard/backend/internal/config"
	"messageboard/backend/internal/database"
	"messageboard/backend/internal/handler"
	"messageboard/backend/internal/hub"
	"messageboard/backend/internal/logger"
	"messageboard/backend/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// @title           Message Board API
// @version         1.0
// @description     Post messages under a handle and read a random sample of them.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "messageboard",
		Short:        "A minimal web message board",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding the .env file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "init-db",
			Short: "Create the messages table if it does not exist and exit",
			RunE:  runInitDB,
		},
	)
	return root
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *database.MessageStore
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	store := database.NewMessageStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Info("messages table ready")

	return &app{cfg: cfg, log: log, store: store}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer a.close()

	gin.SetMode(a.cfg.GinMode)

	feed := hub.NewHub()
	router, err := server.NewRouter(handler.NewMessageHandler(a.store, feed, a.log), a.log)
	if err != nil {
		return err
	}

	a.log.Info("swagger UI available", zap.String("path", "/swagger/index.html"))
	return server.Run(ctx, a.cfg.ServerAddress, router, a.log, feed.Close)
}

func runInitDB(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(cmd.Context())
	if err != nil {
		return fmt.Errorf("init-db: %w", err)
	}
	defer a.close()

	total, err := a.store.Count(cmd.Context())
	if err != nil {
		return err
	}
	a.log.Info("database initialized", zap.String("url", a.cfg.DatabaseURL), zap.Int64("messages", total))
	return nil
}
