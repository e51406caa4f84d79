package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifedesk/core/internal/adapters/repository"
	"github.com/lifedesk/core/internal/infrastructure/config"
	"github.com/lifedesk/core/internal/infrastructure/database"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the LifeDesk API server",
		Long:  "Start the LifeDesk API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewInitDBCommand creates the initdb command
func NewInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Bootstrap all collection store schemas",
		Long:  "Create every collection store file and its schema up front instead of lazily on first access",
		Run: func(cmd *cobra.Command, args []string) {
			runInitDB()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print LifeDesk version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s v%s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	stores, err := database.OpenAll(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to open collection stores", "error", err)
	}
	defer stores.Close()

	// Schemas are also created lazily on first access; doing it here keeps
	// the first request from paying that cost.
	if err := ensureSchemas(stores); err != nil {
		appLogger.Fatal("Failed to bootstrap store schemas", "error", err)
	}

	srv, err := server.New(cfg, stores, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting LifeDesk API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "reason", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}

func runInitDB() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	stores, err := database.OpenAll(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open collection stores: %v", err)
	}
	defer stores.Close()

	if err := ensureSchemas(stores); err != nil {
		log.Fatalf("Failed to bootstrap store schemas: %v", err)
	}

	fmt.Printf("Initialized stores under %s\n", cfg.Storage.DataDir)
}

type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

func ensureSchemas(stores *database.Stores) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ensurers := map[string]schemaEnsurer{
		"todos":     repository.NewTodoRepository(stores.Todos),
		"reminders": repository.NewReminderRepository(stores.Reminders),
		"bookmarks": repository.NewBookmarkRepository(stores.Bookmarks),
		"status":    repository.NewStatusReportRepository(stores.Status),
		"ledger":    repository.NewLedgerRepository(stores.Ledger),
	}

	for name, ensurer := range ensurers {
		if err := ensurer.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure %s schema: %w", name, err)
		}
	}
	return nil
}
