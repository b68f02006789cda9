package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/todokeeper/internal/config"
	"github.com/iudanet/todokeeper/internal/logger"
	"github.com/iudanet/todokeeper/internal/server"
	"github.com/iudanet/todokeeper/internal/server/jwt"
	"github.com/iudanet/todokeeper/internal/server/service"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML config file (or CONFIG_PATH)")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := config.MustLoad(*configPath)
	log := logger.Setup(cfg.Env, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("starting todokeeper server",
		slog.String("version", Version),
		slog.String("env", cfg.Env))

	driver, dsn := cfg.DSN()
	store, err := server.OpenStore(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", slog.Any("error", err))
		}
	}()
	log.Info("storage ready", slog.String("driver", string(driver)))

	tokens, err := jwt.NewService(cfg.JWTConfig())
	if err != nil {
		return fmt.Errorf("failed to init token service: %w", err)
	}

	srv := server.New(cfg, server.Deps{
		Logger:  log,
		Tokens:  tokens,
		Auth:    service.NewAuthService(log, store, tokens, cfg.BcryptCost),
		Tasks:   service.NewTaskService(log, store),
		DB:      store,
		Version: Version,
	})

	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("Todokeeper Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
