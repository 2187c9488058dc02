package main

import (
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"pokemedquest/internal/art"
	"pokemedquest/internal/cli"
	"pokemedquest/internal/config"
	"pokemedquest/internal/database"
	"pokemedquest/internal/logger"
	"pokemedquest/internal/repository"
	"pokemedquest/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting PokeMed Quest", zap.String("database_type", cfg.DatabaseType))

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		zapLogger.Error("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		zapLogger.Error("Failed to run migrations", zap.Error(err))
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	avatarRepo := repository.NewAvatarRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, zapLogger)
	avatarService := service.NewAvatarService(avatarRepo, zapLogger)
	progressService := service.NewProgressService(progressRepo, avatarService, zapLogger)

	color := !cfg.NoColor && isatty.IsTerminal(os.Stdout.Fd())
	renderer := art.NewRenderer(cfg.ArtPath, color)

	shell := cli.NewShell(authService, avatarService, progressService, renderer, zapLogger, os.Stdin, os.Stdout)
	if err := shell.Run(); err != nil {
		zapLogger.Error("Shell stopped", zap.Error(err))
		log.Fatalf("Shell stopped: %v", err)
	}

	zapLogger.Info("PokeMed Quest stopped")
}
