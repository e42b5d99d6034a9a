package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kcaltrack/kcal-bot/internal/bot"
	"github.com/kcaltrack/kcal-bot/internal/bot/handlers"
	"github.com/kcaltrack/kcal-bot/internal/config"
	"github.com/kcaltrack/kcal-bot/internal/database"
	"github.com/kcaltrack/kcal-bot/internal/dayclock"
	"github.com/kcaltrack/kcal-bot/internal/logger"
	"github.com/kcaltrack/kcal-bot/internal/repository"
	"github.com/kcaltrack/kcal-bot/internal/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting kcal tracker bot...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Configuration loaded", "db_driver", cfg.DB.Driver, "timezone", cfg.Schedule.Location.String())

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	clock := dayclock.NewSystemClock(cfg.Schedule.Location, cfg.Schedule.QuietStartHour, cfg.Schedule.QuietEndHour)
	entryRepo := repository.NewEntryRepository(db)
	chatRepo := repository.NewChatRepository(db)
	ledgerService := services.NewLedgerService(entryRepo, clock)

	telegramBot, err := bot.NewBot(cfg.TelegramToken, handlers.Dependencies{
		Ledger: ledgerService,
		Chats:  chatRepo,
		Clock:  clock,
	})
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recapService := services.NewRecapService(
		chatRepo, ledgerService, telegramBot, clock,
		cfg.Schedule.SummaryHour, cfg.Schedule.Location,
	)
	if err := recapService.Start(ctx); err != nil {
		logger.Fatalf("Failed to start recap scheduler: %v", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
}
