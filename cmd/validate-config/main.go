package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kcaltrack/kcal-bot/internal/config"
)

func main() {
	fmt.Println("🔍 Validating configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  no .env file found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Resolved settings:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "sqlite" {
		fmt.Printf("  - SQLite Path: %s\n", cfg.DB.SQLitePath)
	} else {
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - Timezone: %s\n", cfg.Schedule.Location.String())
	fmt.Printf("  - Quiet Window: %02d:00 to %02d:00\n", cfg.Schedule.QuietStartHour, cfg.Schedule.QuietEndHour)
	fmt.Printf("  - Summary Hour: %02d:00\n", cfg.Schedule.SummaryHour)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
