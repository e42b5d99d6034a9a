package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kcaltrack/kcal-bot/internal/logger"
)

type Config struct {
	TelegramToken string
	DB            DBConfig
	Schedule      ScheduleConfig
	Logger        LoggerConfig
}

type DBConfig struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
}

// ScheduleConfig holds the fixed timezone and the hour thresholds that drive
// the quiet window and the nightly recap.
type ScheduleConfig struct {
	Location       *time.Location
	QuietStartHour int
	QuietEndHour   int
	SummaryHour    int
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseHour(key string, defaultValue int) (int, error) {
	raw := getEnvOrDefault(key, strconv.Itoa(defaultValue))
	hour, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%s must be in [0,23], got %d", key, hour)
	}
	return hour, nil
}

func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	tzName := getEnvOrDefault("TIMEZONE", "Asia/Singapore")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}

	quietStart, err := parseHour("QUIET_START_HOUR", 22)
	if err != nil {
		return nil, err
	}
	quietEnd, err := parseHour("QUIET_END_HOUR", 0)
	if err != nil {
		return nil, err
	}
	summaryHour, err := parseHour("SUMMARY_HOUR", 22)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getEnvOrDefault("DB_DRIVER", "sqlite"))
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER must be \"sqlite\" or \"postgres\", got %q", driver)
	}

	return &Config{
		TelegramToken: token,
		DB: DBConfig{
			Driver:     driver,
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "kcal.db"),
			Host:       getEnvOrDefault("DB_HOST", "localhost"),
			Port:       getEnvOrDefault("DB_PORT", "5432"),
			User:       getEnvOrDefault("DB_USER", "postgres"),
			Password:   getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:     getEnvOrDefault("DB_NAME", "kcal_tracker"),
		},
		Schedule: ScheduleConfig{
			Location:       loc,
			QuietStartHour: quietStart,
			QuietEndHour:   quietEnd,
			SummaryHour:    summaryHour,
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
