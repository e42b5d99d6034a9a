package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/kcaltrack/kcal-bot/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is a single food-intake record. Rows are immutable after insert
// except for deletion; timestamps are stored normalized to UTC so the
// calendar-day grouping can always be re-derived against the fixed timezone.
type Entry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"index"`
	ChatID    int64     `gorm:"index:idx_chat_ts"`
	Timestamp time.Time `gorm:"index:idx_chat_ts"`
	Food      string
	Kcal      int
}

// Chat marks a chat id as known to the bot. Presence is the only attribute.
type Chat struct {
	ID int64 `gorm:"primaryKey"`
}

// NewDB opens the configured backing store.
func NewDB(cfg config.DBConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgresDB(cfg)
	default:
		return NewSQLiteDB(cfg.SQLitePath)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return migrate(db)
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return migrate(db)
}

func migrate(db *gorm.DB) (*gorm.DB, error) {
	if err := db.AutoMigrate(&Entry{}, &Chat{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
