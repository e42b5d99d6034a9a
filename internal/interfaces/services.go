package interfaces

import (
	"context"

	"github.com/kcaltrack/kcal-bot/internal/database"
)

// LedgerServiceInterface defines the contract for daily-entry operations
type LedgerServiceInterface interface {
	AddEntry(ctx context.Context, userID, chatID int64, food string, kcal int) (*database.Entry, error)
	ListToday(ctx context.Context, userID, chatID int64) ([]database.Entry, error)
	RemoveEntry(ctx context.Context, id uint) error
	ResetToday(ctx context.Context, userID, chatID int64) error
	ChatBreakdown(ctx context.Context, chatID int64) (map[int64][]database.Entry, error)
}

// ChatRegistryInterface defines the contract for chat auto-registration
type ChatRegistryInterface interface {
	Register(ctx context.Context, chatID int64) error
	AllChats(ctx context.Context) ([]int64, error)
}

// Notifier delivers a formatted recap to a chat. The transport layer owns it.
type Notifier interface {
	SendRecap(chatID int64, html string) error
}
