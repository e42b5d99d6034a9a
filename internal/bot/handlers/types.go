package handlers

import (
	"github.com/kcaltrack/kcal-bot/internal/dayclock"
	"github.com/kcaltrack/kcal-bot/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Ledger interfaces.LedgerServiceInterface
	Chats  interfaces.ChatRegistryInterface
	Clock  dayclock.Clock
}
