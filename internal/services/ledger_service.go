package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kcaltrack/kcal-bot/internal/apperrors"
	"github.com/kcaltrack/kcal-bot/internal/database"
	"github.com/kcaltrack/kcal-bot/internal/dayclock"
)

// EntryStore is the persistence surface LedgerService depends on.
type EntryStore interface {
	Insert(ctx context.Context, userID, chatID int64, food string, kcal int, at time.Time) (*database.Entry, error)
	ListUserInWindow(ctx context.Context, userID, chatID int64, start, end time.Time) ([]database.Entry, error)
	GroupChatInWindow(ctx context.Context, chatID int64, start, end time.Time) (map[int64][]database.Entry, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteUserInWindow(ctx context.Context, userID, chatID int64, start, end time.Time) error
}

// LedgerService orchestrates the daily-entry commands. It keeps no state of
// its own; "today" is re-derived from the clock on every call.
type LedgerService struct {
	entries EntryStore
	clock   dayclock.Clock
}

func NewLedgerService(entries EntryStore, clock dayclock.Clock) *LedgerService {
	return &LedgerService{
		entries: entries,
		clock:   clock,
	}
}

// ParseAddArgs splits the argument line of an add command into a food label
// and a kcal count. The split is on the last space, so multi-word foods work:
// "fish and chips 500" -> ("fish and chips", 500).
func ParseAddArgs(argLine string) (string, int, error) {
	argLine = strings.TrimSpace(argLine)

	idx := strings.LastIndex(argLine, " ")
	if idx < 0 {
		return "", 0, apperrors.NewMalformedInputError("expected <food name> <kcals>")
	}

	food := strings.TrimSpace(argLine[:idx])
	kcal, err := strconv.Atoi(argLine[idx+1:])
	if err != nil {
		return "", 0, apperrors.NewMalformedInputError("kcals must be an integer").
			WithContext("kcal_token", argLine[idx+1:])
	}
	if food == "" {
		return "", 0, apperrors.NewMalformedInputError("food name is empty")
	}

	return food, kcal, nil
}

// AddEntry validates and records one food entry. Validation and the
// quiet-window check both happen before any store mutation. The window check
// is advisory: it is not re-checked inside the insert, so a request landing
// exactly on the boundary may race the clock.
func (s *LedgerService) AddEntry(ctx context.Context, userID, chatID int64, food string, kcal int) (*database.Entry, error) {
	now := s.clock.Now()
	if s.clock.InRestrictedWindow(now) {
		return nil, apperrors.NewRestrictedWindowError(now.Hour())
	}

	food = strings.TrimSpace(food)
	if food == "" {
		return nil, apperrors.NewMalformedInputError("food name is empty")
	}

	return s.entries.Insert(ctx, userID, chatID, food, kcal, now)
}

// ListToday returns the user's entries for the current day window in
// insertion order. An empty result is not an error.
func (s *LedgerService) ListToday(ctx context.Context, userID, chatID int64) ([]database.Entry, error) {
	start, end := s.clock.TodayWindow()
	return s.entries.ListUserInWindow(ctx, userID, chatID, start, end)
}

// RemoveEntry deletes one entry by id. Removal is fire-and-forget: a stale id
// succeeds, only a storage failure is an error.
func (s *LedgerService) RemoveEntry(ctx context.Context, id uint) error {
	return s.entries.DeleteByID(ctx, id)
}

// ResetToday unconditionally deletes the user's entries for the current day
// window in one chat.
func (s *LedgerService) ResetToday(ctx context.Context, userID, chatID int64) error {
	start, end := s.clock.TodayWindow()
	return s.entries.DeleteUserInWindow(ctx, userID, chatID, start, end)
}

// ChatBreakdown returns today's entries for a whole chat grouped by user,
// for the nightly recap.
func (s *LedgerService) ChatBreakdown(ctx context.Context, chatID int64) (map[int64][]database.Entry, error) {
	start, end := s.clock.TodayWindow()
	return s.entries.GroupChatInWindow(ctx, chatID, start, end)
}
