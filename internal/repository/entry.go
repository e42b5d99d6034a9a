package repository

import (
	"context"
	"time"

	"github.com/kcaltrack/kcal-bot/internal/apperrors"
	"github.com/kcaltrack/kcal-bot/internal/database"
	"gorm.io/gorm"
)

// EntryRepository handles food-entry persistence
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Insert appends a new entry stamped with the given instant (stored as UTC)
// and returns it with its store-assigned id.
func (r *EntryRepository) Insert(ctx context.Context, userID, chatID int64, food string, kcal int, at time.Time) (*database.Entry, error) {
	entry := &database.Entry{
		UserID:    userID,
		ChatID:    chatID,
		Timestamp: at.UTC(),
		Food:      food,
		Kcal:      kcal,
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return entry, nil
}

// ListUserInWindow returns one user's entries in a chat whose timestamp falls
// in [start, end), in insertion (id) order.
func (r *EntryRepository) ListUserInWindow(ctx context.Context, userID, chatID int64, start, end time.Time) ([]database.Entry, error) {
	var entries []database.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND chat_id = ? AND timestamp >= ? AND timestamp < ?",
			userID, chatID, start, end).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return entries, nil
}

// GroupChatInWindow returns all entries in a chat within [start, end),
// grouped by user. Per-user slices preserve insertion order; map iteration
// order is unspecified.
func (r *EntryRepository) GroupChatInWindow(ctx context.Context, chatID int64, start, end time.Time) (map[int64][]database.Entry, error) {
	var entries []database.Entry
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND timestamp >= ? AND timestamp < ?", chatID, start, end).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	grouped := make(map[int64][]database.Entry)
	for _, e := range entries {
		grouped[e.UserID] = append(grouped[e.UserID], e)
	}
	return grouped, nil
}

// DeleteByID removes an entry. Deleting an id that no longer exists is a
// no-op, not an error.
func (r *EntryRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&database.Entry{}, id).Error; err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// DeleteUserInWindow bulk-deletes one user's entries in a chat within
// [start, end) — the same predicate ListUserInWindow matches on.
func (r *EntryRepository) DeleteUserInWindow(ctx context.Context, userID, chatID int64, start, end time.Time) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND chat_id = ? AND timestamp >= ? AND timestamp < ?",
			userID, chatID, start, end).
		Delete(&database.Entry{}).Error
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}
