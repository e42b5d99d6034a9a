package repository

import (
	"context"

	"github.com/kcaltrack/kcal-bot/internal/apperrors"
	"github.com/kcaltrack/kcal-bot/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository tracks the chats the bot has ever seen
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Register records a chat id. Registering a known chat is a no-op.
func (r *ChatRepository) Register(ctx context.Context, chatID int64) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&database.Chat{ID: chatID}).Error
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}

// AllChats returns every registered chat id. Order is insignificant.
func (r *ChatRepository) AllChats(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&database.Chat{}).Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	return ids, nil
}
