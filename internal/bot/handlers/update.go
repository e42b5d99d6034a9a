package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kcaltrack/kcal-bot/internal/interfaces"
	"github.com/kcaltrack/kcal-bot/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             *tgbotapi.BotAPI
	chats           interfaces.ChatRegistryInterface
	commandHandler  *CommandHandler
	callbackHandler *CallbackHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies) *UpdateHandler {
	return &UpdateHandler{
		api:             api,
		chats:           deps.Chats,
		commandHandler:  NewCommandHandler(api, deps),
		callbackHandler: NewCallbackHandler(api, deps),
	}
}

// Handle processes a telegram update. Every observed update registers its
// chat before any dispatch, so chats are learned from passive traffic too.
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var chatID int64

	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID = update.CallbackQuery.Message.Chat.ID
	default:
		return nil
	}

	if err := h.chats.Register(ctx, chatID); err != nil {
		logger.Warn("Failed to register chat", "chat_id", chatID, "error", err)
	}

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message)
	}

	// Non-command traffic only feeds chat registration.
	return nil
}
