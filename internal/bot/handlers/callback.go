package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kcaltrack/kcal-bot/internal/interfaces"
	"github.com/kcaltrack/kcal-bot/internal/logger"
)

// CallbackHandler handles inline-keyboard callback queries
type CallbackHandler struct {
	api    *tgbotapi.BotAPI
	ledger interfaces.LedgerServiceInterface
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI, deps Dependencies) *CallbackHandler {
	return &CallbackHandler{
		api:    api,
		ledger: deps.Ledger,
	}
}

// Handle processes a callback query. Delete taps are idempotent: a stale
// button for an already-removed entry still answers with success.
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	idStr, ok := strings.CutPrefix(query.Data, "del:")
	if !ok {
		return h.answer(query.ID, "")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Warn("Malformed delete callback", "data", query.Data)
		return h.answer(query.ID, "")
	}

	if err := h.ledger.RemoveEntry(ctx, uint(id)); err != nil {
		logger.Error("Failed to remove entry", "entry_id", id, "error", err)
		return h.answer(query.ID, "Something went wrong.")
	}

	if err := h.answer(query.ID, "Entry removed ✅"); err != nil {
		return err
	}

	if query.Message != nil {
		edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, "Deleted.")
		if _, err := h.api.Send(edit); err != nil {
			return err
		}
	}

	return nil
}

func (h *CallbackHandler) answer(queryID, text string) error {
	callback := tgbotapi.NewCallback(queryID, text)
	_, err := h.api.Request(callback)
	return err
}
