package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kcaltrack/kcal-bot/internal/apperrors"
	"github.com/kcaltrack/kcal-bot/internal/bot/keyboards"
	"github.com/kcaltrack/kcal-bot/internal/dayclock"
	"github.com/kcaltrack/kcal-bot/internal/interfaces"
	"github.com/kcaltrack/kcal-bot/internal/logger"
	"github.com/kcaltrack/kcal-bot/internal/services"
)

const usageAdd = "Usage: /add <food name> <kcals>\nExample: /add fish and chips 500"

const helpText = `Available commands:
/add <food> <kcals> - log an entry (blocked during quiet hours)
/remove - show today's items with buttons to delete
/summary - list your entries and subtotal for today
/reset - delete your entries for today

Every evening the bot posts a group recap of everyone's entries.`

// CommandHandler handles bot commands
type CommandHandler struct {
	api    *tgbotapi.BotAPI
	ledger interfaces.LedgerServiceInterface
	clock  dayclock.Clock
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies) *CommandHandler {
	return &CommandHandler{
		api:    api,
		ledger: deps.Ledger,
		clock:  deps.Clock,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	logger.Infof("Handling command %s from user %d in chat %d",
		message.Command(), message.From.ID, message.Chat.ID)

	switch message.Command() {
	case "add":
		return h.handleAdd(ctx, message)
	case "remove":
		return h.handleRemove(ctx, message)
	case "summary":
		return h.handleSummary(ctx, message)
	case "reset":
		return h.handleReset(ctx, message)
	case "start", "help":
		return h.reply(message, helpText)
	default:
		return h.reply(message, "Unknown command. Use /help to see available commands.")
	}
}

func (h *CommandHandler) handleAdd(ctx context.Context, message *tgbotapi.Message) error {
	food, kcal, err := services.ParseAddArgs(message.CommandArguments())
	if err != nil {
		return h.reply(message, usageAdd)
	}

	entry, err := h.ledger.AddEntry(ctx, message.From.ID, message.Chat.ID, food, kcal)
	if err != nil {
		switch {
		case apperrors.IsRestrictedWindow(err):
			return h.reply(message, "you fat fuck why did u eat")
		case apperrors.IsMalformedInput(err):
			return h.reply(message, usageAdd)
		default:
			logger.Error("Failed to add entry", "error", err)
			return h.reply(message, "Sorry, something went wrong. Please try again.")
		}
	}

	text := fmt.Sprintf("Added for %s: <b>%s</b> – <b>%d</b> kcal ✔️",
		mentionHTML(message.From), html.EscapeString(entry.Food), entry.Kcal)
	return h.replyHTML(message, text)
}

func (h *CommandHandler) handleSummary(ctx context.Context, message *tgbotapi.Message) error {
	entries, err := h.ledger.ListToday(ctx, message.From.ID, message.Chat.ID)
	if err != nil {
		logger.Error("Failed to list today's entries", "error", err)
		return h.reply(message, "Sorry, something went wrong. Please try again.")
	}
	if len(entries) == 0 {
		return h.reply(message, "No entries yet today.")
	}

	total := 0
	for _, e := range entries {
		total += e.Kcal
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your log for %s  –  %d kcal", h.clock.Now().Format("2006-01-02"), total)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n • %s – %d", e.Food, e.Kcal)
	}
	return h.reply(message, b.String())
}

func (h *CommandHandler) handleRemove(ctx context.Context, message *tgbotapi.Message) error {
	entries, err := h.ledger.ListToday(ctx, message.From.ID, message.Chat.ID)
	if err != nil {
		logger.Error("Failed to list today's entries", "error", err)
		return h.reply(message, "Sorry, something went wrong. Please try again.")
	}
	if len(entries) == 0 {
		return h.reply(message, "Nothing to remove today.")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Tap an item to delete it:")
	msg.ReplyToMessageID = message.MessageID
	msg.ReplyMarkup = keyboards.DeleteMenu(entries)
	_, err = h.api.Send(msg)
	return err
}

func (h *CommandHandler) handleReset(ctx context.Context, message *tgbotapi.Message) error {
	if err := h.ledger.ResetToday(ctx, message.From.ID, message.Chat.ID); err != nil {
		logger.Error("Failed to reset today's entries", "error", err)
		return h.reply(message, "Sorry, something went wrong. Please try again.")
	}
	return h.reply(message, "Today's entries cleared. Start fresh! 🎯")
}

func (h *CommandHandler) reply(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	_, err := h.api.Send(msg)
	return err
}

func (h *CommandHandler) replyHTML(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := h.api.Send(msg)
	return err
}

// mentionHTML renders a tg://user link so the confirmation pings the author.
func mentionHTML(user *tgbotapi.User) string {
	name := user.FirstName
	if name == "" {
		name = "user"
	}
	return fmt.Sprintf("<a href=\"tg://user?id=%d\">%s</a>", user.ID, html.EscapeString(name))
}
