package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kcaltrack/kcal-bot/internal/bot/handlers"
	"github.com/kcaltrack/kcal-bot/internal/logger"
)

// Bot is the Telegram transport adapter. It owns the polling loop and recap
// delivery; all command semantics live in the services behind the handlers.
type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
}

func NewBot(token string, deps handlers.Dependencies) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)
	return &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, deps),
	}, nil
}

// SendRecap delivers a formatted recap to a chat. Implements the notifier
// contract used by the recap scheduler.
func (b *Bot) SendRecap(chatID int64, html string) error {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

// Start polls for updates until ctx is cancelled. Per-update errors are
// logged and never stop the loop.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.updateHandler.Handle(ctx, update); err != nil {
				logger.Error("Error handling update", "error", err)
			}
		}
	}
}
