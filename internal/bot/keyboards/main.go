package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kcaltrack/kcal-bot/internal/database"
)

// DeleteMenu builds one delete button per entry, one per row. The callback
// data carries the entry id; the transport resolves it back into a removal.
func DeleteMenu(entries []database.Entry) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("❌ %s – %d kcal", e.Food, e.Kcal),
				fmt.Sprintf("del:%d", e.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
