package services

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/kcaltrack/kcal-bot/internal/database"
	"github.com/kcaltrack/kcal-bot/internal/dayclock"
	"github.com/kcaltrack/kcal-bot/internal/interfaces"
	"github.com/kcaltrack/kcal-bot/internal/logger"
	"github.com/robfig/cron/v3"
)

// ChatSource lists the chats known to the bot.
type ChatSource interface {
	AllChats(ctx context.Context) ([]int64, error)
}

// BreakdownSource provides the per-user grouping for one chat's current day.
type BreakdownSource interface {
	ChatBreakdown(ctx context.Context, chatID int64) (map[int64][]database.Entry, error)
}

// RecapService sends the once-daily per-chat recap. One cron trigger fires at
// the summary hour in the fixed timezone; each chat is processed in
// isolation, so a failing chat never suppresses the others.
type RecapService struct {
	chats       ChatSource
	breakdowns  BreakdownSource
	notifier    interfaces.Notifier
	clock       dayclock.Clock
	summaryHour int
	location    *time.Location
	cron        *cron.Cron
}

func NewRecapService(
	chats ChatSource,
	breakdowns BreakdownSource,
	notifier interfaces.Notifier,
	clock dayclock.Clock,
	summaryHour int,
	location *time.Location,
) *RecapService {
	return &RecapService{
		chats:       chats,
		breakdowns:  breakdowns,
		notifier:    notifier,
		clock:       clock,
		summaryHour: summaryHour,
		location:    location,
	}
}

// Start schedules the daily trigger and stops it when ctx is done.
func (s *RecapService) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.location))

	spec := fmt.Sprintf("0 %d * * *", s.summaryHour)
	if _, err := s.cron.AddFunc(spec, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to schedule recap job: %w", err)
	}

	s.cron.Start()
	logger.Info("Recap scheduler started", "spec", spec, "timezone", s.location.String())

	go func() {
		<-ctx.Done()
		s.cron.Stop()
		logger.Info("Recap scheduler stopped")
	}()

	return nil
}

// RunOnce sends a recap to every registered chat with entries today. Chats
// without entries are skipped silently. Per-chat failures are logged and do
// not abort the remaining chats; a failed chat is simply skipped until the
// next day.
func (s *RecapService) RunOnce(ctx context.Context) {
	chatIDs, err := s.chats.AllChats(ctx)
	if err != nil {
		logger.Error("Failed to list chats for recap", "error", err)
		return
	}

	for _, chatID := range chatIDs {
		if err := s.recapChat(ctx, chatID); err != nil {
			logger.Warn("Recap failed for chat", "chat_id", chatID, "error", err)
		}
	}
}

func (s *RecapService) recapChat(ctx context.Context, chatID int64) error {
	breakdown, err := s.breakdowns.ChatBreakdown(ctx, chatID)
	if err != nil {
		return err
	}
	if len(breakdown) == 0 {
		return nil
	}

	return s.notifier.SendRecap(chatID, s.formatRecap(breakdown))
}

// formatRecap renders the per-user breakdown as Telegram HTML. Users are
// sorted by id only to make the output deterministic; no ordering between
// users is promised.
func (s *RecapService) formatRecap(breakdown map[int64][]database.Entry) string {
	userIDs := make([]int64, 0, len(breakdown))
	for uid := range breakdown {
		userIDs = append(userIDs, uid)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Daily calorie recap (%s)</b>", s.clock.Now().Format("2006-01-02"))

	for _, uid := range userIDs {
		entries := breakdown[uid]
		subtotal := 0
		for _, e := range entries {
			subtotal += e.Kcal
		}

		fmt.Fprintf(&b, "\n\n<a href=\"tg://user?id=%d\">User</a>: <b>%d</b> kcal", uid, subtotal)
		for _, e := range entries {
			fmt.Fprintf(&b, "\n • %s – %d", html.EscapeString(e.Food), e.Kcal)
		}
	}

	return b.String()
}
