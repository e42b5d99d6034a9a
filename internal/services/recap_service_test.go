package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kcaltrack/kcal-bot/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeChats struct {
	ids []int64
	err error
}

func (f *fakeChats) AllChats(ctx context.Context) ([]int64, error) {
	return f.ids, f.err
}

type fakeBreakdowns struct {
	byChat map[int64]map[int64][]database.Entry
	errFor map[int64]error
	calls  []int64
}

func (f *fakeBreakdowns) ChatBreakdown(ctx context.Context, chatID int64) (map[int64][]database.Entry, error) {
	f.calls = append(f.calls, chatID)
	if err := f.errFor[chatID]; err != nil {
		return nil, err
	}
	return f.byChat[chatID], nil
}

type fakeNotifier struct {
	sent   []sentRecap
	errFor map[int64]error
}

type sentRecap struct {
	chatID int64
	html   string
}

func (f *fakeNotifier) SendRecap(chatID int64, html string) error {
	if err := f.errFor[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentRecap{chatID: chatID, html: html})
	return nil
}

func newRecapFixture(t *testing.T, chats *fakeChats, breakdowns *fakeBreakdowns, notifier *fakeNotifier) *RecapService {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Singapore")
	require.NoError(t, err)

	clock := &fixedClock{
		now:        time.Date(2024, 3, 15, 22, 0, 0, 0, loc),
		loc:        loc,
		quietStart: 22,
		quietEnd:   0,
	}

	return NewRecapService(chats, breakdowns, notifier, clock, 22, loc)
}

func entries(kcals ...int) []database.Entry {
	out := make([]database.Entry, 0, len(kcals))
	for i, k := range kcals {
		out = append(out, database.Entry{ID: uint(i + 1), Food: "food", Kcal: k})
	}
	return out
}

func TestRecapService_SkipsEmptyChats(t *testing.T) {
	breakdowns := &fakeBreakdowns{
		byChat: map[int64]map[int64][]database.Entry{
			100: {1: entries(500)},
			200: {},
		},
	}
	notifier := &fakeNotifier{}
	svc := newRecapFixture(t, &fakeChats{ids: []int64{100, 200}}, breakdowns, notifier)

	svc.RunOnce(context.Background())

	require.Len(t, notifier.sent, 1, "only the chat with entries is contacted")
	assert.Equal(t, int64(100), notifier.sent[0].chatID)
	assert.ElementsMatch(t, []int64{100, 200}, breakdowns.calls)
}

func TestRecapService_PerChatFailureIsolation(t *testing.T) {
	breakdowns := &fakeBreakdowns{
		byChat: map[int64]map[int64][]database.Entry{
			100: {1: entries(500)},
			200: {2: entries(300)},
			300: {3: entries(100)},
		},
		errFor: map[int64]error{200: errors.New("breakdown boom")},
	}
	notifier := &fakeNotifier{
		errFor: map[int64]error{100: errors.New("delivery boom")},
	}
	svc := newRecapFixture(t, &fakeChats{ids: []int64{100, 200, 300}}, breakdowns, notifier)

	svc.RunOnce(context.Background())

	require.Len(t, notifier.sent, 1, "failures in earlier chats never stop later ones")
	assert.Equal(t, int64(300), notifier.sent[0].chatID)
}

func TestRecapService_ChatListingFailureAbortsRun(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newRecapFixture(t, &fakeChats{err: errors.New("store down")}, &fakeBreakdowns{}, notifier)

	svc.RunOnce(context.Background())

	assert.Empty(t, notifier.sent)
}

func TestRecapService_FormatRecap(t *testing.T) {
	breakdowns := &fakeBreakdowns{
		byChat: map[int64]map[int64][]database.Entry{
			100: {
				1: {
					{ID: 1, Food: "fish & chips", Kcal: 500},
					{ID: 2, Food: "salad", Kcal: 150},
				},
				2: {
					{ID: 3, Food: "soup", Kcal: 300},
				},
			},
		},
	}
	notifier := &fakeNotifier{}
	svc := newRecapFixture(t, &fakeChats{ids: []int64{100}}, breakdowns, notifier)

	svc.RunOnce(context.Background())

	require.Len(t, notifier.sent, 1)
	html := notifier.sent[0].html
	assert.Contains(t, html, "Daily calorie recap (2024-03-15)")
	assert.Contains(t, html, `<a href="tg://user?id=1">User</a>: <b>650</b> kcal`)
	assert.Contains(t, html, `<a href="tg://user?id=2">User</a>: <b>300</b> kcal`)
	assert.Contains(t, html, "fish &amp; chips – 500")
	assert.Contains(t, html, "salad – 150")
}

func TestRecapService_StartStopsWithContext(t *testing.T) {
	svc := newRecapFixture(t, &fakeChats{}, &fakeBreakdowns{}, &fakeNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))
	cancel()
}
