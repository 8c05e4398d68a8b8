package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"air-trip-planner/internal/config"
	"air-trip-planner/internal/planclient"
	"air-trip-planner/internal/submission"
	"air-trip-planner/internal/trip"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

type unreachableRequester struct{}

func (unreachableRequester) Request(context.Context, trip.PlanRequest) planclient.Result {
	return planclient.Result{Err: &planclient.TransportError{Err: planclient.ErrNoEndpoint}}
}

func newTestBot(allowed ...int64) (*Bot, *fakeSender) {
	sessions := NewSessionRepository(func() Submitter {
		return submission.NewSubmitter(unreachableRequester{}, submission.Options{
			Mode:   config.ModeFallback,
			Sleep:  func(context.Context, time.Duration) error { return nil },
			Logger: zerolog.Nop(),
		})
	})
	sender := &fakeSender{}
	b := newBot(&tgbotapi.BotAPI{}, sender, sessions, Config{AllowedUserIDs: allowed}, zerolog.Nop())
	return b, sender
}

func message(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: chatID},
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		text, name, args string
	}{
		{"/plan 서울 | 3", "plan", "서울 | 3"},
		{"/Preview@AirBot 3 | 1000", "preview", "3 | 1000"},
		{"/help", "help", ""},
		{"  서울 | 3 | 1000 | 도보 ", "", "서울 | 3 | 1000 | 도보"},
	}
	for _, tt := range tests {
		name, args := splitCommand(tt.text)
		assert.Equal(t, tt.name, name, tt.text)
		assert.Equal(t, tt.args, args, tt.text)
	}
}

func TestParsePlanArgs(t *testing.T) {
	req, err := ParsePlanArgs("제주도 | 3 | 100000 | 자차/렌트카, 도보 | 힐링/휴양 | 바다")
	require.NoError(t, err)
	assert.Equal(t, trip.PlanRequest{
		Destination: "제주도",
		Duration:    "3",
		Budget:      "100000",
		Transport:   []string{"자차/렌트카", "도보"},
		Style:       "힐링/휴양",
		Preference:  "바다",
	}, req)

	req, err = ParsePlanArgs("부산 | 1 | 0 | KTX")
	require.NoError(t, err)
	assert.Empty(t, req.Style)
	assert.Empty(t, req.Preference)

	for _, bad := range []string{"", "서울 | 3", "a | b | c | d | e | f | g"} {
		_, err := ParsePlanArgs(bad)
		assert.ErrorIs(t, err, ErrUsage, bad)
	}
}

func TestParsePreviewArgs(t *testing.T) {
	d, b, err := ParsePreviewArgs(" 3 | 50000 ")
	require.NoError(t, err)
	assert.Equal(t, "3", d)
	assert.Equal(t, "50000", b)

	_, _, err = ParsePreviewArgs("3")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestProcessMessage_Help(t *testing.T) {
	b, sender := newTestBot(1)
	b.processMessage(message(1, "/help"))
	b.processMessage(message(1, "hello"))

	assert.Equal(t, []string{helpText, helpText}, sender.texts())
}

func TestProcessMessage_Preview(t *testing.T) {
	b, sender := newTestBot(1)
	b.processMessage(message(1, "/preview 3 | 50000"))
	b.processMessage(message(1, "/preview abc | -1"))

	assert.Equal(t, []string{
		"📆 여행 기간: 2박 3일\n💰 1일 예산: (5만원)",
		"📆 여행 기간: -\n💰 1일 예산: -",
	}, sender.texts())
}

func TestProcessMessage_PlanFallsBack(t *testing.T) {
	b, sender := newTestBot(1)
	b.processMessage(message(1, "/plan 서울 | 3 | 50000 | 대중교통,도보 | 맛집 탐방 | 야경"))

	texts := sender.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, thinkingText, texts[0])
	assert.True(t, strings.HasPrefix(texts[1], synthesizedNote))
	assert.Contains(t, texts[1], "서울 2박 3일 플랜")
	assert.Contains(t, texts[1], "약 25만원")

	sender.mu.Lock()
	edit, ok := sender.sent[1].(tgbotapi.EditMessageTextConfig)
	sender.mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, 1, edit.MessageID)
}

func TestProcessMessage_PlainTextPlan(t *testing.T) {
	b, sender := newTestBot(1)
	b.processMessage(message(1, "부산 | 1 | 200000 | KTX"))

	texts := sender.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[1], "부산 당일치기 플랜")
}

func TestProcessMessage_PlanValidation(t *testing.T) {
	b, sender := newTestBot(1)
	b.processMessage(message(1, "/plan 서울 | 3 | 50000 | "))

	texts := sender.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "❌ "+trip.MsgNoTransport, texts[1])
}

func TestProcessMessage_SessionsPerChat(t *testing.T) {
	b, _ := newTestBot(1, 2)
	b.processMessage(message(1, "/plan 서울 | 3 | 50000 | 도보"))
	b.processMessage(message(2, "/plan 부산 | 2 | 50000 | 도보"))

	assert.Equal(t, 2, b.sessions.Len())
	assert.Equal(t, "[A.I.R] 서울 2박 3일 플랜", b.sessions.Get(1).Submitter.View().Itinerary.Title)
	assert.Equal(t, "[A.I.R] 부산 1박 2일 플랜", b.sessions.Get(2).Submitter.View().Itinerary.Title)
}

func TestHandleWebhook(t *testing.T) {
	t.Run("unauthorized user is ignored", func(t *testing.T) {
		b, sender := newTestBot(42)
		body := `{"update_id": 1, "message": {"message_id": 1, "text": "/help", "chat": {"id": 7}, "from": {"id": 7, "username": "stranger"}}}`

		rec := httptest.NewRecorder()
		b.handleWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, sender.texts())
	})

	t.Run("wrong method", func(t *testing.T) {
		b, _ := newTestBot(42)
		rec := httptest.NewRecorder()
		b.handleWebhook(rec, httptest.NewRequest(http.MethodGet, "/webhook", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	b, _ := newTestBot()
	mux := http.NewServeMux()
	b.RegisterHandlers(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestFormatOutcome(t *testing.T) {
	assert.Equal(t, "❌ "+submission.MsgConnectivity, formatOutcome(submission.Outcome{
		State: submission.StateFailed,
		Alert: submission.MsgConnectivity,
	}))
}
