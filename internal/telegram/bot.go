// Package telegram drives the trip planner from a Telegram chat.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"air-trip-planner/internal/metrics"
	"air-trip-planner/internal/render"
	"air-trip-planner/internal/submission"
	"air-trip-planner/internal/trip"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const thinkingText = "🧭 *AI가 최적의 여행 경로를 계산하고 있습니다...*"

const synthesizedNote = "_서버에 연결할 수 없어 예시 일정을 보여드립니다._\n\n"

// Submitter is the part of submission.Submitter the bot needs.
type Submitter interface {
	Submit(ctx context.Context, req trip.PlanRequest) (submission.Outcome, error)
	View() submission.ViewState
}

// Sender delivers messages to Telegram.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Config struct {
	WebhookURL     string
	AllowedUserIDs []int64
	// SubmitTimeout bounds one plan request including the fallback delay.
	SubmitTimeout time.Duration
}

// Bot wraps the Telegram API and one planning session per chat.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	sessions *SessionRepository
	cfg      Config
	logger   zerolog.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(token string, cfg Config, sessions *SessionRepository, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	wh, err := tgbotapi.NewWebhook(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.WebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.WebhookURL, err)
	}
	logger.Info().Str("description", resp.Description).Msg("webhook set")

	return newBot(api, api, sessions, cfg, logger), nil
}

func newBot(api *tgbotapi.BotAPI, sender Sender, sessions *SessionRepository, cfg Config, logger zerolog.Logger) *Bot {
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = 2 * time.Minute
	}
	return &Bot{
		api:      api,
		sender:   sender,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn().Err(err).Msg("error parsing update")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !b.isAllowed(msg.From.ID) {
		b.logger.Warn().Int64("user_id", msg.From.ID).Str("username", msg.From.UserName).Msg("unauthorized access attempt")
		return
	}

	go b.processMessage(msg)
}

func (b *Bot) isAllowed(userID int64) bool {
	return slices.Contains(b.cfg.AllowedUserIDs, userID)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	name, args := splitCommand(msg.Text)
	switch name {
	case cmdStart, cmdHelp:
		b.reply(msg.Chat.ID, helpText)
	case cmdPreview:
		b.handlePreview(msg.Chat.ID, args)
	case cmdStatus:
		b.handleStatus(msg.Chat.ID)
	case cmdPlan:
		b.handlePlan(msg.Chat.ID, args)
	case "":
		// plain text in the plan layout is treated as /plan
		if strings.Contains(args, "|") {
			b.handlePlan(msg.Chat.ID, args)
			return
		}
		b.reply(msg.Chat.ID, helpText)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handlePreview(chatID int64, args string) {
	duration, budget, err := ParsePreviewArgs(args)
	if err != nil {
		b.reply(chatID, "사용법: /preview 기간 | 예산")
		return
	}

	nights := trip.NightsLabel(duration)
	if nights == "" {
		nights = "-"
	}
	amount := trip.BudgetPreview(budget)
	if amount == "" {
		amount = "-"
	}
	b.reply(chatID, fmt.Sprintf("📆 여행 기간: %s\n💰 1일 예산: %s", nights, amount))
}

func (b *Bot) handlePlan(chatID int64, args string) {
	req, err := ParsePlanArgs(args)
	if err != nil {
		b.reply(chatID, helpText)
		return
	}

	session := b.sessions.Get(chatID)
	if session.Submitter.View().Phase == submission.PhaseLoading {
		b.reply(chatID, submission.MsgInFlight)
		return
	}

	status := tgbotapi.NewMessage(chatID, thinkingText)
	status.ParseMode = tgbotapi.ModeMarkdown
	sent, err := b.sender.Send(status)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send initial reply")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.SubmitTimeout)
	defer cancel()
	ctx = b.logger.With().Int64("chat_id", chatID).Logger().WithContext(ctx)

	outcome, err := session.Submitter.Submit(ctx, req)
	if errors.Is(err, submission.ErrSubmissionInFlight) {
		b.edit(chatID, sent.MessageID, submission.MsgInFlight)
		return
	}

	b.edit(chatID, sent.MessageID, formatOutcome(outcome))
}

func (b *Bot) handleStatus(chatID int64) {
	health := metrics.GetSysHealth()

	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	sb.WriteString(fmt.Sprintf("• Active chats: %d\n", b.sessions.Len()))
	b.reply(chatID, sb.String())
}

// formatOutcome turns a finished submission into the chat message.
func formatOutcome(o submission.Outcome) string {
	if o.View.ShowResult() {
		text := render.Markdown(render.Render(*o.View.Itinerary))
		if o.View.Synthesized {
			text = synthesizedNote + text
		}
		return text
	}
	if o.Alert != "" {
		return "❌ " + o.Alert
	}
	return "❌ " + submission.MsgConnectivity
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(edit); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to edit message")
	}
}
