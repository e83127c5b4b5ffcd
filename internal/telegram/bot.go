// Package telegram delivers alert messages over the Telegram bot API.
package telegram

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"bearwatch/internal/logger"
)

// Bot sends Markdown messages through a Telegram bot account. It satisfies
// the engine's Transport interface; a false Send result is never retried.
type Bot struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewBot validates the token against the bot API. The underlying HTTP client
// is bounded by timeout so a slow Telegram endpoint cannot stall a scan.
func NewBot(token string, timeout time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, err
	}

	return &Bot{
		api: api,
		log: logger.Get().With().Str("component", "telegram").Logger(),
	}, nil
}

// Send posts one message to the chat. Chat ids arrive as strings from the
// user store; unparseable ids and API failures are logged and reported as
// non-delivery.
func (b *Bot) Send(chatID, message string) bool {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		b.log.Warn().Str("chat_id", chatID).Msg("invalid chat id")
		return false
	}

	msg := tgbotapi.NewMessage(id, message)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn().Err(err).Str("chat_id", chatID).Msg("send failed")
		return false
	}
	return true
}

// Disabled is the transport used when no bot token is configured. Every send
// is reported as non-delivery; the missing token is logged once.
type Disabled struct {
	once sync.Once
	log  zerolog.Logger
}

func NewDisabled() *Disabled {
	return &Disabled{log: logger.Get().With().Str("component", "telegram").Logger()}
}

func (d *Disabled) Send(chatID, message string) bool {
	d.once.Do(func() {
		d.log.Warn().Msg("no telegram token configured, alerts will not be delivered")
	})
	return false
}
