package bot

import (
	"context"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxCaptionLength is Telegram's limit for photo captions.
const maxCaptionLength = 1024

// BotAPI is the subset of the Telegram client the transport uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Telegram feeds Telegram messages through a Registry and sends the replies.
type Telegram struct {
	api      BotAPI
	registry *Registry
	log      Logger
}

// NewTelegram logs in with token.
func NewTelegram(token string, registry *Registry, log Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Infof("Bot is ready, logged in as %s", api.Self.UserName)
	}
	return newTelegram(api, registry, log), nil
}

func newTelegram(api BotAPI, registry *Registry, log Logger) *Telegram {
	if log == nil {
		log = nopLogger{}
	}
	return &Telegram{api: api, registry: registry, log: log}
}

// Run long-polls for updates until ctx is cancelled.
func (t *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)
	t.log.Infof("Bot is listening for '%s' commands.", t.registry.Prefix())

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			t.handle(ctx, upd)
		}
	}
}

func (t *Telegram) handle(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	// Ignore other bots.
	if msg.From != nil && msg.From.IsBot {
		return
	}

	reply, ok := t.registry.Dispatch(ctx, msg.Text)
	if !ok {
		return
	}

	var out tgbotapi.Chattable
	text := reply.String()
	if reply.Card != nil && reply.Card.Thumbnail != "" && utf8.RuneCountInString(text) <= maxCaptionLength {
		photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileURL(reply.Card.Thumbnail))
		photo.Caption = text
		photo.ReplyToMessageID = msg.MessageID
		out = photo
	} else {
		m := tgbotapi.NewMessage(msg.Chat.ID, text)
		m.ReplyToMessageID = msg.MessageID
		out = m
	}

	if _, err := t.api.Send(out); err != nil {
		t.log.Warnf("Failed to reply in chat %d: %v", msg.Chat.ID, err)
	}
}
