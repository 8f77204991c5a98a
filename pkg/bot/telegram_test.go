package bot

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeAPI struct {
	sent    []tgbotapi.Chattable
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() { f.stopped = true }

func message(text string, fromBot bool) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: 42},
		From:      &tgbotapi.User{IsBot: fromBot},
	}}
}

func TestTelegramHandle(t *testing.T) {
	api := &fakeAPI{}
	tg := newTelegram(api, NewDefaultRegistry(loadedEngine(t), "!", nil), nil)
	ctx := context.Background()

	tg.handle(ctx, message("hello there", false))
	tg.handle(ctx, message("!ping", true))
	if len(api.sent) != 0 {
		t.Fatalf("expected no replies, got %d", len(api.sent))
	}

	tg.handle(ctx, message("!ping", false))
	m, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok || m.Text != "Pong!" || m.ChatID != 42 || m.ReplyToMessageID != 7 {
		t.Fatalf("unexpected ping reply: %#v", api.sent[0])
	}

	// Items with an icon go out as a photo with the card as caption.
	tg.handle(ctx, message("/price diamond", false))
	p, ok := api.sent[1].(tgbotapi.PhotoConfig)
	if !ok || p.ChatID != 42 || p.Caption == "" {
		t.Fatalf("expected photo reply, got %#v", api.sent[1])
	}

	tg.handle(ctx, message("!price sword", false))
	if _, ok := api.sent[2].(tgbotapi.MessageConfig); !ok {
		t.Fatalf("expected text reply for item without icon, got %#v", api.sent[2])
	}
}

func TestTelegramRunStopsOnCancel(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update)}
	tg := newTelegram(api, NewDefaultRegistry(loadedEngine(t), "!", nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- tg.Run(ctx) }()

	api.updates <- message("!ping", false)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !api.stopped || len(api.sent) != 1 {
		t.Fatalf("expected stop and one reply, got stopped=%v sent=%d", api.stopped, len(api.sent))
	}
}
