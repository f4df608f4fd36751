package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sbilibin2017/gw-finance-bot/internal/conversation"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
)

//go:generate mockgen -source=updates.go -destination=updates_mock.go -package=handlers

// EventHandler processes conversation events.
type EventHandler interface {
	Handle(ctx context.Context, ev conversation.Event) error
}

// CallbackAnswerer acknowledges inline button presses.
type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID string) error
}

// UpdateHandler turns Telegram updates into conversation events.
type UpdateHandler struct {
	events   EventHandler
	answerer CallbackAnswerer
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(events EventHandler, answerer CallbackAnswerer) *UpdateHandler {
	return &UpdateHandler{events: events, answerer: answerer}
}

// HandleUpdate processes one update. Failures are logged; the update is never retried.
func (h *UpdateHandler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if cq := upd.CallbackQuery; cq != nil {
		if err := h.answerer.AnswerCallback(ctx, cq.ID); err != nil {
			logger.Log.Warnw("failed to answer callback", "update_id", upd.UpdateID, "error", err)
		}
	}

	ev, ok := EventFromUpdate(upd)
	if !ok {
		logger.Log.Debugw("skipping update", "update_id", upd.UpdateID)
		return
	}

	if err := h.events.Handle(ctx, ev); err != nil {
		logger.Log.Errorw("failed to handle update", "update_id", upd.UpdateID, "chat_id", ev.ChatID, "error", err)
	}
}

// Poll handles updates from the long polling channel until ctx is done or the channel closes.
func (h *UpdateHandler) Poll(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}

// EventFromUpdate extracts a conversation event from a message or a callback query.
func EventFromUpdate(upd tgbotapi.Update) (conversation.Event, bool) {
	switch {
	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil {
			return conversation.Event{}, false
		}
		return conversation.Event{
			ChatID:   cq.Message.Chat.ID,
			Username: displayName(cq.From),
			Kind:     conversation.EventChoice,
			Choice:   cq.Data,
		}, true

	case upd.Message != nil:
		msg := upd.Message
		if msg.Chat == nil {
			return conversation.Event{}, false
		}
		ev := conversation.Event{
			ChatID:   msg.Chat.ID,
			Username: displayName(msg.From),
		}
		if msg.IsCommand() {
			ev.Kind = conversation.EventCommand
			ev.Command = strings.ToLower(msg.Command())
		} else {
			ev.Kind = conversation.EventText
			ev.Text = msg.Text
		}
		return ev, true
	}
	return conversation.Event{}, false
}

// displayName is the user's full name, falling back to the @username.
func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
