package facades

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sbilibin2017/gw-finance-bot/internal/conversation"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
)

//go:generate mockgen -source=telegram.go -destination=telegram_mock.go -package=facades

// Sender is the part of the Telegram Bot API client used by the facade.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)         // Sends a message
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) // Calls a method that returns no message
}

// TelegramFacade delivers bot replies through the Telegram Bot API.
type TelegramFacade struct {
	client Sender
}

// NewTelegramFacade creates a new facade over a Bot API client.
func NewTelegramFacade(client Sender) *TelegramFacade {
	return &TelegramFacade{client: client}
}

// Prompt sends a question. Non-empty keyboards are attached as inline buttons.
func (f *TelegramFacade) Prompt(ctx context.Context, chatID int64, text string, keyboard [][]conversation.Choice) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(keyboard) > 0 {
		msg.ReplyMarkup = inlineKeyboard(keyboard)
	}
	return f.send(ctx, msg)
}

// Confirm sends a plain message.
func (f *TelegramFacade) Confirm(ctx context.Context, chatID int64, text string) error {
	return f.send(ctx, tgbotapi.NewMessage(chatID, text))
}

// AnswerCallback acknowledges a button press so the client stops its loading indicator.
func (f *TelegramFacade) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := f.client.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		logger.Log.Errorw("failed to answer callback query via Telegram", "callback_id", callbackID, "error", err)
		return err
	}
	return nil
}

func (f *TelegramFacade) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := f.client.Send(msg); err != nil {
		logger.Log.Errorw("failed to send message via Telegram", "chat_id", msg.ChatID, "error", err)
		return err
	}
	return nil
}

func inlineKeyboard(keyboard [][]conversation.Choice) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, choices := range keyboard {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(choices))
		for _, c := range choices {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Data))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
