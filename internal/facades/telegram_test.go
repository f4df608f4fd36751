package facades

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-finance-bot/internal/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramFacade_Prompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockSender(ctrl)
	f := NewTelegramFacade(client)

	keyboard := [][]conversation.Choice{
		{{Label: "Salary", Data: "category:1"}, {Label: "Groceries", Data: "category:2"}},
		{{Label: "Activities", Data: "category:5"}},
	}

	client.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, int64(42), msg.ChatID)
		assert.Equal(t, "Pick one:", msg.Text)

		markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
		require.True(t, ok)
		require.Len(t, markup.InlineKeyboard, 2)
		require.Len(t, markup.InlineKeyboard[0], 2)
		assert.Equal(t, "Groceries", markup.InlineKeyboard[0][1].Text)
		require.NotNil(t, markup.InlineKeyboard[0][1].CallbackData)
		assert.Equal(t, "category:2", *markup.InlineKeyboard[0][1].CallbackData)
		assert.Len(t, markup.InlineKeyboard[1], 1)
		return tgbotapi.Message{MessageID: 1}, nil
	})

	assert.NoError(t, f.Prompt(context.Background(), 42, "Pick one:", keyboard))
}

func TestTelegramFacade_PromptWithoutKeyboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockSender(ctrl)
	client.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		msg := c.(tgbotapi.MessageConfig)
		assert.Nil(t, msg.ReplyMarkup)
		return tgbotapi.Message{}, nil
	})

	assert.NoError(t, NewTelegramFacade(client).Prompt(context.Background(), 1, "Name?", nil))
}

func TestTelegramFacade_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockSender(ctrl)
	f := NewTelegramFacade(client)

	client.EXPECT().Send(tgbotapi.NewMessage(42, "done")).Return(tgbotapi.Message{}, nil)
	assert.NoError(t, f.Confirm(context.Background(), 42, "done"))

	sendErr := errors.New("Forbidden: bot was blocked by the user")
	client.EXPECT().Send(gomock.Any()).Return(tgbotapi.Message{}, sendErr)
	assert.ErrorIs(t, f.Confirm(context.Background(), 42, "done"), sendErr)
}

func TestTelegramFacade_AnswerCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockSender(ctrl)
	f := NewTelegramFacade(client)

	client.EXPECT().Request(tgbotapi.NewCallback("cb-1", "")).Return(&tgbotapi.APIResponse{Ok: true}, nil)
	assert.NoError(t, f.AnswerCallback(context.Background(), "cb-1"))

	reqErr := errors.New("query is too old")
	client.EXPECT().Request(gomock.Any()).Return(nil, reqErr)
	assert.ErrorIs(t, f.AnswerCallback(context.Background(), "cb-2"), reqErr)
}

func TestTelegramFacade_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := NewTelegramFacade(NewMockSender(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, f.Confirm(ctx, 1, "x"), context.Canceled)
	assert.ErrorIs(t, f.AnswerCallback(ctx, "cb"), context.Canceled)
}
