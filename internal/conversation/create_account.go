package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

func (e *Engine) startCreateAccount(ctx context.Context, ev Event) error {
	s := models.NewCreateAccountSession(e.now().UTC())
	if err := e.sessions.Save(ctx, ev.ChatID, s); err != nil {
		logger.Log.Errorw("failed to start dialog", "chat_id", ev.ChatID, "dialog", s.Dialog, "error", err)
		return e.storeFailed(ctx, ev.ChatID, err)
	}
	return e.transport.Prompt(ctx, ev.ChatID, msgAskAccountName, nil)
}

// stepCreateAccount walks NAME -> TYPE -> CURRENCY -> INITIAL_BALANCE.
func (e *Engine) stepCreateAccount(ctx context.Context, ev Event, s *models.Session) error {
	if s.CreateAccount == nil {
		s.CreateAccount = &models.CreateAccountDraft{}
	}
	draft := s.CreateAccount

	switch s.State {
	case models.StateAccountName:
		text, _ := textValue(ev)
		name := strings.TrimSpace(text)
		if name == "" {
			return e.transport.Prompt(ctx, ev.ChatID, msgEmptyAccountName, nil)
		}
		draft.Name = name
		if err := e.advance(ctx, ev.ChatID, s, models.StateAccountType); err != nil {
			return err
		}
		return e.transport.Prompt(ctx, ev.ChatID, msgAskAccountType, accountTypeKeyboard())

	case models.StateAccountType:
		v, ok := choiceValue(ev, fieldType)
		t, err := models.ParseAccountType(v)
		if !ok || err != nil {
			return e.transport.Prompt(ctx, ev.ChatID, msgAskAccountType, accountTypeKeyboard())
		}
		draft.Type = t
		if err := e.advance(ctx, ev.ChatID, s, models.StateAccountCurrency); err != nil {
			return err
		}
		return e.transport.Prompt(ctx, ev.ChatID, msgAskCurrency, currencyKeyboard())

	case models.StateAccountCurrency:
		v, ok := choiceValue(ev, fieldCurrency)
		c, err := models.ParseCurrency(v)
		if !ok || err != nil {
			return e.transport.Prompt(ctx, ev.ChatID, msgAskCurrency, currencyKeyboard())
		}
		draft.Currency = c
		if err := e.advance(ctx, ev.ChatID, s, models.StateInitialBalance); err != nil {
			return err
		}
		return e.transport.Prompt(ctx, ev.ChatID, msgAskInitialBalance, nil)

	case models.StateInitialBalance:
		text, ok := textValue(ev)
		if !ok {
			return e.transport.Prompt(ctx, ev.ChatID, msgAskInitialBalance, nil)
		}
		initial, err := models.ParseAmount(text)
		if err != nil {
			return e.transport.Prompt(ctx, ev.ChatID, msgInvalidBalance, nil)
		}

		info := models.AccountInfo{Name: draft.Name, Type: draft.Type, Currency: draft.Currency}
		acc, err := e.ledger.CreateAccount(ctx, ev.ChatID, info, initial)
		if err != nil {
			return e.fail(ctx, ev.ChatID, s.Dialog, err)
		}
		return e.finish(ctx, ev.ChatID, fmt.Sprintf(msgAccountCreated, acc.Name))

	default:
		logger.Log.Errorw("unknown dialog state, dropping session", "chat_id", ev.ChatID, "dialog", s.Dialog, "state", s.State)
		return e.sessions.Delete(ctx, ev.ChatID)
	}
}
