package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/sbilibin2017/gw-finance-bot/internal/services"
)

const noDescription = "none"

func (e *Engine) startAddTransaction(ctx context.Context, ev Event) error {
	has, err := e.registry.HasAccount(ctx, ev.ChatID)
	if err != nil {
		return e.fail(ctx, ev.ChatID, models.DialogAddTransaction, err)
	}
	if !has {
		return e.finish(ctx, ev.ChatID, msgNoAccounts)
	}
	accounts, err := e.registry.Accounts(ctx, ev.ChatID)
	if err != nil {
		return e.fail(ctx, ev.ChatID, models.DialogAddTransaction, err)
	}

	s := models.NewAddTransactionSession(e.now().UTC())
	if err := e.sessions.Save(ctx, ev.ChatID, s); err != nil {
		logger.Log.Errorw("failed to start dialog", "chat_id", ev.ChatID, "dialog", s.Dialog, "error", err)
		return e.storeFailed(ctx, ev.ChatID, err)
	}
	return e.transport.Prompt(ctx, ev.ChatID, msgChooseAccount, accountKeyboard(accounts))
}

// stepAddTransaction walks ACCOUNT_SELECTION -> AMOUNT -> CATEGORY -> DESCRIPTION.
func (e *Engine) stepAddTransaction(ctx context.Context, ev Event, s *models.Session) error {
	if s.AddTransaction == nil {
		s.AddTransaction = &models.AddTransactionDraft{}
	}
	draft := s.AddTransaction

	switch s.State {
	case models.StateAccountSelection:
		acc, err := e.selectedAccount(ctx, ev)
		if errors.Is(err, services.ErrAccountNotFound) {
			return e.repromptAccounts(ctx, ev, s)
		}
		if err != nil {
			return e.fail(ctx, ev.ChatID, s.Dialog, err)
		}
		draft.AccountID = acc.AccountID
		if err := e.advance(ctx, ev.ChatID, s, models.StateTransactionAmount); err != nil {
			return err
		}
		return e.transport.Prompt(ctx, ev.ChatID, msgAskAmount, nil)

	case models.StateTransactionAmount:
		text, ok := textValue(ev)
		if !ok {
			return e.transport.Prompt(ctx, ev.ChatID, msgAskAmount, nil)
		}
		amount, err := models.ParseAmount(text)
		if err != nil {
			return e.transport.Prompt(ctx, ev.ChatID, msgInvalidAmount, nil)
		}
		draft.Amount = amount
		if err := e.advance(ctx, ev.ChatID, s, models.StateCategory); err != nil {
			return err
		}
		return e.transport.Prompt(ctx, ev.ChatID, msgChooseCategory, categoryKeyboard())

	case models.StateCategory:
		v, ok := choiceValue(ev, fieldCategory)
		k, convErr := strconv.Atoi(v)
		category, err := models.CategoryByIndex(k)
		if !ok || convErr != nil || err != nil {
			return e.transport.Prompt(ctx, ev.ChatID, msgChooseCategory, categoryKeyboard())
		}
		draft.Category = category
		if err := e.advance(ctx, ev.ChatID, s, models.StateDescription); err != nil {
			return err
		}
		return e.transport.Prompt(ctx, ev.ChatID, msgAskDescription, nil)

	case models.StateDescription:
		text, ok := textValue(ev)
		if !ok {
			return e.transport.Prompt(ctx, ev.ChatID, msgAskDescription, nil)
		}
		description := strings.TrimSpace(text)
		if strings.EqualFold(description, noDescription) {
			description = ""
		}

		acc, err := e.registry.Account(ctx, ev.ChatID, draft.AccountID)
		if err != nil {
			return e.fail(ctx, ev.ChatID, s.Dialog, err)
		}
		_, balance, err := e.ledger.RecordTransaction(ctx, *acc, draft.Amount, draft.Category, description)
		if err != nil {
			return e.fail(ctx, ev.ChatID, s.Dialog, err)
		}
		return e.finish(ctx, ev.ChatID, fmt.Sprintf(msgTransactionRecorded, acc.Name, models.FormatMoney(balance, acc.Currency)))

	default:
		logger.Log.Errorw("unknown dialog state, dropping session", "chat_id", ev.ChatID, "dialog", s.Dialog, "state", s.State)
		return e.sessions.Delete(ctx, ev.ChatID)
	}
}

// selectedAccount resolves an account button press to an account the chat owns.
func (e *Engine) selectedAccount(ctx context.Context, ev Event) (*models.Account, error) {
	v, ok := choiceValue(ev, fieldAccount)
	if !ok {
		return nil, services.ErrAccountNotFound
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, services.ErrAccountNotFound
	}
	return e.registry.Account(ctx, ev.ChatID, id)
}

func (e *Engine) repromptAccounts(ctx context.Context, ev Event, s *models.Session) error {
	accounts, err := e.registry.Accounts(ctx, ev.ChatID)
	if err != nil {
		return e.fail(ctx, ev.ChatID, s.Dialog, err)
	}
	return e.transport.Prompt(ctx, ev.ChatID, msgChooseAccount, accountKeyboard(accounts))
}
