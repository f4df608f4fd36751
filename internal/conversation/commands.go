package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

// Commands
const (
	CommandStart          = "start"
	CommandCreateAccount  = "create_account"
	CommandAddTransaction = "add_transaction"
	CommandCancel         = "cancel"
	CommandAnalytics      = "analytics"
	CommandAccounts       = "accounts"
)

func (e *Engine) handleCommand(ctx context.Context, ev Event) error {
	logger.Log.Infow("command", "chat_id", ev.ChatID, "command", ev.Command)

	switch ev.Command {
	case CommandStart:
		return e.transport.Confirm(ctx, ev.ChatID, fmt.Sprintf(msgWelcome, displayName(ev.Username)))
	case CommandCreateAccount:
		return e.startCreateAccount(ctx, ev)
	case CommandAddTransaction:
		return e.startAddTransaction(ctx, ev)
	case CommandCancel:
		return e.finish(ctx, ev.ChatID, msgCancelled)
	case CommandAnalytics:
		// not implemented yet, stays silent
		return nil
	case CommandAccounts:
		return e.listAccounts(ctx, ev)
	default:
		return e.transport.Confirm(ctx, ev.ChatID, msgUnknownCommand)
	}
}

// listAccounts replies with every account of the chat and its current balance.
func (e *Engine) listAccounts(ctx context.Context, ev Event) error {
	accounts, err := e.registry.Accounts(ctx, ev.ChatID)
	if err != nil {
		logger.Log.Errorw("failed to list accounts", "chat_id", ev.ChatID, "error", err)
		return e.transport.Confirm(ctx, ev.ChatID, msgFailure)
	}
	if len(accounts) == 0 {
		return e.transport.Confirm(ctx, ev.ChatID, msgNoAccounts)
	}

	lines := make([]string, 0, len(accounts)+1)
	lines = append(lines, msgAccountsHeader)
	for _, a := range accounts {
		balance, _, err := e.balances.CurrentBalance(ctx, ev.ChatID, a.AccountID)
		if err != nil {
			logger.Log.Errorw("failed to read balance", "chat_id", ev.ChatID, "account_id", a.AccountID, "error", err)
			return e.transport.Confirm(ctx, ev.ChatID, msgFailure)
		}
		lines = append(lines, fmt.Sprintf(msgAccountLine, a.Name, a.Type, models.FormatMoney(balance, a.Currency)))
	}
	return e.transport.Confirm(ctx, ev.ChatID, strings.Join(lines, "\n"))
}

func displayName(username string) string {
	if strings.TrimSpace(username) == "" {
		return "there"
	}
	return username
}
