package services

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceService derives account balances from the history of snapshots.
type BalanceService struct {
	reader LedgerReader
	writer LedgerWriter
	now    func() time.Time
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(reader LedgerReader, writer LedgerWriter) *BalanceService {
	return &BalanceService{
		reader: reader,
		writer: writer,
		now:    time.Now,
	}
}

// CurrentBalance returns the balance of the latest snapshot of the account.
// Snapshots with equal dates resolve to the one appended last.
// found is false when the account has no snapshot.
func (s *BalanceService) CurrentBalance(ctx context.Context, chatID, accountID int64) (balance decimal.Decimal, found bool, err error) {
	rows, err := s.reader.Scan(ctx, models.KindBalances)
	if err != nil {
		logger.Log.Errorw("failed to scan balances", "chat_id", chatID, "account_id", accountID, "error", err)
		return decimal.Zero, false, err
	}

	var latest models.BalanceSnapshot
	for _, row := range rows {
		snap, err := models.BalanceSnapshotFromRow(row)
		if err != nil {
			return decimal.Zero, false, err
		}
		if snap.ChatID != chatID || snap.AccountID != accountID {
			continue
		}
		if !found || !snap.Date.Before(latest.Date) {
			latest, found = snap, true
		}
	}

	if !found {
		return decimal.Zero, false, nil
	}
	return latest.Balance, true, nil
}

// OpenAccount appends the opening snapshot of a new account.
func (s *BalanceService) OpenAccount(ctx context.Context, chatID, accountID int64, initial decimal.Decimal, currency models.Currency) error {
	return s.appendSnapshot(ctx, chatID, accountID, initial, currency)
}

// ApplyTransaction appends a snapshot equal to the current balance plus amount and returns
// the new balance. When the account has no snapshot yet, the new balance is the amount alone.
func (s *BalanceService) ApplyTransaction(ctx context.Context, chatID, accountID int64, amount decimal.Decimal, currency models.Currency) (decimal.Decimal, error) {
	current, found, err := s.CurrentBalance(ctx, chatID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		logger.Log.Warnw("account has no opening balance, starting from the transaction amount",
			"chat_id", chatID, "account_id", accountID, "amount", amount)
	}

	balance := current.Add(amount)
	if err := s.appendSnapshot(ctx, chatID, accountID, balance, currency); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *BalanceService) appendSnapshot(ctx context.Context, chatID, accountID int64, balance decimal.Decimal, currency models.Currency) error {
	snap := models.BalanceSnapshot{
		ChatID:    chatID,
		AccountID: accountID,
		Balance:   balance,
		Currency:  currency,
		Date:      s.now().UTC(),
	}
	if err := s.writer.Append(ctx, models.KindBalances, snap.Row()); err != nil {
		logger.Log.Errorw("failed to append balance snapshot",
			"chat_id", chatID, "account_id", accountID, "balance", balance, "error", err)
		return err
	}
	return nil
}
