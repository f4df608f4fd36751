package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is an immutable balance value of an account at a point in time.
type BalanceSnapshot struct {
	ChatID    int64           `json:"chat_id" db:"chat_id"`
	AccountID int64           `json:"account_id" db:"account_id"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Currency  Currency        `json:"currency" db:"currency"`
	Date      time.Time       `json:"date" db:"date"` // UTC
}

// Row converts the snapshot into a balances table row.
func (b BalanceSnapshot) Row() Row {
	return Row{
		"chat_id":    b.ChatID,
		"account_id": b.AccountID,
		"balance":    b.Balance,
		"currency":   string(b.Currency),
		"date":       b.Date.UTC(),
	}
}

// BalanceSnapshotFromRow reads a balances table row.
func BalanceSnapshotFromRow(r Row) (BalanceSnapshot, error) {
	var (
		b   BalanceSnapshot
		err error
		s   string
	)
	if b.ChatID, err = r.Int64("chat_id"); err != nil {
		return BalanceSnapshot{}, err
	}
	if b.AccountID, err = r.Int64("account_id"); err != nil {
		return BalanceSnapshot{}, err
	}
	if b.Balance, err = r.Decimal("balance"); err != nil {
		return BalanceSnapshot{}, err
	}
	if s, err = r.String("currency"); err != nil {
		return BalanceSnapshot{}, err
	}
	b.Currency = Currency(trimPadding(s))
	if b.Date, err = r.Time("date"); err != nil {
		return BalanceSnapshot{}, err
	}
	return b, nil
}

// FormatMoney renders an amount with two decimals followed by the currency code.
func FormatMoney(amount decimal.Decimal, currency Currency) string {
	return amount.StringFixed(2) + " " + string(currency)
}
