package models

import "github.com/shopspring/decimal"

// Ledger event types
const (
	EventAccountOpened       = "account_opened"
	EventTransactionRecorded = "transaction_recorded"
)

// LedgerEvent is published after a ledger commit, keyed by account id.
type LedgerEvent struct {
	EventID       string          `json:"event_id"`                 // Random uuid
	Type          string          `json:"type"`                     // account_opened or transaction_recorded
	ChatID        int64           `json:"chat_id"`                  // Owner
	AccountID     int64           `json:"account_id"`               // Affected account
	TransactionID int64           `json:"transaction_id,omitempty"` // Set for transaction_recorded
	Amount        decimal.Decimal `json:"amount"`                   // Opening balance or transaction amount
	Balance       decimal.Decimal `json:"balance"`                  // Balance after the commit
	Currency      Currency        `json:"currency"`
	Timestamp     int64           `json:"timestamp"` // Unix seconds
}
