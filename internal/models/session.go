package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DialogKind tags which dialog a session belongs to.
type DialogKind string

// Dialogs
const (
	DialogCreateAccount  DialogKind = "create_account"
	DialogAddTransaction DialogKind = "add_transaction"
)

// DialogState is the step a dialog is waiting on.
type DialogState string

// CreateAccount states
const (
	StateAccountName     DialogState = "account_name"
	StateAccountType     DialogState = "account_type"
	StateAccountCurrency DialogState = "account_currency"
	StateInitialBalance  DialogState = "initial_balance"
)

// AddTransaction states
const (
	StateAccountSelection  DialogState = "account_selection"
	StateTransactionAmount DialogState = "transaction_amount"
	StateCategory          DialogState = "category"
	StateDescription       DialogState = "description"
)

// Session is the in-progress dialog of one chat. A chat without a session has no
// active dialog; exactly one of the draft pointers matches Dialog.
type Session struct {
	Dialog         DialogKind           `json:"dialog"`
	State          DialogState          `json:"state"`
	CreateAccount  *CreateAccountDraft  `json:"create_account,omitempty"`
	AddTransaction *AddTransactionDraft `json:"add_transaction,omitempty"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// CreateAccountDraft holds fields collected by the CreateAccount dialog so far.
type CreateAccountDraft struct {
	Name     string      `json:"name,omitempty"`
	Type     AccountType `json:"type,omitempty"`
	Currency Currency    `json:"currency,omitempty"`
}

// AddTransactionDraft holds fields collected by the AddTransaction dialog so far.
type AddTransactionDraft struct {
	AccountID int64           `json:"account_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category,omitempty"`
}

// NewCreateAccountSession starts a CreateAccount dialog at its first state.
func NewCreateAccountSession(now time.Time) *Session {
	return &Session{
		Dialog:        DialogCreateAccount,
		State:         StateAccountName,
		CreateAccount: &CreateAccountDraft{},
		UpdatedAt:     now,
	}
}

// NewAddTransactionSession starts an AddTransaction dialog at its first state.
func NewAddTransactionSession(now time.Time) *Session {
	return &Session{
		Dialog:         DialogAddTransaction,
		State:          StateAccountSelection,
		AddTransaction: &AddTransactionDraft{},
		UpdatedAt:      now,
	}
}
