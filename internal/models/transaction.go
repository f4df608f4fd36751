package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when text cannot be read as a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownCategory is returned for a category index outside the fixed list.
	ErrUnknownCategory = errors.New("unknown category")
)

// TransactionType is derived from the sign of the amount.
type TransactionType string

// Transaction types
const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TransactionTypeOf returns income for a positive amount and expense otherwise.
func TransactionTypeOf(amount decimal.Decimal) TransactionType {
	if amount.IsPositive() {
		return Income
	}
	return Expense
}

// Categories is the fixed, closed list of transaction categories.
var Categories = []string{"Salary", "Groceries", "Entertainment", "Shopping", "Activities"}

// CategoryByIndex resolves a 1-based index into the category list.
func CategoryByIndex(k int) (string, error) {
	if k < 1 || k > len(Categories) {
		return "", fmt.Errorf("%w: index %d", ErrUnknownCategory, k)
	}
	return Categories[k-1], nil
}

// amountPattern fits the NUMERIC(20,2) ledger columns: up to 18 integer digits and
// up to 2 decimal places, no exponent.
var amountPattern = regexp.MustCompile(`^[+-]?(\d{1,18}(\.\d{0,2})?|\.\d{1,2})$`)

// ParseAmount reads a signed decimal typed by a user. Both "." and "," are accepted
// as the decimal separator.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, " ", "")
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	return d, nil
}

// Transaction is an immutable income or expense record against an account.
type Transaction struct {
	TransactionID   int64           `json:"transaction_id" db:"transaction_id"`     // Minted as max(transaction_id)+1 across all chats
	ChatID          int64           `json:"chat_id" db:"chat_id"`                   // Owner of the account
	Timestamp       time.Time       `json:"timestamp" db:"timestamp"`               // UTC
	Amount          decimal.Decimal `json:"amount" db:"amount"`                     // Positive for income, negative for expense
	AccountID       int64           `json:"account_id" db:"account_id"`             // References an account of ChatID
	Category        string          `json:"category" db:"category"`                 // One of Categories
	Description     string          `json:"description" db:"description"`           // May be empty
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"` // Derived from Amount
	Tags            string          `json:"tags" db:"tags"`
}

// Row converts the transaction into a transactions table row.
func (t Transaction) Row() Row {
	return Row{
		"transaction_id":   t.TransactionID,
		"chat_id":          t.ChatID,
		"timestamp":        t.Timestamp.UTC(),
		"amount":           t.Amount,
		"account_id":       t.AccountID,
		"category":         t.Category,
		"description":      t.Description,
		"transaction_type": string(t.TransactionType),
		"tags":             t.Tags,
	}
}

// TransactionFromRow reads a transactions table row.
func TransactionFromRow(r Row) (Transaction, error) {
	var (
		t   Transaction
		err error
		s   string
	)
	if t.TransactionID, err = r.Int64("transaction_id"); err != nil {
		return Transaction{}, err
	}
	if t.ChatID, err = r.Int64("chat_id"); err != nil {
		return Transaction{}, err
	}
	if t.Timestamp, err = r.Time("timestamp"); err != nil {
		return Transaction{}, err
	}
	if t.Amount, err = r.Decimal("amount"); err != nil {
		return Transaction{}, err
	}
	if t.AccountID, err = r.Int64("account_id"); err != nil {
		return Transaction{}, err
	}
	if t.Category, err = r.String("category"); err != nil {
		return Transaction{}, err
	}
	if t.Description, err = r.String("description"); err != nil {
		return Transaction{}, err
	}
	if s, err = r.String("transaction_type"); err != nil {
		return Transaction{}, err
	}
	t.TransactionType = TransactionType(s)
	if t.Tags, err = r.String("tags"); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
