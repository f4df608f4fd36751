package models

import "fmt"

// AccountType is the kind of a monetary account.
type AccountType string

// Supported account types
const (
	AccountUsual   AccountType = "usual"
	AccountSavings AccountType = "savings"
	AccountCredit  AccountType = "credit"
)

// AccountTypes lists account types in the order they are offered to the user.
var AccountTypes = []AccountType{AccountUsual, AccountSavings, AccountCredit}

// ParseAccountType validates s against the closed set of account types.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AccountTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// Currency is an ISO code of a supported currency.
type Currency string

// Supported currency codes
const (
	BYN Currency = "BYN"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// Currencies lists currencies in the order they are offered to the user.
var Currencies = []Currency{BYN, USD, EUR}

// ParseCurrency validates s against the closed set of currencies.
func ParseCurrency(s string) (Currency, error) {
	for _, c := range Currencies {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown currency %q", s)
}

// Account is a monetary account owned by exactly one chat.
type Account struct {
	AccountID int64       `json:"account_id" db:"account_id"`     // Minted as max(account_id)+1
	ChatID    int64       `json:"chat_id" db:"chat_id"`           // Owner
	Name      string      `json:"account_name" db:"account_name"` // User supplied name
	Type      AccountType `json:"account_type" db:"account_type"` // usual, savings or credit
	Currency  Currency    `json:"currency" db:"currency"`         // BYN, USD or EUR
}

// AccountInfo is the owner-independent part of an account.
type AccountInfo struct {
	Name     string
	Type     AccountType
	Currency Currency
}

// Info returns the account's name, type and currency.
func (a Account) Info() AccountInfo {
	return AccountInfo{Name: a.Name, Type: a.Type, Currency: a.Currency}
}

// Row converts the account into an accounts table row.
func (a Account) Row() Row {
	return Row{
		"account_id":   a.AccountID,
		"chat_id":      a.ChatID,
		"account_name": a.Name,
		"account_type": string(a.Type),
		"currency":     string(a.Currency),
	}
}

// AccountFromRow reads an accounts table row.
func AccountFromRow(r Row) (Account, error) {
	var (
		a   Account
		err error
		s   string
	)
	if a.AccountID, err = r.Int64("account_id"); err != nil {
		return Account{}, err
	}
	if a.ChatID, err = r.Int64("chat_id"); err != nil {
		return Account{}, err
	}
	if a.Name, err = r.String("account_name"); err != nil {
		return Account{}, err
	}
	if s, err = r.String("account_type"); err != nil {
		return Account{}, err
	}
	a.Type = AccountType(s)
	if s, err = r.String("currency"); err != nil {
		return Account{}, err
	}
	a.Currency = Currency(trimPadding(s))
	return a, nil
}

// trimPadding strips the blank padding CHAR(n) columns come back with.
func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}
