package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSchemaViolation is returned when a row does not match the fixed schema of its table.
var ErrSchemaViolation = errors.New("schema violation")

// Kind names one of the four ledger tables.
type Kind string

// Ledger tables
const (
	KindUsers        Kind = "users"
	KindAccounts     Kind = "accounts"
	KindBalances     Kind = "balances"
	KindTransactions Kind = "transactions"
)

// Kinds lists every ledger table in migration order.
var Kinds = []Kind{KindUsers, KindAccounts, KindBalances, KindTransactions}

var schemas = map[Kind][]string{
	KindUsers:    {"chat_id", "username"},
	KindAccounts: {"account_id", "chat_id", "account_name", "account_type", "currency"},
	KindBalances: {"chat_id", "account_id", "balance", "currency", "date"},
	KindTransactions: {
		"transaction_id", "chat_id", "timestamp", "amount", "account_id",
		"category", "description", "transaction_type", "tags",
	},
}

// Columns returns the ordered column schema of the table, or nil for an unknown kind.
func (k Kind) Columns() []string {
	cols, ok := schemas[k]
	if !ok {
		return nil
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Row is a single ledger record keyed by column name.
type Row map[string]any

// Validate checks that the row supplies every column of the kind's schema and nothing else.
func (r Row) Validate(kind Kind) error {
	cols, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("%w: unknown table %q", ErrSchemaViolation, kind)
	}
	for _, c := range cols {
		v, ok := r[c]
		if !ok || v == nil {
			return fmt.Errorf("%w: %s requires column %q", ErrSchemaViolation, kind, c)
		}
	}
	if len(r) != len(cols) {
		for c := range r {
			if !contains(cols, c) {
				return fmt.Errorf("%w: %s has no column %q", ErrSchemaViolation, kind, c)
			}
		}
	}
	return nil
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Int64 reads an integer column. Drivers hand back int64, text or raw bytes.
func (r Row) Int64(col string) (int64, error) {
	switch v := r[col].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case nil:
		return 0, fmt.Errorf("column %q is missing", col)
	default:
		return 0, fmt.Errorf("column %q: unexpected type %T", col, v)
	}
}

// String reads a text column.
func (r Row) String(col string) (string, error) {
	switch v := r[col].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("column %q is missing", col)
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Decimal reads a numeric column.
func (r Row) Decimal(col string) (decimal.Decimal, error) {
	switch v := r[col].(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case []byte:
		return decimal.NewFromString(string(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case nil:
		return decimal.Zero, fmt.Errorf("column %q is missing", col)
	default:
		return decimal.Zero, fmt.Errorf("column %q: unexpected type %T", col, v)
	}
}

// Time reads a timestamp column. Text values are parsed as RFC 3339.
func (r Row) Time(col string) (time.Time, error) {
	switch v := r[col].(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		return t.UTC(), err
	case []byte:
		t, err := time.Parse(time.RFC3339Nano, string(v))
		return t.UTC(), err
	case nil:
		return time.Time{}, fmt.Errorf("column %q is missing", col)
	default:
		return time.Time{}, fmt.Errorf("column %q: unexpected type %T", col, v)
	}
}
