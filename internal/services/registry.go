package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

// ErrAccountNotFound is returned when an account does not exist or belongs to another chat.
var ErrAccountNotFound = errors.New("account not found")

//go:generate mockgen -source=registry.go -destination=registry_mock.go -package=services

// LedgerReader reads the append-only ledger.
type LedgerReader interface {
	Scan(ctx context.Context, kind models.Kind) ([]models.Row, error) // Returns all rows of a table in append order
}

// LedgerWriter appends rows to the ledger.
type LedgerWriter interface {
	Append(ctx context.Context, kind models.Kind, row models.Row) error // Appends one row, validating its schema
}

// RegistryService keeps track of users and the accounts they own.
type RegistryService struct {
	reader LedgerReader
	writer LedgerWriter

	mu    sync.Mutex
	known map[int64]struct{}
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(reader LedgerReader, writer LedgerWriter) *RegistryService {
	return &RegistryService{
		reader: reader,
		writer: writer,
		known:  make(map[int64]struct{}),
	}
}

// RegisterUser records the chat as a user unless it is already registered.
// It reports whether a new user row was appended.
func (s *RegistryService) RegisterUser(ctx context.Context, chatID int64, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.known[chatID]; ok {
		return false, nil
	}

	rows, err := s.reader.Scan(ctx, models.KindUsers)
	if err != nil {
		logger.Log.Errorw("failed to scan users", "chat_id", chatID, "error", err)
		return false, err
	}
	for _, row := range rows {
		u, err := models.UserFromRow(row)
		if err != nil {
			return false, err
		}
		s.known[u.ChatID] = struct{}{}
	}
	if _, ok := s.known[chatID]; ok {
		return false, nil
	}

	user := models.User{ChatID: chatID, Username: username}
	if err := s.writer.Append(ctx, models.KindUsers, user.Row()); err != nil {
		logger.Log.Errorw("failed to register user", "chat_id", chatID, "username", username, "error", err)
		return false, err
	}
	s.known[chatID] = struct{}{}

	logger.Log.Infow("user registered", "chat_id", chatID, "username", username)
	return true, nil
}

// NextAccountID returns one more than the largest account id, or 1 for an empty ledger.
func (s *RegistryService) NextAccountID(ctx context.Context) (int64, error) {
	return s.nextID(ctx, models.KindAccounts, "account_id")
}

// NextTransactionID returns one more than the largest transaction id across all chats,
// or 1 for an empty ledger.
func (s *RegistryService) NextTransactionID(ctx context.Context) (int64, error) {
	return s.nextID(ctx, models.KindTransactions, "transaction_id")
}

func (s *RegistryService) nextID(ctx context.Context, kind models.Kind, col string) (int64, error) {
	rows, err := s.reader.Scan(ctx, kind)
	if err != nil {
		logger.Log.Errorw("failed to scan ids", "table", kind, "error", err)
		return 0, err
	}

	var last int64
	for _, row := range rows {
		id, err := row.Int64(col)
		if err != nil {
			return 0, err
		}
		if id > last {
			last = id
		}
	}
	return last + 1, nil
}

// Accounts returns the chat's accounts in creation order.
func (s *RegistryService) Accounts(ctx context.Context, chatID int64) ([]models.Account, error) {
	rows, err := s.reader.Scan(ctx, models.KindAccounts)
	if err != nil {
		logger.Log.Errorw("failed to scan accounts", "chat_id", chatID, "error", err)
		return nil, err
	}

	out := make([]models.Account, 0)
	for _, row := range rows {
		a, err := models.AccountFromRow(row)
		if err != nil {
			return nil, err
		}
		if a.ChatID == chatID {
			out = append(out, a)
		}
	}
	return out, nil
}

// AccountsFor returns the chat's accounts keyed by account id.
func (s *RegistryService) AccountsFor(ctx context.Context, chatID int64) (map[int64]models.AccountInfo, error) {
	accounts, err := s.Accounts(ctx, chatID)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]models.AccountInfo, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a.Info()
	}
	return out, nil
}

// HasAccount reports whether the chat owns at least one account.
func (s *RegistryService) HasAccount(ctx context.Context, chatID int64) (bool, error) {
	accounts, err := s.Accounts(ctx, chatID)
	if err != nil {
		return false, err
	}
	return len(accounts) > 0, nil
}

// Account returns the account if it exists and is owned by the chat.
func (s *RegistryService) Account(ctx context.Context, chatID, accountID int64) (*models.Account, error) {
	accounts, err := s.Accounts(ctx, chatID)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.AccountID == accountID {
			return &a, nil
		}
	}
	return nil, ErrAccountNotFound
}
