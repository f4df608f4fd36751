package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=services

// Transactor runs a unit of work atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error // Commits when fn succeeds, rolls back otherwise
}

// IDMinter mints ledger identifiers.
type IDMinter interface {
	NextAccountID(ctx context.Context) (int64, error)     // Returns max(account_id)+1
	NextTransactionID(ctx context.Context) (int64, error) // Returns max(transaction_id)+1
}

// BalanceKeeper appends balance snapshots.
type BalanceKeeper interface {
	OpenAccount(ctx context.Context, chatID, accountID int64, initial decimal.Decimal, currency models.Currency) error                  // Appends the opening snapshot
	ApplyTransaction(ctx context.Context, chatID, accountID int64, amount decimal.Decimal, currency models.Currency) (decimal.Decimal, error) // Appends current+amount
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// LedgerService commits accounts and transactions together with their balance snapshots.
// Commits are serialized so minted ids stay unique within the process.
type LedgerService struct {
	mu sync.Mutex

	tx          Transactor
	ids         IDMinter
	balances    BalanceKeeper
	writer      LedgerWriter
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewLedgerService creates a new LedgerService. kafkaWriter may be nil.
func NewLedgerService(
	tx Transactor,
	ids IDMinter,
	balances BalanceKeeper,
	writer LedgerWriter,
	kafkaWriter KafkaWriter,
) *LedgerService {
	return &LedgerService{
		tx:          tx,
		ids:         ids,
		balances:    balances,
		writer:      writer,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

// CreateAccount mints an account id and appends the account with its opening balance.
func (s *LedgerService) CreateAccount(ctx context.Context, chatID int64, info models.AccountInfo, initial decimal.Decimal) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var acc models.Account
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.ids.NextAccountID(ctx)
		if err != nil {
			return err
		}

		acc = models.Account{
			AccountID: id,
			ChatID:    chatID,
			Name:      info.Name,
			Type:      info.Type,
			Currency:  info.Currency,
		}
		if err := s.writer.Append(ctx, models.KindAccounts, acc.Row()); err != nil {
			return err
		}
		return s.balances.OpenAccount(ctx, chatID, id, initial, info.Currency)
	})
	if err != nil {
		logger.Log.Errorw("failed to create account", "chat_id", chatID, "account_name", info.Name, "error", err)
		return models.Account{}, err
	}

	logger.Log.Infow("account created", "chat_id", chatID, "account_id", acc.AccountID, "currency", acc.Currency)

	s.publish(ctx, models.LedgerEvent{
		Type:      models.EventAccountOpened,
		ChatID:    chatID,
		AccountID: acc.AccountID,
		Amount:    initial,
		Balance:   initial,
		Currency:  acc.Currency,
	})
	return acc, nil
}

// RecordTransaction appends a transaction against the account and the resulting snapshot.
// It returns the stored transaction and the new balance.
func (s *LedgerService) RecordTransaction(
	ctx context.Context,
	account models.Account,
	amount decimal.Decimal,
	category string,
	description string,
) (models.Transaction, decimal.Decimal, error) {
	if !isCategory(category) {
		return models.Transaction{}, decimal.Zero, fmt.Errorf("%w: %q", models.ErrUnknownCategory, category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		txn     models.Transaction
		balance decimal.Decimal
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.ids.NextTransactionID(ctx)
		if err != nil {
			return err
		}

		txn = models.Transaction{
			TransactionID:   id,
			ChatID:          account.ChatID,
			Timestamp:       s.now().UTC(),
			Amount:          amount,
			AccountID:       account.AccountID,
			Category:        category,
			Description:     description,
			TransactionType: models.TransactionTypeOf(amount),
		}
		if err := s.writer.Append(ctx, models.KindTransactions, txn.Row()); err != nil {
			return err
		}

		balance, err = s.balances.ApplyTransaction(ctx, account.ChatID, account.AccountID, amount, account.Currency)
		return err
	})
	if err != nil {
		logger.Log.Errorw("failed to record transaction",
			"chat_id", account.ChatID, "account_id", account.AccountID, "amount", amount, "error", err)
		return models.Transaction{}, decimal.Zero, err
	}

	logger.Log.Infow("transaction recorded",
		"chat_id", account.ChatID, "account_id", account.AccountID, "transaction_id", txn.TransactionID, "amount", amount)

	s.publish(ctx, models.LedgerEvent{
		Type:          models.EventTransactionRecorded,
		ChatID:        account.ChatID,
		AccountID:     account.AccountID,
		TransactionID: txn.TransactionID,
		Amount:        amount,
		Balance:       balance,
		Currency:      account.Currency,
	})
	return txn, balance, nil
}

// publish sends a ledger event to Kafka. Failures are logged and never undo the commit.
func (s *LedgerService) publish(ctx context.Context, evt models.LedgerEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "type", evt.Type, "account_id", evt.AccountID)
		return
	}

	evt.EventID = uuid.NewString()
	evt.Timestamp = s.now().Unix()

	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event for Kafka", "event_id", evt.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.AccountID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event to Kafka", "event_id", evt.EventID, "type", evt.Type, "error", err)
	} else {
		logger.Log.Infow("Ledger event published to Kafka", "event_id", evt.EventID, "type", evt.Type, "account_id", evt.AccountID)
	}
}

func isCategory(c string) bool {
	for _, v := range models.Categories {
		if v == c {
			return true
		}
	}
	return false
}
