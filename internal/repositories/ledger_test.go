package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestInsertQuery(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO users ("chat_id", "username") VALUES (:chat_id, :username)`,
		insertQuery(models.KindUsers),
	)
	assert.Contains(t, insertQuery(models.KindTransactions), `"timestamp"`)
}

func TestLedgerRepository_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, GetTxFromContext)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users ("chat_id", "username") VALUES ($1, $2)`)).
		WithArgs(int64(42), "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.KindUsers, models.User{ChatID: 42, Username: "alice"}.Row())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_AppendRejectsBadRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, nil)

	tests := []struct {
		name string
		kind models.Kind
		row  models.Row
	}{
		{name: "unknown table", kind: models.Kind("budgets"), row: models.Row{"chat_id": int64(1)}},
		{name: "missing column", kind: models.KindUsers, row: models.Row{"chat_id": int64(1)}},
		{name: "extra column", kind: models.KindUsers, row: models.Row{"chat_id": int64(1), "username": "a", "email": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Append(context.Background(), tt.kind, tt.row)
			assert.True(t, errors.Is(err, models.ErrSchemaViolation))
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_AppendInsideTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, GetTxFromContext)
	tr := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO accounts`)).
		WithArgs(int64(1), int64(42), "Wallet", "usual", "USD").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO balances`)).
		WithArgs(int64(42), int64(1), sqlmock.AnyArg(), "USD", sqlmock.AnyArg()).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	acc := models.Account{AccountID: 1, ChatID: 42, Name: "Wallet", Type: models.AccountUsual, Currency: models.USD}
	snap := models.BalanceSnapshot{ChatID: 42, AccountID: 1, Balance: decimal.NewFromInt(100), Currency: models.USD, Date: time.Now()}

	err := tr.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.Append(ctx, models.KindAccounts, acc.Row()); err != nil {
			return err
		}
		return repo.Append(ctx, models.KindBalances, snap.Row())
	})

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Scan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, GetTxFromContext)

	rows := sqlmock.NewRows([]string{"chat_id", "username"}).
		AddRow(int64(42), "alice").
		AddRow(int64(7), "bob")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "chat_id", "username" FROM users ORDER BY seq`)).
		WillReturnRows(rows)

	got, err := repo.Scan(context.Background(), models.KindUsers)
	require.NoError(t, err)
	require.Len(t, got, 2)

	u, err := models.UserFromRow(got[1])
	assert.NoError(t, err)
	assert.Equal(t, models.User{ChatID: 7, Username: "bob"}, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ScanEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions ORDER BY seq`)).
		WillReturnRows(sqlmock.NewRows(models.KindTransactions.Columns()))

	got, err := repo.Scan(context.Background(), models.KindTransactions)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLedgerRepository_ScanErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLedgerRepository(db, nil)

	_, err := repo.Scan(context.Background(), models.Kind("budgets"))
	assert.True(t, errors.Is(err, models.ErrSchemaViolation))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM accounts`)).WillReturnError(sql.ErrConnDone)
	_, err = repo.Scan(context.Background(), models.KindAccounts)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

// --- Setup Postgres ---
func setupPostgres(t *testing.T) *sqlx.DB {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())

	var db *sqlx.DB
	require.Eventually(t, func() bool {
		db, err = sqlx.Connect("pgx", dsn)
		return err == nil
	}, 20*time.Second, 500*time.Millisecond)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func TestLedgerRepository_Postgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewLedgerRepository(db, GetTxFromContext)
	tr := NewTransactor(db)

	acc := models.Account{AccountID: 1, ChatID: 42, Name: "Wallet", Type: models.AccountUsual, Currency: models.USD}
	date := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("append and scan account with opening balance", func(t *testing.T) {
		err := tr.WithinTx(ctx, func(ctx context.Context) error {
			if err := repo.Append(ctx, models.KindAccounts, acc.Row()); err != nil {
				return err
			}
			snap := models.BalanceSnapshot{ChatID: 42, AccountID: 1, Balance: decimal.RequireFromString("100.00"), Currency: models.USD, Date: date}
			return repo.Append(ctx, models.KindBalances, snap.Row())
		})
		require.NoError(t, err)

		rows, err := repo.Scan(ctx, models.KindAccounts)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		got, err := models.AccountFromRow(rows[0])
		require.NoError(t, err)
		assert.Equal(t, acc, got)

		rows, err = repo.Scan(ctx, models.KindBalances)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		snap, err := models.BalanceSnapshotFromRow(rows[0])
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(snap.Balance))
		assert.True(t, date.Equal(snap.Date))
		assert.Equal(t, models.USD, snap.Currency)
	})

	t.Run("duplicate account id is rejected and rolled back", func(t *testing.T) {
		err := tr.WithinTx(ctx, func(ctx context.Context) error {
			snap := models.BalanceSnapshot{ChatID: 42, AccountID: 1, Balance: decimal.Zero, Currency: models.USD, Date: date}
			if err := repo.Append(ctx, models.KindBalances, snap.Row()); err != nil {
				return err
			}
			return repo.Append(ctx, models.KindAccounts, acc.Row())
		})
		assert.Error(t, err)

		rows, err := repo.Scan(ctx, models.KindBalances)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("transactions keep storage order", func(t *testing.T) {
		for i := int64(1); i <= 3; i++ {
			tx := models.Transaction{
				TransactionID:   i,
				ChatID:          42,
				Timestamp:       date.Add(time.Duration(i) * time.Minute),
				Amount:          decimal.NewFromInt(-i),
				AccountID:       1,
				Category:        "Groceries",
				Description:     "",
				TransactionType: models.Expense,
				Tags:            "",
			}
			require.NoError(t, repo.Append(ctx, models.KindTransactions, tx.Row()))
		}

		rows, err := repo.Scan(ctx, models.KindTransactions)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for i, row := range rows {
			tx, err := models.TransactionFromRow(row)
			require.NoError(t, err)
			assert.Equal(t, int64(i+1), tx.TransactionID)
			assert.True(t, decimal.NewFromInt(-int64(i+1)).Equal(tx.Amount))
		}
	})
}
