package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type sessionStore interface {
	Get(ctx context.Context, chatID int64) (*models.Session, error)
	Save(ctx context.Context, chatID int64, s *models.Session) error
	Delete(ctx context.Context, chatID int64) error
}

func exerciseSessionStore(t *testing.T, store sessionStore) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("missing session", func(t *testing.T) {
		s, err := store.Get(ctx, 404)
		assert.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("save and get", func(t *testing.T) {
		s := models.NewAddTransactionSession(now)
		s.State = models.StateCategory
		s.AddTransaction.AccountID = 3
		s.AddTransaction.Amount = decimal.RequireFromString("-25.50")
		require.NoError(t, store.Save(ctx, 42, s))

		got, err := store.Get(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, models.DialogAddTransaction, got.Dialog)
		assert.Equal(t, models.StateCategory, got.State)
		assert.Equal(t, int64(3), got.AddTransaction.AccountID)
		assert.True(t, s.AddTransaction.Amount.Equal(got.AddTransaction.Amount))
		assert.Nil(t, got.CreateAccount)
		assert.True(t, now.Equal(got.UpdatedAt))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, 42, models.NewCreateAccountSession(now)))

		got, err := store.Get(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, models.DialogCreateAccount, got.Dialog)
		assert.Nil(t, got.AddTransaction)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, 42))
		require.NoError(t, store.Delete(ctx, 42))

		got, err := store.Get(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSessionMemoryRepository(t *testing.T) {
	store := NewSessionMemoryRepository()
	exerciseSessionStore(t, store)

	t.Run("stored session is isolated from caller", func(t *testing.T) {
		ctx := context.Background()
		s := models.NewCreateAccountSession(time.Now())
		s.CreateAccount.Name = "Wallet"
		require.NoError(t, store.Save(ctx, 1, s))

		s.CreateAccount.Name = "changed"
		got, _ := store.Get(ctx, 1)
		assert.Equal(t, "Wallet", got.CreateAccount.Name)

		got.CreateAccount.Name = "changed again"
		again, _ := store.Get(ctx, 1)
		assert.Equal(t, "Wallet", again.CreateAccount.Name)
	})
}

func TestSessionRedisRepository(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	exerciseSessionStore(t, NewSessionRedisRepository(rdb, 0))

	t.Run("session key layout", func(t *testing.T) {
		store := NewSessionRedisRepository(rdb, 0)
		require.NoError(t, store.Save(ctx, 7, models.NewCreateAccountSession(time.Now())))

		n, err := rdb.Exists(ctx, "session:7").Result()
		assert.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("session expires", func(t *testing.T) {
		store := NewSessionRedisRepository(rdb, time.Second)
		require.NoError(t, store.Save(ctx, 8, models.NewCreateAccountSession(time.Now())))

		time.Sleep(2 * time.Second)

		got, err := store.Get(ctx, 8)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt value", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "session:9", "{not json", 0).Err())
		_, err := NewSessionRedisRepository(rdb, 0).Get(ctx, 9)
		assert.Error(t, err)
	})
}
