package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
	"github.com/sbilibin2017/gw-finance-bot/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBalanceService_CurrentBalance(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		snapshots []models.BalanceSnapshot
		want      string
		wantFound bool
	}{
		{
			name:      "no snapshots",
			wantFound: false,
			want:      "0",
		},
		{
			name: "latest by date",
			snapshots: []models.BalanceSnapshot{
				{ChatID: 42, AccountID: 1, Balance: dec("100"), Currency: models.USD, Date: t0},
				{ChatID: 42, AccountID: 1, Balance: dec("50"), Currency: models.USD, Date: t0.Add(2 * time.Hour)},
				{ChatID: 42, AccountID: 1, Balance: dec("75"), Currency: models.USD, Date: t0.Add(time.Hour)},
			},
			want:      "50",
			wantFound: true,
		},
		{
			name: "equal dates resolve to the last appended",
			snapshots: []models.BalanceSnapshot{
				{ChatID: 42, AccountID: 1, Balance: dec("100"), Currency: models.USD, Date: t0},
				{ChatID: 42, AccountID: 1, Balance: dec("90"), Currency: models.USD, Date: t0},
			},
			want:      "90",
			wantFound: true,
		},
		{
			name: "other chats and accounts are ignored",
			snapshots: []models.BalanceSnapshot{
				{ChatID: 42, AccountID: 1, Balance: dec("10"), Currency: models.USD, Date: t0},
				{ChatID: 7, AccountID: 1, Balance: dec("999"), Currency: models.USD, Date: t0.Add(time.Hour)},
				{ChatID: 42, AccountID: 2, Balance: dec("555"), Currency: models.USD, Date: t0.Add(time.Hour)},
			},
			want:      "10",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := repositories.NewLedgerMemoryRepository()
			for _, s := range tt.snapshots {
				require.NoError(t, ledger.Append(ctx, models.KindBalances, s.Row()))
			}

			got, found, err := NewBalanceService(ledger, ledger).CurrentBalance(ctx, 42, 1)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestBalanceService_ApplyTransactionAccumulates(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewLedgerMemoryRepository()
	svc := NewBalanceService(ledger, ledger)

	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	require.NoError(t, svc.OpenAccount(ctx, 42, 1, dec("100"), models.USD))

	amounts := []string{"-25.50", "10", "0", "-0.01", "1000.25"}
	want := dec("100")
	for _, a := range amounts {
		want = want.Add(dec(a))
		got, err := svc.ApplyTransaction(ctx, 42, 1, dec(a), models.USD)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "after %s: got %s want %s", a, got, want)
	}

	current, found, err := svc.CurrentBalance(ctx, 42, 1)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1084.74", current.StringFixed(2))

	rows, _ := ledger.Scan(ctx, models.KindBalances)
	assert.Len(t, rows, len(amounts)+1)
}

func TestBalanceService_ApplyTransactionWithinSameInstant(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewLedgerMemoryRepository()
	svc := NewBalanceService(ledger, ledger)
	svc.now = fixedClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, svc.OpenAccount(ctx, 42, 1, dec("100"), models.USD))
	_, err := svc.ApplyTransaction(ctx, 42, 1, dec("-30"), models.USD)
	require.NoError(t, err)
	got, err := svc.ApplyTransaction(ctx, 42, 1, dec("-30"), models.USD)
	require.NoError(t, err)

	assert.Equal(t, "40.00", got.StringFixed(2))
}

func TestBalanceService_ApplyTransactionWithoutOpening(t *testing.T) {
	ctx := context.Background()
	ledger := repositories.NewLedgerMemoryRepository()
	svc := NewBalanceService(ledger, ledger)

	got, err := svc.ApplyTransaction(ctx, 42, 9, dec("-12"), models.EUR)
	assert.NoError(t, err)
	assert.True(t, dec("-12").Equal(got))

	rows, _ := ledger.Scan(ctx, models.KindBalances)
	require.Len(t, rows, 1)
	snap, err := models.BalanceSnapshotFromRow(rows[0])
	require.NoError(t, err)
	assert.Equal(t, models.EUR, snap.Currency)
	assert.Equal(t, time.UTC, snap.Date.Location())
}

func TestBalanceService_Errors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockLedgerReader(ctrl)
	writer := NewMockLedgerWriter(ctrl)
	svc := NewBalanceService(reader, writer)

	scanErr := errors.New("scan failed")
	reader.EXPECT().Scan(ctx, models.KindBalances).Return(nil, scanErr)
	_, err := svc.ApplyTransaction(ctx, 42, 1, dec("1"), models.USD)
	assert.ErrorIs(t, err, scanErr)

	appendErr := errors.New("append failed")
	reader.EXPECT().Scan(ctx, models.KindBalances).Return([]models.Row{}, nil)
	writer.EXPECT().Append(ctx, models.KindBalances, gomock.Any()).Return(appendErr)
	_, err = svc.ApplyTransaction(ctx, 42, 1, dec("1"), models.USD)
	assert.ErrorIs(t, err, appendErr)

	reader.EXPECT().Scan(ctx, models.KindBalances).Return([]models.Row{{"chat_id": "x"}}, nil)
	_, _, err = svc.CurrentBalance(ctx, 42, 1)
	assert.Error(t, err)
}
