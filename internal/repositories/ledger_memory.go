package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

// LedgerMemoryRepository is an in-process append-only ledger. It also acts as its own
// transactor: rows appended inside WithinTx are staged and become visible to other
// callers only when the unit of work succeeds.
type LedgerMemoryRepository struct {
	mu     sync.RWMutex
	tables map[models.Kind][]models.Row
}

// NewLedgerMemoryRepository creates an empty in-memory ledger.
func NewLedgerMemoryRepository() *LedgerMemoryRepository {
	return &LedgerMemoryRepository{tables: make(map[models.Kind][]models.Row)}
}

type stagedRow struct {
	kind models.Kind
	row  models.Row
}

type memoryTx struct {
	owner *LedgerMemoryRepository
	rows  []stagedRow
}

type memoryTxKey struct{}

func (r *LedgerMemoryRepository) stagedTx(ctx context.Context) *memoryTx {
	tx, _ := ctx.Value(memoryTxKey{}).(*memoryTx)
	if tx == nil || tx.owner != r {
		return nil
	}
	return tx
}

// Append stores one row for the given kind.
func (r *LedgerMemoryRepository) Append(ctx context.Context, kind models.Kind, row models.Row) error {
	if err := row.Validate(kind); err != nil {
		logger.Log.Errorw("rejected ledger row", "kind", kind, "row", row, "error", err)
		return err
	}

	if tx := r.stagedTx(ctx); tx != nil {
		tx.rows = append(tx.rows, stagedRow{kind: kind, row: row.Clone()})
		return nil
	}

	r.mu.Lock()
	r.tables[kind] = append(r.tables[kind], row.Clone())
	r.mu.Unlock()
	return nil
}

// Scan returns every row of the table in append order, including rows staged by the
// caller's own unit of work.
func (r *LedgerMemoryRepository) Scan(ctx context.Context, kind models.Kind) ([]models.Row, error) {
	if kind.Columns() == nil {
		return nil, fmt.Errorf("%w: unknown table %q", models.ErrSchemaViolation, kind)
	}

	r.mu.RLock()
	out := make([]models.Row, 0, len(r.tables[kind]))
	for _, row := range r.tables[kind] {
		out = append(out, row.Clone())
	}
	r.mu.RUnlock()

	if tx := r.stagedTx(ctx); tx != nil {
		for _, s := range tx.rows {
			if s.kind == kind {
				out = append(out, s.row.Clone())
			}
		}
	}
	return out, nil
}

// WithinTx runs fn with a staging area in the context and publishes every staged row
// at once when fn succeeds. Nested calls reuse the outer staging area.
func (r *LedgerMemoryRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.stagedTx(ctx) != nil {
		return fn(ctx)
	}

	tx := &memoryTx{owner: r}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		logger.Log.Debugw("discarding staged ledger rows", "rows", len(tx.rows), "error", err)
		return err
	}

	r.mu.Lock()
	for _, s := range tx.rows {
		r.tables[s.kind] = append(r.tables[s.kind], s.row)
	}
	r.mu.Unlock()
	return nil
}
