package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/models"
)

// LedgerRepository is the append-only PostgreSQL ledger. Every table has a
// seq BIGSERIAL column that records storage order.
type LedgerRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewLedgerRepository creates a ledger over db. When txGetter returns a transaction
// for the context, statements run inside it.
func NewLedgerRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *LedgerRepository {
	return &LedgerRepository{db: db, txGetter: txGetter}
}

func (r *LedgerRepository) executor(ctx context.Context) sqlx.ExtContext {
	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}
	return executor
}

// Append inserts one row into the table of the given kind.
func (r *LedgerRepository) Append(ctx context.Context, kind models.Kind, row models.Row) error {
	if err := row.Validate(kind); err != nil {
		logger.Log.Errorw("rejected ledger row", "kind", kind, "row", row, "error", err)
		return err
	}

	query := insertQuery(kind)
	_, err := sqlx.NamedExecContext(ctx, r.executor(ctx), query, map[string]any(row))

	// Log query, args, error
	logger.Log.Infow("ledger append",
		"query", query,
		"args", row,
		"error", err,
	)

	return err
}

// Scan returns every row of the table in append order.
func (r *LedgerRepository) Scan(ctx context.Context, kind models.Kind) ([]models.Row, error) {
	cols := kind.Columns()
	if cols == nil {
		return nil, fmt.Errorf("%w: unknown table %q", models.ErrSchemaViolation, kind)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY seq", quoteAll(cols), kind)

	rows, err := r.executor(ctx).QueryxContext(ctx, query)
	if err != nil {
		logger.Log.Infow("ledger scan", "query", query, "result", 0, "error", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Row, 0)
	for rows.Next() {
		m := make(map[string]any, len(cols))
		if err := rows.MapScan(m); err != nil {
			logger.Log.Infow("ledger scan", "query", query, "result", len(out), "error", err)
			return nil, err
		}
		out = append(out, models.Row(m))
	}
	err = rows.Err()

	// Log query, result, error
	logger.Log.Infow("ledger scan",
		"query", query,
		"result", len(out),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return out, nil
}

// insertQuery builds `INSERT INTO kind ("a", "b") VALUES (:a, :b)` for a known kind.
func insertQuery(kind models.Kind) string {
	cols := kind.Columns()
	params := make([]string, len(cols))
	for i, c := range cols {
		params[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", kind, quoteAll(cols), strings.Join(params, ", "))
}

func quoteAll(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}
