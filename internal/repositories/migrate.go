package repositories

import (
	"context"
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the ledger schema up to date.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		logger.Log.Errorw("failed to apply migrations", "error", err)
		return err
	}

	version, err := goose.GetDBVersionContext(ctx, db.DB)
	logger.Log.Infow("ledger schema ready", "version", version, "error", err)
	return err
}
