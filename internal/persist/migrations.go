package persist

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// Migrate brings the accounts/commanders schema up to the embedded
// migration set.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(schemaFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("barrack schema: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("barrack schema: %w", err)
	}
	if version, err := goose.GetDBVersionContext(ctx, sqlDB); err == nil {
		db.log.Info("schema up to date", zap.Int64("version", version))
	}
	return nil
}
