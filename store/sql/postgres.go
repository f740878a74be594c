package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// OpenPostgres opens a postgres-backed bun handle ready for the
// repository factory. The caller owns the returned handle.
func OpenPostgres(dsn string) (*bun.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlstore: postgres dsn is required")
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open postgres: %w", err)
	}
	return bun.NewDB(sqlDB, pgdialect.New()), nil
}

// NewPostgresRepositoryFactory opens the database and builds the stores
// in one step.
func NewPostgresRepositoryFactory(dsn string) (*RepositoryFactory, error) {
	db, err := OpenPostgres(dsn)
	if err != nil {
		return nil, err
	}
	return NewRepositoryFactoryFromDB(db)
}
