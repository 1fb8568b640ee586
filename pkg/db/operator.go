// Package db defines the low-level database operator contract used
// by the lifecycle commands. The pgx implementation lives in
// internal/iodb.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placenames/pndb/pkg/config"
)

// Operator manages the PostgreSQL connection pool and the
// administrative operations the lifecycle commands need.
type Operator interface {
	// Connect establishes a connection pool to PostgreSQL.
	Connect(ctx context.Context, cfg *config.DatabaseConfig) error

	// Close releases all database connections.
	Close() error

	// Pool returns the underlying pgxpool.Pool for advanced
	// operations.
	Pool() *pgxpool.Pool

	// HasTables checks if the database has any tables in the public
	// schema.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}
