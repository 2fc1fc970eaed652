package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx that the
// gateway queries run against.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the instrumentation database. The DSN must carry
// parseTime=true so datetime columns scan into time.Time.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetConnMaxLifetime(3 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// Queries is the database gateway. Mutations go exclusively through stored
// procedures; the methods here wrap the CALL plus session-variable output
// protocol and the handful of row-locked selects the batch needs.
type Queries struct {
	db *sql.DB
}

// New returns a gateway over db.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// DB exposes the underlying handle for health checks.
func (q *Queries) DB() *sql.DB {
	return q.db
}
