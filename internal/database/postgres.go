package database

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	readyDeadline  = 30 * time.Second
	initialBackoff = 250 * time.Millisecond
	maxBackoff     = 4 * time.Second
)

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdle     time.Duration
	ConnMaxLifetime time.Duration
}

// NewPostgres opens the pool and waits for the server to answer pings,
// doubling the backoff between attempts. Startup aborts if the server
// never becomes ready within the deadline.
func NewPostgres(ctx context.Context, cfg PostgresConfig) *sql.DB {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	waitCtx, cancel := context.WithTimeout(ctx, readyDeadline)
	defer cancel()
	backoff := initialBackoff
	for {
		pingErr := db.PingContext(waitCtx)
		if pingErr == nil {
			return db
		}
		log.Printf("postgres not ready: %v", pingErr)
		select {
		case <-waitCtx.Done():
			log.Fatalf("postgres did not become ready: %v", pingErr)
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS employers (
	id UUID PRIMARY KEY,
	organization_name TEXT NOT NULL,
	contact_name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	city TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS vacancies (
	id UUID PRIMARY KEY,
	employer_id UUID NOT NULL REFERENCES employers(id),
	subject TEXT NOT NULL,
	work_type TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	schedule_from TEXT NOT NULL,
	schedule_to TEXT NOT NULL,
	work_days TEXT[],
	salary_amount INTEGER NOT NULL,
	salary_type TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL,
	contact_phone TEXT NOT NULL,
	contact_email TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'open',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vacancies_employer ON vacancies(employer_id);
CREATE INDEX IF NOT EXISTS idx_vacancies_status ON vacancies(status);
CREATE INDEX IF NOT EXISTS idx_vacancies_end_date ON vacancies(end_date);
`

// EnsureSchema creates the tables when they are missing. The DDL is
// idempotent, so calling it against an initialized database is a no-op.
// The archival sweep also calls it to recover from an uninitialized
// store at runtime.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
