package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas si no existen. Idempotente; lo ejecutan el
// arranque del API y el seed.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS parts (
			part_number TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			family      TEXT NOT NULL,
			quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			min_stock   BIGINT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id          BIGSERIAL PRIMARY KEY,
			group_id    TEXT NOT NULL DEFAULT '',
			part_number TEXT NOT NULL REFERENCES parts(part_number),
			change      BIGINT NOT NULL,
			station     TEXT NOT NULL,
			notes       TEXT NOT NULL DEFAULT '',
			actor       TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_part ON transactions (part_number)`,
		`CREATE TABLE IF NOT EXISTS work_orders (
			id               TEXT PRIMARY KEY,
			order_number     TEXT NOT NULL,
			set_type         TEXT NOT NULL,
			required_sets    BIGINT NOT NULL CHECK (required_sets >= 1),
			include_modifier BOOLEAN NOT NULL DEFAULT FALSE,
			status           TEXT NOT NULL DEFAULT 'active',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_by       TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders (status)`,
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL,
			role          TEXT NOT NULL,
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS stock_settings (
			id                  SMALLINT PRIMARY KEY CHECK (id = 1),
			low_stock_threshold BIGINT NOT NULL,
			critical_threshold  BIGINT NOT NULL,
			webhook_url         TEXT NOT NULL DEFAULT '',
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_by          TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
