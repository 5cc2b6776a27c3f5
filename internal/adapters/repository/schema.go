package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            TEXT PRIMARY KEY,
        email         TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS habits (
        id            BIGSERIAL PRIMARY KEY,
        user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        name          VARCHAR(100) NOT NULL,
        polarity      TEXT NOT NULL CHECK (polarity IN ('Start', 'Stop')),
        mode          TEXT NOT NULL CHECK (mode IN ('Qualitative', 'Quantitative')),
        unit          VARCHAR(32),
        goal          DOUBLE PRECISION CHECK (goal >= 0),
        missed_streak INTEGER NOT NULL DEFAULT 0,
        version       INTEGER NOT NULL DEFAULT 1,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        deleted_at    TIMESTAMPTZ
    )`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits (user_id) WHERE deleted_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS daily_logs (
        habit_id     BIGINT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
        log_date     DATE NOT NULL,
        bool_value   BOOLEAN,
        number_value DOUBLE PRECISION CHECK (number_value >= 0),
        logged       BOOLEAN NOT NULL DEFAULT TRUE,
        updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        PRIMARY KEY (habit_id, log_date),
        CHECK ((bool_value IS NULL) <> (number_value IS NULL))
    )`,
	`CREATE TABLE IF NOT EXISTS reflections (
        id              BIGSERIAL PRIMARY KEY,
        habit_id        BIGINT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
        reflection_date DATE NOT NULL,
        reason          VARCHAR(200) NOT NULL,
        suggestion      VARCHAR(200) NOT NULL DEFAULT '',
        created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_reflections_habit ON reflections (habit_id, reflection_date)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
