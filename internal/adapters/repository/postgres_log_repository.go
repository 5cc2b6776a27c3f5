package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

var _ domain.LogRepository = (*PostgresLogRepository)(nil)

type PostgresLogRepository struct {
	db *sqlx.DB
}

func NewPostgresLogRepository(db *sqlx.DB) *PostgresLogRepository {
	return &PostgresLogRepository{db: db}
}

// logRow stores the value variant in two nullable columns, exactly one of them set.
type logRow struct {
	Date        domain.Date     `db:"log_date"`
	BoolValue   sql.NullBool    `db:"bool_value"`
	NumberValue sql.NullFloat64 `db:"number_value"`
	Logged      bool            `db:"logged"`
}

func (row logRow) toDomain() domain.DailyLog {
	l := domain.DailyLog{Date: row.Date, Logged: row.Logged}
	switch {
	case row.BoolValue.Valid:
		l.Value = domain.BoolValue(row.BoolValue.Bool)
	case row.NumberValue.Valid:
		l.Value = domain.NumberValue(row.NumberValue.Float64)
	}
	return l
}

func (r *PostgresLogRepository) Upsert(ctx context.Context, habitID int64, log domain.DailyLog) error {
	var boolValue sql.NullBool
	var numberValue sql.NullFloat64
	if b, ok := log.Value.Bool(); ok {
		boolValue = sql.NullBool{Bool: b, Valid: true}
	}
	if n, ok := log.Value.Number(); ok {
		numberValue = sql.NullFloat64{Float64: n, Valid: true}
	}

	query := `
        INSERT INTO daily_logs (habit_id, log_date, bool_value, number_value, logged, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (habit_id, log_date) DO UPDATE SET
            bool_value = EXCLUDED.bool_value,
            number_value = EXCLUDED.number_value,
            logged = EXCLUDED.logged,
            updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query, habitID, log.Date, boolValue, numberValue, log.Logged)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("failed to upsert log: %w", err)
	}
	return nil
}

func (r *PostgresLogRepository) ListByHabitID(ctx context.Context, habitID int64) ([]domain.DailyLog, error) {
	query := `
        SELECT log_date, bool_value, number_value, logged
        FROM daily_logs
        WHERE habit_id = $1
        ORDER BY log_date ASC`

	return r.list(ctx, query, habitID)
}

func (r *PostgresLogRepository) ListRange(ctx context.Context, habitID int64, from, to domain.Date) ([]domain.DailyLog, error) {
	query := `
        SELECT log_date, bool_value, number_value, logged
        FROM daily_logs
        WHERE habit_id = $1 AND log_date BETWEEN $2 AND $3
        ORDER BY log_date ASC`

	return r.list(ctx, query, habitID, from, to)
}

func (r *PostgresLogRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.DailyLog, error) {
	var rows []logRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	logs := make([]domain.DailyLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toDomain())
	}
	return logs, nil
}
