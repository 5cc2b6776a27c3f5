package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitRow struct {
	ID           int64           `db:"id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	Polarity     string          `db:"polarity"`
	Mode         string          `db:"mode"`
	Unit         sql.NullString  `db:"unit"`
	Goal         sql.NullFloat64 `db:"goal"`
	MissedStreak int             `db:"missed_streak"`
	Version      int             `db:"version"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
	DeletedAt    sql.NullTime    `db:"deleted_at"`
}

const habitColumns = `id, user_id, name, polarity, mode, unit, goal, missed_streak, version, created_at, updated_at, deleted_at`

func (row habitRow) toDomain() *domain.Habit {
	h := &domain.Habit{
		ID:           row.ID,
		UserID:       row.UserID,
		Name:         row.Name,
		Polarity:     domain.Polarity(row.Polarity),
		Mode:         domain.TrackingMode(row.Mode),
		MissedStreak: row.MissedStreak,
		Logs:         []domain.DailyLog{},
		Reflections:  []domain.Reflection{},
		Version:      row.Version,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.Unit.Valid {
		u := row.Unit.String
		h.Unit = &u
	}
	if row.Goal.Valid {
		g := row.Goal.Float64
		h.Goal = &g
	}
	if row.DeletedAt.Valid {
		d := row.DeletedAt.Time
		h.DeletedAt = &d
	}
	return h
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (user_id, name, polarity, mode, unit, goal, missed_streak, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)
        RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		h.UserID, h.Name, string(h.Polarity), string(h.Mode), h.Unit, h.Goal, h.MissedStreak,
		h.CreatedAt, h.UpdatedAt,
	).Scan(&h.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown user %s", domain.ErrUserNotFound, h.UserID)
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	h.Version = 1
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id int64) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND deleted_at IS NULL`

	var row habitRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY id ASC`

	var rows []habitRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, row.toDomain())
	}
	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            name=$1, unit=$2, goal=$3,
            updated_at=NOW(), version = version + 1
        WHERE id=$4 AND version=$5 AND deleted_at IS NULL
        RETURNING version, updated_at`

	var newVersion int
	var newUpdatedAt time.Time

	err := r.db.QueryRowContext(ctx, query, h.Name, h.Unit, h.Goal, h.ID, h.Version).Scan(&newVersion, &newUpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			existsQuery := `SELECT count(*) FROM habits WHERE id = $1 AND deleted_at IS NULL`
			var count int
			if checkErr := r.db.QueryRowContext(ctx, existsQuery, h.ID).Scan(&count); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}

			if count == 0 {
				return domain.ErrHabitNotFound
			}
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	h.Version = newVersion
	h.UpdatedAt = newUpdatedAt

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id int64) error {
	query := `
        UPDATE habits
        SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
        WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, query, id)
}

func (r *PostgresHabitRepository) UpdateMissedStreak(ctx context.Context, id int64, streak int) error {
	query := `UPDATE habits SET missed_streak = $1 WHERE id = $2 AND deleted_at IS NULL`

	return r.execOne(ctx, query, streak, id)
}

func (r *PostgresHabitRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("habit update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
