package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

var _ domain.ReflectionRepository = (*PostgresReflectionRepository)(nil)

type PostgresReflectionRepository struct {
	db *sqlx.DB
}

func NewPostgresReflectionRepository(db *sqlx.DB) *PostgresReflectionRepository {
	return &PostgresReflectionRepository{db: db}
}

func (r *PostgresReflectionRepository) Append(ctx context.Context, ref *domain.Reflection) error {
	query := `
        INSERT INTO reflections (habit_id, reflection_date, reason, suggestion, created_at)
        VALUES (:habit_id, :reflection_date, :reason, :suggestion, :created_at)
        RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"habit_id":        ref.HabitID,
		"reflection_date": ref.Date,
		"reason":          ref.Reason,
		"suggestion":      ref.Suggestion,
		"created_at":      ref.CreatedAt,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("failed to insert reflection: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&ref.ID); err != nil {
			return fmt.Errorf("failed to read reflection id: %w", err)
		}
	}
	return rows.Err()
}

func (r *PostgresReflectionRepository) ListByHabitID(ctx context.Context, habitID int64) ([]domain.Reflection, error) {
	query := `
        SELECT id, habit_id, reflection_date AS date, reason, suggestion, created_at
        FROM reflections
        WHERE habit_id = $1
        ORDER BY reflection_date ASC, id ASC`

	refs := []domain.Reflection{}
	if err := r.db.SelectContext(ctx, &refs, query, habitID); err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}
	return refs, nil
}
