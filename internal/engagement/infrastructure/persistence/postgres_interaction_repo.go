package persistence

import (
	"context"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresInteractionRepository implements domain.InteractionRepository
// using PostgreSQL.
type PostgresInteractionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInteractionRepository creates a new PostgreSQL interaction
// repository.
func NewPostgresInteractionRepository(pool *pgxpool.Pool) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{pool: pool}
}

// Append stores one interaction record.
func (r *PostgresInteractionRepository) Append(ctx context.Context, record domain.InteractionRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notification_interactions (id, habit_id, type, timestamp, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
	`, record.ID, record.HabitID, string(record.Type), record.Timestamp, record.ScheduledTime)
	return err
}

// RecentByHabit returns the most recent records for a habit, newest first.
func (r *PostgresInteractionRepository) RecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]domain.InteractionRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, habit_id, type, timestamp, scheduled_time
		FROM notification_interactions
		WHERE habit_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, habitID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InteractionRecord
	for rows.Next() {
		var (
			record domain.InteractionRecord
			typ    string
		)
		if err := rows.Scan(&record.ID, &record.HabitID, &typ, &record.Timestamp, &record.ScheduledTime); err != nil {
			return nil, err
		}
		record.Type = domain.InteractionType(typ)
		records = append(records, record)
	}
	return records, rows.Err()
}
