package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/google/uuid"
)

// SQLiteInteractionRepository implements domain.InteractionRepository using
// SQLite. Records are append-only; nothing here deletes.
type SQLiteInteractionRepository struct {
	db *sql.DB
}

// NewSQLiteInteractionRepository creates a new SQLite interaction repository.
func NewSQLiteInteractionRepository(db *sql.DB) *SQLiteInteractionRepository {
	return &SQLiteInteractionRepository{db: db}
}

// Append stores one interaction record.
func (r *SQLiteInteractionRepository) Append(ctx context.Context, record domain.InteractionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_interactions (id, habit_id, type, timestamp, scheduled_time)
		VALUES (?, ?, ?, ?, ?)
	`,
		record.ID.String(),
		record.HabitID.String(),
		string(record.Type),
		record.Timestamp.Format(time.RFC3339),
		record.ScheduledTime.Format(time.RFC3339),
	)
	return err
}

// RecentByHabit returns the most recent records for a habit, newest first.
func (r *SQLiteInteractionRepository) RecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]domain.InteractionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, type, timestamp, scheduled_time
		FROM notification_interactions
		WHERE habit_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, habitID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InteractionRecord
	for rows.Next() {
		var (
			idStr, hidStr, typ, tsStr, schedStr string
		)
		if err := rows.Scan(&idStr, &hidStr, &typ, &tsStr, &schedStr); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid interaction id %q: %w", idStr, err)
		}
		hid, err := uuid.Parse(hidStr)
		if err != nil {
			return nil, fmt.Errorf("invalid habit id %q: %w", hidStr, err)
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp: %w", err)
		}
		sched, err := time.Parse(time.RFC3339, schedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_time: %w", err)
		}

		records = append(records, domain.InteractionRecord{
			ID:            id,
			HabitID:       hid,
			Type:          domain.InteractionType(typ),
			Timestamp:     ts,
			ScheduledTime: sched,
		})
	}
	return records, rows.Err()
}
