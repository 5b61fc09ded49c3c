package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/google/uuid"
)

// SQLiteBiasRepository implements domain.BiasRepository using SQLite.
type SQLiteBiasRepository struct {
	db *sql.DB
}

// NewSQLiteBiasRepository creates a new SQLite bias repository.
func NewSQLiteBiasRepository(db *sql.DB) *SQLiteBiasRepository {
	return &SQLiteBiasRepository{db: db}
}

// Get loads the bias for a habit. The boolean is false when none exists yet.
func (r *SQLiteBiasRepository) Get(ctx context.Context, habitID uuid.UUID) (domain.TimingBias, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT habit_id, hour_offset_minutes, frequency_multiplier, updated_at
		FROM timing_biases WHERE habit_id = ?
	`, habitID.String())

	bias, err := scanBias(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TimingBias{}, false, nil
	}
	if err != nil {
		return domain.TimingBias{}, false, err
	}
	return bias, true, nil
}

// Save upserts a habit's bias.
func (r *SQLiteBiasRepository) Save(ctx context.Context, bias domain.TimingBias) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timing_biases (habit_id, hour_offset_minutes, frequency_multiplier, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(habit_id) DO UPDATE SET
			hour_offset_minutes = excluded.hour_offset_minutes,
			frequency_multiplier = excluded.frequency_multiplier,
			updated_at = excluded.updated_at
	`,
		bias.HabitID.String(),
		bias.HourOffsetMinutes,
		bias.FrequencyMultiplier,
		bias.UpdatedAt.Format(time.RFC3339),
	)
	return err
}

// All returns every stored bias.
func (r *SQLiteBiasRepository) All(ctx context.Context) ([]domain.TimingBias, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, hour_offset_minutes, frequency_multiplier, updated_at
		FROM timing_biases
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var biases []domain.TimingBias
	for rows.Next() {
		bias, err := scanBias(rows)
		if err != nil {
			return nil, err
		}
		biases = append(biases, bias)
	}
	return biases, rows.Err()
}

// Delete removes a habit's bias. Called when the habit itself is deleted.
func (r *SQLiteBiasRepository) Delete(ctx context.Context, habitID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timing_biases WHERE habit_id = ?`, habitID.String())
	return err
}

type biasScanner interface {
	Scan(dest ...any) error
}

func scanBias(row biasScanner) (domain.TimingBias, error) {
	var (
		idStr, updatedAtStr string
		offset              int
		multiplier          float64
	)
	if err := row.Scan(&idStr, &offset, &multiplier, &updatedAtStr); err != nil {
		return domain.TimingBias{}, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return domain.TimingBias{}, fmt.Errorf("invalid habit id %q: %w", idStr, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return domain.TimingBias{}, fmt.Errorf("invalid updated_at: %w", err)
	}

	return domain.TimingBias{
		HabitID:             id,
		HourOffsetMinutes:   offset,
		FrequencyMultiplier: multiplier,
		UpdatedAt:           updatedAt,
	}, nil
}
