package persistence

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBiasRepository implements domain.BiasRepository using PostgreSQL.
// Used by server deployments where the worker owns the engagement state.
type PostgresBiasRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBiasRepository creates a new PostgreSQL bias repository.
func NewPostgresBiasRepository(pool *pgxpool.Pool) *PostgresBiasRepository {
	return &PostgresBiasRepository{pool: pool}
}

// Get loads the bias for a habit. The boolean is false when none exists yet.
func (r *PostgresBiasRepository) Get(ctx context.Context, habitID uuid.UUID) (domain.TimingBias, bool, error) {
	var bias domain.TimingBias
	err := r.pool.QueryRow(ctx, `
		SELECT habit_id, hour_offset_minutes, frequency_multiplier, updated_at
		FROM timing_biases WHERE habit_id = $1
	`, habitID).Scan(&bias.HabitID, &bias.HourOffsetMinutes, &bias.FrequencyMultiplier, &bias.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TimingBias{}, false, nil
	}
	if err != nil {
		return domain.TimingBias{}, false, err
	}
	return bias, true, nil
}

// Save upserts a habit's bias.
func (r *PostgresBiasRepository) Save(ctx context.Context, bias domain.TimingBias) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO timing_biases (habit_id, hour_offset_minutes, frequency_multiplier, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (habit_id) DO UPDATE SET
			hour_offset_minutes = EXCLUDED.hour_offset_minutes,
			frequency_multiplier = EXCLUDED.frequency_multiplier,
			updated_at = EXCLUDED.updated_at
	`, bias.HabitID, bias.HourOffsetMinutes, bias.FrequencyMultiplier, bias.UpdatedAt)
	return err
}

// All returns every stored bias.
func (r *PostgresBiasRepository) All(ctx context.Context) ([]domain.TimingBias, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT habit_id, hour_offset_minutes, frequency_multiplier, updated_at
		FROM timing_biases
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var biases []domain.TimingBias
	for rows.Next() {
		var bias domain.TimingBias
		if err := rows.Scan(&bias.HabitID, &bias.HourOffsetMinutes, &bias.FrequencyMultiplier, &bias.UpdatedAt); err != nil {
			return nil, err
		}
		biases = append(biases, bias)
	}
	return biases, rows.Err()
}

// Delete removes a habit's bias.
func (r *PostgresBiasRepository) Delete(ctx context.Context, habitID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM timing_biases WHERE habit_id = $1`, habitID)
	return err
}
