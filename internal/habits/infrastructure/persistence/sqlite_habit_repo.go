package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
)

// SQLiteHabitRepository implements domain.Repository using SQLite.
type SQLiteHabitRepository struct {
	db *sql.DB
}

// NewSQLiteHabitRepository creates a new SQLite habit repository.
func NewSQLiteHabitRepository(db *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{db: db}
}

// Save persists a habit and its logs (create or update).
func (r *SQLiteHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO habits (id, name, category, frequency, streak, best_streak, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			frequency = excluded.frequency,
			streak = excluded.streak,
			best_streak = excluded.best_streak,
			active = excluded.active,
			updated_at = excluded.updated_at
	`,
		habit.ID().String(),
		habit.Name(),
		string(habit.Category()),
		string(habit.Frequency()),
		habit.Streak(),
		habit.BestStreak(),
		boolToInt(habit.IsActive()),
		habit.CreatedAt().Format(time.RFC3339),
		habit.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}

	for _, l := range habit.Logs() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO habit_logs (id, habit_id, completion_date, completed, xp_earned)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`,
			l.ID().String(),
			l.HabitID().String(),
			l.CompletionDate().Format(time.RFC3339),
			boolToInt(l.IsCompleted()),
			l.XPEarned(),
		)
		if err != nil {
			return fmt.Errorf("failed to save habit log: %w", err)
		}
	}

	return tx.Commit()
}

// FindByID finds a habit by its ID, with logs ordered by completion date.
func (r *SQLiteHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, frequency, streak, best_streak, active, created_at, updated_at
		FROM habits WHERE id = ?
	`, id.String())

	habit, err := r.scanHabit(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return habit, err
}

// FindAll finds all habits.
func (r *SQLiteHabitRepository) FindAll(ctx context.Context) ([]*domain.Habit, error) {
	return r.findWhere(ctx, "1=1")
}

// FindActive finds all active habits.
func (r *SQLiteHabitRepository) FindActive(ctx context.Context) ([]*domain.Habit, error) {
	return r.findWhere(ctx, "active = 1")
}

// Delete removes a habit; its logs cascade.
func (r *SQLiteHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteHabitRepository) findWhere(ctx context.Context, where string) ([]*domain.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, frequency, streak, best_streak, active, created_at, updated_at
		FROM habits WHERE `+where+` ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		habit, err := r.scanHabit(ctx, rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteHabitRepository) scanHabit(ctx context.Context, row rowScanner) (*domain.Habit, error) {
	var (
		idStr, name, category, frequency string
		streak, bestStreak, active       int
		createdAtStr, updatedAtStr       string
	)
	if err := row.Scan(&idStr, &name, &category, &frequency, &streak, &bestStreak, &active, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid habit id %q: %w", idStr, err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	logs, err := r.loadLogs(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateHabit(
		id,
		name,
		domain.Category(category),
		domain.Frequency(frequency),
		streak,
		bestStreak,
		active == 1,
		createdAt,
		updatedAt,
		logs,
	), nil
}

func (r *SQLiteHabitRepository) loadLogs(ctx context.Context, habitID uuid.UUID) ([]*domain.HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, completion_date, completed, xp_earned
		FROM habit_logs WHERE habit_id = ? ORDER BY completion_date
	`, habitID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.HabitLog
	for rows.Next() {
		var (
			idStr, hidStr, dateStr string
			completed, xp          int
		)
		if err := rows.Scan(&idStr, &hidStr, &dateStr, &completed, &xp); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log id %q: %w", idStr, err)
		}
		hid, err := uuid.Parse(hidStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log habit id %q: %w", hidStr, err)
		}
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid completion_date: %w", err)
		}

		logs = append(logs, domain.RehydrateHabitLog(id, hid, date, completed == 1, xp))
	}
	return logs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
