package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for habit persistence.
type Repository interface {
	// Save persists a habit (create or update).
	Save(ctx context.Context, habit *Habit) error

	// FindByID finds a habit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)

	// FindAll finds all habits.
	FindAll(ctx context.Context) ([]*Habit, error)

	// FindActive finds all active habits.
	FindActive(ctx context.Context) ([]*Habit, error)

	// Delete removes a habit and its logs.
	Delete(ctx context.Context, id uuid.UUID) error
}
