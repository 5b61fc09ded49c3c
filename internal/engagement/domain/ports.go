package domain

import (
	"context"

	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
)

// BehaviorStore is the read side the engine consumes. Implementations may
// return empty slices; callers never assume non-empty results.
type BehaviorStore interface {
	FetchActiveHabits(ctx context.Context) ([]*habitsDomain.Habit, error)
	FetchLogs(ctx context.Context, habitID uuid.UUID) ([]*habitsDomain.HabitLog, error)
	FetchInteractions(ctx context.Context, habitID uuid.UUID) ([]InteractionRecord, error)
}

// DeliveryChannel abstracts the external notification delivery mechanism.
// Schedule supersedes any pending instruction with the same identifier.
type DeliveryChannel interface {
	Schedule(ctx context.Context, identifier string, content NotificationContent, trigger Trigger) error
	Cancel(ctx context.Context, identifier string) error
}

// BiasRepository persists per-habit timing biases.
type BiasRepository interface {
	Get(ctx context.Context, habitID uuid.UUID) (TimingBias, bool, error)
	Save(ctx context.Context, bias TimingBias) error
	All(ctx context.Context) ([]TimingBias, error)
	Delete(ctx context.Context, habitID uuid.UUID) error
}

// InteractionRepository appends notification interaction records.
type InteractionRepository interface {
	Append(ctx context.Context, record InteractionRecord) error
	RecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]InteractionRecord, error)
}
