// Package store adapts the habits repository to the engagement engine's
// read-side interface.
package store

import (
	"context"

	engagementDomain "github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
)

const interactionFetchLimit = 100

// RepositoryStore implements engagement.BehaviorStore over the habit
// repository and the interaction log.
type RepositoryStore struct {
	habits       habitsDomain.Repository
	interactions engagementDomain.InteractionRepository
}

// NewRepositoryStore creates a new adapter.
func NewRepositoryStore(habits habitsDomain.Repository, interactions engagementDomain.InteractionRepository) *RepositoryStore {
	return &RepositoryStore{habits: habits, interactions: interactions}
}

// FetchActiveHabits returns all active habits.
func (s *RepositoryStore) FetchActiveHabits(ctx context.Context) ([]*habitsDomain.Habit, error) {
	return s.habits.FindActive(ctx)
}

// FetchLogs returns the habit's full log history, ordered by completion date.
func (s *RepositoryStore) FetchLogs(ctx context.Context, habitID uuid.UUID) ([]*habitsDomain.HabitLog, error) {
	habit, err := s.habits.FindByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, nil
	}
	return habit.Logs(), nil
}

// FetchInteractions returns recent notification interactions for the habit.
func (s *RepositoryStore) FetchInteractions(ctx context.Context, habitID uuid.UUID) ([]engagementDomain.InteractionRecord, error) {
	return s.interactions.RecentByHabit(ctx, habitID, interactionFetchLimit)
}
