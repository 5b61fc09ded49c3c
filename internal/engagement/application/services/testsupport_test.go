package services

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
)

// stubStore is an in-memory BehaviorStore for tests.
type stubStore struct {
	habits    []*habitsDomain.Habit
	logs      map[uuid.UUID][]*habitsDomain.HabitLog
	habitsErr error
	logsErr   error
}

func newStubStore() *stubStore {
	return &stubStore{logs: make(map[uuid.UUID][]*habitsDomain.HabitLog)}
}

func (s *stubStore) FetchActiveHabits(ctx context.Context) ([]*habitsDomain.Habit, error) {
	if s.habitsErr != nil {
		return nil, s.habitsErr
	}
	return s.habits, nil
}

func (s *stubStore) FetchLogs(ctx context.Context, habitID uuid.UUID) ([]*habitsDomain.HabitLog, error) {
	if s.logsErr != nil {
		return nil, s.logsErr
	}
	return s.logs[habitID], nil
}

func (s *stubStore) FetchInteractions(ctx context.Context, habitID uuid.UUID) ([]domain.InteractionRecord, error) {
	return nil, nil
}

// stubBiasRepo is an in-memory BiasRepository for tests.
type stubBiasRepo struct {
	mu      sync.Mutex
	biases  map[uuid.UUID]domain.TimingBias
	getErr  error
	saveErr error
}

func newStubBiasRepo() *stubBiasRepo {
	return &stubBiasRepo{biases: make(map[uuid.UUID]domain.TimingBias)}
}

func (r *stubBiasRepo) Get(ctx context.Context, habitID uuid.UUID) (domain.TimingBias, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return domain.TimingBias{}, false, r.getErr
	}
	bias, ok := r.biases[habitID]
	return bias, ok, nil
}

func (r *stubBiasRepo) Save(ctx context.Context, bias domain.TimingBias) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.biases[bias.HabitID] = bias
	return nil
}

func (r *stubBiasRepo) All(ctx context.Context) ([]domain.TimingBias, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TimingBias, 0, len(r.biases))
	for _, b := range r.biases {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubBiasRepo) Delete(ctx context.Context, habitID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.biases, habitID)
	return nil
}

// stubInteractionRepo is an in-memory InteractionRepository for tests.
type stubInteractionRepo struct {
	mu        sync.Mutex
	records   []domain.InteractionRecord
	appendErr error
}

func newStubInteractionRepo() *stubInteractionRepo {
	return &stubInteractionRepo{}
}

func (r *stubInteractionRepo) Append(ctx context.Context, record domain.InteractionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *stubInteractionRepo) RecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]domain.InteractionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.InteractionRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].HabitID == habitID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func completedLog(habitID uuid.UUID, at time.Time) *habitsDomain.HabitLog {
	return habitsDomain.RehydrateHabitLog(uuid.New(), habitID, at, true, 10)
}

func missedLog(habitID uuid.UUID, at time.Time) *habitsDomain.HabitLog {
	return habitsDomain.RehydrateHabitLog(uuid.New(), habitID, at, false, 0)
}

func rehydratedHabit(name string, frequency habitsDomain.Frequency, streak, bestStreak int) *habitsDomain.Habit {
	created := time.Now().AddDate(0, -3, 0)
	return habitsDomain.RehydrateHabit(
		uuid.New(), name, habitsDomain.CategoryHealth, frequency,
		streak, bestStreak, true, created, created, nil,
	)
}
