package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	engagementDomain "github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/felixgeelhaar/nudge/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// HabitService handles habit commands: persist the aggregate, then publish
// its domain events. Publishing is best-effort; a dead broker never loses
// the write.
type HabitService struct {
	repo   domain.Repository
	events eventbus.Publisher
	logger *slog.Logger
}

// NewHabitService creates a new habit service.
func NewHabitService(repo domain.Repository, events eventbus.Publisher, logger *slog.Logger) *HabitService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HabitService{repo: repo, events: events, logger: logger}
}

// Create creates and persists a new habit.
func (s *HabitService) Create(ctx context.Context, name string, category domain.Category, frequency domain.Frequency) (*domain.Habit, error) {
	habit, err := domain.NewHabit(name, category, frequency)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to save habit: %w", err)
	}

	s.publishEvents(ctx, habit)
	return habit, nil
}

// LogCompletion records a completion for a date. Crossing a streak milestone
// emits an additional event.
func (s *HabitService) LogCompletion(ctx context.Context, habitID uuid.UUID, completedAt time.Time, xpEarned int) (*domain.Habit, error) {
	habit, err := s.load(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if _, err := habit.LogCompletion(completedAt, xpEarned); err != nil {
		return nil, err
	}

	for _, milestone := range engagementDomain.Milestones() {
		if habit.Streak() == milestone.StreakCount {
			habit.AddDomainEvent(domain.NewHabitMilestoneReached(habit, milestone.StreakCount, milestone.Title))
			break
		}
	}

	if err := s.repo.Save(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to save habit: %w", err)
	}

	s.publishEvents(ctx, habit)
	return habit, nil
}

// LogMiss records a missed day, resetting the streak.
func (s *HabitService) LogMiss(ctx context.Context, habitID uuid.UUID, date time.Time) (*domain.Habit, error) {
	habit, err := s.load(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if _, err := habit.LogMiss(date); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to save habit: %w", err)
	}

	s.publishEvents(ctx, habit)
	return habit, nil
}

// Deactivate takes a habit out of scheduling.
func (s *HabitService) Deactivate(ctx context.Context, habitID uuid.UUID) (*domain.Habit, error) {
	habit, err := s.load(ctx, habitID)
	if err != nil {
		return nil, err
	}

	habit.Deactivate()

	if err := s.repo.Save(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to save habit: %w", err)
	}

	s.publishEvents(ctx, habit)
	return habit, nil
}

func (s *HabitService) load(ctx context.Context, habitID uuid.UUID) (*domain.Habit, error) {
	habit, err := s.repo.FindByID(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habit: %w", err)
	}
	if habit == nil {
		return nil, fmt.Errorf("habit %s not found", habitID)
	}
	return habit, nil
}

func (s *HabitService) publishEvents(ctx context.Context, habit *domain.Habit) {
	for _, event := range habit.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Warn("failed to marshal domain event",
				"routing_key", event.RoutingKey(),
				"error", err,
			)
			continue
		}
		if err := s.events.Publish(ctx, event.RoutingKey(), payload); err != nil {
			s.logger.Warn("failed to publish domain event",
				"routing_key", event.RoutingKey(),
				"error", err,
			)
		}
	}
	habit.ClearDomainEvents()
}
