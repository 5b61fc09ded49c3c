package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/google/uuid"
)

// Feedback adjustment knobs. Values are carried over from production tuning
// and are not known to be optimal.
const (
	dismissedShiftMinutes = 15  // later: the reminder came too early
	ignoredShiftMinutes   = -15 // earlier: the reminder came too late
	snoozeDampenFactor    = 0.8

	rebalanceHighSuccess = 0.8
	rebalanceLowSuccess  = 0.3
	rebalanceEaseFactor  = 0.7
	rebalanceBoostFactor = 1.3
)

// AdaptationTracker ingests notification feedback and nudges future timing
// and frequency per habit. Mutation is serialized per habit ID; habits never
// share mutable state.
type AdaptationTracker struct {
	store        domain.BehaviorStore
	biasRepo     domain.BiasRepository
	interactions domain.InteractionRepository
	logger       *slog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewAdaptationTracker creates a new tracker.
func NewAdaptationTracker(
	store domain.BehaviorStore,
	biasRepo domain.BiasRepository,
	interactions domain.InteractionRepository,
	logger *slog.Logger,
) *AdaptationTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdaptationTracker{
		store:        store,
		biasRepo:     biasRepo,
		interactions: interactions,
		logger:       logger,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// habitLock returns the mutex serializing bias writes for one habit.
func (t *AdaptationTracker) habitLock(habitID uuid.UUID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[habitID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[habitID] = l
	}
	return l
}

// RecordInteraction appends an interaction record. Storage errors are logged
// and swallowed: losing one feedback event degrades adaptation, it must not
// crash delivery.
func (t *AdaptationTracker) RecordInteraction(ctx context.Context, habitID uuid.UUID, typ domain.InteractionType, timestamp, scheduledTime time.Time) {
	record := domain.NewInteractionRecord(habitID, typ, timestamp, scheduledTime)
	if err := t.interactions.Append(ctx, record); err != nil {
		t.logger.Warn("failed to record interaction, continuing",
			"habit_id", habitID,
			"type", typ,
			"error", err,
		)
	}
}

// ApplyFeedback transitions the habit's timing bias based on how the user
// responded to the last notification.
func (t *AdaptationTracker) ApplyFeedback(ctx context.Context, habitID uuid.UUID, typ domain.InteractionType) error {
	lock := t.habitLock(habitID)
	lock.Lock()
	defer lock.Unlock()

	bias, found, err := t.biasRepo.Get(ctx, habitID)
	if err != nil {
		return fmt.Errorf("failed to load timing bias: %w", err)
	}
	if !found {
		bias = domain.NewTimingBias(habitID)
	}

	switch typ {
	case domain.InteractionDismissed:
		bias.ShiftOffset(dismissedShiftMinutes)
	case domain.InteractionIgnored:
		bias.ShiftOffset(ignoredShiftMinutes)
	case domain.InteractionCompleted:
		// Reinforce: the current timing works, leave the offset alone.
	case domain.InteractionSnoozed:
		bias.ScaleFrequency(snoozeDampenFactor)
	default:
		return fmt.Errorf("unknown interaction type %q", typ)
	}

	if err := t.biasRepo.Save(ctx, bias); err != nil {
		return fmt.Errorf("failed to save timing bias: %w", err)
	}

	t.logger.Debug("timing bias updated",
		"habit_id", habitID,
		"type", typ,
		"offset_minutes", bias.HourOffsetMinutes,
		"frequency_multiplier", bias.FrequencyMultiplier,
	)

	return nil
}

// RebalanceFrequencies is an idempotent batch job over all active habits:
// mastered habits get less nagging, struggling habits get more support.
// Safe to re-run on a timer.
func (t *AdaptationTracker) RebalanceFrequencies(ctx context.Context) error {
	habits, err := t.store.FetchActiveHabits(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch active habits: %w", err)
	}

	for _, habit := range habits {
		if err := t.rebalanceHabit(ctx, habit.ID()); err != nil {
			t.logger.Warn("failed to rebalance habit, continuing",
				"habit_id", habit.ID(),
				"error", err,
			)
		}
	}

	return nil
}

func (t *AdaptationTracker) rebalanceHabit(ctx context.Context, habitID uuid.UUID) error {
	logs, err := t.store.FetchLogs(ctx, habitID)
	if err != nil {
		return fmt.Errorf("failed to fetch logs: %w", err)
	}
	if len(logs) == 0 {
		return nil
	}

	now := time.Now()
	recentRate := completionRatePerDay(logs, now.AddDate(0, 0, -recentWindowDays), now)

	var factor float64
	switch {
	case recentRate > rebalanceHighSuccess:
		factor = rebalanceEaseFactor
	case recentRate < rebalanceLowSuccess:
		factor = rebalanceBoostFactor
	default:
		return nil
	}

	lock := t.habitLock(habitID)
	lock.Lock()
	defer lock.Unlock()

	bias, found, err := t.biasRepo.Get(ctx, habitID)
	if err != nil {
		return fmt.Errorf("failed to load timing bias: %w", err)
	}
	if !found {
		bias = domain.NewTimingBias(habitID)
	}

	bias.ScaleFrequency(factor)

	return t.biasRepo.Save(ctx, bias)
}

// BiasFor returns the habit's current timing bias, neutral when none exists
// yet or the store fails.
func (t *AdaptationTracker) BiasFor(ctx context.Context, habitID uuid.UUID) domain.TimingBias {
	bias, found, err := t.biasRepo.Get(ctx, habitID)
	if err != nil {
		t.logger.Warn("failed to load timing bias, using neutral",
			"habit_id", habitID,
			"error", err,
		)
		return domain.NewTimingBias(habitID)
	}
	if !found {
		return domain.NewTimingBias(habitID)
	}
	return bias
}
