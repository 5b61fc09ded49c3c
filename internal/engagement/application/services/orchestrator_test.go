package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/felixgeelhaar/nudge/internal/engagement/infrastructure/delivery"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Saturday afternoon; year day 74 so the thinning check is stable.
var orchestratorNow = time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)

type orchestratorFixture struct {
	store        *stubStore
	biases       *stubBiasRepo
	interactions *stubInteractionRepo
	channel      *delivery.MemoryChannel
	orchestrator *Orchestrator
}

func newOrchestratorFixture() *orchestratorFixture {
	store := newStubStore()
	biases := newStubBiasRepo()
	interactions := newStubInteractionRepo()
	channel := delivery.NewMemoryChannel()
	tracker := NewAdaptationTracker(store, biases, interactions, nil)

	o := NewOrchestrator(store, channel, tracker, nil)
	o.now = func() time.Time { return orchestratorNow }
	o.classifier.now = o.now
	o.analyzer.now = o.now

	return &orchestratorFixture{
		store:        store,
		biases:       biases,
		interactions: interactions,
		channel:      channel,
		orchestrator: o,
	}
}

// steadyHabit is a habit on a healthy 8-day run: no risk, no nearby
// milestone, so it takes the standard reminder path.
func (f *orchestratorFixture) steadyHabit(name string) *habitsDomain.Habit {
	habit := rehydratedHabit(name, habitsDomain.FrequencyDaily, 8, 8)
	f.store.habits = append(f.store.habits, habit)
	for i := 1; i <= 6; i++ {
		f.store.logs[habit.ID()] = append(f.store.logs[habit.ID()],
			completedLog(habit.ID(), orchestratorNow.AddDate(0, 0, -i)))
	}
	return habit
}

func TestRunSchedulingPass_SchedulesReminder(t *testing.T) {
	f := newOrchestratorFixture()
	habit := f.steadyHabit("Meditate")

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))

	pending, ok := f.channel.PendingFor(domain.ReminderIdentifier(habit.ID()))
	require.True(t, ok)
	assert.True(t, pending.Trigger.Repeating)
	assert.NotEmpty(t, pending.Content.Title)
	assert.Equal(t, "reminder", pending.Content.Metadata["kind"])
}

func TestRunSchedulingPass_Idempotent(t *testing.T) {
	f := newOrchestratorFixture()
	f.steadyHabit("Meditate")

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))
	first := f.channel.Pending()
	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))
	second := f.channel.Pending()

	// The second pass supersedes instead of stacking.
	assert.Len(t, second, len(first))
	assert.Len(t, second, 1)
}

func TestRunSchedulingPass_FreshHabitGetsMilestoneNudge(t *testing.T) {
	f := newOrchestratorFixture()
	habit, err := habitsDomain.NewHabit("Run", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)
	f.store.habits = append(f.store.habits, habit)

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))

	pending, ok := f.channel.PendingFor(domain.MilestoneIdentifier(habit.ID(), 3))
	require.True(t, ok)
	assert.Equal(t, "milestone", pending.Content.Metadata["kind"])
	assert.False(t, pending.Trigger.Repeating)
}

func TestRunSchedulingPass_AtRiskStreakGetsUrgentNudge(t *testing.T) {
	f := newOrchestratorFixture()
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 5, 5)
	f.store.habits = append(f.store.habits, habit)
	// History exists, but nothing recent.
	f.store.logs[habit.ID()] = []*habitsDomain.HabitLog{
		completedLog(habit.ID(), orchestratorNow.AddDate(0, 0, -10)),
	}

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))

	pending, ok := f.channel.PendingFor(domain.UrgentIdentifier(habit.ID()))
	require.True(t, ok)
	assert.Equal(t, domain.PriorityTimeSensitive, pending.Content.Priority)
	assert.Equal(t, urgentDelay, pending.Trigger.Delay)
}

func TestRunSchedulingPass_BrokenStreakGetsRecoveryNudge(t *testing.T) {
	f := newOrchestratorFixture()
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 0, 8)
	f.store.habits = append(f.store.habits, habit)
	f.store.logs[habit.ID()] = []*habitsDomain.HabitLog{
		completedLog(habit.ID(), orchestratorNow.AddDate(0, 0, -10)),
		missedLog(habit.ID(), orchestratorNow.AddDate(0, 0, -2)),
	}

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))

	pending, ok := f.channel.PendingFor(domain.RecoveryIdentifier(habit.ID()))
	require.True(t, ok)
	assert.Equal(t, "recovery", pending.Content.Metadata["kind"])
	assert.Equal(t, recoveryDelay, pending.Trigger.Delay)
}

func TestRunSchedulingPass_InactiveHabitIsSkipped(t *testing.T) {
	f := newOrchestratorFixture()
	habit := f.steadyHabit("Meditate")
	habit.Deactivate()

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))

	assert.Empty(t, f.channel.Pending())
}

func TestRunSchedulingPass_StoreFailureIsAnEmptyPass(t *testing.T) {
	f := newOrchestratorFixture()
	f.store.habitsErr = errors.New("connection refused")

	assert.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))
	assert.Empty(t, f.channel.Pending())
}

func TestRunSchedulingPass_DampenedHabitSkipsAndCancels(t *testing.T) {
	f := newOrchestratorFixture()
	habit := f.steadyHabit("Meditate")

	bias := domain.NewTimingBias(habit.ID())
	bias.FrequencyMultiplier = 0.3 // year day 74: 4 < 3 fails, today is skipped
	require.NoError(t, f.biases.Save(context.Background(), bias))

	// A stale reminder from an earlier pass must be cleared on skip.
	require.NoError(t, f.channel.Schedule(context.Background(),
		domain.ReminderIdentifier(habit.ID()), domain.NotificationContent{}, domain.Trigger{}))

	require.NoError(t, f.orchestrator.RunSchedulingPass(context.Background()))

	_, ok := f.channel.PendingFor(domain.ReminderIdentifier(habit.ID()))
	assert.False(t, ok)
}

func TestDeliverToday(t *testing.T) {
	day74 := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	day72 := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	assert.True(t, deliverToday(1.0, day74))
	assert.True(t, deliverToday(2.0, day74))
	assert.False(t, deliverToday(0.3, day74))
	assert.True(t, deliverToday(0.3, day72))
	// The decision is stable within a day.
	assert.Equal(t, deliverToday(0.5, day74), deliverToday(0.5, day74.Add(10*time.Hour)))
}

func TestOnInteraction(t *testing.T) {
	f := newOrchestratorFixture()
	habit := f.steadyHabit("Meditate")

	err := f.orchestrator.OnInteraction(context.Background(), habit.ID(),
		domain.InteractionDismissed, orchestratorNow, orchestratorNow.Add(-time.Hour))

	require.NoError(t, err)
	require.Len(t, f.interactions.records, 1)
	bias, found, _ := f.biases.Get(context.Background(), habit.ID())
	require.True(t, found)
	assert.Equal(t, 15, bias.HourOffsetMinutes)
}

func TestOnInteraction_InvalidType(t *testing.T) {
	f := newOrchestratorFixture()
	habit := f.steadyHabit("Meditate")

	err := f.orchestrator.OnInteraction(context.Background(), habit.ID(),
		domain.InteractionType("shouted"), orchestratorNow, orchestratorNow)

	assert.Error(t, err)
}
