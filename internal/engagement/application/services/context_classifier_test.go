package services

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/stretchr/testify/assert"
)

func classifierAt(now time.Time) *ContextClassifier {
	c := NewContextClassifier()
	c.now = func() time.Time { return now }
	return c
}

// lastDaysCompleted returns completed logs for the n days before now,
// starting yesterday.
func lastDaysCompleted(habit *habitsDomain.Habit, now time.Time, n int) []*habitsDomain.HabitLog {
	var logs []*habitsDomain.HabitLog
	for i := 1; i <= n; i++ {
		logs = append(logs, completedLog(habit.ID(), now.AddDate(0, 0, -i)))
	}
	return logs
}

func TestClassify_StreakAtRisk(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 5, 5)

	// Streak on record but nothing completed this week.
	got := classifierAt(now).Classify(habit, nil, 20)

	assert.Equal(t, domain.ContextStreakAtRisk, got)
}

func TestClassify_RiskOutranksMilestone(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)
	// Streak 5 is two days short of the week milestone, and at risk.
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 5, 5)

	got := classifierAt(now).Classify(habit, nil, 20)

	assert.Equal(t, domain.ContextStreakAtRisk, got)
}

func TestClassify_MilestoneApproaching(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 5, 5)
	recent := lastDaysCompleted(habit, now, 5)

	got := classifierAt(now).Classify(habit, recent, 20)

	assert.Equal(t, domain.ContextMilestoneApproaching, got)
}

func TestClassify_FreshHabitApproachesFirstMilestone(t *testing.T) {
	// With no history at all, the first milestone is three days away no
	// matter the hour.
	for _, hour := range []int{3, 10, 22} {
		now := time.Date(2025, 3, 15, hour, 0, 0, 0, time.UTC)
		habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 0, 0)

		got := classifierAt(now).Classify(habit, nil, 0)

		assert.Equal(t, domain.ContextMilestoneApproaching, got, "hour %d", hour)
	}
}

func TestClassify_LowEngagement(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)
	// Streak 8 sits well short of the next milestone; three completions in a
	// week keeps the streak alive but trails the engagement bar.
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 8, 8)
	recent := lastDaysCompleted(habit, now, 3)

	got := classifierAt(now).Classify(habit, recent, 20)

	assert.Equal(t, domain.ContextLowEngagement, got)
}

func TestClassify_LowEngagementNeedsHistory(t *testing.T) {
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, time.UTC)
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 8, 8)
	recent := lastDaysCompleted(habit, now, 3)

	// Same rate, but too few total logs to call it disengagement.
	got := classifierAt(now).Classify(habit, recent, 10)

	assert.Equal(t, domain.ContextNormal, got)
}

func TestClassify_OptimalTimeWindow(t *testing.T) {
	habit := rehydratedHabit("Run", habitsDomain.FrequencyDaily, 8, 8)

	tests := []struct {
		hour int
		want domain.HabitContext
	}{
		{8, domain.ContextNormal},
		{9, domain.ContextOptimalTime},
		{10, domain.ContextOptimalTime},
		{11, domain.ContextOptimalTime},
		{12, domain.ContextNormal},
		{15, domain.ContextNormal},
	}

	for _, tc := range tests {
		now := time.Date(2025, 3, 15, tc.hour, 0, 0, 0, time.UTC)
		recent := lastDaysCompleted(habit, now, 6)

		got := classifierAt(now).Classify(habit, recent, 10)

		assert.Equal(t, tc.want, got, "hour %d", tc.hour)
	}
}
