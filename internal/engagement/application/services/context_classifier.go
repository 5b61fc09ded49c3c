package services

import (
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
)

const (
	recentWindowDays       = 7
	atRiskRateThreshold    = 0.3
	lowEngagementThreshold = 0.5
	lowEngagementMinLogs   = 14
	milestoneProximityDays = 3
	optimalWindowStartHour = 9
	optimalWindowEndHour   = 11
)

// ContextClassifier labels a habit's current situation. The evaluation order
// is load-bearing: urgency outranks celebration, celebration outranks
// engagement concerns.
type ContextClassifier struct {
	now func() time.Time
}

// NewContextClassifier creates a new classifier.
func NewContextClassifier() *ContextClassifier {
	return &ContextClassifier{now: time.Now}
}

// Classify returns exactly one context for the habit. recentLogs are the
// habit's logs from the last 7 days; totalLogs is the full history size.
func (c *ContextClassifier) Classify(habit *habitsDomain.Habit, recentLogs []*habitsDomain.HabitLog, totalLogs int) domain.HabitContext {
	recentRate := recentCompletionRate(recentLogs, c.now())

	if habit.Streak() > 0 && recentRate < atRiskRateThreshold {
		return domain.ContextStreakAtRisk
	}

	if next, ok := domain.NextMilestone(habit.Streak()); ok {
		if next.StreakCount-habit.Streak() <= milestoneProximityDays {
			return domain.ContextMilestoneApproaching
		}
	}

	if recentRate < lowEngagementThreshold && totalLogs > lowEngagementMinLogs {
		return domain.ContextLowEngagement
	}

	hour := c.now().Hour()
	if hour >= optimalWindowStartHour && hour <= optimalWindowEndHour {
		return domain.ContextOptimalTime
	}

	return domain.ContextNormal
}

// recentCompletionRate is completed days / window days over the last 7 days.
func recentCompletionRate(recentLogs []*habitsDomain.HabitLog, now time.Time) float64 {
	return completionRatePerDay(recentLogs, now.AddDate(0, 0, -recentWindowDays), now)
}
