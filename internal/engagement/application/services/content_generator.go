package services

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
)

// titleRule pairs a guard with a title template. Rules are evaluated in
// order and the first match wins; several guards can structurally overlap,
// so the order is a contract covered by tests.
type titleRule struct {
	matches func(streak, probability int) bool
	render  func(habit *habitsDomain.Habit, streak int) string
}

var titleRules = []titleRule{
	{
		matches: func(streak, probability int) bool { return streak >= 21 && probability > 80 },
		render: func(h *habitsDomain.Habit, streak int) string {
			return fmt.Sprintf("🔥 %d days strong! Keep your %s streak alive", streak, h.Name())
		},
	},
	{
		matches: func(streak, probability int) bool { return streak >= 7 && probability > 70 },
		render: func(h *habitsDomain.Habit, streak int) string {
			return fmt.Sprintf("Don't break it now — %d days of %s", streak, h.Name())
		},
	},
	{
		matches: func(streak, probability int) bool { return streak >= 3 },
		render: func(h *habitsDomain.Habit, streak int) string {
			return fmt.Sprintf("%s: %d-day streak going", h.Name(), streak)
		},
	},
	{
		matches: func(streak, probability int) bool { return probability < 40 },
		render: func(h *habitsDomain.Habit, streak int) string {
			return fmt.Sprintf("One small step: %s", h.Name())
		},
	},
	{
		matches: func(streak, probability int) bool { return true },
		render: func(h *habitsDomain.Habit, streak int) string {
			return fmt.Sprintf("Time for %s", h.Name())
		},
	},
}

// ContentGenerator renders recommendations and predictions into notification
// content. All methods are pure and perform no I/O.
type ContentGenerator struct{}

// NewContentGenerator creates a new content generator.
func NewContentGenerator() *ContentGenerator {
	return &ContentGenerator{}
}

// Reminder builds the standard reminder content for a habit.
func (g *ContentGenerator) Reminder(
	habit *habitsDomain.Habit,
	rec domain.SchedulingRecommendation,
	prediction domain.StreakPrediction,
) domain.NotificationContent {
	return domain.NotificationContent{
		Title:    g.title(habit, prediction),
		Body:     g.body(rec, prediction),
		Priority: priorityFor(habit.Streak(), rec.SuccessRateAtTime),
		Sound:    domain.SoundDefault,
		Metadata: map[string]string{
			"habit_id":    habit.ID().String(),
			"kind":        "reminder",
			"probability": strconv.Itoa(prediction.Probability),
			"hour":        strconv.Itoa(rec.OptimalHour),
		},
	}
}

func (g *ContentGenerator) title(habit *habitsDomain.Habit, prediction domain.StreakPrediction) string {
	for _, rule := range titleRules {
		if rule.matches(habit.Streak(), prediction.Probability) {
			return rule.render(habit, habit.Streak())
		}
	}
	// Unreachable: the last rule always matches.
	return fmt.Sprintf("Time for %s", habit.Name())
}

func (g *ContentGenerator) body(rec domain.SchedulingRecommendation, prediction domain.StreakPrediction) string {
	return timeOfDayPhrase(rec.OptimalHour) + " " +
		probabilityPhrase(prediction.Probability) + " " +
		prediction.RecommendedAction + "."
}

// timeOfDayPhrase buckets the optimal hour into 4 ranges.
func timeOfDayPhrase(hour int) string {
	switch {
	case hour < 12:
		return "Good morning!"
	case hour < 17:
		return "Afternoon check-in."
	case hour < 21:
		return "Evening reminder."
	default:
		return "Before the day ends:"
	}
}

// probabilityPhrase buckets the probability into 5 ranges spanning 0-100.
func probabilityPhrase(probability int) string {
	switch {
	case probability >= 80:
		return "You're on a roll."
	case probability >= 60:
		return "You've got this."
	case probability >= 40:
		return "A little push goes a long way."
	case probability >= 20:
		return "Today is a good day to restart."
	default:
		return "No pressure, just show up."
	}
}

// priorityFor maps streak and success rate to delivery priority. Mastered
// habits get out of the way; struggling ones interrupt.
func priorityFor(streak int, successRate float64) domain.Priority {
	if streak > 7 && successRate > 0.7 {
		return domain.PriorityPassive
	}
	if successRate < 0.3 {
		return domain.PriorityTimeSensitive
	}
	return domain.PriorityActive
}

// Milestone builds celebration-adjacent content when a milestone is within
// reach.
func (g *ContentGenerator) Milestone(habit *habitsDomain.Habit, milestone domain.StreakMilestone) domain.NotificationContent {
	remaining := milestone.StreakCount - habit.Streak()
	body := fmt.Sprintf("%d more days of %s and you reach %q.", remaining, habit.Name(), milestone.Title)
	if remaining <= 1 {
		body = fmt.Sprintf("Complete %s today to reach %q!", habit.Name(), milestone.Title)
	}

	return domain.NotificationContent{
		Title:    fmt.Sprintf("🏆 %q is %d days away", milestone.Title, remaining),
		Body:     body,
		Priority: domain.PriorityActive,
		Sound:    domain.SoundCelebration,
		Metadata: map[string]string{
			"habit_id":  habit.ID().String(),
			"kind":      "milestone",
			"milestone": strconv.Itoa(milestone.StreakCount),
		},
	}
}

// Urgent builds streak-at-risk content.
func (g *ContentGenerator) Urgent(habit *habitsDomain.Habit) domain.NotificationContent {
	return domain.NotificationContent{
		Title:    fmt.Sprintf("⚠️ Your %d-day %s streak is at risk", habit.Streak(), habit.Name()),
		Body:     fmt.Sprintf("You've missed a few days. Complete %s today to keep the streak.", habit.Name()),
		Priority: domain.PriorityTimeSensitive,
		Sound:    domain.SoundUrgent,
		Metadata: map[string]string{
			"habit_id": habit.ID().String(),
			"kind":     "urgent",
		},
	}
}

// Recovery builds post-miss content that invites a restart without guilt.
func (g *ContentGenerator) Recovery(habit *habitsDomain.Habit) domain.NotificationContent {
	return domain.NotificationContent{
		Title:    fmt.Sprintf("A fresh start for %s", habit.Name()),
		Body:     "Yesterday is done. One completion today puts you back on track.",
		Priority: domain.PriorityActive,
		Sound:    domain.SoundDefault,
		Metadata: map[string]string{
			"habit_id": habit.ID().String(),
			"kind":     "recovery",
		},
	}
}

// Motivational builds low-engagement content.
func (g *ContentGenerator) Motivational(habit *habitsDomain.Habit, prediction domain.StreakPrediction) domain.NotificationContent {
	return domain.NotificationContent{
		Title:    fmt.Sprintf("Still up for %s?", habit.Name()),
		Body:     probabilityPhrase(prediction.Probability) + " " + prediction.RecommendedAction + ".",
		Priority: domain.PriorityActive,
		Sound:    domain.SoundDefault,
		Metadata: map[string]string{
			"habit_id": habit.ID().String(),
			"kind":     "motivational",
		},
	}
}
