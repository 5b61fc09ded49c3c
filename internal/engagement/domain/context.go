package domain

// HabitContext is the classified situational state of a habit at evaluation
// time. Exactly one value applies per evaluation.
type HabitContext string

const (
	ContextNormal               HabitContext = "normal"
	ContextOptimalTime          HabitContext = "optimal_time"
	ContextStreakAtRisk         HabitContext = "streak_at_risk"
	ContextMilestoneApproaching HabitContext = "milestone_approaching"
	ContextLowEngagement        HabitContext = "low_engagement"
)
