package services

import (
	"fmt"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
)

// Probability blend weights. Consistency dominates, momentum follows,
// volatility penalizes.
const (
	consistencyWeight  = 55.0
	momentumWeight     = 30.0
	volatilityPenalty  = 15.0
	streakBonusMax     = 15.0
	streakBonusCapDays = 30
)

// PredictionEngine converts pattern statistics into a streak-success
// probability and a recommended next action. It is total over its domain:
// degenerate input yields a neutral prediction, never an error.
type PredictionEngine struct{}

// NewPredictionEngine creates a new prediction engine.
func NewPredictionEngine() *PredictionEngine {
	return &PredictionEngine{}
}

// Predict scores the likelihood (0-100) that the streak survives.
func (e *PredictionEngine) Predict(patterns domain.HabitPatterns, streak int) domain.StreakPrediction {
	if degenerate(patterns) {
		return domain.NeutralPrediction()
	}

	streakDays := streak
	if streakDays > streakBonusCapDays {
		streakDays = streakBonusCapDays
	}
	streakBonus := float64(streakDays) / float64(streakBonusCapDays) * streakBonusMax

	score := patterns.Consistency*consistencyWeight +
		patterns.Momentum*momentumWeight -
		patterns.Volatility*volatilityPenalty +
		streakBonus

	probability := int(score + 0.5)
	if probability < 0 {
		probability = 0
	}
	if probability > 100 {
		probability = 100
	}

	return domain.StreakPrediction{
		Probability:       probability,
		RecommendedAction: recommendedAction(probability),
		Factors:           factors(patterns, streak),
	}
}

// recommendedAction maps a probability to its action bucket. The buckets are
// exhaustive and non-overlapping over [0, 100].
func recommendedAction(probability int) string {
	switch {
	case probability >= 80:
		return "Keep the momentum going"
	case probability >= 60:
		return "Stay consistent today"
	case probability >= 40:
		return "Start with one small step"
	default:
		return "Make a fresh start"
	}
}

func factors(patterns domain.HabitPatterns, streak int) []string {
	var out []string

	switch {
	case patterns.Consistency >= 0.8:
		out = append(out, "very consistent track record")
	case patterns.Consistency >= 0.5:
		out = append(out, "moderately consistent track record")
	default:
		out = append(out, "inconsistent track record")
	}

	if patterns.Momentum >= 0.7 {
		out = append(out, "momentum is building")
	} else if patterns.Momentum <= 0.3 {
		out = append(out, "momentum is fading")
	}

	if patterns.Volatility >= 0.6 {
		out = append(out, "completion timing is unpredictable")
	}

	if streak > 0 {
		out = append(out, fmt.Sprintf("%d-day streak on the line", streak))
	}

	return out
}

// degenerate reports whether the patterns carry no signal at all, which is
// only the case for a habit with no logs.
func degenerate(patterns domain.HabitPatterns) bool {
	return patterns.Consistency == 0 &&
		patterns.Momentum == 0 &&
		patterns.Volatility == 0 &&
		len(patterns.TimePreference) == 0
}
