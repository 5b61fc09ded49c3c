package domain

// StreakPrediction is the output of the prediction engine: how likely the
// user is to keep the streak going, and what to suggest next.
type StreakPrediction struct {
	Probability       int // 0-100
	RecommendedAction string
	Factors           []string
}

// NeutralPrediction is returned when patterns are missing or degenerate.
// The prediction engine never fails its caller.
func NeutralPrediction() StreakPrediction {
	return StreakPrediction{
		Probability:       50,
		RecommendedAction: "Take it one day at a time",
		Factors:           []string{"not enough history yet"},
	}
}
