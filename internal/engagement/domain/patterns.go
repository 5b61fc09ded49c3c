package domain

import (
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
)

// DayPart labels a coarse bucket of the day used for time preference ranking.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"   // 6-9
	DayPartMidday    DayPart = "midday"    // 10-12
	DayPartAfternoon DayPart = "afternoon" // 13-17
	DayPartEvening   DayPart = "evening"   // 18-21
	DayPartOther     DayPart = "other"
)

// DayPartForHour maps an hour of day to its bucket.
func DayPartForHour(hour int) DayPart {
	switch {
	case hour >= 6 && hour <= 9:
		return DayPartMorning
	case hour >= 10 && hour <= 12:
		return DayPartMidday
	case hour >= 13 && hour <= 17:
		return DayPartAfternoon
	case hour >= 18 && hour <= 21:
		return DayPartEvening
	default:
		return DayPartOther
	}
}

// HabitPatterns holds behavior statistics derived from a habit's completion
// history. All rate fields are in [0, 1].
type HabitPatterns struct {
	Consistency       float64   // completed / total over the lookback window
	Momentum          float64   // recent rate vs preceding rate, normalized
	Volatility        float64   // stddev of the per-day completion series
	WeekdayPreference int       // ISO weekday 1 (Monday) - 7 (Sunday)
	TimePreference    []DayPart // day parts ranked by completed-log count, descending
}

// UserProfile is a derived, never-persisted view over all habit logs.
type UserProfile struct {
	PeakProductivityHour int // 0-23
	AverageConsistency   float64
	PreferredCategories  []habitsDomain.Category
}
