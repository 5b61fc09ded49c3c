package domain

// StreakMilestone is a notable streak length worth celebrating.
type StreakMilestone struct {
	StreakCount int
	Title       string
}

// milestoneLadder is the fixed ascending ladder of streak milestones.
var milestoneLadder = []StreakMilestone{
	{StreakCount: 3, Title: "Getting Started"},
	{StreakCount: 7, Title: "One Week Strong"},
	{StreakCount: 14, Title: "Two Week Champion"},
	{StreakCount: 21, Title: "Habit Former"},
	{StreakCount: 30, Title: "Monthly Master"},
	{StreakCount: 60, Title: "Two Month Titan"},
	{StreakCount: 90, Title: "Quarterly Conqueror"},
	{StreakCount: 180, Title: "Half-Year Hero"},
	{StreakCount: 365, Title: "Year-Long Legend"},
}

// Milestones returns the full ladder in ascending order.
func Milestones() []StreakMilestone {
	out := make([]StreakMilestone, len(milestoneLadder))
	copy(out, milestoneLadder)
	return out
}

// NextMilestone returns the smallest ladder entry strictly greater than the
// current streak, or false if the streak is past the end of the ladder.
func NextMilestone(streak int) (StreakMilestone, bool) {
	for _, m := range milestoneLadder {
		if m.StreakCount > streak {
			return m, true
		}
	}
	return StreakMilestone{}, false
}
