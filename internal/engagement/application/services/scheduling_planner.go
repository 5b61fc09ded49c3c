package services

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
)

const defaultReminderHour = 9

// representativeHour maps a day part to the hour a reminder should target
// inside that part.
var representativeHour = map[domain.DayPart]int{
	domain.DayPartMorning:   8,
	domain.DayPartMidday:    11,
	domain.DayPartAfternoon: 15,
	domain.DayPartEvening:   19,
	domain.DayPartOther:     defaultReminderHour,
}

// SchedulingPlanner turns patterns, the user profile, and the habit's timing
// bias into a concrete scheduling recommendation and delivery trigger.
type SchedulingPlanner struct{}

// NewSchedulingPlanner creates a new planner.
func NewSchedulingPlanner() *SchedulingPlanner {
	return &SchedulingPlanner{}
}

// Plan computes the recommendation and trigger for one habit. With no
// history it falls back to the default hour rather than erroring.
func (p *SchedulingPlanner) Plan(
	habit *habitsDomain.Habit,
	patterns domain.HabitPatterns,
	profile domain.UserProfile,
	bias domain.TimingBias,
) (domain.SchedulingRecommendation, domain.Trigger) {
	baseHour, reasoning := p.baseHour(patterns, profile)
	successRate := successRateAt(patterns, baseHour)

	// Lower success at the chosen hour nudges the reminder earlier in it.
	minute := 15
	if successRate < 0.5 {
		minute = 0
	}

	hour, minute := applyOffset(baseHour, minute, bias.HourOffsetMinutes)

	rec := domain.SchedulingRecommendation{
		OptimalHour:       hour,
		SuccessRateAtTime: successRate,
		Reasoning:         reasoning,
		AlternativeHours:  alternativeHours(patterns, hour),
	}

	trigger := domain.NewCalendarTrigger(hour, minute, true)
	if habit.Frequency() == habitsDomain.FrequencyWeekly {
		wd := weekdayFromISO(patterns.WeekdayPreference)
		trigger.Weekday = &wd
	}

	return rec, trigger
}

// baseHour picks the anchor hour: the profile's peak hour when the profile
// carries signal, else the habit's own strongest day part, else the default.
func (p *SchedulingPlanner) baseHour(patterns domain.HabitPatterns, profile domain.UserProfile) (int, string) {
	if profile.AverageConsistency > 0 {
		return profile.PeakProductivityHour,
			fmt.Sprintf("you are most productive around %d:00", profile.PeakProductivityHour)
	}
	if len(patterns.TimePreference) > 0 {
		part := patterns.TimePreference[0]
		return representativeHour[part],
			fmt.Sprintf("you usually complete this habit in the %s", part)
	}
	return defaultReminderHour, "no history yet, starting with a morning reminder"
}

// successRateAt estimates the completion share landing in the day part that
// contains the given hour. Best-ranked part gets the consistency itself;
// lower ranks decay.
func successRateAt(patterns domain.HabitPatterns, hour int) float64 {
	if len(patterns.TimePreference) == 0 {
		return patterns.Consistency
	}

	part := domain.DayPartForHour(hour)
	for rank, candidate := range patterns.TimePreference {
		if candidate == part {
			return clamp01(patterns.Consistency * (1 - 0.2*float64(rank)))
		}
	}
	// Hour falls outside every observed day part.
	return clamp01(patterns.Consistency * 0.3)
}

// alternativeHours returns up to two other high-ranked hours, excluding the
// optimal one.
func alternativeHours(patterns domain.HabitPatterns, optimal int) []int {
	var out []int
	for _, part := range patterns.TimePreference {
		h := representativeHour[part]
		if h == optimal {
			continue
		}
		out = append(out, h)
		if len(out) == 2 {
			break
		}
	}
	return out
}

// applyOffset shifts hour:minute by the bias offset, clamped to the same day.
func applyOffset(hour, minute, offsetMinutes int) (int, int) {
	total := hour*60 + minute + offsetMinutes
	if total < 0 {
		total = 0
	}
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	return total / 60, total % 60
}

// weekdayFromISO maps ISO numbering (Monday=1 ... Sunday=7) to time.Weekday.
func weekdayFromISO(iso int) time.Weekday {
	if iso == 7 {
		return time.Sunday
	}
	return time.Weekday(iso)
}
