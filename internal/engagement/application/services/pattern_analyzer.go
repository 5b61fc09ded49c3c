package services

import (
	"math"
	"sort"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
)

const (
	momentumWindowDays   = 7
	volatilityWindowDays = 14
)

// PatternAnalyzer derives behavior statistics from a habit's completion
// history. All methods are deterministic for a fixed clock and never mutate
// their input.
type PatternAnalyzer struct {
	now func() time.Time
}

// NewPatternAnalyzer creates a new analyzer.
func NewPatternAnalyzer() *PatternAnalyzer {
	return &PatternAnalyzer{now: time.Now}
}

// Analyze computes HabitPatterns from an ordered log history. An empty
// history yields zero-valued patterns, never NaN.
func (a *PatternAnalyzer) Analyze(logs []*habitsDomain.HabitLog) domain.HabitPatterns {
	patterns := domain.HabitPatterns{
		WeekdayPreference: 1, // Monday until evidence says otherwise
	}

	if len(logs) == 0 {
		return patterns
	}

	completed := 0
	for _, l := range logs {
		if l.IsCompleted() {
			completed++
		}
	}
	patterns.Consistency = float64(completed) / float64(len(logs))

	now := a.now()
	patterns.Momentum = a.momentum(logs, now)
	patterns.Volatility = a.volatility(logs, now)
	patterns.WeekdayPreference = a.weekdayPreference(logs)
	patterns.TimePreference = a.timePreference(logs)

	return patterns
}

// momentum compares the completion rate of the last window against the
// preceding window, normalized to [0, 1].
func (a *PatternAnalyzer) momentum(logs []*habitsDomain.HabitLog, now time.Time) float64 {
	recentStart := now.AddDate(0, 0, -momentumWindowDays)
	olderStart := now.AddDate(0, 0, -2*momentumWindowDays)

	recentRate := completionRatePerDay(logs, recentStart, now)
	olderRate := completionRatePerDay(logs, olderStart, recentStart)

	diff := recentRate - olderRate
	return clamp01((diff + 0.2) / 0.4)
}

// volatility is the standard deviation of the per-day completion series over
// the observed window, scaled so a fully alternating pattern approaches 1.
func (a *PatternAnalyzer) volatility(logs []*habitsDomain.HabitLog, now time.Time) float64 {
	// Anchor the series at the most recent log, not at now. A pass that
	// runs before the user logs today must not count the in-progress day
	// as a miss.
	anchor := latestLogDay(logs)
	if anchor.After(now) {
		anchor = now
	}
	days := observedWindowDays(logs, anchor)
	if days < 2 {
		return 0
	}
	if days > volatilityWindowDays {
		days = volatilityWindowDays
	}

	series := make([]float64, days)
	for i := 0; i < days; i++ {
		day := anchor.AddDate(0, 0, -i)
		if completedOn(logs, day) {
			series[i] = 1
		}
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	variance := 0.0
	for _, v := range series {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(series))

	// A 0/1 series has stddev at most 0.5; rescale to [0, 1].
	return clamp01(math.Sqrt(variance) * 2)
}

// weekdayPreference returns the ISO weekday (Monday=1) with the most
// completed logs. Ties break toward the lower weekday number.
func (a *PatternAnalyzer) weekdayPreference(logs []*habitsDomain.HabitLog) int {
	var counts [8]int // index 1-7
	for _, l := range logs {
		if l.IsCompleted() {
			counts[isoWeekday(l.CompletionDate())]++
		}
	}

	best := 1
	for wd := 2; wd <= 7; wd++ {
		if counts[wd] > counts[best] {
			best = wd
		}
	}
	return best
}

// timePreference ranks day parts by completed-log count, descending. Only
// parts with at least one completion appear. Ties keep canonical day order.
func (a *PatternAnalyzer) timePreference(logs []*habitsDomain.HabitLog) []domain.DayPart {
	order := []domain.DayPart{
		domain.DayPartMorning,
		domain.DayPartMidday,
		domain.DayPartAfternoon,
		domain.DayPartEvening,
		domain.DayPartOther,
	}

	counts := make(map[domain.DayPart]int)
	for _, l := range logs {
		if l.IsCompleted() {
			counts[domain.DayPartForHour(l.CompletionDate().Hour())]++
		}
	}

	ranked := make([]domain.DayPart, 0, len(counts))
	for _, part := range order {
		if counts[part] > 0 {
			ranked = append(ranked, part)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	return ranked
}

// BuildProfile derives a user profile from all habits and their logs. It is
// recomputed on demand and never persisted.
func (a *PatternAnalyzer) BuildProfile(habits []*habitsDomain.Habit, logsByHabit map[uuid.UUID][]*habitsDomain.HabitLog) domain.UserProfile {
	profile := domain.UserProfile{PeakProductivityHour: 9}

	hourCounts := make(map[int]int)
	categoryCounts := make(map[habitsDomain.Category]int)
	consistencySum := 0.0
	habitCount := 0

	for _, h := range habits {
		logs := logsByHabit[h.ID()]
		completed := 0
		for _, l := range logs {
			if l.IsCompleted() {
				completed++
				hourCounts[l.CompletionDate().Hour()]++
				categoryCounts[h.Category()]++
			}
		}
		if len(logs) > 0 {
			consistencySum += float64(completed) / float64(len(logs))
			habitCount++
		}
	}

	if habitCount > 0 {
		profile.AverageConsistency = consistencySum / float64(habitCount)
	}

	peak, peakCount := 9, 0
	for hour := 0; hour < 24; hour++ {
		if hourCounts[hour] > peakCount {
			peak, peakCount = hour, hourCounts[hour]
		}
	}
	profile.PeakProductivityHour = peak

	for cat, count := range categoryCounts {
		if count >= 3 {
			profile.PreferredCategories = append(profile.PreferredCategories, cat)
		}
	}
	sort.Slice(profile.PreferredCategories, func(i, j int) bool {
		return profile.PreferredCategories[i] < profile.PreferredCategories[j]
	})

	return profile
}

// completionRatePerDay returns completed days / window days for [start, end).
func completionRatePerDay(logs []*habitsDomain.HabitLog, start, end time.Time) float64 {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0
	}

	completedDays := 0
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		if completedOn(logs, day) {
			completedDays++
		}
	}
	return float64(completedDays) / float64(days)
}

// observedWindowDays is the number of days from the earliest log to the
// reference day, inclusive.
func observedWindowDays(logs []*habitsDomain.HabitLog, until time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	earliest := logs[0].CompletionDate()
	for _, l := range logs[1:] {
		if l.CompletionDate().Before(earliest) {
			earliest = l.CompletionDate()
		}
	}
	days := int(until.Sub(earliest).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func latestLogDay(logs []*habitsDomain.HabitLog) time.Time {
	latest := logs[0].CompletionDate()
	for _, l := range logs[1:] {
		if l.CompletionDate().After(latest) {
			latest = l.CompletionDate()
		}
	}
	return latest
}

func completedOn(logs []*habitsDomain.HabitLog, day time.Time) bool {
	y, m, d := day.Date()
	for _, l := range logs {
		ly, lm, ld := l.CompletionDate().Date()
		if l.IsCompleted() && ly == y && lm == m && ld == d {
			return true
		}
	}
	return false
}

// isoWeekday maps time.Weekday to ISO numbering (Monday=1 ... Sunday=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
