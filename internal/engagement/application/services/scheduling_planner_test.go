package services

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralBias() domain.TimingBias {
	return domain.NewTimingBias(uuid.New())
}

func TestPlan_NoHistoryDefaultsToMorning(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Stretch", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	rec, trigger := planner.Plan(habit, domain.HabitPatterns{}, domain.UserProfile{}, neutralBias())

	assert.Equal(t, 9, rec.OptimalHour)
	assert.Equal(t, "no history yet, starting with a morning reminder", rec.Reasoning)
	assert.True(t, trigger.Repeating)
	assert.Equal(t, 9, trigger.Hour)
	assert.Equal(t, 0, trigger.Minute)
	assert.Nil(t, trigger.Weekday)
}

func TestPlan_ProfilePeakHourWins(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Stretch", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	patterns := domain.HabitPatterns{
		Consistency:    0.9,
		TimePreference: []domain.DayPart{domain.DayPartMorning},
	}
	profile := domain.UserProfile{AverageConsistency: 0.8, PeakProductivityHour: 7}

	rec, trigger := planner.Plan(habit, patterns, profile, neutralBias())

	assert.Equal(t, 7, rec.OptimalHour)
	assert.InDelta(t, 0.9, rec.SuccessRateAtTime, 1e-9)
	assert.Equal(t, 7, trigger.Hour)
	assert.Equal(t, 15, trigger.Minute)
}

func TestPlan_FallsBackToHabitTimePreference(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Journal", habitsDomain.CategoryMindfulness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	patterns := domain.HabitPatterns{
		Consistency:    0.7,
		TimePreference: []domain.DayPart{domain.DayPartEvening},
	}

	rec, trigger := planner.Plan(habit, patterns, domain.UserProfile{}, neutralBias())

	assert.Equal(t, 19, rec.OptimalHour)
	assert.Equal(t, 19, trigger.Hour)
	assert.Contains(t, rec.Reasoning, "evening")
}

func TestPlan_LowSuccessMovesReminderEarlier(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Stretch", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	patterns := domain.HabitPatterns{
		Consistency:    0.3,
		TimePreference: []domain.DayPart{domain.DayPartMorning},
	}
	profile := domain.UserProfile{AverageConsistency: 0.4, PeakProductivityHour: 8}

	_, trigger := planner.Plan(habit, patterns, profile, neutralBias())

	assert.Equal(t, 0, trigger.Minute)
}

func TestPlan_BiasOffsetShiftsTrigger(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Stretch", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	patterns := domain.HabitPatterns{
		Consistency:    0.9,
		TimePreference: []domain.DayPart{domain.DayPartMorning},
	}
	profile := domain.UserProfile{AverageConsistency: 0.8, PeakProductivityHour: 7}
	bias := neutralBias()
	bias.HourOffsetMinutes = 30

	rec, trigger := planner.Plan(habit, patterns, profile, bias)

	assert.Equal(t, 7, rec.OptimalHour)
	assert.Equal(t, 7, trigger.Hour)
	assert.Equal(t, 45, trigger.Minute)
}

func TestPlan_OffsetClampsToSameDay(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Stretch", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	patterns := domain.HabitPatterns{Consistency: 0.2, TimePreference: []domain.DayPart{domain.DayPartMorning}}
	profile := domain.UserProfile{AverageConsistency: 0.2, PeakProductivityHour: 0}
	bias := neutralBias()
	bias.HourOffsetMinutes = -120

	_, trigger := planner.Plan(habit, patterns, profile, bias)

	assert.Equal(t, 0, trigger.Hour)
	assert.Equal(t, 0, trigger.Minute)
}

func TestPlan_WeeklyHabitPinsWeekday(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Review", habitsDomain.CategoryProductivity, habitsDomain.FrequencyWeekly)
	require.NoError(t, err)

	tests := []struct {
		iso  int
		want time.Weekday
	}{
		{1, time.Monday},
		{3, time.Wednesday},
		{7, time.Sunday},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			patterns := domain.HabitPatterns{Consistency: 0.5, WeekdayPreference: tc.iso}
			_, trigger := planner.Plan(habit, patterns, domain.UserProfile{}, neutralBias())

			require.NotNil(t, trigger.Weekday)
			assert.Equal(t, tc.want, *trigger.Weekday)
		})
	}
}

func TestPlan_AlternativeHoursExcludeOptimal(t *testing.T) {
	planner := NewSchedulingPlanner()
	habit, err := habitsDomain.NewHabit("Stretch", habitsDomain.CategoryFitness, habitsDomain.FrequencyDaily)
	require.NoError(t, err)

	patterns := domain.HabitPatterns{
		Consistency: 0.9,
		TimePreference: []domain.DayPart{
			domain.DayPartMorning,
			domain.DayPartEvening,
			domain.DayPartMidday,
		},
	}
	profile := domain.UserProfile{AverageConsistency: 0.8, PeakProductivityHour: 8}

	rec, _ := planner.Plan(habit, patterns, profile, neutralBias())

	assert.Equal(t, 8, rec.OptimalHour)
	assert.Equal(t, []int{19, 11}, rec.AlternativeHours)
}
