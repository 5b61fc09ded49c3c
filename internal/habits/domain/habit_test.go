package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHabit(t *testing.T) {
	habit, err := NewHabit("Morning meditation", CategoryMindfulness, FrequencyDaily)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, habit.ID())
	assert.Equal(t, "Morning meditation", habit.Name())
	assert.Equal(t, CategoryMindfulness, habit.Category())
	assert.Equal(t, FrequencyDaily, habit.Frequency())
	assert.Equal(t, 0, habit.Streak())
	assert.True(t, habit.IsActive())
}

func TestNewHabit_EmitsEvent(t *testing.T) {
	habit, err := NewHabit("Exercise", CategoryFitness, FrequencyDaily)

	require.NoError(t, err)
	events := habit.DomainEvents()
	require.Len(t, events, 1)

	created, ok := events[0].(*HabitCreated)
	require.True(t, ok)
	assert.Equal(t, habit.ID(), created.HabitID)
	assert.Equal(t, "Exercise", created.Name)
}

func TestNewHabit_EmptyName(t *testing.T) {
	tests := []struct {
		name string
	}{
		{""},
		{"   "},
		{"\t\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewHabit(tc.name, CategoryOther, FrequencyDaily)
			assert.ErrorIs(t, err, ErrHabitEmptyName)
		})
	}
}

func TestNewHabit_InvalidFrequency(t *testing.T) {
	_, err := NewHabit("Test", CategoryOther, Frequency("invalid"))
	assert.ErrorIs(t, err, ErrHabitInvalidFreq)
}

func TestNewHabit_UnknownCategoryDefaultsToOther(t *testing.T) {
	habit, err := NewHabit("Test", Category("astronomy"), FrequencyDaily)
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, habit.Category())
}

func TestLogCompletion(t *testing.T) {
	habit, err := NewHabit("Drink water", CategoryHealth, FrequencyDaily)
	require.NoError(t, err)

	log, err := habit.LogCompletion(time.Now(), 10)
	require.NoError(t, err)
	assert.Equal(t, habit.ID(), log.HabitID())
	assert.True(t, log.IsCompleted())
	assert.Equal(t, 10, log.XPEarned())
	assert.Equal(t, 1, habit.Streak())
}

func TestLogCompletion_SameDayRejected(t *testing.T) {
	habit, err := NewHabit("Drink water", CategoryHealth, FrequencyDaily)
	require.NoError(t, err)

	now := time.Now()
	_, err = habit.LogCompletion(now, 10)
	require.NoError(t, err)

	_, err = habit.LogCompletion(now.Add(2*time.Hour), 10)
	assert.ErrorIs(t, err, ErrHabitAlreadyLogged)
}

func TestLogCompletion_Inactive(t *testing.T) {
	habit, err := NewHabit("Drink water", CategoryHealth, FrequencyDaily)
	require.NoError(t, err)

	habit.Deactivate()

	_, err = habit.LogCompletion(time.Now(), 10)
	assert.ErrorIs(t, err, ErrHabitInactive)
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	habit, err := NewHabit("Read", CategoryLearning, FrequencyDaily)
	require.NoError(t, err)

	now := time.Now()
	for i := 4; i >= 0; i-- {
		_, err := habit.LogCompletion(now.AddDate(0, 0, -i), 10)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, habit.Streak())
	assert.Equal(t, 5, habit.BestStreak())
}

func TestStreak_GapResets(t *testing.T) {
	habit, err := NewHabit("Read", CategoryLearning, FrequencyDaily)
	require.NoError(t, err)

	now := time.Now()
	_, err = habit.LogCompletion(now.AddDate(0, 0, -5), 10)
	require.NoError(t, err)
	_, err = habit.LogCompletion(now.AddDate(0, 0, -4), 10)
	require.NoError(t, err)
	// Gap at -3 and -2.
	_, err = habit.LogCompletion(now.AddDate(0, 0, -1), 10)
	require.NoError(t, err)
	_, err = habit.LogCompletion(now, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, habit.Streak())
	assert.Equal(t, 2, habit.BestStreak())
}

func TestLogMiss_ResetsStreak(t *testing.T) {
	habit, err := NewHabit("Read", CategoryLearning, FrequencyDaily)
	require.NoError(t, err)

	now := time.Now()
	_, err = habit.LogCompletion(now.AddDate(0, 0, -1), 10)
	require.NoError(t, err)
	require.Equal(t, 1, habit.Streak())

	log, err := habit.LogMiss(now)
	require.NoError(t, err)
	assert.False(t, log.IsCompleted())
	assert.Equal(t, 0, habit.Streak())
	assert.Equal(t, 1, habit.BestStreak())
}

func TestDeactivate(t *testing.T) {
	habit, err := NewHabit("Read", CategoryLearning, FrequencyDaily)
	require.NoError(t, err)

	habit.ClearDomainEvents()
	habit.Deactivate()

	assert.False(t, habit.IsActive())
	events := habit.DomainEvents()
	require.Len(t, events, 1)
	_, ok := events[0].(*HabitDeactivated)
	assert.True(t, ok)

	// Deactivating twice emits no second event.
	habit.ClearDomainEvents()
	habit.Deactivate()
	assert.Empty(t, habit.DomainEvents())
}

func TestRehydrateHabit(t *testing.T) {
	id := uuid.New()
	createdAt := time.Now().AddDate(0, -1, 0)
	logs := []*HabitLog{
		RehydrateHabitLog(uuid.New(), id, createdAt.AddDate(0, 0, 1), true, 10),
	}

	habit := RehydrateHabit(id, "Read", CategoryLearning, FrequencyDaily, 3, 7, true, createdAt, createdAt, logs)

	assert.Equal(t, id, habit.ID())
	assert.Equal(t, 3, habit.Streak())
	assert.Equal(t, 7, habit.BestStreak())
	assert.Len(t, habit.Logs(), 1)
	assert.Empty(t, habit.DomainEvents())
}
