package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDayPartForHour(t *testing.T) {
	tests := []struct {
		hour int
		want DayPart
	}{
		{0, DayPartOther},
		{5, DayPartOther},
		{6, DayPartMorning},
		{9, DayPartMorning},
		{10, DayPartMidday},
		{12, DayPartMidday},
		{13, DayPartAfternoon},
		{17, DayPartAfternoon},
		{18, DayPartEvening},
		{21, DayPartEvening},
		{22, DayPartOther},
		{23, DayPartOther},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, DayPartForHour(tc.hour), "hour %d", tc.hour)
	}
}

func TestIdentifiers_DisjointNamespaces(t *testing.T) {
	habitID := uuid.New()

	ids := []string{
		ReminderIdentifier(habitID),
		MilestoneIdentifier(habitID, 7),
		UrgentIdentifier(habitID),
		RecoveryIdentifier(habitID),
		MotivationalIdentifier(habitID),
	}

	seen := make(map[string]struct{})
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, id)
		seen[id] = struct{}{}
	}

	// Milestone identifiers are also disjoint per milestone.
	assert.NotEqual(t, MilestoneIdentifier(habitID, 7), MilestoneIdentifier(habitID, 14))
}
