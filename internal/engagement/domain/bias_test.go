package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewTimingBias_Neutral(t *testing.T) {
	habitID := uuid.New()
	bias := NewTimingBias(habitID)

	assert.Equal(t, habitID, bias.HabitID)
	assert.Equal(t, 0, bias.HourOffsetMinutes)
	assert.InDelta(t, 1.0, bias.FrequencyMultiplier, 1e-9)
	assert.False(t, bias.UpdatedAt.IsZero())
}

func TestShiftOffset_Clamps(t *testing.T) {
	bias := NewTimingBias(uuid.New())

	bias.ShiftOffset(45)
	assert.Equal(t, 45, bias.HourOffsetMinutes)

	bias.ShiftOffset(200)
	assert.Equal(t, MaxHourOffsetMinutes, bias.HourOffsetMinutes)

	bias.ShiftOffset(-500)
	assert.Equal(t, MinHourOffsetMinutes, bias.HourOffsetMinutes)
}

func TestScaleFrequency_Clamps(t *testing.T) {
	bias := NewTimingBias(uuid.New())

	bias.ScaleFrequency(0.8)
	assert.InDelta(t, 0.8, bias.FrequencyMultiplier, 1e-9)

	for i := 0; i < 10; i++ {
		bias.ScaleFrequency(0.8)
	}
	assert.InDelta(t, MinFrequencyMultiplier, bias.FrequencyMultiplier, 1e-9)

	for i := 0; i < 20; i++ {
		bias.ScaleFrequency(1.3)
	}
	assert.InDelta(t, MaxFrequencyMultiplier, bias.FrequencyMultiplier, 1e-9)
}

func TestInteractionType_IsValid(t *testing.T) {
	valid := []InteractionType{InteractionDismissed, InteractionCompleted, InteractionIgnored, InteractionSnoozed}
	for _, typ := range valid {
		assert.True(t, typ.IsValid(), string(typ))
	}
	assert.False(t, InteractionType("shouted").IsValid())
	assert.False(t, InteractionType("").IsValid())
}
