package domain

import (
	"time"

	"github.com/google/uuid"
)

// Frequency multiplier bounds. The values are carried over from long-running
// production tuning and are not known to be optimal.
const (
	MinFrequencyMultiplier = 0.3
	MaxFrequencyMultiplier = 2.0
)

// Hour offset bounds keep feedback from pushing a reminder out of its day part.
const (
	MinHourOffsetMinutes = -120
	MaxHourOffsetMinutes = 120
)

// TimingBias is the per-habit learned adjustment derived from notification
// feedback. It is the only mutable state the engine owns.
type TimingBias struct {
	HabitID             uuid.UUID
	HourOffsetMinutes   int
	FrequencyMultiplier float64
	UpdatedAt           time.Time
}

// NewTimingBias creates a neutral bias for a habit.
func NewTimingBias(habitID uuid.UUID) TimingBias {
	return TimingBias{
		HabitID:             habitID,
		HourOffsetMinutes:   0,
		FrequencyMultiplier: 1.0,
		UpdatedAt:           time.Now().UTC(),
	}
}

// ShiftOffset moves the hour offset by delta minutes, clamped to bounds.
func (b *TimingBias) ShiftOffset(delta int) {
	b.HourOffsetMinutes = clampInt(b.HourOffsetMinutes+delta, MinHourOffsetMinutes, MaxHourOffsetMinutes)
	b.UpdatedAt = time.Now().UTC()
}

// ScaleFrequency multiplies the frequency multiplier by factor, clamped to
// [MinFrequencyMultiplier, MaxFrequencyMultiplier].
func (b *TimingBias) ScaleFrequency(factor float64) {
	b.FrequencyMultiplier = clampFloat(b.FrequencyMultiplier*factor, MinFrequencyMultiplier, MaxFrequencyMultiplier)
	b.UpdatedAt = time.Now().UTC()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
