package domain

import (
	"time"

	"github.com/google/uuid"
)

// InteractionType describes how the user responded to a notification.
type InteractionType string

const (
	InteractionDismissed InteractionType = "dismissed"
	InteractionCompleted InteractionType = "completed"
	InteractionIgnored   InteractionType = "ignored"
	InteractionSnoozed   InteractionType = "snoozed"
)

// IsValid checks if the interaction type is valid.
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionDismissed, InteractionCompleted, InteractionIgnored, InteractionSnoozed:
		return true
	default:
		return false
	}
}

// InteractionRecord is an append-only record of a single notification
// interaction. Records are never deleted by the engine.
type InteractionRecord struct {
	ID            uuid.UUID
	HabitID       uuid.UUID
	Type          InteractionType
	Timestamp     time.Time
	ScheduledTime time.Time
}

// NewInteractionRecord creates a new interaction record.
func NewInteractionRecord(habitID uuid.UUID, typ InteractionType, timestamp, scheduledTime time.Time) InteractionRecord {
	return InteractionRecord{
		ID:            uuid.New(),
		HabitID:       habitID,
		Type:          typ,
		Timestamp:     timestamp,
		ScheduledTime: scheduledTime,
	}
}
