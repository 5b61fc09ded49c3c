package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Delivery identifiers partition pending notifications into independently
// supersedable namespaces. Scheduling under an identifier cancels and
// replaces any prior pending instruction with the same identifier.

// ReminderIdentifier is the identifier for a habit's standard reminder.
func ReminderIdentifier(habitID uuid.UUID) string {
	return "habit_" + habitID.String()
}

// MilestoneIdentifier is the identifier for a milestone alert.
func MilestoneIdentifier(habitID uuid.UUID, streakCount int) string {
	return fmt.Sprintf("milestone_%s_%d", habitID, streakCount)
}

// UrgentIdentifier is the identifier for a streak-at-risk alert.
func UrgentIdentifier(habitID uuid.UUID) string {
	return "urgent_" + habitID.String()
}

// RecoveryIdentifier is the identifier for a post-miss recovery nudge.
func RecoveryIdentifier(habitID uuid.UUID) string {
	return "recovery_" + habitID.String()
}

// MotivationalIdentifier is the identifier for a low-engagement nudge.
func MotivationalIdentifier(habitID uuid.UUID) string {
	return "motivational_" + habitID.String()
}
