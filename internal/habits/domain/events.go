package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/nudge/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "Habit"

// HabitCreated is emitted when a habit is created.
type HabitCreated struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Frequency string    `json:"frequency"`
}

// NewHabitCreated creates a HabitCreated event.
func NewHabitCreated(h *Habit) *HabitCreated {
	return &HabitCreated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.created"),
		HabitID:   h.ID(),
		Name:      h.Name(),
		Category:  string(h.Category()),
		Frequency: string(h.Frequency()),
	}
}

// HabitCompleted is emitted when a habit completion is logged.
type HabitCompleted struct {
	sharedDomain.BaseEvent
	HabitID     uuid.UUID `json:"habit_id"`
	LogID       uuid.UUID `json:"log_id"`
	CompletedAt time.Time `json:"completed_at"`
	Streak      int       `json:"streak"`
	XPEarned    int       `json:"xp_earned"`
}

// NewHabitCompleted creates a HabitCompleted event.
func NewHabitCompleted(h *Habit, l *HabitLog) *HabitCompleted {
	return &HabitCompleted{
		BaseEvent:   sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.completed"),
		HabitID:     h.ID(),
		LogID:       l.ID(),
		CompletedAt: l.CompletionDate(),
		Streak:      h.Streak(),
		XPEarned:    l.XPEarned(),
	}
}

// HabitDeactivated is emitted when a habit is deactivated.
type HabitDeactivated struct {
	sharedDomain.BaseEvent
	HabitID uuid.UUID `json:"habit_id"`
}

// NewHabitDeactivated creates a HabitDeactivated event.
func NewHabitDeactivated(h *Habit) *HabitDeactivated {
	return &HabitDeactivated{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.deactivated"),
		HabitID:   h.ID(),
	}
}

// HabitMilestoneReached is emitted when a habit streak reaches a milestone.
type HabitMilestoneReached struct {
	sharedDomain.BaseEvent
	HabitID   uuid.UUID `json:"habit_id"`
	Milestone int       `json:"milestone"`
	Title     string    `json:"title"`
}

// NewHabitMilestoneReached creates a HabitMilestoneReached event.
func NewHabitMilestoneReached(h *Habit, milestone int, title string) *HabitMilestoneReached {
	return &HabitMilestoneReached{
		BaseEvent: sharedDomain.NewBaseEvent(h.ID(), aggregateType, "habits.habit.milestone_reached"),
		HabitID:   h.ID(),
		Milestone: milestone,
		Title:     title,
	}
}
