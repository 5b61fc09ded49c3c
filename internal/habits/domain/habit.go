package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/nudge/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrHabitEmptyName     = errors.New("habit name cannot be empty")
	ErrHabitInvalidFreq   = errors.New("invalid habit frequency")
	ErrHabitInactive      = errors.New("habit is inactive")
	ErrHabitAlreadyLogged = errors.New("habit already logged for this date")
)

// Category groups habits by the area of life they belong to.
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryFitness      Category = "fitness"
	CategoryLearning     Category = "learning"
	CategoryProductivity Category = "productivity"
	CategorySocial       Category = "social"
	CategoryCreativity   Category = "creativity"
	CategoryMindfulness  Category = "mindfulness"
	CategoryOther        Category = "other"
)

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryFitness, CategoryLearning, CategoryProductivity,
		CategorySocial, CategoryCreativity, CategoryMindfulness, CategoryOther:
		return true
	default:
		return false
	}
}

// Frequency represents how often a habit should be performed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// IsValid checks if the frequency is valid.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	default:
		return false
	}
}

// Habit represents a recurring activity the user wants to build.
type Habit struct {
	sharedDomain.BaseAggregateRoot
	name       string
	category   Category
	frequency  Frequency
	streak     int // Current consecutive completions
	bestStreak int // Best ever streak
	active     bool
	logs       []*HabitLog
}

// NewHabit creates a new active habit.
func NewHabit(name string, category Category, frequency Frequency) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitEmptyName
	}
	if !category.IsValid() {
		category = CategoryOther
	}
	if !frequency.IsValid() {
		return nil, ErrHabitInvalidFreq
	}

	habit := &Habit{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		name:              name,
		category:          category,
		frequency:         frequency,
		active:            true,
		logs:              make([]*HabitLog, 0),
	}

	habit.AddDomainEvent(NewHabitCreated(habit))

	return habit, nil
}

// Getters
func (h *Habit) Name() string         { return h.name }
func (h *Habit) Category() Category   { return h.category }
func (h *Habit) Frequency() Frequency { return h.frequency }
func (h *Habit) Streak() int          { return h.streak }
func (h *Habit) BestStreak() int      { return h.bestStreak }
func (h *Habit) IsActive() bool       { return h.active }
func (h *Habit) Logs() []*HabitLog    { return h.logs }

// SetName updates the habit name.
func (h *Habit) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitEmptyName
	}
	h.name = name
	h.Touch()
	return nil
}

// LogCompletion appends a completion log for a given date. A habit can be
// logged at most once per calendar day.
func (h *Habit) LogCompletion(completedAt time.Time, xpEarned int) (*HabitLog, error) {
	if !h.active {
		return nil, ErrHabitInactive
	}

	for _, l := range h.logs {
		if l.completed && sameDay(l.completionDate, completedAt) {
			return nil, ErrHabitAlreadyLogged
		}
	}

	log := &HabitLog{
		id:             uuid.New(),
		habitID:        h.ID(),
		completionDate: completedAt,
		completed:      true,
		xpEarned:       xpEarned,
	}

	h.logs = append(h.logs, log)
	h.updateStreak(completedAt)
	h.Touch()

	h.AddDomainEvent(NewHabitCompleted(h, log))

	return log, nil
}

// LogMiss appends a non-completed log for a given date and resets the streak.
func (h *Habit) LogMiss(date time.Time) (*HabitLog, error) {
	if !h.active {
		return nil, ErrHabitInactive
	}

	log := &HabitLog{
		id:             uuid.New(),
		habitID:        h.ID(),
		completionDate: date,
		completed:      false,
	}

	h.logs = append(h.logs, log)
	h.streak = 0
	h.Touch()

	return log, nil
}

// Deactivate marks the habit as inactive. Inactive habits are never scheduled.
func (h *Habit) Deactivate() {
	if h.active {
		h.active = false
		h.Touch()
		h.AddDomainEvent(NewHabitDeactivated(h))
	}
}

// Activate restores an inactive habit.
func (h *Habit) Activate() {
	if !h.active {
		h.active = true
		h.Touch()
	}
}

// IsCompletedOn checks if the habit was completed on a given date.
func (h *Habit) IsCompletedOn(date time.Time) bool {
	for _, l := range h.logs {
		if l.completed && sameDay(l.completionDate, date) {
			return true
		}
	}
	return false
}

// sameDay checks if two times are on the same calendar day.
func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// updateStreak recalculates the streak by counting consecutive completed
// days backwards from the latest completion.
func (h *Habit) updateStreak(latestDate time.Time) {
	streak := 0
	checkDate := latestDate

	for h.IsCompletedOn(checkDate) && streak < 365 {
		streak++
		checkDate = checkDate.AddDate(0, 0, -1)
	}

	h.streak = streak
	if h.streak > h.bestStreak {
		h.bestStreak = h.streak
	}
}

// HabitLog is an immutable record of a single habit outcome on a date.
type HabitLog struct {
	id             uuid.UUID
	habitID        uuid.UUID
	completionDate time.Time
	completed      bool
	xpEarned       int
}

// Getters
func (l *HabitLog) ID() uuid.UUID             { return l.id }
func (l *HabitLog) HabitID() uuid.UUID        { return l.habitID }
func (l *HabitLog) CompletionDate() time.Time { return l.completionDate }
func (l *HabitLog) IsCompleted() bool         { return l.completed }
func (l *HabitLog) XPEarned() int             { return l.xpEarned }

// RehydrateHabitLog recreates a log entry from persisted state.
func RehydrateHabitLog(id, habitID uuid.UUID, completionDate time.Time, completed bool, xpEarned int) *HabitLog {
	return &HabitLog{
		id:             id,
		habitID:        habitID,
		completionDate: completionDate,
		completed:      completed,
		xpEarned:       xpEarned,
	}
}

// RehydrateHabit recreates a habit from persisted state without generating events.
func RehydrateHabit(
	id uuid.UUID,
	name string,
	category Category,
	frequency Frequency,
	streak int,
	bestStreak int,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
	logs []*HabitLog,
) *Habit {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)

	return &Habit{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity),
		name:              name,
		category:          category,
		frequency:         frequency,
		streak:            streak,
		bestStreak:        bestStreak,
		active:            active,
		logs:              logs,
	}
}
