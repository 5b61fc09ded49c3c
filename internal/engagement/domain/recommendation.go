package domain

import "time"

// SchedulingRecommendation describes when a reminder is most likely to land.
type SchedulingRecommendation struct {
	OptimalHour       int     // 0-23
	SuccessRateAtTime float64 // 0-1
	Reasoning         string
	AlternativeHours  []int // up to 2 other high-ranked hours
}

// Trigger is the delivery-channel-facing description of when a notification
// should fire.
type Trigger struct {
	Repeating bool
	Hour      int
	Minute    int
	Weekday   *time.Weekday // set only for weekly habits
	Delay     time.Duration // one-shot delay triggers; zero when Hour/Minute apply
}

// NewCalendarTrigger builds a repeating calendar trigger.
func NewCalendarTrigger(hour, minute int, repeating bool) Trigger {
	return Trigger{Repeating: repeating, Hour: hour, Minute: minute}
}

// NewDelayTrigger builds a one-shot trigger firing after the given delay.
func NewDelayTrigger(delay time.Duration) Trigger {
	return Trigger{Delay: delay}
}
