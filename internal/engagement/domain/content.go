package domain

// Priority controls how prominently the delivery channel surfaces a
// notification.
type Priority string

const (
	PriorityPassive       Priority = "passive"
	PriorityActive        Priority = "active"
	PriorityTimeSensitive Priority = "time_sensitive"
)

// SoundCategory selects the notification sound class.
type SoundCategory string

const (
	SoundDefault     SoundCategory = "default"
	SoundCelebration SoundCategory = "celebration"
	SoundUrgent      SoundCategory = "urgent"
)

// NotificationContent is the human-facing payload handed to the delivery
// channel. Metadata is an opaque key/value bag the channel round-trips back
// on interaction events.
type NotificationContent struct {
	Title    string
	Body     string
	Priority Priority
	Sound    SoundCategory
	Metadata map[string]string
}
