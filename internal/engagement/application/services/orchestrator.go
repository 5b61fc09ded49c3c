package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
)

// Delays for context-driven one-shot nudges.
const (
	urgentDelay       = 15 * time.Minute
	milestoneDelay    = 30 * time.Minute
	motivationalDelay = 2 * time.Hour
	recoveryDelay     = time.Hour
)

// Orchestrator runs the full per-habit pipeline and emits schedule
// instructions to the delivery channel. It is the engine's entry point for
// the hosting application.
type Orchestrator struct {
	store      domain.BehaviorStore
	delivery   domain.DeliveryChannel
	analyzer   *PatternAnalyzer
	predictor  *PredictionEngine
	planner    *SchedulingPlanner
	generator  *ContentGenerator
	classifier *ContextClassifier
	tracker    *AdaptationTracker
	logger     *slog.Logger
	now        func() time.Time
}

// NewOrchestrator wires the engine together. Store and delivery channel are
// injected so hosts can substitute fakes.
func NewOrchestrator(
	store domain.BehaviorStore,
	delivery domain.DeliveryChannel,
	tracker *AdaptationTracker,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		store:      store,
		delivery:   delivery,
		analyzer:   NewPatternAnalyzer(),
		predictor:  NewPredictionEngine(),
		planner:    NewSchedulingPlanner(),
		generator:  NewContentGenerator(),
		classifier: NewContextClassifier(),
		tracker:    tracker,
		logger:     logger,
		now:        time.Now,
	}
}

// RunSchedulingPass evaluates every active habit and emits at most one
// schedule instruction per habit. A failing habit is logged and skipped; it
// never aborts the batch.
func (o *Orchestrator) RunSchedulingPass(ctx context.Context) error {
	habits, err := o.store.FetchActiveHabits(ctx)
	if err != nil {
		// A store failure means an empty pass, not a crashed one.
		o.logger.Error("failed to fetch active habits, skipping pass", "error", err)
		return nil
	}

	logsByHabit := make(map[uuid.UUID][]*habitsDomain.HabitLog, len(habits))
	for _, habit := range habits {
		logs, err := o.store.FetchLogs(ctx, habit.ID())
		if err != nil {
			o.logger.Warn("failed to fetch logs, treating as empty",
				"habit_id", habit.ID(),
				"error", err,
			)
			logs = nil
		}
		logsByHabit[habit.ID()] = logs
	}

	profile := o.analyzer.BuildProfile(habits, logsByHabit)

	for _, habit := range habits {
		if !habit.IsActive() {
			continue
		}
		if err := o.scheduleHabit(ctx, habit, logsByHabit[habit.ID()], profile); err != nil {
			o.logger.Warn("failed to schedule habit, continuing",
				"habit_id", habit.ID(),
				"habit", habit.Name(),
				"error", err,
			)
		}
	}

	return nil
}

func (o *Orchestrator) scheduleHabit(
	ctx context.Context,
	habit *habitsDomain.Habit,
	logs []*habitsDomain.HabitLog,
	profile domain.UserProfile,
) error {
	patterns := o.analyzer.Analyze(logs)
	prediction := o.predictor.Predict(patterns, habit.Streak())

	if habit.Streak() == 0 && habit.BestStreak() > 0 && len(logs) > 0 {
		// A broken streak gets a gentle recovery nudge instead of the
		// standard cadence. Checked before classification: a zero streak
		// always sits within reach of the first milestone, and a recovery
		// message beats a celebration for a habit that just fell over.
		return o.emit(ctx,
			domain.RecoveryIdentifier(habit.ID()),
			o.generator.Recovery(habit),
			domain.NewDelayTrigger(recoveryDelay),
		)
	}

	habitContext := o.classifier.Classify(habit, recentLogs(logs, o.now()), len(logs))

	var (
		identifier string
		content    domain.NotificationContent
		trigger    domain.Trigger
	)

	switch habitContext {
	case domain.ContextStreakAtRisk:
		identifier = domain.UrgentIdentifier(habit.ID())
		content = o.generator.Urgent(habit)
		trigger = domain.NewDelayTrigger(urgentDelay)

	case domain.ContextMilestoneApproaching:
		next, ok := domain.NextMilestone(habit.Streak())
		if !ok {
			// Past the end of the ladder; fall back to a standard reminder.
			return o.scheduleReminder(ctx, habit, patterns, prediction, profile)
		}
		identifier = domain.MilestoneIdentifier(habit.ID(), next.StreakCount)
		content = o.generator.Milestone(habit, next)
		trigger = domain.NewDelayTrigger(milestoneDelay)

	case domain.ContextLowEngagement:
		identifier = domain.MotivationalIdentifier(habit.ID())
		content = o.generator.Motivational(habit, prediction)
		trigger = domain.NewDelayTrigger(motivationalDelay)

	default:
		return o.scheduleReminder(ctx, habit, patterns, prediction, profile)
	}

	return o.emit(ctx, identifier, content, trigger)
}

// scheduleReminder runs the standard planner + generator path.
func (o *Orchestrator) scheduleReminder(
	ctx context.Context,
	habit *habitsDomain.Habit,
	patterns domain.HabitPatterns,
	prediction domain.StreakPrediction,
	profile domain.UserProfile,
) error {
	bias := o.tracker.BiasFor(ctx, habit.ID())

	if !deliverToday(bias.FrequencyMultiplier, o.now()) {
		// Dampened habits skip some days; clear any stale pending reminder.
		return o.delivery.Cancel(ctx, domain.ReminderIdentifier(habit.ID()))
	}

	rec, trigger := o.planner.Plan(habit, patterns, profile, bias)
	content := o.generator.Reminder(habit, rec, prediction)

	return o.emit(ctx, domain.ReminderIdentifier(habit.ID()), content, trigger)
}

// emit supersedes any pending instruction under identifier: cancel, then
// schedule.
func (o *Orchestrator) emit(ctx context.Context, identifier string, content domain.NotificationContent, trigger domain.Trigger) error {
	if err := o.delivery.Cancel(ctx, identifier); err != nil {
		o.logger.Debug("cancel before schedule failed",
			"identifier", identifier,
			"error", err,
		)
	}
	return o.delivery.Schedule(ctx, identifier, content, trigger)
}

// OnInteraction is invoked by the host when the delivery channel reports a
// user interaction. It records the event and adapts future timing.
func (o *Orchestrator) OnInteraction(ctx context.Context, habitID uuid.UUID, typ domain.InteractionType, timestamp, scheduledTime time.Time) error {
	o.tracker.RecordInteraction(ctx, habitID, typ, timestamp, scheduledTime)
	return o.tracker.ApplyFeedback(ctx, habitID, typ)
}

// deliverToday thins the standard reminder cadence for habits whose
// frequency multiplier fell below 1.0. The decision is a pure function of
// the day so reruns within a day agree with each other.
func deliverToday(multiplier float64, day time.Time) bool {
	if multiplier >= 1 {
		return true
	}
	return float64(day.YearDay()%10) < multiplier*10
}

// recentLogs filters logs to the trailing window the classifier looks at.
func recentLogs(logs []*habitsDomain.HabitLog, now time.Time) []*habitsDomain.HabitLog {
	cutoff := now.AddDate(0, 0, -recentWindowDays)
	var out []*habitsDomain.HabitLog
	for _, l := range logs {
		if l.CompletionDate().After(cutoff) {
			out = append(out, l)
		}
	}
	return out
}
