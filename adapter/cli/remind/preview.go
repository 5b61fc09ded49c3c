package remind

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	services "github.com/felixgeelhaar/nudge/internal/engagement/application/services"
	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	habitsDomain "github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [habit-id]",
	Short: "Show the engine's analysis for one habit without scheduling",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit id: %w", err)
		}

		habit, err := app.Habits.FindByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load habit: %w", err)
		}
		if habit == nil {
			return fmt.Errorf("habit %s not found", id)
		}

		logs, err := app.Store.FetchLogs(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load logs: %w", err)
		}

		p, err := buildPreview(cmd.Context(), app, habit, logs)
		if err != nil {
			return err
		}

		fmt.Printf("%s (streak %d, best %d)\n\n", habit.Name(), habit.Streak(), habit.BestStreak())
		fmt.Printf("Patterns:\n")
		fmt.Printf("  consistency: %.2f  momentum: %.2f  volatility: %.2f\n",
			p.patterns.Consistency, p.patterns.Momentum, p.patterns.Volatility)
		fmt.Printf("  weekday preference: %d  time preference: %v\n\n",
			p.patterns.WeekdayPreference, p.patterns.TimePreference)
		fmt.Printf("Prediction: %d%% — %s\n", p.prediction.Probability, p.prediction.RecommendedAction)
		if len(p.prediction.Factors) > 0 {
			fmt.Printf("  factors: %s\n", strings.Join(p.prediction.Factors, "; "))
		}
		fmt.Printf("\nRecommendation: %02d:%02d (success rate %.2f)\n",
			p.trigger.Hour, p.trigger.Minute, p.rec.SuccessRateAtTime)
		fmt.Printf("  %s\n", p.rec.Reasoning)
		if len(p.rec.AlternativeHours) > 0 {
			fmt.Printf("  alternatives: %v\n", p.rec.AlternativeHours)
		}
		fmt.Printf("\nTiming bias: offset %+d min, frequency multiplier %.2f\n",
			p.bias.HourOffsetMinutes, p.bias.FrequencyMultiplier)

		return nil
	},
}

type preview struct {
	patterns   domain.HabitPatterns
	prediction domain.StreakPrediction
	bias       domain.TimingBias
	rec        domain.SchedulingRecommendation
	trigger    domain.Trigger
}

// buildPreview runs the analysis chain for one habit using the same user
// profile the scheduling pass builds, so the previewed hour matches what a
// pass would actually schedule.
func buildPreview(ctx context.Context, app *cli.App, habit *habitsDomain.Habit, logs []*habitsDomain.HabitLog) (preview, error) {
	allHabits, err := app.Store.FetchActiveHabits(ctx)
	if err != nil {
		return preview{}, fmt.Errorf("failed to load habits: %w", err)
	}
	logsByHabit := make(map[uuid.UUID][]*habitsDomain.HabitLog, len(allHabits))
	for _, h := range allHabits {
		habitLogs, err := app.Store.FetchLogs(ctx, h.ID())
		if err != nil {
			return preview{}, fmt.Errorf("failed to load logs: %w", err)
		}
		logsByHabit[h.ID()] = habitLogs
	}

	analyzer := services.NewPatternAnalyzer()
	patterns := analyzer.Analyze(logs)
	prediction := services.NewPredictionEngine().Predict(patterns, habit.Streak())
	bias := app.Tracker.BiasFor(ctx, habit.ID())
	rec, trigger := services.NewSchedulingPlanner().Plan(habit, patterns,
		analyzer.BuildProfile(allHabits, logsByHabit), bias)

	return preview{
		patterns:   patterns,
		prediction: prediction,
		bias:       bias,
		rec:        rec,
		trigger:    trigger,
	}, nil
}
