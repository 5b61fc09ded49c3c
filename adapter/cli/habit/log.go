package habit

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	logDate string
	xp      int
	missed  bool
)

var logCmd = &cobra.Command{
	Use:   "log [habit-id]",
	Short: "Log a habit completion (or miss) for a date",
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

		when := time.Now()
		if logDate != "" {
			when, err = time.ParseInLocation("2006-01-02", logDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", logDate, err)
			}
		}

		var habit *domain.Habit
		if missed {
			habit, err = app.HabitService.LogMiss(cmd.Context(), id, when)
			if err != nil {
				return fmt.Errorf("failed to log miss: %w", err)
			}
		} else {
			habit, err = app.HabitService.LogCompletion(cmd.Context(), id, when, xp)
			if err != nil {
				return fmt.Errorf("failed to log completion: %w", err)
			}
		}

		if missed {
			fmt.Printf("Logged miss for %s\n", habit.Name())
		} else {
			fmt.Printf("Logged completion for %s (streak: %d)\n", habit.Name(), habit.Streak())
		}

		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "date to log (YYYY-MM-DD, default today)")
	logCmd.Flags().IntVar(&xp, "xp", 10, "XP earned for this completion")
	logCmd.Flags().BoolVar(&missed, "missed", false, "log a miss instead of a completion")
}
