package remind

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/felixgeelhaar/nudge/internal/engagement/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [habit-id] [dismissed|completed|ignored|snoozed]",
	Short: "Report how a notification was handled",
	Long: `Report a notification interaction so future reminders adapt:

  dismissed - next reminder arrives 15 minutes later
  ignored   - next reminder arrives 15 minutes earlier
  completed - current timing is reinforced
  snoozed   - reminder frequency is dampened`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit id: %w", err)
		}

		typ := domain.InteractionType(args[1])
		if !typ.IsValid() {
			return fmt.Errorf("unknown interaction type %q", args[1])
		}

		now := time.Now()
		if err := app.Orchestrator.OnInteraction(cmd.Context(), id, typ, now, now); err != nil {
			return fmt.Errorf("failed to apply feedback: %w", err)
		}

		bias := app.Tracker.BiasFor(cmd.Context(), id)
		fmt.Printf("Feedback recorded: %s\n", typ)
		fmt.Printf("  offset: %+d min, frequency multiplier: %.2f\n",
			bias.HourOffsetMinutes, bias.FrequencyMultiplier)

		return nil
	},
}
