package remind

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling pass over all active habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		if err := app.Orchestrator.RunSchedulingPass(cmd.Context()); err != nil {
			return fmt.Errorf("scheduling pass failed: %w", err)
		}

		pending := app.Channel.Pending()
		sort.Slice(pending, func(i, j int) bool {
			return pending[i].Identifier < pending[j].Identifier
		})

		fmt.Printf("Scheduling pass complete: %d pending notification(s)\n", len(pending))
		for _, p := range pending {
			when := fmt.Sprintf("%02d:%02d", p.Trigger.Hour, p.Trigger.Minute)
			if p.Trigger.Delay > 0 {
				when = "in " + p.Trigger.Delay.String()
			}
			fmt.Printf("  [%s] %s — %q (%s)\n", p.Identifier, when, p.Content.Title, p.Content.Priority)
		}

		return nil
	},
}
