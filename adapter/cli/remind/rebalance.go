package remind

import (
	"fmt"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/spf13/cobra"
)

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Rebalance reminder frequencies across all active habits",
	Long: `Rebalance reminder frequency for every active habit: habits with a
recent success rate above 80% get fewer reminders, habits below 30% get
more support. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		if err := app.Tracker.RebalanceFrequencies(cmd.Context()); err != nil {
			return fmt.Errorf("rebalance failed: %w", err)
		}

		fmt.Println("Rebalance complete.")
		return nil
	},
}
