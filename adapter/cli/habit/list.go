package habit

import (
	"fmt"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/spf13/cobra"
)

var showAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		habits, err := app.Habits.FindAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		if len(habits) == 0 {
			fmt.Println("No habits yet. Create one with: nudge habit create \"...\"")
			return nil
		}

		for _, h := range habits {
			if !h.IsActive() && !showAll {
				continue
			}
			status := ""
			if !h.IsActive() {
				status = " (inactive)"
			}
			fmt.Printf("%s  %s [%s, %s] streak=%d best=%d%s\n",
				h.ID(), h.Name(), h.Category(), h.Frequency(), h.Streak(), h.BestStreak(), status)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include inactive habits")
}
