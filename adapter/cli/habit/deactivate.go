package habit

import (
	"fmt"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deactivateCmd = &cobra.Command{
	Use:   "deactivate [habit-id]",
	Short: "Deactivate a habit so it is no longer scheduled",
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

		habit, err := app.HabitService.Deactivate(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to deactivate habit: %w", err)
		}

		fmt.Printf("Deactivated %s\n", habit.Name())
		return nil
	},
}
