package habit

import (
	"fmt"

	"github.com/felixgeelhaar/nudge/adapter/cli"
	"github.com/felixgeelhaar/nudge/internal/habits/domain"
	"github.com/spf13/cobra"
)

var (
	category  string
	frequency string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new habit",
	Long: `Create a new recurring habit to track.

Categories:
  health, fitness, learning, productivity, social, creativity,
  mindfulness, other

Frequencies:
  daily   - Every day
  weekly  - Once per week
  custom  - Irregular cadence

Examples:
  nudge habit create "Morning meditation" -c mindfulness
  nudge habit create "Read" -c learning -f weekly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return fmt.Errorf("application not initialized")
		}

		habit, err := app.HabitService.Create(cmd.Context(), args[0], domain.Category(category), domain.Frequency(frequency))
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		fmt.Printf("Created habit: %s\n", habit.Name())
		fmt.Printf("  ID: %s\n", habit.ID())
		fmt.Printf("  Category: %s\n", habit.Category())
		fmt.Printf("  Frequency: %s\n", habit.Frequency())

		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&category, "category", "c", "other", "habit category")
	createCmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "habit frequency")
}
