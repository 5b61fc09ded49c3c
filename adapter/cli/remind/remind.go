package remind

import (
	"github.com/spf13/cobra"
)

// Cmd is the remind command group
var Cmd = &cobra.Command{
	Use:   "remind",
	Short: "Run and inspect adaptive reminder scheduling",
}

func init() {
	Cmd.AddCommand(runCmd)
	Cmd.AddCommand(previewCmd)
	Cmd.AddCommand(feedbackCmd)
	Cmd.AddCommand(rebalanceCmd)
}
