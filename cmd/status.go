package cmd

import (
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current progress",
	Long:  `Print the day, year and life progress, plus the countdown and deadline when set. Same as "hourglass --headless".`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSnapshot(cmd)
	},
}
