package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the countdown and the deadline",
	Long: `Removes both timers from the store. The date of birth and settings are kept.
Use --force to skip the confirmation prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !resetForce {
			fmt.Fprintf(out, "This will clear both timers in: %s\n", app.timers.Location())
			fmt.Fprint(out, "Are you sure? Type 'yes' to confirm: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		ctx := context.Background()
		if err := app.timers.ClearCountdown(ctx); err != nil {
			return fmt.Errorf("failed to clear countdown: %w", err)
		}
		if err := app.timers.ClearDeadline(ctx); err != nil {
			return fmt.Errorf("failed to clear deadline: %w", err)
		}

		fmt.Fprintln(out, "Timers cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}
