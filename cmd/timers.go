package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/hourglass/internal/domain"
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Manage the countdown timer",
	Long: `Set, pause, reset or clear the countdown shown on the dashboard.
The countdown only advances while the dashboard is open.`,
}

var countdownSetCmd = &cobra.Command{
	Use:   "set HHMMSS",
	Short: "Start a new countdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := domain.ParseCountdownDigits(args[0])
		if err != nil {
			return err
		}
		if err := app.timers.SetCountdown(context.Background(), seconds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Countdown set: %s\n", domain.FormatHMS(int64(seconds)))
		return nil
	},
}

var countdownToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Pause or resume the countdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.timers.ToggleCountdown(context.Background()); err != nil {
			return err
		}
		c := app.timers.Countdown()
		fmt.Fprintf(cmd.OutOrStdout(), "Countdown %s: %s\n", c.Status(), c.RemainingText())
		return nil
	},
}

var countdownResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the full duration, paused",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.timers.ResetCountdown(context.Background()); err != nil {
			return err
		}
		c := app.timers.Countdown()
		fmt.Fprintf(cmd.OutOrStdout(), "Countdown reset: %s\n", c.RemainingText())
		return nil
	},
}

var countdownClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the countdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.timers.ClearCountdown(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Countdown cleared.")
		return nil
	},
}

var deadlineCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Manage the deadline timer",
	Long:  `Set or clear the deadline. Progress runs from the moment it is set to the target.`,
}

var deadlineSetCmd = &cobra.Command{
	Use:   "set YYYYMMDDHHMM",
	Short: "Point the deadline at a local date and time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		target, err := domain.ParseDeadlineDigits(args[0], now.Location())
		if err != nil {
			return err
		}
		if err := app.timers.SetDeadline(context.Background(), target, now); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deadline set: %s\n", target.Format("2006-01-02 15:04"))
		return nil
	},
}

var deadlineClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the deadline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.timers.ClearDeadline(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deadline cleared.")
		return nil
	},
}

func init() {
	countdownCmd.AddCommand(countdownSetCmd, countdownToggleCmd, countdownResetCmd, countdownClearCmd)
	deadlineCmd.AddCommand(deadlineSetCmd, deadlineClearCmd)
}
