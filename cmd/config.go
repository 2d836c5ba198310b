package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show where settings and timers are stored",
	Long:  `Print the store location, date of birth, lifespan and the stored timers.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return outputConfigJSON(cmd.OutOrStdout(), time.Now())
		}
		printConfigText(cmd.OutOrStdout(), time.Now())
		return nil
	},
}

var setDOBCmd = &cobra.Command{
	Use:   "set-dob YYYY-MM-DD",
	Short: "Set the date of birth used by the life span",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dob, ok := config.ParseDate(args[0])
		if !ok {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[0])
		}
		if err := app.timers.SetDOB(context.Background(), dob); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Date of birth set to %s.\n", dob.Format(config.DateLayout))
		return nil
	},
}

func init() {
	configCmd.AddCommand(setDOBCmd)
}

func dobText() string {
	if dob, ok := app.timers.DOB(); ok {
		return dob.Format(config.DateLayout)
	}
	return "not set"
}

func countdownText(c domain.Countdown) string {
	if !c.Configured {
		return "not set"
	}
	return fmt.Sprintf("%s, %s of %s", c.Status(), c.RemainingText(), domain.FormatHMS(int64(c.Duration)))
}

func deadlineText(d domain.Deadline, now time.Time) string {
	if !d.Configured {
		return "not set"
	}
	target := d.Target.Format("2006-01-02 15:04")
	if d.Done(now) {
		return target + " (" + domain.DoneText + ")"
	}
	return target
}

func printConfigText(out io.Writer, now time.Time) {
	cfg := app.config
	notifStatus := "off"
	if cfg.Notifications.Enabled {
		notifStatus = "on"
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Current configuration:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "    Store:          %s\n", app.timers.Location())
	fmt.Fprintf(out, "    Date of birth:  %s\n", dobText())
	fmt.Fprintf(out, "    Lifespan:       %d years\n", cfg.LifespanYears)
	fmt.Fprintf(out, "    Frame rate:     %d fps\n", cfg.FPS)
	fmt.Fprintf(out, "    Notifications:  %s\n", notifStatus)
	fmt.Fprintf(out, "    Key debug:      %v\n", cfg.Debug)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "    Countdown:      %s\n", countdownText(app.timers.Countdown()))
	fmt.Fprintf(out, "    Deadline:       %s\n", deadlineText(app.timers.Deadline(), now))
	fmt.Fprintln(out)
}

func outputConfigJSON(out io.Writer, now time.Time) error {
	cfg := app.config
	countdown := app.timers.Countdown()
	deadline := app.timers.Deadline()

	result := map[string]interface{}{
		"store":          app.timers.Location(),
		"dob":            nil,
		"lifespan_years": cfg.LifespanYears,
		"fps":            cfg.FPS,
		"notifications":  cfg.Notifications.Enabled,
		"debug":          cfg.Debug,
		"countdown":      nil,
		"deadline":       nil,
	}
	if dob, ok := app.timers.DOB(); ok {
		result["dob"] = dob.Format(config.DateLayout)
	}
	if countdown.Configured {
		result["countdown"] = map[string]interface{}{
			"status":            string(countdown.Status()),
			"duration_seconds":  countdown.Duration,
			"remaining_seconds": countdown.Remaining,
		}
	}
	if deadline.Configured {
		result["deadline"] = map[string]interface{}{
			"target": deadline.Target.Format(time.RFC3339),
			"set_at": deadline.SetAt.Format(time.RFC3339),
			"done":   deadline.Done(now),
		}
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(out, string(jsonData))
	return nil
}
