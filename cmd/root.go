// Package cmd provides the CLI commands for the Hourglass application.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xvierd/hourglass/internal/adapters/tui"
	"github.com/xvierd/hourglass/internal/config"
	"github.com/xvierd/hourglass/internal/logging"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	storeKind  string
	jsonOutput bool
	headless   bool
)

// dobPrompt is printed until a valid date of birth is entered.
const dobPrompt = "Enter date of birth (YYYY-MM-DD): "

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hourglass [day|year|life]",
	Short: "Hourglass - time progress as falling sand",
	Long: `Hourglass shows how much of the current day, year and life has
elapsed as columns of sand, with an optional countdown and deadline.

Run "hourglass" with no arguments to open the full-screen dashboard, or
"hourglass --headless" to print a one-shot report.`,
	Args:          cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs:     []string{"day", "year", "life"},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", storeFile, "Where timers are kept: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the sqlite database (default: <config dir>/hourglass.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "Print a snapshot and exit instead of opening the dashboard")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Hourglass\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(countdownCmd)
	rootCmd.AddCommand(deadlineCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runDashboard opens the interactive dashboard, or prints a snapshot with
// --headless. The positional mode is accepted but every span is always shown.
func runDashboard(cmd *cobra.Command, args []string) error {
	if headless {
		return printSnapshot(cmd)
	}

	ctx := setupSignalHandler()

	dob, ok := app.timers.DOB()
	if !ok {
		var err error
		dob, err = promptDOB(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if errors.Is(err, errDOBAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := app.timers.SetDOB(ctx, dob); err != nil {
			return err
		}
	}

	if err := app.timers.Reconcile(ctx); err != nil {
		logrus.WithError(err).Warn("failed to rewrite restored countdown")
	}

	logPath, err := config.GetLogPath()
	if err != nil {
		return err
	}
	restore, err := logging.Setup(logPath, app.config.Debug)
	defer restore()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	err = tui.Run(ctx, tui.Options{
		Timers:        app.timers,
		Notifier:      app.notifier,
		DOB:           dob,
		LifespanYears: app.config.LifespanYears,
		FPS:           app.config.FPS,
		Debug:         app.config.Debug,
		Theme:         &app.config.Theme,
	})
	if errors.Is(err, tui.ErrNotTerminal) {
		return fmt.Errorf("%w: use --headless for a one-shot report", err)
	}
	return err
}

// errDOBAborted reports that the date of birth prompt was interrupted.
var errDOBAborted = errors.New("date of birth prompt aborted")

// promptDOB asks for a date of birth until a valid YYYY-MM-DD is entered.
// It returns errDOBAborted as soon as ctx is done, even while blocked on in.
func promptDOB(ctx context.Context, in io.Reader, out io.Writer) (time.Time, error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, dobPrompt)
		select {
		case <-ctx.Done():
			return time.Time{}, errDOBAborted
		case line, ok := <-lines:
			if !ok {
				err := <-errc
				switch {
				case ctx.Err() != nil:
					return time.Time{}, errDOBAborted
				case err != nil:
					return time.Time{}, fmt.Errorf("failed to read date of birth: %w", err)
				}
				return time.Time{}, errors.New("no date of birth given")
			}
			if dob, ok := config.ParseDate(strings.TrimSpace(line)); ok {
				return dob, nil
			}
			fmt.Fprintln(out, "Invalid date, expected YYYY-MM-DD.")
		}
	}
}

// printSnapshot writes the headless report to the command's output.
func printSnapshot(cmd *cobra.Command) error {
	ctx := context.Background()

	if jsonOutput {
		data, err := app.snapshots.JSON(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	text, err := app.snapshots.Text(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
