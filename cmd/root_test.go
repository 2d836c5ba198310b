package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/hourglass/internal/domain"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

// isolate points the config file at a temp dir and resets global flags.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOURGLASS_CONFIG", filepath.Join(dir, "config.json"))

	reset := func() {
		dbPath = ""
		storeKind = storeFile
		jsonOutput = false
		headless = false
		resetForce = false
		app = appDeps{}
		rootCmd.SetIn(nil)
		for _, name := range []string{"help", "version"} {
			if f := rootCmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
				f.Changed = false
			}
		}
	}
	reset()
	t.Cleanup(reset)
	return dir
}

// run executes args against the root command with freshly reset flags.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dbPath = ""
	storeKind = storeFile
	jsonOutput = false
	headless = false
	resetForce = false
	stdout, _, err := executeCmd(rootCmd, args...)
	return stdout, err
}

type snapshotJSON struct {
	Now   time.Time `json:"now"`
	Spans []struct {
		Mode      string  `json:"mode"`
		Label     string  `json:"label"`
		Progress  float64 `json:"progress"`
		Remaining string  `json:"remaining"`
		Done      bool    `json:"done"`
	} `json:"spans"`
}

func decodeSnapshot(t *testing.T, out string) snapshotJSON {
	t.Helper()
	var snap snapshotJSON
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("output is not a JSON snapshot: %v\n%s", err, out)
	}
	return snap
}

func labels(snap snapshotJSON) []string {
	var out []string
	for _, s := range snap.Spans {
		out = append(out, s.Label)
	}
	return out
}

func TestRootCmd_Structure(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}
	if rootCmd.Name() != "hourglass" {
		t.Errorf("rootCmd.Name() = %q, want %q", rootCmd.Name(), "hourglass")
	}

	for _, name := range []string{"db", "store", "json"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}
	if rootCmd.Flags().Lookup("headless") == nil {
		t.Error("--headless flag should be registered")
	}

	for _, name := range []string{"status", "config", "countdown", "deadline", "reset", "mcp"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_Help(t *testing.T) {
	isolate(t)

	stdout, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	if !strings.Contains(stdout, "hourglass") {
		t.Error("help output should contain 'hourglass'")
	}
}

func TestRootCmd_Version(t *testing.T) {
	isolate(t)

	stdout, err := run(t, "--version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "Version: "+Version) {
		t.Errorf("version output = %q", stdout)
	}
}

func TestRootCmd_RejectsUnknownMode(t *testing.T) {
	isolate(t)

	if _, err := run(t, "--headless", "week"); err == nil {
		t.Error("expected an error for an unknown positional mode")
	}
}

func TestRootCmd_Headless(t *testing.T) {
	isolate(t)

	stdout, err := run(t, "--headless", "life")
	if err != nil {
		t.Fatalf("headless failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "now: ") {
		t.Errorf("first line = %q, want the timestamp", lines[0])
	}
	for i, label := range []string{"DAY", "YEAR", "LIFE"} {
		if !strings.HasPrefix(lines[i+1], label) {
			t.Errorf("line %d = %q, want %s first", i+1, lines[i+1], label)
		}
	}
}

func TestStatusCmd_JSON(t *testing.T) {
	isolate(t)

	stdout, err := run(t, "status", "--json")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	snap := decodeSnapshot(t, stdout)
	if got := strings.Join(labels(snap), ","); got != "DAY,YEAR,LIFE" {
		t.Errorf("labels = %s, want DAY,YEAR,LIFE", got)
	}
	for _, s := range snap.Spans {
		if s.Progress < 0 || s.Progress > 1 {
			t.Errorf("%s progress %v out of range", s.Label, s.Progress)
		}
	}
}

func TestCountdownCmd(t *testing.T) {
	isolate(t)

	t.Run("invalid digits", func(t *testing.T) {
		_, err := run(t, "countdown", "set", "001360")
		if !errors.Is(err, domain.ErrInvalidDurationDigits) {
			t.Errorf("err = %v, want ErrInvalidDurationDigits", err)
		}
		_, err = run(t, "countdown", "set", "000000")
		if !errors.Is(err, domain.ErrInvalidDuration) {
			t.Errorf("err = %v, want ErrInvalidDuration", err)
		}
	})

	t.Run("toggle without countdown", func(t *testing.T) {
		_, err := run(t, "countdown", "toggle")
		if !errors.Is(err, domain.ErrCountdownNotConfigured) {
			t.Errorf("err = %v, want ErrCountdownNotConfigured", err)
		}
	})

	t.Run("set persists", func(t *testing.T) {
		stdout, err := run(t, "countdown", "set", "000130")
		if err != nil {
			t.Fatalf("countdown set failed: %v", err)
		}
		if !strings.Contains(stdout, "Countdown set: 00:01:30") {
			t.Errorf("stdout = %q", stdout)
		}

		stdout, err = run(t, "status", "--json")
		if err != nil {
			t.Fatal(err)
		}
		snap := decodeSnapshot(t, stdout)
		if got := strings.Join(labels(snap), ","); got != "DAY,YEAR,LIFE,COUNTDOWN" {
			t.Fatalf("labels = %s", got)
		}
		if snap.Spans[3].Remaining != "00:01:30" {
			t.Errorf("countdown remaining = %q, want 00:01:30", snap.Spans[3].Remaining)
		}
	})

	t.Run("toggle pauses", func(t *testing.T) {
		stdout, err := run(t, "countdown", "toggle")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout, "Countdown paused: 00:01:30") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("reset", func(t *testing.T) {
		stdout, err := run(t, "countdown", "reset")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout, "Countdown reset: 00:01:30") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if _, err := run(t, "countdown", "clear"); err != nil {
			t.Fatal(err)
		}
		stdout, err := run(t, "status", "--json")
		if err != nil {
			t.Fatal(err)
		}
		if n := len(decodeSnapshot(t, stdout).Spans); n != 3 {
			t.Errorf("got %d spans after clear, want 3", n)
		}
	})
}

func TestDeadlineCmd(t *testing.T) {
	isolate(t)

	_, err := run(t, "deadline", "set", "202402301200")
	if !errors.Is(err, domain.ErrInvalidDeadlineDigits) {
		t.Errorf("err = %v, want ErrInvalidDeadlineDigits", err)
	}

	stdout, err := run(t, "deadline", "set", "209901011200")
	if err != nil {
		t.Fatalf("deadline set failed: %v", err)
	}
	if !strings.Contains(stdout, "Deadline set: 2099-01-01 12:00") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, err = run(t, "config", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var cfg map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &cfg); err != nil {
		t.Fatalf("config output is not JSON: %v", err)
	}
	deadline, ok := cfg["deadline"].(map[string]interface{})
	if !ok {
		t.Fatalf("deadline = %v, want an object", cfg["deadline"])
	}
	if deadline["done"] != false {
		t.Errorf("deadline done = %v, want false", deadline["done"])
	}

	stdout, err = run(t, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(labels(decodeSnapshot(t, stdout)), ","); got != "DAY,YEAR,LIFE,DEADLINE" {
		t.Errorf("labels = %s", got)
	}

	if _, err := run(t, "deadline", "clear"); err != nil {
		t.Fatal(err)
	}
	stdout, err = run(t, "config")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Deadline:       not set") {
		t.Errorf("config output = %q", stdout)
	}
}

func TestConfigCmd_SetDOB(t *testing.T) {
	isolate(t)

	if _, err := run(t, "config", "set-dob", "1990-02-30"); err == nil {
		t.Error("expected an error for an impossible date")
	}

	stdout, err := run(t, "config", "set-dob", "1990-05-17")
	if err != nil {
		t.Fatalf("set-dob failed: %v", err)
	}
	if !strings.Contains(stdout, "Date of birth set to 1990-05-17.") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, err = run(t, "config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Date of birth:  1990-05-17", "Lifespan:       85 years", "config.json"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config output missing %q:\n%s", want, stdout)
		}
	}
}

func TestResetCmd(t *testing.T) {
	isolate(t)

	if _, err := run(t, "countdown", "set", "010000"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "deadline", "set", "209901011200"); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetIn(strings.NewReader("no\n"))
	stdout, err := run(t, "reset")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Aborted.") {
		t.Errorf("stdout = %q, want Aborted.", stdout)
	}

	stdout, err = run(t, "reset", "--force")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Timers cleared.") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, err = run(t, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(decodeSnapshot(t, stdout).Spans); n != 3 {
		t.Errorf("got %d spans after reset, want 3", n)
	}
}

func TestSQLiteStore(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "data", "hourglass.db")

	if _, err := run(t, "--store", "sqlite", "--db", db, "countdown", "set", "000005"); err != nil {
		t.Fatalf("countdown set failed: %v", err)
	}

	stdout, err := run(t, "--store", "sqlite", "--db", db, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(labels(decodeSnapshot(t, stdout)), ","); got != "DAY,YEAR,LIFE,COUNTDOWN" {
		t.Errorf("labels = %s", got)
	}

	// the file store is untouched
	stdout, err = run(t, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(decodeSnapshot(t, stdout).Spans); n != 3 {
		t.Errorf("file store has %d spans, want 3", n)
	}
}

func TestUnknownStore(t *testing.T) {
	isolate(t)

	if _, err := run(t, "--store", "redis", "status"); err == nil {
		t.Error("expected an error for an unknown store")
	}
}

func TestPromptDOB(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		prompts int
		wantErr bool
	}{
		{name: "valid", input: "1990-05-17\n", want: "1990-05-17", prompts: 1},
		{name: "retries", input: "soon\n1990-13-01\n 2001-02-03 \n", want: "2001-02-03", prompts: 3},
		{name: "eof", input: "nope\n", prompts: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := new(bytes.Buffer)
			dob, err := promptDOB(context.Background(), strings.NewReader(tt.input), out)

			if (err != nil) != tt.wantErr {
				t.Fatalf("promptDOB() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := strings.Count(out.String(), dobPrompt); got != tt.prompts {
				t.Errorf("prompted %d times, want %d", got, tt.prompts)
			}
			if !tt.wantErr && dob.Format("2006-01-02") != tt.want {
				t.Errorf("dob = %s, want %s", dob.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestPromptDOB_Canceled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := promptDOB(ctx, pr, io.Discard)
		errc <- err
	}()

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, errDOBAborted) {
			t.Errorf("promptDOB() error = %v, want errDOBAborted", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("promptDOB still blocked on input after cancel")
	}
}

// promptWriter signals ready on the first write.
type promptWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	once  sync.Once
	ready chan struct{}
}

func (w *promptWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.once.Do(func() { close(w.ready) })
	return w.buf.Write(p)
}

func TestRootCmd_InterruptAtDOBPrompt(t *testing.T) {
	isolate(t)

	self, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Skip(err)
	}

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	out := &promptWriter{ready: make(chan struct{})}

	rootCmd.SetIn(pr)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"day"})

	errc := make(chan error, 1)
	go func() { errc <- rootCmd.Execute() }()

	select {
	case <-out.ready:
	case err := <-errc:
		t.Fatalf("command returned before prompting: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("date of birth prompt never shown")
	}

	if err := self.Signal(os.Interrupt); err != nil {
		t.Skipf("cannot interrupt own process: %v", err)
	}

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("interrupted prompt returned %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("command still blocked at the date of birth prompt after interrupt")
	}
}
