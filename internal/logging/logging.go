// Package logging routes the logrus standard logger while the full-screen
// dashboard owns the terminal.
package logging

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// MaxLines is how many lines of the debug log survive between sessions.
const MaxLines = 500

// Setup points the standard logger at path when debug is on, otherwise at
// io.Discard. The returned func restores the previous output and level and
// closes the file.
func Setup(path string, debug bool) (func(), error) {
	logger := logrus.StandardLogger()
	prevOut := logger.Out
	prevLevel := logger.GetLevel()
	restore := func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
	}

	if !debug {
		logrus.SetOutput(io.Discard)
		return restore, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return restore, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := Trim(path, MaxLines); err != nil {
		return restore, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return restore, fmt.Errorf("failed to open log file: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetLevel(logrus.DebugLevel)
	return func() {
		restore()
		_ = f.Close()
	}, nil
}

// Trim keeps only the last n lines of the file at path. A missing file is
// not an error.
func Trim(path string, n int) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	var lines [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, append([]byte(nil), scanner.Bytes()...))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	if len(lines) <= n {
		return nil
	}

	kept := bytes.Join(lines[len(lines)-n:], []byte("\n"))
	kept = append(kept, '\n')
	if err := os.WriteFile(path, kept, 0644); err != nil {
		return fmt.Errorf("failed to trim log file: %w", err)
	}
	return nil
}
