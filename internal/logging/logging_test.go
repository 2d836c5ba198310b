package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hourglass.log")
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	require.NoError(t, Trim(path, 5))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, []string{"line 15", "line 16", "line 17", "line 18", "line 19"}, lines)
}

func TestTrim_OverlongLineKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hourglass.log")
	content := "first\n" + strings.Repeat("x", 2*1024*1024) + "\nlast\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	assert.Error(t, Trim(path, 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(content), len(data))
}

func TestTrim_MissingFile(t *testing.T) {
	assert.NoError(t, Trim(filepath.Join(t.TempDir(), "nope.log"), 5))
}

func TestSetup_DebugWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hourglass.log")
	restore, err := Setup(path, true)
	require.NoError(t, err)

	logrus.WithField("seq", "1b4f70").Debug("decoded")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seq=1b4f70")
}

func TestSetup_DiscardWhenNotDebug(t *testing.T) {
	restore, err := Setup("", false)
	require.NoError(t, err)
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)
	restore()
	assert.NotEqual(t, io.Discard, logrus.StandardLogger().Out)
}
