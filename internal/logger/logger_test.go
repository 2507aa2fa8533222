package logger_test

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/errors"
	"codeberg.org/seliv/sysvitals/internal/logger"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name string
		want logger.LogLevel
		ok   bool
	}{
		{"debug", logger.DebugLevel, true},
		{"info", logger.InfoLevel, true},
		{"warning", logger.WarnLevel, true},
		{"error", logger.ErrorLevel, true},
		{"trace", logger.WarnLevel, false},
		{"", logger.WarnLevel, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, ok := logger.ParseLevel(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, level)
		})
	}
}

func TestConfiguredLevelOverridesInitDefault(t *testing.T) {
	logger.Init(false, false, true)
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	level, ok := logger.ParseLevel("error")
	require.True(t, ok)
	logger.SetLogLevel(level)

	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestInitLevelFromBooleans(t *testing.T) {
	logger.Init(true, false, true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger.Init(false, true, true)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

// captureStdout redirects stdout around fn and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestErrorWithCodeEmitsCodeField(t *testing.T) {
	out := captureStdout(t, func() {
		logger.Init(false, false, true)
		err := errors.New().Wrap(errors.ErrPrefsInit, fmt.Errorf("disk full"))
		logger.ErrorWithCode(err).Msg("failed to open preferences store")
	})

	assert.Contains(t, out, string(errors.ErrPrefsInit))
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "failed to open preferences store")
}
