package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewWithWriter(t *testing.T) {
	buf := new(bytes.Buffer)
	log, err := NewWithWriter(buf, "warn")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", slog.String("worker", "mapper-1"))

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "worker=mapper-1")
}
