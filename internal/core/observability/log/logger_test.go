package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLogger_WritesJSONFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := NewWithOptions(LevelDebug, Options{OutputPaths: []string{path}})
	require.NoError(t, err)

	child := logger.With(String("component", "registry"))
	child.Info("bound", Int("child_id", 3), Error(errors.New("boom")))
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(raw)
	assert.True(t, strings.Contains(line, `"component":"registry"`), line)
	assert.True(t, strings.Contains(line, `"child_id":3`), line)
	assert.True(t, strings.Contains(line, `"error":"boom"`), line)
}

func TestLogger_SetLevelAppliesToDerived(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := NewWithOptions(LevelInfo, Options{OutputPaths: []string{path}})
	require.NoError(t, err)
	child := logger.With(String("k", "v"))

	child.Debug("hidden")
	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, child.GetLevel())
	child.Debug("shown")
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("dropped", String("k", "v"))
	assert.NotNil(t, l.With(Bool("x", true)))
}
