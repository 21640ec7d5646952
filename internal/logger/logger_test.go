package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crop-doctor/internal/env"
)

func TestNew_DevelopmentWritesToConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Development, WithConsole(&buf))

	log.Debug("table loaded", "entries", 7)
	require.Contains(t, buf.String(), "table loaded")
	require.Contains(t, buf.String(), "entries")
}

func TestNew_ProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Production, WithConsole(&buf))

	log.Debug("hidden")
	log.Info("shown", "label", "rust")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"label":"rust"`)
}

func TestNew_LogToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(env.Production, WithConsole(&buf), WithLogToFile(true), WithLogFile(path))

	log.With("component", "test").Info("written twice")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written twice")
	require.Contains(t, string(data), `"component":"test"`)
	require.Contains(t, buf.String(), "written twice")
}
