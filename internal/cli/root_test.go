package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/memoryvault/internal/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = newLogger(config.LogConfig{Level: "nonsense"}, &buf)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backfill]\nbirth_year = 1970\n"), 0o644))

	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
	t.Setenv("USER_BIRTH_YEAR", "1982")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 1982, cfg.Backfill.BirthYear)
}

func TestBirthYearFlag(t *testing.T) {
	cfg := config.Default()
	cmd := &cobra.Command{}
	cmd.Flags().Int("birth-year", 0, "")

	assert.Equal(t, 1976, birthYearFlag(cmd, cfg))

	require.NoError(t, cmd.Flags().Set("birth-year", "1990"))
	assert.Equal(t, 1990, birthYearFlag(cmd, cfg))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "backfill-years", "timeline", "classify", "infer-year"} {
		assert.True(t, names[want], want)
	}
}
