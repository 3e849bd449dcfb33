package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invkit/recount/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "50", cfg.PrimaryWarehouse)
	assert.Equal(t, "ST01", cfg.BufferLocation)
	assert.Equal(t, "ADJUST", cfg.Mode)
	assert.NotEmpty(t, cfg.NotesPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("RECOUNT_PRIMARY_WAREHOUSE", "60")
	t.Setenv("RECOUNT_BUFFER_LOCATION", "BUF1")
	t.Setenv("RECOUNT_MODE", "TRANSFER")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "60", cfg.PrimaryWarehouse)
	assert.Equal(t, "BUF1", cfg.BufferLocation)
	assert.Equal(t, "TRANSFER", cfg.Mode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &config.Config{Output: "table"}

	cfg.UpdateFromFlags(true, false, true, "json")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "json", cfg.Output)

	// Empty output leaves the previous value in place.
	cfg.UpdateFromFlags(false, true, false, "")
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "json", cfg.Output)
}
