package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehdislim/carnet/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.DB.URI)
	assert.True(t, cfg.Production())
	assert.Equal(t, "carnet", cfg.DB.Name)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port)
	assert.False(t, cfg.Production())
	assert.Equal(t, "dist", cfg.Static.Dir)
}
