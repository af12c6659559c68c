package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cfdi-processor/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.App.BaseDir)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.False(t, cfg.Server.Debug)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CFDI_BASE_DIR", "/srv/facturas")
	t.Setenv("CFDI_SERVER_ADDRESS", ":9090")
	t.Setenv("CFDI_SERVER_READ_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/facturas", cfg.App.BaseDir)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CFDI_SERVER_READ_TIMEOUT", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
