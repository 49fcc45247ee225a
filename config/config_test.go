package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without env vars", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, 5, cfg.Sampler.IntervalSeconds)
		assert.Equal(t, 15.50, cfg.Pricing.InstanceRate)
		assert.Equal(t, 8.00, cfg.Pricing.CPUCoreRate)
		assert.Equal(t, 4.00, cfg.Pricing.MemoryGBRate)
		assert.Equal(t, 0.10, cfg.Pricing.StorageGBRate)
		assert.False(t, cfg.Pricing.AWSRefreshEnabled)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("SAMPLER_INTERVAL_SECONDS", "30")
		t.Setenv("PRICING_INSTANCE_RATE", "20.25")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 30, cfg.Sampler.IntervalSeconds)
		assert.Equal(t, 20.25, cfg.Pricing.InstanceRate)
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("SAMPLER_INTERVAL_SECONDS", "soon")
		t.Setenv("PRICING_CPU_CORE_RATE", "cheap")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Sampler.IntervalSeconds)
		assert.Equal(t, 8.00, cfg.Pricing.CPUCoreRate)
	})

	t.Run("rejects sub-second sampler interval", func(t *testing.T) {
		t.Setenv("SAMPLER_INTERVAL_SECONDS", "0")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestArchiveEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.ArchiveEnabled())

	cfg.Database.Host = "localhost"
	assert.True(t, cfg.ArchiveEnabled())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	dc := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres", Password: "secret", Name: "cloudsim",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=cloudsim sslmode=disable",
		dc.DSN())
}
