package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() *CreateSimulationRequest {
	return &CreateSimulationRequest{
		OwnerID:  "user123",
		Name:     "Test Simulation",
		Template: TemplateWebServer,
		Config: SimulationConfig{
			Instances: 3,
			CPUCores:  4,
			MemoryGB:  16,
			StorageGB: 100,
			Region:    "us-east-1",
		},
	}
}

func TestValidateCreate(t *testing.T) {
	t.Run("accepts valid request", func(t *testing.T) {
		err := ValidateCreate(validCreateRequest())
		assert.NoError(t, err)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		req := validCreateRequest()
		req.Name = ""

		err := ValidateCreate(req)
		require.Error(t, err)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "name", vErr.Fields[0].Field)
	})

	t.Run("rejects name over length limit", func(t *testing.T) {
		req := validCreateRequest()
		req.Name = strings.Repeat("x", MaxNameLength+1)

		err := ValidateCreate(req)
		assert.Error(t, err)
	})

	t.Run("rejects unknown template", func(t *testing.T) {
		req := validCreateRequest()
		req.Template = "mainframe"

		err := ValidateCreate(req)
		require.Error(t, err)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "template", vErr.Fields[0].Field)
	})

	t.Run("rejects out-of-range config values", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*SimulationConfig)
			field  string
		}{
			{"instances too low", func(c *SimulationConfig) { c.Instances = 0 }, "config.instances"},
			{"instances too high", func(c *SimulationConfig) { c.Instances = 11 }, "config.instances"},
			{"cpu cores too high", func(c *SimulationConfig) { c.CPUCores = 9 }, "config.cpu_cores"},
			{"memory too high", func(c *SimulationConfig) { c.MemoryGB = 33 }, "config.memory_gb"},
			{"storage too low", func(c *SimulationConfig) { c.StorageGB = 9 }, "config.storage_gb"},
			{"storage too high", func(c *SimulationConfig) { c.StorageGB = 1001 }, "config.storage_gb"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validCreateRequest()
				tc.mutate(&req.Config)

				err := ValidateCreate(req)
				require.Error(t, err)

				vErr, ok := err.(*ValidationError)
				require.True(t, ok)
				assert.Equal(t, tc.field, vErr.Fields[0].Field)
			})
		}
	})

	t.Run("rejects missing region", func(t *testing.T) {
		req := validCreateRequest()
		req.Config.Region = ""

		err := ValidateCreate(req)
		require.Error(t, err)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "config.region", vErr.Fields[0].Field)
	})

	t.Run("collects every violated field", func(t *testing.T) {
		req := validCreateRequest()
		req.Name = ""
		req.Config.Instances = 0
		req.Config.CPUCores = 0

		err := ValidateCreate(req)
		require.Error(t, err)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Len(t, vErr.Fields, 3)
	})

	t.Run("accepts boundary values", func(t *testing.T) {
		req := validCreateRequest()
		req.Config = SimulationConfig{
			Instances: MaxInstances,
			CPUCores:  MaxCPUCores,
			MemoryGB:  MaxMemoryGB,
			StorageGB: MaxStorageGB,
			Region:    "us-east-1",
		}
		assert.NoError(t, ValidateCreate(req))

		req.Config = SimulationConfig{
			Instances: MinInstances,
			CPUCores:  MinCPUCores,
			MemoryGB:  MinMemoryGB,
			StorageGB: MinStorageGB,
			Region:    "us-east-1",
		}
		assert.NoError(t, ValidateCreate(req))
	})
}

func TestValidateUpdate(t *testing.T) {
	t.Run("accepts empty update", func(t *testing.T) {
		assert.NoError(t, ValidateUpdate(&UpdateSimulationRequest{}))
	})

	t.Run("rejects empty name when present", func(t *testing.T) {
		name := ""
		err := ValidateUpdate(&UpdateSimulationRequest{Name: &name})
		assert.Error(t, err)
	})

	t.Run("checks only fields that are present", func(t *testing.T) {
		cores := 12
		err := ValidateUpdate(&UpdateSimulationRequest{
			Config: &ConfigUpdate{CPUCores: &cores},
		})
		require.Error(t, err)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "config.cpu_cores", vErr.Fields[0].Field)
	})

	t.Run("accepts valid partial config", func(t *testing.T) {
		instances := 5
		err := ValidateUpdate(&UpdateSimulationRequest{
			Config: &ConfigUpdate{Instances: &instances},
		})
		assert.NoError(t, err)
	})
}

func TestConfigUpdate_ApplyTo(t *testing.T) {
	t.Run("merges only the provided fields", func(t *testing.T) {
		cfg := SimulationConfig{
			Instances: 3, CPUCores: 4, MemoryGB: 16, StorageGB: 100,
			Region: "us-east-1", AutoScaling: true, LoadBalancer: true,
		}

		instances := 5
		region := "eu-west-1"
		update := &ConfigUpdate{Instances: &instances, Region: &region}
		update.ApplyTo(&cfg)

		assert.Equal(t, 5, cfg.Instances)
		assert.Equal(t, "eu-west-1", cfg.Region)
		// Untouched fields keep their values
		assert.Equal(t, 4, cfg.CPUCores)
		assert.Equal(t, 16, cfg.MemoryGB)
		assert.Equal(t, 100, cfg.StorageGB)
		assert.True(t, cfg.AutoScaling)
		assert.True(t, cfg.LoadBalancer)
	})

	t.Run("can flip booleans to false", func(t *testing.T) {
		cfg := SimulationConfig{AutoScaling: true, LoadBalancer: true}
		off := false
		(&ConfigUpdate{AutoScaling: &off}).ApplyTo(&cfg)

		assert.False(t, cfg.AutoScaling)
		assert.True(t, cfg.LoadBalancer)
	})

	t.Run("nil update is a no-op", func(t *testing.T) {
		cfg := SimulationConfig{Instances: 3}
		var update *ConfigUpdate
		update.ApplyTo(&cfg)
		assert.Equal(t, 3, cfg.Instances)
	})
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusRunning.Valid())
	assert.True(t, StatusStopped.Valid())
	assert.True(t, StatusPaused.Valid())
	assert.True(t, StatusError.Valid())
	assert.False(t, Status("BOOTING").Valid())
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionStart.Valid())
	assert.True(t, ActionStop.Valid())
	assert.True(t, ActionPause.Valid())
	assert.True(t, ActionRestart.Valid())
	assert.False(t, Action("terminate").Valid())
}

func TestTemplatePresets(t *testing.T) {
	presets := TemplatePresets()
	require.Len(t, presets, 4)

	byID := make(map[Template]TemplatePreset, len(presets))
	for _, p := range presets {
		byID[p.ID] = p
	}

	web, ok := byID[TemplateWebServer]
	require.True(t, ok)
	assert.Equal(t, 3, web.DefaultConfig.Instances)
	assert.InDelta(t, 45.50, web.EstimatedCost, 0.001)

	dr, ok := byID[TemplateDisasterRecovery]
	require.True(t, ok)
	assert.InDelta(t, 156.80, dr.EstimatedCost, 0.001)

	// Every preset's config must itself pass validation
	for _, p := range presets {
		req := &CreateSimulationRequest{
			OwnerID:  "user123",
			Name:     p.Name,
			Template: p.ID,
			Config:   p.DefaultConfig,
		}
		assert.NoError(t, ValidateCreate(req), "preset %s", p.ID)
	}
}
