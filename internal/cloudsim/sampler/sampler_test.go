package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSampler_Sample(t *testing.T) {
	s := NewSystemSampler()

	t.Run("always returns a sample", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			sample := s.Sample("sim-1")
			require.NotNil(t, sample)
			assert.Equal(t, "sim-1", sample.SimulationID)
			assert.False(t, sample.Timestamp.IsZero())
		}
	})

	t.Run("readings stay inside their bands", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			sample := s.Sample("sim-1")

			assert.GreaterOrEqual(t, sample.CPUUsage, 5.0)
			assert.LessOrEqual(t, sample.CPUUsage, 95.0)
			assert.GreaterOrEqual(t, sample.MemoryUsage, 10.0)
			assert.LessOrEqual(t, sample.MemoryUsage, 90.0)
			assert.GreaterOrEqual(t, sample.NetworkIO, 10.0)
			assert.LessOrEqual(t, sample.NetworkIO, 100.0)
			assert.GreaterOrEqual(t, sample.DiskIO, 10.0)
			assert.LessOrEqual(t, sample.DiskIO, 100.0)
		}
	})

	t.Run("consecutive samples vary", func(t *testing.T) {
		seen := make(map[float64]bool)
		for i := 0; i < 20; i++ {
			seen[s.Sample("sim-1").NetworkIO] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, clamp(-10, 5, 95))
	assert.Equal(t, 95.0, clamp(200, 5, 95))
	assert.Equal(t, 50.0, clamp(50, 5, 95))
}
