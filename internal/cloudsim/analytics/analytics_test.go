package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/cloudsim-dash/cloudsim-backend/internal/pricing"
)

func defaultRates() pricing.Rates {
	return pricing.Rates{
		InstanceRate:  15.50,
		CPUCoreRate:   8.00,
		MemoryGBRate:  4.00,
		StorageGBRate: 0.10,
	}
}

func sampleSet(cpu, mem float64, n int) []*domain.MetricSample {
	samples := make([]*domain.MetricSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, &domain.MetricSample{
			CPUUsage:    cpu,
			MemoryUsage: mem,
			NetworkIO:   50,
			DiskIO:      40,
		})
	}
	return samples
}

func TestCostEstimate(t *testing.T) {
	t.Run("applies the linear cost model", func(t *testing.T) {
		cfg := domain.SimulationConfig{
			Instances: 2, CPUCores: 4, MemoryGB: 8, StorageGB: 100,
		}

		costs := CostEstimate(cfg, defaultRates())

		// 2*15.50 + 2*4*8.00 + 2*8*4.00 + 2*100*0.10 = 31 + 64 + 64 + 20
		assert.InDelta(t, 31.0, costs.Breakdown.Instances, 0.001)
		assert.InDelta(t, 64.0, costs.Breakdown.CPU, 0.001)
		assert.InDelta(t, 64.0, costs.Breakdown.Memory, 0.001)
		assert.InDelta(t, 20.0, costs.Breakdown.Storage, 0.001)
		assert.InDelta(t, 179.0, costs.Monthly, 0.001)
		assert.InDelta(t, 179.0/30, costs.Daily, 0.001)
		assert.InDelta(t, 179.0/30/24, costs.Hourly, 0.001)
	})

	t.Run("every term scales with instance count", func(t *testing.T) {
		cfg := domain.SimulationConfig{
			Instances: 1, CPUCores: 2, MemoryGB: 4, StorageGB: 50,
		}
		single := CostEstimate(cfg, defaultRates())

		cfg.Instances = 3
		tripled := CostEstimate(cfg, defaultRates())

		assert.InDelta(t, single.Monthly*3, tripled.Monthly, 0.001)
	})
}

func TestPerformance(t *testing.T) {
	t.Run("nil for empty sample set", func(t *testing.T) {
		assert.Nil(t, Performance(nil))
		assert.Nil(t, Performance([]*domain.MetricSample{}))
	})

	t.Run("computes averages and peaks", func(t *testing.T) {
		samples := []*domain.MetricSample{
			{CPUUsage: 20, MemoryUsage: 30, NetworkIO: 100, DiskIO: 10},
			{CPUUsage: 40, MemoryUsage: 50, NetworkIO: 200, DiskIO: 30},
			{CPUUsage: 90, MemoryUsage: 70, NetworkIO: 300, DiskIO: 50},
		}

		report := Performance(samples)
		require.NotNil(t, report)

		assert.InDelta(t, 50.0, report.Averages.CPU, 0.001)
		assert.InDelta(t, 50.0, report.Averages.Memory, 0.001)
		assert.InDelta(t, 200.0, report.Averages.Network, 0.001)
		assert.InDelta(t, 30.0, report.Averages.Disk, 0.001)
		assert.InDelta(t, 90.0, report.Peaks.CPU, 0.001)
		assert.InDelta(t, 70.0, report.Peaks.Memory, 0.001)
	})

	t.Run("efficiency classification", func(t *testing.T) {
		cases := []struct {
			name     string
			cpu, mem float64
			want     string
		}{
			{"low usage is good", 40, 50, EfficiencyGood},
			{"just under the good bounds", 69.9, 79.9, EfficiencyGood},
			{"cpu over 70 is fair", 75, 50, EfficiencyFair},
			{"memory over 80 is fair", 40, 85, EfficiencyFair},
			{"cpu over 85 is poor", 90, 50, EfficiencyPoor},
			{"memory over 90 is poor", 40, 95, EfficiencyPoor},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				report := Performance(sampleSet(tc.cpu, tc.mem, 5))
				require.NotNil(t, report)
				assert.Equal(t, tc.want, report.Efficiency)
			})
		}
	})
}

func TestForecast(t *testing.T) {
	runningSim := func() *domain.Simulation {
		return &domain.Simulation{
			Status: domain.StatusRunning,
			Config: domain.SimulationConfig{
				Instances: 2, CPUCores: 4, MemoryGB: 8, StorageGB: 100,
			},
		}
	}

	t.Run("projects full cost while running", func(t *testing.T) {
		f := Forecast(runningSim(), sampleSet(50, 60, 5), defaultRates())
		assert.InDelta(t, 179.0, f.ProjectedMonthlyCost, 0.001)
	})

	t.Run("projects a tenth when not running", func(t *testing.T) {
		sim := runningSim()
		sim.Status = domain.StatusStopped
		f := Forecast(sim, sampleSet(50, 60, 5), defaultRates())
		assert.InDelta(t, 17.9, f.ProjectedMonthlyCost, 0.001)
	})

	t.Run("low cpu suggests fewer cores", func(t *testing.T) {
		f := Forecast(runningSim(), sampleSet(20, 60, 5), defaultRates())

		var rec *Recommendation
		for i := range f.Recommendations {
			if f.Recommendations[i].Message == "Consider reducing CPU cores to save costs" {
				rec = &f.Recommendations[i]
			}
		}
		require.NotNil(t, rec)
		assert.Equal(t, RecommendationCostOptimization, rec.Type)
		// 30% of the CPU cost component: 64 * 0.3
		assert.InDelta(t, 19.2, rec.Savings, 0.001)
	})

	t.Run("low memory suggests smaller allocation", func(t *testing.T) {
		f := Forecast(runningSim(), sampleSet(50, 30, 5), defaultRates())

		var rec *Recommendation
		for i := range f.Recommendations {
			if f.Recommendations[i].Message == "Consider reducing memory allocation" {
				rec = &f.Recommendations[i]
			}
		}
		require.NotNil(t, rec)
		assert.InDelta(t, 16.0, rec.Savings, 0.001) // 64 * 0.25
	})

	t.Run("cpu peak suggests auto-scaling", func(t *testing.T) {
		samples := sampleSet(50, 60, 5)
		samples[2].CPUUsage = 95

		f := Forecast(runningSim(), samples, defaultRates())

		found := false
		for _, rec := range f.Recommendations {
			if rec.Type == RecommendationPerformance {
				found = true
				assert.Equal(t, "Improved reliability", rec.Impact)
			}
		}
		assert.True(t, found)
	})

	t.Run("healthy usage yields no recommendations", func(t *testing.T) {
		f := Forecast(runningSim(), sampleSet(50, 60, 5), defaultRates())
		assert.Empty(t, f.Recommendations)
	})

	t.Run("trend follows average cpu", func(t *testing.T) {
		f := Forecast(runningSim(), sampleSet(50, 60, 5), defaultRates())
		assert.Equal(t, "stable", f.UtilizationTrend)

		f = Forecast(runningSim(), sampleSet(70, 60, 5), defaultRates())
		assert.Equal(t, "increasing", f.UtilizationTrend)
	})

	t.Run("no samples still yields a forecast", func(t *testing.T) {
		f := Forecast(runningSim(), nil, defaultRates())
		assert.InDelta(t, 179.0, f.ProjectedMonthlyCost, 0.001)
		assert.Empty(t, f.Recommendations)
		assert.Equal(t, "stable", f.UtilizationTrend)
	})
}

func TestAnalyze(t *testing.T) {
	sim := &domain.Simulation{
		Status: domain.StatusRunning,
		Config: domain.SimulationConfig{
			Instances: 2, CPUCores: 4, MemoryGB: 8, StorageGB: 100,
		},
	}

	t.Run("bundles all three reports", func(t *testing.T) {
		report := Analyze(sim, sampleSet(50, 60, 5), defaultRates())

		assert.InDelta(t, 179.0, report.Costs.Monthly, 0.001)
		require.NotNil(t, report.Performance)
		assert.Equal(t, EfficiencyGood, report.Performance.Efficiency)
		assert.Equal(t, "stable", report.Forecast.UtilizationTrend)
	})

	t.Run("omits performance without samples", func(t *testing.T) {
		report := Analyze(sim, nil, defaultRates())
		assert.Nil(t, report.Performance)
		assert.InDelta(t, 179.0, report.Costs.Monthly, 0.001)
	})
}
