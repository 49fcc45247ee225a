// Package analytics derives display statistics from simulation records and
// their metric samples. Everything here is pure computation: no storage
// access, no side effects.
package analytics

import (
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/cloudsim-dash/cloudsim-backend/internal/pricing"
)

// Efficiency classifications.
const (
	EfficiencyGood = "Good"
	EfficiencyFair = "Fair"
	EfficiencyPoor = "Poor"
)

// Recommendation types.
const (
	RecommendationCostOptimization = "cost-optimization"
	RecommendationPerformance      = "performance"
)

// Averages are arithmetic means across a sample set.
type Averages struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Network float64 `json:"network"`
	Disk    float64 `json:"disk"`
}

// Peaks are maxima across a sample set.
type Peaks struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
}

// PerformanceReport summarizes observed resource usage.
type PerformanceReport struct {
	Averages   Averages `json:"averages"`
	Peaks      Peaks    `json:"peaks"`
	Efficiency string   `json:"efficiency"`
}

// CostBreakdown is the monthly cost split by component.
type CostBreakdown struct {
	Instances float64 `json:"instances"`
	CPU       float64 `json:"cpu"`
	Memory    float64 `json:"memory"`
	Storage   float64 `json:"storage"`
}

// CostReport is the estimated cost of a simulation's configuration.
type CostReport struct {
	Hourly    float64       `json:"hourly"`
	Daily     float64       `json:"daily"`
	Monthly   float64       `json:"monthly"`
	Breakdown CostBreakdown `json:"breakdown"`
}

// Recommendation is a threshold-triggered advisory.
type Recommendation struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Savings float64 `json:"savings,omitempty"`
	Impact  string  `json:"impact,omitempty"`
}

// ForecastReport projects cost and suggests configuration changes.
type ForecastReport struct {
	ProjectedMonthlyCost float64          `json:"projected_monthly_cost"`
	Recommendations      []Recommendation `json:"recommendations"`
	UtilizationTrend     string           `json:"utilization_trend"`
}

// AnalysisReport bundles everything the dashboard's detail view consumes.
type AnalysisReport struct {
	Costs       CostReport         `json:"costs"`
	Performance *PerformanceReport `json:"performance,omitempty"`
	Forecast    ForecastReport     `json:"forecast"`
}

// Performance computes averages, peaks and an efficiency classification.
// Returns nil when there are no samples.
func Performance(samples []*domain.MetricSample) *PerformanceReport {
	if len(samples) == 0 {
		return nil
	}

	var sumCPU, sumMem, sumNet, sumDisk float64
	var maxCPU, maxMem float64
	for _, m := range samples {
		sumCPU += m.CPUUsage
		sumMem += m.MemoryUsage
		sumNet += m.NetworkIO
		sumDisk += m.DiskIO
		if m.CPUUsage > maxCPU {
			maxCPU = m.CPUUsage
		}
		if m.MemoryUsage > maxMem {
			maxMem = m.MemoryUsage
		}
	}

	n := float64(len(samples))
	avg := Averages{
		CPU:     sumCPU / n,
		Memory:  sumMem / n,
		Network: sumNet / n,
		Disk:    sumDisk / n,
	}

	return &PerformanceReport{
		Averages:   avg,
		Peaks:      Peaks{CPU: maxCPU, Memory: maxMem},
		Efficiency: classifyEfficiency(avg.CPU, avg.Memory),
	}
}

// CostEstimate computes the linear cost model over a configuration.
func CostEstimate(cfg domain.SimulationConfig, rates pricing.Rates) CostReport {
	instances := float64(cfg.Instances)

	breakdown := CostBreakdown{
		Instances: instances * rates.InstanceRate,
		CPU:       instances * float64(cfg.CPUCores) * rates.CPUCoreRate,
		Memory:    instances * float64(cfg.MemoryGB) * rates.MemoryGBRate,
		Storage:   instances * float64(cfg.StorageGB) * rates.StorageGBRate,
	}

	monthly := breakdown.Instances + breakdown.CPU + breakdown.Memory + breakdown.Storage
	daily := monthly / 30
	hourly := daily / 24

	return CostReport{
		Hourly:    hourly,
		Daily:     daily,
		Monthly:   monthly,
		Breakdown: breakdown,
	}
}

// Forecast projects the monthly cost and evaluates the advisory rules.
func Forecast(sim *domain.Simulation, samples []*domain.MetricSample, rates pricing.Rates) ForecastReport {
	costs := CostEstimate(sim.Config, rates)
	perf := Performance(samples)

	var recommendations []Recommendation

	if perf != nil && perf.Averages.CPU < 30 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationCostOptimization,
			Message: "Consider reducing CPU cores to save costs",
			Savings: costs.Breakdown.CPU * 0.3,
		})
	}

	if perf != nil && perf.Averages.Memory < 40 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationCostOptimization,
			Message: "Consider reducing memory allocation",
			Savings: costs.Breakdown.Memory * 0.25,
		})
	}

	if perf != nil && perf.Peaks.CPU > 85 {
		recommendations = append(recommendations, Recommendation{
			Type:    RecommendationPerformance,
			Message: "Consider enabling auto-scaling for peak loads",
			Impact:  "Improved reliability",
		})
	}

	projected := costs.Monthly
	if sim.Status != domain.StatusRunning {
		projected *= 0.1
	}

	trend := "stable"
	if perf != nil && perf.Averages.CPU > 60 {
		trend = "increasing"
	}

	return ForecastReport{
		ProjectedMonthlyCost: projected,
		Recommendations:      recommendations,
		UtilizationTrend:     trend,
	}
}

// Analyze produces the full report for a simulation and its samples.
func Analyze(sim *domain.Simulation, samples []*domain.MetricSample, rates pricing.Rates) AnalysisReport {
	return AnalysisReport{
		Costs:       CostEstimate(sim.Config, rates),
		Performance: Performance(samples),
		Forecast:    Forecast(sim, samples, rates),
	}
}

func classifyEfficiency(avgCPU, avgMemory float64) string {
	switch {
	case avgCPU < 70 && avgMemory < 80:
		return EfficiencyGood
	case avgCPU < 85 && avgMemory < 90:
		return EfficiencyFair
	default:
		return EfficiencyPoor
	}
}
