// Package sampler produces point-in-time resource-usage snapshots for
// simulations. Probes are intentionally lightweight: a timed CPU burn, the
// Go heap ratio, a throwaway temp-file write. When a probe is unavailable
// the sampler degrades to randomized values inside fixed bounds, so a call
// always yields a sample and never an error.
package sampler

import (
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
)

// Fallback bounds, used when a probe cannot run.
const (
	fallbackCPUMin, fallbackCPUSpan   = 20, 30 // 20-50%
	fallbackMemMin, fallbackMemSpan   = 30, 40 // 30-70%
	fallbackNetMin, fallbackNetSpan   = 40, 50 // 40-90 units
	fallbackDiskMin, fallbackDiskSpan = 30, 40 // 30-70 units
)

const cpuBurnIterations = 100000

// SystemSampler takes resource snapshots from the local environment.
type SystemSampler struct{}

// NewSystemSampler creates a new SystemSampler
func NewSystemSampler() *SystemSampler {
	return &SystemSampler{}
}

// Sample returns one metric sample for the given simulation. It never fails:
// every probe has a randomized fallback.
func (s *SystemSampler) Sample(simulationID string) *domain.MetricSample {
	sample := &domain.MetricSample{
		SimulationID: simulationID,
		CPUUsage:     s.probeCPU(),
		MemoryUsage:  s.probeMemory(),
		NetworkIO:    s.probeNetwork(),
		DiskIO:       s.probeDisk(),
		Timestamp:    time.Now(),
	}

	// Keep readings inside realistic dashboard bands, with some variation
	sample.CPUUsage = clamp(sample.CPUUsage+(rand.Float64()-0.5)*10, 5, 95)
	sample.MemoryUsage = clamp(sample.MemoryUsage, 10, 90)
	sample.NetworkIO = clamp(sample.NetworkIO, 10, 100)
	sample.DiskIO = clamp(sample.DiskIO, 10, 100)

	return sample
}

// probeCPU times a fixed square-root burn and scales the duration against a
// baseline. Slower means a busier CPU.
func (s *SystemSampler) probeCPU() float64 {
	start := time.Now()
	sum := 0.0
	for i := 0; i < cpuBurnIterations; i++ {
		sum += math.Sqrt(float64(i))
	}
	_ = sum
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	const baseline = 1.0 // ms
	load := ((elapsed - baseline) / baseline) * 10
	if load < 0 || math.IsNaN(load) {
		return fallbackCPU()
	}
	return math.Min(100, load)
}

// probeMemory reads the Go heap usage ratio as a stand-in for system memory.
func (s *SystemSampler) probeMemory() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if m.HeapSys == 0 {
		return fallbackMem()
	}
	return float64(m.HeapAlloc) / float64(m.HeapSys) * 100
}

// probeNetwork has no cheap local signal, so it synthesizes a figure inside
// the fallback band with per-call jitter.
func (s *SystemSampler) probeNetwork() float64 {
	return fallbackNet()
}

// probeDisk times a small temp-file write/read round trip. A faster round
// trip maps to a higher throughput figure.
func (s *SystemSampler) probeDisk() float64 {
	start := time.Now()

	f, err := os.CreateTemp("", "cloudsim_disk_probe_")
	if err != nil {
		return fallbackDisk()
	}
	name := f.Name()
	defer os.Remove(name)

	payload := make([]byte, 1024)
	if _, err := f.Write(payload); err != nil {
		f.Close()
		return fallbackDisk()
	}
	if err := f.Close(); err != nil {
		return fallbackDisk()
	}
	if _, err := os.ReadFile(name); err != nil {
		return fallbackDisk()
	}

	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0
	return clamp(100-elapsedMs*10, 10, 100)
}

func fallbackCPU() float64  { return fallbackCPUMin + rand.Float64()*fallbackCPUSpan }
func fallbackMem() float64  { return fallbackMemMin + rand.Float64()*fallbackMemSpan }
func fallbackNet() float64  { return fallbackNetMin + rand.Float64()*fallbackNetSpan }
func fallbackDisk() float64 { return fallbackDiskMin + rand.Float64()*fallbackDiskSpan }

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
