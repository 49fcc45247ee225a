// Package pricing owns the cost-rate table used for simulation cost
// estimates. Rates default to configured constants and can optionally be
// refreshed from the AWS Pricing API on a schedule; a failed refresh keeps
// the previous table so estimates are always available.
package pricing

import "sync"

// Rates are monthly USD prices per unit of simulated capacity.
type Rates struct {
	InstanceRate  float64 `json:"instance_rate"`
	CPUCoreRate   float64 `json:"cpu_core_rate"`
	MemoryGBRate  float64 `json:"memory_gb_rate"`
	StorageGBRate float64 `json:"storage_gb_rate"`
}

// Table is a concurrency-safe holder for the current rate set.
type Table struct {
	mu    sync.RWMutex
	rates Rates
}

// NewTable creates a Table seeded with the given rates.
func NewTable(initial Rates) *Table {
	return &Table{rates: initial}
}

// Current returns the rate set in effect.
func (t *Table) Current() Rates {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rates
}

// Replace swaps in a new rate set.
func (t *Table) Replace(r Rates) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rates = r
}
