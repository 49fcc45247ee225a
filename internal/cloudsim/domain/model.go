package domain

import "time"

// Status is the lifecycle state of a simulation.
type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusStopped Status = "STOPPED"
	StatusPaused  Status = "PAUSED"
	StatusError   Status = "ERROR"
)

// Valid reports whether s is one of the declared status values.
func (s Status) Valid() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusPaused, StatusError:
		return true
	}
	return false
}

// Template identifies a named preset of default configuration values.
type Template string

const (
	TemplateWebServer        Template = "web-server"
	TemplateMicroservices    Template = "microservices"
	TemplateAutoScaling      Template = "auto-scaling"
	TemplateDisasterRecovery Template = "disaster-recovery"
)

func (t Template) Valid() bool {
	switch t {
	case TemplateWebServer, TemplateMicroservices, TemplateAutoScaling, TemplateDisasterRecovery:
		return true
	}
	return false
}

// Action is a lifecycle control action applied to a simulation.
type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionPause   Action = "pause"
	ActionRestart Action = "restart"
)

func (a Action) Valid() bool {
	switch a {
	case ActionStart, ActionStop, ActionPause, ActionRestart:
		return true
	}
	return false
}

// SimulationConfig describes the mock resource footprint of a simulation.
type SimulationConfig struct {
	Instances    int    `json:"instances"`
	CPUCores     int    `json:"cpu_cores"`
	MemoryGB     int    `json:"memory_gb"`
	StorageGB    int    `json:"storage_gb"`
	Region       string `json:"region"`
	AutoScaling  bool   `json:"auto_scaling"`
	LoadBalancer bool   `json:"load_balancer"`
}

// Simulation is a user-owned mock resource-group record.
type Simulation struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Template    Template         `json:"template"`
	Status      Status           `json:"status"`
	Config      SimulationConfig `json:"config"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	OwnerID     string           `json:"owner_id"`
}

// MetricSample is one timestamped resource-usage snapshot for a simulation.
type MetricSample struct {
	ID           string    `json:"id"`
	SimulationID string    `json:"simulation_id"`
	CPUUsage     float64   `json:"cpu_usage"`
	MemoryUsage  float64   `json:"memory_usage"`
	NetworkIO    float64   `json:"network_io"`
	DiskIO       float64   `json:"disk_io"`
	Timestamp    time.Time `json:"timestamp"`
}

// CreateSimulationRequest carries the data needed to create a simulation.
// Status is not accepted from callers; new simulations always start STOPPED.
type CreateSimulationRequest struct {
	OwnerID     string
	Name        string
	Description string
	Template    Template
	Config      SimulationConfig
}

// ConfigUpdate is a partial config change. Nil fields are left untouched.
type ConfigUpdate struct {
	Instances    *int    `json:"instances,omitempty"`
	CPUCores     *int    `json:"cpu_cores,omitempty"`
	MemoryGB     *int    `json:"memory_gb,omitempty"`
	StorageGB    *int    `json:"storage_gb,omitempty"`
	Region       *string `json:"region,omitempty"`
	AutoScaling  *bool   `json:"auto_scaling,omitempty"`
	LoadBalancer *bool   `json:"load_balancer,omitempty"`
}

// UpdateSimulationRequest is a partial update of mutable simulation fields.
type UpdateSimulationRequest struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Config      *ConfigUpdate `json:"config,omitempty"`
}

// ApplyTo merges the partial config update into cfg field by field.
func (u *ConfigUpdate) ApplyTo(cfg *SimulationConfig) {
	if u == nil {
		return
	}
	if u.Instances != nil {
		cfg.Instances = *u.Instances
	}
	if u.CPUCores != nil {
		cfg.CPUCores = *u.CPUCores
	}
	if u.MemoryGB != nil {
		cfg.MemoryGB = *u.MemoryGB
	}
	if u.StorageGB != nil {
		cfg.StorageGB = *u.StorageGB
	}
	if u.Region != nil {
		cfg.Region = *u.Region
	}
	if u.AutoScaling != nil {
		cfg.AutoScaling = *u.AutoScaling
	}
	if u.LoadBalancer != nil {
		cfg.LoadBalancer = *u.LoadBalancer
	}
}

// Stats are per-owner simulation counts grouped by status.
type Stats struct {
	Total   int `json:"total"`
	Running int `json:"running"`
	Stopped int `json:"stopped"`
	Paused  int `json:"paused"`
}
