package domain

// TemplatePreset is a named preset of default configuration values offered
// at creation time, with a precomputed monthly cost estimate for display.
type TemplatePreset struct {
	ID            Template         `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	DefaultConfig SimulationConfig `json:"default_config"`
	EstimatedCost float64          `json:"estimated_cost"`
}

// TemplatePresets returns the built-in simulation templates.
func TemplatePresets() []TemplatePreset {
	return []TemplatePreset{
		{
			ID:          TemplateWebServer,
			Name:        "Web Server",
			Description: "Simple 3-tier web application with database",
			DefaultConfig: SimulationConfig{
				Instances:    3,
				CPUCores:     2,
				MemoryGB:     4,
				StorageGB:    50,
				Region:       "us-east-1",
				AutoScaling:  false,
				LoadBalancer: true,
			},
			EstimatedCost: 45.50,
		},
		{
			ID:          TemplateMicroservices,
			Name:        "Microservices",
			Description: "Container-based microservices architecture",
			DefaultConfig: SimulationConfig{
				Instances:    5,
				CPUCores:     4,
				MemoryGB:     8,
				StorageGB:    100,
				Region:       "us-west-2",
				AutoScaling:  true,
				LoadBalancer: true,
			},
			EstimatedCost: 120.75,
		},
		{
			ID:          TemplateAutoScaling,
			Name:        "Auto-scaling Demo",
			Description: "Demonstrates automatic scaling based on load",
			DefaultConfig: SimulationConfig{
				Instances:    2,
				CPUCores:     2,
				MemoryGB:     4,
				StorageGB:    30,
				Region:       "eu-west-1",
				AutoScaling:  true,
				LoadBalancer: true,
			},
			EstimatedCost: 67.25,
		},
		{
			ID:          TemplateDisasterRecovery,
			Name:        "Disaster Recovery",
			Description: "Multi-region setup with failover capabilities",
			DefaultConfig: SimulationConfig{
				Instances:    4,
				CPUCores:     4,
				MemoryGB:     8,
				StorageGB:    200,
				Region:       "us-east-1",
				AutoScaling:  false,
				LoadBalancer: true,
			},
			EstimatedCost: 156.80,
		},
	}
}
