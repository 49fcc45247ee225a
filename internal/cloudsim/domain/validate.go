package domain

import "fmt"

// Config bounds. These mirror the create form limits.
const (
	MinInstances = 1
	MaxInstances = 10
	MinCPUCores  = 1
	MaxCPUCores  = 8
	MinMemoryGB  = 1
	MaxMemoryGB  = 32
	MinStorageGB = 10
	MaxStorageGB = 1000

	MaxNameLength = 100
)

// ValidateCreate checks a create request against the declared field bounds.
// Returns a *ValidationError listing every violated field, or nil.
func ValidateCreate(req *CreateSimulationRequest) error {
	var fields []FieldError

	if req.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "simulation name is required"})
	} else if len(req.Name) > MaxNameLength {
		fields = append(fields, FieldError{Field: "name", Message: "name too long"})
	}

	if !req.Template.Valid() {
		fields = append(fields, FieldError{Field: "template", Message: fmt.Sprintf("unknown template %q", req.Template)})
	}

	fields = append(fields, validateConfig(&req.Config)...)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateUpdate checks a partial update. Only the fields present are checked.
func ValidateUpdate(req *UpdateSimulationRequest) error {
	var fields []FieldError

	if req.Name != nil {
		if *req.Name == "" {
			fields = append(fields, FieldError{Field: "name", Message: "simulation name is required"})
		} else if len(*req.Name) > MaxNameLength {
			fields = append(fields, FieldError{Field: "name", Message: "name too long"})
		}
	}

	if req.Config != nil {
		c := req.Config
		if c.Instances != nil && (*c.Instances < MinInstances || *c.Instances > MaxInstances) {
			fields = append(fields, rangeError("config.instances", MinInstances, MaxInstances))
		}
		if c.CPUCores != nil && (*c.CPUCores < MinCPUCores || *c.CPUCores > MaxCPUCores) {
			fields = append(fields, rangeError("config.cpu_cores", MinCPUCores, MaxCPUCores))
		}
		if c.MemoryGB != nil && (*c.MemoryGB < MinMemoryGB || *c.MemoryGB > MaxMemoryGB) {
			fields = append(fields, rangeError("config.memory_gb", MinMemoryGB, MaxMemoryGB))
		}
		if c.StorageGB != nil && (*c.StorageGB < MinStorageGB || *c.StorageGB > MaxStorageGB) {
			fields = append(fields, rangeError("config.storage_gb", MinStorageGB, MaxStorageGB))
		}
		if c.Region != nil && *c.Region == "" {
			fields = append(fields, FieldError{Field: "config.region", Message: "region is required"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateConfig(cfg *SimulationConfig) []FieldError {
	var fields []FieldError

	if cfg.Instances < MinInstances || cfg.Instances > MaxInstances {
		fields = append(fields, rangeError("config.instances", MinInstances, MaxInstances))
	}
	if cfg.CPUCores < MinCPUCores || cfg.CPUCores > MaxCPUCores {
		fields = append(fields, rangeError("config.cpu_cores", MinCPUCores, MaxCPUCores))
	}
	if cfg.MemoryGB < MinMemoryGB || cfg.MemoryGB > MaxMemoryGB {
		fields = append(fields, rangeError("config.memory_gb", MinMemoryGB, MaxMemoryGB))
	}
	if cfg.StorageGB < MinStorageGB || cfg.StorageGB > MaxStorageGB {
		fields = append(fields, rangeError("config.storage_gb", MinStorageGB, MaxStorageGB))
	}
	if cfg.Region == "" {
		fields = append(fields, FieldError{Field: "config.region", Message: "region is required"})
	}

	return fields
}

func rangeError(field string, min, max int) FieldError {
	return FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
	}
}
