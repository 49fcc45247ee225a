package http

import "github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"

// createSimulationRequest is the POST /simulations payload. Any status field
// sent by the caller is ignored; new simulations always start STOPPED.
type createSimulationRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Template    string                  `json:"template"`
	Config      domain.SimulationConfig `json:"config"`
}

// updateSimulationRequest is the PUT /simulations/:id payload. All fields
// are optional; config sub-fields merge into the existing config.
type updateSimulationRequest struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Config      *domain.ConfigUpdate `json:"config,omitempty"`
}

// controlRequest is the POST /simulations/:id/control payload.
type controlRequest struct {
	Action string `json:"action"`
}
