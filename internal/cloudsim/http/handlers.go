package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/analytics"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/demo"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/domain"
	"github.com/cloudsim-dash/cloudsim-backend/internal/cloudsim/service"
	"github.com/cloudsim-dash/cloudsim-backend/internal/pricing"
	"github.com/gin-gonic/gin"
)

// Handler exposes the simulation store, lifecycle controls and analytics
// over HTTP.
type Handler struct {
	simService *service.SimulationService
	seeder     *demo.Seeder
	rates      *pricing.Table
}

// NewHandler creates a new Handler
func NewHandler(simService *service.SimulationService, seeder *demo.Seeder, rates *pricing.Table) *Handler {
	return &Handler{
		simService: simService,
		seeder:     seeder,
		rates:      rates,
	}
}

// ListSimulations returns all of the caller's simulations, newest first
func (h *Handler) ListSimulations(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	sims, err := h.simService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulations": sims})
}

// CreateSimulation creates a new simulation in STOPPED state
func (h *Handler) CreateSimulation(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	var body createSimulationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := &domain.CreateSimulationRequest{
		OwnerID:     ownerID,
		Name:        body.Name,
		Description: body.Description,
		Template:    domain.Template(body.Template),
		Config:      body.Config,
	}

	sim, err := h.simService.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"simulation": sim})
}

// GetSimulation retrieves one simulation by ID
func (h *Handler) GetSimulation(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	sim, err := h.simService.Get(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulation": sim})
}

// UpdateSimulation applies a partial update
func (h *Handler) UpdateSimulation(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	var body updateSimulationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := &domain.UpdateSimulationRequest{
		Name:        body.Name,
		Description: body.Description,
		Config:      body.Config,
	}

	sim, err := h.simService.Update(c.Request.Context(), c.Param("id"), ownerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulation": sim})
}

// DeleteSimulation removes a simulation and its metrics
func (h *Handler) DeleteSimulation(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	if err := h.simService.Delete(c.Request.Context(), c.Param("id"), ownerID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Simulation deleted successfully"})
}

// ControlSimulation applies a lifecycle action (start/stop/pause/restart)
func (h *Handler) ControlSimulation(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	var body controlRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	action := domain.Action(body.Action)
	if !action.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action"})
		return
	}

	sim, message, err := h.simService.Control(c.Request.Context(), c.Param("id"), ownerID, action)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulation": sim, "message": message})
}

// ListMetrics returns the retained samples for a simulation, newest first
func (h *Handler) ListMetrics(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	samples, err := h.simService.ListMetrics(c.Request.Context(), c.Param("id"), ownerID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": samples})
}

// MetricsHistory returns the archived long-range samples for a simulation
func (h *Handler) MetricsHistory(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	from, ok := h.timeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.timeQuery(c, "to")
	if !ok {
		return
	}

	samples, err := h.simService.ArchivedMetrics(c.Request.Context(), c.Param("id"), ownerID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": samples})
}

// GetAnalysis returns cost, performance and forecast reports for a simulation
func (h *Handler) GetAnalysis(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	sim, err := h.simService.Get(ctx, id, ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	samples, err := h.simService.ListMetrics(ctx, id, ownerID, 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	report := analytics.Analyze(sim, samples, h.rates.Current())
	c.JSON(http.StatusOK, gin.H{"analysis": report})
}

// GetStats returns the caller's simulation counts grouped by status
func (h *Handler) GetStats(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	stats, err := h.simService.Stats(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListTemplates returns the built-in simulation templates
func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": domain.TemplatePresets()})
}

// SeedDemo populates the caller's account with demo simulations
func (h *Handler) SeedDemo(c *gin.Context) {
	ownerID := h.ownerID(c)
	if ownerID == "" {
		return
	}

	sims, err := h.seeder.Seed(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"simulations": sims})
}

// ownerID resolves the authenticated owner from the request context.
// Falls back to the X-User-Id header for development, as set up by the
// auth middleware. Writes a 401 and returns "" when there is no identity.
func (h *Handler) ownerID(c *gin.Context) string {
	ownerID := c.GetString("firebase_uid")
	if ownerID == "" {
		ownerID = c.GetHeader("X-User-Id")
		if ownerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return ""
		}
	}
	return ownerID
}

func (h *Handler) timeQuery(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " timestamp, expected RFC3339"})
		return nil, false
	}
	return &t, true
}

// respondError maps domain errors onto HTTP statuses. Validation and
// transition failures carry the reason verbatim so callers can surface it
// as user feedback.
func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": vErr.Fields})
	case errors.Is(err, domain.ErrSimulationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
	case domain.IsIllegalTransition(err), errors.Is(err, domain.ErrSimulationRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
