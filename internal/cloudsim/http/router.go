package http

import "github.com/gin-gonic/gin"

// Register registers the cloudsim routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/simulations", h.ListSimulations)
	rg.POST("/simulations", h.CreateSimulation)
	rg.GET("/simulations/stats", h.GetStats)
	rg.GET("/simulations/:id", h.GetSimulation)
	rg.PUT("/simulations/:id", h.UpdateSimulation)
	rg.DELETE("/simulations/:id", h.DeleteSimulation)
	rg.POST("/simulations/:id/control", h.ControlSimulation)
	rg.GET("/simulations/:id/metrics", h.ListMetrics)
	rg.GET("/simulations/:id/metrics/history", h.MetricsHistory)
	rg.GET("/simulations/:id/analysis", h.GetAnalysis)
	rg.GET("/templates", h.ListTemplates)
	rg.POST("/demo/seed", h.SeedDemo)
}
