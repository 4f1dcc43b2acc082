package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthsetu/healthsetu-be/internal/environment"
)

// EnvironmentHandler exposes environmental factor lookups
type EnvironmentHandler struct {
	provider environment.Provider
}

// NewEnvironmentHandler creates a new environment handler
func NewEnvironmentHandler(p environment.Provider) *EnvironmentHandler {
	return &EnvironmentHandler{provider: p}
}

// Lookup returns air and water quality for a city
// GET /api/environment?city=Delhi
func (h *EnvironmentHandler) Lookup(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter required"})
		return
	}

	factors := h.provider.Lookup(city)
	c.JSON(http.StatusOK, gin.H{
		"city":    city,
		"factors": factors,
	})
}
