package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthsetu/healthsetu-be/pkg/openfda"
)

// DrugHandler serves drug label lookups through openFDA
type DrugHandler struct {
	client *openfda.Client
}

// NewDrugHandler creates a new drug handler
func NewDrugHandler(client *openfda.Client) *DrugHandler {
	return &DrugHandler{client: client}
}

// GetLabel looks up a drug label by brand or generic name
// GET /api/drugs/:name
func (h *DrugHandler) GetLabel(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Drug name required"})
		return
	}

	label, err := h.client.SearchLabel(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, openfda.ErrNoLabel) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No label found for drug"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Drug label lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"label": label})
}
