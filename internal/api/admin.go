package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthsetu/healthsetu-be/internal/catalog"
	"github.com/healthsetu/healthsetu-be/internal/checkup"
)

// AdminHandler serves operational endpoints for administrators
type AdminHandler struct {
	catalog checkup.CatalogLoader
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(loader checkup.CatalogLoader) *AdminHandler {
	return &AdminHandler{catalog: loader}
}

// GetCatalogSummary reports the current catalog and vocabulary sizes. The
// catalog file is read fresh, so this doubles as a validity check after
// edits.
// GET /api/admin/catalog
func (h *AdminHandler) GetCatalogSummary(c *gin.Context) {
	diseases, err := h.catalog.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}

	vocab := catalog.Vocabulary(diseases)

	c.JSON(http.StatusOK, gin.H{
		"diseases":        len(diseases),
		"vocabulary_size": len(vocab),
		"vocabulary":      vocab,
	})
}
