package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/healthsetu/healthsetu-be/internal/api/middleware"
	"github.com/healthsetu/healthsetu-be/internal/history"
	"github.com/healthsetu/healthsetu-be/internal/store"
)

// HistoryHandler serves symptom history and user stats
type HistoryHandler struct {
	store *store.Store
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(s *store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// GetHistory returns the authenticated user's recent submissions along with
// any prolonged-symptom alerts over the recent window
// GET /api/history?limit=20
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	// Confirm the user exists so an empty history is distinguishable from
	// an unknown user
	if _, err := h.store.GetUserByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	reports, err := h.store.RecentReports(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	records := make([]history.Record, len(reports))
	for i, r := range reports {
		records[i] = history.Record{Date: r.ReportedOn, Symptoms: r.Symptoms}
	}

	c.JSON(http.StatusOK, gin.H{
		"history": records,
		"alerts":  history.DetectProlonged(records),
		"count":   len(records),
	})
}

// GetStats returns points, badges and submission count
// GET /api/stats
func (h *HistoryHandler) GetStats(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.store.GetStats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
