package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/healthsetu/healthsetu-be/internal/api/middleware"
	"github.com/healthsetu/healthsetu-be/internal/checkup"
	"github.com/healthsetu/healthsetu-be/internal/store"
)

// CheckupHandler handles symptom checkup submissions
type CheckupHandler struct {
	engine *checkup.Engine
}

// NewCheckupHandler creates a new checkup handler
func NewCheckupHandler(engine *checkup.Engine) *CheckupHandler {
	return &CheckupHandler{engine: engine}
}

// checkupRequest accepts symptoms as either a single string or a list of
// strings; each element runs through the full normalization pipeline.
type checkupRequest struct {
	Symptoms symptomInput `json:"symptoms"`
}

type symptomInput []string

// UnmarshalJSON accepts "fever and cough" as well as ["fever", "cough"]
func (s *symptomInput) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("symptoms must be a string or an array of strings")
	}
	*s = many
	return nil
}

// Submit runs a checkup for the authenticated user
// POST /api/checkup
func (h *CheckupHandler) Submit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req checkupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.engine.Process(c.Request.Context(), userID, req.Symptoms)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process checkup"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}
