package ws

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/healthsetu/healthsetu-be/internal/api/middleware"
	"github.com/healthsetu/healthsetu-be/internal/checkup"
	"github.com/healthsetu/healthsetu-be/internal/privacy"
	"github.com/healthsetu/healthsetu-be/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin checks are handled by the deployment proxy
	},
}

// CheckupHandler handles live symptom checkups over WebSocket. Each text
// frame from the client runs through the full checkup flow and the outcome
// streams back as typed frames.
type CheckupHandler struct {
	engine    *checkup.Engine
	jwtSecret string
}

// NewCheckupHandler creates a new WebSocket checkup handler
func NewCheckupHandler(engine *checkup.Engine, jwtSecret string) *CheckupHandler {
	return &CheckupHandler{
		engine:    engine,
		jwtSecret: jwtSecret,
	}
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Content string `json:"content"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string      `json:"type"` // "symptoms", "matches", "alert", "guidance", "error", "done"
	Content string      `json:"content,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// HandleCheckup upgrades the connection and serves the checkup loop
// GET /ws/checkup?token=...
func (h *CheckupHandler) HandleCheckup(c *gin.Context) {
	// Validate JWT from query parameter or header
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("Authorization")
		if strings.HasPrefix(token, "Bearer ") {
			token = strings.TrimPrefix(token, "Bearer ")
		}
	}

	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	claims := &middleware.JWTClaims{}
	jwtToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !jwtToken.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	userID := claims.UserID
	limiter := middleware.NewWebSocketLimiter(20)

	log.Printf("WebSocket checkup session started for user=%s", userID)

	for {
		var msg IncomingMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error for user=%s: %v", userID, err)
			}
			return
		}

		if !limiter.Allow() {
			h.send(conn, OutgoingMessage{Type: "error", Content: "Too many messages. Please slow down."})
			continue
		}

		if strings.TrimSpace(msg.Content) == "" {
			h.send(conn, OutgoingMessage{Type: "error", Content: "Empty report"})
			continue
		}

		log.Printf("Checkup frame from user=%s: %s", userID, privacy.SanitizeForLogging(msg.Content))

		outcome, err := h.engine.Process(c.Request.Context(), userID, []string{msg.Content})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				h.send(conn, OutgoingMessage{Type: "error", Content: "User not found"})
				return
			}
			h.send(conn, OutgoingMessage{Type: "error", Content: "Failed to process report"})
			continue
		}

		h.send(conn, OutgoingMessage{Type: "symptoms", Data: outcome.Symptoms})
		if len(outcome.Matches) > 0 {
			h.send(conn, OutgoingMessage{Type: "matches", Data: outcome.Matches})
		}
		for _, alert := range outcome.Alerts {
			h.send(conn, OutgoingMessage{Type: "alert", Content: alert})
		}
		if outcome.Guidance != "" {
			h.send(conn, OutgoingMessage{Type: "guidance", Content: outcome.Guidance})
		}
		h.send(conn, OutgoingMessage{Type: "done", Data: gin.H{
			"points_earned": outcome.PointsEarned,
			"total_points":  outcome.TotalPoints,
			"new_badges":    outcome.NewBadges,
		}})
	}
}

func (h *CheckupHandler) send(conn *websocket.Conn, msg OutgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
