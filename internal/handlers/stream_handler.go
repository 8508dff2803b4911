package handlers

import (
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/session"
	sessionws "github.com/Noaaaaa59/powerlifting-app-v2/internal/websocket"
	"github.com/Noaaaaa59/powerlifting-app-v2/pkg/utils"
)

type sessionState interface {
	Snapshot() session.Snapshot
}

// StreamHandler upgrades authenticated connections and attaches them to the
// session-state hub.
type StreamHandler struct {
	state     sessionState
	sessions  sessionRefresher
	hub       *sessionws.Hub
	jwtSecret string
}

func NewStreamHandler(state sessionState, sessions sessionRefresher, hub *sessionws.Hub, jwtSecret string) *StreamHandler {
	return &StreamHandler{state: state, sessions: sessions, hub: hub, jwtSecret: jwtSecret}
}

func (h *StreamHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func (h *StreamHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := sessionws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()

	// Late joiners get the current snapshot immediately.
	h.hub.Publish(h.state.Snapshot())

	client.ReadPump(h.sessions)
}

func (h *StreamHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
