package server

import (
	"filmorate/internal/middleware"
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// GetFeed handles GET /users/:id/feed
// @Summary User activity feed
// @Tags feed
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Event
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	events, err := s.feedSvc().GetFeed(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(events)
}

// FeedUpgrade validates a live feed request before the websocket upgrade:
// the watched user must exist and the request must be an upgrade.
func (s *Server) FeedUpgrade(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.feedSvc().EnsureUser(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return models.RespondWithError(c, fiber.StatusUpgradeRequired,
			models.NewValidationError("websocket upgrade required"))
	}
	c.Locals("feedUserID", userID)
	return c.Next()
}

// LiveFeedHandler handles GET /users/:id/feed/live. Each event recorded for
// the user after the connection opens is pushed as one JSON text message.
func (s *Server) LiveFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("feedUserID").(int64)
		if !ok {
			_ = conn.Close()
			return
		}

		client, err := s.feedHub.Register(userID, conn)
		if err != nil {
			middleware.Logger.Warn("live feed registration failed", "user_id", userID, "error", err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
