package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid
// WebSocket connection attempts. It runs after RequireGame, so the game is
// known to exist.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		// Locals survive the upgrade; route params are read from the
		// connection, but the subscriber key has to be minted here.
		c.Locals("wsGameID", c.Locals("gameID"))
		c.Locals("wsConnID", uuid.New().String())
		return c.Next()
	}
}
