package middleware

import (
	"errors"

	"github.com/benbeisheim/setachess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// RequireGame rejects requests naming a game that does not exist and stores
// the game ID in locals for the handlers behind it.
func RequireGame(gameService *service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		if _, err := gameService.GetGameState(gameID); err != nil {
			if errors.Is(err, service.ErrGameNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return err
		}

		c.Locals("gameID", gameID)
		return c.Next()
	}
}
