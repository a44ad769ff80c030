package controller

import (
	"strings"

	"github.com/benbeisheim/setachess-backend/internal/middleware"
	"github.com/benbeisheim/setachess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api/game and the game socket
// under /ws/game/:gameId. allowOrigins is the comma separated CORS list.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, allowOrigins string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)
	requireGame := middleware.RequireGame(gameService)

	app.Get("/ws/game/:gameId", requireGame, middleware.WebSocketUpgrade(), websocket.New(
		wsController.HandleConnection,
		websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Origins:         splitOrigins(allowOrigins),
		},
	))

	gameRoutes := app.Group("/api/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", requireGame, gameController.GetGameState)
	gameRoutes.Post("/:gameId/select", requireGame, gameController.Select)
	gameRoutes.Post("/:gameId/reset", requireGame, gameController.Reset)
	gameRoutes.Post("/:gameId/new", requireGame, gameController.NewGame)
	gameRoutes.Post("/:gameId/save", requireGame, gameController.Save)
	gameRoutes.Post("/:gameId/load", requireGame, gameController.Load)
	gameRoutes.Delete("/:gameId", requireGame, gameController.EndGame)
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
