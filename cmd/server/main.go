package main

import (
	"context"

	"github.com/benbeisheim/setachess-backend/internal/config"
	"github.com/benbeisheim/setachess-backend/internal/controller"
	"github.com/benbeisheim/setachess-backend/internal/service"
	"github.com/benbeisheim/setachess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("failed to read configuration: %v", err)
	}

	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer st.Close()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, st, cfg.Store.DefaultSlot)
	controller.RegisterRoutes(app, gameService, cfg.Server.AllowOrigins)

	log.Infof("serving on %s with %s store", cfg.Address(), cfg.Store.Backend)
	if err := app.Listen(cfg.Address()); err != nil {
		log.Errorf("server stopped: %v", err)
	}
}
