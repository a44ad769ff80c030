package controller

import (
	"errors"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/benbeisheim/setachess-backend/internal/service"
	"github.com/benbeisheim/setachess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type selectRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type slotRequest struct {
	Slot string `json:"slot"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	view := gc.gameService.CreateGame()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gameId": view.ID,
		"state":  view,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil || req.Row == nil || req.Col == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col are required",
		})
	}

	pos, err := boardPosition(*req.Row, *req.Col)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	view, err := gc.gameService.Select(c.Params("gameId"), pos)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	view, err := gc.gameService.Reset(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) NewGame(c *fiber.Ctx) error {
	view, err := gc.gameService.NewGame(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Save(c *fiber.Ctx) error {
	var req slotRequest
	// An empty body saves to the default slot.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	slot, err := gc.gameService.Save(c.Context(), c.Params("gameId"), req.Slot)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game saved",
		"slot":    slot,
	})
}

func (gc *GameController) Load(c *fiber.Ctx) error {
	var req slotRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	view, err := gc.gameService.Load(c.Context(), c.Params("gameId"), req.Slot)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) EndGame(c *fiber.Ctx) error {
	if err := gc.gameService.EndGame(c.Params("gameId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game ended",
	})
}

var errOffBoard = errors.New("row and col must be between 0 and 7")

// boardPosition checks client coordinates before they reach the game, which
// treats an off-board square as a caller bug.
func boardPosition(row, col int) (model.Position, error) {
	pos := model.Position{Row: row, Col: col}
	if !pos.InBounds() {
		return pos, errOffBoard
	}
	return pos, nil
}

// writeError maps service errors onto responses. Persistence failures are
// notices: the game is still playable.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, model.ErrContractViolation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"notice": err.Error(),
		})
	case errors.Is(err, store.ErrInvalidSlot):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"notice": err.Error(),
		})
	case errors.Is(err, service.ErrPersistence):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"notice": err.Error(),
		})
	}
	log.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
