package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/benbeisheim/setachess-backend/internal/store"
	"github.com/gofiber/fiber/v2/log"
)

// ErrPersistence wraps every save or load failure. The cause stays reachable
// through errors.Is.
var ErrPersistence = errors.New("persistence failure")

type GameService struct {
	gameManager *GameManager
	store       store.Store
	defaultSlot string
}

func NewGameService(gameManager *GameManager, st store.Store, defaultSlot string) *GameService {
	return &GameService{
		gameManager: gameManager,
		store:       st,
		defaultSlot: defaultSlot,
	}
}

func (gs *GameService) CreateGame() View {
	return gs.gameManager.CreateGame().View()
}

func (gs *GameService) GetGameState(gameID string) (View, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return View{}, err
	}
	return session.View(), nil
}

// Select routes a square activation to the game and pushes the result to
// subscribers.
func (gs *GameService) Select(gameID string, pos model.Position) (View, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return View{}, err
	}

	outcome, view, err := session.Select(pos)
	if err != nil {
		if errors.Is(err, model.ErrContractViolation) {
			log.Errorf("game %s: select %s: %v", gameID, pos, err)
		}
		return View{}, err
	}
	log.Debugf("game %s: select %s -> %s", gameID, pos, outcome)
	return view, nil
}

func (gs *GameService) Reset(gameID string) (View, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return View{}, err
	}
	return session.Reset(), nil
}

func (gs *GameService) NewGame(gameID string) (View, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return View{}, err
	}
	view := session.NewGame()
	log.Infof("game %s: new game", gameID)
	return view, nil
}

// Save writes the current position to slot and returns the slot used.
func (gs *GameService) Save(ctx context.Context, gameID, slot string) (string, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	if slot == "" {
		slot = gs.defaultSlot
	}

	if err := gs.store.Save(ctx, slot, session.Snapshot()); err != nil {
		log.Warnf("game %s: save to %q failed: %v", gameID, slot, err)
		return slot, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	log.Infof("game %s: saved to %q", gameID, slot)
	return slot, nil
}

// Load replaces the game with the snapshot in slot. A missing or malformed
// snapshot leaves the game as it was.
func (gs *GameService) Load(ctx context.Context, gameID, slot string) (View, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return View{}, err
	}
	if slot == "" {
		slot = gs.defaultSlot
	}

	snap, err := gs.store.Load(ctx, slot)
	if err != nil {
		log.Warnf("game %s: load from %q failed: %v", gameID, slot, err)
		return View{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	view, err := session.Restore(snap)
	if err != nil {
		log.Warnf("game %s: snapshot %q rejected: %v", gameID, slot, err)
		return View{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	log.Infof("game %s: loaded %q", gameID, slot)
	return view, nil
}

func (gs *GameService) EndGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) Subscribe(gameID, key string, sub Subscriber) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	session.Subscribe(key, sub)
	log.Debugf("game %s: subscriber %s joined", gameID, key)
	return nil
}

func (gs *GameService) Unsubscribe(gameID, key string) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.Unsubscribe(key)
	log.Debugf("game %s: subscriber %s left", gameID, key)
}
