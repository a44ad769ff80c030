// Package store persists game snapshots. Every backend keeps a slot as two
// companion records, the board and the side to move, and never hands back a
// half-read snapshot.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbeisheim/setachess-backend/internal/config"
	"github.com/benbeisheim/setachess-backend/internal/model"
)

var (
	ErrNotFound    = errors.New("saved game not found")
	ErrInvalidSlot = errors.New("invalid save slot name")
)

type Store interface {
	Save(ctx context.Context, slot string, snap model.Snapshot) error
	Load(ctx context.Context, slot string) (model.Snapshot, error)
	Close() error
}

const maxSlotLength = 64

func validateSlot(slot string) error {
	if slot == "" || len(slot) > maxSlotLength {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	for _, r := range slot {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
		}
	}
	return nil
}

// Open builds the backend selected by configuration.
func Open(ctx context.Context, cfg *config.Configuration) (Store, error) {
	switch cfg.Store.Backend {
	case "file":
		return NewFileStore(cfg.Store.Dir)
	case "sqlite":
		return NewSQLiteStore(cfg.Store.SQLitePath)
	case "mongo":
		return NewMongoStore(ctx, cfg.Mongo.Address, cfg.Mongo.Database, cfg.Mongo.Collection)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
