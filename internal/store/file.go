package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Revision ties the two companion records of one save together.
type boardRecord struct {
	Revision string               `json:"revision,omitempty"`
	Squares  []model.SquareRecord `json:"squares"`
}

type turnRecord struct {
	Revision string `json:"revision,omitempty"`
	ToMove   string `json:"toMove"`
}

// FileStore keeps each slot as <slot>.board.json and <slot>.turn.json. Both
// carry the same revision; a pair from different saves is refused on load.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) boardPath(slot string) string {
	return filepath.Join(s.dir, slot+".board.json")
}

func (s *FileStore) turnPath(slot string) string {
	return filepath.Join(s.dir, slot+".turn.json")
}

func (s *FileStore) Save(ctx context.Context, slot string, snap model.Snapshot) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	revision := uuid.New().String()
	boardTmp, err := s.writeTemp(slot, boardRecord{Revision: revision, Squares: snap.Squares})
	if err != nil {
		return err
	}
	turnTmp, err := s.writeTemp(slot, turnRecord{Revision: revision, ToMove: snap.ToMove})
	if err != nil {
		os.Remove(boardTmp)
		return err
	}

	if err := os.Rename(boardTmp, s.boardPath(slot)); err != nil {
		os.Remove(boardTmp)
		os.Remove(turnTmp)
		return fmt.Errorf("save board record: %w", err)
	}
	if err := os.Rename(turnTmp, s.turnPath(slot)); err != nil {
		os.Remove(turnTmp)
		return fmt.Errorf("save turn record: %w", err)
	}
	log.Debugf("saved slot %s to %s", slot, s.dir)
	return nil
}

func (s *FileStore) writeTemp(slot string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	f, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp record: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("sync temp record: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp record: %w", err)
	}
	return f.Name(), nil
}

func (s *FileStore) Load(ctx context.Context, slot string) (model.Snapshot, error) {
	if err := validateSlot(slot); err != nil {
		return model.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	var board boardRecord
	if err := readRecord(s.boardPath(slot), &board); err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s board: %w", slot, err)
	}
	var turn turnRecord
	if err := readRecord(s.turnPath(slot), &turn); err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s turn: %w", slot, err)
	}
	if board.Revision != turn.Revision {
		return model.Snapshot{}, fmt.Errorf("load slot %s: %w: board revision %q does not match turn revision %q",
			slot, model.ErrMalformedSnapshot, board.Revision, turn.Revision)
	}
	return model.Snapshot{Squares: board.Squares, ToMove: turn.ToMove}, nil
}

func readRecord(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedSnapshot, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
