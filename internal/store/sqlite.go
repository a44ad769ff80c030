package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS board_snapshots (
	slot TEXT PRIMARY KEY,
	state TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS turn_snapshots (
	slot TEXT PRIMARY KEY,
	turn TEXT NOT NULL
);`

// SQLiteStore writes the board and turn records of a slot in one transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, slot string, snap model.Snapshot) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	state, err := json.Marshal(boardRecord{Squares: snap.Squares})
	if err != nil {
		return fmt.Errorf("encode board record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO board_snapshots (slot, state) VALUES (?, ?)", slot, string(state)); err != nil {
		return fmt.Errorf("save board record: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT OR REPLACE INTO turn_snapshots (slot, turn) VALUES (?, ?)", slot, snap.ToMove); err != nil {
		return fmt.Errorf("save turn record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Debugf("saved slot %s to sqlite", slot)
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) (model.Snapshot, error) {
	if err := validateSlot(slot); err != nil {
		return model.Snapshot{}, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var state, turn string
	err = tx.QueryRowContext(ctx, "SELECT state FROM board_snapshots WHERE slot = ?", slot).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, fmt.Errorf("load slot %s board: %w", slot, ErrNotFound)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s board: %w", slot, err)
	}
	err = tx.QueryRowContext(ctx, "SELECT turn FROM turn_snapshots WHERE slot = ?", slot).Scan(&turn)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, fmt.Errorf("load slot %s turn: %w", slot, ErrNotFound)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s turn: %w", slot, err)
	}

	var board boardRecord
	if err := json.Unmarshal([]byte(state), &board); err != nil {
		return model.Snapshot{}, fmt.Errorf("load slot %s: %w: %v", slot, model.ErrMalformedSnapshot, err)
	}
	return model.Snapshot{Squares: board.Squares, ToMove: turn}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
