package model

import "fmt"

// SquareRecord is the flat, persistable form of one square. Kind and Colour
// are empty for an unoccupied square.
type SquareRecord struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Occupied bool   `json:"occupied"`
	Kind     string `json:"kind,omitempty"`
	Colour   string `json:"colour,omitempty"`
	HasMoved bool   `json:"hasMoved"`
}

// Snapshot is the full save-game state: one record per square plus the side
// to move. Stores keep the two parts as companion records.
type Snapshot struct {
	Squares []SquareRecord `json:"squares"`
	ToMove  string         `json:"toMove"`
}

func SnapshotOf(b *Board, toMove Colour) Snapshot {
	snap := Snapshot{
		Squares: make([]SquareRecord, 0, Size*Size),
		ToMove:  toMove.String(),
	}
	for _, sq := range b.Squares() {
		rec := SquareRecord{Row: sq.Position.Row, Col: sq.Position.Col}
		if sq.Piece != nil {
			rec.Occupied = true
			rec.Kind = sq.Piece.Kind.String()
			rec.Colour = sq.Piece.Colour.String()
			rec.HasMoved = sq.Piece.HasMoved
		}
		snap.Squares = append(snap.Squares, rec)
	}
	return snap
}

// Decode validates the whole snapshot and builds a fresh board from it.
func (s Snapshot) Decode() (*Board, Colour, error) {
	toMove, err := ParseColour(s.ToMove)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: turn: %v", ErrMalformedSnapshot, err)
	}
	if len(s.Squares) != Size*Size {
		return nil, 0, fmt.Errorf("%w: expected %d squares, got %d", ErrMalformedSnapshot, Size*Size, len(s.Squares))
	}

	b := NewEmptyBoard()
	var seen [Size][Size]bool
	for i, rec := range s.Squares {
		pos := Position{Row: rec.Row, Col: rec.Col}
		if !pos.InBounds() {
			return nil, 0, fmt.Errorf("%w: record %d: square %s out of bounds", ErrMalformedSnapshot, i, pos)
		}
		if seen[pos.Row][pos.Col] {
			return nil, 0, fmt.Errorf("%w: record %d: duplicate square %s", ErrMalformedSnapshot, i, pos)
		}
		seen[pos.Row][pos.Col] = true

		if !rec.Occupied {
			if rec.Kind != "" || rec.Colour != "" {
				return nil, 0, fmt.Errorf("%w: record %d: empty square %s carries a piece", ErrMalformedSnapshot, i, pos)
			}
			continue
		}
		kind, err := ParsePieceKind(rec.Kind)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: record %d: %v", ErrMalformedSnapshot, i, err)
		}
		colour, err := ParseColour(rec.Colour)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: record %d: %v", ErrMalformedSnapshot, i, err)
		}
		b.set(pos, Piece{Kind: kind, Colour: colour, HasMoved: rec.HasMoved})
	}
	return b, toMove, nil
}
