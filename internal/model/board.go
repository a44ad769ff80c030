package model

import "fmt"

const Size = 8

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Notation returns the algebraic square name. Row 0 is rank 8.
func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", p.Col+'a', Size-p.Row)
}

func (p Position) fileNotation() string {
	return fmt.Sprintf("%c", p.Col+'a')
}

// ParseNotation is the inverse of Notation.
func ParseNotation(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	return Position{Row: Size - int(s[1]-'0'), Col: int(s[0] - 'a')}, nil
}

func (p Position) step(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

type Square struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

// Board owns piece placement. Every write stores a fresh copy of the piece
// so no two squares ever share one.
type Board struct {
	squares [Size][Size]*Piece
}

func NewEmptyBoard() *Board {
	return &Board{}
}

var backRank = [Size]PieceKind{Rook, Knight, Bishop, King, Queen, Bishop, Knight, Rook}

// NewBoard returns the starting position: Black on rows 0-1, White on rows 6-7.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for col := 0; col < Size; col++ {
		b.set(Position{Row: 0, Col: col}, Piece{Kind: backRank[col], Colour: Black})
		b.set(Position{Row: 1, Col: col}, Piece{Kind: Pawn, Colour: Black})
		b.set(Position{Row: 6, Col: col}, Piece{Kind: Pawn, Colour: White})
		b.set(Position{Row: 7, Col: col}, Piece{Kind: backRank[col], Colour: White})
	}
	return b
}

func (b *Board) at(pos Position) (Piece, bool) {
	p := b.squares[pos.Row][pos.Col]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

func (b *Board) set(pos Position, piece Piece) {
	p := piece
	b.squares[pos.Row][pos.Col] = &p
}

func (b *Board) PieceAt(pos Position) (Piece, bool, error) {
	if !pos.InBounds() {
		return Piece{}, false, fmt.Errorf("piece at %s: %w", pos, ErrOutOfBounds)
	}
	piece, ok := b.at(pos)
	return piece, ok, nil
}

func (b *Board) IsOccupied(pos Position) (bool, error) {
	if !pos.InBounds() {
		return false, fmt.Errorf("occupancy of %s: %w", pos, ErrOutOfBounds)
	}
	return b.squares[pos.Row][pos.Col] != nil, nil
}

func (b *Board) Place(pos Position, piece Piece) error {
	if !pos.InBounds() {
		return fmt.Errorf("place at %s: %w", pos, ErrOutOfBounds)
	}
	if !piece.Valid() {
		return fmt.Errorf("place %v: %w", piece, ErrInvalidPiece)
	}
	b.set(pos, piece)
	return nil
}

func (b *Board) Clear(pos Position) error {
	if !pos.InBounds() {
		return fmt.Errorf("clear %s: %w", pos, ErrOutOfBounds)
	}
	b.squares[pos.Row][pos.Col] = nil
	return nil
}

// Relocate moves the occupant of from onto to, capturing whatever stood there,
// and marks it as moved. The captured piece, if any, is returned.
func (b *Board) Relocate(from, to Position) (*Piece, error) {
	if !from.InBounds() || !to.InBounds() {
		return nil, fmt.Errorf("relocate %s to %s: %w", from, to, ErrOutOfBounds)
	}
	piece, ok := b.at(from)
	if !ok {
		return nil, fmt.Errorf("relocate from %s: %w", from, ErrEmptyOrigin)
	}
	var captured *Piece
	if target, occupied := b.at(to); occupied {
		captured = &target
	}
	piece.HasMoved = true
	b.squares[from.Row][from.Col] = nil
	b.set(to, piece)
	return captured, nil
}

// Squares returns copies of all squares in row-major order.
func (b *Board) Squares() []Square {
	squares := make([]Square, 0, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := Square{Position: Position{Row: row, Col: col}}
			if piece, ok := b.at(sq.Position); ok {
				sq.Piece = &piece
			}
			squares = append(squares, sq)
		}
	}
	return squares
}

// Rows returns a row-major grid of piece copies, nil where empty.
func (b *Board) Rows() [][]*Piece {
	rows := make([][]*Piece, Size)
	for row := 0; row < Size; row++ {
		rows[row] = make([]*Piece, Size)
		for col := 0; col < Size; col++ {
			if piece, ok := b.at(Position{Row: row, Col: col}); ok {
				rows[row][col] = &piece
			}
		}
	}
	return rows
}

func (b *Board) Clone() *Board {
	clone := NewEmptyBoard()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			pos := Position{Row: row, Col: col}
			if piece, ok := b.at(pos); ok {
				clone.set(pos, piece)
			}
		}
	}
	return clone
}

func (b *Board) Equal(other *Board) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			pos := Position{Row: row, Col: col}
			p1, ok1 := b.at(pos)
			p2, ok2 := other.at(pos)
			if ok1 != ok2 || p1 != p2 {
				return false
			}
		}
	}
	return true
}
