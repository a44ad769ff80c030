package model

import "fmt"

type PieceKind uint8

const (
	Pawn PieceKind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceKindNames = map[PieceKind]string{
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

func (k PieceKind) Valid() bool {
	_, ok := pieceKindNames[k]
	return ok
}

func (k PieceKind) String() string {
	if name, ok := pieceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

// notation is the piece prefix used in move notation; pawns have none.
func (k PieceKind) notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (k PieceKind) letter() byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	}
	return '?'
}

func ParsePieceKind(s string) (PieceKind, error) {
	for k, name := range pieceKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

func (k PieceKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid piece kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type Colour uint8

const (
	White Colour = iota + 1
	Black
)

func (c Colour) Valid() bool {
	return c == White || c == Black
}

func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return fmt.Sprintf("Colour(%d)", uint8(c))
}

func (c Colour) Opponent() Colour {
	if c == White {
		return Black
	}
	return White
}

// forward is the row step of a pawn advance. White starts on rows 6-7 and
// moves toward row 0.
func (c Colour) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func ParseColour(s string) (Colour, error) {
	switch s {
	case "White":
		return White, nil
	case "Black":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown colour %q", s)
}

func (c Colour) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid colour %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Colour) UnmarshalText(text []byte) error {
	parsed, err := ParseColour(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Piece is stored by value on the board; HasMoved flips on the first
// relocation and only matters for the pawn double advance.
type Piece struct {
	Kind     PieceKind `json:"kind"`
	Colour   Colour    `json:"colour"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) Valid() bool {
	return p.Kind.Valid() && p.Colour.Valid()
}

// Letter returns the FEN-style letter: upper case for White.
func (p Piece) Letter() byte {
	l := p.Kind.letter()
	if p.Colour == White && l != '?' {
		return l - 'a' + 'A'
	}
	return l
}

func (p Piece) String() string {
	return p.Colour.String() + " " + p.Kind.String()
}
