package model

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func mustPlace(t *testing.T, b *Board, p Position, piece Piece) {
	t.Helper()
	if err := b.Place(p, piece); err != nil {
		t.Fatalf("place %v at %s: %v", piece, p, err)
	}
}

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	for col := 0; col < Size; col++ {
		for _, tc := range []struct {
			row    int
			kind   PieceKind
			colour Colour
		}{
			{0, backRank[col], Black},
			{1, Pawn, Black},
			{6, Pawn, White},
			{7, backRank[col], White},
		} {
			piece, ok, err := b.PieceAt(pos(tc.row, col))
			if err != nil || !ok {
				t.Fatalf("expected piece at %s, ok=%v err=%v", pos(tc.row, col), ok, err)
			}
			if piece.Kind != tc.kind || piece.Colour != tc.colour || piece.HasMoved {
				t.Fatalf("at %s: got %+v, want %v %v unmoved", pos(tc.row, col), piece, tc.colour, tc.kind)
			}
		}
		for row := 2; row < 6; row++ {
			if occupied, _ := b.IsOccupied(pos(row, col)); occupied {
				t.Fatalf("expected %s empty", pos(row, col))
			}
		}
	}
	if king, _, _ := b.PieceAt(pos(7, 3)); king.Kind != King {
		t.Fatalf("expected white king on column 3, got %v", king)
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	b := NewBoard()
	bad := []Position{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {9, 9}}
	for _, p := range bad {
		if _, _, err := b.PieceAt(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("PieceAt(%s): expected ErrOutOfBounds, got %v", p, err)
		}
		if _, err := b.IsOccupied(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("IsOccupied(%s): expected ErrOutOfBounds, got %v", p, err)
		}
		if err := b.Place(p, Piece{Kind: Rook, Colour: White}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Place(%s): expected ErrOutOfBounds, got %v", p, err)
		}
		if err := b.Clear(p); !errors.Is(err, ErrContractViolation) {
			t.Errorf("Clear(%s): expected contract violation, got %v", p, err)
		}
		if _, err := b.Relocate(pos(6, 0), p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Relocate to %s: expected ErrOutOfBounds, got %v", p, err)
		}
	}
}

func TestPlaceRejectsInvalidPiece(t *testing.T) {
	b := NewEmptyBoard()
	if err := b.Place(pos(0, 0), Piece{Kind: Rook}); !errors.Is(err, ErrInvalidPiece) {
		t.Fatalf("expected ErrInvalidPiece, got %v", err)
	}
	if err := b.Place(pos(0, 0), Piece{Colour: White}); !errors.Is(err, ErrInvalidPiece) {
		t.Fatalf("expected ErrInvalidPiece, got %v", err)
	}
}

func TestRelocate(t *testing.T) {
	b := NewEmptyBoard()
	mustPlace(t, b, pos(7, 0), Piece{Kind: Rook, Colour: White})
	mustPlace(t, b, pos(7, 5), Piece{Kind: Pawn, Colour: Black})

	captured, err := b.Relocate(pos(7, 0), pos(7, 5))
	if err != nil {
		t.Fatal(err)
	}
	if captured == nil || captured.Kind != Pawn || captured.Colour != Black {
		t.Fatalf("expected captured black pawn, got %v", captured)
	}
	if occupied, _ := b.IsOccupied(pos(7, 0)); occupied {
		t.Fatalf("origin should be empty after relocate")
	}
	rook, ok, _ := b.PieceAt(pos(7, 5))
	if !ok || rook.Kind != Rook || rook.Colour != White || !rook.HasMoved {
		t.Fatalf("expected moved white rook at destination, got %+v", rook)
	}

	captured, err = b.Relocate(pos(7, 5), pos(3, 5))
	if err != nil || captured != nil {
		t.Fatalf("quiet relocate: captured=%v err=%v", captured, err)
	}

	if _, err := b.Relocate(pos(7, 0), pos(6, 0)); !errors.Is(err, ErrEmptyOrigin) {
		t.Fatalf("expected ErrEmptyOrigin, got %v", err)
	}
}

func TestBoardNeverAliasesPieces(t *testing.T) {
	b := NewBoard()
	piece, _, _ := b.PieceAt(pos(6, 0))
	piece.HasMoved = true
	if again, _, _ := b.PieceAt(pos(6, 0)); again.HasMoved {
		t.Fatalf("mutating a returned piece changed the board")
	}

	rows := b.Rows()
	rows[6][0].Kind = Queen
	if again, _, _ := b.PieceAt(pos(6, 0)); again.Kind != Pawn {
		t.Fatalf("mutating Rows() output changed the board")
	}

	clone := b.Clone()
	if _, err := clone.Relocate(pos(6, 0), pos(4, 0)); err != nil {
		t.Fatal(err)
	}
	if b.Equal(clone) {
		t.Fatalf("clone shares state with original:\n%s", spew.Sdump(b.Rows()))
	}

	seen := map[*Piece]Position{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := clone.squares[row][col]
			if p == nil {
				continue
			}
			if other, dup := seen[p]; dup {
				t.Fatalf("squares %s and %s share a piece", other, pos(row, col))
			}
			seen[p] = pos(row, col)
		}
	}
}

func TestPositionNotation(t *testing.T) {
	cases := map[Position]string{
		pos(0, 0): "a8",
		pos(7, 0): "a1",
		pos(7, 7): "h1",
		pos(6, 4): "e2",
		pos(3, 3): "d5",
	}
	for p, want := range cases {
		if got := p.Notation(); got != want {
			t.Errorf("%s.Notation() = %q, want %q", p, got, want)
		}
		back, err := ParseNotation(want)
		if err != nil || back != p {
			t.Errorf("ParseNotation(%q) = %s, %v; want %s", want, back, err, p)
		}
	}
	for _, bad := range []string{"", "i1", "a9", "a0", "e22"} {
		if _, err := ParseNotation(bad); err == nil {
			t.Errorf("ParseNotation(%q) should fail", bad)
		}
	}
}
