package notation

import (
	"testing"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/notnil/chess"
)

func TestStartingFEN(t *testing.T) {
	got := FEN(model.NewBoard(), model.White)
	want := "rnbkqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKQBNR w - - 0 1"
	if got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}
	if _, err := chess.FEN(got); err != nil {
		t.Fatalf("FEN not accepted by parser: %v", err)
	}
}

func TestFENAfterMove(t *testing.T) {
	g := model.NewGame()
	if err := g.Commit(model.Position{Row: 6, Col: 4}, model.Position{Row: 4, Col: 4}); err != nil {
		t.Fatal(err)
	}
	got := FEN(g.Board(), g.ToMove())
	want := "rnbkqbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBKQBNR b - - 0 1"
	if got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}
}

func TestPlacementEmptyBoard(t *testing.T) {
	if got := Placement(model.NewEmptyBoard()); got != "8/8/8/8/8/8/8/8" {
		t.Fatalf("Placement = %q", got)
	}
}
