package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func playOpening(t *testing.T) *Game {
	t.Helper()
	g := NewGame()
	for _, m := range [][2]Position{
		{pos(6, 4), pos(4, 4)},
		{pos(1, 3), pos(3, 3)},
		{pos(4, 4), pos(3, 3)},
		{pos(0, 1), pos(2, 2)},
	} {
		if err := g.Commit(m[0], m[1]); err != nil {
			t.Fatalf("commit %s-%s: %v", m[0], m[1], err)
		}
	}
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := playOpening(t)
	snap := g.Snapshot()
	if len(snap.Squares) != Size*Size || snap.ToMove != "White" {
		t.Fatalf("unexpected snapshot shape: %d squares, turn %q", len(snap.Squares), snap.ToMove)
	}

	restored := NewGame()
	if err := restored.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if !restored.Board().Equal(g.Board()) {
		t.Fatalf("restored board differs:\n%s\nwant:\n%s", spew.Sdump(restored.Board().Rows()), spew.Sdump(g.Board().Rows()))
	}
	if restored.ToMove() != g.ToMove() {
		t.Fatalf("restored turn %v, want %v", restored.ToMove(), g.ToMove())
	}
	pawn, _, _ := restored.Board().PieceAt(pos(3, 3))
	if !pawn.HasMoved || pawn.Colour != White {
		t.Fatalf("has-moved flag lost in round trip: %+v", pawn)
	}
	if len(restored.History()) != 0 {
		t.Fatalf("restore should clear history")
	}
}

func TestSnapshotJSONOmitsEmptyPieceFields(t *testing.T) {
	data, err := json.Marshal(SnapshotOf(NewEmptyBoard(), Black))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Contains(s, `"kind"`) || strings.Contains(s, `"colour"`) {
		t.Fatalf("empty squares should omit kind and colour: %s", s)
	}
	if !strings.Contains(s, `"toMove":"Black"`) {
		t.Fatalf("missing turn: %s", s)
	}
}

func TestRestoreClearsSelection(t *testing.T) {
	g := NewGame()
	mustSelect(t, g, pos(6, 0), Selected)
	if err := g.Restore(SnapshotOf(NewBoard(), Black)); err != nil {
		t.Fatal(err)
	}
	assertIdle(t, g)
	if g.ToMove() != Black {
		t.Fatalf("expected black to move after restore")
	}
}

func TestRestoreMalformedLeavesGameUntouched(t *testing.T) {
	valid := func() Snapshot { return SnapshotOf(NewBoard(), White) }
	cases := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"bad turn", func(s *Snapshot) { s.ToMove = "Green" }},
		{"missing turn", func(s *Snapshot) { s.ToMove = "" }},
		{"too few squares", func(s *Snapshot) { s.Squares = s.Squares[:63] }},
		{"too many squares", func(s *Snapshot) { s.Squares = append(s.Squares, s.Squares[0]) }},
		{"duplicate square", func(s *Snapshot) { s.Squares[1].Col = 0 }},
		{"out of range", func(s *Snapshot) { s.Squares[0].Row = 8 }},
		{"unknown kind", func(s *Snapshot) { s.Squares[0].Kind = "Dragon" }},
		{"unknown colour", func(s *Snapshot) { s.Squares[0].Colour = "Red" }},
		{"occupied without kind", func(s *Snapshot) { s.Squares[0].Kind = "" }},
		{"empty with kind", func(s *Snapshot) { s.Squares[20].Kind = "Pawn" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := playOpening(t)
			mustSelect(t, g, pos(6, 0), Selected)
			before := g.Board()
			beforeHistory := len(g.History())

			snap := valid()
			tc.mutate(&snap)
			err := g.Restore(snap)
			if !errors.Is(err, ErrMalformedSnapshot) {
				t.Fatalf("expected ErrMalformedSnapshot, got %v", err)
			}
			if errors.Is(err, ErrContractViolation) {
				t.Fatalf("a bad snapshot is not a contract violation")
			}
			if !before.Equal(g.Board()) || g.ToMove() != White || len(g.History()) != beforeHistory {
				t.Fatalf("failed restore modified the game")
			}
			if origin, _, ok := g.Selection(); !ok || origin != pos(6, 0) {
				t.Fatalf("failed restore dropped the selection")
			}
		})
	}
}
