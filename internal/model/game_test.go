package model

import (
	"errors"
	"testing"
)

func mustSelect(t *testing.T, g *Game, p Position, want Outcome) {
	t.Helper()
	got, err := g.Select(p)
	if err != nil {
		t.Fatalf("Select(%s): %v", p, err)
	}
	if got != want {
		t.Fatalf("Select(%s) = %s, want %s", p, got, want)
	}
}

func assertIdle(t *testing.T, g *Game) {
	t.Helper()
	if _, dests, ok := g.Selection(); ok || len(dests) != 0 {
		t.Fatalf("expected idle game, selection ok=%v dests=%v", ok, dests)
	}
	if st := g.State(); st.SelectedSquare != nil || len(st.LegalMoves) != 0 {
		t.Fatalf("expected idle state view, got %+v", st)
	}
}

func TestOpeningPawnScenario(t *testing.T) {
	g := NewGame()
	if g.ToMove() != White {
		t.Fatalf("white moves first")
	}

	mustSelect(t, g, pos(6, 0), Selected)
	origin, dests, ok := g.Selection()
	if !ok || origin != pos(6, 0) {
		t.Fatalf("expected selection at (6,0), got %s ok=%v", origin, ok)
	}
	if len(dests) != 2 || dests[0] != pos(4, 0) || dests[1] != pos(5, 0) {
		t.Fatalf("expected destinations (4,0),(5,0), got %v", dests)
	}

	mustSelect(t, g, pos(4, 0), Moved)
	assertIdle(t, g)
	if g.ToMove() != Black {
		t.Fatalf("expected black to move after commit")
	}
	b := g.Board()
	if occupied, _ := b.IsOccupied(pos(6, 0)); occupied {
		t.Fatalf("origin should be empty")
	}
	pawn, ok, _ := b.PieceAt(pos(4, 0))
	if !ok || pawn.Kind != Pawn || pawn.Colour != White || !pawn.HasMoved {
		t.Fatalf("expected moved white pawn at (4,0), got %+v", pawn)
	}
	assertDestinations(t, b, pos(4, 0), []Position{pos(3, 0)})

	// White's pawn can not be picked on Black's turn.
	mustSelect(t, g, pos(4, 0), Rejected)
	mustSelect(t, g, pos(1, 7), Selected)
	mustSelect(t, g, pos(2, 7), Moved)
	mustSelect(t, g, pos(4, 0), Selected)
	if _, dests, _ := g.Selection(); len(dests) != 1 || dests[0] != pos(3, 0) {
		t.Fatalf("expected only (3,0) after first move, got %v", dests)
	}
}

func TestSelectRejects(t *testing.T) {
	g := NewGame()

	mustSelect(t, g, pos(4, 4), Rejected)
	assertIdle(t, g)
	st := g.State()
	if st.RejectedSquare == nil || *st.RejectedSquare != pos(4, 4) {
		t.Fatalf("expected rejected square (4,4), got %v", st.RejectedSquare)
	}
	if st.Outcome == nil || *st.Outcome != Rejected {
		t.Fatalf("expected rejected outcome in view, got %v", st.Outcome)
	}

	mustSelect(t, g, pos(1, 0), Rejected)
	assertIdle(t, g)

	before := g.Board()
	mustSelect(t, g, pos(6, 0), Selected)
	// Empty square outside the destination set drops the selection.
	mustSelect(t, g, pos(3, 3), Rejected)
	assertIdle(t, g)
	if !before.Equal(g.Board()) || g.ToMove() != White {
		t.Fatalf("rejected selection must not change the board or turn")
	}
}

func TestSelectRetargets(t *testing.T) {
	g := NewGame()
	mustSelect(t, g, pos(6, 0), Selected)
	mustSelect(t, g, pos(7, 1), Selected)
	origin, dests, ok := g.Selection()
	if !ok || origin != pos(7, 1) || len(dests) != 2 {
		t.Fatalf("expected knight selection at (7,1), got %s %v ok=%v", origin, dests, ok)
	}
	if st := g.State(); st.RejectedSquare != nil {
		t.Fatalf("a successful selection should clear the rejected square")
	}
}

func TestSelectionWithNoDestinations(t *testing.T) {
	g := NewGame()
	mustSelect(t, g, pos(7, 0), Selected)
	origin, dests, ok := g.Selection()
	if !ok || origin != pos(7, 0) || len(dests) != 0 {
		t.Fatalf("expected blocked rook selected with no destinations, got %s %v %v", origin, dests, ok)
	}
	// Clicking the rook's own square again re-selects it.
	mustSelect(t, g, pos(7, 0), Selected)
}

func TestResetIsIdempotent(t *testing.T) {
	g := NewGame()
	mustSelect(t, g, pos(6, 4), Selected)
	g.Reset()
	assertIdle(t, g)
	first := g.State()
	g.Reset()
	assertIdle(t, g)
	second := g.State()
	if first.SelectedSquare != second.SelectedSquare || len(first.LegalMoves) != len(second.LegalMoves) {
		t.Fatalf("second reset changed state")
	}
	if !NewBoard().Equal(g.Board()) {
		t.Fatalf("reset must not touch the board")
	}
}

func TestSelectOutOfBounds(t *testing.T) {
	g := NewGame()
	if _, err := g.Select(pos(8, 8)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCommitContractViolations(t *testing.T) {
	cases := []struct {
		name     string
		from, to Position
		want     error
	}{
		{"empty origin", pos(4, 4), pos(3, 4), ErrEmptyOrigin},
		{"wrong colour", pos(1, 0), pos(2, 0), ErrWrongColour},
		{"illegal destination", pos(6, 0), pos(3, 0), ErrIllegalDestination},
		{"out of bounds", pos(6, 0), pos(-1, 0), ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGame()
			err := g.Commit(tc.from, tc.to)
			if !errors.Is(err, tc.want) || !errors.Is(err, ErrContractViolation) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !NewBoard().Equal(g.Board()) || g.ToMove() != White {
				t.Fatalf("failed commit must leave the game untouched")
			}
		})
	}
}

func TestCommitWithoutSelection(t *testing.T) {
	g := NewGame()
	if err := g.Commit(pos(7, 6), pos(5, 5)); err != nil {
		t.Fatal(err)
	}
	if g.ToMove() != Black {
		t.Fatalf("expected black to move")
	}
	knight, ok, _ := g.Board().PieceAt(pos(5, 5))
	if !ok || knight.Kind != Knight || !knight.HasMoved {
		t.Fatalf("expected moved knight at (5,5), got %+v", knight)
	}
}

func TestCaptureHistory(t *testing.T) {
	b := NewEmptyBoard()
	mustPlace(t, b, pos(4, 4), Piece{Kind: Pawn, Colour: White, HasMoved: true})
	mustPlace(t, b, pos(3, 3), Piece{Kind: Pawn, Colour: Black, HasMoved: true})
	mustPlace(t, b, pos(0, 3), Piece{Kind: Queen, Colour: Black})
	g, err := NewGameFromBoard(b, White)
	if err != nil {
		t.Fatal(err)
	}

	mustSelect(t, g, pos(4, 4), Selected)
	mustSelect(t, g, pos(3, 3), Moved)
	mustSelect(t, g, pos(0, 3), Selected)
	mustSelect(t, g, pos(3, 3), Moved)

	history := g.History()
	if len(history) != 1 || history[0].WhitePly == nil || history[0].BlackPly == nil {
		t.Fatalf("expected one full move, got %+v", history)
	}
	if got := history[0].WhitePly.Notation; got != "exd5" {
		t.Fatalf("white notation = %q, want exd5", got)
	}
	if got := history[0].BlackPly.Notation; got != "Qxd5" {
		t.Fatalf("black notation = %q, want Qxd5", got)
	}

	st := g.State()
	if len(st.CapturedPieces.White) != 1 || st.CapturedPieces.White[0].Kind != Pawn {
		t.Fatalf("white should have captured a pawn, got %+v", st.CapturedPieces.White)
	}
	if len(st.CapturedPieces.Black) != 1 || st.CapturedPieces.Black[0].Colour != White {
		t.Fatalf("black should have captured a white pawn, got %+v", st.CapturedPieces.Black)
	}
	if st.LastMove == nil || st.LastMove.From != pos(0, 3) || st.LastMove.To != pos(3, 3) {
		t.Fatalf("unexpected last move %+v", st.LastMove)
	}
}

func TestHistoryStartingWithBlack(t *testing.T) {
	g, err := NewGameFromBoard(NewBoard(), Black)
	if err != nil {
		t.Fatal(err)
	}
	mustSelect(t, g, pos(0, 1), Selected)
	mustSelect(t, g, pos(2, 2), Moved)
	mustSelect(t, g, pos(6, 0), Selected)
	mustSelect(t, g, pos(4, 0), Moved)

	history := g.History()
	if len(history) != 2 {
		t.Fatalf("expected two history rows, got %+v", history)
	}
	if history[0].WhitePly != nil || history[0].BlackPly.Notation != "Nc6" {
		t.Fatalf("unexpected first row %+v", history[0])
	}
	if history[1].WhitePly.Notation != "a4" || history[1].BlackPly != nil {
		t.Fatalf("unexpected second row %+v", history[1])
	}
}

func TestNewGameFromBoardRejectsBadColour(t *testing.T) {
	if _, err := NewGameFromBoard(NewBoard(), Colour(0)); err == nil {
		t.Fatalf("expected error for invalid colour")
	}
}
