package model

import "fmt"

// Outcome reports what a square activation did.
type Outcome uint8

const (
	Rejected Outcome = iota
	Selected
	Moved
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Selected:
		return "selected"
	case Moved:
		return "moved"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{Rejected, Selected, Moved} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Game is the turn tracker and selection state machine. It is not safe for
// concurrent use; callers serialise access.
type Game struct {
	board        *Board
	toMove       Colour
	origin       *Position
	destinations Destinations
	rejected     *Position
	lastOutcome  *Outcome

	history  []Move
	captured CapturedPieces
	lastMove *SimpleMove
}

// GameState is the read-only view handed to render collaborators.
type GameState struct {
	Board          [][]*Piece     `json:"board"`
	ToMove         Colour         `json:"toMove"`
	SelectedSquare *Position      `json:"selectedSquare"`
	LegalMoves     []Position     `json:"legalMoves"`
	RejectedSquare *Position      `json:"rejectedSquare"`
	Outcome        *Outcome       `json:"outcome"`
	LastMove       *SimpleMove    `json:"lastMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
}

func NewGame() *Game {
	return newGame(NewBoard(), White)
}

// NewGameFromBoard starts a game from an arbitrary position. The board is
// copied.
func NewGameFromBoard(b *Board, toMove Colour) (*Game, error) {
	if !toMove.Valid() {
		return nil, fmt.Errorf("new game: invalid colour to move %d", uint8(toMove))
	}
	return newGame(b.Clone(), toMove), nil
}

func newGame(b *Board, toMove Colour) *Game {
	return &Game{
		board:        b,
		toMove:       toMove,
		destinations: Destinations{},
		history:      make([]Move, 0),
		captured:     newCapturedPieces(),
	}
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) ToMove() Colour {
	return g.toMove
}

// Selection returns the selected origin and its cached destinations. ok is
// false while idle.
func (g *Game) Selection() (origin Position, destinations []Position, ok bool) {
	if g.origin == nil {
		return Position{}, nil, false
	}
	return *g.origin, g.destinations.Sorted(), true
}

func (g *Game) History() []Move {
	history := make([]Move, len(g.history))
	copy(history, g.history)
	return history
}

// Select handles a square activation. Selecting one of the cached
// destinations commits the move; anything else drops the current selection
// and is evaluated as a fresh pick. Picking an empty square or an opponent
// piece is rejected without error.
func (g *Game) Select(pos Position) (Outcome, error) {
	if !pos.InBounds() {
		return Rejected, fmt.Errorf("select %s: %w", pos, ErrOutOfBounds)
	}

	if g.origin != nil && g.destinations.Contains(pos) {
		if err := g.Commit(*g.origin, pos); err != nil {
			return Rejected, err
		}
		return g.record(Moved), nil
	}

	g.Reset()
	piece, ok := g.board.at(pos)
	if !ok || piece.Colour != g.toMove {
		rejected := pos
		g.rejected = &rejected
		return g.record(Rejected), nil
	}

	destinations, err := LegalDestinations(g.board, pos)
	if err != nil {
		return Rejected, err
	}
	origin := pos
	g.origin = &origin
	g.destinations = destinations
	return g.record(Selected), nil
}

func (g *Game) record(o Outcome) Outcome {
	g.lastOutcome = &o
	return o
}

// Commit applies a move, flips the turn and clears the selection. The move
// must be legal for the side to move; anything else is a caller bug.
func (g *Game) Commit(origin, destination Position) error {
	if !origin.InBounds() || !destination.InBounds() {
		return fmt.Errorf("commit %s to %s: %w", origin, destination, ErrOutOfBounds)
	}
	piece, ok := g.board.at(origin)
	if !ok {
		return fmt.Errorf("commit from %s: %w", origin, ErrEmptyOrigin)
	}
	if piece.Colour != g.toMove {
		return fmt.Errorf("commit %v from %s: %w", piece, origin, ErrWrongColour)
	}
	legal, err := LegalDestinations(g.board, origin)
	if err != nil {
		return err
	}
	if !legal.Contains(destination) {
		return fmt.Errorf("commit %s to %s: %w", origin, destination, ErrIllegalDestination)
	}

	_, capture := g.board.at(destination)
	notation := plyNotation(piece, origin, destination, capture)
	captured, err := g.board.Relocate(origin, destination)
	if err != nil {
		return err
	}
	moved, _ := g.board.at(destination)
	g.recordPly(Ply{
		Piece:         moved,
		From:          origin,
		To:            destination,
		CapturedPiece: captured,
		Notation:      notation,
	})

	g.toMove = g.toMove.Opponent()
	g.Reset()
	return nil
}

func (g *Game) recordPly(ply Ply) {
	if ply.CapturedPiece != nil {
		switch ply.Piece.Colour {
		case White:
			g.captured.White = append(g.captured.White, *ply.CapturedPiece)
		case Black:
			g.captured.Black = append(g.captured.Black, *ply.CapturedPiece)
		}
	}

	if ply.Piece.Colour == White || len(g.history) == 0 || g.history[len(g.history)-1].BlackPly != nil {
		g.history = append(g.history, Move{})
	}
	last := &g.history[len(g.history)-1]
	if ply.Piece.Colour == White {
		last.WhitePly = &ply
	} else {
		last.BlackPly = &ply
	}
	g.lastMove = &SimpleMove{From: ply.From, To: ply.To}
}

// Reset drops the selection without touching the board.
func (g *Game) Reset() {
	g.origin = nil
	g.destinations = Destinations{}
	g.rejected = nil
}

func (g *Game) Snapshot() Snapshot {
	return SnapshotOf(g.board, g.toMove)
}

// Restore replaces the board and turn with the snapshot contents. The
// snapshot is decoded in full first; a malformed one leaves the game as it
// was.
func (g *Game) Restore(s Snapshot) error {
	board, toMove, err := s.Decode()
	if err != nil {
		return err
	}
	*g = *newGame(board, toMove)
	return nil
}

func (g *Game) State() GameState {
	state := GameState{
		Board:          g.board.Rows(),
		ToMove:         g.toMove,
		LegalMoves:     g.destinations.Sorted(),
		MoveHistory:    g.History(),
		CapturedPieces: g.captured.clone(),
	}
	if g.origin != nil {
		origin := *g.origin
		state.SelectedSquare = &origin
	}
	if g.rejected != nil {
		rejected := *g.rejected
		state.RejectedSquare = &rejected
	}
	if g.lastOutcome != nil {
		outcome := *g.lastOutcome
		state.Outcome = &outcome
	}
	if g.lastMove != nil {
		lastMove := *g.lastMove
		state.LastMove = &lastMove
	}
	return state
}
