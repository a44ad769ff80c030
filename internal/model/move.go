package model

import "fmt"

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

// Move pairs a White ply with the Black reply. Either side may be nil when a
// game was restored with Black to move or Black has not replied yet.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]Piece, 0, len(c.White)), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)), c.Black...),
	}
}

// plyNotation is short algebraic notation without check or disambiguation
// markers: Nc3, exd5, Qxh7.
func plyNotation(piece Piece, from, to Position, capture bool) string {
	prefix := piece.Kind.notation()
	pawnFile := ""
	if piece.Kind == Pawn && from.Col != to.Col {
		pawnFile = from.fileNotation()
	}
	captureMark := ""
	if capture {
		captureMark = "x"
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFile, captureMark, to.Notation())
}
