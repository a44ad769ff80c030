// Package notation renders boards in FEN for clients and logs.
package notation

import (
	"fmt"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/notnil/chess"
)

var pieces = map[model.Colour]map[model.PieceKind]chess.Piece{
	model.White: {
		model.King:   chess.WhiteKing,
		model.Queen:  chess.WhiteQueen,
		model.Rook:   chess.WhiteRook,
		model.Bishop: chess.WhiteBishop,
		model.Knight: chess.WhiteKnight,
		model.Pawn:   chess.WhitePawn,
	},
	model.Black: {
		model.King:   chess.BlackKing,
		model.Queen:  chess.BlackQueen,
		model.Rook:   chess.BlackRook,
		model.Bishop: chess.BlackBishop,
		model.Knight: chess.BlackKnight,
		model.Pawn:   chess.BlackPawn,
	},
}

// square maps a board position to a chess.Square. Row 0 is rank 8.
func square(p model.Position) chess.Square {
	rank := model.Size - 1 - p.Row
	return chess.Square(rank*model.Size + p.Col)
}

// Placement returns the piece-placement field of FEN.
func Placement(b *model.Board) string {
	m := make(map[chess.Square]chess.Piece)
	for _, sq := range b.Squares() {
		if sq.Piece == nil {
			continue
		}
		m[square(sq.Position)] = pieces[sq.Piece.Colour][sq.Piece.Kind]
	}
	return chess.NewBoard(m).String()
}

// FEN returns a full FEN record. Castling and en passant never apply to this
// game, and move counters are not tracked.
func FEN(b *model.Board, toMove model.Colour) string {
	side := "w"
	if toMove == model.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", Placement(b), side)
}
