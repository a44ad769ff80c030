package model

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Destinations is an unordered set of squares a piece may move to.
type Destinations map[Position]struct{}

func (d Destinations) add(pos Position) {
	d[pos] = struct{}{}
}

func (d Destinations) Contains(pos Position) bool {
	_, ok := d[pos]
	return ok
}

func (d Destinations) Len() int {
	return len(d)
}

// Sorted returns the destinations in row-major order.
func (d Destinations) Sorted() []Position {
	positions := maps.Keys(d)
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row != positions[j].Row {
			return positions[i].Row < positions[j].Row
		}
		return positions[i].Col < positions[j].Col
	})
	return positions
}

type direction struct {
	dRow, dCol int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {-1, 2}, {1, -2}, {-1, -2}}
	kingDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

type generator func(b *Board, from Position, piece Piece, dst Destinations)

var generators = map[PieceKind]generator{
	Pawn:   pawnDestinations,
	Knight: knightDestinations,
	Bishop: bishopDestinations,
	Rook:   rookDestinations,
	Queen:  queenDestinations,
	King:   kingDestinations,
}

// LegalDestinations computes where the piece on origin may move under basic
// movement and capture rules. Check safety is never considered.
func LegalDestinations(b *Board, origin Position) (Destinations, error) {
	if !origin.InBounds() {
		return nil, fmt.Errorf("destinations from %s: %w", origin, ErrOutOfBounds)
	}
	piece, ok := b.at(origin)
	if !ok {
		return nil, fmt.Errorf("destinations from %s: %w", origin, ErrEmptyOrigin)
	}
	gen, ok := generators[piece.Kind]
	if !ok {
		return nil, fmt.Errorf("destinations for %v: %w", piece, ErrInvalidPiece)
	}
	dst := Destinations{}
	gen(b, origin, piece, dst)
	return dst, nil
}

func pawnDestinations(b *Board, from Position, piece Piece, dst Destinations) {
	fwd := piece.Colour.forward()

	// Forward one, then two if the pawn has not moved; the first square must
	// be empty before the second is looked at.
	one := from.step(fwd, 0)
	if one.InBounds() && !b.occupied(one) {
		dst.add(one)
		two := from.step(2*fwd, 0)
		if !piece.HasMoved && two.InBounds() && !b.occupied(two) {
			dst.add(two)
		}
	}

	for _, dCol := range []int{-1, 1} {
		target := from.step(fwd, dCol)
		if target.InBounds() && b.isEnemy(target, piece.Colour) {
			dst.add(target)
		}
	}
}

func knightDestinations(b *Board, from Position, piece Piece, dst Destinations) {
	stepDestinations(b, from, piece.Colour, knightDirs, dst)
}

func kingDestinations(b *Board, from Position, piece Piece, dst Destinations) {
	stepDestinations(b, from, piece.Colour, kingDirs, dst)
}

func bishopDestinations(b *Board, from Position, piece Piece, dst Destinations) {
	slideDestinations(b, from, piece.Colour, bishopDirs, dst)
}

func rookDestinations(b *Board, from Position, piece Piece, dst Destinations) {
	slideDestinations(b, from, piece.Colour, rookDirs, dst)
}

// Rook and bishop rays never overlap, so the union has no duplicates.
func queenDestinations(b *Board, from Position, piece Piece, dst Destinations) {
	rookDestinations(b, from, piece, dst)
	bishopDestinations(b, from, piece, dst)
}

func stepDestinations(b *Board, from Position, colour Colour, dirs []direction, dst Destinations) {
	for _, dir := range dirs {
		target := from.step(dir.dRow, dir.dCol)
		if target.InBounds() && (!b.occupied(target) || b.isEnemy(target, colour)) {
			dst.add(target)
		}
	}
}

// slideDestinations walks each ray until the edge or the first occupied
// square, which is included only when it holds an enemy piece.
func slideDestinations(b *Board, from Position, colour Colour, dirs []direction, dst Destinations) {
	for _, dir := range dirs {
		target := from.step(dir.dRow, dir.dCol)
		for target.InBounds() {
			if !b.occupied(target) {
				dst.add(target)
			} else {
				if b.isEnemy(target, colour) {
					dst.add(target)
				}
				break
			}
			target = target.step(dir.dRow, dir.dCol)
		}
	}
}

func (b *Board) occupied(pos Position) bool {
	return b.squares[pos.Row][pos.Col] != nil
}

func (b *Board) isEnemy(pos Position, colour Colour) bool {
	p := b.squares[pos.Row][pos.Col]
	return p != nil && p.Colour != colour
}
