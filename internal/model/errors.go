package model

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks errors caused by a broken caller rather than by
// a player: out-of-range coordinates, moving from an empty square and the like.
var ErrContractViolation = errors.New("contract violation")

var (
	ErrOutOfBounds        = fmt.Errorf("%w: position out of bounds", ErrContractViolation)
	ErrEmptyOrigin        = fmt.Errorf("%w: no piece at origin", ErrContractViolation)
	ErrIllegalDestination = fmt.Errorf("%w: destination is not legal", ErrContractViolation)
	ErrWrongColour        = fmt.Errorf("%w: piece does not belong to side to move", ErrContractViolation)
	ErrInvalidPiece       = fmt.Errorf("%w: invalid piece", ErrContractViolation)
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")
