package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGeometry = errors.New("invalid board geometry")
	ErrIllegalMove     = errors.New("illegal move")
	ErrOutOfBounds     = errors.New("coordinate is out of bounds")
	ErrGameFinished    = errors.New("game is already finished")
	ErrUnknownVariant  = errors.New("unknown game variant")
	ErrNotFound        = errors.New("not found")
)

// Illegal move reasons. Each one wraps ErrIllegalMove.
var (
	ErrCellOccupied  = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrColumnFull    = fmt.Errorf("%w: column is full", ErrIllegalMove)
	ErrNotLandingRow = fmt.Errorf("%w: row is not where the piece lands", ErrIllegalMove)
	ErrCellRequired  = fmt.Errorf("%w: board takes a cell, not a column", ErrIllegalMove)
)
