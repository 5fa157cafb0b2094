package engine

import (
	"fmt"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// Board holds the cell grid of one game. Row 0 is the bottom row, which is
// where gravity-drop pieces land first.
type Board struct {
	geometry entity.Geometry
	cells    []entity.Cell
}

func NewBoard(geometry entity.Geometry) (*Board, error) {
	if err := geometry.Validate(); err != nil {
		return nil, fmt.Errorf("could not create board: %w", err)
	}

	return &Board{
		geometry: geometry,
		cells:    make([]entity.Cell, geometry.Cells()),
	}, nil
}

func (that *Board) Geometry() entity.Geometry {
	return that.geometry
}

// CellAt - returns the cell state at c.
func (that *Board) CellAt(c entity.Coordinate) (entity.Cell, error) {
	if !that.geometry.Contains(c) {
		return entity.EmptyCell, fmt.Errorf("%w: %s on %dx%d board", apperror.ErrOutOfBounds, c, that.geometry.Rows, that.geometry.Cols)
	}

	return that.cells[that.index(c)], nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// AvailableTargets - lists where the next mark may go. Free-cell boards list
// every empty cell row by row; gravity boards list one landing cell per
// column that still has room, left to right.
func (that *Board) AvailableTargets() []entity.Coordinate {
	if that.geometry.Mode == entity.GravityDrop {
		targets := make([]entity.Coordinate, 0, that.geometry.Cols)
		for col := 0; col < that.geometry.Cols; col++ {
			if row, ok := that.landingRow(col); ok {
				targets = append(targets, entity.Coordinate{Row: row, Col: col})
			}
		}
		return targets
	}

	targets := make([]entity.Coordinate, 0, len(that.cells))
	for row := 0; row < that.geometry.Rows; row++ {
		for col := 0; col < that.geometry.Cols; col++ {
			c := entity.Coordinate{Row: row, Col: col}
			if that.cells[that.index(c)].IsEmpty() {
				targets = append(targets, c)
			}
		}
	}

	return targets
}

// LandingRow - resolves a column to the row a dropped piece would occupy.
func (that *Board) LandingRow(col int) (int, error) {
	if col < 0 || col >= that.geometry.Cols {
		return 0, fmt.Errorf("%w: column %d", apperror.ErrIllegalMove, col)
	}

	row, ok := that.landingRow(col)
	if !ok {
		return 0, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, col)
	}

	return row, nil
}

// Place - puts player's mark on target and returns the cell that was marked.
// On a gravity board target.Row must be the landing row of target.Col.
func (that *Board) Place(target entity.Coordinate, player entity.Player) (entity.Coordinate, error) {
	if !player.Valid() {
		return entity.Coordinate{}, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, entity.ErrUnknownPlayer)
	}

	if that.geometry.Mode == entity.GravityDrop {
		row, err := that.LandingRow(target.Col)
		if err != nil {
			return entity.Coordinate{}, err
		}

		if target.Row != row {
			return entity.Coordinate{}, fmt.Errorf("%w: %s, column %d lands on row %d",
				apperror.ErrNotLandingRow, target, target.Col, row)
		}
	}

	if err := that.validateFreeCell(target); err != nil {
		return entity.Coordinate{}, err
	}

	that.cells[that.index(target)] = entity.Marked(player)

	return target, nil
}

// Drop - places player's piece in col on a gravity board.
func (that *Board) Drop(col int, player entity.Player) (entity.Coordinate, error) {
	if that.geometry.Mode != entity.GravityDrop {
		return entity.Coordinate{}, fmt.Errorf("%w: column %d", apperror.ErrCellRequired, col)
	}

	row, err := that.LandingRow(col)
	if err != nil {
		return entity.Coordinate{}, err
	}

	return that.Place(entity.Coordinate{Row: row, Col: col}, player)
}

// validateFreeCell - checks that target is on the board and empty.
func (that *Board) validateFreeCell(target entity.Coordinate) error {
	if !that.geometry.Contains(target) {
		return fmt.Errorf("%w: %s is off the board", apperror.ErrIllegalMove, target)
	}

	if !that.cells[that.index(target)].IsEmpty() {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, target)
	}

	return nil
}

func (that *Board) landingRow(col int) (int, bool) {
	for row := 0; row < that.geometry.Rows; row++ {
		if that.cells[that.index(entity.Coordinate{Row: row, Col: col})].IsEmpty() {
			return row, true
		}
	}

	return 0, false
}

func (that *Board) index(c entity.Coordinate) int {
	return c.Row*that.geometry.Cols + c.Col
}
