package engine

import "github.com/rocketscienceinc/inarow/internal/entity"

// BoardView is the read side of a Board handed out to renderers. It has no
// way to place marks, so a session's board only changes through the session.
type BoardView interface {
	Geometry() entity.Geometry
	CellAt(c entity.Coordinate) (entity.Cell, error)
	IsFull() bool
	AvailableTargets() []entity.Coordinate
	LandingRow(col int) (int, error)
}

type boardView struct {
	board *Board
}

func (that boardView) Geometry() entity.Geometry {
	return that.board.Geometry()
}

func (that boardView) CellAt(c entity.Coordinate) (entity.Cell, error) {
	return that.board.CellAt(c)
}

func (that boardView) IsFull() bool {
	return that.board.IsFull()
}

func (that boardView) AvailableTargets() []entity.Coordinate {
	return that.board.AvailableTargets()
}

func (that boardView) LandingRow(col int) (int, error) {
	return that.board.LandingRow(col)
}
