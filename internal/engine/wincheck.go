package engine

import "github.com/rocketscienceinc/inarow/internal/entity"

// axes are the four line orientations through a cell: horizontal, vertical,
// "/" and "\". Each one is walked in both directions.
var axes = [4]entity.Coordinate{
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
	{Row: 1, Col: -1},
}

// CheckWin - reports whether the last move completed a run of at least the
// board's win length. Only the lines through the move are scanned.
func CheckWin(board *Board, lastMove entity.Move) bool {
	return len(WinningLine(board, lastMove)) > 0
}

// WinningLine - returns the cells of the first winning run through lastMove,
// ordered along its axis, or nil when the move did not win.
func WinningLine(board *Board, lastMove entity.Move) []entity.Coordinate {
	if !owns(board, lastMove.Position, lastMove.Player) {
		return nil
	}

	for _, axis := range axes {
		back := runLength(board, lastMove, -axis.Row, -axis.Col)
		forward := runLength(board, lastMove, axis.Row, axis.Col)

		if 1+back+forward < board.geometry.WinLength {
			continue
		}

		line := make([]entity.Coordinate, 0, 1+back+forward)
		for i := -back; i <= forward; i++ {
			line = append(line, entity.Coordinate{
				Row: lastMove.Position.Row + i*axis.Row,
				Col: lastMove.Position.Col + i*axis.Col,
			})
		}
		return line
	}

	return nil
}

// runLength - counts same-player cells next to the move in one direction,
// stopping at the edge, an empty cell or the opponent.
func runLength(board *Board, move entity.Move, dRow, dCol int) int {
	count := 0
	c := move.Position
	for {
		c = entity.Coordinate{Row: c.Row + dRow, Col: c.Col + dCol}
		if !owns(board, c, move.Player) {
			return count
		}
		count++
	}
}

func owns(board *Board, c entity.Coordinate, player entity.Player) bool {
	cell, err := board.CellAt(c)
	if err != nil {
		return false
	}

	owner, ok := cell.Owner()
	return ok && owner == player
}
