package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/inarow/internal/engine"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// maxLetterColumns is how many columns can be named with a single letter.
const maxLetterColumns = 26

// RenderBoard - draws the board as a text grid. Free-cell boards are labeled
// with 0-based row and column numbers above the grid; gravity boards are
// drawn bottom row last, with 1-based row numbers and column letters below.
func RenderBoard(board engine.BoardView) string {
	geometry := board.Geometry()

	var sb strings.Builder

	if geometry.Mode == entity.GravityDrop {
		labels := make([]string, geometry.Cols)
		for col := 0; col < geometry.Cols; col++ {
			labels[col] = columnLetter(col)
		}
		footer := labelRow(labels)
		separator := strings.Repeat("-", len(footer))

		for row := geometry.Rows - 1; row >= 0; row-- {
			writeRow(&sb, board, row, strconv.Itoa(row+1))
			sb.WriteString(separator + "\n")
		}
		sb.WriteString(footer + "\n")

		return sb.String()
	}

	labels := make([]string, geometry.Cols)
	for col := 0; col < geometry.Cols; col++ {
		labels[col] = strconv.Itoa(col)
	}
	header := labelRow(labels)
	separator := strings.Repeat("-", len(header))

	sb.WriteString(separator + "\n")
	sb.WriteString(header + "\n")
	sb.WriteString(separator + "\n")
	for row := 0; row < geometry.Rows; row++ {
		writeRow(&sb, board, row, strconv.Itoa(row))
		sb.WriteString(separator + "\n")
	}

	return sb.String()
}

// PositionName - names a gravity-board cell the way players type it, e.g. "d1".
func PositionName(c entity.Coordinate) string {
	return fmt.Sprintf("%s%d", columnLetter(c.Col), c.Row+1)
}

func labelRow(labels []string) string {
	return "|R\\C|" + " " + strings.Join(labels, " | ") + " |"
}

func writeRow(sb *strings.Builder, board engine.BoardView, row int, label string) {
	fmt.Fprintf(sb, "| %s |", label)
	for col := 0; col < board.Geometry().Cols; col++ {
		cell, err := board.CellAt(entity.Coordinate{Row: row, Col: col})
		if err != nil {
			cell = entity.EmptyCell
		}
		fmt.Fprintf(sb, " %s |", cell)
	}
	sb.WriteString("\n")
}

func columnLetter(col int) string {
	return string(rune('a' + col))
}
