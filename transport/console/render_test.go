package console

import (
	"testing"

	"github.com/rocketscienceinc/inarow/internal/engine"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard(t *testing.T) {
	t.Run("Free-cell board with a header", func(t *testing.T) {
		// Given: a tic-tac-toe board with X at (0,0) and O at (2,1)
		board, err := engine.NewBoard(entity.TicTacToe.Geometry)
		require.NoError(t, err)
		_, err = board.Place(entity.Coordinate{Row: 0, Col: 0}, entity.PlayerX)
		require.NoError(t, err)
		_, err = board.Place(entity.Coordinate{Row: 2, Col: 1}, entity.PlayerO)
		require.NoError(t, err)

		// When: rendering it
		out := RenderBoard(board)

		// Then: rows are drawn top to bottom under the header
		expected := "" +
			"-----------------\n" +
			"|R\\C| 0 | 1 | 2 |\n" +
			"-----------------\n" +
			"| 0 | X |   |   |\n" +
			"-----------------\n" +
			"| 1 |   |   |   |\n" +
			"-----------------\n" +
			"| 2 |   | O |   |\n" +
			"-----------------\n"
		assert.Equal(t, expected, out)
	})

	t.Run("Gravity board with the bottom row last", func(t *testing.T) {
		// Given: a 2x3 gravity board with one X in column a
		board, err := engine.NewBoard(entity.Geometry{Rows: 2, Cols: 3, WinLength: 3, Mode: entity.GravityDrop})
		require.NoError(t, err)
		_, err = board.Drop(0, entity.PlayerX)
		require.NoError(t, err)

		// When: rendering it
		out := RenderBoard(board)

		// Then: row 1 is at the bottom above the column letters
		expected := "" +
			"| 2 |   |   |   |\n" +
			"-----------------\n" +
			"| 1 | X |   |   |\n" +
			"-----------------\n" +
			"|R\\C| a | b | c |\n"
		assert.Equal(t, expected, out)
	})
}

func TestPositionName(t *testing.T) {
	assert.Equal(t, "a1", PositionName(entity.Coordinate{Row: 0, Col: 0}))
	assert.Equal(t, "g6", PositionName(entity.Coordinate{Row: 5, Col: 6}))
}
