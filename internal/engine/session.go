package engine

import (
	"fmt"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// State is a snapshot of a session after a move.
type State struct {
	Status    entity.Status  `json:"status"`
	Turn      entity.Player  `json:"turn"`
	Winner    *entity.Player `json:"winner,omitempty"`
	Remaining int            `json:"remaining"`
	LastMove  *entity.Move   `json:"last_move,omitempty"`
}

// Session runs one game: it owns the board, alternates turns and stops on a
// win or when the board runs out of cells. It is not safe for concurrent use.
type Session struct {
	board     *Board
	status    entity.Status
	turn      entity.Player
	winner    *entity.Player
	remaining int
	lastMove  *entity.Move
}

func NewSession(geometry entity.Geometry) (*Session, error) {
	board, err := NewBoard(geometry)
	if err != nil {
		return nil, err
	}

	return &Session{
		board:     board,
		status:    entity.StatusInProgress,
		turn:      entity.PlayerX,
		remaining: geometry.Cells(),
	}, nil
}

// Board - returns a read-only view of the live board.
func (that *Session) Board() BoardView {
	return boardView{board: that.board}
}

// State - returns a snapshot; callers may keep or modify it freely.
func (that *Session) State() State {
	state := State{
		Status:    that.status,
		Turn:      that.turn,
		Remaining: that.remaining,
	}

	if that.winner != nil {
		winner := *that.winner
		state.Winner = &winner
	}

	if that.lastMove != nil {
		lastMove := *that.lastMove
		state.LastMove = &lastMove
	}

	return state
}

// WinningLine - returns the completed line once the game is won.
func (that *Session) WinningLine() []entity.Coordinate {
	if that.status != entity.StatusWon || that.lastMove == nil {
		return nil
	}

	return WinningLine(that.board, *that.lastMove)
}

// Play - places the current player's mark at target. A rejected move leaves
// the session untouched and the same player keeps the turn.
func (that *Session) Play(target entity.Coordinate) (State, error) {
	if that.status.IsTerminal() {
		return that.State(), apperror.ErrGameFinished
	}

	placed, err := that.board.Place(target, that.turn)
	if err != nil {
		return that.State(), fmt.Errorf("invalid turn: %w", err)
	}

	that.updateGameStatus(placed)

	return that.State(), nil
}

// Drop - drops the current player's piece into col on a gravity board.
func (that *Session) Drop(col int) (State, error) {
	if that.status.IsTerminal() {
		return that.State(), apperror.ErrGameFinished
	}

	placed, err := that.board.Drop(col, that.turn)
	if err != nil {
		return that.State(), fmt.Errorf("invalid turn: %w", err)
	}

	that.updateGameStatus(placed)

	return that.State(), nil
}

// updateGameStatus - checks the game status after a move.
func (that *Session) updateGameStatus(placed entity.Coordinate) {
	move := entity.Move{Position: placed, Player: that.turn}
	that.lastMove = &move
	that.remaining--

	switch {
	case CheckWin(that.board, move):
		winner := that.turn
		that.winner = &winner
		that.status = entity.StatusWon
	case that.remaining == 0:
		that.status = entity.StatusDrawn
	default:
		that.turn = that.turn.Next()
	}
}
