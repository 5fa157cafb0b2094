package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("unknown player mark")

// Player is one of the two marks. The zero value is not a player.
type Player uint8

const (
	PlayerX Player = iota + 1
	PlayerO
)

func (that Player) Valid() bool {
	return that == PlayerX || that == PlayerO
}

// Next returns the player who moves after that one.
func (that Player) Next() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Player) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "?"
	}
}

func (that Player) MarshalText() ([]byte, error) {
	if !that.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, uint8(that))
	}
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, text)
	}
	return nil
}

// Cell is either empty or holds one player's mark.
type Cell struct {
	owner Player
}

var EmptyCell = Cell{}

func Marked(player Player) Cell {
	return Cell{owner: player}
}

func (that Cell) IsEmpty() bool {
	return that.owner == 0
}

func (that Cell) Owner() (Player, bool) {
	return that.owner, that.owner != 0
}

func (that Cell) String() string {
	if that.IsEmpty() {
		return " "
	}
	return that.owner.String()
}
