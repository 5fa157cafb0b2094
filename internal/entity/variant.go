package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/inarow/internal/apperror"
)

const (
	TicTacToeName   = "tictactoe"
	ConnectFourName = "connectfour"
)

type Variant struct {
	Name     string   `json:"name"`
	Geometry Geometry `json:"geometry"`
}

var (
	TicTacToe = Variant{
		Name:     TicTacToeName,
		Geometry: Geometry{Rows: 3, Cols: 3, WinLength: 3, Mode: FreeCell},
	}
	ConnectFour = Variant{
		Name:     ConnectFourName,
		Geometry: Geometry{Rows: 6, Cols: 7, WinLength: 4, Mode: GravityDrop},
	}
)

func VariantByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case TicTacToeName:
		return TicTacToe, nil
	case ConnectFourName:
		return ConnectFour, nil
	default:
		return Variant{}, fmt.Errorf("%w: %q", apperror.ErrUnknownVariant, name)
	}
}
