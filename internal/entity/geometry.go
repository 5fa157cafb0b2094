package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/inarow/internal/apperror"
)

type PlacementMode uint8

const (
	FreeCell PlacementMode = iota + 1
	GravityDrop
)

func (that PlacementMode) String() string {
	switch that {
	case FreeCell:
		return "free-cell"
	case GravityDrop:
		return "gravity-drop"
	default:
		return "unknown"
	}
}

func (that PlacementMode) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *PlacementMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "free-cell":
		*that = FreeCell
	case "gravity-drop":
		*that = GravityDrop
	default:
		return fmt.Errorf("%w: placement mode %q", apperror.ErrInvalidGeometry, text)
	}
	return nil
}

// SetValue lets cleanenv fill a PlacementMode from an environment variable.
func (that *PlacementMode) SetValue(s string) error {
	if s == "" {
		return nil
	}
	return that.UnmarshalText([]byte(s))
}

// Geometry fixes the board shape and rules for the whole game.
type Geometry struct {
	Rows      int           `yaml:"rows" json:"rows"`
	Cols      int           `yaml:"cols" json:"cols"`
	WinLength int           `yaml:"win-length" json:"win_length"`
	Mode      PlacementMode `yaml:"mode" json:"mode"`
}

func (that Geometry) Validate() error {
	switch {
	case that.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", apperror.ErrInvalidGeometry, that.Rows)
	case that.Cols <= 0:
		return fmt.Errorf("%w: cols must be positive, got %d", apperror.ErrInvalidGeometry, that.Cols)
	case that.WinLength <= 0:
		return fmt.Errorf("%w: win length must be positive, got %d", apperror.ErrInvalidGeometry, that.WinLength)
	case that.WinLength > max(that.Rows, that.Cols):
		return fmt.Errorf("%w: win length %d does not fit a %dx%d board",
			apperror.ErrInvalidGeometry, that.WinLength, that.Rows, that.Cols)
	case that.Mode != FreeCell && that.Mode != GravityDrop:
		return fmt.Errorf("%w: placement mode %d", apperror.ErrInvalidGeometry, that.Mode)
	}
	return nil
}

func (that Geometry) Cells() int {
	return that.Rows * that.Cols
}

func (that Geometry) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < that.Rows && c.Col >= 0 && c.Col < that.Cols
}

type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Move is the last placement, handed to the win check and then dropped.
type Move struct {
	Position Coordinate `json:"position"`
	Player   Player     `json:"player"`
}
