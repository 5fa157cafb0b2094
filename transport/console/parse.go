package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/inarow/internal/entity"
)

var ErrMalformedInput = errors.New("malformed input")

// Request is a parsed move: a cell for free-cell boards, a column (and
// optionally the row the player expects it to land on) for gravity boards.
type Request struct {
	Cell   entity.Coordinate
	Column int
	HasRow bool
}

// ParseCell - reads "row,col" with 0-based numbers.
func ParseCell(input string) (entity.Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(input), ",")
	if len(parts) != 2 {
		return entity.Coordinate{}, fmt.Errorf("%w: want row,col, got %q", ErrMalformedInput, input)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("%w: row %q", ErrMalformedInput, parts[0])
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Coordinate{}, fmt.Errorf("%w: column %q", ErrMalformedInput, parts[1])
	}

	return entity.Coordinate{Row: row, Col: col}, nil
}

// ParseDrop - reads a column letter with an optional 1-based row, e.g. "d"
// or "d1".
func ParseDrop(input string) (Request, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return Request{}, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	letter := input[0]
	if letter < 'a' || letter > 'z' {
		return Request{}, fmt.Errorf("%w: column %q", ErrMalformedInput, input[:1])
	}

	request := Request{Column: int(letter - 'a')}

	if rest := input[1:]; rest != "" {
		row, err := strconv.Atoi(rest)
		if err != nil || row < 1 {
			return Request{}, fmt.Errorf("%w: row %q", ErrMalformedInput, rest)
		}

		request.HasRow = true
		request.Cell = entity.Coordinate{Row: row - 1, Col: request.Column}
	}

	return request, nil
}
