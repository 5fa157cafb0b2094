package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/engine"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/usecase"
)

var (
	ErrInputClosed    = errors.New("input closed")
	ErrTooManyColumns = fmt.Errorf("%w: console names at most %d columns", apperror.ErrInvalidGeometry, maxLetterColumns)
)

type matchManager interface {
	StartMatch(variant entity.Variant) (*usecase.Match, error)
	Play(ctx context.Context, match *usecase.Match, target entity.Coordinate) (engine.State, error)
	Drop(ctx context.Context, match *usecase.Match, col int) (engine.State, error)
	Scoreboard(ctx context.Context, variant string) (entity.Tally, error)
}

// Console plays games of one variant over a line-based reader and writer.
type Console struct {
	logger  *slog.Logger
	manager matchManager
	variant entity.Variant

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, manager matchManager, variant entity.Variant, in io.Reader, out io.Writer) (*Console, error) {
	if variant.Geometry.Mode == entity.GravityDrop && variant.Geometry.Cols > maxLetterColumns {
		return nil, fmt.Errorf("%w: board has %d", ErrTooManyColumns, variant.Geometry.Cols)
	}

	return &Console{
		logger:  logger.With("component", "console"),
		manager: manager,
		variant: variant,
		in:      bufio.NewScanner(in),
		out:     out,
	}, nil
}

// Run - plays games until the player declines another one or input ends.
func (that *Console) Run(ctx context.Context) error {
	defer that.printf("Thanks for playing!\n")

	for {
		if err := that.playGame(ctx); err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}

		that.printScore(ctx)

		answer, err := that.prompt("Another game (y/n)? ")
		if err != nil {
			return nil
		}

		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			return nil
		}
	}
}

func (that *Console) playGame(ctx context.Context) error {
	match, err := that.manager.StartMatch(that.variant)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.printf("\nNew Game: %s goes first.\n\n", match.State().Turn)

	for {
		if err = ctx.Err(); err != nil {
			return err
		}

		state, err := that.takeTurn(ctx, match)
		if err != nil {
			return err
		}

		that.printf("Thank you for your selection.\n")
		that.printf("%s\n", RenderBoard(match.Board()))

		switch state.Status {
		case entity.StatusWon:
			that.printf("%s IS THE WINNER!!!\n", *state.Winner)
			if match.Variant.Geometry.Mode == entity.GravityDrop {
				that.printf("Winning line: %s\n", joinPositions(match.WinningLine()))
			}
			return nil
		case entity.StatusDrawn:
			that.printf("DRAW! NOBODY WINS!\n")
			return nil
		}
	}
}

// takeTurn - asks the current player for a move until one is accepted.
func (that *Console) takeTurn(ctx context.Context, match *usecase.Match) (engine.State, error) {
	player := match.State().Turn
	geometry := match.Variant.Geometry

	for {
		that.printf("%s's turn.\n", player)
		that.printf("Where do you want your %s placed?\n", player)

		var (
			state engine.State
			err   error
		)

		if geometry.Mode == entity.GravityDrop {
			state, err = that.askDrop(ctx, match)
		} else {
			state, err = that.askCell(ctx, match)
		}

		switch {
		case err == nil:
			return state, nil
		case errors.Is(err, ErrMalformedInput):
			that.printf("Invalid entry: try again.\n\n")
		case errors.Is(err, apperror.ErrIllegalMove):
			that.logger.Debug("move rejected", "player", player, "error", err)
			that.printf("%s\n", rejection(err, geometry))
		default:
			return state, err
		}
	}
}

func (that *Console) askCell(ctx context.Context, match *usecase.Match) (engine.State, error) {
	input, err := that.prompt("Please enter row number and column number separated by a comma.\n")
	if err != nil {
		return engine.State{}, err
	}

	target, err := ParseCell(input)
	if err != nil {
		return engine.State{}, err
	}

	that.printf("You have entered row #%d\n", target.Row)
	that.printf("          and column #%d\n", target.Col)

	return that.manager.Play(ctx, match, target)
}

func (that *Console) askDrop(ctx context.Context, match *usecase.Match) (engine.State, error) {
	that.printf("Available positions are: %s\n\n", joinPositions(match.Board().AvailableTargets()))

	input, err := that.prompt("Please enter column-letter and row-number (e.g., a1): ")
	if err != nil {
		return engine.State{}, err
	}

	request, err := ParseDrop(input)
	if err != nil {
		return engine.State{}, err
	}

	if request.HasRow {
		return that.manager.Play(ctx, match, request.Cell)
	}

	return that.manager.Drop(ctx, match, request.Column)
}

func (that *Console) printScore(ctx context.Context) {
	tally, err := that.manager.Scoreboard(ctx, that.variant.Name)
	if errors.Is(err, usecase.ErrRecordingDisabled) {
		return
	}
	if err != nil {
		that.logger.Error("failed to get scoreboard", "error", err)
		return
	}

	that.printf("Score after %d games: X %d, O %d, draws %d\n", tally.Games(), tally.X, tally.O, tally.Draws)
}

func (that *Console) prompt(text string) (string, error) {
	that.printf("%s", text)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}

	return that.in.Text(), nil
}

func (that *Console) printf(format string, args ...any) {
	fmt.Fprintf(that.out, format, args...)
}

func rejection(err error, geometry entity.Geometry) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is already taken.\nPlease make another selection.\n"
	case errors.Is(err, apperror.ErrColumnFull):
		return "That column is full.\nPlease make another selection.\n"
	case errors.Is(err, apperror.ErrNotLandingRow):
		return "Invalid entry: try again.\nThat position is not available.\n"
	case geometry.Mode == entity.GravityDrop:
		return fmt.Sprintf("Invalid entry: try again.\nColumns run from a to %s.\n", columnLetter(geometry.Cols-1))
	default:
		return fmt.Sprintf("Invalid entry: try again.\nRow numbers run from 0 to %d and column numbers from 0 to %d.\n",
			geometry.Rows-1, geometry.Cols-1)
	}
}

func joinPositions(cells []entity.Coordinate) string {
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = PositionName(c)
	}

	return strings.Join(names, ", ")
}
