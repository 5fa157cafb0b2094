package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/engine"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/usecase"
)

var (
	textStyle  = tcell.StyleDefault
	markStyles = map[entity.Player]tcell.Style{
		entity.PlayerX: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		entity.PlayerO: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	}
)

// Screen plays games of one variant full-screen on a terminal. Moves are
// typed the same way as on the line console; a won game shows its winning
// line in reverse video.
type Screen struct {
	logger  *slog.Logger
	manager matchManager
	variant entity.Variant
	screen  tcell.Screen

	match   *usecase.Match
	input   []rune
	message string
}

// NewScreen - screen must already be initialized; the caller finalizes it.
func NewScreen(logger *slog.Logger, manager matchManager, variant entity.Variant, screen tcell.Screen) (*Screen, error) {
	if variant.Geometry.Mode == entity.GravityDrop && variant.Geometry.Cols > maxLetterColumns {
		return nil, fmt.Errorf("%w: board has %d", ErrTooManyColumns, variant.Geometry.Cols)
	}

	return &Screen{
		logger:  logger.With("component", "screen"),
		manager: manager,
		variant: variant,
		screen:  screen,
	}, nil
}

// Run - handles key events until the player quits or ctx is done.
func (that *Screen) Run(ctx context.Context) error {
	if err := that.newGame(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		that.draw()

		switch ev := that.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			that.screen.Sync()
		case *tcell.EventKey:
			quit, err := that.handleKey(ctx, ev)
			if err != nil || quit {
				return err
			}
		}
	}
}

func (that *Screen) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyEnter:
		return that.submit(ctx)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(that.input) > 0 {
			that.input = that.input[:len(that.input)-1]
		}
	case tcell.KeyRune:
		that.input = append(that.input, ev.Rune())
	}

	return false, nil
}

// submit - applies the typed line: a move while the game runs, the
// play-again answer once it has ended.
func (that *Screen) submit(ctx context.Context) (bool, error) {
	text := strings.TrimSpace(string(that.input))
	that.input = that.input[:0]

	if that.match.State().Status.IsTerminal() {
		if strings.HasPrefix(strings.ToLower(text), "y") {
			return false, that.newGame()
		}
		return true, nil
	}

	geometry := that.variant.Geometry

	state, err := that.move(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, ErrMalformedInput):
		that.message = "Invalid entry: try again."
		return false, nil
	case errors.Is(err, apperror.ErrIllegalMove):
		that.logger.Debug("move rejected", "player", state.Turn, "error", err)
		that.message = rejection(err, geometry)
		return false, nil
	default:
		return false, err
	}

	switch state.Status {
	case entity.StatusWon:
		that.message = fmt.Sprintf("%s IS THE WINNER!!!\n%sAnother game (y/n)?", *state.Winner, that.scoreLine(ctx))
	case entity.StatusDrawn:
		that.message = fmt.Sprintf("DRAW! NOBODY WINS!\n%sAnother game (y/n)?", that.scoreLine(ctx))
	default:
		that.message = fmt.Sprintf("%s's turn.", state.Turn)
	}

	return false, nil
}

func (that *Screen) move(ctx context.Context, text string) (engine.State, error) {
	if that.variant.Geometry.Mode == entity.GravityDrop {
		request, err := ParseDrop(text)
		if err != nil {
			return that.match.State(), err
		}

		if request.HasRow {
			return that.manager.Play(ctx, that.match, request.Cell)
		}

		return that.manager.Drop(ctx, that.match, request.Column)
	}

	target, err := ParseCell(text)
	if err != nil {
		return that.match.State(), err
	}

	return that.manager.Play(ctx, that.match, target)
}

func (that *Screen) newGame() error {
	match, err := that.manager.StartMatch(that.variant)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.match = match
	that.message = fmt.Sprintf("New Game: %s goes first.", match.State().Turn)

	return nil
}

func (that *Screen) scoreLine(ctx context.Context) string {
	tally, err := that.manager.Scoreboard(ctx, that.variant.Name)
	if errors.Is(err, usecase.ErrRecordingDisabled) {
		return ""
	}
	if err != nil {
		that.logger.Error("failed to get scoreboard", "error", err)
		return ""
	}

	return fmt.Sprintf("Score after %d games: X %d, O %d, draws %d\n", tally.Games(), tally.X, tally.O, tally.Draws)
}

func (that *Screen) draw() {
	that.screen.Clear()

	var line []entity.Coordinate
	state := that.match.State()
	if state.Status == entity.StatusWon {
		line = that.match.WinningLine()
	}

	y := DrawBoard(that.screen, that.match.Board(), line) + 1

	if !state.Status.IsTerminal() {
		if that.variant.Geometry.Mode == entity.GravityDrop {
			drawText(that.screen, 0, y, textStyle, "Available positions are: "+joinPositions(that.match.Board().AvailableTargets()))
			y++
			drawText(that.screen, 0, y, textStyle, "Enter a column letter, or letter and row (e.g., a1). Esc quits.")
		} else {
			drawText(that.screen, 0, y, textStyle, "Enter row number and column number separated by a comma. Esc quits.")
		}
		y += 2
	}

	for _, text := range strings.Split(strings.TrimRight(that.message, "\n"), "\n") {
		drawText(that.screen, 0, y, textStyle, text)
		y++
	}

	prompt := "> " + string(that.input)
	drawText(that.screen, 0, y, textStyle, prompt)
	that.screen.ShowCursor(len(prompt), y)

	that.screen.Show()
}

// DrawBoard - draws the board in the RenderBoard layout at the top left of
// screen, coloring marks by player and reversing the cells of line. It
// returns the number of rows used.
func DrawBoard(screen tcell.Screen, board engine.BoardView, line []entity.Coordinate) int {
	rows := strings.Split(strings.TrimSuffix(RenderBoard(board), "\n"), "\n")
	for y, text := range rows {
		drawText(screen, 0, y, textStyle, text)
	}

	highlighted := make(map[entity.Coordinate]bool, len(line))
	for _, c := range line {
		highlighted[c] = true
	}

	geometry := board.Geometry()
	for row := 0; row < geometry.Rows; row++ {
		for col := 0; col < geometry.Cols; col++ {
			c := entity.Coordinate{Row: row, Col: col}
			cell, err := board.CellAt(c)
			if err != nil {
				continue
			}

			owner, ok := cell.Owner()
			if !ok {
				continue
			}

			style := markStyles[owner]
			if highlighted[c] {
				style = style.Reverse(true)
			}

			x, y := cellPosition(geometry, c)
			screen.SetContent(x, y, []rune(owner.String())[0], nil, style)
		}
	}

	return len(rows)
}

// cellPosition - where RenderBoard puts the mark of c.
func cellPosition(geometry entity.Geometry, c entity.Coordinate) (int, int) {
	label := strconv.Itoa(c.Row)
	y := 3 + 2*c.Row
	if geometry.Mode == entity.GravityDrop {
		label = strconv.Itoa(c.Row + 1)
		y = 2 * (geometry.Rows - 1 - c.Row)
	}

	return len("| "+label+" |") + 1 + 4*c.Col, y
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
