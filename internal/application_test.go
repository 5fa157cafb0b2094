package application

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoTerminal = errors.New("no terminal")

// escapeScreen is a simulation screen whose player presses Esc right away.
type escapeScreen struct {
	tcell.SimulationScreen
}

func (s escapeScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.SetSize(80, 30)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	return nil
}

func useScreen(t *testing.T, open func() (tcell.Screen, error)) {
	t.Helper()

	previous := newScreen
	newScreen = open
	t.Cleanup(func() { newScreen = previous })
}

func TestRunApp(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Plays a game from input to exit", func(t *testing.T) {
		// Given: a tic-tac-toe config without recording
		conf := &config.Config{Variant: "tictactoe"}
		input := "1,1\n0,0\n0,2\n2,0\n1,0\n1,2\n2,1\n0,1\n2,2\nn\n"
		var out bytes.Buffer

		// When: the app runs the scripted input
		err := RunApp(logger, conf, strings.NewReader(input), &out)

		// Then: the game ends and the app exits cleanly
		require.NoError(t, err)
		assert.Contains(t, out.String(), "New Game: X goes first.")
		assert.Contains(t, out.String(), "Thanks for playing!")
	})

	t.Run("Invalid geometry stops the app", func(t *testing.T) {
		conf := &config.Config{
			Variant:  "connectfour",
			Geometry: config.Geometry{Rows: 2, Cols: 2, WinLength: 9},
		}

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		assert.ErrorIs(t, err, apperror.ErrInvalidGeometry)
	})

	t.Run("Recording without a redis host", func(t *testing.T) {
		conf := &config.Config{Variant: "tictactoe", Redis: config.Redis{Enabled: true}}

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		assert.ErrorIs(t, err, ErrAddrNotFound)
	})
	t.Run("Screen ui runs until Esc", func(t *testing.T) {
		// Given: a connect four config on the screen front end
		useScreen(t, func() (tcell.Screen, error) {
			return escapeScreen{tcell.NewSimulationScreen("")}, nil
		})
		conf := &config.Config{Variant: "connectfour", UI: config.UIScreen}
		var out bytes.Buffer

		// When: the app runs
		err := RunApp(logger, conf, strings.NewReader(""), &out)

		// Then: it exits cleanly without touching the line output
		require.NoError(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("Screen ui without a terminal", func(t *testing.T) {
		useScreen(t, func() (tcell.Screen, error) {
			return nil, errNoTerminal
		})
		conf := &config.Config{Variant: "tictactoe", UI: config.UIScreen}

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		assert.ErrorIs(t, err, errNoTerminal)
	})

	t.Run("Unknown ui", func(t *testing.T) {
		conf := &config.Config{Variant: "tictactoe", UI: "gui"}

		err := RunApp(logger, conf, strings.NewReader(""), io.Discard)

		assert.ErrorIs(t, err, ErrUnknownUI)
	})
}
