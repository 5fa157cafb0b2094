package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/inarow/internal/engine"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

var ErrRecordingDisabled = errors.New("result recording is disabled")

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
	Tally(ctx context.Context, variant string) (entity.Tally, error)
}

// Match is one game of a variant with an ID for logs and stored results.
type Match struct {
	ID      string
	Variant entity.Variant

	session *engine.Session
}

func (that *Match) Board() engine.BoardView {
	return that.session.Board()
}

func (that *Match) State() engine.State {
	return that.session.State()
}

func (that *Match) WinningLine() []entity.Coordinate {
	return that.session.WinningLine()
}

func (that *Match) moves() int {
	return that.Variant.Geometry.Cells() - that.session.State().Remaining
}

type MatchManager struct {
	logger *slog.Logger

	resultRepo resultRepo
	now        func() time.Time
}

// NewMatchManager - builds a manager. A nil repo turns result recording off.
func NewMatchManager(logger *slog.Logger, repo resultRepo) *MatchManager {
	return &MatchManager{
		logger:     logger.With("component", "match"),
		resultRepo: repo,
		now:        time.Now,
	}
}

func (that *MatchManager) StartMatch(variant entity.Variant) (*Match, error) {
	session, err := engine.NewSession(variant.Geometry)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s match: %w", variant.Name, err)
	}

	match := &Match{
		ID:      uuid.NewString(),
		Variant: variant,
		session: session,
	}

	that.logger.Debug("match started", "matchID", match.ID, "variant", variant.Name)

	return match, nil
}

// Play - plays a cell for the player whose turn it is.
func (that *MatchManager) Play(ctx context.Context, match *Match, target entity.Coordinate) (engine.State, error) {
	state, err := match.session.Play(target)
	if err != nil {
		return state, fmt.Errorf("failed to make turn: %w", err)
	}

	that.afterTurn(ctx, match, state)

	return state, nil
}

// Drop - drops a piece into col for the player whose turn it is.
func (that *MatchManager) Drop(ctx context.Context, match *Match, col int) (engine.State, error) {
	state, err := match.session.Drop(col)
	if err != nil {
		return state, fmt.Errorf("failed to make turn: %w", err)
	}

	that.afterTurn(ctx, match, state)

	return state, nil
}

func (that *MatchManager) Scoreboard(ctx context.Context, variant string) (entity.Tally, error) {
	if that.resultRepo == nil {
		return entity.Tally{}, ErrRecordingDisabled
	}

	tally, err := that.resultRepo.Tally(ctx, variant)
	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	return tally, nil
}

func (that *MatchManager) afterTurn(ctx context.Context, match *Match, state engine.State) {
	log := that.logger.With("method", "afterTurn", "matchID", match.ID)

	if state.LastMove != nil {
		log.Debug("turn made", "player", state.LastMove.Player, "position", state.LastMove.Position)
	}

	if !state.Status.IsTerminal() {
		return
	}

	log.Info("match finished", "status", state.Status, "moves", match.moves())

	that.recordResult(ctx, match, state)
}

// recordResult - stores the finished match. Storage errors are only logged so
// a broken store never ends a game.
func (that *MatchManager) recordResult(ctx context.Context, match *Match, state engine.State) {
	if that.resultRepo == nil {
		return
	}

	log := that.logger.With("method", "recordResult", "matchID", match.ID)

	result := &entity.Result{
		ID:         match.ID,
		Variant:    match.Variant.Name,
		Status:     state.Status,
		Winner:     state.Winner,
		Moves:      match.moves(),
		FinishedAt: that.now().UTC(),
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "error", err)
	}
}
