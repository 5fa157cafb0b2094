package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockResultRepo struct {
	mock.Mock
}

func (m *mockResultRepo) Save(ctx context.Context, result *entity.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *mockResultRepo) Tally(ctx context.Context, variant string) (entity.Tally, error) {
	args := m.Called(ctx, variant)
	return args.Get(0).(entity.Tally), args.Error(1)
}

func newTestManager(t *testing.T, repo resultRepo) *MatchManager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := NewMatchManager(logger, repo)
	manager.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}

	return manager
}

func TestMatchManager_StartMatch(t *testing.T) {
	t.Run("Gives each match its own ID", func(t *testing.T) {
		manager := newTestManager(t, nil)

		first, err := manager.StartMatch(entity.TicTacToe)
		require.NoError(t, err)
		second, err := manager.StartMatch(entity.TicTacToe)
		require.NoError(t, err)

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, entity.StatusInProgress, first.State().Status)
	})

	t.Run("Invalid custom geometry", func(t *testing.T) {
		manager := newTestManager(t, nil)
		variant := entity.Variant{Name: "custom", Geometry: entity.Geometry{Rows: 2, Cols: 2, WinLength: 3, Mode: entity.FreeCell}}

		match, err := manager.StartMatch(variant)

		require.ErrorIs(t, err, apperror.ErrInvalidGeometry)
		assert.Nil(t, match)
	})
}

func TestMatchManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Records the winner when the game ends", func(t *testing.T) {
		// Given: a manager with a result repository
		repo := &mockResultRepo{}
		manager := newTestManager(t, repo)
		match, err := manager.StartMatch(entity.TicTacToe)
		require.NoError(t, err)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.Result) bool {
			return result.ID == match.ID &&
				result.Variant == entity.TicTacToeName &&
				result.Status == entity.StatusWon &&
				result.Winner != nil && *result.Winner == entity.PlayerX &&
				result.Moves == 5
		})).Return(nil).Once()

		// When: X completes the top row
		var state = match.State()
		for _, target := range []entity.Coordinate{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}} {
			state, err = manager.Play(ctx, match, target)
			require.NoError(t, err)
		}

		// Then: the result is saved exactly once
		assert.Equal(t, entity.StatusWon, state.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Rejected move is not recorded", func(t *testing.T) {
		repo := &mockResultRepo{}
		manager := newTestManager(t, repo)
		match, err := manager.StartMatch(entity.TicTacToe)
		require.NoError(t, err)

		_, err = manager.Play(ctx, match, entity.Coordinate{Row: 5, Col: 5})

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Storage failure does not fail the move", func(t *testing.T) {
		// Given: a repository that cannot save
		repo := &mockResultRepo{}
		repo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Result")).Return(errRedisDown).Once()
		manager := newTestManager(t, repo)
		variant := entity.Variant{Name: "strip", Geometry: entity.Geometry{Rows: 1, Cols: 2, WinLength: 2, Mode: entity.GravityDrop}}
		match, err := manager.StartMatch(variant)
		require.NoError(t, err)

		// When: the board fills up
		_, err = manager.Drop(ctx, match, 0)
		require.NoError(t, err)
		state, err := manager.Drop(ctx, match, 1)

		// Then: the draw is still reported
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDrawn, state.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Works without a repository", func(t *testing.T) {
		manager := newTestManager(t, nil)
		match, err := manager.StartMatch(entity.ConnectFour)
		require.NoError(t, err)

		var state = match.State()
		for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
			state, err = manager.Drop(ctx, match, col)
			require.NoError(t, err)
		}

		assert.Equal(t, entity.StatusWon, state.Status)
		assert.Len(t, match.WinningLine(), 4)
	})
}

func TestMatchManager_Drop(t *testing.T) {
	ctx := context.Background()

	t.Run("Records a vertical win", func(t *testing.T) {
		// Given: a connect four match with a result repository
		repo := &mockResultRepo{}
		manager := newTestManager(t, repo)
		match, err := manager.StartMatch(entity.ConnectFour)
		require.NoError(t, err)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(result *entity.Result) bool {
			return result.ID == match.ID &&
				result.Variant == entity.ConnectFourName &&
				result.Status == entity.StatusWon &&
				result.Winner != nil && *result.Winner == entity.PlayerX &&
				result.Moves == 7
		})).Return(nil).Once()

		// When: X stacks column 3 while O stacks column 4
		var state = match.State()
		for _, col := range []int{3, 4, 3, 4, 3, 4, 3} {
			state, err = manager.Drop(ctx, match, col)
			require.NoError(t, err)
		}

		// Then: X wins on column 3 and the result is saved once
		assert.Equal(t, entity.StatusWon, state.Status)
		assert.Equal(t, []entity.Coordinate{{Row: 0, Col: 3}, {Row: 1, Col: 3}, {Row: 2, Col: 3}, {Row: 3, Col: 3}}, match.WinningLine())
		repo.AssertExpectations(t)
	})

	t.Run("Full column is rejected and not recorded", func(t *testing.T) {
		// Given: a two-row gravity match with column 0 filled
		repo := &mockResultRepo{}
		manager := newTestManager(t, repo)
		variant := entity.Variant{Name: "short", Geometry: entity.Geometry{Rows: 2, Cols: 3, WinLength: 3, Mode: entity.GravityDrop}}
		match, err := manager.StartMatch(variant)
		require.NoError(t, err)
		_, err = manager.Drop(ctx, match, 0)
		require.NoError(t, err)
		before, err := manager.Drop(ctx, match, 0)
		require.NoError(t, err)

		// When: X drops into column 0 again
		after, err := manager.Drop(ctx, match, 0)

		// Then: the drop fails with a full column and nothing is saved
		require.ErrorIs(t, err, apperror.ErrColumnFull)
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, after)
		assert.Equal(t, entity.StatusInProgress, match.State().Status)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestMatchManager_Scoreboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored tally", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Tally", mock.Anything, entity.ConnectFourName).Return(entity.Tally{X: 2, O: 1, Draws: 1}, nil).Once()
		manager := newTestManager(t, repo)

		tally, err := manager.Scoreboard(ctx, entity.ConnectFourName)

		require.NoError(t, err)
		assert.Equal(t, 4, tally.Games())
		repo.AssertExpectations(t)
	})

	t.Run("Repository error is wrapped", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Tally", mock.Anything, entity.TicTacToeName).Return(entity.Tally{}, errRedisDown).Once()
		manager := newTestManager(t, repo)

		_, err := manager.Scoreboard(ctx, entity.TicTacToeName)

		assert.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Disabled without a repository", func(t *testing.T) {
		manager := newTestManager(t, nil)

		_, err := manager.Scoreboard(ctx, entity.TicTacToeName)

		assert.ErrorIs(t, err, ErrRecordingDisabled)
	})
}
