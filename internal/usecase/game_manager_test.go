package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-core/testing/suite"
)

var errRepoDown = errors.New("repository down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *tictactoe.Session) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*tictactoe.Session, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*tictactoe.Session)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return that.Called(ctx, id).Error(0)
}

func TestGameManager_CreateGame(t *testing.T) {
	t.Run("Creates and stores a game with a uuid", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a manager backed by the in-memory repository
		gameRepo := repository.NewGameRepository()
		manager := NewGameManager(st.Logger, gameRepo, DefaultGameSettings())

		// When: a game is created
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		// Then: it has a uuid id, can be found again, and the creation is logged
		_, err = uuid.Parse(game.ID)
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Same(t, game, stored)

		assert.Contains(t, st.Logs(), `"msg":"game created"`)
		assert.Contains(t, st.Logs(), game.ID)
	})

	t.Run("Rejects invalid settings", func(t *testing.T) {
		ctx, st := suite.New(t)

		settings := GameSettings{BoardSize: 0, TurnOrder: entity.DefaultTurnOrder()}
		manager := NewGameManager(st.Logger, repository.NewGameRepository(), settings)

		game, err := manager.CreateGame(ctx)

		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
		assert.Nil(t, game)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a repository that cannot save
		gameRepo := &mockGameRepo{}
		gameRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*tictactoe.Session")).
			Return(errRepoDown).
			Once()

		manager := NewGameManager(st.Logger, gameRepo, DefaultGameSettings())

		// When: a game is created
		game, err := manager.CreateGame(ctx)

		// Then: the error is wrapped and no game is returned
		require.ErrorIs(t, err, errRepoDown)
		assert.Nil(t, game)
		gameRepo.AssertExpectations(t)
	})
}

func TestGameManager_MakePlay(t *testing.T) {
	t.Run("End-to-end scenario through the manager", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		// When/Then: (0,0) goes to player 1
		player, err := manager.MakePlay(ctx, game.ID, entity.NewSpace(0, 0))
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerOne, player)

		// When/Then: (0,0) again is a no-op
		before, err := manager.Board(ctx, game.ID)
		require.NoError(t, err)

		player, err = manager.MakePlay(ctx, game.ID, entity.NewSpace(0, 0))
		require.NoError(t, err)
		assert.Equal(t, entity.NoPlayer, player)

		after, err := manager.Board(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		// When/Then: (1,1) goes to player 2
		player, err = manager.MakePlay(ctx, game.ID, entity.NewSpace(1, 1))
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerTwo, player)

		// Then: player 1 is active again
		active, err := manager.ActivePlayer(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerOne, active)
	})

	t.Run("Out of range space keeps ErrInvalidSpace and is logged", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		player, err := manager.MakePlay(ctx, game.ID, entity.NewSpace(3, 0))

		require.ErrorIs(t, err, apperror.ErrInvalidSpace)
		assert.Equal(t, entity.NoPlayer, player)
		assert.Contains(t, st.Logs(), `"msg":"play outside the board"`)
	})

	t.Run("Unknown game returns ErrGameNotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())

		_, err := manager.MakePlay(ctx, "missing", entity.NewSpace(0, 0))

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Concurrent callers share one game safely", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: one game and several callers racing for every space
		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			plays = make(map[entity.Space]entity.Player)
		)

		for range 6 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for row := range 3 {
					for col := range 3 {
						space := entity.NewSpace(row, col)

						player, err := manager.MakePlay(ctx, game.ID, space)
						if err != nil {
							t.Errorf("unexpected error: %v", err)
							return
						}

						if player.IsNone() {
							continue
						}

						mu.Lock()
						if _, ok := plays[space]; ok {
							t.Errorf("space %s won twice", space)
						}
						plays[space] = player
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		// Then: every space was won exactly once, by the player the board records
		require.Len(t, plays, 9)

		board, err := manager.Board(ctx, game.ID)
		require.NoError(t, err)

		for space, player := range plays {
			assert.Equal(t, player, board[space.Row][space.Col])
		}
	})
}

func TestGameManager_ChangeActivePlayer(t *testing.T) {
	t.Run("Hands the turn over", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		active, err := manager.ChangeActivePlayer(ctx, game.ID, entity.PlayerTwo)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerTwo, active)

		player, err := manager.MakePlay(ctx, game.ID, entity.NewSpace(2, 2))
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerTwo, player)
	})

	t.Run("Unknown player returns ErrInvalidPlayer", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		active, err := manager.ChangeActivePlayer(ctx, game.ID, 3)

		require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
		assert.Equal(t, entity.PlayerOne, active)
	})
}

func TestGameManager_EndGame(t *testing.T) {
	t.Run("Deletes the game", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, repository.NewGameRepository(), DefaultGameSettings())
		game, err := manager.CreateGame(ctx)
		require.NoError(t, err)

		require.NoError(t, manager.EndGame(ctx, game.ID))

		_, err = manager.ActivePlayer(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := &mockGameRepo{}
		gameRepo.On("DeleteByID", mock.Anything, "g1").Return(errRepoDown).Once()

		manager := NewGameManager(st.Logger, gameRepo, DefaultGameSettings())

		err := manager.EndGame(ctx, "g1")

		require.ErrorIs(t, err, errRepoDown)
		gameRepo.AssertExpectations(t)
	})
}
