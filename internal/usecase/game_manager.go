package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *tictactoe.Session) error
	GetByID(ctx context.Context, id string) (*tictactoe.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameSettings describes every game the manager creates.
type GameSettings struct {
	BoardSize int
	TurnOrder []entity.Player
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize: entity.DefaultBoardSize,
		TurnOrder: entity.DefaultTurnOrder(),
	}
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	settings GameSettings
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, settings GameSettings) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		settings: settings,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*tictactoe.Session, error) {
	log := that.logger.With("method", "CreateGame")

	game, err := tictactoe.NewSession(uuid.NewString(), that.settings.BoardSize, that.settings.TurnOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	log.Info("game created", "gameID", game.ID, "size", game.Size(), "turnOrder", game.TurnOrder())

	return game, nil
}

// MakePlay returns the player who occupied space, or entity.NoPlayer if it was taken already.
func (that *GameManager) MakePlay(ctx context.Context, gameID string, space entity.Space) (entity.Player, error) {
	log := that.logger.With("method", "MakePlay", "gameID", gameID, "space", space.String())

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return entity.NoPlayer, err
	}

	player, err := game.MakePlay(space)
	if errors.Is(err, apperror.ErrInvalidSpace) {
		log.Warn("play outside the board", "error", err)
		return entity.NoPlayer, err
	}

	if err != nil {
		log.Error("failed to make play", "error", err)
		return entity.NoPlayer, fmt.Errorf("failed to make play: %w", err)
	}

	if player.IsNone() {
		log.Debug("space already occupied")
		return entity.NoPlayer, nil
	}

	log.Debug("play made", "player", int(player), "next", int(game.ActivePlayer()))

	return player, nil
}

func (that *GameManager) ActivePlayer(ctx context.Context, gameID string) (entity.Player, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return entity.NoPlayer, err
	}

	return game.ActivePlayer(), nil
}

// ChangeActivePlayer hands the turn to player, skipping normal rotation.
func (that *GameManager) ChangeActivePlayer(ctx context.Context, gameID string, player entity.Player) (entity.Player, error) {
	log := that.logger.With("method", "ChangeActivePlayer", "gameID", gameID)

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return entity.NoPlayer, err
	}

	active, err := game.ChangeActivePlayer(player)
	if err != nil {
		log.Warn("turn change rejected", "player", int(player), "error", err)
		return active, fmt.Errorf("failed to change active player: %w", err)
	}

	log.Info("turn handed over", "player", int(active))

	return active, nil
}

func (that *GameManager) Board(ctx context.Context, gameID string) ([][]entity.Player, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game.Board(), nil
}

func (that *GameManager) EndGame(ctx context.Context, gameID string) error {
	log := that.logger.With("method", "EndGame", "gameID", gameID)

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	log.Info("game deleted")

	return nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*tictactoe.Session, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}
