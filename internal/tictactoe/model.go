package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// GameModel owns the board, the turn order and the active player of a single game.
// It performs no locking.
type GameModel struct {
	size      int
	board     [][]entity.Player
	turnOrder []entity.Player
	active    int
}

// NewGameModel creates an empty size x size board with the first player of turnOrder to move.
func NewGameModel(size int, turnOrder []entity.Player) (*GameModel, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	if err := validateTurnOrder(turnOrder); err != nil {
		return nil, err
	}

	board := make([][]entity.Player, size)
	for row := range board {
		board[row] = make([]entity.Player, size)
	}

	return &GameModel{
		size:      size,
		board:     board,
		turnOrder: slices.Clone(turnOrder),
	}, nil
}

// NewDefaultGameModel - 3x3 board, players 1 and 2.
func NewDefaultGameModel() *GameModel {
	model, err := NewGameModel(entity.DefaultBoardSize, entity.DefaultTurnOrder())
	if err != nil {
		panic(fmt.Errorf("default game model: %w", err))
	}

	return model
}

func validateTurnOrder(turnOrder []entity.Player) error {
	if len(turnOrder) == 0 {
		return fmt.Errorf("%w: no players", apperror.ErrInvalidTurnOrder)
	}

	seen := make(map[entity.Player]struct{}, len(turnOrder))
	for _, player := range turnOrder {
		if player.IsNone() {
			return fmt.Errorf("%w: player id %d is reserved", apperror.ErrInvalidTurnOrder, player)
		}

		if _, ok := seen[player]; ok {
			return fmt.Errorf("%w: duplicate player %d", apperror.ErrInvalidTurnOrder, player)
		}
		seen[player] = struct{}{}
	}

	return nil
}

// IsSpaceEmpty reports whether nobody has occupied the space yet.
func (that *GameModel) IsSpaceEmpty(space entity.Space) (bool, error) {
	if err := that.checkSpace(space); err != nil {
		return false, err
	}

	return that.board[space.Row][space.Col].IsNone(), nil
}

// OccupySpace marks the space with the active player. Occupied cells are never overwritten.
func (that *GameModel) OccupySpace(space entity.Space) error {
	if err := that.checkSpace(space); err != nil {
		return err
	}

	if owner := that.board[space.Row][space.Col]; !owner.IsNone() {
		return fmt.Errorf("%w: %s by player %d", apperror.ErrSpaceOccupied, space, owner)
	}

	that.board[space.Row][space.Col] = that.ActivePlayer()

	return nil
}

func (that *GameModel) ActivePlayer() entity.Player {
	return that.turnOrder[that.active]
}

// AdvanceActivePlayer moves the turn to the next player, wrapping past the end of turn order.
func (that *GameModel) AdvanceActivePlayer() entity.Player {
	that.active = (that.active + 1) % len(that.turnOrder)

	return that.ActivePlayer()
}

// ChangeActivePlayer hands the turn to player out of rotation, e.g. after a forfeit.
func (that *GameModel) ChangeActivePlayer(player entity.Player) (entity.Player, error) {
	idx := slices.Index(that.turnOrder, player)
	if idx < 0 {
		return that.ActivePlayer(), fmt.Errorf("%w: %d", apperror.ErrInvalidPlayer, player)
	}

	that.active = idx

	return that.ActivePlayer(), nil
}

// PlayerAt returns the occupant of space or entity.NoPlayer.
func (that *GameModel) PlayerAt(space entity.Space) (entity.Player, error) {
	if err := that.checkSpace(space); err != nil {
		return entity.NoPlayer, err
	}

	return that.board[space.Row][space.Col], nil
}

func (that *GameModel) Size() int {
	return that.size
}

func (that *GameModel) TurnOrder() []entity.Player {
	return slices.Clone(that.turnOrder)
}

// Board returns a copy of the grid, rows first.
func (that *GameModel) Board() [][]entity.Player {
	board := make([][]entity.Player, that.size)
	for row := range that.board {
		board[row] = slices.Clone(that.board[row])
	}

	return board
}

func (that *GameModel) checkSpace(space entity.Space) error {
	if !space.Within(that.size) {
		return fmt.Errorf("%w: %s on a %dx%d board", apperror.ErrInvalidSpace, space, that.size, that.size)
	}

	return nil
}
