package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type gameModel interface {
	IsSpaceEmpty(space entity.Space) (bool, error)
	OccupySpace(space entity.Space) error
	ActivePlayer() entity.Player
	AdvanceActivePlayer() entity.Player
}

// GameController applies plays to a model it does not own.
type GameController struct {
	model gameModel
}

func NewGameController(model gameModel) *GameController {
	return &GameController{
		model: model,
	}
}

// MakePlay occupies space for the active player and passes the turn on.
// It returns the player who made the play, or entity.NoPlayer when the space
// was already taken, in which case nothing changes. Out of range spaces
// come back as apperror.ErrInvalidSpace.
func (that *GameController) MakePlay(space entity.Space) (entity.Player, error) {
	empty, err := that.model.IsSpaceEmpty(space)
	if err != nil {
		return entity.NoPlayer, err
	}

	if !empty {
		return entity.NoPlayer, nil
	}

	current := that.model.ActivePlayer()

	if err = that.model.OccupySpace(space); err != nil {
		return entity.NoPlayer, fmt.Errorf("failed to occupy space: %w", err)
	}

	that.model.AdvanceActivePlayer()

	return current, nil
}
