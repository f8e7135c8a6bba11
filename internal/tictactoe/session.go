package tictactoe

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// Session pairs a model with its controller and serializes every call on them,
// so several callers can share one game.
type Session struct {
	ID string

	mu         sync.Mutex
	model      *GameModel
	controller *GameController
}

func NewSession(id string, size int, turnOrder []entity.Player) (*Session, error) {
	model, err := NewGameModel(size, turnOrder)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:         id,
		model:      model,
		controller: NewGameController(model),
	}, nil
}

func (that *Session) MakePlay(space entity.Space) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.MakePlay(space)
}

func (that *Session) ActivePlayer() entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.model.ActivePlayer()
}

func (that *Session) ChangeActivePlayer(player entity.Player) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.model.ChangeActivePlayer(player)
}

func (that *Session) PlayerAt(space entity.Space) (entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.model.PlayerAt(space)
}

func (that *Session) Board() [][]entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.model.Board()
}

func (that *Session) TurnOrder() []entity.Player {
	return that.model.TurnOrder()
}

func (that *Session) Size() int {
	return that.model.Size()
}
