package apperror

import "errors"

var (
	ErrInvalidSpace     = errors.New("space is outside the board")
	ErrInvalidPlayer    = errors.New("player is not in turn order")
	ErrSpaceOccupied    = errors.New("space is already occupied")
	ErrInvalidBoardSize = errors.New("board size must be positive")
	ErrInvalidTurnOrder = errors.New("invalid turn order")
	ErrGameNotFound     = errors.New("game not found")
)
