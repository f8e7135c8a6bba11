package entity

import "strconv"

// Player identifies a participant by its position-independent id.
// The zero value doubles as the unoccupied cell and the no-op play result.
type Player int

const (
	NoPlayer Player = 0

	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// DefaultTurnOrder is the two-player rotation used when none is configured.
func DefaultTurnOrder() []Player {
	return []Player{PlayerOne, PlayerTwo}
}

func (that Player) IsNone() bool {
	return that == NoPlayer
}

func (that Player) String() string {
	if that.IsNone() {
		return "none"
	}

	return strconv.Itoa(int(that))
}
