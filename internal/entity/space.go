package entity

import "fmt"

const DefaultBoardSize = 3

// Space is a (row, column) coordinate on the board.
type Space struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewSpace(row, col int) Space {
	return Space{Row: row, Col: col}
}

// Within reports whether both coordinates fall in [0, size).
func (that Space) Within(size int) bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}

func (that Space) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}
