package model

import "github.com/sheikhrachel/go-life/rules"

// CellState is the two-valued state of a single Life cell
type CellState uint8

const (
	Dead CellState = iota
	Alive
)

const (
	// TagDead and TagAlive are the RLE tags for the two states
	TagDead  byte = 'b'
	TagAlive byte = 'o'
)

// CellStateFromTag maps an RLE tag to a state. Anything other than 'o' is dead.
func CellStateFromTag(tag byte) CellState {
	if tag == TagAlive {
		return Alive
	}
	return Dead
}

// Switched returns the opposite state
func (c CellState) Switched() CellState {
	if c == Alive {
		return Dead
	}
	return Alive
}

// ShouldSwitch reports whether the cell flips in the next generation given
// its number of alive neighbors.
func (c CellState) ShouldSwitch(aliveNeighbors int) bool {
	return rules.ShouldSwitch(c == Alive, aliveNeighbors)
}

// IsAlive reports whether the cell is alive
func (c CellState) IsAlive() bool { return c == Alive }

// Tag returns the RLE tag for the state
func (c CellState) Tag() byte {
	if c == Alive {
		return TagAlive
	}
	return TagDead
}

// Glyph returns the terminal representation of the state
func (c CellState) Glyph() string {
	if c == Alive {
		return gridPosBlock
	}
	return gridPosEmpty
}

func (c CellState) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}
