package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellStateSwitched(t *testing.T) {
	assert.Equal(t, Dead, Alive.Switched())
	assert.Equal(t, Alive, Dead.Switched())
	assert.Equal(t, Alive, Alive.Switched().Switched())
}

func TestCellStateShouldSwitch(t *testing.T) {
	for n := 0; n <= 8; n++ {
		assert.Equal(t, n < 2 || n > 3, Alive.ShouldSwitch(n), "alive with %d neighbors", n)
		assert.Equal(t, n == 3, Dead.ShouldSwitch(n), "dead with %d neighbors", n)
	}
}

func TestCellStateFromTag(t *testing.T) {
	assert.Equal(t, Alive, CellStateFromTag('o'))
	assert.Equal(t, Dead, CellStateFromTag('b'))
	assert.Equal(t, Dead, CellStateFromTag('x'))
	assert.Equal(t, TagAlive, Alive.Tag())
	assert.Equal(t, TagDead, Dead.Tag())
}

func TestCellStateString(t *testing.T) {
	assert.Equal(t, "alive", Alive.String())
	assert.Equal(t, "dead", Dead.String())
	assert.True(t, Alive.IsAlive())
	assert.False(t, Dead.IsAlive())
}
