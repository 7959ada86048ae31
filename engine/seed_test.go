package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sheikhrachel/go-life/model"
)

func TestRandomizeIsDeterministic(t *testing.T) {
	g1 := model.NewGrid(20, 20, d)
	g2 := model.NewGrid(20, 20, d)
	NewSeeder(1).Randomize(g1, 0.5)
	NewSeeder(1).Randomize(g2, 0.5)
	assert.True(t, g1.Equal(g2))
	assert.Positive(t, Population(g1))
}

func TestRandomizeDensityBounds(t *testing.T) {
	g := model.NewGrid(10, 10, d)
	NewSeeder(3).Randomize(g, 0)
	assert.True(t, IsDead(g))

	NewSeeder(3).Randomize(g, 1)
	assert.Equal(t, 100, Population(g))
}

func TestAddGlider(t *testing.T) {
	g := model.NewGrid(3, 3, d)
	AddGlider(g, 0, 0)
	assert.True(t, g.Equal(model.GridOf(glider)))
}

func TestStampClipsAtEdges(t *testing.T) {
	g := model.NewGrid(4, 4, d)
	AddBlinker(g, 3, 2)
	assert.Equal(t, 2, Population(g))
	assert.Equal(t, a, g.Get(3, 2))
	assert.Equal(t, a, g.Get(3, 3))
}

func TestInjectRandomLife(t *testing.T) {
	game := NewEmptyGame(10, 10)
	toggles := 0
	game.Subscribe(func(e Event) {
		if e.Kind == EventToggled {
			toggles++
		}
	})

	NewSeeder(5).InjectRandomLife(game, 4)
	assert.True(t, game.IsAlive())
	assert.LessOrEqual(t, game.Population(), 4)
	assert.Equal(t, game.Population(), toggles)

	assert.NotPanics(t, func() { NewSeeder(5).InjectRandomLife(NewEmptyGame(0, 0), 3) })
}

func TestResetWithInterestingPatterns(t *testing.T) {
	g := model.NewGrid(30, 20, a)
	NewSeeder(9).ResetWithInterestingPatterns(g, 0)
	// two gliders and two blinkers
	assert.Equal(t, 16, Population(g))
}
