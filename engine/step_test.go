package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-life/model"
)

const (
	a = model.Alive
	d = model.Dead
)

func gridWith(width, height int, alive ...[2]int) *CellGrid {
	g := model.NewGrid(width, height, d)
	for _, rc := range alive {
		g.Set(rc[0], rc[1], a)
	}
	return g
}

func TestStepAllDeadIsStuck(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {7, 4}, {20, 20}} {
		for _, mode := range []model.Adjacency{model.Cycled, model.Bounded} {
			g := gridWith(size[0], size[1])
			next, stuck := Step(g, mode)
			assert.True(t, stuck)
			assert.True(t, IsDead(next))
			assert.True(t, next.Equal(g))
		}
	}
}

func TestStepEmptyGrid(t *testing.T) {
	g := &CellGrid{}
	next, stuck := Step(g, model.Cycled)
	assert.True(t, stuck)
	assert.Same(t, g, next)
	assert.True(t, IsDead(g))
}

func TestStepLoneCellDies(t *testing.T) {
	g := gridWith(3, 3, [2]int{1, 1})
	next, stuck := Step(g, model.Cycled)
	assert.True(t, stuck)
	assert.True(t, IsDead(next))
	assert.True(t, IsAlive(g), "the previous generation is not modified")
}

func TestStepBlockIsStillLife(t *testing.T) {
	g := gridWith(4, 4, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})
	for _, mode := range []model.Adjacency{model.Cycled, model.Bounded} {
		next, stuck := Step(g, mode)
		assert.True(t, stuck)
		assert.True(t, next.Equal(g))
	}
}

func TestStepBlinkerOscillates(t *testing.T) {
	vertical := gridWith(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	horizontal := gridWith(5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	next, stuck := Step(vertical, model.Cycled)
	assert.False(t, stuck)
	assert.True(t, next.Equal(horizontal))

	next, stuck = Step(next, model.Cycled)
	assert.False(t, stuck)
	assert.True(t, next.Equal(vertical))
}

func TestStepGliderWrapsOnTorus(t *testing.T) {
	g := model.NewGrid(6, 6, d)
	AddGlider(g, 0, 0)
	start := g.Clone()

	// a glider moves one cell diagonally every 4 generations
	for range 4 * 6 {
		g, _ = Step(g, model.Cycled)
	}
	assert.True(t, g.Equal(start))
}

func TestStepBoundedEdgesDoNotWrap(t *testing.T) {
	// a vertical line on the left edge of a 3-high grid
	g := gridWith(3, 3, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})

	bounded, _ := Step(g, model.Bounded)
	assert.True(t, bounded.Equal(gridWith(3, 3, [2]int{1, 0}, [2]int{1, 1})))

	cycled, _ := Step(g, model.Cycled)
	assert.False(t, cycled.Equal(bounded))
}

func TestCountAliveNeighbors(t *testing.T) {
	g := gridWith(3, 3, [2]int{0, 0}, [2]int{2, 2})
	assert.Equal(t, 2, CountAliveNeighbors(g, 1, 1, model.Cycled))
	assert.Equal(t, 2, CountAliveNeighbors(g, 1, 1, model.Bounded))

	// (0, 0) sees (2, 2) only through the wrap
	assert.Equal(t, 1, CountAliveNeighbors(g, 0, 0, model.Cycled))
	assert.Equal(t, 0, CountAliveNeighbors(g, 0, 0, model.Bounded))
}

func TestParallelStepMatchesSequential(t *testing.T) {
	g := model.NewGrid(37, 23, d)
	NewSeeder(7).Randomize(g, 0.35)

	for _, mode := range []model.Adjacency{model.Cycled, model.Bounded} {
		seq := g
		par := g
		parallel := &Stepper{Mode: mode, Workers: 4}
		for range 10 {
			seq, _ = Step(seq, mode)
			par, _ = parallel.Next(par)
			require.True(t, seq.Equal(par))
		}
	}
}

func TestStepperUsesPool(t *testing.T) {
	pool := model.NewGridPool[model.CellState]()
	s := &Stepper{Mode: model.Cycled, Workers: 0, Pool: pool}

	g := gridWith(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	next, stuck := s.Next(g)
	assert.False(t, stuck)
	assert.Equal(t, 3, Population(next))
}

func TestPopulation(t *testing.T) {
	assert.Equal(t, 0, Population(gridWith(2, 2)))
	assert.Equal(t, 2, Population(gridWith(2, 2, [2]int{0, 0}, [2]int{1, 1})))
}
