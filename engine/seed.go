package engine

import (
	"math/rand"

	"github.com/sheikhrachel/go-life/model"
)

// Seeder stamps random life and well-known patterns onto grids
type Seeder struct {
	rng *rand.Rand
}

// NewSeeder returns a seeder with a deterministic source for the given seed
func NewSeeder(seed int64) *Seeder {
	return &Seeder{rng: rand.New(rand.NewSource(seed))}
}

// Randomize sets each cell alive with probability density
func (s *Seeder) Randomize(g *CellGrid, density float64) {
	for row := range g.Height() {
		for column := range g.Width() {
			if s.rng.Float64() < density {
				g.Set(row, column, model.Alive)
			}
		}
	}
}

// InjectRandomLife toggles up to count random dead cells of game alive,
// going through Game.Toggle so observers see each change.
func (s *Seeder) InjectRandomLife(game *Game, count int) {
	width, height := game.Width(), game.Height()
	if width == 0 || height == 0 {
		return
	}
	for range count {
		row, column := s.rng.Intn(height), s.rng.Intn(width)
		if game.StateAt(row, column) == model.Dead {
			game.Toggle(row, column)
		}
	}
}

var glider = [][]model.CellState{
	{model.Dead, model.Alive, model.Dead},
	{model.Dead, model.Dead, model.Alive},
	{model.Alive, model.Alive, model.Alive},
}

// AddGlider adds a glider pattern with its top-left corner at (row, column)
func AddGlider(g *CellGrid, row, column int) {
	Stamp(g, model.GridOf(glider), row, column)
}

// AddBlinker adds a horizontal blinker oscillator starting at (row, column)
func AddBlinker(g *CellGrid, row, column int) {
	Stamp(g, model.GridOf([][]model.CellState{{model.Alive, model.Alive, model.Alive}}), row, column)
}

// Stamp copies pattern onto g with its top-left corner at (row, column).
// Cells falling outside g are dropped.
func Stamp(g, pattern *CellGrid, row, column int) {
	for r := range pattern.Height() {
		for c := range pattern.Width() {
			if g.InBounds(row+r, column+c) {
				g.Set(row+r, column+c, pattern.Get(r, c))
			}
		}
	}
}

// ResetWithInterestingPatterns clears g, adds gliders and blinkers when
// there is room, then sprinkles random life at density.
func (s *Seeder) ResetWithInterestingPatterns(g *CellGrid, density float64) {
	g.Fill(model.Dead)

	width, height := g.Width(), g.Height()
	if width >= 10 && height >= 10 {
		AddGlider(g, 5, 5)
		if width >= 20 && height >= 15 {
			AddGlider(g, 5, width-8)
		}

		AddBlinker(g, height/4, width/4)
		if width >= 30 {
			AddBlinker(g, 3*height/4, 3*width/4)
		}
	}

	s.Randomize(g, density)
}
