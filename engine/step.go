// Package engine steps Conway's Game of Life over a model.Grid and exposes
// the Game type that presentation code drives and observes.
package engine

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
)

// CellGrid is the grid type the engine works on
type CellGrid = model.Grid[model.CellState]

// Stepper computes successive generations
type Stepper struct {
	// Mode resolves neighbors past the edges.
	Mode model.Adjacency
	// Workers is the number of row bands computed concurrently. Zero uses
	// runtime.NumCPU, one computes sequentially.
	Workers int
	// Pool, when set, supplies the grids new generations are written into.
	Pool *model.GridPool[model.CellState]
}

// Step computes the next generation sequentially
func Step(g *CellGrid, mode model.Adjacency) (next *CellGrid, stuck bool) {
	s := Stepper{Mode: mode, Workers: 1}
	return s.Next(g)
}

// Next builds the next generation of g into a new grid. Every cell is
// decided from g alone, so g is never observed half-updated. stuck is true
// when the new generation is all dead or identical to g. An empty grid is
// returned unchanged and stuck.
func (s *Stepper) Next(g *CellGrid) (next *CellGrid, stuck bool) {
	if g.IsEmpty() {
		return g, true
	}

	if s.Pool != nil {
		next = s.Pool.Get(g.Width(), g.Height(), model.Dead)
	} else {
		next = model.NewGrid(g.Width(), g.Height(), model.Dead)
	}

	numWorkers := s.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, g.Height())

	if numWorkers == 1 {
		s.stepRows(g, next, 0, g.Height())
	} else {
		var (
			eg            errgroup.Group
			rowsPerWorker = (g.Height() + numWorkers - 1) / numWorkers // Ceiling division
		)
		for i := range numWorkers {
			var (
				startRow = i * rowsPerWorker
				endRow   = min(startRow+rowsPerWorker, g.Height())
			)
			if startRow >= g.Height() {
				break
			}

			eg.Go(func() error {
				s.stepRows(g, next, startRow, endRow)
				return nil
			})
		}
		_ = eg.Wait()
	}

	return next, IsDead(next) || next.Equal(g)
}

// stepRows writes rows [startRow, endRow) of next. Bands never overlap so
// concurrent calls write disjoint cells.
func (s *Stepper) stepRows(g, next *CellGrid, startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for column := range g.Width() {
			cell := g.Get(row, column)
			if cell.ShouldSwitch(CountAliveNeighbors(g, row, column, s.Mode)) {
				cell = cell.Switched()
			}
			next.Set(row, column, cell)
		}
	}
}

// CountAliveNeighbors counts alive cells in the Moore neighborhood of
// (row, column). In bounded mode positions outside the grid are skipped.
func CountAliveNeighbors(g *CellGrid, row, column int, mode model.Adjacency) (count int) {
	for dRow := -1; dRow <= 1; dRow++ {
		for dColumn := -1; dColumn <= 1; dColumn++ {
			if dRow == 0 && dColumn == 0 {
				continue
			}
			if cell, ok := g.At(row+dRow, column+dColumn, mode); ok && cell == model.Alive {
				count++
			}
		}
	}
	return
}

// IsAlive reports whether any cell of g is alive
func IsAlive(g *CellGrid) bool {
	return g.Contains(model.Alive)
}

// IsDead reports whether every cell of g is dead
func IsDead(g *CellGrid) bool {
	return !IsAlive(g)
}

// Population returns the number of alive cells
func Population(g *CellGrid) int {
	return g.Count(model.CellState.IsAlive)
}
