package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rle"
	"github.com/sheikhrachel/go-life/utils"
)

// periodicRefresh restarts a randomly seeded game every this many generations
const periodicRefresh = 200

// initializeGame sets up the initial game state. The starting grid comes from
// the configured pattern file when there is one, otherwise it is seeded.
// pattern is the fitted pattern grid used for restarts, nil when seeded.
func initializeGame(config utils.Config, seeder *engine.Seeder, opts ...engine.Option) (
	game *engine.Game,
	pattern *engine.CellGrid,
	err error,
) {
	var grid *engine.CellGrid
	if config.PatternFile != "" {
		if grid, err = readPattern(config.PatternFile); err != nil {
			return nil, nil, err
		}
		fitToBoard(grid, config.Width, config.Height)
		pattern = grid.Clone()
	} else {
		grid = model.NewGrid(config.Width, config.Height, model.Dead)
		seeder.ResetWithInterestingPatterns(grid, config.RandomDensity)
	}

	return engine.NewGame(grid, opts...), pattern, nil
}

// readPattern decodes the RLE file at path
func readPattern(path string) (*engine.CellGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[readPattern] failed to open pattern: %+v", path)
	}
	defer f.Close()

	doc, err := rle.DecodeReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[readPattern] failed to decode pattern: %+v", path)
	}
	return doc.Grid, nil
}

// fitToBoard pads grid with dead cells so the pattern sits centered on a
// width x height board. Patterns larger than the board keep their size.
func fitToBoard(grid *engine.CellGrid, width, height int) {
	padRows := max(0, height-grid.Height())
	padColumns := max(0, width-grid.Width())
	grid.InsetBy(-(padRows / 2), -(padColumns / 2), model.Dead)
	if padRows%2 == 1 {
		grid.AppendRow(slices.Repeat([]model.CellState{model.Dead}, grid.Width()))
	}
	if padColumns%2 == 1 {
		grid.AppendColumn(slices.Repeat([]model.CellState{model.Dead}, grid.Height()))
	}
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, game *engine.Game) {
	fmt.Fprintf(out, "Features: Memory Pool: %v, Parallel: %v, Adjacency: %s\n",
		config.UseMemoryPool, config.UseParallel, game.Mode())
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		game.Width(), game.Height(), game.Population())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// gameView redraws the board whenever the game notifies a change. Stats are
// shared with the run loop, so both sides go through mu.
type gameView struct {
	mu       sync.Mutex
	out      io.Writer
	game     *engine.Game
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	status   string

	lastRestartGen int
}

func newGameView(out io.Writer, game *engine.Game) *gameView {
	return &gameView{
		out:      out,
		game:     game,
		renderer: model.NewTerminalRenderer(out),
		stats:    utils.NewStats(),
		status:   "Active",
	}
}

// onEvent is subscribed to the game
func (v *gameView) onEvent(e engine.Event) {
	if e.Kind == engine.EventToggled || e.Kind == engine.EventMoved {
		return
	}
	snapshot := v.game.Snapshot()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer.Clear()
	displayGameStatus(v.out, snapshot, v.status, v.stats, v.lastRestartGen)
	v.renderer.Display(snapshot)
}

// recordStep updates stats after a generation and returns the total number
// of generations played across restarts
func (v *gameView) recordStep(livingCells int, status string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats.Update(livingCells)
	v.status = status
	return v.stats.TotalGenerations
}

func (v *gameView) recordRestart() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats.Restarts++
	v.lastRestartGen = v.stats.TotalGenerations
	v.status = "Active"
}

func (v *gameView) summary() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats.Summary()
}

// displayGameStatus shows the current game status
func displayGameStatus(
	out io.Writer,
	grid *engine.CellGrid,
	status string,
	stats *utils.Stats,
	lastRestartGen int,
) {
	livingCells := engine.Population(grid)
	density := 0.0
	if grid.Len() > 0 {
		density = float64(livingCells) / float64(grid.Len()) * 100
	}

	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		stats.TotalGenerations, livingCells, density, status)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())

	if stats.TotalGenerations > lastRestartGen {
		fmt.Fprintf(out, "Generations since restart: %d\n", stats.TotalGenerations-lastRestartGen)
	}
	fmt.Fprintln(out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if config.PatternFile == "" && generation > 0 && generation%periodicRefresh == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// gameLoop holds the per-run state consulted after every generation. mu
// serializes the driver's afterStep with pattern reloads from the watcher.
type gameLoop struct {
	mu      sync.Mutex
	game    *engine.Game
	config  utils.Config
	seeder  *engine.Seeder
	history *engine.History
	view    *gameView
	pattern *engine.CellGrid
	logger  *slog.Logger

	stagnantCount int
}

// afterStep tracks stagnation, restarts or injects life as configured, and
// always lets the driver continue.
func (l *gameLoop) afterStep(stuck bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := l.game.Snapshot()
	livingCells := engine.Population(snapshot)

	isStagnant := stuck || l.history.Repeats(snapshot)
	l.history.Push(snapshot)
	if isStagnant {
		l.stagnantCount++
	} else {
		l.stagnantCount = 0
	}

	status := "Active"
	if isStagnant {
		status = fmt.Sprintf("Stagnant (%d)", l.stagnantCount)
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	generation := l.view.recordStep(livingCells, status)

	shouldRestart, restartReason := checkRestartConditions(livingCells, l.stagnantCount, generation, l.config)
	switch {
	case shouldRestart && l.config.AutoRestart:
		l.logger.Info("restarting", "reason", restartReason, "generation", generation)
		l.restartGame()
	case l.stagnantCount >= 2 && l.stagnantCount < l.config.StagnationThreshold:
		// Inject some life to try to break the stagnation
		l.seeder.InjectRandomLife(l.game, l.config.InjectionCount)
	}
	return true
}

// restartGame reloads the pattern, or reseeds a random board. Callers hold mu.
func (l *gameLoop) restartGame() {
	var grid *engine.CellGrid
	if l.pattern != nil {
		grid = l.pattern
	} else {
		grid = model.NewGrid(l.config.Width, l.config.Height, model.Dead)
		l.seeder.ResetWithInterestingPatterns(grid, l.config.RandomDensity)
	}

	l.stagnantCount = 0
	l.history.Clear()
	l.view.recordRestart()
	l.game.Replace(grid)
}

// reload is the file watcher handler. The new pattern is fitted to the board
// and becomes the one restarts go back to. A file that fails to decode leaves
// the board and the restart pattern as they were.
func (l *gameLoop) reload(path string) {
	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("failed to open watched pattern", "path", path, "error", err)
		return
	}
	defer f.Close()

	l.mu.Lock()
	defer l.mu.Unlock()
	err = l.game.LoadReader(f, func(grid *engine.CellGrid) {
		fitToBoard(grid, l.config.Width, l.config.Height)
		l.pattern = grid.Clone()
	})
	if err != nil {
		return
	}
	l.stagnantCount = 0
	l.history.Clear()
}
