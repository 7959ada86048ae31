package engine

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rle"
)

// EventKind identifies the mutation an Event reports
type EventKind int

const (
	EventStepped EventKind = iota
	EventToggled
	EventMoved
	EventReplaced
)

func (k EventKind) String() string {
	switch k {
	case EventStepped:
		return "stepped"
	case EventToggled:
		return "toggled"
	case EventMoved:
		return "moved"
	case EventReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Event is delivered to observers after a mutation has been committed
type Event struct {
	Kind       EventKind
	Generation int
	Stuck      bool
}

// Observer is notified of committed mutations. It is called without any
// Game lock held, so it may read the game.
type Observer func(Event)

// Game owns the current generation and is the entry point presentation code
// uses to read cells, edit them, step and load or save patterns.
//
// One writer at a time: mutations take an exclusive lock and publish a fully
// built grid, so readers only ever see complete generations.
type Game struct {
	mu         sync.RWMutex
	grid       *CellGrid
	stepper    Stepper
	generation int
	stuck      bool

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int

	metrics *Metrics
	logger  *slog.Logger
}

// Option configures a Game
type Option func(*Game)

// WithAdjacency sets the neighbor policy used when stepping
func WithAdjacency(mode model.Adjacency) Option {
	return func(g *Game) { g.stepper.Mode = mode }
}

// WithWorkers sets how many row bands are stepped concurrently
func WithWorkers(n int) Option {
	return func(g *Game) { g.stepper.Workers = n }
}

// WithPool recycles replaced generations through pool
func WithPool(pool *model.GridPool[model.CellState]) Option {
	return func(g *Game) { g.stepper.Pool = pool }
}

// WithMetrics reports steps, mutations and loads to m
func WithMetrics(m *Metrics) Option {
	return func(g *Game) { g.metrics = m }
}

// WithLogger sets the logger; the default is slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// NewGame takes a copy of grid as the first generation
func NewGame(grid *CellGrid, opts ...Option) *Game {
	g := &Game{
		grid:      grid.Clone(),
		stepper:   Stepper{Mode: model.Cycled, Workers: 1},
		observers: make(map[int]Observer),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	g.observePopulation()
	return g
}

// NewEmptyGame starts from an all-dead width x height grid
func NewEmptyGame(width, height int, opts ...Option) *Game {
	return NewGame(model.NewGrid(width, height, model.Dead), opts...)
}

// Subscribe registers o and returns a function that removes it. The game
// holds only the callback; dropping it is the caller's concern.
func (g *Game) Subscribe(o Observer) (unsubscribe func()) {
	g.obsMu.Lock()
	defer g.obsMu.Unlock()

	id := g.nextObsID
	g.nextObsID++
	g.observers[id] = o

	var once sync.Once
	return func() {
		once.Do(func() {
			g.obsMu.Lock()
			delete(g.observers, id)
			g.obsMu.Unlock()
		})
	}
}

func (g *Game) notify(e Event) {
	g.obsMu.Lock()
	observers := make([]Observer, 0, len(g.observers))
	for _, o := range g.observers {
		observers = append(observers, o)
	}
	g.obsMu.Unlock()

	if g.metrics != nil {
		g.metrics.Mutations.WithLabelValues(e.Kind.String()).Inc()
	}
	for _, o := range observers {
		o(e)
	}
}

// Width returns the number of columns of the current generation
func (g *Game) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.grid.Width()
}

// Height returns the number of rows of the current generation
func (g *Game) Height() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.grid.Height()
}

// Mode returns the adjacency policy used when stepping
func (g *Game) Mode() model.Adjacency {
	return g.stepper.Mode
}

// Generation returns how many steps have been taken since the grid was
// created, replaced or loaded.
func (g *Game) Generation() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.generation
}

// IsStuck reports whether the last step produced an all-dead or unchanged
// generation.
func (g *Game) IsStuck() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stuck
}

// IsAlive reports whether any cell is alive
func (g *Game) IsAlive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return IsAlive(g.grid)
}

// IsDead reports whether every cell is dead
func (g *Game) IsDead() bool {
	return !g.IsAlive()
}

// Population returns the number of alive cells
func (g *Game) Population() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Population(g.grid)
}

// StateAt returns the state of one cell. It panics when out of range.
func (g *Game) StateAt(row, column int) model.CellState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.grid.Get(row, column)
}

// Snapshot returns a copy of the current generation
func (g *Game) Snapshot() *CellGrid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.grid.Clone()
}

// Toggle flips one cell
func (g *Game) Toggle(row, column int) {
	e := func() Event {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.grid.Set(row, column, g.grid.Get(row, column).Switched())
		return Event{Kind: EventToggled, Generation: g.generation, Stuck: g.stuck}
	}()

	g.observePopulation()
	g.notify(e)
}

// MoveElement moves a cell to another position, leaving a dead cell behind.
// Moving a cell onto itself changes nothing and notifies nobody.
func (g *Game) MoveElement(fromRow, fromColumn, toRow, toColumn int) {
	e := func() Event {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.grid.MoveElement(fromRow, fromColumn, toRow, toColumn, model.Dead)
		return Event{Kind: EventMoved, Generation: g.generation, Stuck: g.stuck}
	}()

	if fromRow == toRow && fromColumn == toColumn {
		return
	}
	g.observePopulation()
	g.notify(e)
}

// Step replaces the current generation with the next one and reports
// whether the game is stuck.
func (g *Game) Step() (stuck bool) {
	start := time.Now()

	g.mu.Lock()
	previous := g.grid
	next, stuck := g.stepper.Next(previous)
	g.grid = next
	g.generation++
	g.stuck = stuck
	e := Event{Kind: EventStepped, Generation: g.generation, Stuck: stuck}
	g.mu.Unlock()

	if previous != next {
		model.GridToPool(previous, g.stepper.Pool)
	}
	if g.metrics != nil {
		g.metrics.StepDuration.Observe(time.Since(start).Seconds())
		g.metrics.Generations.Inc()
		if stuck {
			g.metrics.Stuck.Set(1)
		} else {
			g.metrics.Stuck.Set(0)
		}
	}
	g.observePopulation()
	g.notify(e)
	return stuck
}

// Replace installs a copy of grid as a fresh first generation
func (g *Game) Replace(grid *CellGrid) {
	g.mu.Lock()
	previous := g.grid
	g.grid = grid.Clone()
	g.generation = 0
	g.stuck = false
	g.mu.Unlock()

	model.GridToPool(previous, g.stepper.Pool)

	g.observePopulation()
	g.notify(Event{Kind: EventReplaced})
}

// Load decodes an RLE document and replaces the grid with it. Each prepare
// func may reshape the decoded grid before it is installed. On error the
// current grid is left untouched.
func (g *Game) Load(text string, prepare ...func(*CellGrid)) error {
	doc, err := rle.DecodeDocument(text)
	return g.loaded(doc, err, prepare)
}

// LoadReader is Load for a stream
func (g *Game) LoadReader(r io.Reader, prepare ...func(*CellGrid)) error {
	doc, err := rle.DecodeReader(r)
	return g.loaded(doc, err, prepare)
}

func (g *Game) loaded(doc *rle.Document, err error, prepare []func(*CellGrid)) error {
	if err != nil {
		if g.metrics != nil {
			g.metrics.Loads.WithLabelValues("error").Inc()
		}
		g.logger.Warn("pattern load failed, keeping current grid", "error", err)
		return errors.Wrap(err, "[Game.Load] failed to decode pattern")
	}
	if g.metrics != nil {
		g.metrics.Loads.WithLabelValues("ok").Inc()
	}
	for _, fn := range prepare {
		fn(doc.Grid)
	}
	g.logger.Info("pattern loaded",
		"name", doc.Name,
		"width", doc.Grid.Width(),
		"height", doc.Grid.Height())
	g.Replace(doc.Grid)
	return nil
}

// Save encodes the current generation as RLE
func (g *Game) Save() string {
	return rle.Encode(g.Snapshot())
}

// ExtractAlive returns the bounding box of the alive cells, or an empty grid
// when everything is dead.
func (g *Game) ExtractAlive() *CellGrid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.grid.ExtractBoundingBox(model.CellState.IsAlive)
}

func (g *Game) observePopulation() {
	if g.metrics == nil {
		return
	}
	g.metrics.Population.Set(float64(g.Population()))
}
