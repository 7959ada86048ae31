package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rle"
)

func TestNewEmptyGameIsDead(t *testing.T) {
	game := NewEmptyGame(2, 2)
	assert.True(t, game.IsDead())
	assert.False(t, game.IsAlive())
	assert.Equal(t, 2, game.Width())
	assert.Equal(t, 2, game.Height())
	assert.Equal(t, model.Cycled, game.Mode())
}

func TestNewGameCopiesGrid(t *testing.T) {
	g := gridWith(3, 3)
	game := NewGame(g)
	g.Set(0, 0, a)
	assert.Equal(t, d, game.StateAt(0, 0))
}

func TestToggle(t *testing.T) {
	game := NewEmptyGame(3, 3)
	game.Toggle(1, 2)
	assert.Equal(t, a, game.StateAt(1, 2))
	assert.True(t, game.IsAlive())

	game.Toggle(1, 2)
	assert.Equal(t, d, game.StateAt(1, 2))
}

func TestSnapshotIsACopy(t *testing.T) {
	game := NewEmptyGame(3, 3)
	snap := game.Snapshot()
	snap.Set(0, 0, a)
	assert.Equal(t, d, game.StateAt(0, 0))
}

func TestMoveElement(t *testing.T) {
	game := NewEmptyGame(3, 3)
	game.Toggle(0, 0)
	game.MoveElement(0, 0, 2, 1)
	assert.Equal(t, d, game.StateAt(0, 0))
	assert.Equal(t, a, game.StateAt(2, 1))
}

func TestGameStepLoneCell(t *testing.T) {
	game := NewEmptyGame(3, 3)
	game.Toggle(1, 1)

	stuck := game.Step()
	assert.True(t, stuck)
	assert.True(t, game.IsStuck())
	assert.True(t, game.IsDead())
	assert.Equal(t, 1, game.Generation())
}

func TestGameStepBlinkerNeverStuck(t *testing.T) {
	game := NewGame(gridWith(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2}))
	for range 6 {
		assert.False(t, game.Step())
	}
	assert.Equal(t, 3, game.Population())
	assert.Equal(t, 6, game.Generation())
}

func TestGameBoundedMode(t *testing.T) {
	g := gridWith(3, 3, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
	game := NewGame(g, WithAdjacency(model.Bounded), WithWorkers(2), WithPool(model.NewGridPool[model.CellState]()))
	game.Step()

	want, _ := Step(g, model.Bounded)
	assert.True(t, game.Snapshot().Equal(want))
}

func TestObserversAreNotified(t *testing.T) {
	game := NewEmptyGame(4, 4)

	var events []Event
	unsubscribe := game.Subscribe(func(e Event) {
		// observers may read the game
		_ = game.Population()
		events = append(events, e)
	})

	game.Toggle(0, 0)
	game.MoveElement(0, 0, 1, 1)
	game.MoveElement(1, 1, 1, 1)
	game.Step()
	game.Replace(gridWith(2, 2))

	require.Len(t, events, 4)
	assert.Equal(t, EventToggled, events[0].Kind)
	assert.Equal(t, EventMoved, events[1].Kind)
	assert.Equal(t, EventStepped, events[2].Kind)
	assert.Equal(t, 1, events[2].Generation)
	assert.True(t, events[2].Stuck)
	assert.Equal(t, EventReplaced, events[3].Kind)

	unsubscribe()
	unsubscribe()
	game.Toggle(0, 0)
	assert.Len(t, events, 4)
}

func TestReplaceResetsGeneration(t *testing.T) {
	game := NewEmptyGame(3, 3)
	game.Step()
	require.True(t, game.IsStuck())

	game.Replace(gridWith(5, 2, [2]int{0, 0}))
	assert.Equal(t, 0, game.Generation())
	assert.False(t, game.IsStuck())
	assert.Equal(t, 5, game.Width())
	assert.Equal(t, 2, game.Height())
}

func TestLoadAndSave(t *testing.T) {
	game := NewEmptyGame(1, 1)

	var kinds []EventKind
	game.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	require.NoError(t, game.Load("#N Glider\nx = 3, y = 3\nbob$2bo$3o!"))
	assert.Equal(t, []EventKind{EventReplaced}, kinds)
	assert.Equal(t, 3, game.Width())
	assert.Equal(t, 5, game.Population())
	assert.Equal(t, "x = 3, y = 3\nbob$2bo$3o!\n", game.Save())
}

func TestFailedLoadKeepsGrid(t *testing.T) {
	game := NewGame(gridWith(2, 2, [2]int{0, 1}))
	before := game.Snapshot()

	notified := false
	game.Subscribe(func(Event) { notified = true })

	err := game.Load("this is not a pattern")
	assert.ErrorIs(t, err, rle.ErrMalformedHeader)
	assert.True(t, game.Snapshot().Equal(before))
	assert.False(t, notified)
}

func TestOversizedLoadKeepsGrid(t *testing.T) {
	game := NewGame(gridWith(2, 2, [2]int{0, 1}))
	before := game.Snapshot()

	for _, text := range []string{
		"x = 4611686018427387904, y = 4\no!",
		"x = 3037000500, y = 3037000500\no!",
	} {
		err := game.Load(text)
		assert.ErrorIs(t, err, rle.ErrPatternTooLarge)
		assert.True(t, game.Snapshot().Equal(before))
	}
}

func TestOutOfRangeEditsDoNotLockTheGame(t *testing.T) {
	game := NewEmptyGame(3, 3)

	assert.Panics(t, func() { game.Toggle(3, 0) })
	assert.Panics(t, func() { game.MoveElement(0, 0, 0, 5) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		game.Toggle(1, 1)
		game.Step()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("game stayed locked after a panicking edit")
	}
	assert.Equal(t, 1, game.Generation())
}

func TestLoadPrepareReshapesGrid(t *testing.T) {
	game := NewEmptyGame(1, 1)

	var prepared *CellGrid
	err := game.LoadReader(strings.NewReader("x = 2, y = 1\n2o!"), func(grid *CellGrid) {
		grid.AppendRow([]model.CellState{model.Dead, model.Dead})
		prepared = grid.Clone()
	})
	require.NoError(t, err)
	assert.Equal(t, 2, game.Height())
	assert.True(t, game.Snapshot().Equal(prepared))

	called := false
	require.Error(t, game.Load("nope", func(*CellGrid) { called = true }))
	assert.False(t, called)
}

func TestLoadReader(t *testing.T) {
	game := NewEmptyGame(1, 1)
	require.NoError(t, game.LoadReader(strings.NewReader("x = 2, y = 1\n2o!")))
	assert.Equal(t, 2, game.Population())
}

func TestExtractAlive(t *testing.T) {
	game := NewGame(gridWith(3, 3, [2]int{1, 1}, [2]int{2, 2}))
	assert.True(t, game.ExtractAlive().Equal(model.GridOf([][]model.CellState{{a, d}, {d, a}})))

	game.Replace(gridWith(3, 3))
	assert.True(t, game.ExtractAlive().IsEmpty())
}

func TestGameMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	game := NewGame(gridWith(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2}), WithMetrics(m))

	game.Step()
	game.Step()
	game.Toggle(0, 0)
	_ = game.Load("garbage")
	require.NoError(t, game.Load("x = 1, y = 1\no!"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Generations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Population))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Stuck))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("stepped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mutations.WithLabelValues("toggled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
}

func TestConcurrentReadersSeeWholeGenerations(t *testing.T) {
	blinker := gridWith(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	game := NewGame(blinker, WithWorkers(3))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 200 {
			game.Step()
		}
	}()

	for range 200 {
		assert.Equal(t, 3, Population(game.Snapshot()))
	}
	wg.Wait()
}
