package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool[T comparable](grid *Grid[T], pool *GridPool[T]) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool for memory efficiency
type GridPool[T comparable] struct {
	pool sync.Pool
}

func NewGridPool[T comparable]() *GridPool[T] {
	return &GridPool[T]{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid[T]{}
			},
		},
	}
}

// Get retrieves a grid from the pool, resetting its dimensions and filling it
func (p *GridPool[T]) Get(width, height int, fill T) *Grid[T] {
	g := p.pool.Get().(*Grid[T])
	g.Reset(width, height, fill)
	return g
}

// Put returns a grid to the pool. The caller must not use it afterwards.
func (p *GridPool[T]) Put(g *Grid[T]) {
	p.pool.Put(g)
}
