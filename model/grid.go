package model

import (
	"math"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Adjacency decides how out-of-range coordinates are resolved
type Adjacency uint8

const (
	// Cycled wraps coordinates around the edges (toroidal topology)
	Cycled Adjacency = iota
	// Bounded treats coordinates outside the grid as absent
	Bounded
)

// ParseAdjacency converts "cycled" or "bounded" into an Adjacency
func ParseAdjacency(s string) (Adjacency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cycled", "toroidal", "wrap":
		return Cycled, nil
	case "bounded":
		return Bounded, nil
	}
	return Cycled, errors.Wrapf(ErrUnknownAdjacency, "%q", s)
}

func (a Adjacency) String() string {
	if a == Bounded {
		return "bounded"
	}
	return "cycled"
}

// Rect is an inclusive-exclusive rectangle of cells: rows [Row, Row+Height),
// columns [Column, Column+Width).
type Rect struct {
	Row, Column   int
	Width, Height int
}

// Grid is a rectangular container of elements stored flat in row-major order.
// Rows map to height and columns map to width throughout.
//
// The zero value is an empty 0x0 grid.
type Grid[T comparable] struct {
	width  int // number of columns
	height int // number of rows
	cells  []T
}

// NewGrid creates a width x height grid with every cell set to fill
func NewGrid[T comparable](width, height int, fill T) *Grid[T] {
	if width < 0 || height < 0 || (width > 0 && height > math.MaxInt/width) {
		panic(errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height))
	}
	g := &Grid[T]{width: width, height: height, cells: make([]T, width*height)}
	g.Fill(fill)
	return g
}

// NewGridFromRows creates a width x height grid from nested rows. Missing
// rows and short rows are padded with fill, long rows are truncated to width
// and rows beyond height are ignored.
func NewGridFromRows[T comparable](rows [][]T, width, height int, fill T) *Grid[T] {
	g := NewGrid(width, height, fill)
	for i, row := range rows {
		if i >= height {
			break
		}
		copy(g.cells[i*width:(i+1)*width], row[:min(len(row), width)])
	}
	return g
}

// GridOf creates a grid whose width is the length of the first row and whose
// height is the number of rows. Shorter rows are padded with the zero value.
func GridOf[T comparable](rows [][]T) *Grid[T] {
	if len(rows) == 0 {
		return &Grid[T]{}
	}
	var zero T
	return NewGridFromRows(rows, len(rows[0]), len(rows), zero)
}

// Width returns the number of columns
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid[T]) Height() int { return g.height }

// Len returns the number of cells
func (g *Grid[T]) Len() int { return len(g.cells) }

// IsEmpty reports whether the grid has no cells
func (g *Grid[T]) IsEmpty() bool { return len(g.cells) == 0 }

// InBounds reports whether (row, column) addresses a cell
func (g *Grid[T]) InBounds(row, column int) bool {
	return row >= 0 && row < g.height && column >= 0 && column < g.width
}

func (g *Grid[T]) index(row, column int) int {
	if !g.InBounds(row, column) {
		outOfRange("(%d, %d) outside %dx%d grid", row, column, g.width, g.height)
	}
	return row*g.width + column
}

// Get returns the element at (row, column). It panics if out of range.
func (g *Grid[T]) Get(row, column int) T {
	return g.cells[g.index(row, column)]
}

// Set replaces the element at (row, column). It panics if out of range.
func (g *Grid[T]) Set(row, column int, value T) {
	g.cells[g.index(row, column)] = value
}

// GetCycled returns the element at (row, column) after wrapping an index
// that is one step outside the grid: -1 becomes the last index and an index
// equal to or past the extent becomes 0.
func (g *Grid[T]) GetCycled(row, column int) T {
	if row >= g.height {
		row = 0
	} else if row < 0 {
		row = g.height - 1
	}
	if column >= g.width {
		column = 0
	} else if column < 0 {
		column = g.width - 1
	}
	return g.Get(row, column)
}

// GetBounded returns the element at (row, column) and true, or the zero
// value and false when the coordinates are outside the grid.
func (g *Grid[T]) GetBounded(row, column int) (T, bool) {
	if !g.InBounds(row, column) {
		var zero T
		return zero, false
	}
	return g.cells[row*g.width+column], true
}

// At resolves (row, column) with the given adjacency policy
func (g *Grid[T]) At(row, column int, mode Adjacency) (T, bool) {
	if mode == Bounded {
		return g.GetBounded(row, column)
	}
	return g.GetCycled(row, column), true
}

// Row returns a copy of the given row
func (g *Grid[T]) Row(row int) []T {
	if row < 0 || row >= g.height {
		outOfRange("row %d outside [0, %d)", row, g.height)
	}
	return slices.Clone(g.cells[row*g.width : (row+1)*g.width])
}

// SetRow replaces the given row. values must hold exactly Width elements.
func (g *Grid[T]) SetRow(row int, values []T) {
	if row < 0 || row >= g.height {
		outOfRange("row %d outside [0, %d)", row, g.height)
	}
	if len(values) != g.width {
		lengthMismatch(len(values), g.width)
	}
	copy(g.cells[row*g.width:], values)
}

// Column returns a copy of the given column
func (g *Grid[T]) Column(column int) []T {
	if column < 0 || column >= g.width {
		outOfRange("column %d outside [0, %d)", column, g.width)
	}
	result := make([]T, g.height)
	for r := range g.height {
		result[r] = g.cells[r*g.width+column]
	}
	return result
}

// SetColumn replaces the given column. values must hold exactly Height elements.
func (g *Grid[T]) SetColumn(column int, values []T) {
	if column < 0 || column >= g.width {
		outOfRange("column %d outside [0, %d)", column, g.width)
	}
	if len(values) != g.height {
		lengthMismatch(len(values), g.height)
	}
	for r := range g.height {
		g.cells[r*g.width+column] = values[r]
	}
}

// Rows returns a copy of the grid as nested rows
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.height)
	for r := range g.height {
		rows[r] = g.Row(r)
	}
	return rows
}

// InsertRow inserts row before index, shifting later rows down. On a 0x0
// grid the row defines the width.
func (g *Grid[T]) InsertRow(index int, row []T) {
	width := g.width
	if g.width == 0 && g.height == 0 {
		width = len(row)
	}
	if len(row) != width {
		lengthMismatch(len(row), width)
	}
	if index < 0 || index > g.height {
		outOfRange("row insertion index %d outside [0, %d]", index, g.height)
	}
	g.cells = slices.Insert(g.cells, index*width, row...)
	g.width = width
	g.height++
}

// AppendRow adds row below the last row
func (g *Grid[T]) AppendRow(row []T) {
	g.InsertRow(g.height, row)
}

// InsertColumn inserts column before index, shifting later columns right.
// On a 0x0 grid the column defines the height.
func (g *Grid[T]) InsertColumn(index int, column []T) {
	height := g.height
	if g.width == 0 && g.height == 0 {
		height = len(column)
	}
	if len(column) != height {
		lengthMismatch(len(column), height)
	}
	if index < 0 || index > g.width {
		outOfRange("column insertion index %d outside [0, %d]", index, g.width)
	}
	width := g.width + 1
	cells := make([]T, 0, width*height)
	for r := range height {
		old := g.cells[r*g.width : (r+1)*g.width]
		cells = append(cells, old[:index]...)
		cells = append(cells, column[r])
		cells = append(cells, old[index:]...)
	}
	g.cells = cells
	g.width, g.height = width, height
}

// AppendColumn adds column right of the last column
func (g *Grid[T]) AppendColumn(column []T) {
	g.InsertColumn(g.width, column)
}

// RemoveRow deletes the row at index
func (g *Grid[T]) RemoveRow(index int) {
	if index < 0 || index >= g.height {
		outOfRange("row %d outside [0, %d)", index, g.height)
	}
	g.cells = slices.Delete(g.cells, index*g.width, (index+1)*g.width)
	g.height--
}

// RemoveLastRow deletes the bottom row
func (g *Grid[T]) RemoveLastRow() {
	g.RemoveRow(g.height - 1)
}

// RemoveColumn deletes the column at index
func (g *Grid[T]) RemoveColumn(index int) {
	if index < 0 || index >= g.width {
		outOfRange("column %d outside [0, %d)", index, g.width)
	}
	width := g.width - 1
	cells := make([]T, 0, width*g.height)
	for r := range g.height {
		old := g.cells[r*g.width : (r+1)*g.width]
		cells = append(cells, old[:index]...)
		cells = append(cells, old[index+1:]...)
	}
	g.cells = cells
	g.width = width
}

// RemoveLastColumn deletes the rightmost column
func (g *Grid[T]) RemoveLastColumn() {
	g.RemoveColumn(g.width - 1)
}

// InsetBy shrinks the grid by dRows rows at the top and at the bottom and by
// dColumns columns at the left and at the right. Negative values grow the
// grid symmetrically instead, padding new cells with fill.
func (g *Grid[T]) InsetBy(dRows, dColumns int, fill T) {
	if 2*dRows > g.height {
		outOfRange("inset of %d rows on a grid of height %d", dRows, g.height)
	}
	if 2*dColumns > g.width {
		outOfRange("inset of %d columns on a grid of width %d", dColumns, g.width)
	}
	height := g.height - 2*dRows
	width := g.width - 2*dColumns
	cells := make([]T, width*height)
	for r := range height {
		for c := range width {
			if v, ok := g.GetBounded(r+dRows, c+dColumns); ok {
				cells[r*width+c] = v
			} else {
				cells[r*width+c] = fill
			}
		}
	}
	g.width, g.height, g.cells = width, height, cells
}

// BoundingBox returns the minimal rectangle containing every cell for which
// match holds. ok is false when no cell matches.
func (g *Grid[T]) BoundingBox(match func(T) bool) (box Rect, ok bool) {
	minRow, maxRow := g.height, -1
	minCol, maxCol := g.width, -1

	for r := range g.height {
		for c := range g.width {
			if !match(g.cells[r*g.width+c]) {
				continue
			}
			minRow = min(minRow, r)
			maxRow = max(maxRow, r)
			minCol = min(minCol, c)
			maxCol = max(maxCol, c)
		}
	}

	if maxRow < 0 {
		return Rect{}, false
	}
	return Rect{
		Row:    minRow,
		Column: minCol,
		Width:  maxCol - minCol + 1,
		Height: maxRow - minRow + 1,
	}, true
}

// SubGrid copies the cells covered by box into a new grid
func (g *Grid[T]) SubGrid(box Rect) *Grid[T] {
	if box.Width < 0 || box.Height < 0 ||
		box.Row < 0 || box.Column < 0 ||
		box.Row+box.Height > g.height || box.Column+box.Width > g.width {
		outOfRange("rect %+v outside %dx%d grid", box, g.width, g.height)
	}
	sub := &Grid[T]{width: box.Width, height: box.Height, cells: make([]T, 0, box.Width*box.Height)}
	for r := box.Row; r < box.Row+box.Height; r++ {
		offset := r*g.width + box.Column
		sub.cells = append(sub.cells, g.cells[offset:offset+box.Width]...)
	}
	return sub
}

// ExtractBoundingBox returns the sub-grid covering the bounding box of the
// cells matching match, or an empty 0x0 grid when nothing matches.
func (g *Grid[T]) ExtractBoundingBox(match func(T) bool) *Grid[T] {
	box, ok := g.BoundingBox(match)
	if !ok {
		return &Grid[T]{}
	}
	return g.SubGrid(box)
}

// Contains reports whether any cell equals value
func (g *Grid[T]) Contains(value T) bool {
	return slices.Contains(g.cells, value)
}

// Count returns the number of cells for which match holds
func (g *Grid[T]) Count(match func(T) bool) (count int) {
	for _, v := range g.cells {
		if match(v) {
			count++
		}
	}
	return
}

// MoveElement copies the element at (fromRow, fromColumn) to (toRow,
// toColumn) and leaves placeholder behind. Moving a cell onto itself is a no-op.
func (g *Grid[T]) MoveElement(fromRow, fromColumn, toRow, toColumn int, placeholder T) {
	from := g.index(fromRow, fromColumn)
	to := g.index(toRow, toColumn)
	if from == to {
		return
	}
	value := g.cells[from]
	g.cells[from] = placeholder
	g.cells[to] = value
}

// MoveElementBy moves the element at (row, column) by (dRow, dColumn)
func (g *Grid[T]) MoveElementBy(row, column, dRow, dColumn int, placeholder T) {
	g.MoveElement(row, column, row+dRow, column+dColumn, placeholder)
}

// Equal reports whether both grids have the same dimensions and elements
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.width == other.width &&
		g.height == other.height &&
		slices.Equal(g.cells, other.cells)
}

// Clone returns a full copy of the grid
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{width: g.width, height: g.height, cells: slices.Clone(g.cells)}
}

// Cells returns a copy of the row-major element sequence
func (g *Grid[T]) Cells() []T {
	return slices.Clone(g.cells)
}

// Fill sets every cell to value
func (g *Grid[T]) Fill(value T) {
	for i := range g.cells {
		g.cells[i] = value
	}
}

// Reset resizes the grid to width x height, reusing the backing storage
// when it is large enough, and fills every cell with value.
func (g *Grid[T]) Reset(width, height int, value T) {
	if width < 0 || height < 0 {
		panic(errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height))
	}
	n := width * height
	if cap(g.cells) >= n {
		g.cells = g.cells[:n]
	} else {
		g.cells = make([]T, n)
	}
	g.width, g.height = width, height
	g.Fill(value)
}
