package engine

import (
	"crypto/md5"
	"fmt"
)

// DefaultHistorySize is enough to catch period 1 to 3 oscillators
const DefaultHistorySize = 5

// History keeps hashes of recent generations to detect short cycles that
// the syntactic stuck check cannot see, such as blinkers.
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps at most size hashes
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// GridHash returns an MD5 hash of the grid dimensions and cells
func GridHash(g *CellGrid) string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.Width(), g.Height())
	for _, cell := range g.Cells() {
		h.Write([]byte{byte(cell)})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Push records g, dropping the oldest hash when full
func (h *History) Push(g *CellGrid) {
	h.hashes = append(h.hashes, GridHash(g))

	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Repeats reports whether g matches one of the recorded generations
func (h *History) Repeats(g *CellGrid) bool {
	current := GridHash(g)
	for _, hash := range h.hashes {
		if hash == current {
			return true
		}
	}
	return false
}

// Len returns the number of recorded generations
func (h *History) Len() int { return len(h.hashes) }

// Clear forgets every recorded generation
func (h *History) Clear() { h.hashes = nil }
