// Package rle reads and writes Life patterns in the Run Length Encoded
// format used by the Life community (http://www.conwaylife.com/wiki/RLE).
//
// A document is made of optional '#' comment lines, one header line of the
// form "x = <width>, y = <height>[, rule = <rule>]" and a body of
// "<count><tag>" tokens where 'b' is a dead cell, 'o' an alive cell, '$' ends
// a row and '!' ends the pattern.
package rle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxCells caps width*height of a decoded pattern, and each dimension on its
// own. Larger headers are rejected before any grid is allocated.
const MaxCells = 1 << 24

var (
	// ErrMalformedHeader is returned when the header line is missing or does
	// not carry both dimensions.
	ErrMalformedHeader = errors.New("malformed RLE header")
	// ErrPatternTooLarge is returned when the header declares more than
	// MaxCells cells.
	ErrPatternTooLarge = errors.New("RLE pattern too large")
)

// Header is the "x = W, y = H, rule = R" line of an RLE document
type Header struct {
	Width  int
	Height int
	// Rule is kept as written; stepping always uses B3/S23.
	Rule string
}

func (h Header) String() string {
	s := fmt.Sprintf("x = %d, y = %d", h.Width, h.Height)
	if h.Rule != "" {
		s += ", rule = " + h.Rule
	}
	return s
}

func isHeaderSeparator(c byte) bool {
	switch c {
	case 'x', 'y', ',', ' ', '\t', '=':
		return true
	}
	return false
}

// ParseHeader reads the two dimensions from a header line, skipping the
// 'x', 'y', ',', '=' and blank separators around them.
func ParseHeader(line string) (Header, error) {
	pos := 0
	scanInt := func() (int, bool) {
		for pos < len(line) && isHeaderSeparator(line[pos]) {
			pos++
		}
		start := pos
		if pos < len(line) && (line[pos] == '-' || line[pos] == '+') {
			pos++
		}
		for pos < len(line) && line[pos] >= '0' && line[pos] <= '9' {
			pos++
		}
		n, err := strconv.Atoi(line[start:pos])
		return n, err == nil
	}

	width, ok := scanInt()
	if !ok {
		return Header{}, errors.Wrapf(ErrMalformedHeader, "no width in %q", line)
	}
	height, ok := scanInt()
	if !ok {
		return Header{}, errors.Wrapf(ErrMalformedHeader, "no height in %q", line)
	}
	if width < 0 || height < 0 {
		return Header{}, errors.Wrapf(ErrMalformedHeader, "negative dimensions in %q", line)
	}
	if width > MaxCells || height > MaxCells || (width > 0 && height > MaxCells/width) {
		return Header{}, errors.Wrapf(ErrPatternTooLarge, "%dx%d exceeds %d cells", width, height, MaxCells)
	}

	return Header{Width: width, Height: height, Rule: parseRule(line[pos:])}, nil
}

func parseRule(rest string) string {
	i := strings.Index(rest, "rule")
	if i < 0 {
		return ""
	}
	rest = strings.TrimLeft(rest[i+len("rule"):], " \t=")
	if j := strings.IndexByte(rest, ','); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
