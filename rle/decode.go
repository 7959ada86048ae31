package rle

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Document is a decoded RLE pattern together with its metadata
type Document struct {
	Header   Header
	Name     string   // from a "#N" line
	Comments []string // from "#C" and "#c" lines
	Grid     *model.Grid[model.CellState]
}

// Decode parses an RLE document into a grid of the declared size
func Decode(text string) (*model.Grid[model.CellState], error) {
	doc, err := DecodeDocument(text)
	if err != nil {
		return nil, err
	}
	return doc.Grid, nil
}

// DecodeReader reads and decodes a whole RLE document from r
func DecodeReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "[DecodeReader] failed to read pattern")
	}
	return DecodeDocument(string(data))
}

// DecodeDocument parses an RLE document. Comment lines may appear anywhere,
// the first other non-blank line is the header and everything after it is
// the body. Rows shorter than the declared width and rows never written are
// dead; cells past the declared width or height are dropped. A count before
// '$' ends the current row and skips count-1 further rows.
func DecodeDocument(text string) (*Document, error) {
	doc := &Document{}
	var (
		body      strings.Builder
		hasHeader bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			doc.readComment(trimmed)
			continue
		}
		if !hasHeader {
			if trimmed == "" {
				continue
			}
			header, err := ParseHeader(trimmed)
			if err != nil {
				return nil, err
			}
			doc.Header = header
			hasHeader = true
			continue
		}
		body.WriteString(trimmed)
	}

	if !hasHeader {
		return nil, errors.Wrap(ErrMalformedHeader, "no header line")
	}

	doc.Grid = decodeBody(body.String(), doc.Header.Width, doc.Header.Height)
	return doc, nil
}

func (d *Document) readComment(line string) {
	if len(line) < 2 {
		return
	}
	text := strings.TrimSpace(line[2:])
	switch line[1] {
	case 'N':
		d.Name = text
	case 'C', 'c':
		d.Comments = append(d.Comments, text)
	}
}

func decodeBody(body string, width, height int) *model.Grid[model.CellState] {
	g := model.NewGrid(width, height, model.Dead)
	row, column := 0, 0

	scanRuns(body, func(count int, tag byte) bool {
		switch tag {
		case '!':
			return false
		case '$':
			row += count
			column = 0
			return row < height
		}
		if model.CellStateFromTag(tag) == model.Alive && row < height {
			for c := column; c < min(column+count, width); c++ {
				g.Set(row, c, model.Alive)
			}
		}
		column = min(column+count, width)
		return true
	})

	return g
}
