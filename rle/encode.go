package rle

import (
	"strings"

	"github.com/sheikhrachel/go-life/model"
)

// MaxLineLength is the longest body line Encode writes
const MaxLineLength = 70

// Encode serializes a grid as an RLE document
func Encode(g *model.Grid[model.CellState]) string {
	return EncodeDocument(&Document{Grid: g})
}

// EncodeDocument serializes a document. The header dimensions always come
// from the grid; the rule, name and comments are written when present.
func EncodeDocument(doc *Document) string {
	g := doc.Grid
	if g == nil {
		g = &model.Grid[model.CellState]{}
	}

	var sb strings.Builder
	if doc.Name != "" {
		sb.WriteString("#N " + doc.Name + "\n")
	}
	for _, c := range doc.Comments {
		sb.WriteString("#C " + c + "\n")
	}
	header := Header{Width: g.Width(), Height: g.Height(), Rule: doc.Header.Rule}
	sb.WriteString(header.String())
	sb.WriteByte('\n')

	line := 0
	emit := func(token string) {
		if line > 0 && line+len(token) > MaxLineLength {
			sb.WriteByte('\n')
			line = 0
		}
		sb.WriteString(token)
		line += len(token)
	}

	tags := make([]byte, g.Width())
	for r := range g.Height() {
		if r > 0 {
			emit("$")
		}
		for c := range g.Width() {
			tags[c] = g.Get(r, c).Tag()
		}
		for _, token := range runTokens(string(tags)) {
			emit(token)
		}
	}
	emit("!")
	sb.WriteByte('\n')

	return sb.String()
}
