package model

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	out         io.Writer
	interactive bool
}

// NewTerminalRenderer renders to out. Screen clearing is only emitted when
// out is a terminal.
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	r := &TerminalRenderer{out: out}
	if f, ok := out.(*os.File); ok {
		r.interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid[CellState]) {
	var sb strings.Builder
	for y := range g.Height() {
		for x := range g.Width() {
			sb.WriteString(g.Get(y, x).Glyph())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(r.out, sb.String())
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	if !r.interactive {
		return
	}
	fmt.Fprint(r.out, ansiClear)
}
