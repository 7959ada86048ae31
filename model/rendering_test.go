package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalRendererDisplay(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf)

	g := GridOf([][]CellState{{Alive, Dead}, {Dead, Alive}})
	r.Display(g)

	assert.Equal(t, "██  \n  ██\n", buf.String())
}

func TestTerminalRendererClearSkipsNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf)
	r.Clear()
	assert.Empty(t, buf.String())
}
