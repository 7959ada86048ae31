package model

import "github.com/pkg/errors"

// Contract violations. Grid operations panic with an error wrapping one of
// these, so a recovered value can be matched with errors.Is.
var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// ErrUnknownAdjacency is returned when parsing an unsupported adjacency name.
var ErrUnknownAdjacency = errors.New("unknown adjacency mode")

func outOfRange(format string, args ...interface{}) {
	panic(errors.Wrapf(ErrIndexOutOfRange, format, args...))
}

func lengthMismatch(got, want int) {
	panic(errors.Wrapf(ErrLengthMismatch, "got %d elements, want %d", got, want))
}
