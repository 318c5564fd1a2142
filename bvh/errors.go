package bvh

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no position payload.
var (
	// ErrFrameRange is returned when a frame index is outside
	// [0, NumFrames).
	ErrFrameRange = errors.New("bvh: frame index out of range")

	// ErrFrameWidth is returned when a frame row does not contain
	// exactly NumChannels values.
	ErrFrameWidth = errors.New("bvh: frame width does not match channel count")

	// ErrNonPositiveFrameTime is returned when a frame time is zero
	// or negative.
	ErrNonPositiveFrameTime = errors.New("bvh: frame time must be positive")
)

// LexError reports an input byte sequence that could not be classified
// as a token. It carries the source position of the offending input.
type LexError struct {
	Message string
	Pos     Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("bvh: %s at %s", e.Message, e.Pos)
}

// SyntaxError reports a grammar violation in the HIERARCHY section:
// a missing keyword, unbalanced braces, a channel-count mismatch, an
// unrecognized channel name, or a missing root.
type SyntaxError struct {
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bvh: %s at %s", e.Message, e.Pos)
}

// SemanticError reports a cross-section consistency violation: the
// declared frame count disagreeing with the data lines present, a frame
// row of the wrong width, or an invariant violated during manual
// construction. Line is zero when the error did not originate from
// source text.
type SemanticError struct {
	Message string
	Line    int
}

func (e *SemanticError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("bvh: %s on line %d", e.Message, e.Line)
	}
	return "bvh: " + e.Message
}

func syntaxErrorf(pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

func semanticErrorf(line int, format string, args ...any) *SemanticError {
	return &SemanticError{Message: fmt.Sprintf(format, args...), Line: line}
}
