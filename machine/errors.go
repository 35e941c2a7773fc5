package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every puzzle-text syntax error.
	ErrParse = errors.New("machine: parse error")

	// ErrTooManyLanes indicates more than MaxLanes buttons, lights or counters.
	ErrTooManyLanes = errors.New("machine: too many lanes")

	// ErrLaneRange indicates a lane index outside the active length.
	ErrLaneRange = errors.New("machine: lane index out of range")

	// ErrNegativeTarget indicates a joltage target below zero.
	ErrNegativeTarget = errors.New("machine: negative joltage target")
)

// ParseError reports where a puzzle line could not be parsed.
// Line is 1-based; zero means the line number is unknown.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("machine: line %d: token %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("machine: token %q: %v", e.Token, e.Err)
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// machineErrorf wraps err with an operation tag.
func machineErrorf(tag string, err error) error {
	return fmt.Errorf("machine.%s: %w", tag, err)
}
